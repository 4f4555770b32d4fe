package retro

import "errors"

var (
	// ErrClassification means no matcher in the batter-event chain accepted
	// the batter section of the play string.
	ErrClassification = errors.New("unclassifiable batter event")

	// ErrAdvanceToken means a runner-advance token named a base outside
	// B, 1, 2, 3, H or was otherwise malformed.
	ErrAdvanceToken = errors.New("malformed advance token")
)
