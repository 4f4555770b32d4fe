package retro

import (
	"fmt"
	"strings"
)

// Base identifiers as they appear in play notation.
const (
	BaseBatter byte = 'B'
	BaseFirst  byte = '1'
	BaseSecond byte = '2'
	BaseThird  byte = '3'
	BaseHome   byte = 'H'
)

// BaseRunners records which player occupies each base. An empty string
// means the base is vacant. The zero value is an empty diamond, which is
// the correct state for the start of a half-inning.
//
// BaseRunners is a value type on purpose: each play keeps independent
// before and after snapshots, and assigning one never aliases another.
type BaseRunners struct {
	First  string
	Second string
	Third  string
}

// Occupant returns the player on the given base ('1', '2' or '3'), or the
// empty string when the base is vacant or the base byte is not a base.
func (br BaseRunners) Occupant(base byte) string {
	switch base {
	case BaseFirst:
		return br.First
	case BaseSecond:
		return br.Second
	case BaseThird:
		return br.Third
	default:
		return ""
	}
}

func (br *BaseRunners) setOccupant(base byte, playerID string) {
	switch base {
	case BaseFirst:
		br.First = playerID
	case BaseSecond:
		br.Second = playerID
	case BaseThird:
		br.Third = playerID
	}
}

// ReplaceRunner swaps every base occupied by oldID over to newID and
// reports whether any base changed. Pinch runners are recorded this way:
// the substitution happens between plays, so the incoming runner takes
// over the outgoing runner's base directly.
func (br *BaseRunners) ReplaceRunner(oldID, newID string) bool {
	if oldID == "" {
		return false
	}
	replaced := false
	for _, base := range []byte{BaseFirst, BaseSecond, BaseThird} {
		if br.Occupant(base) == oldID {
			br.setOccupant(base, newID)
			replaced = true
		}
	}
	return replaced
}

// Occupied reports whether the given base has a runner on it.
func (br BaseRunners) Occupied(base byte) bool {
	return br.Occupant(base) != ""
}

// Count returns the number of occupied bases.
func (br BaseRunners) Count() int {
	n := 0
	for _, id := range []string{br.First, br.Second, br.Third} {
		if id != "" {
			n++
		}
	}
	return n
}

// String renders the diamond as "1:id 2:- 3:id" with "-" for vacant bases.
func (br BaseRunners) String() string {
	var b strings.Builder
	for i, id := range []string{br.First, br.Second, br.Third} {
		if i > 0 {
			b.WriteByte(' ')
		}
		if id == "" {
			id = "-"
		}
		fmt.Fprintf(&b, "%d:%s", i+1, id)
	}
	return b.String()
}
