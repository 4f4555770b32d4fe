package retro

import (
	"fmt"
	"strings"
)

// Half says which side of the inning is batting.
type Half int

const (
	HalfTop    Half = iota // visiting team bats
	HalfBottom             // home team bats
)

func (h Half) String() string {
	if h == HalfTop {
		return "top"
	}
	return "bottom"
}

// UnknownBatter stands in for the batter when a play record carries no
// player id. It keeps occupancy accounting intact for malformed records.
const UnknownBatter = "unknownBatter"

// Play is one play record: who batted, in which half-inning, on what
// count, and the raw outcome string. The outcome splits on the first "."
// into the batter section and the optional runner section; both parses
// are computed once on demand and cached.
//
// RunnersBefore must be assigned by the caller before RunnerEvent is
// first requested; RunnersAfter is filled in as a side effect.
type Play struct {
	PlayNumber int
	Inning     int
	Half       Half
	BatterID   string
	Count      string
	Pitches    string

	Raw        string
	RawBatter  string
	RawRunners string

	RunnersBefore BaseRunners
	RunnersAfter  BaseRunners

	playEvent    *PlayEvent
	playEventErr error
	playDone     bool

	runnerEvent    *RunnerEvent
	runnerEventErr error
	runnerDone     bool
}

// NewPlay splits raw into its batter and runner sections. inning and
// half come straight from the source record.
func NewPlay(inning int, half Half, batterID, count, pitches, raw string) *Play {
	p := &Play{
		Inning:   inning,
		Half:     half,
		BatterID: batterID,
		Count:    count,
		Pitches:  pitches,
		Raw:      raw,
	}
	p.RawBatter, p.RawRunners, _ = strings.Cut(raw, ".")
	return p
}

func (p *Play) String() string {
	return fmt.Sprintf("%c%d: %s:%s", p.Half.String()[0], p.Inning, p.BatterID, p.Raw)
}

// batterID returns the batter's player id, or UnknownBatter when the
// record carries none.
func (p *Play) batterID() string {
	if p.BatterID == "" {
		return UnknownBatter
	}
	return p.BatterID
}

// PlayEvent returns the batter-event classification, parsing it on first
// call. The result, success or failure, is cached.
func (p *Play) PlayEvent() (*PlayEvent, error) {
	if p.playDone {
		return p.playEvent, p.playEventErr
	}
	p.playDone = true
	p.playEvent, p.playEventErr = ParsePlayEvent(p.RawBatter, p.RawRunners)
	if p.playEventErr != nil {
		p.playEventErr = fmt.Errorf("play %q: %w", p.Raw, p.playEventErr)
	}
	return p.playEvent, p.playEventErr
}

// RunnerEvent returns the reconciled runner movements, parsing them on
// first call against RunnersBefore. On success RunnersAfter is set.
func (p *Play) RunnerEvent() (*RunnerEvent, error) {
	if p.runnerDone {
		return p.runnerEvent, p.runnerEventErr
	}
	p.runnerDone = true
	pe, err := p.PlayEvent()
	if err != nil {
		p.runnerEventErr = err
		return nil, err
	}
	re, err := parseRunnerEvent(p.RawRunners, p.RunnersBefore, pe, p.batterID())
	if err != nil {
		p.runnerEventErr = fmt.Errorf("play %q: %w", p.Raw, err)
		return nil, p.runnerEventErr
	}
	p.runnerEvent = re
	p.RunnersAfter = re.RunnersAfter
	return re, nil
}

// OutsMadeOnPlay totals the outs the play produced. Double and triple
// play flags short-circuit the count because their force-out notation
// would otherwise double-count runner outs. A strikeout where the batter
// nonetheless reached (dropped third strike, wild pitch) takes the
// batter's out back.
func (p *Play) OutsMadeOnPlay() (int, error) {
	pe, err := p.PlayEvent()
	if err != nil {
		return 0, err
	}
	if pe.DoublePlay {
		return 2, nil
	}
	if pe.TriplePlay {
		return 3, nil
	}
	re, err := p.RunnerEvent()
	if err != nil {
		return 0, err
	}
	outs := 0
	if pe.Out {
		outs++
		if pe.StrikeOut && re.hasAdvanceFrom(BaseBatter) {
			outs--
		}
	}
	return outs + re.Outs, nil
}

// RBIs counts the runs batted in credited to the batter on this play.
func (p *Play) RBIs() (int, error) {
	re, err := p.RunnerEvent()
	if err != nil {
		return 0, err
	}
	rbis := 0
	for _, ra := range re.Advances {
		if ra.RBICredited() {
			rbis++
		}
	}
	return rbis, nil
}
