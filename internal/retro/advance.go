package retro

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// A parenthesized fielder sequence such as (25) or (8/TH) describes a
	// throw, not an error. When one appears alongside an error group the
	// out stands even though an error is charged.
	nonErrorThrowRE = regexp.MustCompile(`\(\d+/?T?H?\)`)
	errorParenRE    = regexp.MustCompile(`\(\d*E\d*[/A-Z]*\)`)
	errorRE         = regexp.MustCompile(`\d*E\d*[/A-Z]*`)

	// A few files carry a redundant trailing group like 2X3(1X); drop it.
	redundantStripRE = regexp.MustCompile(`\(\dX\)$`)
)

// RunnerAdvance is a single movement token from the runner section of a
// play: an origin base, '-' (safe) or 'X' (out), a destination base, and
// zero or more parenthesized modifier groups.
type RunnerAdvance struct {
	Raw       string
	PlayerID  string
	FromBase  byte // 'B', '1', '2' or '3'
	ToBase    byte // '1', '2', '3' or 'H'
	Out       bool
	NumErrors int

	// AfterMods is everything after the destination base, uninterpreted
	// except for error and throw groups.
	AfterMods string

	// Implied marks an advance synthesized from the batter event rather
	// than written in the runner section.
	Implied bool
}

// ParseAdvance parses one runner-advance token such as "2-H(UR)(NR)" or
// "1XH(E3/TH)". An error group in the modifiers negates the out unless a
// throw group is also present, in which case the out stands and the error
// is charged anyway.
func ParseAdvance(raw string) (*RunnerAdvance, error) {
	token := redundantStripRE.ReplaceAllString(raw, "")

	var before, after string
	var out bool
	if i := strings.IndexByte(token, '-'); i >= 0 {
		before, after = token[:i], token[i+1:]
	} else if i := strings.IndexByte(token, 'X'); i >= 0 {
		before, after = token[:i], token[i+1:]
		out = true
	} else {
		return nil, fmt.Errorf("%w: no separator in %q", ErrAdvanceToken, raw)
	}
	if before == "" || after == "" {
		return nil, fmt.Errorf("%w: missing base in %q", ErrAdvanceToken, raw)
	}

	ra := &RunnerAdvance{
		Raw:      token,
		FromBase: before[0],
		ToBase:   after[0],
		Out:      out,
	}
	if strings.IndexByte("B123", ra.FromBase) < 0 {
		return nil, fmt.Errorf("%w: bad origin base in %q", ErrAdvanceToken, raw)
	}
	if strings.IndexByte("123H", ra.ToBase) < 0 {
		return nil, fmt.Errorf("%w: bad destination base in %q", ErrAdvanceToken, raw)
	}

	ra.AfterMods = after[1:]
	if errorParenRE.MatchString(ra.AfterMods) {
		ra.NumErrors++
		if !nonErrorThrowRE.MatchString(ra.AfterMods) {
			ra.Out = false
		}
	}
	return ra, nil
}

// sortKey orders advances so that runners closer to home move first:
// third, then second, then first, then the batter. Processing in that
// order keeps "1-3;3XH" from putting the runner from first on third
// before the runner on third has left. The lone retreat seen in the
// wild, a 2-1, sorts last.
func (ra *RunnerAdvance) sortKey() byte {
	switch ra.FromBase {
	case BaseThird:
		return 'A'
	case BaseSecond:
		if ra.ToBase == BaseFirst {
			return 'X'
		}
		return 'B'
	case BaseFirst:
		return 'C'
	default: // 'B', validated at parse time
		return 'D'
	}
}

// IsRun reports whether the runner reached home safely or not; an out at
// home is not a run.
func (ra *RunnerAdvance) IsRun() bool {
	return ra.ToBase == BaseHome && !ra.Out
}

// Unearned reports whether the run is explicitly marked unearned.
func (ra *RunnerAdvance) Unearned() bool {
	return strings.Contains(ra.Raw, "(UR)")
}

// RBICredited reports whether the batter is credited with an RBI for this
// advance. Explicit (RBI) and (NR)/(NORBI) annotations win; otherwise any
// safe advance to home counts.
func (ra *RunnerAdvance) RBICredited() bool {
	if strings.Contains(ra.Raw, "(RBI)") {
		return true
	}
	if strings.Contains(ra.Raw, "(NR)") || strings.Contains(ra.Raw, "(NORBI)") {
		return false
	}
	return ra.IsRun()
}
