package retro

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// Split a play outcome on slashes that are not inside parentheses, so
	// "S7/6-5(E/6)/G" keeps the parenthesized slash intact.
	modifierSplitRE = regexp.MustCompile(`(?:[^/(]|\([^)]*\))+`)

	leadingFieldersRE = regexp.MustCompile(`^(\d+)`)
	forceOutRE        = regexp.MustCompile(`\((\d)\)`)
	nonForceThrowRE   = regexp.MustCompile(`\dX[\dH]`)

	strikeoutChainRE       = regexp.MustCompile(`^K\d*\+(.*)$`)
	walkChainRE            = regexp.MustCompile(`^W\d*\+(.*)$`)
	intentionalWalkChainRE = regexp.MustCompile(`^IW?\d*\+(.*)$`)

	caughtStealingBaseRE = regexp.MustCompile(`CS([\dH])`)
	pickoffCSBaseRE      = regexp.MustCompile(`POCS([\dH])`)
	pickoffBaseRE        = regexp.MustCompile(`PO([\dH])`)
)

// K+SB2 style chained events nest one level in practice. The cap only
// guards against a degenerate input looping the classifier.
const maxChainedEvents = 4

// PlayEvent is the classification of the batter section of a play: what
// the batter did, what it implies for the batter's own advance, and which
// runner movements (steals, force outs) it implies for everyone else.
type PlayEvent struct {
	Raw         string
	BasicBatter string
	Modifiers   []string

	// Out reports the batter being retired by this play itself. It can
	// be true while no out is recorded (strikeout reversed by a wild
	// pitch) and false while outs happen (batter singles, runner thrown
	// out stretching).
	Out  bool
	Safe bool

	AtBat           bool
	PlateAppearance bool
	NoPlay          bool

	// ImpliedBatterAdvance is the number of bases the batter takes when
	// the runner section does not say so explicitly: 1 for a single or
	// walk, 4 for a home run, 0 when the batter does not reach.
	ImpliedBatterAdvance int

	Fielders   []byte
	TotalBases int

	Single           bool
	Double           bool
	DoubleGroundRule bool
	Triple           bool
	HomeRun          bool

	StrikeOut       bool
	BaseOnBalls     bool
	IntentionalWalk bool

	Errors         int
	FieldersChoice bool
	HitByPitch     bool

	StolenBase     bool
	CaughtStealing bool

	// BasesStolen lists destination bases credited as steals.
	// EraseBaseRunners lists origin bases whose runner is forced or
	// thrown out by the primary event; both feed implied advances.
	BasesStolen      []byte
	EraseBaseRunners []byte

	Pickoff    bool
	Balk       bool
	PassedBall bool
	WildPitch  bool

	DoublePlay bool
	TriplePlay bool

	DefensiveIndifference bool
	IgnoreForOBP          bool

	SacrificeFly bool
	SacrificeHit bool

	// rawRunners is the play's runner section; the double-play batter
	// disposition needs to peek at it.
	rawRunners string
}

type batterMatcher func(pe *PlayEvent, bb string, depth int) (bool, error)

// Order is load-bearing: prefixes shadow each other (S before SB handled
// inside matchers, but CS must run before POCS would otherwise match PO,
// HP before H would misread, and so on). Matchers that move runners up
// come before matchers that erase them. Populated in init because the
// matchers call back into classify for chained events.
var batterMatchers []batterMatcher

func init() {
	batterMatchers = []batterMatcher{
		(*PlayEvent).matchStrikeout,
		(*PlayEvent).matchBaseOnBalls,
		(*PlayEvent).matchNoPlay,
		(*PlayEvent).matchGeneralOut,
		(*PlayEvent).matchInterference,
		(*PlayEvent).matchSingle,
		(*PlayEvent).matchDouble,
		(*PlayEvent).matchTriple,
		(*PlayEvent).matchHomeRun,
		(*PlayEvent).matchErrorOnFoul,
		(*PlayEvent).matchFielderError,
		(*PlayEvent).matchFieldersChoice,
		(*PlayEvent).matchHitByPitch,
		(*PlayEvent).matchBalk,
		(*PlayEvent).matchDefensiveIndifference,
		(*PlayEvent).matchOtherAdvance,
		(*PlayEvent).matchWildPitch,
		(*PlayEvent).matchPassedBall,
		(*PlayEvent).matchStolenBase,
		(*PlayEvent).matchCaughtStealing,
		(*PlayEvent).matchPickoffCaughtStealing,
		(*PlayEvent).matchPickoff,
	}
}

// ParsePlayEvent classifies the batter section of a play. rawRunners is
// the play's runner section ("" when absent); it is consulted only for
// the single-force double-play disposition.
func ParsePlayEvent(rawBatter, rawRunners string) (*PlayEvent, error) {
	pe := &PlayEvent{
		Raw:             rawBatter,
		AtBat:           true,
		PlateAppearance: true,
		rawRunners:      rawRunners,
	}
	pe.splitBasicBatterModifiers(rawBatter)
	if err := pe.classify(pe.BasicBatter, 0); err != nil {
		return nil, err
	}
	pe.applyModifiers()
	return pe, nil
}

// splitBasicBatterModifiers splits on slashes outside parentheses: the
// first group is the basic batter code, the rest are modifiers.
func (pe *PlayEvent) splitBasicBatterModifiers(raw string) {
	groups := modifierSplitRE.FindAllString(raw, -1)
	if len(groups) == 0 {
		pe.BasicBatter = raw
		return
	}
	pe.BasicBatter = groups[0]
	if len(groups) > 1 {
		pe.Modifiers = groups[1:]
	}
}

// classify runs the matcher chain until one accepts, first match wins.
func (pe *PlayEvent) classify(bb string, depth int) error {
	if depth > maxChainedEvents {
		return fmt.Errorf("%w: chained events nest too deep in %q", ErrClassification, pe.Raw)
	}
	for _, match := range batterMatchers {
		ok, err := match(pe, bb, depth)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrClassification, bb)
}

func (pe *PlayEvent) applyModifiers() {
	for _, mod := range pe.Modifiers {
		switch {
		case strings.HasPrefix(mod, "SH"):
			pe.AtBat = false
			pe.SacrificeHit = true
		case strings.HasPrefix(mod, "SF"):
			pe.AtBat = false
			pe.SacrificeFly = true
		}
	}
}

// IsHit reports whether the play counts as a hit.
func (pe *PlayEvent) IsHit() bool {
	return pe.Single || pe.Double || pe.Triple || pe.HomeRun
}

// IsSacrifice reports whether the play is a sacrifice fly or hit.
func (pe *PlayEvent) IsSacrifice() bool {
	return pe.SacrificeFly || pe.SacrificeHit
}

// matchStrikeout handles K, including K+SB2, K+WP and the like where a
// secondary event rides on the strikeout. The batter stays marked out;
// whether an out is actually recorded is settled later against the
// runner section (an uncaught third strike puts the batter on base).
func (pe *PlayEvent) matchStrikeout(bb string, depth int) (bool, error) {
	if !strings.HasPrefix(bb, "K") {
		return false, nil
	}
	pe.StrikeOut = true
	pe.Out = true
	if m := strikeoutChainRE.FindStringSubmatch(bb); m != nil {
		if err := pe.classify(m[1], depth+1); err != nil {
			return true, err
		}
	}
	return true, nil
}

// matchBaseOnBalls handles W and IW (plus the pre-1997 bare I encoding),
// with the same chained-event handling as strikeouts.
func (pe *PlayEvent) matchBaseOnBalls(bb string, depth int) (bool, error) {
	intentional := strings.HasPrefix(bb, "IW") || strings.HasPrefix(bb, "I")
	walk := strings.HasPrefix(bb, "W") && !strings.HasPrefix(bb, "WP")
	if !walk && !intentional {
		return false, nil
	}
	pe.BaseOnBalls = true
	chainRE := walkChainRE
	if intentional {
		pe.IntentionalWalk = true
		chainRE = intentionalWalkChainRE
	}
	pe.Safe = true
	pe.AtBat = false
	pe.ImpliedBatterAdvance = 1
	if m := chainRE.FindStringSubmatch(bb); m != nil {
		if err := pe.classify(m[1], depth+1); err != nil {
			return true, err
		}
	}
	return true, nil
}

func (pe *PlayEvent) matchNoPlay(bb string, _ int) (bool, error) {
	if !strings.HasPrefix(bb, "NP") {
		return false, nil
	}
	pe.AtBat = false
	pe.PlateAppearance = false
	pe.NoPlay = true
	return true, nil
}

// matchGeneralOut handles the most common event, a ball fielded for an
// out, written as the fielder sequence: 8, 63, 54(1), 64(1)3/GDP.
//
// Parenthesized base digits are force outs: each erases the runner who
// started on that base, and the batter is presumed safe unless a DP/TP
// modifier accounts for him. The single-force double play is ambiguous,
// two outs but only one named: if the runner section shows a non-force
// out (a \dX[\dH] token) the second out happened there and the batter is
// safe; otherwise the batter is the second out. That tie-break exists
// for real games and stays as written.
func (pe *PlayEvent) matchGeneralOut(bb string, _ int) (bool, error) {
	m := leadingFieldersRE.FindStringSubmatch(bb)
	if m == nil {
		return false, nil
	}
	if errorRE.MatchString(bb) {
		// safe on error, though an out for batting statistics
		pe.Out = false
		pe.ImpliedBatterAdvance = 1
		return true, nil
	}
	pe.Out = true
	pe.Fielders = []byte(m[1])

	numForced := 0
	for _, force := range forceOutRE.FindAllStringSubmatch(bb, -1) {
		numForced++
		pe.Out = false
		pe.EraseBaseRunners = append(pe.EraseBaseRunners, force[1][0])
	}
	if numForced == 0 {
		return true, nil
	}

	var dblPlay, tplPlay bool
	for _, mod := range pe.Modifiers {
		if strings.Contains(mod, "DP") && !strings.Contains(mod, "NDP") {
			dblPlay = true
		}
		if strings.Contains(mod, "TP") && !strings.Contains(mod, "NTP") {
			tplPlay = true
			dblPlay = false
		}
	}
	switch {
	case !dblPlay && !tplPlay:
		pe.ImpliedBatterAdvance = 1
		pe.Safe = true
	case dblPlay && numForced == 2:
		pe.ImpliedBatterAdvance = 1
		pe.Safe = true
	case dblPlay && numForced == 1:
		if nonForceThrowRE.MatchString(pe.rawRunners) {
			pe.ImpliedBatterAdvance = 1
			pe.Safe = true
		} else {
			pe.Out = true
			pe.Safe = false
		}
	case tplPlay && numForced == 2:
		pe.Out = true
		pe.Safe = false
	}
	pe.DoublePlay = dblPlay
	pe.TriplePlay = tplPlay
	return true, nil
}

// matchInterference is usually catcher's interference: the batter takes
// first, no at-bat is charged, and the plate appearance is excluded from
// on-base percentage.
func (pe *PlayEvent) matchInterference(bb string, _ int) (bool, error) {
	if !strings.HasPrefix(bb, "C") || strings.HasPrefix(bb, "CS") {
		return false, nil
	}
	pe.Safe = true
	pe.ImpliedBatterAdvance = 1
	pe.AtBat = false
	pe.PlateAppearance = true
	pe.IgnoreForOBP = true
	return true, nil
}

func (pe *PlayEvent) matchSingle(bb string, _ int) (bool, error) {
	if !strings.HasPrefix(bb, "S") || strings.HasPrefix(bb, "SB") {
		return false, nil
	}
	pe.Single = true
	pe.TotalBases = 1
	pe.Safe = true
	pe.ImpliedBatterAdvance = 1
	return true, nil
}

func (pe *PlayEvent) matchDouble(bb string, _ int) (bool, error) {
	if !strings.HasPrefix(bb, "D") || strings.HasPrefix(bb, "DI") {
		return false, nil
	}
	pe.Double = true
	pe.TotalBases = 2
	pe.Safe = true
	pe.ImpliedBatterAdvance = 2
	if strings.HasPrefix(bb, "DGR") {
		pe.DoubleGroundRule = true
	}
	return true, nil
}

func (pe *PlayEvent) matchTriple(bb string, _ int) (bool, error) {
	if !strings.HasPrefix(bb, "T") {
		return false, nil
	}
	pe.Triple = true
	pe.TotalBases = 3
	pe.Safe = true
	pe.ImpliedBatterAdvance = 3
	return true, nil
}

func (pe *PlayEvent) matchHomeRun(bb string, _ int) (bool, error) {
	if !strings.HasPrefix(bb, "H") || strings.HasPrefix(bb, "HP") {
		return false, nil
	}
	pe.HomeRun = true
	pe.TotalBases = 4
	pe.Safe = true
	pe.ImpliedBatterAdvance = 4
	return true, nil
}

// matchErrorOnFoul is an error on a foul fly; the at bat continues.
func (pe *PlayEvent) matchErrorOnFoul(bb string, _ int) (bool, error) {
	if !strings.HasPrefix(bb, "FLE") {
		return false, nil
	}
	pe.Errors++
	pe.Safe = false
	pe.NoPlay = true
	pe.AtBat = false
	pe.PlateAppearance = false
	return true, nil
}

func (pe *PlayEvent) matchFielderError(bb string, _ int) (bool, error) {
	if !strings.HasPrefix(bb, "E") {
		return false, nil
	}
	pe.Errors++
	pe.Safe = true
	pe.ImpliedBatterAdvance = 1
	return true, nil
}

// matchFieldersChoice presumes the batter reaches first. Where the
// batter actually ended up is usually corrected by an explicit token in
// the runner section; without one this stays an approximation.
func (pe *PlayEvent) matchFieldersChoice(bb string, _ int) (bool, error) {
	if !strings.HasPrefix(bb, "FC") {
		return false, nil
	}
	pe.FieldersChoice = true
	pe.ImpliedBatterAdvance = 1
	return true, nil
}

func (pe *PlayEvent) matchHitByPitch(bb string, _ int) (bool, error) {
	if !strings.HasPrefix(bb, "HP") {
		return false, nil
	}
	pe.HitByPitch = true
	pe.AtBat = false
	pe.Safe = true
	pe.ImpliedBatterAdvance = 1
	return true, nil
}

func (pe *PlayEvent) matchBalk(bb string, _ int) (bool, error) {
	if !strings.HasPrefix(bb, "BK") {
		return false, nil
	}
	pe.noPlateAppearance()
	pe.Balk = true
	return true, nil
}

func (pe *PlayEvent) matchDefensiveIndifference(bb string, _ int) (bool, error) {
	if !strings.HasPrefix(bb, "DI") {
		return false, nil
	}
	pe.noPlateAppearance()
	pe.DefensiveIndifference = true
	return true, nil
}

// matchOtherAdvance covers OA (and the misencoded OBA seen in a few
// files): some runner moved for a reason outside the usual codes. The
// runner section carries the actual movement.
func (pe *PlayEvent) matchOtherAdvance(bb string, _ int) (bool, error) {
	if !strings.HasPrefix(bb, "OA") && !strings.HasPrefix(bb, "OBA") {
		return false, nil
	}
	pe.noPlateAppearance()
	return true, nil
}

func (pe *PlayEvent) matchWildPitch(bb string, _ int) (bool, error) {
	if !strings.HasPrefix(bb, "WP") {
		return false, nil
	}
	pe.noPlateAppearance()
	pe.WildPitch = true
	return true, nil
}

func (pe *PlayEvent) matchPassedBall(bb string, _ int) (bool, error) {
	if !strings.HasPrefix(bb, "PB") {
		return false, nil
	}
	pe.noPlateAppearance()
	pe.PassedBall = true
	return true, nil
}

// matchStolenBase handles SB2, SB3, SBH and multi-steal codes joined
// with semicolons (SB2;SB3). The destination bases feed implied runner
// advances later.
func (pe *PlayEvent) matchStolenBase(bb string, _ int) (bool, error) {
	if !strings.HasPrefix(bb, "SB") {
		return false, nil
	}
	pe.noPlateAppearance()
	pe.StolenBase = true
	for _, steal := range strings.Split(bb, ";") {
		if len(steal) < 3 {
			return true, fmt.Errorf("%w: stolen base without a base in %q", ErrClassification, bb)
		}
		pe.BasesStolen = append(pe.BasesStolen, steal[2])
	}
	return true, nil
}

func (pe *PlayEvent) matchCaughtStealing(bb string, _ int) (bool, error) {
	if !strings.HasPrefix(bb, "CS") {
		return false, nil
	}
	pe.noPlateAppearance()
	pe.CaughtStealing = true
	return true, pe.eraseBaseRunnerIfNoError(caughtStealingBaseRE, bb, false)
}

func (pe *PlayEvent) matchPickoffCaughtStealing(bb string, _ int) (bool, error) {
	if !strings.HasPrefix(bb, "POCS") {
		return false, nil
	}
	pe.noPlateAppearance()
	pe.Pickoff = true
	pe.CaughtStealing = true
	return true, pe.eraseBaseRunnerIfNoError(pickoffCSBaseRE, bb, false)
}

func (pe *PlayEvent) matchPickoff(bb string, _ int) (bool, error) {
	if !strings.HasPrefix(bb, "PO") || strings.HasPrefix(bb, "POCS") {
		return false, nil
	}
	pe.noPlateAppearance()
	pe.Pickoff = true
	return true, pe.eraseBaseRunnerIfNoError(pickoffBaseRE, bb, true)
}

func (pe *PlayEvent) noPlateAppearance() {
	pe.NoPlay = true
	pe.AtBat = false
	pe.PlateAppearance = false
}

// eraseBaseRunnerIfNoError resolves a CS/POCS/PO code against any error
// annotation. Clean: the runner is erased from the base being run from
// (the attempted base itself for a pickoff). With an error the runner
// stands, and for a steal attempt the advance is credited as stolen.
func (pe *PlayEvent) eraseBaseRunnerIfNoError(baseRE *regexp.Regexp, bb string, pickoff bool) error {
	m := baseRE.FindStringSubmatch(bb)
	if m == nil {
		return fmt.Errorf("%w: PO/CS/POCS without a base in %q", ErrClassification, bb)
	}
	attemptedBase := m[1][0]
	if errorParenRE.MatchString(bb) {
		if !pickoff {
			// not a stolen base for statistical purposes
			pe.StolenBase = false
			pe.Errors++
			pe.BasesStolen = append(pe.BasesStolen, attemptedBase)
		}
		return nil
	}
	eraseBase := attemptedBase
	if !pickoff {
		switch attemptedBase {
		case BaseHome:
			eraseBase = BaseThird
		case BaseThird:
			eraseBase = BaseSecond
		case BaseSecond:
			eraseBase = BaseFirst
		default:
			return fmt.Errorf("%w: caught stealing first in %q", ErrClassification, bb)
		}
	}
	pe.EraseBaseRunners = append(pe.EraseBaseRunners, eraseBase)
	return nil
}
