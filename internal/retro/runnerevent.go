package retro

import (
	"fmt"
	"sort"
	"strings"
)

// RunnerEvent reconciles the explicit runner section of one play with the
// advances implied by its batter event and applies them to the baserunner
// occupancy, producing the occupancy after the play plus the outs charged
// to runners and the runs scored.
type RunnerEvent struct {
	Raw           string
	RunnersBefore BaseRunners
	RunnersAfter  BaseRunners

	// Advances holds the explicit tokens followed by any synthesized
	// implied ones, in application order.
	Advances []*RunnerAdvance

	// Outs counts runner outs only; the batter's own strikeout or
	// fielded out is not included here.
	Outs int
	Runs int

	// ScoringRunners lists player ids in scoring order. An anomalous
	// score by an unidentified runner appears as an empty string.
	ScoringRunners []string

	// Anomalies records advances that referenced an unoccupied base.
	// Known historical files contain a handful of these; the play is
	// still applied at reduced fidelity rather than rejected.
	Anomalies []string
}

// parseRunnerEvent builds and applies the advance list for one play.
// batterID resolves 'B' origins; pe supplies the implied advances.
func parseRunnerEvent(raw string, before BaseRunners, pe *PlayEvent, batterID string) (*RunnerEvent, error) {
	re := &RunnerEvent{
		Raw:           raw,
		RunnersBefore: before,
		RunnersAfter:  before,
	}
	if raw != "" {
		for _, token := range strings.Split(raw, ";") {
			ra, err := ParseAdvance(token)
			if err != nil {
				return nil, err
			}
			re.Advances = append(re.Advances, ra)
		}
	}
	re.synthesizeImpliedAdvances(pe, batterID)

	// Runners closer to home vacate first so a trailing runner never
	// overwrites the identity of the base ahead of him. The sort must be
	// stable: explicit tokens for the same key precede synthesized ones.
	sort.SliceStable(re.Advances, func(i, j int) bool {
		return re.Advances[i].sortKey() < re.Advances[j].sortKey()
	})

	var handled [4]bool // batter, first, second, third
	for _, ra := range re.Advances {
		re.applyAdvance(ra, &handled, batterID)
	}
	return re, nil
}

// synthesizeImpliedAdvances appends movements the batter event implies
// but the runner section leaves unwritten: stolen bases, erased runners
// (force outs, caught stealing, pickoffs) and the batter's own advance.
// Every synthesized advance yields to an explicit token from the same
// origin base.
func (re *RunnerEvent) synthesizeImpliedAdvances(pe *PlayEvent, batterID string) {
	// Bases can be listed stolen without a stolen base being credited:
	// CS2(E4) advances the runner on an error.
	for _, b := range pe.BasesStolen {
		var ra *RunnerAdvance
		switch {
		case b == BaseHome && !re.hasAdvanceFrom(BaseThird):
			ra = &RunnerAdvance{Raw: "3-H", FromBase: BaseThird, ToBase: BaseHome, PlayerID: re.RunnersBefore.Third}
		case b == BaseThird && !re.hasAdvanceFrom(BaseSecond):
			ra = &RunnerAdvance{Raw: "2-3", FromBase: BaseSecond, ToBase: BaseThird, PlayerID: re.RunnersBefore.Second}
		case b == BaseSecond && !re.hasAdvanceFrom(BaseFirst):
			ra = &RunnerAdvance{Raw: "1-2", FromBase: BaseFirst, ToBase: BaseSecond, PlayerID: re.RunnersBefore.First}
		}
		if ra != nil {
			ra.Implied = true
			re.Advances = append(re.Advances, ra)
		}
	}

	for _, b := range pe.EraseBaseRunners {
		var ra *RunnerAdvance
		switch {
		case b == BaseFirst && !re.hasAdvanceFrom(BaseFirst):
			ra = &RunnerAdvance{Raw: "1X2", FromBase: BaseFirst, ToBase: BaseSecond, Out: true, PlayerID: re.RunnersBefore.First}
		case b == BaseSecond && !re.hasAdvanceFrom(BaseSecond):
			ra = &RunnerAdvance{Raw: "2X3", FromBase: BaseSecond, ToBase: BaseThird, Out: true, PlayerID: re.RunnersBefore.Second}
		case b == BaseThird && !re.hasAdvanceFrom(BaseThird):
			ra = &RunnerAdvance{Raw: "3XH", FromBase: BaseThird, ToBase: BaseHome, Out: true, PlayerID: re.RunnersBefore.Third}
		}
		if ra != nil {
			ra.Implied = true
			re.Advances = append(re.Advances, ra)
		}
	}

	if !re.hasAdvanceFrom(BaseBatter) && pe.ImpliedBatterAdvance != 0 {
		to := byte('0' + pe.ImpliedBatterAdvance)
		if pe.ImpliedBatterAdvance == 4 {
			to = BaseHome
		}
		re.Advances = append(re.Advances, &RunnerAdvance{
			Raw:      "B-" + string(to),
			FromBase: BaseBatter,
			ToBase:   to,
			PlayerID: batterID,
			Implied:  true,
		})
	}
}

// hasAdvanceFrom reports whether any advance, including an out on the
// bases or a forced advance, starts from the given base.
func (re *RunnerEvent) hasAdvanceFrom(base byte) bool {
	for _, ra := range re.Advances {
		if ra.FromBase == base {
			return true
		}
	}
	return false
}

// applyAdvance plays one advance against the working occupancy. handled
// guards against the same origin being described both explicitly and
// implicitly; first application wins.
func (re *RunnerEvent) applyAdvance(ra *RunnerAdvance, handled *[4]bool, batterID string) {
	var runnerID string
	switch ra.FromBase {
	case BaseFirst, BaseSecond, BaseThird:
		slot := int(ra.FromBase - '0')
		if handled[slot] {
			return
		}
		handled[slot] = true
		runnerID = re.RunnersBefore.Occupant(ra.FromBase)
		ra.PlayerID = runnerID
		re.RunnersAfter.setOccupant(ra.FromBase, "")
	case BaseBatter:
		if handled[0] {
			return
		}
		handled[0] = true
		runnerID = batterID
	}

	if runnerID == "" {
		re.Anomalies = append(re.Anomalies,
			fmt.Sprintf("advance %s from unoccupied base (before %s)", ra.Raw, re.RunnersBefore))
	}
	if ra.Out {
		re.Outs++
		return
	}
	switch ra.ToBase {
	case BaseFirst, BaseSecond, BaseThird:
		re.RunnersAfter.setOccupant(ra.ToBase, runnerID)
	case BaseHome:
		re.ScoringRunners = append(re.ScoringRunners, runnerID)
		re.Runs++
	}
}
