package retro

import (
	"errors"
	"reflect"
	"testing"
)

func mustOuts(t *testing.T, p *Play) int {
	t.Helper()
	outs, err := p.OutsMadeOnPlay()
	if err != nil {
		t.Fatalf("OutsMadeOnPlay(%q): %v", p.Raw, err)
	}
	return outs
}

func mustRunnerEvent(t *testing.T, p *Play) *RunnerEvent {
	t.Helper()
	re, err := p.RunnerEvent()
	if err != nil {
		t.Fatalf("RunnerEvent(%q): %v", p.Raw, err)
	}
	return re
}

func TestComplexSingleRegression(t *testing.T) {
	// 1934 doctest family: single to right, runners wheeling home on an
	// errant throw, batter taking second.
	p := NewPlay(7, HalfTop, "mcrab001", "12", "FF*BX", "S9/L34D/R932/U1.2-H;1-H(E3/TH)(UR)(NR);B-2")
	p.RunnersBefore = BaseRunners{First: "A", Third: "C"}

	pe, err := p.PlayEvent()
	if err != nil {
		t.Fatalf("PlayEvent: %v", err)
	}
	if !pe.Single || pe.IsHit() != true {
		t.Errorf("want single, got %+v", pe)
	}
	if pe.DoublePlay || pe.Out {
		t.Errorf("single misread as out: DoublePlay=%v Out=%v", pe.DoublePlay, pe.Out)
	}

	re := mustRunnerEvent(t, p)
	if re.Runs != 2 {
		t.Errorf("Runs = %d, want 2", re.Runs)
	}
	if got := mustOuts(t, p); got != 0 {
		t.Errorf("OutsMadeOnPlay = %d, want 0", got)
	}
	rbis, err := p.RBIs()
	if err != nil {
		t.Fatalf("RBIs: %v", err)
	}
	if rbis != 1 {
		t.Errorf("RBIs = %d, want 1: (UR)(NR) run and batter advance carry no credit", rbis)
	}

	// C has no advance token, so third stays occupied.
	want := BaseRunners{Second: "mcrab001", Third: "C"}
	if re.RunnersAfter != want {
		t.Errorf("RunnersAfter = %s, want %s", re.RunnersAfter, want)
	}
	// the 2-H token names a runner second base never had
	if len(re.Anomalies) != 1 {
		t.Errorf("Anomalies = %v, want exactly one for the vacant-base score", re.Anomalies)
	}
}

func TestDoublePlayDisambiguation(t *testing.T) {
	// One force named, two outs total: the non-force throw token in the
	// runner section means the second out happened at home, so the
	// batter is safe at first.
	p := NewPlay(1, HalfBottom, "batter", "", "", "54(1)/FO/G/DP.3XH(42)")
	p.RunnersBefore = BaseRunners{First: "A", Third: "C"}

	pe, err := p.PlayEvent()
	if err != nil {
		t.Fatalf("PlayEvent: %v", err)
	}
	if !pe.DoublePlay {
		t.Fatal("want DoublePlay")
	}
	if !pe.Safe || pe.Out {
		t.Errorf("batter should be safe: Safe=%v Out=%v", pe.Safe, pe.Out)
	}
	if got := mustOuts(t, p); got != 2 {
		t.Errorf("OutsMadeOnPlay = %d, want 2", got)
	}
	re := mustRunnerEvent(t, p)
	want := BaseRunners{First: "batter"}
	if re.RunnersAfter != want {
		t.Errorf("RunnersAfter = %s, want %s", re.RunnersAfter, want)
	}
}

func TestSingleForceDoublePlayBatterOut(t *testing.T) {
	// Same shape but no non-force throw in the runner section: the
	// batter is the second out.
	p := NewPlay(1, HalfTop, "batter", "", "", "64(1)3/GDP")
	p.RunnersBefore = BaseRunners{First: "A"}

	pe, err := p.PlayEvent()
	if err != nil {
		t.Fatalf("PlayEvent: %v", err)
	}
	if !pe.DoublePlay || !pe.Out || pe.Safe {
		t.Errorf("batter should be out on the GDP: %+v", pe)
	}
	if got := mustOuts(t, p); got != 2 {
		t.Errorf("OutsMadeOnPlay = %d, want 2", got)
	}
	re := mustRunnerEvent(t, p)
	if re.RunnersAfter != (BaseRunners{}) {
		t.Errorf("RunnersAfter = %s, want empty", re.RunnersAfter)
	}
}

func TestStrikeoutWildPitchCorrection(t *testing.T) {
	p := NewPlay(3, HalfTop, "batter", "", "", "K+WP.B-1")
	pe, err := p.PlayEvent()
	if err != nil {
		t.Fatalf("PlayEvent: %v", err)
	}
	if !pe.StrikeOut || !pe.Out {
		t.Errorf("strikeout flags wrong: StrikeOut=%v Out=%v", pe.StrikeOut, pe.Out)
	}
	if !pe.WildPitch {
		t.Error("chained WP not classified")
	}
	if got := mustOuts(t, p); got != 0 {
		t.Errorf("OutsMadeOnPlay = %d, want 0: batter reached on the wild pitch", got)
	}
	re := mustRunnerEvent(t, p)
	if re.RunnersAfter.First != "batter" {
		t.Errorf("batter not on first: %s", re.RunnersAfter)
	}
}

func TestStrikeoutPlusStolenBase(t *testing.T) {
	p := NewPlay(5, HalfBottom, "batter", "", "", "K+SB2")
	p.RunnersBefore = BaseRunners{First: "runner"}
	pe, err := p.PlayEvent()
	if err != nil {
		t.Fatalf("PlayEvent: %v", err)
	}
	if !pe.StrikeOut || !pe.StolenBase {
		t.Errorf("want strikeout and stolen base, got %+v", pe)
	}
	if !reflect.DeepEqual(pe.BasesStolen, []byte{'2'}) {
		t.Errorf("BasesStolen = %v, want ['2']", pe.BasesStolen)
	}
	if got := mustOuts(t, p); got != 1 {
		t.Errorf("OutsMadeOnPlay = %d, want 1", got)
	}
	re := mustRunnerEvent(t, p)
	want := BaseRunners{Second: "runner"}
	if re.RunnersAfter != want {
		t.Errorf("RunnersAfter = %s, want %s", re.RunnersAfter, want)
	}
}

func TestWalkDefaults(t *testing.T) {
	for _, tc := range []struct {
		raw         string
		intentional bool
	}{
		{"W", false},
		{"IW", true},
		{"I", true},
	} {
		p := NewPlay(1, HalfTop, "batter", "30", "BBBB", tc.raw)
		pe, err := p.PlayEvent()
		if err != nil {
			t.Fatalf("PlayEvent(%q): %v", tc.raw, err)
		}
		if !pe.BaseOnBalls || pe.IntentionalWalk != tc.intentional {
			t.Errorf("%q: BaseOnBalls=%v IntentionalWalk=%v", tc.raw, pe.BaseOnBalls, pe.IntentionalWalk)
		}
		if pe.AtBat {
			t.Errorf("%q: a walk is not an at bat", tc.raw)
		}
		if pe.ImpliedBatterAdvance != 1 {
			t.Errorf("%q: ImpliedBatterAdvance = %d", tc.raw, pe.ImpliedBatterAdvance)
		}
	}
	// WP must not read as a walk
	p := NewPlay(1, HalfTop, "batter", "", "", "WP.2-3")
	p.RunnersBefore = BaseRunners{Second: "r"}
	pe, err := p.PlayEvent()
	if err != nil {
		t.Fatalf("PlayEvent(WP): %v", err)
	}
	if pe.BaseOnBalls || !pe.WildPitch {
		t.Errorf("WP misclassified: %+v", pe)
	}
}

func TestSortOrderKeepsIdentities(t *testing.T) {
	// If 1-2 applied before 3XH nothing breaks here, but 1-3;3XH style
	// chains corrupt identities unless third clears first.
	p := NewPlay(2, HalfTop, "batter", "", "", "S8.1-3;3XH")
	p.RunnersBefore = BaseRunners{First: "alice", Third: "carol"}
	re := mustRunnerEvent(t, p)
	want := BaseRunners{First: "batter", Third: "alice"}
	if re.RunnersAfter != want {
		t.Errorf("RunnersAfter = %s, want %s", re.RunnersAfter, want)
	}
	if re.Outs != 1 || re.Runs != 0 {
		t.Errorf("Outs=%d Runs=%d, want 1 and 0", re.Outs, re.Runs)
	}
}

func TestCaughtStealingErrorReversal(t *testing.T) {
	p := NewPlay(4, HalfBottom, "batter", "", "", "CS3(E6)")
	p.RunnersBefore = BaseRunners{Second: "speedy"}

	pe, err := p.PlayEvent()
	if err != nil {
		t.Fatalf("PlayEvent: %v", err)
	}
	if pe.StolenBase {
		t.Error("no stolen base credited statistically on a CS error")
	}
	if !reflect.DeepEqual(pe.BasesStolen, []byte{'3'}) {
		t.Errorf("BasesStolen = %v, want ['3'] so the runner advances", pe.BasesStolen)
	}
	if pe.EraseBaseRunners != nil {
		t.Errorf("EraseBaseRunners = %v, want none", pe.EraseBaseRunners)
	}
	re := mustRunnerEvent(t, p)
	want := BaseRunners{Third: "speedy"}
	if re.RunnersAfter != want {
		t.Errorf("RunnersAfter = %s, want %s", re.RunnersAfter, want)
	}
	if got := mustOuts(t, p); got != 0 {
		t.Errorf("OutsMadeOnPlay = %d, want 0", got)
	}
}

func TestCaughtStealingClean(t *testing.T) {
	p := NewPlay(4, HalfTop, "batter", "", "", "CS3(26)")
	p.RunnersBefore = BaseRunners{Second: "speedy"}
	re := mustRunnerEvent(t, p)
	if re.RunnersAfter != (BaseRunners{}) {
		t.Errorf("RunnersAfter = %s, want empty", re.RunnersAfter)
	}
	if got := mustOuts(t, p); got != 1 {
		t.Errorf("OutsMadeOnPlay = %d, want 1", got)
	}
}

func TestPickoff(t *testing.T) {
	p := NewPlay(6, HalfTop, "batter", "", "", "PO1(13)")
	p.RunnersBefore = BaseRunners{First: "dozer"}
	re := mustRunnerEvent(t, p)
	if re.RunnersAfter != (BaseRunners{}) || re.Outs != 1 {
		t.Errorf("pickoff not applied: after=%s outs=%d", re.RunnersAfter, re.Outs)
	}

	// with an error the runner holds
	p = NewPlay(6, HalfTop, "batter", "", "", "PO1(E1)")
	p.RunnersBefore = BaseRunners{First: "dozer"}
	re = mustRunnerEvent(t, p)
	want := BaseRunners{First: "dozer"}
	if re.RunnersAfter != want || re.Outs != 0 {
		t.Errorf("pickoff error not reversed: after=%s outs=%d", re.RunnersAfter, re.Outs)
	}
}

func TestExplicitAdvanceOverridesImplied(t *testing.T) {
	// stretching a single into an out at second: explicit BX2 must win
	// over the implied B-1
	p := NewPlay(7, HalfTop, "gehrc101", "", "", "S9.BX2(96)")
	pe, err := p.PlayEvent()
	if err != nil {
		t.Fatalf("PlayEvent: %v", err)
	}
	if pe.Out {
		t.Error("the single itself is not an out")
	}
	if got := mustOuts(t, p); got != 1 {
		t.Errorf("OutsMadeOnPlay = %d, want 1", got)
	}
	re := mustRunnerEvent(t, p)
	if re.RunnersAfter != (BaseRunners{}) {
		t.Errorf("RunnersAfter = %s, want empty", re.RunnersAfter)
	}
}

func TestHomeRunClearsBases(t *testing.T) {
	p := NewPlay(9, HalfBottom, "slugger", "", "", "HR/F7.1-H;3-H")
	p.RunnersBefore = BaseRunners{First: "a", Third: "c"}
	re := mustRunnerEvent(t, p)
	if re.Runs != 3 {
		t.Errorf("Runs = %d, want 3", re.Runs)
	}
	if re.RunnersAfter != (BaseRunners{}) {
		t.Errorf("RunnersAfter = %s, want empty", re.RunnersAfter)
	}
	wantScorers := []string{"c", "a", "slugger"}
	if !reflect.DeepEqual(re.ScoringRunners, wantScorers) {
		t.Errorf("ScoringRunners = %v, want %v", re.ScoringRunners, wantScorers)
	}
}

func TestClassificationIdempotent(t *testing.T) {
	for _, raw := range []string{"K", "S7", "HR/F9", "64(1)3/GDP", "W+PB.2-3"} {
		a, err := ParsePlayEvent(raw, "")
		if err != nil {
			t.Fatalf("ParsePlayEvent(%q): %v", raw, err)
		}
		b, err := ParsePlayEvent(raw, "")
		if err != nil {
			t.Fatalf("ParsePlayEvent(%q) second pass: %v", raw, err)
		}
		if !reflect.DeepEqual(a, b) {
			t.Errorf("%q: two parses differ:\n%+v\n%+v", raw, a, b)
		}
	}
}

func TestPlayEventMemoized(t *testing.T) {
	p := NewPlay(1, HalfTop, "batter", "", "", "S7")
	a, err := p.PlayEvent()
	if err != nil {
		t.Fatal(err)
	}
	b, _ := p.PlayEvent()
	if a != b {
		t.Error("PlayEvent recomputed instead of cached")
	}
}

func TestUnclassifiableBatterEvent(t *testing.T) {
	p := NewPlay(1, HalfTop, "batter", "", "", "QZ9")
	if _, err := p.PlayEvent(); !errors.Is(err, ErrClassification) {
		t.Errorf("err = %v, want ErrClassification", err)
	}
}

func TestOutsBound(t *testing.T) {
	raws := []string{
		"K", "W", "S7", "D8.1-H", "HR", "64(1)3/GDP", "54(1)/FO/G/DP.3XH(42)",
		"K+CS2(26)/DP", "FC6.1X2", "E4.B-1", "HP", "NP", "BK.1-2", "5(2)4(1)3/GTP",
	}
	for _, raw := range raws {
		p := NewPlay(1, HalfTop, "batter", "", "", raw)
		p.RunnersBefore = BaseRunners{First: "a", Second: "b", Third: "c"}
		outs := mustOuts(t, p)
		if outs < 0 || outs > 3 {
			t.Errorf("%q: OutsMadeOnPlay = %d, out of range", raw, outs)
		}
	}
}

func TestOccupancyConservation(t *testing.T) {
	cases := []struct {
		raw    string
		before BaseRunners
	}{
		{"S7.1-2", BaseRunners{First: "a"}},
		{"D8.1-H;2-H", BaseRunners{First: "a", Second: "b"}},
		{"64(1)3/GDP", BaseRunners{First: "a"}},
		{"SB2;SB3", BaseRunners{First: "a", Second: "b"}},
		{"K", BaseRunners{Third: "c"}},
		{"W.1-2", BaseRunners{First: "a"}},
		{"FC6.2X3", BaseRunners{Second: "b"}},
	}
	for _, tc := range cases {
		p := NewPlay(1, HalfTop, "batter", "", "", tc.raw)
		p.RunnersBefore = tc.before
		re := mustRunnerEvent(t, p)

		pe, _ := p.PlayEvent()
		batterOn := 0
		if re.hasAdvanceFrom(BaseBatter) && !pe.Out {
			// batter occupies a base unless he scored or was retired
			batterOn = 1
			for _, s := range re.ScoringRunners {
				if s == p.BatterID {
					batterOn = 0
				}
			}
			for _, ra := range re.Advances {
				if ra.FromBase == BaseBatter && ra.Out {
					batterOn = 0
				}
			}
		}
		want := tc.before.Count() - re.Outs - re.Runs + batterOn
		if pe.Out && re.hasAdvanceFrom(BaseBatter) {
			// batter out counted in pe.Out, not re.Outs
			want = tc.before.Count() - re.Outs - re.Runs
		}
		if got := re.RunnersAfter.Count(); got != want {
			t.Errorf("%q before %s: after has %d runners, want %d (after %s)",
				tc.raw, tc.before, got, want, re.RunnersAfter)
		}
	}
}

func TestMultipleStolenBases(t *testing.T) {
	p := NewPlay(8, HalfTop, "batter", "", "", "SB3;SB2")
	p.RunnersBefore = BaseRunners{First: "a", Second: "b"}
	re := mustRunnerEvent(t, p)
	want := BaseRunners{Second: "a", Third: "b"}
	if re.RunnersAfter != want {
		t.Errorf("RunnersAfter = %s, want %s", re.RunnersAfter, want)
	}
}

func TestStealHomeScores(t *testing.T) {
	p := NewPlay(8, HalfBottom, "batter", "", "", "SBH")
	p.RunnersBefore = BaseRunners{Third: "flash"}
	re := mustRunnerEvent(t, p)
	if re.Runs != 1 || re.ScoringRunners[0] != "flash" {
		t.Errorf("steal of home not scored: runs=%d scorers=%v", re.Runs, re.ScoringRunners)
	}
}

func TestSacrificeFlyModifier(t *testing.T) {
	p := NewPlay(2, HalfBottom, "batter", "", "", "9/SF.3-H")
	p.RunnersBefore = BaseRunners{Third: "c"}
	pe, err := p.PlayEvent()
	if err != nil {
		t.Fatal(err)
	}
	if pe.AtBat || !pe.SacrificeFly || !pe.IsSacrifice() {
		t.Errorf("sacrifice fly flags wrong: %+v", pe)
	}
	re := mustRunnerEvent(t, p)
	if re.Runs != 1 {
		t.Errorf("Runs = %d, want 1", re.Runs)
	}
	if got := mustOuts(t, p); got != 1 {
		t.Errorf("OutsMadeOnPlay = %d, want 1", got)
	}
}

func TestEmptyBatterIDFallsBack(t *testing.T) {
	p := NewPlay(1, HalfTop, "", "", "", "S7")
	re := mustRunnerEvent(t, p)
	if re.RunnersAfter.First != UnknownBatter {
		t.Errorf("RunnersAfter.First = %q, want %q", re.RunnersAfter.First, UnknownBatter)
	}
}
