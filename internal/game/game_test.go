package game

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"scorebook/internal/eventfile"
	"scorebook/internal/retro"
)

const fixtureGame = `id,SDN199605170
version,2
info,visteam,MON
info,hometeam,SDN
info,date,1996/05/17
info,usedh,false
info,attendance,25458
start,v1,"Visitor One",0,1,8
start,v2,"Visitor Two",0,2,6
start,v3,"Visitor Three",0,3,9
start,v4,"Visitor Four",0,4,3
start,v5,"Visitor Five",0,5,4
start,v6,"Visitor Six",0,6,5
start,h1,"Home One",1,1,8
start,h2,"Home Two",1,2,4
start,h3,"Home Three",1,3,7
start,h4,"Home Four",1,4,5
start,h5,"Home Five",1,5,3
start,h6,"Home Six",1,6,9
start,h7,"Home Seven",1,7,2
start,h8,"Home Eight",1,8,6
start,h9,"Home Nine",1,9,1
play,1,0,v1,22,CBBSS,K
play,1,0,v2,10,BX,S8/G
sub,v9,"Visitor Nine",0,2,12
play,1,0,v3,01,CX,64(1)3/GDP
play,1,1,h1,32,BBCBFB,W
play,1,1,h2,00,X,S9/L.1-3
play,1,1,h3,21,BBCX,HR/F78.3-H;1-H
play,1,1,h4,22,CSBBS,K
play,1,1,h5,00,X,8/F
play,1,1,h6,00,X,D7/L
play,1,1,h7,00,X,3/G
play,2,0,v4,00,,NP
sub,v10,"Visitor Ten",0,4,11
play,2,0,v10,22,CBBSS,K
play,2,0,v5,00,X,43/G
play,2,0,v6,00,X,8/F
play,2,1,h8,00,X,T9/F
play,2,1,h9,00,X,S8/G.3-H
data,er,h9,1
badj,v10,R
`

func assembleFixture(t *testing.T) *Game {
	t.Helper()
	file, err := eventfile.Parse(strings.NewReader(fixtureGame), "fixture")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	g, err := Assemble(file.ProtoGames[0], slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	return g
}

func TestAssembleHalfInningBoundaries(t *testing.T) {
	g := assembleFixture(t)
	if len(g.HalfInnings) != 4 {
		t.Fatalf("expected 4 half-innings, got %d", len(g.HalfInnings))
	}
	want := []struct {
		inning     int
		half       retro.Half
		start, end int
	}{
		{1, retro.HalfTop, 0, 2},
		{1, retro.HalfBottom, 3, 9},
		{2, retro.HalfTop, 10, 13},
		{2, retro.HalfBottom, 14, 15},
	}
	for i, w := range want {
		hi := g.HalfInnings[i]
		if hi.Inning != w.inning || hi.Half != w.half {
			t.Errorf("half-inning %d is %s %d", i, hi.Half, hi.Inning)
		}
		if hi.StartPlayNumber != w.start || hi.EndPlayNumber != w.end {
			t.Errorf("half-inning %d spans plays %d..%d, want %d..%d",
				i, hi.StartPlayNumber, hi.EndPlayNumber, w.start, w.end)
		}
	}
	if n := g.NumInnings(); n != 2 {
		t.Errorf("NumInnings = %d", n)
	}
}

func TestThreeOutsPerCompletedHalfInning(t *testing.T) {
	g := assembleFixture(t)
	for i, hi := range g.HalfInnings {
		if i == len(g.HalfInnings)-1 {
			continue
		}
		if outs := hi.Outs(); outs != 3 {
			t.Errorf("%s of inning %d recorded %d outs", hi.Half, hi.Inning, outs)
		}
	}
}

func TestGameAggregates(t *testing.T) {
	g := assembleFixture(t)
	visitor, home := g.Runs()
	if visitor != 0 || home != 4 {
		t.Errorf("score = %d-%d, want 0-4", visitor, home)
	}
	if hits := g.Hits(retro.HalfTop); hits != 1 {
		t.Errorf("visitor hits = %d", hits)
	}
	if hits := g.Hits(retro.HalfBottom); hits != 5 {
		t.Errorf("home hits = %d", hits)
	}
	if lob := g.LeftOnBase(retro.HalfTop); lob != 0 {
		t.Errorf("visitor LOB = %d", lob)
	}
	if lob := g.LeftOnBase(retro.HalfBottom); lob != 2 {
		t.Errorf("home LOB = %d", lob)
	}
	if g.Attendance() != 25458 {
		t.Errorf("attendance = %d", g.Attendance())
	}
	if g.InfoByName("date") != "1996/05/17" {
		t.Errorf("date info = %q", g.InfoByName("date"))
	}
	if g.EarnedRuns["h9"] != 1 {
		t.Errorf("earned runs = %v", g.EarnedRuns)
	}
	if len(g.Adjustments) != 1 || g.Adjustments[0].PlayerID != "v10" {
		t.Errorf("adjustments = %v", g.Adjustments)
	}
}

func TestPinchRunnerTakesOverBase(t *testing.T) {
	g := assembleFixture(t)
	play := g.PlayByNumber(2)
	if play == nil {
		t.Fatal("play 2 not found")
	}
	if got := play.RunnersBefore.First; got != "v9" {
		t.Errorf("runner on first before play 2 = %q, want the pinch runner", got)
	}
	if play.RunnersAfter.Count() != 0 {
		t.Errorf("bases not empty after the double play: %s", play.RunnersAfter)
	}
}

type logEntry struct {
	msg   string
	attrs map[string]string
}

type captureHandler struct {
	entries *[]logEntry
}

func (h captureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h captureHandler) Handle(_ context.Context, r slog.Record) error {
	entry := logEntry{msg: r.Message, attrs: map[string]string{}}
	r.Attrs(func(a slog.Attr) bool {
		entry.attrs[a.Key] = a.Value.String()
		return true
	})
	*h.entries = append(*h.entries, entry)
	return nil
}

func (h captureHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h captureHandler) WithGroup(string) slog.Handler { return h }

func TestPinchRunnerSwapLogsDirections(t *testing.T) {
	file, err := eventfile.Parse(strings.NewReader(fixtureGame), "fixture")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var entries []logEntry
	if _, err := Assemble(file.ProtoGames[0], slog.New(captureHandler{entries: &entries})); err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	for _, entry := range entries {
		if entry.msg != "pinch runner takes over base" {
			continue
		}
		if entry.attrs["in"] != "v9" || entry.attrs["out"] != "v2" {
			t.Errorf("swap logged in=%q out=%q, want in=v9 out=v2",
				entry.attrs["in"], entry.attrs["out"])
		}
		return
	}
	t.Error("no pinch runner swap logged")
}

func TestPinchHitterContinuesPlateAppearance(t *testing.T) {
	g := assembleFixture(t)
	hi := g.HalfInningAt(2, retro.HalfTop)
	if hi == nil {
		t.Fatal("top of the 2nd not found")
	}
	pas := hi.PlateAppearances()
	if len(pas) != 4 {
		t.Fatalf("expected 4 plate appearances, got %d", len(pas))
	}
	if pas[0].BatterID != "v4" || !pas[0].Incomplete {
		t.Errorf("first appearance = %s incomplete=%v", pas[0].BatterID, pas[0].Incomplete)
	}
	if pas[1].BatterID != "v10" || pas[1].Incomplete {
		t.Errorf("second appearance = %s incomplete=%v", pas[1].BatterID, pas[1].Incomplete)
	}
	if pas[0].NumberInInning != 1 || pas[1].NumberInInning != 1 {
		t.Errorf("shared turn numbered %d and %d, want 1 and 1",
			pas[0].NumberInInning, pas[1].NumberInInning)
	}
	if pas[2].NumberInInning != 2 || pas[3].NumberInInning != 3 {
		t.Errorf("later appearances numbered %d and %d",
			pas[2].NumberInInning, pas[3].NumberInInning)
	}
	if !pas[1].StrikeOut() {
		t.Error("pinch hitter's appearance should end in a strikeout")
	}
}

func TestOutsBeforeAccumulates(t *testing.T) {
	g := assembleFixture(t)
	hi := g.HalfInningAt(1, retro.HalfBottom)
	if hi == nil {
		t.Fatal("bottom of the 1st not found")
	}
	pas := hi.PlateAppearances()
	if len(pas) != 7 {
		t.Fatalf("expected 7 plate appearances, got %d", len(pas))
	}
	wantOuts := []int{0, 0, 0, 0, 1, 2, 2}
	for i, want := range wantOuts {
		if pas[i].OutsBefore != want {
			t.Errorf("appearance %d outs before = %d, want %d", i+1, pas[i].OutsBefore, want)
		}
	}
	if got := pas[6].OutsAfter(); got != 3 {
		t.Errorf("final appearance outs after = %d", got)
	}
	if !pas[2].IsHit() {
		t.Error("home run appearance should count as a hit")
	}
	if rbis := pas[2].RBIs(); rbis != 3 {
		t.Errorf("home run appearance RBIs = %d", rbis)
	}
	if !pas[0].BaseOnBalls() {
		t.Error("leadoff appearance should be a walk")
	}
	if pas[0].AtBat() {
		t.Error("a walk is not an at bat")
	}
}

func TestLineupCard(t *testing.T) {
	g := assembleFixture(t)
	visitors := g.Lineup(retro.HalfTop)
	if starters := visitors.Starters(); len(starters) != 6 {
		t.Fatalf("visitor starters = %d", len(starters))
	}
	pr, err := visitors.PlayerByID("v9")
	if err != nil {
		t.Fatalf("PlayerByID: %v", err)
	}
	if pr.Starter || pr.BattingOrder != 2 {
		t.Errorf("pinch runner entry = %+v", pr)
	}
	if len(pr.Positions) != 1 || pr.Positions[0] != 12 {
		t.Errorf("pinch runner positions = %v", pr.Positions)
	}
	if got := visitors.currentAtOrder(2); got == nil || got.ID != "v9" {
		t.Errorf("current batter at slot 2 = %v", got)
	}
	if PositionAbbrev(12) != "pr" || PositionAbbrev(1) != "p" || PositionAbbrev(0) != "unk" {
		t.Error("position abbreviations off")
	}
	home := g.Lineup(retro.HalfBottom)
	if starters := home.Starters(); len(starters) != 9 {
		t.Fatalf("home starters = %d", len(starters))
	}
}

func TestAssembleAbortsOnBadPlay(t *testing.T) {
	src := "id,BAD01\nplay,1,0,v1,00,X,QZ9\n"
	file, err := eventfile.Parse(strings.NewReader(src), "bad")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	_, err = Assemble(file.ProtoGames[0], nil)
	if err == nil {
		t.Fatal("expected an error for an unclassifiable play")
	}
	if !errors.Is(err, retro.ErrClassification) {
		t.Errorf("error = %v, want ErrClassification in the chain", err)
	}
	if !strings.Contains(err.Error(), "BAD01") {
		t.Errorf("error %q does not name the game", err)
	}
}
