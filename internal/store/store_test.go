package store_test

import (
	"context"
	"errors"
	"testing"

	"scorebook/internal/store"
	"scorebook/internal/testsupport"
)

func TestSaveAndGetGame(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	g := testsupport.MustAssemble(t, testsupport.SampleGame)

	ctx := context.Background()
	if err := st.SaveGame(ctx, g, "1996SDN.EVN", "run-1"); err != nil {
		t.Fatalf("SaveGame: %v", err)
	}

	row, err := st.GetGame(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetGame: %v", err)
	}
	if row.VisitTeam != "MON" || row.HomeTeam != "SDN" {
		t.Errorf("teams = %q vs %q", row.VisitTeam, row.HomeTeam)
	}
	visitor, home := row.Score()
	if visitor != 1 || home != 2 {
		t.Errorf("score = %d-%d, want 1-2", visitor, home)
	}
	if row.Attendance != 25458 {
		t.Errorf("attendance = %d", row.Attendance)
	}
	if row.RunID != "run-1" || row.SourceFile != "1996SDN.EVN" {
		t.Errorf("provenance = %q %q", row.RunID, row.SourceFile)
	}
	if row.IngestedAt.IsZero() {
		t.Error("ingested_at not recorded")
	}
}

func TestSaveGameIsIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	g := testsupport.MustAssemble(t, testsupport.SampleGame)

	ctx := context.Background()
	for _, run := range []string{"run-1", "run-2"} {
		if err := st.SaveGame(ctx, g, "1996SDN.EVN", run); err != nil {
			t.Fatalf("SaveGame (%s): %v", run, err)
		}
	}

	n, err := st.CountGames(ctx)
	if err != nil {
		t.Fatalf("CountGames: %v", err)
	}
	if n != 1 {
		t.Errorf("game count = %d after re-ingest", n)
	}
	row, err := st.GetGame(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetGame: %v", err)
	}
	if row.RunID != "run-2" {
		t.Errorf("run id = %q, want the later run", row.RunID)
	}
}

func TestGetGameNotFound(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	_, err := st.GetGame(context.Background(), "XXX000000000")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestPlaysForGame(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	g := testsupport.MustAssemble(t, testsupport.SampleGame)

	ctx := context.Background()
	if err := st.SaveGame(ctx, g, "1996SDN.EVN", "run-1"); err != nil {
		t.Fatalf("SaveGame: %v", err)
	}
	plays, err := st.PlaysForGame(ctx, g.ID)
	if err != nil {
		t.Fatalf("PlaysForGame: %v", err)
	}
	if len(plays) != 14 {
		t.Fatalf("play count = %d", len(plays))
	}
	for i, p := range plays {
		if p.PlayNumber != i {
			t.Fatalf("plays out of order at %d: %d", i, p.PlayNumber)
		}
	}
	hr := plays[4]
	if hr.Runs != 2 || hr.RBIs != 2 || !hr.IsHit {
		t.Errorf("home run row = %+v", hr)
	}
	if plays[0].Outs != 1 || plays[0].Half != "top" {
		t.Errorf("strikeout row = %+v", plays[0])
	}
}

func TestListGamesFilters(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	g := testsupport.MustAssemble(t, testsupport.SampleGame)

	ctx := context.Background()
	if err := st.SaveGame(ctx, g, "1996SDN.EVN", "run-1"); err != nil {
		t.Fatalf("SaveGame: %v", err)
	}

	byTeam, err := st.ListGames(ctx, store.ListFilter{Team: "SDN"})
	if err != nil {
		t.Fatalf("ListGames: %v", err)
	}
	if len(byTeam) != 1 {
		t.Errorf("SDN games = %d", len(byTeam))
	}
	none, err := st.ListGames(ctx, store.ListFilter{Team: "BAL"})
	if err != nil {
		t.Fatalf("ListGames: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("BAL games = %d", len(none))
	}
	byDate, err := st.ListGames(ctx, store.ListFilter{Date: "1996/05/17", Limit: 5})
	if err != nil {
		t.Fatalf("ListGames: %v", err)
	}
	if len(byDate) != 1 {
		t.Errorf("dated games = %d", len(byDate))
	}
	byYear, err := st.ListGames(ctx, store.ListFilter{Year: 1996})
	if err != nil {
		t.Fatalf("ListGames: %v", err)
	}
	if len(byYear) != 1 {
		t.Errorf("1996 games = %d", len(byYear))
	}
	otherYear, err := st.ListGames(ctx, store.ListFilter{Year: 1995})
	if err != nil {
		t.Fatalf("ListGames: %v", err)
	}
	if len(otherYear) != 0 {
		t.Errorf("1995 games = %d", len(otherYear))
	}
}

func TestTeamTotals(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	g := testsupport.MustAssemble(t, testsupport.SampleGame)

	ctx := context.Background()
	if err := st.SaveGame(ctx, g, "1996SDN.EVN", "run-1"); err != nil {
		t.Fatalf("SaveGame: %v", err)
	}

	home, err := st.TeamTotals(ctx, "SDN", 1996)
	if err != nil {
		t.Fatalf("TeamTotals: %v", err)
	}
	if home.Games != 1 || home.Wins != 1 || home.Losses != 0 {
		t.Errorf("SDN record = %d-%d in %d games", home.Wins, home.Losses, home.Games)
	}
	if home.RunsScored != 2 || home.RunsAllowed != 1 {
		t.Errorf("SDN runs = %d for, %d against", home.RunsScored, home.RunsAllowed)
	}

	visitor, err := st.TeamTotals(ctx, "MON", 0)
	if err != nil {
		t.Fatalf("TeamTotals: %v", err)
	}
	if visitor.Wins != 0 || visitor.Losses != 1 {
		t.Errorf("MON record = %d-%d", visitor.Wins, visitor.Losses)
	}

	empty, err := st.TeamTotals(ctx, "SDN", 1995)
	if err != nil {
		t.Fatalf("TeamTotals: %v", err)
	}
	if empty.Games != 0 {
		t.Errorf("1995 games = %d", empty.Games)
	}
}

func TestIngestErrors(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	if err := st.RecordIngestError(ctx, "run-1", "1996SDN.EVN", "SDN199605990", "unclassifiable batter event"); err != nil {
		t.Fatalf("RecordIngestError: %v", err)
	}
	if err := st.RecordIngestError(ctx, "run-2", "1996BAL.EVA", "", "open event file"); err != nil {
		t.Fatalf("RecordIngestError: %v", err)
	}

	run1, err := st.IngestErrors(ctx, "run-1")
	if err != nil {
		t.Fatalf("IngestErrors: %v", err)
	}
	if len(run1) != 1 || run1[0].GameID != "SDN199605990" {
		t.Errorf("run-1 errors = %v", run1)
	}
	all, err := st.IngestErrors(ctx, "")
	if err != nil {
		t.Fatalf("IngestErrors: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("all errors = %d", len(all))
	}
}
