package store

import "time"

// GameRow is one ingested game as stored in the games table.
type GameRow struct {
	ID          string
	Date        string
	VisitTeam   string
	HomeTeam    string
	Park        string
	UsesDH      bool
	Innings     int
	VisitorRuns int
	HomeRuns    int
	VisitorHits int
	HomeHits    int
	VisitorLOB  int
	HomeLOB     int
	Attendance  int
	SourceFile  string
	RunID       string
	IngestedAt  time.Time
}

// Score renders the final score in visitor-home order.
func (g GameRow) Score() (visitor, home int) {
	return g.VisitorRuns, g.HomeRuns
}

// PlayRow is one play as stored in the plays table.
type PlayRow struct {
	GameID       string
	PlayNumber   int
	Inning       int
	Half         string
	BatterID     string
	Count        string
	Pitches      string
	Raw          string
	Outs         int
	Runs         int
	RBIs         int
	IsHit        bool
	RunnersAfter string
}

// IngestErrorRow is one recorded ingest failure.
type IngestErrorRow struct {
	ID         int64
	RunID      string
	SourceFile string
	GameID     string
	Message    string
	CreatedAt  time.Time
}

// ListFilter narrows ListGames. Zero-valued fields match everything.
type ListFilter struct {
	Team  string
	Year  int
	Date  string
	Limit int
}

// TeamTotals is the season-to-date rollup for one team across every
// ingested game it appears in.
type TeamTotals struct {
	Team        string
	Games       int
	Wins        int
	Losses      int
	Ties        int
	RunsScored  int
	RunsAllowed int
	Hits        int
}
