package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"scorebook/internal/game"
	"scorebook/internal/retro"
)

// SaveGame writes an assembled game and its plays in one transaction,
// replacing any rows from an earlier ingest of the same game.
func (s *Store) SaveGame(ctx context.Context, g *game.Game, sourceFile, runID string) error {
	return retryOnBusy(ctx, func() error {
		return s.saveGameTx(ctx, g, sourceFile, runID)
	})
}

func (s *Store) saveGameTx(ctx context.Context, g *game.Game, sourceFile, runID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, g.ID); err != nil {
		return fmt.Errorf("delete previous %s: %w", g.ID, err)
	}

	visitorRuns, homeRuns := g.Runs()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO games (
            id, date, visit_team, home_team, park, uses_dh, innings,
            visitor_runs, home_runs, visitor_hits, home_hits,
            visitor_lob, home_lob, attendance,
            source_file, run_id, ingested_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.Date, g.VisitTeam, g.HomeTeam, g.Park, g.UsesDH, g.NumInnings(),
		visitorRuns, homeRuns,
		g.Hits(retro.HalfTop), g.Hits(retro.HalfBottom),
		g.LeftOnBase(retro.HalfTop), g.LeftOnBase(retro.HalfBottom),
		g.Attendance(),
		sourceFile, runID, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert game %s: %w", g.ID, err)
	}

	insert, err := tx.PrepareContext(ctx,
		`INSERT INTO plays (
            game_id, play_number, inning, half, batter_id, count, pitches,
            raw, outs, runs, rbis, is_hit, runners_after
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare play insert: %w", err)
	}
	defer insert.Close()

	for _, hi := range g.HalfInnings {
		for _, play := range hi.Plays() {
			outs, err := play.OutsMadeOnPlay()
			if err != nil {
				return fmt.Errorf("game %s play %d: %w", g.ID, play.PlayNumber, err)
			}
			re, err := play.RunnerEvent()
			if err != nil {
				return fmt.Errorf("game %s play %d: %w", g.ID, play.PlayNumber, err)
			}
			rbis, err := play.RBIs()
			if err != nil {
				return fmt.Errorf("game %s play %d: %w", g.ID, play.PlayNumber, err)
			}
			pe, err := play.PlayEvent()
			if err != nil {
				return fmt.Errorf("game %s play %d: %w", g.ID, play.PlayNumber, err)
			}
			_, err = insert.ExecContext(ctx,
				g.ID, play.PlayNumber, play.Inning, play.Half.String(),
				play.BatterID, play.Count, play.Pitches, play.Raw,
				outs, re.Runs, rbis, pe.IsHit(), play.RunnersAfter.String(),
			)
			if err != nil {
				return fmt.Errorf("insert play %d of %s: %w", play.PlayNumber, g.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit game %s: %w", g.ID, err)
	}
	return nil
}

const gameColumns = `id, date, visit_team, home_team, park, uses_dh, innings,
    visitor_runs, home_runs, visitor_hits, home_hits,
    visitor_lob, home_lob, attendance, source_file, run_id, ingested_at`

func scanGame(row interface{ Scan(...any) error }) (*GameRow, error) {
	var g GameRow
	var ingestedAt string
	err := row.Scan(
		&g.ID, &g.Date, &g.VisitTeam, &g.HomeTeam, &g.Park, &g.UsesDH, &g.Innings,
		&g.VisitorRuns, &g.HomeRuns, &g.VisitorHits, &g.HomeHits,
		&g.VisitorLOB, &g.HomeLOB, &g.Attendance,
		&g.SourceFile, &g.RunID, &ingestedAt,
	)
	if err != nil {
		return nil, err
	}
	if ts, err := time.Parse(time.RFC3339Nano, ingestedAt); err == nil {
		g.IngestedAt = ts
	}
	return &g, nil
}

// GetGame fetches one game by id.
func (s *Store) GetGame(ctx context.Context, id string) (*GameRow, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+gameColumns+` FROM games WHERE id = ?`, id)
	g, err := scanGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get game %s: %w", id, err)
	}
	return g, nil
}

// ListGames returns games matching the filter, most recent date first.
func (s *Store) ListGames(ctx context.Context, filter ListFilter) ([]*GameRow, error) {
	query := `SELECT ` + gameColumns + ` FROM games`
	var clauses []string
	var args []any
	if filter.Team != "" {
		clauses = append(clauses, `(home_team = ? OR visit_team = ?)`)
		args = append(args, filter.Team, filter.Team)
	}
	if filter.Year > 0 {
		clauses = append(clauses, `date LIKE ?`)
		args = append(args, fmt.Sprintf("%04d/%%", filter.Year))
	}
	if filter.Date != "" {
		clauses = append(clauses, `date = ?`)
		args = append(args, filter.Date)
	}
	for i, clause := range clauses {
		if i == 0 {
			query += ` WHERE ` + clause
		} else {
			query += ` AND ` + clause
		}
	}
	query += ` ORDER BY date DESC, id`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var games []*GameRow
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return games, nil
}

// PlaysForGame returns a game's plays in sequence order.
func (s *Store) PlaysForGame(ctx context.Context, gameID string) ([]*PlayRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT game_id, play_number, inning, half, batter_id, count, pitches,
                raw, outs, runs, rbis, is_hit, runners_after
         FROM plays WHERE game_id = ? ORDER BY play_number`, gameID)
	if err != nil {
		return nil, fmt.Errorf("plays for %s: %w", gameID, err)
	}
	defer rows.Close()

	var plays []*PlayRow
	for rows.Next() {
		var p PlayRow
		err := rows.Scan(
			&p.GameID, &p.PlayNumber, &p.Inning, &p.Half, &p.BatterID,
			&p.Count, &p.Pitches, &p.Raw, &p.Outs, &p.Runs, &p.RBIs,
			&p.IsHit, &p.RunnersAfter,
		)
		if err != nil {
			return nil, fmt.Errorf("scan play: %w", err)
		}
		plays = append(plays, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("plays for %s: %w", gameID, err)
	}
	return plays, nil
}

// TeamTotals rolls up wins, losses, and run totals for one team over
// every ingested game it played in. Year narrows to one season when
// positive.
func (s *Store) TeamTotals(ctx context.Context, team string, year int) (*TeamTotals, error) {
	query := `SELECT
        COUNT(1),
        COALESCE(SUM(CASE
            WHEN home_team = ? AND home_runs > visitor_runs THEN 1
            WHEN visit_team = ? AND visitor_runs > home_runs THEN 1
            ELSE 0 END), 0),
        COALESCE(SUM(CASE WHEN home_runs = visitor_runs THEN 1 ELSE 0 END), 0),
        COALESCE(SUM(CASE WHEN home_team = ? THEN home_runs ELSE visitor_runs END), 0),
        COALESCE(SUM(CASE WHEN home_team = ? THEN visitor_runs ELSE home_runs END), 0),
        COALESCE(SUM(CASE WHEN home_team = ? THEN home_hits ELSE visitor_hits END), 0)
     FROM games WHERE (home_team = ? OR visit_team = ?)`
	args := []any{team, team, team, team, team, team, team}
	if year > 0 {
		query += ` AND date LIKE ?`
		args = append(args, fmt.Sprintf("%04d/%%", year))
	}

	totals := &TeamTotals{Team: team}
	err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&totals.Games, &totals.Wins, &totals.Ties,
		&totals.RunsScored, &totals.RunsAllowed, &totals.Hits,
	)
	if err != nil {
		return nil, fmt.Errorf("totals for %s: %w", team, err)
	}
	totals.Losses = totals.Games - totals.Wins - totals.Ties
	return totals, nil
}

// CountGames returns the number of ingested games.
func (s *Store) CountGames(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM games`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count games: %w", err)
	}
	return n, nil
}
