package season

import (
	"fmt"
	"log/slog"
	"sort"

	"scorebook/internal/eventfile"
	"scorebook/internal/game"
)

// Collection spans a range of season years under one root directory
// and assembles the games that pass its filter.
type Collection struct {
	Root      string
	YearStart int
	YearEnd   int
	Filter    Filter
}

// NewCollection covers the inclusive year range under root.
func NewCollection(root string, yearStart, yearEnd int) *Collection {
	if yearEnd < yearStart {
		yearEnd = yearStart
	}
	return &Collection{Root: root, YearStart: yearStart, YearEnd: yearEnd}
}

// ProtoGames parses every matching game across the year range, sorted
// by date and then game id.
func (c *Collection) ProtoGames() ([]*eventfile.ProtoGame, error) {
	var out []*eventfile.ProtoGame
	for year := c.YearStart; year <= c.YearEnd; year++ {
		dir, err := OpenDirectory(c.Root, year)
		if err != nil {
			return nil, err
		}
		games, err := dir.ProtoGames(c.Filter)
		if err != nil {
			return nil, err
		}
		out = append(out, games...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Games assembles every matching game. Assembly failures carry the
// offending game id in the error.
func (c *Collection) Games(logger *slog.Logger) ([]*game.Game, error) {
	protos, err := c.ProtoGames()
	if err != nil {
		return nil, err
	}
	games := make([]*game.Game, 0, len(protos))
	for _, pg := range protos {
		g, err := game.Assemble(pg, logger)
		if err != nil {
			return nil, fmt.Errorf("assemble: %w", err)
		}
		games = append(games, g)
	}
	return games, nil
}
