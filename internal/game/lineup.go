package game

import (
	"fmt"

	"scorebook/internal/eventfile"
	"scorebook/internal/retro"
)

// Position numbers 1 through 12 as Retrosheet uses them. 10 is the
// designated hitter, 11 a pinch hitter, 12 a pinch runner.
var positionAbbrevs = []string{
	"unk", "p", "c", "1b", "2b", "3b", "ss", "lf", "cf", "rf", "dh", "ph", "pr",
}

// PositionAbbrev returns the scorecard abbreviation for a position
// number, or "unk" for anything out of range.
func PositionAbbrev(pos int) string {
	if pos < 1 || pos >= len(positionAbbrevs) {
		return positionAbbrevs[0]
	}
	return positionAbbrevs[pos]
}

// PlayerGame is one player's appearance in a game for one side: the
// lineup slot they occupied and every position they played, in order.
type PlayerGame struct {
	ID              string
	Name            string
	Half            retro.Half
	BattingOrder    int
	Positions       []int
	Starter         bool
	EntryPlayNumber int
}

// Substitution records a mid-game lineup change and who it replaced.
type Substitution struct {
	PlayNumber   int
	PlayerID     string
	Name         string
	Half         retro.Half
	BattingOrder int
	Position     int
	ReplacedID   string
}

// IsPinchRunner reports whether the substitute entered as a pinch
// runner.
func (s *Substitution) IsPinchRunner() bool { return s.Position == 12 }

// LineupCard tracks one side's batting order over the course of a
// game. Slot 0 holds non-batting pitchers in games with a designated
// hitter.
type LineupCard struct {
	Half    retro.Half
	ByOrder [10][]*PlayerGame
	players map[string]*PlayerGame
}

func newLineupCard(half retro.Half) *LineupCard {
	return &LineupCard{Half: half, players: make(map[string]*PlayerGame)}
}

// add registers a start or sub record with the card and returns the
// player's entry. Re-entries append the new position to the existing
// entry rather than duplicating the player.
func (lc *LineupCard) add(ent eventfile.Entrance, playNumber int) *PlayerGame {
	if pg, ok := lc.players[ent.PlayerID]; ok {
		pg.Positions = append(pg.Positions, ent.Position)
		return pg
	}
	pg := &PlayerGame{
		ID:              ent.PlayerID,
		Name:            ent.Name,
		Half:            ent.Half,
		BattingOrder:    ent.BattingOrder,
		Positions:       []int{ent.Position},
		Starter:         !ent.Sub,
		EntryPlayNumber: playNumber,
	}
	lc.players[pg.ID] = pg
	lc.ByOrder[ent.BattingOrder] = append(lc.ByOrder[ent.BattingOrder], pg)
	return pg
}

// PlayerByID returns the entry for a player id.
func (lc *LineupCard) PlayerByID(id string) (*PlayerGame, error) {
	pg, ok := lc.players[id]
	if !ok {
		return nil, fmt.Errorf("player %q not on lineup card", id)
	}
	return pg, nil
}

// currentAtOrder returns the player most recently entered at a batting
// order slot, or nil when the slot is empty.
func (lc *LineupCard) currentAtOrder(order int) *PlayerGame {
	if order < 0 || order > 9 {
		return nil
	}
	slot := lc.ByOrder[order]
	if len(slot) == 0 {
		return nil
	}
	return slot[len(slot)-1]
}

// Starters returns the nine (or ten, with a non-batting pitcher)
// players who began the game, ordered by lineup slot.
func (lc *LineupCard) Starters() []*PlayerGame {
	var out []*PlayerGame
	for order := 0; order <= 9; order++ {
		for _, pg := range lc.ByOrder[order] {
			if pg.Starter {
				out = append(out, pg)
			}
		}
	}
	return out
}
