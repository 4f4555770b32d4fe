package game

import (
	"fmt"
	"log/slog"
	"strings"

	"scorebook/internal/eventfile"
	"scorebook/internal/retro"
)

// Game is a fully assembled game: half-innings of sequenced plays,
// lineup cards for both sides, and the normalized info records.
type Game struct {
	ID        string
	VisitTeam string
	HomeTeam  string
	Park      string
	Date      string
	UsesDH    bool

	Infos       []eventfile.Info
	HalfInnings []*HalfInning
	EarnedRuns  map[string]int
	Adjustments []eventfile.Adjustment
	Comments    []string

	lineups map[retro.Half]*LineupCard
}

// Assemble sequences a proto game's records into a Game. Info and data
// records that fail to parse are logged and skipped; a play record that
// fails to parse aborts the whole game.
func Assemble(pg *eventfile.ProtoGame, logger *slog.Logger) (*Game, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	g := &Game{
		ID:         pg.ID,
		VisitTeam:  pg.VisitTeam,
		HomeTeam:   pg.HomeTeam,
		Park:       pg.Park,
		Date:       pg.Date,
		UsesDH:     pg.UsesDH,
		EarnedRuns: make(map[string]int),
		lineups: map[retro.Half]*LineupCard{
			retro.HalfTop:    newLineupCard(retro.HalfTop),
			retro.HalfBottom: newLineupCard(retro.HalfBottom),
		},
	}

	playNumber := -1
	var current *HalfInning
	var pending []InningEvent
	var lastRunners retro.BaseRunners

	for _, rec := range pg.Records {
		switch rec.Kind {
		case eventfile.KindInfo:
			info, err := rec.Info()
			if err != nil {
				logger.Warn("skipping info record", "game", g.ID, "record", rec.String(), "error", err)
				continue
			}
			g.Infos = append(g.Infos, info)

		case eventfile.KindStart, eventfile.KindSub:
			ent, err := rec.Entrance()
			if err != nil {
				return nil, fmt.Errorf("game %s: %w", g.ID, err)
			}
			card := g.lineups[ent.Half]
			replacedID := ""
			if ent.Sub {
				if replaced := card.currentAtOrder(ent.BattingOrder); replaced != nil {
					replacedID = replaced.ID
					if lastRunners.ReplaceRunner(replaced.ID, ent.PlayerID) {
						logger.Debug("pinch runner takes over base",
							"game", g.ID, "in", ent.PlayerID, "out", replaced.ID)
					}
				}
			}
			card.add(ent, playNumber)
			if !ent.Sub {
				continue
			}
			ev := InningEvent{Sub: &Substitution{
				PlayNumber:   playNumber,
				PlayerID:     ent.PlayerID,
				Name:         ent.Name,
				Half:         ent.Half,
				BattingOrder: ent.BattingOrder,
				Position:     ent.Position,
				ReplacedID:   replacedID,
			}}
			if current != nil {
				current.Events = append(current.Events, ev)
			} else {
				pending = append(pending, ev)
			}

		case eventfile.KindPlay:
			play, err := rec.Play()
			if err != nil {
				return nil, fmt.Errorf("game %s: %w", g.ID, err)
			}
			playNumber++
			play.PlayNumber = playNumber
			if current == nil || play.Inning != current.Inning || play.Half != current.Half {
				if current != nil {
					current.EndPlayNumber = playNumber - 1
				}
				current = &HalfInning{
					Inning:          play.Inning,
					Half:            play.Half,
					StartPlayNumber: playNumber,
					Events:          pending,
				}
				pending = nil
				g.HalfInnings = append(g.HalfInnings, current)
				lastRunners = retro.BaseRunners{}
			}
			play.RunnersBefore = lastRunners
			re, err := play.RunnerEvent()
			if err != nil {
				return nil, fmt.Errorf("game %s: %w", g.ID, err)
			}
			for _, anomaly := range re.Anomalies {
				logger.Warn("baserunner anomaly",
					"game", g.ID, "play", playNumber, "raw", play.Raw, "detail", anomaly)
			}
			lastRunners = play.RunnersAfter
			current.Events = append(current.Events, InningEvent{Play: play})

		case eventfile.KindData:
			data, err := rec.Data()
			if err != nil {
				logger.Warn("skipping data record", "game", g.ID, "record", rec.String(), "error", err)
				continue
			}
			g.EarnedRuns[data.PlayerID] += data.Value

		case eventfile.KindBatAdj, eventfile.KindPitAdj, eventfile.KindLineAdj:
			adj, err := rec.Adjustment()
			if err != nil {
				logger.Warn("skipping adjustment record", "game", g.ID, "record", rec.String(), "error", err)
				continue
			}
			g.Adjustments = append(g.Adjustments, adj)

		case eventfile.KindComment:
			if text, err := rec.Comment(); err == nil {
				g.Comments = append(g.Comments, text)
			}

		case eventfile.KindVersion:
			// Carries no game content.

		default:
			logger.Warn("unrecognized record kind", "game", g.ID, "kind", rec.Kind)
		}
	}
	if current != nil {
		current.EndPlayNumber = playNumber
	}
	return g, nil
}

// Lineup returns the lineup card for the batting side of the given
// half.
func (g *Game) Lineup(half retro.Half) *LineupCard {
	return g.lineups[half]
}

// HalfInningAt returns the half-inning for the given inning and half,
// or nil when the game never reached it.
func (g *Game) HalfInningAt(inning int, half retro.Half) *HalfInning {
	for _, hi := range g.HalfInnings {
		if hi.Inning == inning && hi.Half == half {
			return hi
		}
	}
	return nil
}

// PlayByNumber returns the play with the given sequence number.
func (g *Game) PlayByNumber(n int) *retro.Play {
	for _, hi := range g.HalfInnings {
		if n < hi.StartPlayNumber || n > hi.EndPlayNumber {
			continue
		}
		for _, play := range hi.Plays() {
			if play.PlayNumber == n {
				return play
			}
		}
	}
	return nil
}

// Runs totals the score by side.
func (g *Game) Runs() (visitor, home int) {
	for _, hi := range g.HalfInnings {
		if hi.Half == retro.HalfTop {
			visitor += hi.Runs()
		} else {
			home += hi.Runs()
		}
	}
	return visitor, home
}

// Hits totals the base hits for the side batting in the given half.
func (g *Game) Hits(half retro.Half) int {
	hits := 0
	for _, hi := range g.HalfInnings {
		if hi.Half == half {
			hits += hi.Hits()
		}
	}
	return hits
}

// LeftOnBase totals the runners the given side stranded.
func (g *Game) LeftOnBase(half retro.Half) int {
	lob := 0
	for _, hi := range g.HalfInnings {
		if hi.Half == half {
			lob += hi.LeftOnBase()
		}
	}
	return lob
}

// NumInnings returns the number of innings the game reached, counting a
// partial final inning as a whole one.
func (g *Game) NumInnings() int {
	return (len(g.HalfInnings) + 1) / 2
}

// NumHalfInnings returns the number of half-innings actually played.
func (g *Game) NumHalfInnings() int {
	return len(g.HalfInnings)
}

// InfoByName returns the normalized value of the named info record, or
// the empty string when the record is absent or marked unknown.
func (g *Game) InfoByName(name string) string {
	name = strings.ToLower(name)
	for _, info := range g.Infos {
		if info.Name == name {
			return info.Value
		}
	}
	return ""
}

// Attendance returns the recorded attendance, or zero when unknown.
func (g *Game) Attendance() int {
	for _, info := range g.Infos {
		if info.Name == "attendance" {
			return info.Int()
		}
	}
	return 0
}
