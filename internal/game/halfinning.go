package game

import (
	"scorebook/internal/retro"
)

// InningEvent is one entry in a half-inning's event stream. Exactly one
// of Play and Sub is set.
type InningEvent struct {
	Play *retro.Play
	Sub  *Substitution
}

// HalfInning is one team's turn at bat: its plays and substitutions in
// order, bracketed by the play numbers it spans.
type HalfInning struct {
	Inning          int
	Half            retro.Half
	StartPlayNumber int
	EndPlayNumber   int
	Events          []InningEvent

	pas []*PlateAppearance
}

// Plays returns the half-inning's play events in order.
func (hi *HalfInning) Plays() []*retro.Play {
	var out []*retro.Play
	for _, ev := range hi.Events {
		if ev.Play != nil {
			out = append(out, ev.Play)
		}
	}
	return out
}

// LastPlay returns the final play of the half-inning, or nil when the
// half-inning recorded no plays.
func (hi *HalfInning) LastPlay() *retro.Play {
	for i := len(hi.Events) - 1; i >= 0; i-- {
		if hi.Events[i].Play != nil {
			return hi.Events[i].Play
		}
	}
	return nil
}

// Runs totals the runs scored in the half-inning.
func (hi *HalfInning) Runs() int {
	runs := 0
	for _, play := range hi.Plays() {
		if re, err := play.RunnerEvent(); err == nil {
			runs += re.Runs
		}
	}
	return runs
}

// Hits counts the batter hits in the half-inning.
func (hi *HalfInning) Hits() int {
	hits := 0
	for _, play := range hi.Plays() {
		if pe, err := play.PlayEvent(); err == nil && pe.IsHit() {
			hits++
		}
	}
	return hits
}

// Outs totals the outs recorded in the half-inning. Every half-inning
// except a game-ending one comes to three.
func (hi *HalfInning) Outs() int {
	outs := 0
	for _, play := range hi.Plays() {
		if n, err := play.OutsMadeOnPlay(); err == nil {
			outs += n
		}
	}
	return outs
}

// LeftOnBase counts the runners stranded when the half-inning ended.
func (hi *HalfInning) LeftOnBase() int {
	last := hi.LastPlay()
	if last == nil {
		return 0
	}
	return last.RunnersAfter.Count()
}

// PlateAppearances groups the half-inning's events into plate
// appearances. A new appearance begins whenever a play record names a
// different batter; when the previous event was a substitution the
// earlier batter's appearance is marked incomplete and the substitute
// inherits its number, since a pinch hitter continues the same turn at
// bat. The grouping is computed once and cached.
func (hi *HalfInning) PlateAppearances() []*PlateAppearance {
	if hi.pas != nil {
		return hi.pas
	}
	hi.pas = []*PlateAppearance{}

	var current *PlateAppearance
	outs := 0
	number := 0
	prevWasSub := false
	for _, ev := range hi.Events {
		if ev.Sub != nil {
			if current != nil {
				current.Events = append(current.Events, ev)
			}
			prevWasSub = true
			continue
		}
		play := ev.Play
		if current == nil || play.BatterID != current.BatterID {
			number++
			if current != nil {
				current.EndPlayNumber = play.PlayNumber - 1
				if prevWasSub {
					// A pinch hitter continues the interrupted turn
					// at bat, so the appearance number stands still.
					current.Incomplete = true
					number--
				}
			}
			current = &PlateAppearance{
				Inning:          hi.Inning,
				Half:            hi.Half,
				BatterID:        play.BatterID,
				StartPlayNumber: play.PlayNumber,
				EndPlayNumber:   hi.EndPlayNumber,
				OutsBefore:      outs,
				NumberInInning:  number,
			}
			hi.pas = append(hi.pas, current)
		}
		current.Events = append(current.Events, ev)
		if n, err := play.OutsMadeOnPlay(); err == nil {
			outs += n
		}
		prevWasSub = false
	}
	return hi.pas
}
