package game

import (
	"fmt"

	"scorebook/internal/retro"
)

// PlateAppearance is one batter's turn at the plate: the plays it
// spans, where it sat in the inning, and the out count when it began.
// Incomplete marks a turn handed off to a pinch hitter.
type PlateAppearance struct {
	Inning          int
	Half            retro.Half
	BatterID        string
	StartPlayNumber int
	EndPlayNumber   int
	OutsBefore      int
	NumberInInning  int
	Incomplete      bool
	Events          []InningEvent
}

func (pa *PlateAppearance) String() string {
	return fmt.Sprintf("%s %d, PA %d: %s", pa.Half, pa.Inning, pa.NumberInInning, pa.BatterID)
}

// LastPlay returns the final play of the appearance. Every appearance
// holds at least one play by construction.
func (pa *PlateAppearance) LastPlay() *retro.Play {
	for i := len(pa.Events) - 1; i >= 0; i-- {
		if pa.Events[i].Play != nil {
			return pa.Events[i].Play
		}
	}
	return nil
}

func (pa *PlateAppearance) lastPlayEvent() *retro.PlayEvent {
	last := pa.LastPlay()
	if last == nil {
		return nil
	}
	pe, err := last.PlayEvent()
	if err != nil {
		return nil
	}
	return pe
}

// IsHit reports whether the appearance ended in a base hit.
func (pa *PlateAppearance) IsHit() bool {
	pe := pa.lastPlayEvent()
	return pe != nil && pe.IsHit()
}

// BaseOnBalls reports whether the appearance ended in a walk.
func (pa *PlateAppearance) BaseOnBalls() bool {
	pe := pa.lastPlayEvent()
	return pe != nil && pe.BaseOnBalls
}

// StrikeOut reports whether the appearance ended in a strikeout.
func (pa *PlateAppearance) StrikeOut() bool {
	pe := pa.lastPlayEvent()
	return pe != nil && pe.StrikeOut
}

// AtBat reports whether the appearance counts as an official at bat.
func (pa *PlateAppearance) AtBat() bool {
	pe := pa.lastPlayEvent()
	return pe != nil && pe.AtBat
}

// RBIs counts the runs batted in across the appearance.
func (pa *PlateAppearance) RBIs() int {
	total := 0
	for _, ev := range pa.Events {
		if ev.Play == nil {
			continue
		}
		if n, err := ev.Play.RBIs(); err == nil {
			total += n
		}
	}
	return total
}

// OutsAfter returns the out count once the appearance finished.
func (pa *PlateAppearance) OutsAfter() int {
	outs := pa.OutsBefore
	for _, ev := range pa.Events {
		if ev.Play == nil {
			continue
		}
		if n, err := ev.Play.OutsMadeOnPlay(); err == nil {
			outs += n
		}
	}
	return outs
}

// RunnersAfter returns the baserunner state when the appearance ended.
func (pa *PlateAppearance) RunnersAfter() retro.BaseRunners {
	last := pa.LastPlay()
	if last == nil {
		return retro.BaseRunners{}
	}
	return last.RunnersAfter
}
