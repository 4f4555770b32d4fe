// Package eventfile reads Retrosheet event files (.EVA/.EVN) into typed
// records grouped by game.
//
// An event file is a sequence of comma separated records encoded in
// Latin-1. Each game begins with an "id" record; every record that
// follows belongs to that game until the next "id". The reader performs
// no play parsing itself: play records expose a typed accessor that
// hands the raw play text to internal/retro, and game assembly happens
// in internal/game.
package eventfile
