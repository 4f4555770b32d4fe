// Package game assembles parsed event file records into full games:
// sequenced plays grouped into half-innings and plate appearances,
// lineup cards per side, and per-game aggregates such as runs, hits,
// and runners left on base.
//
// Assembly is strict about plays. A play record that fails to parse
// aborts the game, because every play after it would inherit a wrong
// baserunner state. Occupancy anomalies inside an otherwise parseable
// play are collected and logged instead.
package game
