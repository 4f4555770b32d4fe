// Package retro parses Retrosheet play notation and reconstructs baserunner
// state play by play.
//
// A raw play outcome such as "S9/L34D/R932/U1.2-H;1-H(E3/TH)(UR)(NR);B-2"
// carries two sections separated by the first period: the batter section
// (what the batter did) and an optional runner section (semicolon-delimited
// advance tokens). PlayEvent classifies the batter section through an
// ordered, first-match-wins chain of pattern matchers; RunnerEvent merges
// the explicit advance tokens with advances implied by the classification
// (stolen bases, force outs, the batter's own advance) and applies them, in
// a fixed precedence order, against the baserunner occupancy carried over
// from the previous play.
//
// The encoding omits "obvious" movement, so a parser that only reads the
// runner section undercounts outs and runs. The duplicate guard in
// RunnerEvent exists because the same movement can be described both
// explicitly and implicitly on one play.
//
// Plays within a half-inning have a hard sequential dependency: each play's
// runners-before is the previous play's runners-after. Nothing in this
// package does I/O; callers own file reading and game assembly.
package retro
