// meta/meta.go
package meta

// NUM_PLAYERS is the number of players of a standard game.
const NUM_PLAYERS = 2

// DEPTH is the default search depth in plies (a turn is two plies).
const DEPTH = 3

// GO_ROUTINES is the default number of goroutines searching the root.
const GO_ROUTINES = 1

// EVALUATION is the default heuristic name.
const EVALUATION = "pressure"

// MAX_PLIES caps the length of a game played by the engine.
const MAX_PLIES = 300

// GAMES is the default number of games per matchup in experiments.
const GAMES = 10
