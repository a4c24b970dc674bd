package cluequiz

import "errors"

// Guard errors. A session that returns one of these was left untouched, so
// callers may treat them as ignored operations rather than failures.
var (
	ErrGameNotActive  = errors.New("no game in progress")
	ErrGameOver       = errors.New("game has ended")
	ErrNoRound        = errors.New("no item in play")
	ErrRoundActive    = errors.New("round already in progress")
	ErrClueOutOfRange = errors.New("clue index out of range")
	ErrTeamNotFound   = errors.New("team not found")
	ErrRosterFull     = errors.New("roster is full")
	ErrInvalidTeam    = errors.New("invalid team")
	ErrInvalidSetup   = errors.New("invalid game setup")
	ErrInvalidItem    = errors.New("invalid item")
)
