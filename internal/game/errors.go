package game

import "errors"

// Failure kinds for game operations. Returned errors wrap one of these,
// so callers should compare with errors.Is.
var (
	ErrGameInactive     = errors.New("game is over")
	ErrDuplicateWord    = errors.New("word already in dictionary")
	ErrWordNotFound     = errors.New("word not in dictionary")
	ErrNoCluesRemaining = errors.New("no clues remaining in this active game")
	ErrInvalidRecord    = errors.New("invalid game record")
)
