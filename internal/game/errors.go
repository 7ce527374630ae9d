package game

import "errors"

// Error kinds returned by the engine. Every rejected command leaves the game
// untouched; details are attached with fmt.Errorf("%w: ...") so callers
// should match with errors.Is.
var (
	ErrInvalidInput            = errors.New("invalid input")
	ErrInvalidMove             = errors.New("invalid move")
	ErrInvalidSuggestion       = errors.New("invalid suggestion")
	ErrInvalidAccusationFormat = errors.New("invalid accusation format")
	ErrInvalidConfiguration    = errors.New("invalid configuration")
	ErrNotYourTurn             = errors.New("not your turn")
	ErrGameOver                = errors.New("game over")
	ErrNoPendingDisproof       = errors.New("no disproof pending")
	ErrInvalidDisproofCard     = errors.New("card cannot disprove the suggestion")
)
