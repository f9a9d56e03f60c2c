package apperror

import "errors"

var (
	ErrGameNotActive = errors.New("game is not active")
	ErrNotYourTurn   = errors.New("it's not your turn")
	ErrCellOccupied  = errors.New("cell is already occupied")
	ErrInvalidCell   = errors.New("invalid cell index")
	ErrAlreadyJoined = errors.New("participant already joined")
	ErrRosterFull    = errors.New("roster is full")
	ErrNotInRoster   = errors.New("participant is not in roster")
)
