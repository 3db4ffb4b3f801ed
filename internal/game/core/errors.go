package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrCellBlocked        = errors.New("cell is blocked")
	ErrCellOccupied       = errors.New("cell is occupied")
	ErrUnknownUnit        = errors.New("unknown unit")
	ErrDeadUnit           = errors.New("unit is dead")
	ErrOutOfRange         = errors.New("target out of range")
	ErrUnknownAction      = errors.New("unknown action")
	ErrInvalidDepth       = errors.New("invalid search depth")
	ErrMissingTemplate    = errors.New("missing unit template")
	ErrInvalidState       = errors.New("invalid board state")
	ErrGameOver           = errors.New("match is over")
)

// WrapActionError adds the acting unit and its order to err
func WrapActionError(side Side, unitID int, action Action, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s unit %d: %s: %w", side, unitID, action, err)
}

// WrapSearchError adds the search depth to err
func WrapSearchError(depth int, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("search depth %d: %w", depth, err)
}
