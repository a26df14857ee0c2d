package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrGameIsNotStarted = errors.New("game is not started")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrInvalidCell      = errors.New("invalid cell")

	ErrInvalidBoardSize = errors.New("invalid board size")
	ErrInvalidMark      = errors.New("invalid mark")
	ErrInvalidPosition  = errors.New("invalid board position")

	// ErrBoardTerminal is returned when a move is requested for a board that is already won or full.
	ErrBoardTerminal = errors.New("board is already terminal")
	// ErrDoubleWin means both marks hold a complete line, which no legal sequence of moves can produce.
	ErrDoubleWin = errors.New("both marks have a winning line")
)
