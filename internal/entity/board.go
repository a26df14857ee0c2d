package entity

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

const MinBoardSize = 3

type Mark string

const (
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
	PlayerTie Mark = "-"

	EmptyCell Mark = ""
)

const (
	rowSeparator = "/"
	emptySymbol  = '.'
)

// Marks is the pair of marks in play. Scores are always reported from Max's point of view.
type Marks struct {
	Max Mark
	Min Mark
}

func DefaultMarks() Marks {
	return Marks{Max: PlayerX, Min: PlayerO}
}

// Board is an N×N grid. Cells are stored row-major.
type Board struct {
	size   int
	cells  []Mark
	filled int
	marks  Marks
}

func NewBoard(size int) (*Board, error) {
	return NewBoardWithMarks(size, DefaultMarks())
}

func NewBoardWithMarks(size int, marks Marks) (*Board, error) {
	if size < MinBoardSize {
		return nil, fmt.Errorf("%w: %d, must be at least %d", apperror.ErrInvalidBoardSize, size, MinBoardSize)
	}

	if !validMark(marks.Max) || !validMark(marks.Min) || marks.Max == marks.Min {
		return nil, fmt.Errorf("%w: %q and %q", apperror.ErrInvalidMark, marks.Max, marks.Min)
	}

	return &Board{
		size:  size,
		cells: make([]Mark, size*size),
		marks: marks,
	}, nil
}

func validMark(mark Mark) bool {
	return len(mark) == 1 && mark != PlayerTie && mark[0] != emptySymbol && mark != rowSeparator
}

func (that *Board) Size() int {
	return that.size
}

func (that *Board) Marks() Marks {
	return that.marks
}

// Opponent returns the other mark in play, or EmptyCell if mark is not in play.
func (that *Board) Opponent(mark Mark) Mark {
	switch mark {
	case that.marks.Max:
		return that.marks.Min
	case that.marks.Min:
		return that.marks.Max
	default:
		return EmptyCell
	}
}

func (that *Board) InPlay(mark Mark) bool {
	return mark != EmptyCell && (mark == that.marks.Max || mark == that.marks.Min)
}

func (that *Board) Contains(move Move) bool {
	return move.Row >= 0 && move.Row < that.size && move.Col >= 0 && move.Col < that.size
}

func (that *Board) Get(move Move) Mark {
	if !that.Contains(move) {
		return EmptyCell
	}

	return that.cells[move.Index(that.size)]
}

// AvailableCells returns the empty cells in row-major order.
func (that *Board) AvailableCells() []Move {
	moves := make([]Move, 0, len(that.cells)-that.filled)
	for i, cell := range that.cells {
		if cell == EmptyCell {
			moves = append(moves, MoveFromIndex(i, that.size))
		}
	}

	return moves
}

// Place puts mark on an empty cell. It returns false and leaves the board
// unchanged when the cell is occupied, off the board, or mark is not in play.
func (that *Board) Place(move Move, mark Mark) bool {
	return that.PlaceMark(move, mark) == nil
}

// PlaceMark is Place with the reason for a refusal.
func (that *Board) PlaceMark(move Move, mark Mark) error {
	if !that.Contains(move) {
		return fmt.Errorf("%w: %s on %dx%d board", apperror.ErrInvalidCell, move, that.size, that.size)
	}

	if !that.InPlay(mark) {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidMark, mark)
	}

	index := move.Index(that.size)
	if that.cells[index] != EmptyCell {
		return apperror.ErrCellOccupied
	}

	that.cells[index] = mark
	that.filled++

	return nil
}

// Clear empties a cell. Clearing an empty or off-board cell does nothing.
func (that *Board) Clear(move Move) {
	if !that.Contains(move) {
		return
	}

	index := move.Index(that.size)
	if that.cells[index] == EmptyCell {
		return
	}

	that.cells[index] = EmptyCell
	that.filled--
}

func (that *Board) IsFull() bool {
	return that.filled == len(that.cells)
}

func (that *Board) Count(mark Mark) int {
	count := 0
	for _, cell := range that.cells {
		if cell == mark {
			count++
		}
	}

	return count
}

// NextMark infers whose turn it is, assuming Max moved first.
func (that *Board) NextMark() Mark {
	if that.Count(that.marks.Max) > that.Count(that.marks.Min) {
		return that.marks.Min
	}

	return that.marks.Max
}

func (that *Board) HasWon(mark Mark) bool {
	return HasWon(that, mark)
}

// Winner returns the mark holding a complete line, or EmptyCell.
func (that *Board) Winner() (Mark, error) {
	maxWon := that.HasWon(that.marks.Max)
	minWon := that.HasWon(that.marks.Min)

	switch {
	case maxWon && minWon:
		return EmptyCell, fmt.Errorf("%w: %s", apperror.ErrDoubleWin, that)
	case maxWon:
		return that.marks.Max, nil
	case minWon:
		return that.marks.Min, nil
	default:
		return EmptyCell, nil
	}
}

// IsTerminal reports whether the game on this board is over.
func (that *Board) IsTerminal() (bool, error) {
	winner, err := that.Winner()
	if err != nil {
		return false, err
	}

	return winner != EmptyCell || that.IsFull(), nil
}

func (that *Board) Clone() *Board {
	cells := make([]Mark, len(that.cells))
	copy(cells, that.cells)

	return &Board{
		size:   that.size,
		cells:  cells,
		filled: that.filled,
		marks:  that.marks,
	}
}

func (that *Board) Equal(other *Board) bool {
	if other == nil || that.size != other.size || that.marks != other.marks {
		return false
	}

	for i := range that.cells {
		if that.cells[i] != other.cells[i] {
			return false
		}
	}

	return true
}

// String renders the board as rows separated by "/", with "." for empty cells,
// e.g. "XO./.X./..O". ParseBoard reads the same format.
func (that *Board) String() string {
	var sb strings.Builder
	sb.Grow(len(that.cells) + that.size)

	for i, cell := range that.cells {
		if i > 0 && i%that.size == 0 {
			sb.WriteString(rowSeparator)
		}

		if cell == EmptyCell {
			sb.WriteByte(emptySymbol)
			continue
		}

		sb.WriteString(string(cell))
	}

	return sb.String()
}

// ParseBoard reads a board written by Board.String using the default marks.
func ParseBoard(position string) (*Board, error) {
	return ParseBoardWithMarks(position, DefaultMarks())
}

func ParseBoardWithMarks(position string, marks Marks) (*Board, error) {
	rows := strings.Split(strings.TrimSpace(position), rowSeparator)

	board, err := NewBoardWithMarks(len(rows), marks)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", apperror.ErrInvalidPosition, position, err)
	}

	for row, line := range rows {
		if len(line) != board.size {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", apperror.ErrInvalidPosition, row, len(line), board.size)
		}

		for col := range len(line) {
			if line[col] == emptySymbol {
				continue
			}

			if err = board.PlaceMark(NewMove(row, col), Mark(line[col:col+1])); err != nil {
				return nil, fmt.Errorf("%w: row %d col %d: %w", apperror.ErrInvalidPosition, row, col, err)
			}
		}
	}

	return board, nil
}

type boardJSON struct {
	Size     int    `json:"size"`
	Position string `json:"position"`
	Max      Mark   `json:"max"`
	Min      Mark   `json:"min"`
}

func (that *Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(boardJSON{
		Size:     that.size,
		Position: that.String(),
		Max:      that.marks.Max,
		Min:      that.marks.Min,
	})
}

func (that *Board) UnmarshalJSON(data []byte) error {
	var raw boardJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal board: %w", err)
	}

	marks := Marks{Max: raw.Max, Min: raw.Min}
	if marks.Max == EmptyCell && marks.Min == EmptyCell {
		marks = DefaultMarks()
	}

	board, err := ParseBoardWithMarks(raw.Position, marks)
	if err != nil {
		return err
	}

	if raw.Size != 0 && raw.Size != board.size {
		return fmt.Errorf("%w: size %d does not match position %q", apperror.ErrInvalidPosition, raw.Size, raw.Position)
	}

	*that = *board

	return nil
}
