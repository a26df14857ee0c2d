package entity

import "fmt"

// Move is a cell coordinate, 0-indexed.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func NewMove(row, col int) Move {
	return Move{Row: row, Col: col}
}

// MoveFromIndex converts a row-major linear index back to a coordinate.
func MoveFromIndex(index, size int) Move {
	return Move{Row: index / size, Col: index % size}
}

func (that Move) Index(size int) int {
	return that.Row*size + that.Col
}

func (that Move) String() string {
	return fmt.Sprintf("(%d, %d)", that.Row, that.Col)
}

// Human renders the move 1-indexed, the way players count cells.
func (that Move) Human() string {
	return fmt.Sprintf("%d,%d", that.Row+1, that.Col+1)
}
