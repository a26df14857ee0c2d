package entity

// A line is N cells starting at a linear index and advancing by a fixed stride.
type line struct {
	start  int
	stride int
}

func rowLine(row, n int) line { return line{start: row * n, stride: 1} }

func colLine(col, n int) line { return line{start: col, stride: n} }

func mainDiag(n int) line { return line{start: 0, stride: n + 1} }

// antiDiag runs from the bottom-left corner to the top-right one.
func antiDiag(n int) line { return line{start: (n - 1) * n, stride: 1 - n} }

// lines lists the 2N+2 winning lines of an N×N board: rows, columns,
// the main diagonal and the anti-diagonal.
func lines(size int) []line {
	result := make([]line, 0, 2*size+2)
	for i := range size {
		result = append(result, rowLine(i, size))
	}

	for i := range size {
		result = append(result, colLine(i, size))
	}

	return append(result, mainDiag(size), antiDiag(size))
}

// WinLines returns the coordinates of every winning line of an N×N board.
func WinLines(size int) [][]Move {
	all := lines(size)

	result := make([][]Move, 0, len(all))
	for _, l := range all {
		moves := make([]Move, 0, size)
		for k := range size {
			moves = append(moves, MoveFromIndex(l.start+k*l.stride, size))
		}
		result = append(result, moves)
	}

	return result
}

func (that *Board) lineFilled(l line, mark Mark) bool {
	for k := range that.size {
		if that.cells[l.start+k*l.stride] != mark {
			return false
		}
	}

	return true
}

// HasWon reports whether mark fills any row, column or diagonal of the board.
func HasWon(board *Board, mark Mark) bool {
	if mark == EmptyCell {
		return false
	}

	for _, l := range lines(board.size) {
		if board.lineFilled(l, mark) {
			return true
		}
	}

	return false
}

// HasWonAt is HasWon restricted to the lines passing through move. It is
// enough to detect a win created by the last mark played.
func HasWonAt(board *Board, move Move, mark Mark) bool {
	if mark == EmptyCell || !board.Contains(move) || board.Get(move) != mark {
		return false
	}

	n := board.size
	if board.lineFilled(rowLine(move.Row, n), mark) || board.lineFilled(colLine(move.Col, n), mark) {
		return true
	}

	if move.Row == move.Col && board.lineFilled(mainDiag(n), mark) {
		return true
	}

	return move.Row+move.Col == n-1 && board.lineFilled(antiDiag(n), mark)
}
