package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// outcome is a node value and the ply of the position that decided it.
type outcome struct {
	score int
	depth int
}

// search holds the state of a single root search. The board is mutated in
// place: every frame clears the cell it placed before returning.
type search struct {
	board    *entity.Board
	marks    entity.Marks
	options  Options
	recorder *MoveRecorder
	tree     *Tree
	stats    Stats
}

func newSearch(board *entity.Board, options Options, recorder *MoveRecorder) *search {
	state := &search{
		board:    board,
		marks:    board.Marks(),
		options:  options,
		recorder: recorder,
	}

	if options.TraceTree {
		state.tree = newTree()
	}

	return state
}

func (that *search) run(mark entity.Mark, alpha, beta int) (outcome, error) {
	before := that.board.Clone()

	result, err := that.minimax(mark, nil, alpha, beta, 0, RootID)
	if err != nil {
		return outcome{}, err
	}

	if !before.Equal(that.board) {
		return outcome{}, fmt.Errorf("board changed during search: %s, was %s", that.board, before)
	}

	return result, nil
}

// terminal evaluates the position. At the root the whole board is checked,
// including for a double win; below it only the last move can have won.
func (that *search) terminal(last *entity.Move, ply int) (int, bool, error) {
	if last == nil {
		winner, err := that.board.Winner()
		if err != nil {
			return 0, false, fmt.Errorf("invalid position at ply %d: %w", ply, err)
		}

		switch winner {
		case that.marks.Max:
			return ScoreWin, true, nil
		case that.marks.Min:
			return ScoreLoss, true, nil
		}
	} else {
		switch mover := that.board.Get(*last); {
		case mover == that.marks.Max && entity.HasWonAt(that.board, *last, mover):
			return ScoreWin, true, nil
		case mover == that.marks.Min && entity.HasWonAt(that.board, *last, mover):
			return ScoreLoss, true, nil
		}
	}

	if that.board.IsFull() {
		return ScoreDraw, true, nil
	}

	return 0, false, nil
}

func (that *search) minimax(mark entity.Mark, last *entity.Move, alpha, beta, ply int, node NodeID) (outcome, error) {
	that.stats.Nodes++
	that.stats.MaxPly = max(that.stats.MaxPly, ply)

	score, done, err := that.terminal(last, ply)
	if err != nil {
		return outcome{}, err
	}

	if done {
		that.stats.Leaves++
		that.resolve(node, score, true, false)
		return outcome{score: score, depth: ply}, nil
	}

	if that.options.MaxDepth > 0 && ply >= that.options.MaxDepth {
		that.stats.Leaves++
		that.resolve(node, ScoreDraw, false, false)
		return outcome{score: ScoreDraw, depth: ply}, nil
	}

	maximizing := mark == that.marks.Max
	opponent := that.board.Opponent(mark)
	best := outcome{depth: ply}

	for _, move := range that.board.AvailableCells() {
		that.board.Place(move, mark)
		child := that.trace(node, move, mark, ply+1)

		childAlpha, childBeta := alpha, beta
		if !that.options.Pruning {
			childAlpha, childBeta = MinusInfinity, PlusInfinity
		}

		result, err := that.minimax(opponent, &move, childAlpha, childBeta, ply+1, child)
		that.board.Clear(move)

		if err != nil {
			return outcome{}, err
		}

		if ply == 0 && that.recorder != nil {
			that.recorder.Record(move, result.score, result.depth)
		}

		if maximizing {
			if result.score > alpha {
				alpha = result.score
				best = result
			}
		} else {
			if result.score < beta {
				beta = result.score
				best = result
			}
		}

		if that.options.Pruning && alpha >= beta {
			that.stats.Prunes++
			best.score = bound(maximizing, alpha, beta)
			that.resolve(node, best.score, false, true)
			return best, nil
		}
	}

	best.score = bound(maximizing, alpha, beta)
	that.resolve(node, best.score, false, false)

	return best, nil
}

func bound(maximizing bool, alpha, beta int) int {
	if maximizing {
		return alpha
	}
	return beta
}

func (that *search) trace(parent NodeID, move entity.Move, mark entity.Mark, ply int) NodeID {
	if that.tree == nil {
		return RootID
	}

	return that.tree.add(parent, move, mark, ply)
}

func (that *search) resolve(node NodeID, score int, terminal, pruned bool) {
	if that.tree == nil {
		return
	}

	that.tree.resolve(node, score, terminal, pruned)
}
