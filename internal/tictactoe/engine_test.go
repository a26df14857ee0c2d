package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/testing/suite"
)

var midGamePositions = []string{
	".../.../...",
	"X../.../...",
	"X../.O./...",
	"XO./.X./...",
	"XO./.../...",
	"X.O/.X./...",
	".X./.O./..X",
	"XX./OO./...",
	"XOX./OOX./XXO./...O",
	"XO../..OX/X..O/.X..",
	"XXO./O.X./.O.X/...O",
}

func TestEngine_Search(t *testing.T) {
	t.Run("Empty 3x3 board is a draw", func(t *testing.T) {
		_, st := suite.New(t)
		engine := NewEngine(st.Logger, DefaultOptions())

		// Given: an empty classic board
		board := st.Board(".../.../...")

		// When: searching for X
		decision, err := engine.Search(board, entity.PlayerX)

		// Then: optimal play is a draw and the first draw in row-major order is chosen
		require.NoError(t, err)
		assert.Equal(t, ScoreDraw, decision.Score)
		assert.Equal(t, entity.NewMove(0, 0), decision.Move)
		assert.Equal(t, ".../.../...", board.String())
	})

	t.Run("Completes the top row", func(t *testing.T) {
		_, st := suite.New(t)
		engine := NewEngine(st.Logger, DefaultOptions())

		// Given: X at (0,0),(0,1) and O at (1,0),(1,1), X to move
		board := st.Board("XX./OO./...")

		// When: searching for X
		decision, err := engine.Search(board, entity.PlayerX)

		// Then: X completes the top row
		require.NoError(t, err)
		assert.Equal(t, entity.NewMove(0, 2), decision.Move)
		assert.Equal(t, ScoreWin, decision.Score)
		assert.Equal(t, 1, decision.Depth)
		assert.Equal(t, entity.PlayerX, decision.Mark)
	})

	t.Run("Completes a 4x4 row", func(t *testing.T) {
		_, st := suite.New(t)
		engine := NewEngine(st.Logger, DefaultOptions())

		board := st.Board("XXX./OOO./..../....")

		decision, err := engine.Search(board, entity.PlayerX)

		require.NoError(t, err)
		assert.Equal(t, entity.NewMove(0, 3), decision.Move)
		assert.Equal(t, ScoreWin, decision.Score)
	})

	t.Run("Minimizing mark ties go to the first row-major move", func(t *testing.T) {
		_, st := suite.New(t)
		engine := NewEngine(st.Logger, DefaultOptions())

		// Given: O to move where (0,2) forks and (1,2) wins at once
		board := st.Board("XX./OO./...")

		// When: searching for O
		decision, err := engine.Search(board, entity.PlayerO)

		// Then: both score a loss for X, and (0,2) comes first
		require.NoError(t, err)
		assert.Equal(t, ScoreLoss, decision.Score)
		assert.Equal(t, entity.NewMove(0, 2), decision.Move)
		assert.Equal(t, 3, decision.Depth)

		result, ok := lookup(decision.Candidates, entity.NewMove(1, 2))
		require.True(t, ok)
		assert.Equal(t, ScoreLoss, result.Score)
		assert.Equal(t, 1, result.Depth)
	})

	t.Run("Leaves the board exactly as it was", func(t *testing.T) {
		_, st := suite.New(t)
		engine := NewEngine(st.Logger, DefaultOptions())

		for _, position := range midGamePositions {
			board := st.Board(position)
			before := board.Clone()

			_, err := engine.Search(board, board.NextMark())

			require.NoError(t, err, position)
			require.True(t, before.Equal(board), position)
		}
	})

	t.Run("Is deterministic", func(t *testing.T) {
		_, st := suite.New(t)
		engine := NewEngine(st.Logger, DefaultOptions())

		for _, position := range midGamePositions {
			board := st.Board(position)

			first, err := engine.Search(board, board.NextMark())
			require.NoError(t, err)
			second, err := engine.Search(board, board.NextMark())
			require.NoError(t, err)

			assert.Equal(t, first.SearchResult, second.SearchResult, position)
			assert.Equal(t, first.Candidates, second.Candidates, position)
			assert.Equal(t, first.Stats, second.Stats, position)
		}
	})
}

func TestEngine_Search_Errors(t *testing.T) {
	t.Run("Full board is terminal", func(t *testing.T) {
		_, st := suite.New(t)
		engine := NewEngine(st.Logger, DefaultOptions())

		_, err := engine.Search(st.Board("XOX/OXO/OXO"), entity.PlayerX)

		require.ErrorIs(t, err, apperror.ErrBoardTerminal)
	})

	t.Run("Won board is terminal", func(t *testing.T) {
		_, st := suite.New(t)
		engine := NewEngine(st.Logger, DefaultOptions())

		_, err := engine.Search(st.Board("XXX/OO./..."), entity.PlayerO)

		require.ErrorIs(t, err, apperror.ErrBoardTerminal)
	})

	t.Run("Double win is rejected", func(t *testing.T) {
		_, st := suite.New(t)
		engine := NewEngine(st.Logger, DefaultOptions())

		_, err := engine.Search(st.Board("XXX/OOO/..."), entity.PlayerX)

		require.ErrorIs(t, err, apperror.ErrDoubleWin)
	})

	t.Run("Mark not in play is rejected", func(t *testing.T) {
		_, st := suite.New(t)
		engine := NewEngine(st.Logger, DefaultOptions())

		_, err := engine.Search(st.Board(".../.../..."), "Z")

		require.ErrorIs(t, err, apperror.ErrInvalidMark)
	})
}

func TestEngine_Pruning(t *testing.T) {
	_, st := suite.New(t)
	pruned := NewEngine(st.Logger, DefaultOptions())
	fullWidth := NewEngine(st.Logger, Options{Pruning: false})

	for _, position := range midGamePositions {
		// Given: the same mid-game board
		board := st.Board(position)
		mark := board.NextMark()

		// When: searching with and without alpha-beta cutoffs
		withPruning, err := pruned.Search(board, mark)
		require.NoError(t, err, position)
		withoutPruning, err := fullWidth.Search(board, mark)
		require.NoError(t, err, position)

		// Then: both agree on the score and the chosen move
		assert.Equal(t, withoutPruning.Score, withPruning.Score, position)
		assert.Equal(t, withoutPruning.Move, withPruning.Move, position)
		assert.LessOrEqual(t, withPruning.Stats.Nodes, withoutPruning.Stats.Nodes, position)
		assert.Zero(t, withoutPruning.Stats.Prunes, position)
	}

	t.Run("Pruning visits fewer nodes on the empty board", func(t *testing.T) {
		board := st.Board(".../.../...")

		withPruning, err := pruned.Search(board, entity.PlayerX)
		require.NoError(t, err)
		withoutPruning, err := fullWidth.Search(board, entity.PlayerX)
		require.NoError(t, err)

		// 549946 is the size of the full tic-tac-toe game tree
		assert.Equal(t, 549946, withoutPruning.Stats.Nodes)
		assert.Less(t, withPruning.Stats.Nodes, withoutPruning.Stats.Nodes)
		assert.Positive(t, withPruning.Stats.Prunes)
	})
}

func TestEngine_MaxDepth(t *testing.T) {
	t.Run("Wins inside the horizon are still found", func(t *testing.T) {
		_, st := suite.New(t)
		engine := NewEngine(st.Logger, Options{Pruning: true, MaxDepth: 1})

		decision, err := engine.Search(st.Board("XX./OO./..."), entity.PlayerX)

		require.NoError(t, err)
		assert.Equal(t, entity.NewMove(0, 2), decision.Move)
		assert.Equal(t, ScoreWin, decision.Score)
	})

	t.Run("Frontier positions score as a draw", func(t *testing.T) {
		_, st := suite.New(t)
		engine := NewEngine(st.Logger, Options{Pruning: true, MaxDepth: 2})

		decision, err := engine.Search(st.Board("..../..../..../...."), entity.PlayerX)

		require.NoError(t, err)
		assert.Equal(t, ScoreDraw, decision.Score)
		assert.Equal(t, entity.NewMove(0, 0), decision.Move)
		assert.LessOrEqual(t, decision.Stats.MaxPly, 2)
	})
}

func TestEngine_Minimax(t *testing.T) {
	t.Run("Terminal boards get their terminal score", func(t *testing.T) {
		_, st := suite.New(t)
		engine := NewEngine(st.Logger, DefaultOptions())

		testCases := map[string]int{
			"XOX/OXO/OXO": ScoreDraw,
			"XXX/OO./...": ScoreWin,
			"XX./OOO/X..": ScoreLoss,
		}

		for position, expected := range testCases {
			board := st.Board(position)

			score, err := engine.Minimax(board, board.NextMark(), MinusInfinity, PlusInfinity, nil)

			require.NoError(t, err, position)
			assert.Equal(t, expected, score, position)
		}
	})

	t.Run("Full board without a line has no winner", func(t *testing.T) {
		_, st := suite.New(t)
		engine := NewEngine(st.Logger, DefaultOptions())
		board := st.Board("XOX/OXO/OXO")

		score, err := engine.Minimax(board, entity.PlayerX, MinusInfinity, PlusInfinity, nil)

		require.NoError(t, err)
		assert.Equal(t, ScoreDraw, score)
		assert.True(t, board.IsFull())
		assert.False(t, board.HasWon(entity.PlayerX))
		assert.False(t, board.HasWon(entity.PlayerO))
	})

	t.Run("Recorder is reset before the search", func(t *testing.T) {
		_, st := suite.New(t)
		engine := NewEngine(st.Logger, DefaultOptions())

		// Given: a recorder left over from another search
		recorder := NewMoveRecorder()
		recorder.Record(entity.NewMove(2, 2), ScoreLoss, 7)

		// When: running a new root search with it
		score, err := engine.Minimax(st.Board("XX./OO./..."), entity.PlayerX, MinusInfinity, PlusInfinity, recorder)

		// Then: only this search's moves are recorded
		require.NoError(t, err)
		assert.Equal(t, ScoreWin, score)

		move, ok := recorder.BestMove(score)
		require.True(t, ok)
		assert.Equal(t, entity.NewMove(0, 2), move)

		result, ok := recorder.Result(entity.NewMove(2, 2))
		require.True(t, ok)
		assert.NotEqual(t, 7, result.Depth)
		assert.Equal(t, 5, recorder.Len())
	})

	t.Run("Double win is rejected", func(t *testing.T) {
		_, st := suite.New(t)
		engine := NewEngine(st.Logger, DefaultOptions())

		_, err := engine.Minimax(st.Board("XXX/OOO/..."), entity.PlayerX, MinusInfinity, PlusInfinity, nil)

		require.ErrorIs(t, err, apperror.ErrDoubleWin)
	})
}

func TestEngine_TraceTree(t *testing.T) {
	_, st := suite.New(t)
	engine := NewEngine(st.Logger, Options{Pruning: true, TraceTree: true})

	// Given: a position with a forced win for X
	board := st.Board("XX./OO./...")

	// When: searching with tree tracing
	decision, err := engine.Search(board, entity.PlayerX)
	require.NoError(t, err)

	// Then: the tree mirrors the search
	tree := decision.Tree
	require.NotNil(t, tree)
	assert.Equal(t, decision.Stats.Nodes, tree.Len())
	assert.Equal(t, decision.Score, tree.Root().Score)
	assert.Len(t, tree.Root().Children, len(decision.Candidates))

	pv := tree.PrincipalVariation()
	require.NotEmpty(t, pv)
	assert.Equal(t, decision.Move, pv[0])

	visited := 0
	tree.Walk(func(node Node) bool {
		visited++
		if !node.IsRoot() {
			parent, ok := tree.Node(node.Parent)
			require.True(t, ok)
			assert.Equal(t, parent.Ply+1, node.Ply)
			assert.Equal(t, append(tree.Path(parent.ID), node.Move), tree.Path(node.ID))
		}
		return true
	})
	assert.Equal(t, tree.Len(), visited)
}

func lookup(candidates []SearchResult, move entity.Move) (SearchResult, bool) {
	for _, candidate := range candidates {
		if candidate.Move == move {
			return candidate, true
		}
	}

	return SearchResult{}, false
}
