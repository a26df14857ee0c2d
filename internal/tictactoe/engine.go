package tictactoe

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	ScoreLoss = -1
	ScoreDraw = 0
	ScoreWin  = 1
)

// Window bounds for a root call.
const (
	MinusInfinity = math.MinInt
	PlusInfinity  = math.MaxInt
)

var ErrNoCandidate = errors.New("no root candidate matches the search score")

type Options struct {
	// MaxDepth limits the search to this many plies; non-terminal positions at
	// the limit score as a draw. Zero searches to the end of the game.
	MaxDepth int
	// Pruning enables alpha-beta cutoffs. Without it every node is searched
	// with a full window.
	Pruning bool
	// TraceTree keeps every visited node in a Tree returned with the decision.
	TraceTree bool
}

func DefaultOptions() Options {
	return Options{Pruning: true}
}

// Stats counts the work of one search.
type Stats struct {
	Nodes  int `json:"nodes"`
	Leaves int `json:"leaves"`
	Prunes int `json:"prunes"`
	MaxPly int `json:"max_ply"`
}

// Decision is the outcome of a root search.
type Decision struct {
	SearchResult
	Mark       entity.Mark    `json:"mark"`
	Candidates []SearchResult `json:"candidates"`
	Stats      Stats          `json:"stats"`
	Tree       *Tree          `json:"-"`
}

type Engine struct {
	logger  *slog.Logger
	options Options
}

func NewEngine(logger *slog.Logger, options Options) *Engine {
	return &Engine{
		logger:  logger.With("component", "engine"),
		options: options,
	}
}

func (that *Engine) Options() Options {
	return that.options
}

// Search picks the best move for mark. The board is used as scratch space and
// is left exactly as it was passed in.
func (that *Engine) Search(board *entity.Board, mark entity.Mark) (*Decision, error) {
	log := that.logger.With("method", "Search", "board", board.String(), "mark", mark)

	if !board.InPlay(mark) {
		return nil, fmt.Errorf("%w: %q is not in play", apperror.ErrInvalidMark, mark)
	}

	terminal, err := board.IsTerminal()
	if err != nil {
		return nil, fmt.Errorf("failed to check board: %w", err)
	}

	if terminal {
		return nil, fmt.Errorf("%w: %s", apperror.ErrBoardTerminal, board)
	}

	started := time.Now()
	recorder := NewMoveRecorder()
	state := newSearch(board, that.options, recorder)

	result, err := state.run(mark, MinusInfinity, PlusInfinity)
	if err != nil {
		return nil, err
	}

	move, ok := recorder.BestMove(result.score)
	if !ok {
		return nil, fmt.Errorf("%w: score %d", ErrNoCandidate, result.score)
	}

	best, _ := recorder.Result(move)
	decision := &Decision{
		SearchResult: best,
		Mark:         mark,
		Candidates:   recorder.Candidates(),
		Stats:        state.stats,
		Tree:         state.tree,
	}

	log.Debug("search finished",
		"move", move.String(),
		"score", decision.Score,
		"depth", decision.Depth,
		"nodes", state.stats.Nodes,
		"prunes", state.stats.Prunes,
		"elapsed", time.Since(started),
	)

	return decision, nil
}

// Minimax scores the board for mark to move within the (alpha, beta) window,
// from the maximizing mark's point of view. Terminal boards get their
// terminal score. When recorder is not nil it is cleared first and then
// receives the score of every root move searched.
func (that *Engine) Minimax(board *entity.Board, mark entity.Mark, alpha, beta int, recorder *MoveRecorder) (int, error) {
	if !board.InPlay(mark) {
		return 0, fmt.Errorf("%w: %q is not in play", apperror.ErrInvalidMark, mark)
	}

	if recorder != nil {
		recorder.Clear()
	}

	result, err := newSearch(board, that.options, recorder).run(mark, alpha, beta)
	if err != nil {
		return 0, err
	}

	return result.score, nil
}
