package tictactoe

import "github.com/rocketscienceinc/tictactoe-engine/internal/entity"

// SearchResult is the score a root candidate achieved, from the maximizing
// mark's point of view, and the ply at which that score was decided.
type SearchResult struct {
	Move  entity.Move `json:"move"`
	Score int         `json:"score"`
	Depth int         `json:"depth"`
}

// MoveRecorder keeps the result of every root candidate of one search.
// Candidates are kept in the order they were recorded, which is row-major
// for the engine, so ties go to the first recorded move.
type MoveRecorder struct {
	order   []entity.Move
	results map[entity.Move]SearchResult
}

func NewMoveRecorder() *MoveRecorder {
	return &MoveRecorder{
		results: make(map[entity.Move]SearchResult),
	}
}

// Record stores the result for move. Recording a move twice overwrites the
// result but keeps its original position.
func (that *MoveRecorder) Record(move entity.Move, score, depth int) {
	if _, ok := that.results[move]; !ok {
		that.order = append(that.order, move)
	}

	that.results[move] = SearchResult{Move: move, Score: score, Depth: depth}
}

// BestMove returns the first recorded move whose score equals target.
func (that *MoveRecorder) BestMove(target int) (entity.Move, bool) {
	for _, move := range that.order {
		if that.results[move].Score == target {
			return move, true
		}
	}

	return entity.Move{}, false
}

func (that *MoveRecorder) Result(move entity.Move) (SearchResult, bool) {
	result, ok := that.results[move]
	return result, ok
}

// Candidates returns every recorded result in recording order.
func (that *MoveRecorder) Candidates() []SearchResult {
	candidates := make([]SearchResult, 0, len(that.order))
	for _, move := range that.order {
		candidates = append(candidates, that.results[move])
	}

	return candidates
}

func (that *MoveRecorder) Len() int {
	return len(that.order)
}

func (that *MoveRecorder) Clear() {
	that.order = that.order[:0]
	clear(that.results)
}
