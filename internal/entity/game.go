package entity

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/samber/lo"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"
)

const (
	PrivateType = "private"
	WithBotType = "bot"
	SelfPlay    = "selfplay"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

// Game is the authoritative board of a match plus whose turn it is.
type Game struct {
	ID      string    `json:"id"`
	Board   *Board    `json:"board"`
	Winner  Mark      `json:"winner"`
	Status  string    `json:"status"`
	Turn    Mark      `json:"player_turn"`
	Players []*Player `json:"players,omitempty"`
	Type    string    `json:"type,omitempty"`
}

func NewGame(id, gameType string, size int) (*Game, error) {
	board, err := NewBoard(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	return &Game{
		ID:     id,
		Board:  board,
		Turn:   board.Marks().Max,
		Status: StatusWaiting,
		Type:   gameType,
	}, nil
}

// DetermineGameResult returns the winning mark, PlayerTie for a full board,
// or EmptyCell while the game continues.
func (that *Game) DetermineGameResult() (Mark, error) {
	winner, err := that.Board.Winner()
	if err != nil {
		return EmptyCell, fmt.Errorf("corrupted board in game %s: %w", that.ID, err)
	}

	if winner != EmptyCell {
		return winner, nil
	}

	// the game will continue until all the squares are full
	if !that.Board.IsFull() {
		return EmptyCell, nil
	}

	return PlayerTie, nil
}

// UpdateGameState - a corrupted board aborts the game: it is finished
// without a winner and nobody is to move.
func (that *Game) UpdateGameState() error {
	winner, err := that.DetermineGameResult()
	if err != nil {
		that.Status = StatusFinished
		that.Turn = EmptyCell
		return err
	}

	switch winner {
	// game continue
	case EmptyCell:
		that.Status = StatusOngoing
	// one player wins or tie
	default:
		that.Winner = winner
		that.Status = StatusFinished
		that.Turn = EmptyCell
	}

	return nil
}

func (that *Game) MakeTurn(playerMark Mark, move Move) error {
	if err := that.ConfirmOngoingState(); err != nil {
		return err
	}

	if that.Turn != playerMark {
		return apperror.ErrNotYourTurn
	}

	if err := that.Board.PlaceMark(move, playerMark); err != nil {
		return fmt.Errorf("failed to place %s at %s: %w", playerMark, move, err)
	}

	that.Turn = that.Board.Opponent(playerMark)

	return that.UpdateGameState()
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

func (that *Game) IsWithBot() bool {
	return that.Type == WithBotType || that.Type == SelfPlay
}

// PlayerByMark returns the player holding mark.
func (that *Game) PlayerByMark(mark Mark) (*Player, bool) {
	return lo.Find(that.Players, func(player *Player) bool {
		return player.Mark == mark
	})
}

// BotToMove returns the bot player whose turn it is.
func (that *Game) BotToMove() (*Player, bool) {
	player, ok := that.PlayerByMark(that.Turn)
	if !ok || !player.IsBot() {
		return nil, false
	}

	return player, true
}

func (that *Game) GetRandomMarks() (Mark, Mark) {
	marks := that.Board.Marks()
	if rand.Intn(2) == 0 { //nolint: gosec // it's ok
		return marks.Max, marks.Min
	}
	return marks.Min, marks.Max
}
