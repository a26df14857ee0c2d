package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

var ErrBotNotFound = errors.New("bot player not found")

type searcher interface {
	Search(board *entity.Board, mark entity.Mark) (*tictactoe.Decision, error)
}

type BotService interface {
	MakeTurn(game *entity.Game) (*tictactoe.Decision, error)
}

type botService struct {
	logger *slog.Logger
	engine searcher
}

func NewBotService(logger *slog.Logger, engine searcher) BotService {
	return &botService{
		logger: logger,
		engine: engine,
	}
}

// MakeTurn plays the engine's move for the bot whose turn it is.
func (that *botService) MakeTurn(game *entity.Game) (*tictactoe.Decision, error) {
	log := that.logger.With("method", "botMakeTurn", "gameID", game.ID)

	if err := game.ConfirmOngoingState(); err != nil {
		return nil, fmt.Errorf("bot can't play: %w", err)
	}

	botPlayer, ok := game.BotToMove()
	if !ok {
		return nil, ErrBotNotFound
	}

	decision, err := that.engine.Search(game.Board, botPlayer.Mark)
	if err != nil {
		return nil, fmt.Errorf("failed to search move: %w", err)
	}

	if err = game.MakeTurn(botPlayer.Mark, decision.Move); err != nil {
		return nil, fmt.Errorf("bot failed to make turn: %w", err)
	}

	log.Info("bot made a turn",
		"player", botPlayer.ID,
		"mark", botPlayer.Mark,
		"move", decision.Move.String(),
		"score", decision.Score,
		"nodes", decision.Stats.Nodes,
	)

	return decision, nil
}
