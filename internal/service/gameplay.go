package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var (
	ErrGameIsFull     = errors.New("game already has two players")
	ErrPlayerNotFound = errors.New("player not found in game")
)

type GamePlayService interface {
	NewGame(size int, gameType string, humanMark entity.Mark) (*entity.Game, *entity.Player, error)
	JoinGame(game *entity.Game) (*entity.Player, error)
	MakeTurn(game *entity.Game, playerID string, move entity.Move) error
	SelfPlay(size int) (*entity.Game, error)
}

type gamePlayService struct {
	logger     *slog.Logger
	botService BotService
}

func NewGamePlayService(logger *slog.Logger, botService BotService) GamePlayService {
	return &gamePlayService{
		logger:     logger,
		botService: botService,
	}
}

// NewGame creates a game with one human player. For bot games the bot takes
// the other mark and, when it holds the first mark, plays right away. An
// empty humanMark picks the marks at random.
func (that *gamePlayService) NewGame(size int, gameType string, humanMark entity.Mark) (*entity.Game, *entity.Player, error) {
	game, err := entity.NewGame(uuid.NewString(), gameType, size)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create game: %w", err)
	}

	player := &entity.Player{ID: uuid.NewString(), GameID: game.ID, Mark: game.Board.Marks().Max}
	game.Players = []*entity.Player{player}

	if gameType != entity.WithBotType {
		return game, player, nil
	}

	botMark := game.Board.Opponent(humanMark)
	if humanMark == entity.EmptyCell {
		humanMark, botMark = game.GetRandomMarks()
	}

	if botMark == entity.EmptyCell {
		return nil, nil, fmt.Errorf("failed to assign bot mark for %q", humanMark)
	}

	player.Mark = humanMark
	if err = that.addBot(game, botMark); err != nil {
		return nil, nil, err
	}

	return game, player, nil
}

// JoinGame adds the second human to a waiting game and starts it.
func (that *gamePlayService) JoinGame(game *entity.Game) (*entity.Player, error) {
	if len(game.Players) >= 2 {
		return nil, fmt.Errorf("%w: game id %s", ErrGameIsFull, game.ID)
	}

	player := &entity.Player{
		ID:     uuid.NewString(),
		GameID: game.ID,
		Mark:   game.Board.Marks().Min,
	}

	game.Players = append(game.Players, player)
	game.Status = entity.StatusOngoing

	return player, nil
}

// MakeTurn applies a human move and lets the bot answer when the game is
// played against one.
func (that *gamePlayService) MakeTurn(game *entity.Game, playerID string, move entity.Move) error {
	player, ok := findPlayer(game, playerID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}

	if err := game.MakeTurn(player.Mark, move); err != nil {
		return fmt.Errorf("failed to make turn: %w", err)
	}

	if game.IsFinished() || !game.IsWithBot() {
		return nil
	}

	if _, err := that.botService.MakeTurn(game); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	return nil
}

// SelfPlay lets the engine play both sides until the game is over.
func (that *gamePlayService) SelfPlay(size int) (*entity.Game, error) {
	log := that.logger.With("method", "SelfPlay")

	game, err := entity.NewGame(uuid.NewString(), entity.SelfPlay, size)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	marks := game.Board.Marks()
	for _, mark := range []entity.Mark{marks.Max, marks.Min} {
		bot := entity.NewBotPlayer(uuid.NewString(), game.ID)
		bot.Mark = mark
		game.Players = append(game.Players, bot)
	}
	game.Status = entity.StatusOngoing

	for !game.IsFinished() {
		if _, err = that.botService.MakeTurn(game); err != nil {
			return nil, fmt.Errorf("self-play stopped at %s: %w", game.Board, err)
		}
	}

	log.Info("self-play finished", "gameID", game.ID, "winner", game.Winner, "board", game.Board.String())

	return game, nil
}

func (that *gamePlayService) addBot(game *entity.Game, mark entity.Mark) error {
	bot := entity.NewBotPlayer(uuid.NewString(), game.ID)
	bot.Mark = mark

	game.Players = append(game.Players, bot)
	game.Status = entity.StatusOngoing

	if game.Turn != mark {
		return nil
	}

	if _, err := that.botService.MakeTurn(game); err != nil {
		return fmt.Errorf("bot failed to make first turn: %w", err)
	}

	return nil
}

func findPlayer(game *entity.Game, id string) (*entity.Player, bool) {
	return lo.Find(game.Players, func(player *entity.Player) bool {
		return player.ID == id
	})
}
