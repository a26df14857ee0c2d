package application

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

var ErrUnknownMode = errors.New("unknown mode")

type solveReport struct {
	Board              string                   `json:"board"`
	Mark               entity.Mark              `json:"mark"`
	Move               entity.Move              `json:"move"`
	Cell               string                   `json:"cell"`
	Score              int                      `json:"score"`
	Outcome            string                   `json:"outcome"`
	Depth              int                      `json:"depth"`
	Stats              tictactoe.Stats          `json:"stats"`
	Candidates         []tictactoe.SearchResult `json:"candidates"`
	PrincipalVariation []entity.Move            `json:"principal_variation,omitempty"`
}

type selfPlayReport struct {
	GameID string      `json:"game_id"`
	Board  string      `json:"board"`
	Winner entity.Mark `json:"winner"`
}

// RunApp - runs the mode selected in conf and writes its JSON report to out.
func RunApp(logger *slog.Logger, conf *config.Config, out io.Writer) error {
	log := logger.With("component", "app")

	engine := tictactoe.NewEngine(logger, tictactoe.Options{
		MaxDepth:  conf.Engine.MaxDepth,
		Pruning:   !conf.Engine.FullWidth,
		TraceTree: conf.Engine.TraceTree,
	})

	log.Info("Starting", "mode", conf.Mode, "size", conf.Board.Size)

	switch conf.Mode {
	case config.ModeSolve:
		return solve(engine, conf, out)
	case config.ModeSelfPlay:
		gamePlay := service.NewGamePlayService(logger, service.NewBotService(logger, engine))
		return selfPlay(gamePlay, conf, out)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, conf.Mode)
	}
}

func solve(engine *tictactoe.Engine, conf *config.Config, out io.Writer) error {
	board, err := loadBoard(conf.Board)
	if err != nil {
		return err
	}

	mark := entity.Mark(strings.ToUpper(conf.Board.ToMove))
	if mark == entity.EmptyCell {
		mark = board.NextMark()
	}

	decision, err := engine.Search(board, mark)
	if err != nil {
		return fmt.Errorf("failed to solve %s: %w", board, err)
	}

	report := solveReport{
		Board:      board.String(),
		Mark:       mark,
		Move:       decision.Move,
		Cell:       decision.Move.Human(),
		Score:      decision.Score,
		Outcome:    describe(decision.Score, mark, board.Marks()),
		Depth:      decision.Depth,
		Stats:      decision.Stats,
		Candidates: decision.Candidates,
	}

	if decision.Tree != nil {
		report.PrincipalVariation = decision.Tree.PrincipalVariation()
	}

	return writeJSON(out, report)
}

func selfPlay(gamePlay service.GamePlayService, conf *config.Config, out io.Writer) error {
	game, err := gamePlay.SelfPlay(conf.Board.Size)
	if err != nil {
		return fmt.Errorf("failed to self-play: %w", err)
	}

	return writeJSON(out, selfPlayReport{
		GameID: game.ID,
		Board:  game.Board.String(),
		Winner: game.Winner,
	})
}

func loadBoard(conf config.Board) (*entity.Board, error) {
	if conf.Position == "" {
		board, err := entity.NewBoard(conf.Size)
		if err != nil {
			return nil, fmt.Errorf("failed to create board: %w", err)
		}

		return board, nil
	}

	board, err := entity.ParseBoard(conf.Position)
	if err != nil {
		return nil, fmt.Errorf("failed to parse board: %w", err)
	}

	return board, nil
}

// describe turns a score from the maximizing mark's view into the outcome for mark.
func describe(score int, mark entity.Mark, marks entity.Marks) string {
	if mark == marks.Min {
		score = -score
	}

	switch {
	case score > tictactoe.ScoreDraw:
		return "win"
	case score < tictactoe.ScoreDraw:
		return "loss"
	default:
		return "draw"
	}
}

func writeJSON(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}
