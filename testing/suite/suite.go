package suite

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const maxWaitDuration = 120 * time.Second

type Suite struct {
	*testing.T
	Logger *slog.Logger
	Config *config.Config
}

func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(func() {
		cancel()
	})

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// no config file in tests, defaults and env only
	conf, err := config.Load(filepath.Join(t.TempDir(), "config.yml"))
	if err != nil {
		t.Fatalf("could not load config: %v", err)
	}

	return ctx, &Suite{
		T:      t,
		Logger: logger,
		Config: conf,
	}
}

// Board parses a position and fails the test on error.
func (that *Suite) Board(position string) *entity.Board {
	that.Helper()

	board, err := entity.ParseBoard(position)
	if err != nil {
		that.Fatalf("could not parse board %q: %v", position, err)
	}

	return board
}
