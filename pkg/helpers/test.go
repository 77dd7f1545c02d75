package helpers

import (
	"context"
	"log/slog"

	"github.com/swasthikkulal/pigmy-backend/pkg/logger"
)

// TestCtx returns a context carrying a discard logger.
func TestCtx() context.Context {
	log := slog.New(logger.NewTestHandler())
	return logger.ToContext(context.Background(), log)
}
