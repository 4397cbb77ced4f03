package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/jakechorley/ward-allocator/internal/config"
	"github.com/jakechorley/ward-allocator/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Database db.Database
	Logger   *zap.Logger
	Ctx      context.Context

	// Labels are the presentation strings for the selected language
	Labels Labels
}
