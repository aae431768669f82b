package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"landscapevision/internal/config"
	"landscapevision/internal/database"
	"landscapevision/internal/services"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// Swapped in tests.
var (
	editorFactory = services.GeminiEditorFactory
	openKeyring   = services.OpenKeyring
)

// cliApp holds what every command needs. The caller must defer Close().
type cliApp struct {
	cfg  config.Config
	db   *gorm.DB
	keys *services.KeyringService
	svc  *services.Services
}

func newApp() (*cliApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	db, err := database.Init(database.Config{Path: cfg.DBPath, LogLevel: logger.Warn})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	ring, err := openKeyring()
	if err != nil {
		fmt.Fprintln(os.Stderr, "keyring unavailable, using environment keys only:", err)
	}
	keys := services.NewKeyringService(ring)

	svc, err := services.NewServices(db, keys, cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing services: %w", err)
	}
	return &cliApp{cfg: cfg, db: db, keys: keys, svc: svc}, nil
}

// newSession returns a session of its own so the desktop app's draft and
// current state are left alone. Without a suggester the built-in
// suggestions are used.
func (a *cliApp) newSession() *services.SessionService {
	return services.NewSessionService(services.SessionDeps{
		Store:   a.svc.Designs,
		Leads:   a.svc.Leads,
		Presets: a.svc.Presets,
		Editor:  editorFactory(a.keys, a.cfg.ImageModel),
	})
}

func (a *cliApp) Close() error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "landscapectl",
		Short:         "Landscape Vision from the command line",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newGenerateCmd())
	root.AddCommand(newBatchCmd())
	root.AddCommand(newCropCmd())
	root.AddCommand(newDesignsCmd())
	root.AddCommand(newKeyCmd())
	root.AddCommand(newPresetsCmd())
	return root
}
