package main

import (
	"context"
	"embed"
	"fmt"
	"log"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/linux"

	"landscapevision/internal/config"
	"landscapevision/internal/database"
	"landscapevision/internal/events"
	"landscapevision/internal/services"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading configuration:", err)
		return
	}

	db, err := database.Init(database.Config{Path: cfg.DBPath})
	if err != nil {
		fmt.Println("Error opening database:", err)
		return
	}

	ring, err := services.OpenKeyring()
	if err != nil {
		// keys can still come from the environment
		log.Printf("Keyring unavailable: %v", err)
	}
	keyringService := services.NewKeyringService(ring)

	svc, err := services.NewServices(db, keyringService, cfg)
	if err != nil {
		fmt.Println("Error creating services:", err)
		return
	}

	app := NewApp(svc.Session, svc.Autosave)
	if sqlDB, err := db.DB(); err == nil {
		app.dbClose = sqlDB.Close
	}

	events.EnableRuntimeEmitter()

	// Create application with options
	err = wails.Run(&options.App{
		Title:  "Landscape Vision Pro",
		Width:  1280,
		Height: 832,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		Linux: &linux.Options{
			WindowIsTranslucent: false,
			WebviewGpuPolicy:    linux.WebviewGpuPolicyAlways,
			ProgramName:         "Landscape Vision Pro",
		},
		BackgroundColour: &options.RGBA{R: 20, G: 32, B: 24, A: 1},
		OnStartup: func(ctx context.Context) {
			svc.Session.Startup(ctx)
			svc.Session.Init()
			app.startup(ctx)
		},
		OnShutdown: app.shutdown,
		Bind: []interface{}{
			app,
			svc.Session,
			svc.Presets,
			keyringService,
		},
	})

	if err != nil {
		println("Error:", err.Error())
	}
}
