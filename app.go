package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"landscapevision/internal/imaging"
	"landscapevision/internal/models"
	"landscapevision/internal/services"
	"landscapevision/internal/utils"
)

// App struct
type App struct {
	ctx      context.Context
	session  *services.SessionService
	autosave *services.AutosaveService
	dbClose  func() error
}

// NewApp creates a new App application struct
func NewApp(session *services.SessionService, autosave *services.AutosaveService) *App {
	return &App{session: session, autosave: autosave}
}

// startup is called when the app starts. The context is saved
// so we can call the runtime methods
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	a.autosave.Start(ctx)
}

// shutdown is called when the app is closing. Clean up resources here.
func (a *App) shutdown(ctx context.Context) {
	a.autosave.Stop()

	// Close database connection pool
	if a.dbClose != nil {
		if err := a.dbClose(); err != nil {
			runtime.LogError(ctx, fmt.Sprintf("failed to close database: %v", err))
		} else {
			runtime.LogInfo(ctx, "database closed")
		}
		a.dbClose = nil
	}
}

// SelectImage opens a native file picker and loads the chosen photo into
// the session. A cancelled dialog returns the unchanged state.
func (a *App) SelectImage() (models.SessionView, error) {
	path, err := runtime.OpenFileDialog(a.ctx, runtime.OpenDialogOptions{
		Title: "Select a photo of your garden",
		Filters: []runtime.FileFilter{
			{DisplayName: "Images (*.jpg;*.jpeg;*.png;*.webp)", Pattern: "*.jpg;*.jpeg;*.png;*.webp"},
		},
	})
	if err != nil {
		return a.session.State(), err
	}
	if path == "" {
		return a.session.State(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		runtime.LogError(a.ctx, fmt.Sprintf("failed to read %s: %v", path, err))
		return a.session.State(), err
	}
	return a.session.SelectImage(filepath.Base(path), utils.ImageMIMEType(path), data)
}

// SaveDownload asks where to write the generated image and writes it there.
// It returns the chosen path, or an empty string when the dialog was
// cancelled or signup is still required.
func (a *App) SaveDownload() (string, error) {
	res, err := a.session.RequestDownload()
	if err != nil {
		return "", err
	}
	if res.SignupRequired {
		return "", nil
	}
	return a.writeDownload(res)
}

// CompleteSignup records the lead and finishes a pending download, if any.
func (a *App) CompleteSignup(lead models.UserLead) (string, error) {
	res, err := a.session.CompleteSignup(lead)
	if err != nil || res == nil {
		return "", err
	}
	return a.writeDownload(res)
}

func (a *App) writeDownload(res *models.DownloadResult) (string, error) {
	path, err := runtime.SaveFileDialog(a.ctx, runtime.SaveDialogOptions{
		Title:           "Save design",
		DefaultFilename: res.FileName,
		Filters: []runtime.FileFilter{
			{DisplayName: "PNG image (*.png)", Pattern: "*.png"},
		},
	})
	if err != nil || path == "" {
		return "", err
	}

	_, data, err := imaging.ParseDataURI(res.DataURI)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		runtime.LogError(a.ctx, fmt.Sprintf("failed to write %s: %v", path, err))
		return "", err
	}
	runtime.LogInfo(a.ctx, fmt.Sprintf("design written to %s", path))
	return path, nil
}
