package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const appDirName = "landscape-vision"

// AppConfigDir returns the per-user directory for the app's files, creating
// it when missing.
func AppConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(configDir, appDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// envFiles lists the .env candidates, most specific first: the project
// root during development, then the user config directory.
func envFiles() []string {
	var files []string
	if root, err := FindProjectRoot(); err == nil {
		files = append(files, filepath.Join(root, ".env"))
	}
	if dir, err := AppConfigDir(); err == nil {
		files = append(files, filepath.Join(dir, ".env"))
	}
	return files
}

// LoadEnv loads every .env file that exists. Variables already set in the
// process environment, or by an earlier file, are never overridden. Missing
// files are not an error.
func LoadEnv() error {
	return loadEnvFiles(envFiles()...)
}

func loadEnvFiles(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("loading %s: %w", path, err)
		}
	}
	return nil
}
