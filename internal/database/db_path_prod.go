//go:build prod

package database

import (
	"log"
	"path/filepath"

	"landscapevision/internal/utils"
)

// GetDefaultDBPath returns the database path for production mode.
// In production, the database is stored in the user's config directory.
func GetDefaultDBPath() string {
	dir, err := utils.AppConfigDir()
	if err != nil {
		log.Printf("Warning: no usable config dir (%v), using the working directory", err)
		return defaultDBName
	}
	return filepath.Join(dir, defaultDBName)
}

func IsDevelopment() bool {
	return false
}
