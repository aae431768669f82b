//go:build !prod

package database

// GetDefaultDBPath returns the database path for development mode, next to
// the working directory so it is easy to inspect.
func GetDefaultDBPath() string {
	return defaultDBName
}

func IsDevelopment() bool {
	return true
}
