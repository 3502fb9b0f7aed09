package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads a .env file from the current directory or a parent,
// so the token can live next to the repository being analyzed. A
// missing .env is not an error; the environment simply stands as-is.
func LoadDotEnv() error {
	envPath, ok := findEnvFile()
	if !ok {
		return nil
	}
	return godotenv.Load(envPath)
}

// findEnvFile searches for .env in the current and parent directories
// (max 5 levels up).
func findEnvFile() (string, bool) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", false
	}

	searchPath := cwd
	for i := 0; i < 5; i++ {
		envPath := filepath.Join(searchPath, ".env")
		if _, err := os.Stat(envPath); err == nil {
			return envPath, true
		}
		parent := filepath.Dir(searchPath)
		if parent == searchPath {
			break
		}
		searchPath = parent
	}
	return "", false
}
