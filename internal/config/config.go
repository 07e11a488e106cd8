package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from a .env file in the current or parent
// directory, if one exists. Variables already set in the environment win.
// It returns the file it loaded, or "" when there was none.
func LoadEnv() (string, error) {
	for _, envFile := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			return envFile, err
		}
		return envFile, nil
	}
	return "", nil
}

