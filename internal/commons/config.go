package commons

import (
	"github.com/joho/godotenv"

	"kingflex/internal/config"
)

// LoadConfig loads an optional .env file and resolves configuration from the
// environment. A missing .env file is not an error.
func LoadConfig() (*config.Config, error) {
	_ = godotenv.Load()

	return config.Load()
}
