package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ServerEnv holds SSH server settings that may be overridden from the
// environment. Unset variables leave the field untouched.
type ServerEnv struct {
	Address     string        `env:"NEONFLIP_SSH_ADDR"`
	HostKeyPath string        `env:"NEONFLIP_HOST_KEY"`
	DBPath      string        `env:"NEONFLIP_DB"`
	IdleTimeout time.Duration `env:"NEONFLIP_IDLE_TIMEOUT"`
	LogLevel    string        `env:"NEONFLIP_LOG_LEVEL"`
}

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
