package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variable names understood by the CLI.
const (
	EnvDBPath     = "FLAPPY_DB"
	EnvFPS        = "FLAPPY_FPS"
	EnvSeed       = "FLAPPY_SEED"
	EnvConfig     = "FLAPPY_CONFIG"
	EnvDifficulty = "FLAPPY_DIFFICULTY"
	EnvLogPath    = "FLAPPY_LOG"
)

// Env holds process settings read from the environment. Zero values mean unset.
type Env struct {
	DBPath     string
	FPS        int
	Seed       int64
	ConfigPath string
	Difficulty string
	LogPath    string
}

// LoadDotEnv loads variables from a .env file without overriding ones
// already present in the environment. A missing file is not an error
// unless required is set.
func LoadDotEnv(path string, required bool) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: cannot load env file %s: %w", path, err)
	}
	return nil
}

// ReadEnv collects the FLAPPY_* variables.
func ReadEnv() (Env, error) {
	env := Env{
		DBPath:     os.Getenv(EnvDBPath),
		ConfigPath: os.Getenv(EnvConfig),
		Difficulty: os.Getenv(EnvDifficulty),
		LogPath:    os.Getenv(EnvLogPath),
	}

	if v := os.Getenv(EnvFPS); v != "" {
		fps, err := strconv.Atoi(v)
		if err != nil || fps <= 0 {
			return env, fmt.Errorf("config: %s must be a positive integer, got %q", EnvFPS, v)
		}
		env.FPS = fps
	}

	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return env, fmt.Errorf("config: %s must be an integer, got %q", EnvSeed, v)
		}
		env.Seed = seed
	}

	return env, nil
}
