// flappy is a Flappy Bird-style game for the terminal.
//
// Usage:
//
//	flappy play              - Play in the current terminal
//	flappy scores            - Show high scores and run statistics
//	flappy serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.flappy/scores.db)
//	--log <path>    - Write logs to a file
//	--env <path>    - Load settings from an env file (default: ./.env if present)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogPath string
	flagEnvFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy - keep the bird in the air, in your terminal",
	Long: `Flappy is a terminal take on the Flappy Bird game: flap through
gaps in an endless stream of pipes and beat your best score.

Available commands:
  play     - Play in the current terminal
  scores   - View high scores
  serve    - Start SSH server for remote play

Settings can also come from the environment or a .env file:
  FLAPPY_DB, FLAPPY_FPS, FLAPPY_SEED, FLAPPY_LOG,
  FLAPPY_CONFIG, FLAPPY_DIFFICULTY
Command-line flags win over the environment.

Examples:
  flappy play
  flappy play --difficulty hard
  flappy scores --tui
  flappy serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: applyEnvironment,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.flappy/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env", "", "Env file with FLAPPY_* settings (default .env)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// applyEnvironment loads the env file and fills every flag the user did not
// set from its FLAPPY_* variable.
func applyEnvironment(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(flagEnvFile, flagEnvFile != ""); err != nil {
		return err
	}

	env, err := config.ReadEnv()
	if err != nil {
		return err
	}

	values := map[string]string{
		"db":         env.DBPath,
		"log":        env.LogPath,
		"config":     env.ConfigPath,
		"difficulty": env.Difficulty,
	}
	if env.FPS > 0 {
		values["fps"] = strconv.Itoa(env.FPS)
	}
	if env.Seed != 0 {
		values["seed"] = strconv.FormatInt(env.Seed, 10)
	}

	flags := cmd.Flags()
	for name, value := range values {
		if value == "" || flags.Lookup(name) == nil || flags.Changed(name) {
			continue
		}
		if err := flags.Set(name, value); err != nil {
			return fmt.Errorf("invalid value for --%s from environment: %w", name, err)
		}
	}

	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	return nil
}

// newLogger creates the process logger. With --log it writes to that file at
// debug level; otherwise it writes to fallback, or nowhere when fallback is nil.
// The returned function closes the log file.
func newLogger(prefix string, fallback io.Writer) (*log.Logger, func(), error) {
	opts := log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	}

	if flagLogPath == "" {
		if fallback == nil {
			fallback = io.Discard
		}
		return log.NewWithOptions(fallback, opts), func() {}, nil
	}

	if dir := filepath.Dir(flagLogPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory %s: %w", dir, err)
		}
	}
	f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}

	opts.Level = log.DebugLevel
	return log.NewWithOptions(f, opts), func() { f.Close() }, nil
}
