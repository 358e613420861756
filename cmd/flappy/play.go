package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the current terminal",
	Long: `Start the game in the current terminal.

Controls:
  Space/Up/W  - Flap (also starts a run), left click works too
  Enter       - Start a run
  P/Esc       - Pause
  R           - Play again after game over
  Ctrl+S      - Save a screenshot to ~/.flappy/screenshots
  Q/Ctrl+C    - Quit

Difficulty options (the scroll speed grows with your score):
  easy   - Start at base speed
  normal - Start at 30% of the speed range
  hard   - Start at 70% of the speed range
  fixed  - Never speed up

Examples:
  flappy play
  flappy play --difficulty hard
  flappy play --config ./my-flappy.yaml
  flappy play --seed 42 --log ./flappy.log`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config (YAML or TOML)")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// loadGameConfig resolves the tuning file and applies the difficulty preset.
func loadGameConfig() (config.FlappyConfig, error) {
	cfg, err := config.LoadFlappy(flagConfig)
	if err != nil {
		return cfg, err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyFlappyPreset(&cfg, preset)
	return cfg, nil
}

func runPlay(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger("flappy", nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	gameCfg, err := loadGameConfig()
	if err != nil {
		closeLog()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("playing without persistence", "error", err)
		// Continue without storage - game still works
		store = nil
	}

	opts := flappy.Options{Logger: logger}
	if store != nil {
		opts.Store = store
	}
	game := flappy.New(gameCfg, opts)

	logger.Info("starting game",
		"width", width, "height", height, "fps", flagFPS,
		"difficulty", flagDifficulty, "db", flagDBPath,
	)
	runErr := tui.Run(game, cfg, tui.ModelOptions{Store: store, Logger: logger})

	if store != nil {
		store.Close()
	}
	closeLog()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
