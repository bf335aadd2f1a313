package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/space-voyager/internal/core"
	"github.com/vovakirdan/space-voyager/internal/platform/tui"
	"github.com/vovakirdan/space-voyager/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Fly locally",
	Long: `Start a voyage in this terminal.

Controls:
  Space/Up/Enter - Launch, then thrust
  P/Esc          - Pause
  Tab            - Scoreboard (between runs)
  Ctrl+S         - Screenshot to ~/.voyager/screenshots
  Q/Ctrl+C       - Quit

Difficulty options:
  easy   - Slower ramp, sparser and slower formations
  normal - Configured values
  hard   - Faster ramp, denser and faster formations
  fixed  - No speed ramp

Examples:
  voyager play
  voyager play --difficulty easy
  voyager play --seed 42 --log ~/.voyager/voyager.log
  voyager play --config ./my-voyager.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger("voyager", io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage - the high score lives in memory
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	opts := tui.Options{
		Config: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Store:  store,
		Player: os.Getenv("USER"),
		Logger: logger,
	}
	if err := tui.Run(opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
