package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	tetrisgame "github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
	engine "github.com/vovakirdan/tui-tetris/internal/tetris"
)

var (
	flagConfig     string
	flagDifficulty string
	flagWidth      int
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the given mode (tetris when omitted).

Controls:
  Left/Right, A/D  - Move
  Up, W, X         - Rotate clockwise
  Z                - Rotate counter-clockwise
  Down, S          - Soft drop
  Space            - Hard drop
  P/Esc            - Pause
  B                - Back (when paused or game over)
  R                - Restart (after game over)
  Ctrl+S           - Save a text screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Start at level 1, next piece shown
  normal - Start at level 4
  hard   - Start at level 7 with a fast soft drop
  fixed  - Gravity never speeds up

Examples:
  tetris play
  tetris play tetris_bag
  tetris play --difficulty hard --width 12
  tetris play --config ./my-tetris.yaml --seed 42
  tetris play --events :8081   # stream events to ws://localhost:8081/events`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	addGameFlags(playCmd)
}

// addGameFlags registers the flags that shape a run on cmd.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().IntVar(&flagWidth, "width", 0, "Board width in columns (0 = from config)")
	cmd.Flags().StringVar(&flagEvents, "events", "", "Serve engine events over WebSocket at this address (e.g. :8081)")
}

// applyGameFlags validates the game flags and hands them to the game
// package. Bad values end the process before the screen is taken over.
func applyGameFlags() {
	if _, err := config.LoadTetris(flagConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagDifficulty != "" {
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if flagWidth != 0 && flagWidth < engine.MinWidth {
		fmt.Fprintf(os.Stderr, "Error: --width must be at least %d\n", engine.MinWidth)
		os.Exit(1)
	}

	tetrisgame.SetConfigPath(flagConfig)
	tetrisgame.SetDifficultyPreset(flagDifficulty)
	tetrisgame.SetWidth(flagWidth)
}

// runtimeConfig sizes the screen from the controlling terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the score database; failures only disable scores.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) {
	mode := string(tetrisgame.ModeClassic)
	if len(args) == 1 {
		mode = args[0]
	}

	if !registry.Exists(mode) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", mode)
		fmt.Fprintln(os.Stderr, "Run 'tetris list' to see available modes.")
		os.Exit(1)
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: play needs an interactive terminal")
		os.Exit(1)
	}

	applyGameFlags()

	game, err := registry.Create(mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := mustLogger("tetris", io.Discard)
	defer closeLog()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	observe, stopFeed := startFeed(logger)
	defer stopFeed()
	observe(mode, game)

	cfg := runtimeConfig()
	logger.Debug("starting", "mode", mode, "screen", fmt.Sprintf("%dx%d", cfg.ScreenW, cfg.ScreenH))

	if err := tui.Run(game, store, cfg, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
