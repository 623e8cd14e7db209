package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a mode from an interactive menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode, Tab for the
scoreboard. Unless --difficulty is given, a difficulty picker follows.
After a game ends, B returns to the menu.

Examples:
  tetris menu
  tetris menu --fps 30
  tetris menu --db ./scores.db`,
	Run: runMenu,
}

func init() {
	addGameFlags(menuCmd)
}

// difficultySetter is implemented by games that take a per-run preset.
type difficultySetter interface {
	UseDifficulty(name string) error
}

func runMenu(_ *cobra.Command, _ []string) {
	applyGameFlags()

	logger, closeLog := mustLogger("tetris", io.Discard)
	defer closeLog()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	observe, stopFeed := startFeed(logger)
	defer stopFeed()

	cfg := runtimeConfig()
	played := 0

	for {
		result, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = result.Config

		if result.Quit {
			return
		}

		if result.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return
		}

		game, err := registry.Create(result.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		if flagDifficulty == "" {
			preset, selErr := tui.RunDifficultySelector(game.Title(), cfg)
			if selErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
				continue
			}
			if preset == "" {
				continue
			}
			if d, ok := game.(difficultySetter); ok {
				if err := d.UseDifficulty(string(preset)); err != nil {
					logger.Warn("ignoring difficulty", "preset", preset, "error", err)
				}
			}
		}

		played++
		observe(fmt.Sprintf("%s-%d", game.ID(), played), game)

		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		if err := tui.Run(game, store, cfg, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}
}
