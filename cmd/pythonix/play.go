package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"pythonix/internal/client"
	"pythonix/internal/config"
	"pythonix/internal/engine"
	"pythonix/internal/tui"
)

var (
	flagServer string
	flagToken  string
	flagSeed   int64
	flagMode   string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play snake in the terminal",
	Long: `Start a snake session in the terminal.

Controls:
  Arrows/WASD  - Steer
  R            - Restart (after game over)
  Q/Ctrl+C     - Quit

The board wraps around: leaving one edge re-enters from the opposite
edge. Watch the food - not everything on the board is good for you.

With --server the final score is posted to a leaderboard service.
Pass --token to submit under your account; without it scores are
recorded as Anonymous.

Examples:
  pythonix play
  pythonix play --seed 42
  pythonix play --server http://localhost:8080 --token <jwt>`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagServer, "server", "", "Leaderboard service base URL")
	playCmd.Flags().StringVar(&flagToken, "token", "", "Bearer token for score submission")
	playCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	playCmd.Flags().StringVar(&flagMode, "mode", "classic", "Game mode label for submitted scores")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	gameCfg := engine.Config{
		Width:         cfg.Game.Width,
		Height:        cfg.Game.Height,
		BaseInterval:  time.Duration(cfg.Game.SpeedMS) * time.Millisecond,
		PowerDuration: time.Duration(cfg.Game.PowerDurationS) * time.Second,
		FoodWeights: engine.FoodWeights{
			Normal: cfg.Game.FoodWeights.Normal,
			Power:  cfg.Game.FoodWeights.Power,
			Slow:   cfg.Game.FoodWeights.Slow,
			Hazard: cfg.Game.FoodWeights.Hazard,
		},
		Seed: flagSeed,
	}

	// The board is two columns per cell plus the border.
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		if w < gameCfg.Width*2+2 || h < gameCfg.Height+4 {
			fmt.Fprintf(os.Stderr,
				"Warning: terminal %dx%d is small for a %dx%d board; consider a bigger window\n",
				w, h, gameCfg.Width, gameCfg.Height)
		}
	}

	var remote *client.Client
	if flagServer != "" {
		remote = client.New(flagServer)
		if flagToken != "" {
			remote.SetToken(flagToken)
		}
	}

	return tui.Run(engine.New(gameCfg), remote, flagMode)
}
