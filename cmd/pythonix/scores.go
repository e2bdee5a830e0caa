package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"pythonix/internal/client"
	"pythonix/internal/config"
	"pythonix/internal/store"
)

var (
	flagScoresServer string
	flagScoresMode   string
	flagScoresLimit  int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the leaderboard, best score per player.

Reads the local database by default. With --server the leaderboard is
fetched from a running service instead.

Examples:
  pythonix scores
  pythonix scores --limit 25
  pythonix scores --server http://localhost:8080`,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresServer, "server", "", "Leaderboard service base URL")
	scoresCmd.Flags().StringVar(&flagScoresMode, "mode", "classic", "Game mode to list")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of entries to show")
}

func runScores(_ *cobra.Command, _ []string) error {
	if flagScoresServer != "" {
		return printRemoteScores()
	}
	return printLocalScores()
}

func printRemoteScores() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	snap, err := client.New(flagScoresServer).Leaderboard(ctx, flagScoresMode, flagScoresLimit)
	if err != nil {
		return err
	}

	printHeader()
	if len(snap.Leaderboard) == 0 {
		printEmpty()
		return nil
	}
	for _, e := range snap.Leaderboard {
		name := e.DisplayName
		if name == "" {
			name = e.Username
		}
		printRow(e.Rank, name, e.BestScore, e.GamesPlayed)
	}
	return nil
}

func printLocalScores() error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	dbPath := cfg.Server.DBPath
	if flagDBPath != "" {
		dbPath = flagDBPath
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	rows, err := st.Leaderboard(flagScoresMode, flagScoresLimit)
	if err != nil {
		return err
	}

	printHeader()
	if len(rows) == 0 {
		printEmpty()
		return nil
	}
	for i, r := range rows {
		name := r.DisplayName
		if name == "" {
			name = r.Username
		}
		printRow(i+1, name, r.BestScore, r.GamesPlayed)
	}
	return nil
}

func printHeader() {
	fmt.Printf("Leaderboard - %s\n", flagScoresMode)
	fmt.Println()
	fmt.Printf("  %-4s  %-20s  %-10s  %s\n", "Rank", "Player", "Best", "Games")
	fmt.Printf("  %-4s  %-20s  %-10s  %s\n", "----", "------", "----", "-----")
}

func printEmpty() {
	fmt.Println("  No scores recorded yet.")
	fmt.Println()
	fmt.Println("  Play 'pythonix play --server <url>' to set the first score!")
}

func printRow(rank int, name string, best, games int) {
	if len(name) > 20 {
		name = name[:19] + "."
	}
	fmt.Printf("  %-4d  %-20s  %-10d  %d\n", rank, name, best, games)
}
