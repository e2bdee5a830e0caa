// pythonix is a terminal snake game with an online leaderboard service.
//
// Usage:
//
//	pythonix play              - Play snake in the terminal
//	pythonix serve             - Start the leaderboard HTTP service
//	pythonix scores            - Show the leaderboard
//
// Global flags:
//
//	--config <path>  - Path to a config YAML (default: search order)
//	--db <path>      - Database path (default: ~/.pythonix/pythonix.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig string
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pythonix",
	Short: "Pythonix - snake in your terminal, scores in the cloud",
	Long: `Pythonix is a terminal snake game with a shared online leaderboard.

Available commands:
  play     - Play snake in the terminal
  serve    - Start the leaderboard HTTP service
  scores   - View the leaderboard

Examples:
  pythonix play
  pythonix play --server http://localhost:8080
  pythonix serve --addr :8080
  pythonix scores
  pythonix scores --server http://localhost:8080`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Database path (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
