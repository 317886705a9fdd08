// tiltcart is a tilt-controlled physics obstacle course for the terminal.
//
// Usage:
//
//	tiltcart courses            - List available courses
//	tiltcart play <course>      - Drive a course
//	tiltcart menu               - Interactive course picker
//	tiltcart serve              - Start SSH server for remote play
//	tiltcart scores <course>    - Show best runs for a course
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible runs
//	--db <path>     - Set database path (default: ~/.tiltcart/runs.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tiltcart",
	Short: "TiltCart - Tilt-controlled cart racing in your terminal",
	Long: `TiltCart is a terminal physics game: tilt the world to roll a
two-wheeled cart through obstacle courses full of gears, lifts,
launchers and fans.

Available commands:
  courses  - Show all available courses
  play     - Drive a specific course directly
  menu     - Interactive course picker menu
  serve    - Start SSH server for remote play
  scores   - View best runs

Examples:
  tiltcart courses
  tiltcart play rolling-hills
  tiltcart menu
  tiltcart serve --ssh :2222
  tiltcart scores rolling-hills`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (simulation steps per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tiltcart/runs.db", "Path to runs database")

	// Add subcommands
	rootCmd.AddCommand(coursesCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
