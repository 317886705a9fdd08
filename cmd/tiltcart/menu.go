package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tiltcart/internal/course"
	"github.com/vovakirdan/tiltcart/internal/platform/tui"
	"github.com/vovakirdan/tiltcart/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start tiltcart with a course picker menu",
	Long: `Start tiltcart in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a course, Tab for
the leaderboard. After a run ends, quit the course to return to the
menu.

Examples:
  tiltcart menu
  tiltcart menu --difficulty easy
  tiltcart menu --course-dir ./courses`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tuning config YAML")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	menuCmd.Flags().StringVar(&flagCourseDir, "course-dir", "", "Directory with additional course YAML files")
}

func runMenu(_ *cobra.Command, _ []string) {
	gameCfg, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	courses := course.List()
	if flagCourseDir != "" {
		loaded, loadErr := course.NewLoader(flagCourseDir).LoadAll()
		if loadErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not load %s: %v\n", flagCourseDir, loadErr)
		} else {
			courses = append(courses, loaded...)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		store = nil
	}

	runErr := tui.RunFlow(courses, gameCfg, store, terminalRuntime())

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}
