package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tiltcart/internal/config"
	"github.com/vovakirdan/tiltcart/internal/core"
	"github.com/vovakirdan/tiltcart/internal/course"
	"github.com/vovakirdan/tiltcart/internal/platform/tui"
	"github.com/vovakirdan/tiltcart/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagCourseDir  string
)

var playCmd = &cobra.Command{
	Use:   "play <course>",
	Short: "Drive a course",
	Long: `Start driving the specified course.

Controls:
  A/Left, D/Right  - Tilt the world
  Space            - Action button (gears, lifts, launchers)
  E                - Secondary button
  J / L            - Joystick left/right (joystick gears)
  W/Up             - Blow (fans)
  P/Esc            - Pause
  R                - Restart
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - More lives, forgiving crash thresholds
  normal - Default balance
  hard   - Fewer lives, stricter crash thresholds
  fixed  - Use the config exactly as loaded

Examples:
  tiltcart play rolling-hills
  tiltcart play gear-works --difficulty easy
  tiltcart play my-course --course-dir ./courses
  tiltcart play rolling-hills --config ./my-tuning.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tuning config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagCourseDir, "course-dir", "", "Directory with additional course YAML files")
}

// loadGameConfig loads the tuning config and applies the difficulty flag.
func loadGameConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if flagDifficulty != "" {
		config.ApplyPreset(&cfg, config.ParsePreset(flagDifficulty))
	}
	return cfg, nil
}

// terminalRuntime builds a runtime config sized to the local terminal.
func terminalRuntime() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
	}
}

func runPlay(cmd *cobra.Command, args []string) {
	courseID := args[0]

	cr, err := course.Resolve(courseID, flagCourseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown course %q\n", courseID)
		fmt.Fprintln(os.Stderr, "Run 'tiltcart courses' to see available courses.")
		os.Exit(1)
	}

	gameCfg, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	rt := terminalRuntime()

	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage - the game still works
		store = nil
	}

	runErr := tui.Run(cr, gameCfg, store, rt)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running course: %v\n", runErr)
		os.Exit(1)
	}
}
