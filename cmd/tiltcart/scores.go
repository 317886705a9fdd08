package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tiltcart/internal/course"
	"github.com/vovakirdan/tiltcart/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores <course>",
	Short: "Show best runs for a course",
	Long: `Display the top 10 runs for the specified course.

Completed runs rank above wipeouts, then by score.

Examples:
  tiltcart scores rolling-hills
  tiltcart scores gear-works`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func runScores(cmd *cobra.Command, args []string) {
	courseID := args[0]

	cr, err := course.Resolve(courseID, flagCourseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown course %q\n", courseID)
		fmt.Fprintln(os.Stderr, "Run 'tiltcart courses' to see available courses.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	runs, err := store.BestRuns(cr.ID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Best Runs - %s\n", cr.Name)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'tiltcart play %s' to set the first one!\n", cr.ID)
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-9s  %-7s  %-6s  %s\n", "Rank", "Score", "Result", "Time", "Deaths", "Date")
	fmt.Printf("  %-4s  %-8s  %-9s  %-7s  %-6s  %s\n", "----", "-----", "------", "----", "------", "----")

	for i, r := range runs {
		result := "wipeout"
		if r.Completed {
			result = "complete"
		}
		secs := r.Ticks / 60
		timeStr := fmt.Sprintf("%d:%02d", secs/60, secs%60)
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-9s  %-7s  %-6d  %s\n", i+1, r.Score, result, timeStr, r.Deaths, dateStr)
	}

	fmt.Println()
	if fastest, fErr := store.FastestRun(cr.ID); fErr == nil && fastest != nil {
		secs := fastest.Ticks / 60
		fmt.Printf("Fastest clear: %d:%02d\n", secs/60, secs%60)
	}
}
