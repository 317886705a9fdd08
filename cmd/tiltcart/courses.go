package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tiltcart/internal/course"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List all available courses",
	Long: `Shows the built-in courses plus any courses found in --course-dir.

Examples:
  tiltcart courses
  tiltcart courses --course-dir ./courses`,
	Run: runCourses,
}

func init() {
	coursesCmd.Flags().StringVar(&flagCourseDir, "course-dir", "", "Directory with additional course YAML files")
}

func runCourses(cmd *cobra.Command, args []string) {
	courses := course.List()
	if flagCourseDir != "" {
		loaded, err := course.NewLoader(flagCourseDir).LoadAll()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not load %s: %v\n", flagCourseDir, err)
		} else {
			courses = append(courses, loaded...)
		}
	}

	if len(courses) == 0 {
		fmt.Println("No courses available.")
		return
	}

	fmt.Println("Available courses:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, c := range courses {
		if len(c.ID) > maxIDLen {
			maxIDLen = len(c.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-24s  %s\n", maxIDLen, "ID", "Name", "Areas")
	fmt.Printf("  %-*s  %-24s  %s\n", maxIDLen, "--", "----", "-----")

	for _, c := range courses {
		fmt.Printf("  %-*s  %-24s  %d\n", maxIDLen, c.ID, c.Name, len(c.Areas))
	}

	fmt.Println()
	fmt.Println("Run 'tiltcart play <id>' to drive a course.")
}
