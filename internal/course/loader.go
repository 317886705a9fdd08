package course

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Loader loads course files from a directory tree.
type Loader struct {
	Root string
}

// NewLoader creates a loader rooted at the given directory.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans the root for .yaml/.yml course files. Invalid
// files are skipped; results are sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]*Course, error) {
	var courses []*Course

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		c, err := l.LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}
		courses = append(courses, c)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("course: walking %s: %w", l.Root, err)
	}

	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
	return courses, nil
}

// LoadFile loads and validates a single course file.
func (l *Loader) LoadFile(path string) (*Course, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("course: reading %s: %w", path, err)
	}
	c, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("course: parsing %s: %w", path, err)
	}
	return c, nil
}

// Resolve returns a course by ID, preferring courses found under dir (when
// non-empty) and falling back to the built-in registry.
func Resolve(id, dir string) (*Course, error) {
	if dir != "" {
		loaded, err := NewLoader(dir).LoadAll()
		if err == nil {
			for _, c := range loaded {
				if c.ID == id {
					return c, nil
				}
			}
		}
	}
	return Get(id)
}
