package tone

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Report lists every unique snippet and where it recurred, one line per
// fingerprint, ordered by filename.
func (r *ScanResult) Report() []string {
	snippets := r.Sorted()
	lines := make([]string, 0, len(snippets))
	for _, s := range snippets {
		nums := make([]string, len(s.Lines))
		for i, n := range s.Lines {
			nums[i] = strconv.Itoa(n)
		}
		lines = append(lines, fmt.Sprintf("%s found at line(s): %s", s.Filename, strings.Join(nums, ", ")))
	}
	return lines
}

// WriteSnippets writes one pretty-printed canonical JSON file per
// unique snippet into dir, creating it if needed.
func (r *ScanResult) WriteSnippets(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	for _, s := range r.Sorted() {
		path := filepath.Join(dir, s.Filename)
		if err := os.WriteFile(path, []byte(s.Canonical+"\n"), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", s.Filename, err)
		}
	}
	return nil
}
