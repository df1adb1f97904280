package commands

import (
	"fmt"
	"os"

	"github.com/basalt-labs/gospread/sheet"
)

// openSheet loads path into a fresh Sheet, or returns an empty one if
// the file does not yet exist.
func openSheet(path string) (*sheet.Sheet, error) {
	s := sheet.New()
	if !fileExists(path) {
		return s, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sheet file: %w", err)
	}
	defer f.Close()

	if !s.Load(f) {
		return nil, fmt.Errorf("load sheet file %q: malformed record stream", path)
	}
	return s, nil
}

// persistSheet writes s to path, truncating any existing contents.
func persistSheet(path string, s *sheet.Sheet) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create sheet file: %w", err)
	}
	defer f.Close()

	if err := s.Save(f); err != nil {
		return fmt.Errorf("save sheet file: %w", err)
	}
	return nil
}
