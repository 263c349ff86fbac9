package journal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cleared-dev/ledgerview/internal/model"
)

// Path is the journal location relative to a ledger root.
const Path = "journal/journal.csv"

// Load reads <root>/journal/journal.csv. A missing file is an empty journal.
func Load(root string) ([]model.JournalEntry, error) {
	path := filepath.Join(root, Path)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening journal %s: %w", path, err)
	}
	defer f.Close()

	entries, err := ReadEntries(f)
	if err != nil {
		return nil, fmt.Errorf("reading journal %s: %w", path, err)
	}
	return entries, nil
}

// Save writes entries to <root>/journal/journal.csv, replacing any existing file.
func Save(root string, entries []model.JournalEntry) error {
	path := filepath.Join(root, Path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating journal dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating journal: %w", err)
	}
	defer f.Close()

	if err := WriteEntries(f, entries); err != nil {
		return fmt.Errorf("writing journal: %w", err)
	}
	return nil
}
