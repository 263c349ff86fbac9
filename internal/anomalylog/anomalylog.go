// Package anomalylog keeps a CSV history of data-quality findings under the
// ledger root, one row per finding per validation run.
package anomalylog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cleared-dev/ledgerview/internal/journal"
)

// Entry is one row in the anomaly log.
type Entry struct {
	Timestamp time.Time
	Kind      journal.ErrorKind
	EntryID   string
	AccountID string
	Details   string
}

// Header is the CSV header for anomalies.csv.
const Header = "timestamp,kind,entry_id,account_id,details"

const (
	numFields    = 5
	logDir       = "logs"
	logFile      = "logs/anomalies.csv"
	colTimestamp = 0
	colKind      = 1
	colEntryID   = 2
	colAccountID = 3
	colDetails   = 4
)

// FromReport turns validation findings into log entries stamped at.
func FromReport(rep journal.Report, at time.Time) []Entry {
	entries := make([]Entry, 0, len(rep.Errors))
	for _, ve := range rep.Errors {
		entries = append(entries, Entry{
			Timestamp: at.UTC(),
			Kind:      ve.Kind,
			EntryID:   ve.EntryID,
			AccountID: ve.AccountID,
			Details:   ve.Description,
		})
	}
	return entries
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colKind] = string(e.Kind)
	row[colEntryID] = e.EntryID
	row[colAccountID] = e.AccountID
	row[colDetails] = e.Details
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	return Entry{
		Timestamp: ts,
		Kind:      journal.ErrorKind(record[colKind]),
		EntryID:   record[colEntryID],
		AccountID: record[colAccountID],
		Details:   record[colDetails],
	}, nil
}

// Append writes entries to <root>/logs/anomalies.csv, creating the file and
// header if needed. Appending nothing leaves the file untouched.
func Append(root string, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	if err := os.MkdirAll(filepath.Join(root, logDir), 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(root, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening anomaly log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all entries from <root>/logs/anomalies.csv.
// Returns an empty slice if the file does not exist.
func Read(root string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(root, logFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening anomaly log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading anomaly log CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
