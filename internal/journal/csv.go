package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerview/internal/canon"
	"github.com/cleared-dev/ledgerview/internal/model"
)

// Header is the CSV header for journal.csv. Each row is one line; rows that
// share an entry_id form one entry, and the entry fields are taken from the
// first such row.
var Header = []string{
	"entry_id", "number", "date", "created_at", "source", "description",
	"status", "academic_year_id", "is_balanced", "account_id", "debit", "credit",
}

const (
	numFields   = 12
	dateFormat  = "2006-01-02"
	colEntryID  = 0
	colNumber   = 1
	colDate     = 2
	colCreated  = 3
	colSource   = 4
	colDesc     = 5
	colStatus   = 6
	colYear     = 7
	colBalanced = 8
	colAcctID   = 9
	colDebit    = 10
	colCredit   = 11
)

// ReadEntries reads all entries from a journal.csv reader, in order of first
// appearance.
func ReadEntries(r io.Reader) ([]model.JournalEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading journal CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	index := make(map[string]int)
	var entries []model.JournalEntry
	for i, rec := range records[1:] {
		entry, line, err := UnmarshalRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		pos, seen := index[entry.ID]
		if !seen {
			pos = len(entries)
			index[entry.ID] = pos
			entries = append(entries, entry)
		}
		if line.AccountID != "" {
			entries[pos].Lines = append(entries[pos].Lines, line)
		}
	}
	return entries, nil
}

// WriteEntries writes entries to a journal.csv writer (including header).
// An entry without lines is written as a single row with an empty account.
func WriteEntries(w io.Writer, entries []model.JournalEntry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, e := range entries {
		lines := e.Lines
		if len(lines) == 0 {
			lines = []model.JournalLine{{}}
		}
		for _, l := range lines {
			if err := cw.Write(MarshalRow(e, l)); err != nil {
				return fmt.Errorf("writing entry %d: %w", i, err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalRow converts one line of an entry to a CSV row.
func MarshalRow(e model.JournalEntry, l model.JournalLine) []string {
	row := make([]string, numFields)
	row[colEntryID] = e.ID
	row[colNumber] = e.Number
	if !e.Date.IsZero() {
		row[colDate] = e.Date.Format(dateFormat)
	}
	if !e.CreatedAt.IsZero() {
		row[colCreated] = e.CreatedAt.Format(dateFormat)
	}
	row[colSource] = e.Source
	row[colDesc] = e.Description
	row[colStatus] = string(e.Status)
	row[colYear] = e.AcademicYearID
	if e.Balanced != nil {
		row[colBalanced] = strconv.FormatBool(*e.Balanced)
	}
	row[colAcctID] = l.AccountID
	if !l.Debit.IsZero() {
		row[colDebit] = l.Debit.StringFixed(2)
	}
	if !l.Credit.IsZero() {
		row[colCredit] = l.Credit.StringFixed(2)
	}
	return row
}

// UnmarshalRow converts a CSV row to its entry header and line.
// Malformed dates are left zero so the reporting layer can apply its date
// policy; malformed amounts are an error.
func UnmarshalRow(record []string) (model.JournalEntry, model.JournalLine, error) {
	if len(record) != numFields {
		return model.JournalEntry{}, model.JournalLine{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	entryID := strings.TrimSpace(record[colEntryID])
	if entryID == "" {
		return model.JournalEntry{}, model.JournalLine{}, fmt.Errorf("empty entry_id")
	}

	var debit, credit decimal.Decimal
	var err error
	if s := strings.TrimSpace(record[colDebit]); s != "" {
		debit, err = decimal.NewFromString(s)
		if err != nil {
			return model.JournalEntry{}, model.JournalLine{}, fmt.Errorf("parsing debit %q: %w", s, err)
		}
	}
	if s := strings.TrimSpace(record[colCredit]); s != "" {
		credit, err = decimal.NewFromString(s)
		if err != nil {
			return model.JournalEntry{}, model.JournalLine{}, fmt.Errorf("parsing credit %q: %w", s, err)
		}
	}

	var balanced *bool
	if s := strings.TrimSpace(record[colBalanced]); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return model.JournalEntry{}, model.JournalLine{}, fmt.Errorf("parsing is_balanced %q: %w", s, err)
		}
		balanced = &b
	}

	number := strings.TrimSpace(record[colNumber])
	if number == "" {
		number = entryID
	}

	entry := model.JournalEntry{
		ID:             entryID,
		Number:         number,
		Date:           canon.ParseTime(record[colDate]),
		CreatedAt:      canon.ParseTime(record[colCreated]),
		Source:         record[colSource],
		Description:    record[colDesc],
		Status:         model.EntryStatus(strings.ToUpper(strings.TrimSpace(record[colStatus]))),
		AcademicYearID: strings.TrimSpace(record[colYear]),
		Balanced:       balanced,
	}
	line := model.JournalLine{
		AccountID: strings.TrimSpace(record[colAcctID]),
		Debit:     debit,
		Credit:    credit,
	}
	return entry, line, nil
}
