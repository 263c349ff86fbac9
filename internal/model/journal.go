package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus represents the lifecycle state of a journal entry.
type EntryStatus string

const (
	StatusDraft  EntryStatus = "DRAFT"
	StatusPosted EntryStatus = "POSTED"
	StatusVoid   EntryStatus = "VOID"
)

// JournalLine is one side of a double-entry posting.
type JournalLine struct {
	AccountID string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}

// Net returns debit minus credit.
func (l JournalLine) Net() decimal.Decimal {
	return l.Debit.Sub(l.Credit)
}

// JournalEntry is a dated group of lines.
type JournalEntry struct {
	ID             string
	Number         string
	Date           time.Time // zero if missing or unparsable
	CreatedAt      time.Time // zero if missing or unparsable
	Source         string
	Description    string
	Status         EntryStatus
	AcademicYearID string
	Balanced       *bool // nil unless the source said so explicitly
	Lines          []JournalLine
}

// IsPosted reports whether the entry takes part in reporting.
func (e JournalEntry) IsPosted() bool {
	return e.Status == StatusPosted
}

// Totals returns the sum of debits and credits over all lines.
func (e JournalEntry) Totals() (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range e.Lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}

// Touches reports whether any line references accountID.
func (e JournalEntry) Touches(accountID string) bool {
	for _, l := range e.Lines {
		if l.AccountID == accountID {
			return true
		}
	}
	return false
}
