package journal

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerview/internal/model"
)

// Tolerance is the largest debit/credit difference still considered balanced.
var Tolerance = decimal.RequireFromString("0.01")

// ErrorKind names the rule a ValidationError breaks.
type ErrorKind string

const (
	KindUnbalanced     ErrorKind = "unbalanced-entry"
	KindFlagged        ErrorKind = "flagged-unbalanced"
	KindMissingAccount ErrorKind = "missing-account"
	KindNegativeAmount ErrorKind = "negative-amount"
	KindEmptyEntry     ErrorKind = "empty-entry"
	KindOrphanParent   ErrorKind = "orphan-parent"
)

// ValidationError describes a single data-quality problem.
type ValidationError struct {
	Kind        ErrorKind
	EntryID     string
	AccountID   string
	Description string
}

func (e ValidationError) Error() string {
	subject := e.EntryID
	if subject == "" {
		subject = e.AccountID
	}
	return fmt.Sprintf("%s [%s]: %s", e.Kind, subject, e.Description)
}

// AccountChecker tests whether an account id exists in the chart of accounts.
type AccountChecker interface {
	Exists(id string) bool
}

// ParentChecker lists sub-accounts whose parent is not in the chart.
type ParentChecker interface {
	OrphanParents() []string
}

// ValidateChart reports every sub-account whose parent account is missing.
func ValidateChart(chart ParentChecker) []ValidationError {
	var errs []ValidationError
	for _, id := range chart.OrphanParents() {
		errs = append(errs, ValidationError{
			Kind:        KindOrphanParent,
			AccountID:   id,
			Description: fmt.Sprintf("parent of account %s does not exist", id),
		})
	}
	return errs
}

// Report is the outcome of Validate. Entries are annotated, never removed.
type Report struct {
	Unbalanced []string
	Errors     []ValidationError
}

// IsUnbalanced reports whether the entry fails the balance rule: its totals
// differ by more than Tolerance, or the source explicitly flagged it.
func IsUnbalanced(e model.JournalEntry) bool {
	if e.Balanced != nil && !*e.Balanced {
		return true
	}
	debit, credit := e.Totals()
	return debit.Sub(credit).Abs().GreaterThan(Tolerance)
}

// Validate checks every entry. accounts may be nil to skip reference checks.
func Validate(entries []model.JournalEntry, accounts AccountChecker) Report {
	var rep Report
	for _, e := range entries {
		debit, credit := e.Totals()
		diff := debit.Sub(credit).Abs()
		flagged := e.Balanced != nil && !*e.Balanced

		switch {
		case diff.GreaterThan(Tolerance):
			rep.Unbalanced = append(rep.Unbalanced, e.ID)
			rep.Errors = append(rep.Errors, ValidationError{
				Kind:        KindUnbalanced,
				EntryID:     e.ID,
				Description: fmt.Sprintf("debits (%s) != credits (%s)", debit.StringFixed(2), credit.StringFixed(2)),
			})
		case flagged:
			rep.Unbalanced = append(rep.Unbalanced, e.ID)
			rep.Errors = append(rep.Errors, ValidationError{
				Kind:        KindFlagged,
				EntryID:     e.ID,
				Description: "entry is marked unbalanced at source",
			})
		}

		if len(e.Lines) == 0 {
			rep.Errors = append(rep.Errors, ValidationError{
				Kind:        KindEmptyEntry,
				EntryID:     e.ID,
				Description: "entry has no lines",
			})
		}

		for _, l := range e.Lines {
			if accounts != nil && !accounts.Exists(l.AccountID) {
				rep.Errors = append(rep.Errors, ValidationError{
					Kind:        KindMissingAccount,
					EntryID:     e.ID,
					AccountID:   l.AccountID,
					Description: fmt.Sprintf("unknown account %s", l.AccountID),
				})
			}
			if l.Debit.IsNegative() || l.Credit.IsNegative() {
				rep.Errors = append(rep.Errors, ValidationError{
					Kind:        KindNegativeAmount,
					EntryID:     e.ID,
					AccountID:   l.AccountID,
					Description: fmt.Sprintf("negative amount on account %s", l.AccountID),
				})
			}
		}
	}
	return rep
}
