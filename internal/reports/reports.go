// Package reports builds the financial statements: journal, general ledger,
// trial balance, income statement, balance sheet, cash flow and the
// receivables summary. Every builder is a pure function of its Inputs and
// Request; none of them mutates its arguments or returns an error for data
// quality problems, which are reported in each result's Anomalies instead.
package reports

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerview/internal/accounts"
	"github.com/cleared-dev/ledgerview/internal/filter"
	"github.com/cleared-dev/ledgerview/internal/journal"
	"github.com/cleared-dev/ledgerview/internal/ledger"
	"github.com/cleared-dev/ledgerview/internal/model"
)

// OpeningMode selects where the general ledger opening balance comes from.
type OpeningMode string

const (
	// OpeningFromCaller uses Request.OpeningBalance as given.
	OpeningFromCaller OpeningMode = "caller"
	// OpeningFromHistory sums the account over posted entries before Request.From.
	OpeningFromHistory OpeningMode = "history"
)

// ParseOpeningMode accepts "caller" (default when empty) or "history".
func ParseOpeningMode(s string) (OpeningMode, error) {
	switch OpeningMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", OpeningFromCaller:
		return OpeningFromCaller, nil
	case OpeningFromHistory:
		return OpeningFromHistory, nil
	}
	return "", fmt.Errorf("unknown opening balance mode %q", s)
}

// ReceivableRules decide which invoices count towards the AR summary.
// Statuses are compared case-insensitively; an empty list means the default
// one. CurrentAcademicYear scopes the summary when the request names no year.
type ReceivableRules struct {
	ApprovedStatuses    []string
	VoidStatuses        []string
	CurrentAcademicYear string
}

// DefaultReceivableRules returns the statuses used when none are configured.
func DefaultReceivableRules() ReceivableRules {
	return ReceivableRules{
		ApprovedStatuses: []string{"APPROVED", "POSTED", "PAID", "PARTIALLY_PAID", "PARTIAL"},
		VoidStatuses:     []string{"VOID", "VOIDED", "CANCELLED", "CANCELED"},
	}
}

// Options are caller-owned settings shared by all builders.
type Options struct {
	Filter      filter.Options
	Classifier  ledger.Classifier
	Opening     OpeningMode
	Receivables ReceivableRules
}

// DefaultOptions returns the settings used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Filter:      filter.Options{DatePolicy: filter.DateFallbackNow},
		Classifier:  ledger.DefaultClassifier(),
		Opening:     OpeningFromCaller,
		Receivables: DefaultReceivableRules(),
	}
}

// Inputs is the read-only snapshot a statement is computed from.
type Inputs struct {
	Accounts *accounts.Directory
	Entries  []model.JournalEntry
	Invoices []model.Invoice
	Students []model.Student
	Grades   []model.Grade
	FeeHeads []model.FeeHead
	Options  Options
}

// Request carries the criteria of one statement. Builders ignore the fields
// that do not apply to them.
type Request struct {
	filter.Criteria
	Level          filter.Level    // trial balance
	AsOf           time.Time       // balance sheet; falls back to To
	ShowZero       bool            // balance sheet
	OpeningBalance decimal.Decimal // general ledger, OpeningFromCaller
}

// Kind names a statement type.
type Kind string

const (
	KindJournal         Kind = "journal"
	KindGeneralLedger   Kind = "general-ledger"
	KindTrialBalance    Kind = "trial-balance"
	KindIncomeStatement Kind = "income-statement"
	KindBalanceSheet    Kind = "balance-sheet"
	KindCashFlow        Kind = "cash-flow"
	KindARSummary       Kind = "ar-summary"
)

// Kinds lists every statement type in display order.
var Kinds = []Kind{
	KindJournal,
	KindGeneralLedger,
	KindTrialBalance,
	KindIncomeStatement,
	KindBalanceSheet,
	KindCashFlow,
	KindARSummary,
}

// ErrUnknownKind is returned by Build for an unrecognized statement type.
var ErrUnknownKind = errors.New("unknown report kind")

// ParseKind resolves a statement name.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Result is implemented by every statement.
type Result interface {
	ReportKind() Kind
	// Empty reports the "nothing to print" state.
	Empty() bool
	Issues() model.Anomalies
}

// Build dispatches to the builder for kind.
func Build(kind Kind, in Inputs, req Request) (Result, error) {
	switch kind {
	case KindJournal:
		return BuildJournal(in, req), nil
	case KindGeneralLedger:
		return BuildGeneralLedger(in, req), nil
	case KindTrialBalance:
		return BuildTrialBalance(in, req), nil
	case KindIncomeStatement:
		return BuildIncomeStatement(in, req), nil
	case KindBalanceSheet:
		return BuildBalanceSheet(in, req), nil
	case KindCashFlow:
		return BuildCashFlow(in, req), nil
	case KindARSummary:
		return BuildARSummary(in, req), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// mustInputs panics on a contract violation. Data problems never panic.
func mustInputs(in Inputs) {
	if in.Accounts == nil {
		panic("reports: Inputs.Accounts is nil")
	}
}

// scope filters the posted entries for c and records balance anomalies for
// the entries that made it through. Undated ids cover only entries that
// pass the source, account and year predicates.
func scope(in Inputs, c filter.Criteria) (filter.Result, model.Anomalies) {
	res := filter.Apply(in.Entries, c, in.Options.Filter)
	an := model.Anomalies{UndatedEntries: res.Undated}
	for _, e := range res.Entries {
		if journal.IsUnbalanced(e.JournalEntry) {
			an.UnbalancedEntries = append(an.UnbalancedEntries, e.ID)
		}
	}
	return res, an
}
