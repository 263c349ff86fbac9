// Package ledger holds the account-keyed summation every statement is built
// on, the running-balance fold, and the cash-flow account classifier.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerview/internal/filter"
	"github.com/cleared-dev/ledgerview/internal/model"
)

// Places is the number of decimal places every monetary result is rounded to.
const Places = 2

// Round rounds a monetary amount to Places.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// Directory resolves account ids.
type Directory interface {
	Get(id string) (model.Account, bool)
}

// Totals is the debit and credit sum of one account.
type Totals struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// Balance returns debit minus credit.
func (t Totals) Balance() decimal.Decimal {
	return t.Debit.Sub(t.Credit)
}

// Aggregation maps account ids (as stored in the directory) to their totals.
type Aggregation struct {
	Totals             map[string]Totals
	MissingAccountRefs int
}

// Aggregate sums every line of entries per account in one pass. Lines whose
// account does not resolve are skipped and counted.
func Aggregate(entries []model.JournalEntry, dir Directory) Aggregation {
	agg := Aggregation{Totals: make(map[string]Totals)}
	for _, e := range entries {
		for _, l := range e.Lines {
			acct, ok := dir.Get(l.AccountID)
			if !ok {
				agg.MissingAccountRefs++
				continue
			}
			t := agg.Totals[acct.ID]
			t.Debit = t.Debit.Add(l.Debit)
			t.Credit = t.Credit.Add(l.Credit)
			agg.Totals[acct.ID] = t
		}
	}
	return agg
}

// Get returns the totals for an account id; missing accounts are zero.
func (a Aggregation) Get(id string) Totals {
	return a.Totals[id]
}

// Row is one line of a running-balance listing.
type Row struct {
	EntryID      string
	EntryNumber  string
	Date         time.Time
	Source       string
	Description  string
	Debit        decimal.Decimal
	Credit       decimal.Decimal
	BalanceAfter decimal.Decimal
}

// RunningBalance folds balanceAfter = previous + debit - credit over every line
// of the already ordered entries that posts to accountID. Lines are matched
// through dir so id spelling differences do not matter.
func RunningBalance(opening decimal.Decimal, entries []filter.Dated, accountID string, dir Directory) []Row {
	target, ok := dir.Get(accountID)
	if !ok {
		return nil
	}
	var rows []Row
	balance := opening
	for _, e := range entries {
		for _, l := range e.Lines {
			acct, ok := dir.Get(l.AccountID)
			if !ok || acct.ID != target.ID {
				continue
			}
			balance = balance.Add(l.Debit).Sub(l.Credit)
			rows = append(rows, Row{
				EntryID:      e.ID,
				EntryNumber:  e.Number,
				Date:         e.At,
				Source:       e.Source,
				Description:  e.Description,
				Debit:        l.Debit,
				Credit:       l.Credit,
				BalanceAfter: balance,
			})
		}
	}
	return rows
}
