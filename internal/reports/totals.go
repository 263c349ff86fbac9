package reports

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerview/internal/accounts"
	"github.com/cleared-dev/ledgerview/internal/ledger"
	"github.com/cleared-dev/ledgerview/internal/model"
)

// sortedAccounts returns the accounts present in agg ordered by code, then id.
func sortedAccounts(dir *accounts.Directory, agg ledger.Aggregation) []model.Account {
	out := make([]model.Account, 0, len(agg.Totals))
	for id := range agg.Totals {
		if acct, ok := dir.Get(id); ok {
			out = append(out, acct)
		}
	}
	sortByCode(out)
	return out
}

func sortByCode(accts []model.Account) {
	sort.SliceStable(accts, func(i, j int) bool {
		if accts[i].Code != accts[j].Code {
			return accts[i].Code < accts[j].Code
		}
		return accts[i].ID < accts[j].ID
	})
}

// AccountAmount is one account line of a sectioned statement.
type AccountAmount struct {
	AccountID string          `json:"accountId,omitempty"`
	Code      string          `json:"code,omitempty"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Synthetic bool            `json:"synthetic,omitempty"`
}

// Section groups account lines under a heading with their total.
type Section struct {
	Label string          `json:"label"`
	Rows  []AccountAmount `json:"rows"`
	Total decimal.Decimal `json:"total"`
}

func newSection(label string) Section {
	return Section{Label: label, Rows: []AccountAmount{}, Total: decimal.Zero}
}

func (s *Section) add(row AccountAmount) {
	s.Total = s.Total.Add(row.Amount)
	row.Amount = ledger.Round(row.Amount)
	s.Rows = append(s.Rows, row)
}

func (s *Section) close() {
	s.Total = ledger.Round(s.Total)
}

// isZero reports whether an amount rounds to zero at reporting precision.
func isZero(d decimal.Decimal) bool {
	return ledger.Round(d).IsZero()
}
