package ledger

import (
	"strings"

	"github.com/cleared-dev/ledgerview/internal/model"
)

// Section is a cash-flow statement section.
type Section string

const (
	Operating Section = "operating"
	Investing Section = "investing"
	Financing Section = "financing"
)

// Classifier recognizes liquidity accounts and sorts counter-accounts into
// cash-flow sections.
type Classifier struct {
	CashTags      []string // SystemTag values marking cash accounts
	FixedSubTypes []string // SubType values marking fixed assets
}

// DefaultClassifier treats CASH and BANK tags as cash and FIXED as fixed assets.
func DefaultClassifier() Classifier {
	return Classifier{
		CashTags:      []string{"CASH", "BANK"},
		FixedSubTypes: []string{"FIXED"},
	}
}

// IsCash reports whether acct is a cash or bank account.
func (c Classifier) IsCash(acct model.Account) bool {
	return acct.IsCash || containsFold(c.CashTags, acct.SystemTag)
}

// IsFixed reports whether acct is a fixed asset.
func (c Classifier) IsFixed(acct model.Account) bool {
	return acct.Type == model.AccountTypeAsset && containsFold(c.FixedSubTypes, acct.SubType)
}

// Section returns the cash-flow section of a counter-account.
func (c Classifier) Section(acct model.Account) Section {
	switch acct.Type {
	case model.AccountTypeLiability, model.AccountTypeEquity:
		return Financing
	case model.AccountTypeAsset:
		if c.IsFixed(acct) {
			return Investing
		}
	}
	return Operating
}

func containsFold(list []string, s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, v := range list {
		if strings.EqualFold(strings.TrimSpace(v), s) {
			return true
		}
	}
	return false
}
