package model

import "strings"

// AccountType classifies accounts in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
)

// ParseAccountType maps a free-form type label onto an AccountType.
// Unknown labels return "" and false.
func ParseAccountType(s string) (AccountType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asset", "assets":
		return AccountTypeAsset, true
	case "liability", "liabilities":
		return AccountTypeLiability, true
	case "equity", "capital":
		return AccountTypeEquity, true
	case "revenue", "income":
		return AccountTypeRevenue, true
	case "expense", "expenses":
		return AccountTypeExpense, true
	}
	return "", false
}

// Account is one row of the chart of accounts.
type Account struct {
	ID        string
	Code      string
	Name      string
	Type      AccountType
	ParentID  string // "" = main account
	SystemTag string // CASH, BANK, ...
	IsCash    bool
	SubType   string // FIXED marks fixed assets
}

// IsMain reports whether the account has no parent.
func (a Account) IsMain() bool {
	return a.ParentID == ""
}
