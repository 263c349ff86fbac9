package reports

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerview/internal/filter"
	"github.com/cleared-dev/ledgerview/internal/journal"
	"github.com/cleared-dev/ledgerview/internal/ledger"
	"github.com/cleared-dev/ledgerview/internal/model"
)

// Balance sides.
const (
	SideDebit  = "debit"
	SideCredit = "credit"
)

// TrialBalanceRow is one account of the trial balance. NetBalance is
// debit minus credit; Balance is its magnitude on the BalanceType side.
type TrialBalanceRow struct {
	AccountID   string            `json:"accountId"`
	Code        string            `json:"code"`
	Name        string            `json:"name"`
	Type        model.AccountType `json:"type"`
	Level       filter.Level      `json:"level"`
	Debit       decimal.Decimal   `json:"debit"`
	Credit      decimal.Decimal   `json:"credit"`
	NetBalance  decimal.Decimal   `json:"netBalance"`
	Balance     decimal.Decimal   `json:"balance"`
	BalanceType string            `json:"balanceType"`
}

// TrialBalanceTotals are the grand totals. NetBalance tends to zero on a
// balanced ledger, as does DebitBalances minus CreditBalances.
type TrialBalanceTotals struct {
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	NetBalance     decimal.Decimal `json:"netBalance"`
	DebitBalances  decimal.Decimal `json:"debitBalances"`
	CreditBalances decimal.Decimal `json:"creditBalances"`
	Balanced       bool            `json:"balanced"`
}

// TrialBalance lists every account with activity in the period.
type TrialBalance struct {
	Rows      []TrialBalanceRow  `json:"rows"`
	Totals    TrialBalanceTotals `json:"totals"`
	NoData    bool               `json:"noData"`
	Anomalies model.Anomalies    `json:"anomalies"`
}

func (t TrialBalance) ReportKind() Kind { return KindTrialBalance }
func (t TrialBalance) Empty() bool { return t.NoData }
func (t TrialBalance) Issues() model.Anomalies { return t.Anomalies }

// BuildTrialBalance sums every filtered line per account regardless of the
// entries' balance flags, keeps the accounts matching req.Level (and
// req.AccountID when set) and orders them by code.
func BuildTrialBalance(in Inputs, req Request) TrialBalance {
	mustInputs(in)
	res, an := scope(in, req.Criteria)
	agg := ledger.Aggregate(filter.Plain(res.Entries), in.Accounts)
	an.MissingAccountRefs += agg.MissingAccountRefs

	var only string
	if req.AccountID != "" {
		if acct, ok := in.Accounts.Get(req.AccountID); ok {
			only = acct.ID
		}
	}

	out := TrialBalance{Rows: []TrialBalanceRow{}}
	var tot TrialBalanceTotals
	tot.Debit, tot.Credit, tot.NetBalance = decimal.Zero, decimal.Zero, decimal.Zero
	tot.DebitBalances, tot.CreditBalances = decimal.Zero, decimal.Zero

	for _, acct := range sortedAccounts(in.Accounts, agg) {
		if !req.Level.Match(acct) {
			continue
		}
		if req.AccountID != "" && acct.ID != only {
			continue
		}
		t := agg.Get(acct.ID)
		net := t.Balance()
		row := TrialBalanceRow{
			AccountID:   acct.ID,
			Code:        acct.Code,
			Name:        acct.Name,
			Type:        acct.Type,
			Level:       levelOf(acct),
			Debit:       ledger.Round(t.Debit),
			Credit:      ledger.Round(t.Credit),
			NetBalance:  ledger.Round(net),
			Balance:     ledger.Round(net.Abs()),
			BalanceType: SideDebit,
		}
		if net.IsNegative() {
			row.BalanceType = SideCredit
			tot.CreditBalances = tot.CreditBalances.Add(net.Abs())
		} else {
			tot.DebitBalances = tot.DebitBalances.Add(net)
		}
		tot.Debit = tot.Debit.Add(t.Debit)
		tot.Credit = tot.Credit.Add(t.Credit)
		tot.NetBalance = tot.NetBalance.Add(net)
		out.Rows = append(out.Rows, row)
	}

	tot.Balanced = tot.Debit.Sub(tot.Credit).Abs().LessThanOrEqual(journal.Tolerance)
	tot.Debit = ledger.Round(tot.Debit)
	tot.Credit = ledger.Round(tot.Credit)
	tot.NetBalance = ledger.Round(tot.NetBalance)
	tot.DebitBalances = ledger.Round(tot.DebitBalances)
	tot.CreditBalances = ledger.Round(tot.CreditBalances)
	out.Totals = tot
	out.NoData = len(out.Rows) == 0
	out.Anomalies = an
	return out
}

func levelOf(acct model.Account) filter.Level {
	if acct.IsMain() {
		return filter.LevelMain
	}
	return filter.LevelSub
}
