package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerview/internal/filter"
	"github.com/cleared-dev/ledgerview/internal/ledger"
	"github.com/cleared-dev/ledgerview/internal/model"
)

// EarningsLabel names the synthetic equity line carrying unclosed
// revenue minus expense.
const EarningsLabel = "Current Period Earnings"

// BalanceSheetTotals carries the accounting identity check.
type BalanceSheetTotals struct {
	Assets               decimal.Decimal `json:"assets"`
	Liabilities          decimal.Decimal `json:"liabilities"`
	Equity               decimal.Decimal `json:"equity"`
	LiabilitiesAndEquity decimal.Decimal `json:"liabilitiesAndEquity"`
	Difference           decimal.Decimal `json:"difference"`
	Balanced             bool            `json:"balanced"`
}

// BalanceSheet is the position as of a date.
type BalanceSheet struct {
	AsOf        time.Time          `json:"asOf,omitempty"`
	Assets      Section            `json:"assets"`
	Liabilities Section            `json:"liabilities"`
	Equity      Section            `json:"equity"`
	Totals      BalanceSheetTotals `json:"totals"`
	NoData      bool               `json:"noData"`
	Anomalies   model.Anomalies    `json:"anomalies"`
}

func (b BalanceSheet) ReportKind() Kind { return KindBalanceSheet }
func (b BalanceSheet) Empty() bool { return b.NoData }
func (b BalanceSheet) Issues() model.Anomalies { return b.Anomalies }

// BuildBalanceSheet accumulates every posted entry dated on or before
// req.AsOf (req.To when AsOf is zero; everything when both are). A bare
// date covers its whole day; a timestamp is compared exactly. Assets are
// shown at debit minus credit, liabilities and equity at credit minus debit,
// and unclosed revenue minus expense appears as an equity line so the
// identity holds before the books are closed. Zero lines are dropped unless
// req.ShowZero, in which case every asset, liability and equity account of
// the chart is listed.
func BuildBalanceSheet(in Inputs, req Request) BalanceSheet {
	mustInputs(in)
	c := req.Criteria
	c.From = time.Time{}
	if !req.AsOf.IsZero() {
		c.To = req.AsOf
	}
	res, an := scope(in, c)
	agg := ledger.Aggregate(filter.Plain(res.Entries), in.Accounts)
	an.MissingAccountRefs += agg.MissingAccountRefs

	out := BalanceSheet{
		AsOf:        c.To,
		Assets:      newSection("Assets"),
		Liabilities: newSection("Liabilities"),
		Equity:      newSection("Equity"),
	}

	var accts []model.Account
	if req.ShowZero {
		accts = append(accts, in.Accounts.All()...)
		sortByCode(accts)
	} else {
		accts = sortedAccounts(in.Accounts, agg)
	}

	earnings := decimal.Zero
	for _, acct := range accts {
		t := agg.Get(acct.ID)
		var sec *Section
		var amount decimal.Decimal
		switch acct.Type {
		case model.AccountTypeAsset:
			sec, amount = &out.Assets, t.Debit.Sub(t.Credit)
		case model.AccountTypeLiability:
			sec, amount = &out.Liabilities, t.Credit.Sub(t.Debit)
		case model.AccountTypeEquity:
			sec, amount = &out.Equity, t.Credit.Sub(t.Debit)
		default:
			earnings = earnings.Add(t.Credit.Sub(t.Debit))
			continue
		}
		if isZero(amount) && !req.ShowZero {
			continue
		}
		sec.add(AccountAmount{AccountID: acct.ID, Code: acct.Code, Name: acct.Name, Amount: amount})
	}
	if !isZero(earnings) || req.ShowZero {
		out.Equity.add(AccountAmount{Name: EarningsLabel, Amount: earnings, Synthetic: true})
	}

	liabEq := out.Liabilities.Total.Add(out.Equity.Total)
	diff := ledger.Round(out.Assets.Total.Sub(liabEq))
	out.Assets.close()
	out.Liabilities.close()
	out.Equity.close()
	out.Totals = BalanceSheetTotals{
		Assets:               out.Assets.Total,
		Liabilities:          out.Liabilities.Total,
		Equity:               out.Equity.Total,
		LiabilitiesAndEquity: ledger.Round(liabEq),
		Difference:           diff,
		Balanced:             diff.IsZero(),
	}
	out.NoData = len(res.Entries) == 0
	out.Anomalies = an
	return out
}
