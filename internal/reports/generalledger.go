package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerview/internal/filter"
	"github.com/cleared-dev/ledgerview/internal/ledger"
	"github.com/cleared-dev/ledgerview/internal/model"
)

// LedgerRow is one posting to the selected account.
type LedgerRow struct {
	EntryID      string          `json:"entryId"`
	EntryNumber  string          `json:"entryNumber"`
	Date         time.Time       `json:"date"`
	Source       string          `json:"source"`
	Description  string          `json:"description"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	BalanceAfter decimal.Decimal `json:"balanceAfter"`
}

// LedgerTotals closes the general ledger.
type LedgerTotals struct {
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}

// GeneralLedger lists one account with a running balance.
type GeneralLedger struct {
	Account        *model.Account  `json:"account,omitempty"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	OpeningSource  OpeningMode     `json:"openingSource"`
	LedgerLines    []LedgerRow     `json:"ledgerLines"`
	Totals         LedgerTotals    `json:"totals"`
	NoData         bool            `json:"noData"`
	Anomalies      model.Anomalies `json:"anomalies"`
}

func (g GeneralLedger) ReportKind() Kind { return KindGeneralLedger }
func (g GeneralLedger) Empty() bool { return g.NoData }
func (g GeneralLedger) Issues() model.Anomalies { return g.Anomalies }

// BuildGeneralLedger needs req.AccountID. Without it, or for an account that
// does not exist, or when nothing posts to the account in the period, the
// result has NoData set and no lines.
func BuildGeneralLedger(in Inputs, req Request) GeneralLedger {
	mustInputs(in)
	out := GeneralLedger{LedgerLines: []LedgerRow{}, OpeningSource: in.Options.Opening}
	if out.OpeningSource == "" {
		out.OpeningSource = OpeningFromCaller
	}
	if req.AccountID == "" {
		out.NoData = true
		return out
	}
	acct, ok := in.Accounts.Get(req.AccountID)
	if !ok {
		out.NoData = true
		out.Anomalies.MissingAccountRefs = 1
		return out
	}
	out.Account = &acct

	res, an := scope(in, req.Criteria)
	out.Anomalies = an

	opening := req.OpeningBalance
	if out.OpeningSource == OpeningFromHistory {
		opening = historicalBalance(in, req.Criteria, acct.ID)
	}
	out.OpeningBalance = ledger.Round(opening)

	rows := ledger.RunningBalance(opening, res.Entries, acct.ID, in.Accounts)
	debit, credit := decimal.Zero, decimal.Zero
	for _, r := range rows {
		out.LedgerLines = append(out.LedgerLines, LedgerRow{
			EntryID:      r.EntryID,
			EntryNumber:  r.EntryNumber,
			Date:         r.Date,
			Source:       r.Source,
			Description:  r.Description,
			Debit:        ledger.Round(r.Debit),
			Credit:       ledger.Round(r.Credit),
			BalanceAfter: ledger.Round(r.BalanceAfter),
		})
		debit = debit.Add(r.Debit)
		credit = credit.Add(r.Credit)
	}

	closing := opening
	if len(rows) > 0 {
		closing = rows[len(rows)-1].BalanceAfter
	}
	out.Totals = LedgerTotals{
		Debit:          ledger.Round(debit),
		Credit:         ledger.Round(credit),
		ClosingBalance: ledger.Round(closing),
	}
	out.NoData = len(out.LedgerLines) == 0
	return out
}

// historicalBalance sums the account over every posted entry before the
// window, honoring the non-date predicates of c.
func historicalBalance(in Inputs, c filter.Criteria, accountID string) decimal.Decimal {
	prior := filter.Before(in.Entries, c, in.Options.Filter)
	agg := ledger.Aggregate(filter.Plain(prior.Entries), in.Accounts)
	return agg.Get(accountID).Balance()
}
