package reports

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerview/internal/filter"
	"github.com/cleared-dev/ledgerview/internal/ledger"
	"github.com/cleared-dev/ledgerview/internal/model"
)

// IncomeTotals summarizes the income statement.
type IncomeTotals struct {
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	Net          decimal.Decimal `json:"net"`
}

// IncomeStatement is revenue against expense for the period.
type IncomeStatement struct {
	Revenue   Section         `json:"revenue"`
	Expense   Section         `json:"expense"`
	Totals    IncomeTotals    `json:"totals"`
	NoData    bool            `json:"noData"`
	Anomalies model.Anomalies `json:"anomalies"`
}

func (s IncomeStatement) ReportKind() Kind { return KindIncomeStatement }
func (s IncomeStatement) Empty() bool { return s.NoData }
func (s IncomeStatement) Issues() model.Anomalies { return s.Anomalies }

// BuildIncomeStatement reports revenue as credit minus debit and expense as
// debit minus credit, dropping accounts that net to zero.
func BuildIncomeStatement(in Inputs, req Request) IncomeStatement {
	mustInputs(in)
	res, an := scope(in, req.Criteria)
	agg := ledger.Aggregate(filter.Plain(res.Entries), in.Accounts)
	an.MissingAccountRefs += agg.MissingAccountRefs

	out := IncomeStatement{Revenue: newSection("Revenue"), Expense: newSection("Expense")}
	for _, acct := range sortedAccounts(in.Accounts, agg) {
		t := agg.Get(acct.ID)
		var sec *Section
		var amount decimal.Decimal
		switch acct.Type {
		case model.AccountTypeRevenue:
			sec, amount = &out.Revenue, t.Credit.Sub(t.Debit)
		case model.AccountTypeExpense:
			sec, amount = &out.Expense, t.Debit.Sub(t.Credit)
		default:
			continue
		}
		if isZero(amount) {
			continue
		}
		sec.add(AccountAmount{AccountID: acct.ID, Code: acct.Code, Name: acct.Name, Amount: amount})
	}

	net := out.Revenue.Total.Sub(out.Expense.Total)
	out.Revenue.close()
	out.Expense.close()
	out.Totals = IncomeTotals{
		TotalRevenue: out.Revenue.Total,
		TotalExpense: out.Expense.Total,
		Net:          ledger.Round(net),
	}
	out.NoData = len(out.Revenue.Rows) == 0 && len(out.Expense.Rows) == 0
	out.Anomalies = an
	return out
}
