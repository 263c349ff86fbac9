package reports

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerview/internal/filter"
	"github.com/cleared-dev/ledgerview/internal/journal"
	"github.com/cleared-dev/ledgerview/internal/ledger"
	"github.com/cleared-dev/ledgerview/internal/model"
)

// CashFlowRow is one counter-account within a cash-flow section.
type CashFlowRow struct {
	AccountID string          `json:"accountId"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Inflow    decimal.Decimal `json:"inflow"`
	Outflow   decimal.Decimal `json:"outflow"`
}

// CashFlowSection is one of operating, investing or financing.
type CashFlowSection struct {
	Section ledger.Section  `json:"section"`
	Rows    []CashFlowRow   `json:"rows"`
	Inflow  decimal.Decimal `json:"inflow"`
	Outflow decimal.Decimal `json:"outflow"`
	Net     decimal.Decimal `json:"net"`
}

// CashFlow is the direct-method cash-flow statement.
type CashFlow struct {
	Operating     CashFlowSection `json:"operating"`
	Investing     CashFlowSection `json:"investing"`
	Financing     CashFlowSection `json:"financing"`
	OpeningCash   decimal.Decimal `json:"openingCash"`
	ClosingCash   decimal.Decimal `json:"closingCash"`
	NetCashChange decimal.Decimal `json:"netCashChange"`
	Reconciled    bool            `json:"reconciled"`
	NoData        bool            `json:"noData"`
	Anomalies     model.Anomalies `json:"anomalies"`
}

func (c CashFlow) ReportKind() Kind { return KindCashFlow }
func (c CashFlow) Empty() bool { return c.NoData }
func (c CashFlow) Issues() model.Anomalies { return c.Anomalies }

// Sections returns the three sections in display order.
func (c CashFlow) Sections() []CashFlowSection {
	return []CashFlowSection{c.Operating, c.Investing, c.Financing}
}

type flowKey struct {
	section ledger.Section
	account string
}

// BuildCashFlow looks at every entry in the window that touches a cash
// account. Each non-cash line of such an entry is a counter-movement: a
// credit to the counter-account is cash coming in, a debit is cash going
// out. Counter-lines are summed per account within their section.
// NetCashChange is the movement on the cash accounts themselves; Reconciled
// reports whether the sections add up to it, which fails for unbalanced
// entries and entries mixing cash with unknown accounts.
func BuildCashFlow(in Inputs, req Request) CashFlow {
	mustInputs(in)
	c := req.Criteria
	c.AccountID = ""
	res, an := scope(in, c)
	cls := in.Options.Classifier

	out := CashFlow{
		Operating: newFlowSection(ledger.Operating),
		Investing: newFlowSection(ledger.Investing),
		Financing: newFlowSection(ledger.Financing),
	}
	sections := map[ledger.Section]*CashFlowSection{
		ledger.Operating: &out.Operating,
		ledger.Investing: &out.Investing,
		ledger.Financing: &out.Financing,
	}

	flows := make(map[flowKey]*CashFlowRow)
	var keys []flowKey
	change := decimal.Zero
	for _, e := range res.Entries {
		cashNet, ok := cashDelta(e.JournalEntry, in, cls)
		if !ok {
			continue
		}
		change = change.Add(cashNet)
		for _, l := range e.Lines {
			acct, found := in.Accounts.Get(l.AccountID)
			if !found {
				an.MissingAccountRefs++
				continue
			}
			if cls.IsCash(acct) {
				continue
			}
			delta := l.Debit.Sub(l.Credit)
			k := flowKey{section: cls.Section(acct), account: acct.ID}
			row, seen := flows[k]
			if !seen {
				row = &CashFlowRow{AccountID: acct.ID, Code: acct.Code, Name: acct.Name, Inflow: decimal.Zero, Outflow: decimal.Zero}
				flows[k] = row
				keys = append(keys, k)
			}
			if delta.IsNegative() {
				row.Inflow = row.Inflow.Add(delta.Neg())
			} else {
				row.Outflow = row.Outflow.Add(delta)
			}
		}
	}

	for _, k := range sortFlowKeys(keys, in) {
		sec := sections[k.section]
		row := *flows[k]
		sec.Inflow = sec.Inflow.Add(row.Inflow)
		sec.Outflow = sec.Outflow.Add(row.Outflow)
		row.Inflow = ledger.Round(row.Inflow)
		row.Outflow = ledger.Round(row.Outflow)
		sec.Rows = append(sec.Rows, row)
	}

	sum := decimal.Zero
	for _, sec := range sections {
		sec.Net = sec.Inflow.Sub(sec.Outflow)
		sum = sum.Add(sec.Net)
	}

	opening := openingCash(in, c)
	out.OpeningCash = ledger.Round(opening)
	out.ClosingCash = ledger.Round(opening.Add(sum))
	out.NetCashChange = ledger.Round(change)
	out.Reconciled = sum.Sub(change).Abs().LessThanOrEqual(journal.Tolerance)
	for _, sec := range sections {
		sec.Inflow = ledger.Round(sec.Inflow)
		sec.Outflow = ledger.Round(sec.Outflow)
		sec.Net = ledger.Round(sec.Net)
	}
	out.NoData = len(keys) == 0 && change.IsZero()
	out.Anomalies = an
	return out
}

func newFlowSection(s ledger.Section) CashFlowSection {
	return CashFlowSection{Section: s, Rows: []CashFlowRow{}, Inflow: decimal.Zero, Outflow: decimal.Zero, Net: decimal.Zero}
}

// cashDelta sums debit minus credit over the cash lines of e. ok is false
// when e has no line on a cash account.
func cashDelta(e model.JournalEntry, in Inputs, cls ledger.Classifier) (decimal.Decimal, bool) {
	net := decimal.Zero
	touched := false
	for _, l := range e.Lines {
		acct, ok := in.Accounts.Get(l.AccountID)
		if !ok || !cls.IsCash(acct) {
			continue
		}
		touched = true
		net = net.Add(l.Net())
	}
	return net, touched
}

// openingCash is the cash balance carried into the window.
func openingCash(in Inputs, c filter.Criteria) decimal.Decimal {
	prior := filter.Before(in.Entries, c, in.Options.Filter)
	total := decimal.Zero
	for _, e := range prior.Entries {
		if net, ok := cashDelta(e.JournalEntry, in, in.Options.Classifier); ok {
			total = total.Add(net)
		}
	}
	return total
}

func sortFlowKeys(keys []flowKey, in Inputs) []flowKey {
	out := append([]flowKey(nil), keys...)
	code := func(k flowKey) string {
		acct, _ := in.Accounts.Get(k.account)
		return acct.Code
	}
	sort.SliceStable(out, func(i, j int) bool {
		ci, cj := code(out[i]), code(out[j])
		if ci != cj {
			return ci < cj
		}
		return out[i].account < out[j].account
	})
	return out
}
