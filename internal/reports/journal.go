package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerview/internal/journal"
	"github.com/cleared-dev/ledgerview/internal/ledger"
	"github.com/cleared-dev/ledgerview/internal/model"
)

// JournalRow is one (entry, line) pair of the journal listing.
type JournalRow struct {
	LineIndex   int             `json:"lineIndex"`
	EntryID     string          `json:"entryId"`
	EntryNumber string          `json:"entryNumber"`
	Date        time.Time       `json:"date"`
	Source      string          `json:"source"`
	Description string          `json:"description"`
	AccountID   string          `json:"accountId"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// JournalTotals sums every row of the listing.
type JournalTotals struct {
	Entries  int             `json:"entries"`
	Debit    decimal.Decimal `json:"debit"`
	Credit   decimal.Decimal `json:"credit"`
	Balanced bool            `json:"balanced"`
}

// Journal is the chronological journal listing.
type Journal struct {
	Rows      []JournalRow    `json:"rows"`
	Totals    JournalTotals   `json:"totals"`
	NoData    bool            `json:"noData"`
	Anomalies model.Anomalies `json:"anomalies"`
}

func (j Journal) ReportKind() Kind { return KindJournal }
func (j Journal) Empty() bool { return j.NoData }
func (j Journal) Issues() model.Anomalies { return j.Anomalies }

// BuildJournal flattens the filtered, ordered entries into rows numbered
// from 1 across the whole listing. Lines on unknown accounts are listed
// without a code or name and counted as missing references.
func BuildJournal(in Inputs, req Request) Journal {
	mustInputs(in)
	res, an := scope(in, req.Criteria)

	out := Journal{Rows: []JournalRow{}}
	debit, credit := decimal.Zero, decimal.Zero
	for _, e := range res.Entries {
		for _, l := range e.Lines {
			row := JournalRow{
				LineIndex:   len(out.Rows) + 1,
				EntryID:     e.ID,
				EntryNumber: e.Number,
				Date:        e.At,
				Source:      e.Source,
				Description: e.Description,
				AccountID:   l.AccountID,
				Debit:       ledger.Round(l.Debit),
				Credit:      ledger.Round(l.Credit),
			}
			if acct, ok := in.Accounts.Get(l.AccountID); ok {
				row.AccountCode = acct.Code
				row.AccountName = acct.Name
			} else {
				an.MissingAccountRefs++
			}
			debit = debit.Add(l.Debit)
			credit = credit.Add(l.Credit)
			out.Rows = append(out.Rows, row)
		}
	}

	out.Totals = JournalTotals{
		Entries:  len(res.Entries),
		Debit:    ledger.Round(debit),
		Credit:   ledger.Round(credit),
		Balanced: debit.Sub(credit).Abs().LessThanOrEqual(journal.Tolerance),
	}
	out.NoData = len(out.Rows) == 0
	out.Anomalies = an
	return out
}
