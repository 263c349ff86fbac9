package reports

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerview/internal/canon"
	"github.com/cleared-dev/ledgerview/internal/filter"
	"github.com/cleared-dev/ledgerview/internal/ledger"
	"github.com/cleared-dev/ledgerview/internal/model"
)

// OtherFee labels invoice items that carry no fee name or fee head.
const OtherFee = "Other"

// ARCell is one grade × fee item amount.
type ARCell struct {
	FeeName    string          `json:"feeName"`
	TotalItem  decimal.Decimal `json:"totalItem"`
	ItemAmount decimal.Decimal `json:"itemAmount"`
}

// ARRow is one grade of the receivables matrix. Cells follow ARSummary.FeeNames.
type ARRow struct {
	GradeID      string          `json:"gradeId"`
	GradeName    string          `json:"gradeName"`
	StudentCount int             `json:"studentCount"`
	Cells        []ARCell        `json:"cells"`
	TotalItem    decimal.Decimal `json:"totalItem"`
	Exemptions   decimal.Decimal `json:"exemptions"`
	Net          decimal.Decimal `json:"net"`
}

// Cell returns the cell for a fee name.
func (r ARRow) Cell(feeName string) (ARCell, bool) {
	for _, c := range r.Cells {
		if c.FeeName == feeName {
			return c, true
		}
	}
	return ARCell{}, false
}

// ARTotals are the column and grand totals.
type ARTotals struct {
	Students   int             `json:"students"`
	ByFee      []ARCell        `json:"byFee"`
	TotalItem  decimal.Decimal `json:"totalItem"`
	Exemptions decimal.Decimal `json:"exemptions"`
	Net        decimal.Decimal `json:"net"`
}

// ARSummary is invoiced receivables by grade and fee item.
type ARSummary struct {
	AcademicYearID string          `json:"academicYearId,omitempty"`
	FeeNames       []string        `json:"feeNames"`
	Rows           []ARRow         `json:"rows"`
	Totals         ARTotals        `json:"totals"`
	NoData         bool            `json:"noData"`
	Anomalies      model.Anomalies `json:"anomalies"`
}

func (a ARSummary) ReportKind() Kind { return KindARSummary }
func (a ARSummary) Empty() bool { return a.NoData }
func (a ARSummary) Issues() model.Anomalies { return a.Anomalies }

type gradeAcc struct {
	id         string
	students   map[string]struct{}
	fees       map[string]decimal.Decimal
	total      decimal.Decimal
	exemptions decimal.Decimal
}

// BuildARSummary pivots approved, non-void invoices into a grade × fee
// matrix. An invoice belongs to req.AcademicYearID (or the configured current
// year when the request names none) through its own tag, or through its
// student's year when the invoice is untagged. Its grade is the
// invoice's, else the student's; invoices with neither land in an
// unassigned row with an empty GradeID. req.From and req.To bound the
// invoice date when set.
func BuildARSummary(in Inputs, req Request) ARSummary {
	rules := in.Options.Receivables
	defaults := DefaultReceivableRules()
	if len(rules.ApprovedStatuses) == 0 {
		rules.ApprovedStatuses = defaults.ApprovedStatuses
	}
	if len(rules.VoidStatuses) == 0 {
		rules.VoidStatuses = defaults.VoidStatuses
	}
	approved := keySet(rules.ApprovedStatuses)
	void := keySet(rules.VoidStatuses)

	students := make(map[string]model.Student, len(in.Students))
	for _, s := range in.Students {
		students[canon.Key(s.ID)] = s
	}
	grades := make(map[string]model.Grade, len(in.Grades))
	for _, g := range in.Grades {
		grades[canon.Key(g.ID)] = g
	}
	feeHeads := make(map[string]string, len(in.FeeHeads))
	for _, f := range in.FeeHeads {
		feeHeads[canon.Key(f.ID)] = f.Name
	}

	yearID := strings.TrimSpace(req.AcademicYearID)
	if yearID == "" {
		yearID = strings.TrimSpace(rules.CurrentAcademicYear)
	}
	year := canon.Key(yearID)
	accs := make(map[string]*gradeAcc)
	feeSet := make(map[string]struct{})
	allStudents := make(map[string]struct{})
	for _, inv := range in.Invoices {
		status := canon.Key(inv.Status)
		if inv.Voided || void[status] || !approved[status] {
			continue
		}
		student, hasStudent := students[canon.Key(inv.StudentID)]
		if year != "" {
			tag := canon.Key(inv.AcademicYearID)
			if tag == "" && hasStudent {
				tag = canon.Key(student.AcademicYearID)
			}
			if tag != year {
				continue
			}
		}
		if !inPeriod(inv.Date, req.From, req.To) {
			continue
		}

		gradeID := inv.GradeID
		if strings.TrimSpace(gradeID) == "" && hasStudent {
			gradeID = student.GradeID
		}
		key := canon.Key(gradeID)
		acc, ok := accs[key]
		if !ok {
			acc = &gradeAcc{id: strings.TrimSpace(gradeID), students: map[string]struct{}{}, fees: map[string]decimal.Decimal{}}
			accs[key] = acc
		}
		acc.students[canon.Key(inv.StudentID)] = struct{}{}
		allStudents[canon.Key(inv.StudentID)] = struct{}{}
		acc.exemptions = acc.exemptions.Add(inv.Discount)
		for _, item := range inv.Items {
			name := feeName(item, feeHeads)
			feeSet[name] = struct{}{}
			acc.fees[name] = acc.fees[name].Add(item.Amount)
			acc.total = acc.total.Add(item.Amount)
		}
	}

	out := ARSummary{AcademicYearID: yearID, FeeNames: []string{}, Rows: []ARRow{}}
	for name := range feeSet {
		out.FeeNames = append(out.FeeNames, name)
	}
	sort.Strings(out.FeeNames)

	colTotals := make(map[string]decimal.Decimal, len(out.FeeNames))
	grand, exempt := decimal.Zero, decimal.Zero
	for _, key := range sortGrades(accs, grades) {
		acc := accs[key]
		row := ARRow{
			GradeID:      acc.id,
			GradeName:    grades[key].Name,
			StudentCount: len(acc.students),
			Cells:        make([]ARCell, 0, len(out.FeeNames)),
			TotalItem:    ledger.Round(acc.total),
			Exemptions:   ledger.Round(acc.exemptions),
			Net:          ledger.Round(acc.total.Sub(acc.exemptions)),
		}
		if row.GradeName == "" {
			row.GradeName = acc.id
		}
		for _, name := range out.FeeNames {
			total := acc.fees[name]
			row.Cells = append(row.Cells, ARCell{
				FeeName:    name,
				TotalItem:  ledger.Round(total),
				ItemAmount: perStudent(total, row.StudentCount),
			})
			colTotals[name] = colTotals[name].Add(total)
		}
		grand = grand.Add(acc.total)
		exempt = exempt.Add(acc.exemptions)
		out.Rows = append(out.Rows, row)
	}

	// A student invoiced under two grades counts once.
	out.Totals.Students = len(allStudents)
	out.Totals.ByFee = make([]ARCell, 0, len(out.FeeNames))
	for _, name := range out.FeeNames {
		out.Totals.ByFee = append(out.Totals.ByFee, ARCell{
			FeeName:    name,
			TotalItem:  ledger.Round(colTotals[name]),
			ItemAmount: perStudent(colTotals[name], out.Totals.Students),
		})
	}
	out.Totals.TotalItem = ledger.Round(grand)
	out.Totals.Exemptions = ledger.Round(exempt)
	out.Totals.Net = ledger.Round(grand.Sub(exempt))
	out.NoData = len(out.Rows) == 0
	return out
}

// perStudent divides total by count, yielding zero for no students.
func perStudent(total decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return ledger.Round(total.Div(decimal.NewFromInt(int64(count))))
}

func feeName(item model.InvoiceItem, feeHeads map[string]string) string {
	if name := strings.TrimSpace(item.Name); name != "" {
		return name
	}
	id := strings.TrimSpace(item.FeeHeadID)
	if name := strings.TrimSpace(feeHeads[canon.Key(id)]); name != "" {
		return name
	}
	if id != "" {
		return id
	}
	return OtherFee
}

func inPeriod(t, from, to time.Time) bool {
	if from.IsZero() && to.IsZero() {
		return true
	}
	if t.IsZero() {
		return false
	}
	c := filter.Criteria{From: from, To: to}
	return c.Contains(t)
}

// sortGrades orders grades by their configured order, then name, with the
// unassigned row last.
func sortGrades(accs map[string]*gradeAcc, grades map[string]model.Grade) []string {
	keys := make([]string, 0, len(accs))
	for k := range accs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if (a == "") != (b == "") {
			return b == ""
		}
		ga, gb := grades[a], grades[b]
		if ga.Order != gb.Order {
			return ga.Order < gb.Order
		}
		na, nb := ga.Name, gb.Name
		if na == "" {
			na = a
		}
		if nb == "" {
			nb = b
		}
		if na != nb {
			return na < nb
		}
		return a < b
	})
	return keys
}

func keySet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[canon.Key(v)] = true
	}
	return set
}
