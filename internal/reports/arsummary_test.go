package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/ledgerview/internal/filter"
	"github.com/cleared-dev/ledgerview/internal/model"
)

func tuition(amount string) []model.InvoiceItem {
	return []model.InvoiceItem{{FeeHeadID: "fh-tuition", Name: "Tuition", Amount: dec(amount)}}
}

func arFixture() ([]model.Invoice, []model.Student, []model.Grade) {
	students := []model.Student{
		{ID: "s1", Name: "Amina", GradeID: "g4", AcademicYearID: "ay-2024"},
		{ID: "s2", Name: "Jonah", GradeID: "g4", AcademicYearID: "ay-2024"},
		{ID: "s3", Name: "Lea", GradeID: "g5", AcademicYearID: "ay-2023"},
	}
	grades := []model.Grade{
		{ID: "g5", Name: "Grade 5", Order: 5},
		{ID: "g4", Name: "Grade 4", Order: 4},
	}
	invoices := []model.Invoice{
		{ID: "inv-1", StudentID: "s1", GradeID: "g4", AcademicYearID: "ay-2024", Status: "APPROVED", Date: date(2024, 1, 10), Discount: dec("200"), Items: tuition("1000")},
		{ID: "inv-2", StudentID: "S2 ", Status: "PAID", Date: date(2024, 1, 12), Items: tuition("1000")},
		{ID: "inv-3", StudentID: "s1", GradeID: "g4", AcademicYearID: "ay-2024", Status: "VOID", Items: tuition("500")},
		{ID: "inv-4", StudentID: "s2", GradeID: "g4", AcademicYearID: "ay-2024", Status: "APPROVED", Voided: true, Items: tuition("700")},
		{ID: "inv-5", StudentID: "s2", GradeID: "g4", AcademicYearID: "ay-2024", Status: "DRAFT", Items: tuition("900")},
		{ID: "inv-6", StudentID: "s3", Status: "APPROVED", Date: date(2023, 9, 1), Items: tuition("800")},
	}
	return invoices, students, grades
}

func arInputs() Inputs {
	in := simpleInputs()
	in.Invoices, in.Students, in.Grades = arFixture()
	in.FeeHeads = []model.FeeHead{{ID: "fh-bus", Name: "Transport"}}
	return in
}

func TestScenario_ARSummary(t *testing.T) {
	req := Request{Criteria: filter.Criteria{AcademicYearID: "ay-2024"}}
	ar := BuildARSummary(arInputs(), req)

	require.Len(t, ar.Rows, 1)
	row := ar.Rows[0]
	assert.Equal(t, "g4", row.GradeID)
	assert.Equal(t, "Grade 4", row.GradeName)
	assert.Equal(t, 2, row.StudentCount)
	assertDec(t, "2000", row.TotalItem)
	assertDec(t, "200", row.Exemptions)
	assertDec(t, "1800", row.Net)

	cell, ok := row.Cell("Tuition")
	require.True(t, ok)
	assertDec(t, "1000", cell.ItemAmount)
	assertDec(t, "2000", cell.TotalItem)
	assert.Equal(t, []string{"Tuition"}, ar.FeeNames)
}

func TestARSummaryYearFallsBackToStudent(t *testing.T) {
	ar := BuildARSummary(arInputs(), Request{Criteria: filter.Criteria{AcademicYearID: "AY-2023"}})

	require.Len(t, ar.Rows, 1)
	assert.Equal(t, "g5", ar.Rows[0].GradeID)
	assertDec(t, "800", ar.Rows[0].TotalItem)
}

func TestARSummaryAllYearsOrderedByGrade(t *testing.T) {
	ar := BuildARSummary(arInputs(), Request{})

	require.Len(t, ar.Rows, 2)
	assert.Equal(t, "g4", ar.Rows[0].GradeID)
	assert.Equal(t, "g5", ar.Rows[1].GradeID)
	assert.Equal(t, 3, ar.Totals.Students)
	assertDec(t, "2800", ar.Totals.TotalItem)
	assertDec(t, "2600", ar.Totals.Net)
}

func TestARSummaryNetProperty(t *testing.T) {
	ar := BuildARSummary(arInputs(), Request{})

	net, total, exempt := dec("0"), dec("0"), dec("0")
	for _, row := range ar.Rows {
		net = net.Add(row.Net)
		total = total.Add(row.TotalItem)
		exempt = exempt.Add(row.Exemptions)
	}
	assertDec(t, total.Sub(exempt).String(), net)
}

func TestARSummaryFeeNames(t *testing.T) {
	in := arInputs()
	in.Invoices = []model.Invoice{{
		ID: "inv-9", StudentID: "s1", Status: "posted",
		Items: []model.InvoiceItem{
			{FeeHeadID: "FH-BUS", Amount: dec("30")},
			{FeeHeadID: "fh-lab", Amount: dec("20")},
			{Amount: dec("5")},
		},
	}}

	ar := BuildARSummary(in, Request{})

	assert.Equal(t, []string{OtherFee, "Transport", "fh-lab"}, ar.FeeNames)
	require.Len(t, ar.Rows, 1)
	assert.Len(t, ar.Rows[0].Cells, 3)
}

func TestARSummaryUnassignedGradeLast(t *testing.T) {
	in := arInputs()
	in.Invoices = append(in.Invoices, model.Invoice{ID: "inv-7", StudentID: "walk-in", Status: "APPROVED", Items: tuition("50")})

	ar := BuildARSummary(in, Request{})

	require.Len(t, ar.Rows, 3)
	last := ar.Rows[2]
	assert.Equal(t, "", last.GradeID)
	assert.Equal(t, 1, last.StudentCount)
}

func TestARSummaryPeriod(t *testing.T) {
	req := Request{Criteria: filter.Criteria{From: date(2024, 1, 11), To: date(2024, 1, 31)}}
	ar := BuildARSummary(arInputs(), req)

	require.Len(t, ar.Rows, 1)
	assert.Equal(t, 1, ar.Rows[0].StudentCount)
	assertDec(t, "1000", ar.Rows[0].TotalItem)
}

func TestARSummaryNoInvoices(t *testing.T) {
	ar := BuildARSummary(simpleInputs(), Request{})

	assert.True(t, ar.NoData)
	assert.NotNil(t, ar.Rows)
	assert.NotNil(t, ar.FeeNames)
}

func TestPerStudentGuardsZero(t *testing.T) {
	assertDec(t, "0", perStudent(dec("100"), 0))
	assertDec(t, "33.33", perStudent(dec("100"), 3))
}

func TestARSummaryCurrentAcademicYearDefault(t *testing.T) {
	in := arInputs()
	in.Options.Receivables.CurrentAcademicYear = "ay-2023"

	ar := BuildARSummary(in, Request{})
	assert.Equal(t, "ay-2023", ar.AcademicYearID)
	require.Len(t, ar.Rows, 1)
	assert.Equal(t, "g5", ar.Rows[0].GradeID)

	ar = BuildARSummary(in, Request{Criteria: filter.Criteria{AcademicYearID: "ay-2024"}})
	assert.Equal(t, "ay-2024", ar.AcademicYearID)
	require.Len(t, ar.Rows, 1)
	assert.Equal(t, "g4", ar.Rows[0].GradeID)
}

func TestARSummaryStudentInTwoGradesCountedOnce(t *testing.T) {
	in := arInputs()
	in.Invoices = append(in.Invoices, model.Invoice{
		ID: "inv-7", StudentID: "s1", GradeID: "g5", Status: "APPROVED", Items: tuition("300"),
	})

	ar := BuildARSummary(in, Request{})
	require.Len(t, ar.Rows, 2)
	assert.Equal(t, 2, ar.Rows[0].StudentCount)
	assert.Equal(t, 2, ar.Rows[1].StudentCount)
	assert.Equal(t, 3, ar.Totals.Students)
	assertDec(t, "1033.33", ar.Totals.ByFee[0].ItemAmount)
}

func TestARSummaryPartialRulesKeepDefaults(t *testing.T) {
	in := arInputs()
	in.Options.Receivables = ReceivableRules{VoidStatuses: []string{"WRITTEN_OFF"}}

	ar := BuildARSummary(in, Request{Criteria: filter.Criteria{AcademicYearID: "ay-2024"}})
	require.Len(t, ar.Rows, 1)
	assertDec(t, "2000", ar.Rows[0].TotalItem)

	in.Invoices[0].Status = "written_off"
	ar = BuildARSummary(in, Request{Criteria: filter.Criteria{AcademicYearID: "ay-2024"}})
	require.Len(t, ar.Rows, 1)
	assertDec(t, "1000", ar.Rows[0].TotalItem)
}
