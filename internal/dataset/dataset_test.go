package dataset

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cleared-dev/ledgerview/internal/accounts"
	"github.com/cleared-dev/ledgerview/internal/journal"
	"github.com/cleared-dev/ledgerview/internal/model"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func seedLedger(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, accounts.Save(root, accounts.DefaultChart()))
	require.NoError(t, journal.Save(root, []model.JournalEntry{{
		ID:     "JV-1",
		Number: "JV-1",
		Date:   time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		Status: model.StatusPosted,
		Lines: []model.JournalLine{
			{AccountID: "1010", Debit: decimal.NewFromInt(100)},
			{AccountID: "4000", Credit: decimal.NewFromInt(100)},
		},
	}}))
	return root
}

const invoicesYAML = `
invoices:
  - id: inv-1
    studentId: s1
    status: approved
    discount: 200
    items:
      - feeName: Tuition
        amount: 1000
  - id: inv-2
    status: approved
`

const studentsJSON = `[
  {"_id": "s1", "fullName": "Amina", "grade_id": "g4", "academicYear": "ay-2024"},
  {"fullName": "Nobody"}
]`

const entriesYAML = `
- entryNumber: JV-2
  postingDate: 2024-01-06
  status: posted
  source: Fee Receipt
  lines:
    - account: "1010"
      dr: 50.25
    - account: "1100"
      cr: "50.25"
    - debit: 3
- memo: no identity
`

func TestLoad(t *testing.T) {
	root := seedLedger(t)
	writeFile(t, filepath.Join(root, "records", "invoices.yaml"), invoicesYAML)
	writeFile(t, filepath.Join(root, "records", "students.json"), studentsJSON)
	writeFile(t, filepath.Join(root, "records", "entries.yml"), entriesYAML)
	writeFile(t, filepath.Join(root, "records", "grades.yaml"), "data:\n  - {id: g4, name: Grade 4, order: 4}\n")
	writeFile(t, filepath.Join(root, "records", "fee-heads.yaml"), "fee_heads:\n  - {id: fh-1, title: Tuition}\n")
	writeFile(t, filepath.Join(root, "records", "accounts.yaml"), "- {id: \"1030\", name: Mobile Money, type: Asset, systemTag: cash}\n")

	core, logs := observer.New(zap.InfoLevel)
	ds, err := NewLoader(Paths{}, zap.New(core)).Load(root)
	require.NoError(t, err)

	assert.Len(t, ds.Accounts, len(accounts.DefaultChart())+1)
	mobile, ok := ds.Directory().Get("1030")
	require.True(t, ok)
	assert.Equal(t, "CASH", mobile.SystemTag)

	require.Len(t, ds.Entries, 2)
	jv2 := ds.Entries[1]
	assert.Equal(t, "JV-2", jv2.ID)
	assert.Equal(t, model.StatusPosted, jv2.Status)
	assert.Equal(t, "Fee Receipt", jv2.Source)
	assert.Equal(t, time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC), jv2.Date)
	require.Len(t, jv2.Lines, 2)
	assert.True(t, decimal.RequireFromString("50.25").Equal(jv2.Lines[0].Debit))
	assert.True(t, decimal.RequireFromString("50.25").Equal(jv2.Lines[1].Credit))

	require.Len(t, ds.Invoices, 2)
	assert.Equal(t, "APPROVED", ds.Invoices[0].Status)
	assert.True(t, decimal.NewFromInt(200).Equal(ds.Invoices[0].Discount))

	require.Len(t, ds.Students, 1)
	assert.Equal(t, "g4", ds.Students[0].GradeID)
	require.Len(t, ds.Grades, 1)
	assert.Equal(t, 4, ds.Grades[0].Order)
	require.Len(t, ds.FeeHeads, 1)
	assert.Equal(t, "Tuition", ds.FeeHeads[0].Name)

	assert.Equal(t, Skipped{Entries: 1, Lines: 1, Invoices: 1, Students: 1}, ds.Skipped)
	assert.Equal(t, 4, ds.Skipped.Total())
	assert.Equal(t, 1, logs.FilterMessage("unresolvable records skipped").Len())
}

func TestLoadEmptyRoot(t *testing.T) {
	ds, err := NewLoader(DefaultPaths(), nil).Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, ds.Accounts)
	assert.Empty(t, ds.Entries)
	assert.Zero(t, ds.Skipped.Total())
}

func TestLoadCustomPaths(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "chart.csv"), "account_id,code,name,type,parent_id,system_tag,is_cash,sub_type\n1010,1010,Cash,asset,,CASH,true,\n")

	ds, err := NewLoader(Paths{Accounts: "chart.csv"}, nil).Load(root)
	require.NoError(t, err)
	require.Len(t, ds.Accounts, 1)
	assert.True(t, ds.Accounts[0].IsCash)
}

func TestLoadMalformedCSV(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, journal.Path), "not,a,journal\n")

	_, err := NewLoader(Paths{}, nil).Load(root)
	assert.Error(t, err)
}

func TestReadRecordsRejectsScalarDocument(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "students.yaml"), "just a string\n")

	_, err := ReadRecords(dir, StudentsRecords)
	assert.Error(t, err)
}

func TestReadRecordsPrefersYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "grades.yaml"), "- {id: g1}\n")
	writeFile(t, filepath.Join(dir, "grades.json"), `[{"id": "g1"}, {"id": "g2"}]`)

	recs, err := ReadRecords(dir, GradesRecords)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestReadRecordsMissing(t *testing.T) {
	recs, err := ReadRecords(t.TempDir(), InvoicesRecords)
	require.NoError(t, err)
	assert.Nil(t, recs)
}
