package canon

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/ledgerview/internal/model"
)

func TestLookupSkipsEmpty(t *testing.T) {
	r := Record{"id": "  ", "_id": nil, "uid": "S-9"}
	assert.Equal(t, "S-9", r.String(IDKeys))
}

func TestLookupPriority(t *testing.T) {
	// Both keys present: the earlier key in the chain wins.
	r := Record{"studentId": "s-1", "student_id": "s-2"}
	inv, ok := Invoice(r)
	require.True(t, ok)
	assert.Equal(t, "s-1", inv.StudentID)
}

func TestStringNumbers(t *testing.T) {
	r := Record{"id": 1010, "code": 4010.0, "name": int64(7)}
	assert.Equal(t, "1010", r.String([]string{"id"}))
	assert.Equal(t, "4010", r.String([]string{"code"}))
	assert.Equal(t, "7", r.String([]string{"name"}))
}

func TestDecimal(t *testing.T) {
	r := Record{"a": "100.50", "b": 12.25, "c": 3, "d": "n/a"}
	assert.True(t, r.Decimal([]string{"a"}).Equal(decimal.RequireFromString("100.50")))
	assert.True(t, r.Decimal([]string{"b"}).Equal(decimal.RequireFromString("12.25")))
	assert.True(t, r.Decimal([]string{"c"}).Equal(decimal.NewFromInt(3)))
	assert.True(t, r.Decimal([]string{"d"}).IsZero())
	assert.True(t, r.Decimal([]string{"missing"}).IsZero())
}

func TestTime(t *testing.T) {
	tests := []struct {
		in   any
		want time.Time
	}{
		{"2024-01-05", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{"2024-01-05T10:30:00Z", time.Date(2024, 1, 5, 10, 30, 0, 0, time.UTC)},
		{"2024-01-05 10:30:00", time.Date(2024, 1, 5, 10, 30, 0, 0, time.UTC)},
		{int64(1704412800000), time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{"not a date", time.Time{}},
	}
	for _, tt := range tests {
		got := ParseTime(tt.in)
		assert.True(t, tt.want.Equal(got), "ParseTime(%v) = %v", tt.in, got)
	}
}

func TestAccount(t *testing.T) {
	a, ok := Account(Record{
		"_id":        "a1",
		"code":       "1010",
		"name":       "Cash on Hand",
		"type":       "Asset",
		"system_tag": "cash",
		"parentId":   "",
	})
	require.True(t, ok)
	assert.Equal(t, "a1", a.ID)
	assert.Equal(t, "1010", a.Code)
	assert.Equal(t, model.AccountTypeAsset, a.Type)
	assert.Equal(t, "CASH", a.SystemTag)
	assert.True(t, a.IsMain())

	_, ok = Account(Record{"id": "x", "type": "unknown"})
	assert.False(t, ok, "unknown type cannot be classified")

	_, ok = Account(Record{"type": "asset"})
	assert.False(t, ok, "no id")
}

func TestAccountCodeFallsBackToID(t *testing.T) {
	a, ok := Account(Record{"accountId": "4010", "accountType": "revenue", "isCash": "no"})
	require.True(t, ok)
	assert.Equal(t, "4010", a.Code)
	assert.False(t, a.IsCash)
}

func TestEntry(t *testing.T) {
	e, dropped, ok := Entry(Record{
		"id":         "e1",
		"number":     "JV-1",
		"date":       "2024-01-05",
		"source":     "Fee Collection",
		"status":     "posted",
		"isBalanced": false,
		"lines": []any{
			map[string]any{"accountId": "cash", "debit": 100},
			map[string]any{"account": map[string]any{"id": "rev"}, "credit": "100"},
			map[string]any{"debit": 5},
			"garbage",
		},
	})
	require.True(t, ok)
	assert.Equal(t, 1, dropped)
	assert.Equal(t, model.StatusPosted, e.Status)
	require.NotNil(t, e.Balanced)
	assert.False(t, *e.Balanced)
	require.Len(t, e.Lines, 2)
	assert.Equal(t, "rev", e.Lines[1].AccountID)
	assert.True(t, e.Lines[1].Credit.Equal(decimal.NewFromInt(100)))
}

func TestEntryIdentity(t *testing.T) {
	e, _, ok := Entry(Record{"ref": "JV-9"})
	require.True(t, ok)
	assert.Equal(t, "JV-9", e.ID)
	assert.Equal(t, "JV-9", e.Number)
	assert.Nil(t, e.Balanced)

	_, _, ok = Entry(Record{"description": "orphan"})
	assert.False(t, ok)
}

func TestLineRequiresAccount(t *testing.T) {
	_, ok := Line(Record{"debit": 10})
	assert.False(t, ok)
}

func TestStudentFallbackChain(t *testing.T) {
	for _, key := range StudentIDKeys {
		s, ok := Student(Record{key: "stu-1", "class_id": "g4"})
		require.True(t, ok, "key %s", key)
		assert.Equal(t, "stu-1", s.ID, "key %s", key)
		assert.Equal(t, "g4", s.GradeID)
	}
	_, ok := Student(Record{"name": "No Id"})
	assert.False(t, ok)
}

func TestInvoice(t *testing.T) {
	inv, ok := Invoice(Record{
		"invoice_id":     "INV-1",
		"student":        map[string]any{"_id": "stu-1"},
		"status":         "approved",
		"academicYear":   "2024",
		"discountAmount": 50,
		"items": []any{
			map[string]any{"feeName": "Tuition", "amount": 1000},
			map[string]any{"feeHeadId": "fh-2", "total": "250.50"},
		},
	})
	require.True(t, ok)
	assert.Equal(t, "INV-1", inv.ID)
	assert.Equal(t, "stu-1", inv.StudentID)
	assert.Equal(t, "APPROVED", inv.Status)
	assert.Equal(t, "2024", inv.AcademicYearID)
	assert.True(t, inv.Discount.Equal(decimal.NewFromInt(50)))
	require.Len(t, inv.Items, 2)
	assert.Equal(t, "Tuition", inv.Items[0].Name)
	assert.Equal(t, "fh-2", inv.Items[1].FeeHeadID)
	assert.True(t, inv.Items[1].Amount.Equal(decimal.RequireFromString("250.50")))

	_, ok = Invoice(Record{"id": "INV-2"})
	assert.False(t, ok, "invoice without student is unresolvable")
}

func TestGradeAndFeeHead(t *testing.T) {
	g, ok := Grade(Record{"gradeId": "g4", "sortOrder": "4"})
	require.True(t, ok)
	assert.Equal(t, "g4", g.Name, "name falls back to id")
	assert.Equal(t, 4, g.Order)

	fh, ok := FeeHead(Record{"_id": "fh-1", "title": "Transport"})
	require.True(t, ok)
	assert.Equal(t, "Transport", fh.Name)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "stu-1", Key("  STU-1 "))
}
