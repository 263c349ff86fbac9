package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEntryTotals(t *testing.T) {
	e := JournalEntry{Lines: []JournalLine{
		{AccountID: "1", Debit: decimal.RequireFromString("60.00")},
		{AccountID: "2", Debit: decimal.RequireFromString("40.00")},
		{AccountID: "3", Credit: decimal.RequireFromString("100.00")},
	}}
	d, c := e.Totals()
	assert.True(t, d.Equal(decimal.NewFromInt(100)))
	assert.True(t, c.Equal(decimal.NewFromInt(100)))
	assert.True(t, e.Touches("2"))
	assert.False(t, e.Touches("9"))
}

func TestParseAccountType(t *testing.T) {
	tests := []struct {
		in   string
		want AccountType
		ok   bool
	}{
		{"Asset", AccountTypeAsset, true},
		{" LIABILITIES ", AccountTypeLiability, true},
		{"income", AccountTypeRevenue, true},
		{"Expense", AccountTypeExpense, true},
		{"capital", AccountTypeEquity, true},
		{"widget", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseAccountType(tt.in)
		assert.Equal(t, tt.ok, ok, "ParseAccountType(%q)", tt.in)
		assert.Equal(t, tt.want, got, "ParseAccountType(%q)", tt.in)
	}
}

func TestAnomaliesMerge(t *testing.T) {
	a := Anomalies{MissingAccountRefs: 1}
	assert.False(t, a.Empty())
	a.Merge(Anomalies{MissingAccountRefs: 2, UnbalancedEntries: []string{"e1"}})
	assert.Equal(t, 3, a.MissingAccountRefs)
	assert.Equal(t, []string{"e1"}, a.UnbalancedEntries)
	assert.True(t, Anomalies{}.Empty())
}
