package accounts

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/ledgerview/internal/model"
)

func TestRoundTrip(t *testing.T) {
	accounts := []model.Account{
		{ID: "1010", Code: "1010", Name: "Cash on Hand", Type: model.AccountTypeAsset, SystemTag: "CASH", IsCash: true},
		{ID: "1510", Code: "1510", Name: "Buses", Type: model.AccountTypeAsset, ParentID: "1500", SubType: "FIXED"},
	}

	var buf bytes.Buffer
	err := WriteAccounts(&buf, accounts)
	require.NoError(t, err)

	got, err := ReadAccounts(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, accounts, got)
}

func TestUnmarshalNormalizes(t *testing.T) {
	acct, err := UnmarshalAccount([]string{" 4010 ", "", "Tuition", "Income", "", "", "", ""})
	require.NoError(t, err)
	assert.Equal(t, "4010", acct.ID)
	assert.Equal(t, "4010", acct.Code, "code falls back to id")
	assert.Equal(t, model.AccountTypeRevenue, acct.Type)
	assert.True(t, acct.IsMain())

	acct, err = UnmarshalAccount([]string{"1020", "1020", "Bank", "asset", "1000", "bank", "TRUE", "current"})
	require.NoError(t, err)
	assert.Equal(t, "BANK", acct.SystemTag)
	assert.True(t, acct.IsCash)
	assert.Equal(t, "CURRENT", acct.SubType)
	assert.False(t, acct.IsMain())
}

func TestUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name   string
		record []string
	}{
		{"short row", []string{"1", "2"}},
		{"empty id", []string{"", "1", "x", "asset", "", "", "", ""}},
		{"bad type", []string{"1", "1", "x", "gizmo", "", "", "", ""}},
		{"bad is_cash", []string{"1", "1", "x", "asset", "", "", "maybe", ""}},
	}
	for _, tt := range tests {
		_, err := UnmarshalAccount(tt.record)
		assert.Error(t, err, tt.name)
	}
}

func TestReadAccountsReportsRow(t *testing.T) {
	in := strings.Join(Header, ",") + "\n1010,1010,Cash,asset,,,,\n1020,1020,Bank,nope,,,,\n"
	_, err := ReadAccounts(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3")
}

func TestDefaultChartRoundTrip(t *testing.T) {
	chart := DefaultChart()

	var buf bytes.Buffer
	require.NoError(t, WriteAccounts(&buf, chart))

	got, err := ReadAccounts(&buf)
	require.NoError(t, err)
	assert.Equal(t, chart, got)
}
