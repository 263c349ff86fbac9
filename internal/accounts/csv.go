package accounts

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cleared-dev/ledgerview/internal/model"
)

// Header is the CSV header for chart-of-accounts.csv.
var Header = []string{"account_id", "code", "name", "type", "parent_id", "system_tag", "is_cash", "sub_type"}

const (
	numFields  = 8
	colID      = 0
	colCode    = 1
	colName    = 2
	colType    = 3
	colParent  = 4
	colTag     = 5
	colIsCash  = 6
	colSubType = 7
)

// ReadAccounts reads chart-of-accounts.csv.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var accounts []model.Account
	for i, rec := range records[1:] {
		acct, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// WriteAccounts writes chart-of-accounts.csv.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalAccount converts an Account to a CSV row.
func MarshalAccount(acct model.Account) []string {
	row := make([]string, numFields)
	row[colID] = acct.ID
	row[colCode] = acct.Code
	row[colName] = acct.Name
	row[colType] = string(acct.Type)
	row[colParent] = acct.ParentID
	row[colTag] = acct.SystemTag
	if acct.IsCash {
		row[colIsCash] = "true"
	}
	row[colSubType] = acct.SubType
	return row
}

// UnmarshalAccount converts a CSV row to an Account.
func UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) != numFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	id := strings.TrimSpace(record[colID])
	if id == "" {
		return model.Account{}, fmt.Errorf("empty account_id")
	}

	typ, ok := model.ParseAccountType(record[colType])
	if !ok {
		return model.Account{}, fmt.Errorf("unknown account type %q", record[colType])
	}

	var isCash bool
	if s := strings.TrimSpace(record[colIsCash]); s != "" {
		var err error
		isCash, err = strconv.ParseBool(s)
		if err != nil {
			return model.Account{}, fmt.Errorf("parsing is_cash %q: %w", s, err)
		}
	}

	code := strings.TrimSpace(record[colCode])
	if code == "" {
		code = id
	}

	return model.Account{
		ID:        id,
		Code:      code,
		Name:      record[colName],
		Type:      typ,
		ParentID:  strings.TrimSpace(record[colParent]),
		SystemTag: strings.ToUpper(strings.TrimSpace(record[colTag])),
		IsCash:    isCash,
		SubType:   strings.ToUpper(strings.TrimSpace(record[colSubType])),
	}, nil
}
