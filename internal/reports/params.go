package reports

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerview/internal/filter"
)

// Params is the string form of a Request, as it arrives from flags or a
// query string. Dates are YYYY-MM-DD.
type Params struct {
	From     string
	To       string
	Source   string
	Account  string
	Year     string
	Level    string
	AsOf     string
	ShowZero bool
	Opening  string
}

// Request parses p.
func (p Params) Request() (Request, error) {
	var req Request
	var err error
	if req.From, err = parseOptionalDate("from", p.From); err != nil {
		return Request{}, err
	}
	if req.To, err = parseOptionalDate("to", p.To); err != nil {
		return Request{}, err
	}
	if req.AsOf, err = parseOptionalDate("as-of", p.AsOf); err != nil {
		return Request{}, err
	}
	if req.Level, err = filter.ParseLevel(p.Level); err != nil {
		return Request{}, err
	}
	if p.Opening != "" {
		if req.OpeningBalance, err = decimal.NewFromString(p.Opening); err != nil {
			return Request{}, fmt.Errorf("invalid opening balance %q: %w", p.Opening, err)
		}
	}
	req.Source = p.Source
	req.AccountID = p.Account
	req.AcademicYearID = p.Year
	req.ShowZero = p.ShowZero
	return req, nil
}

func parseOptionalDate(name, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := filter.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s date: %w", name, err)
	}
	return t, nil
}
