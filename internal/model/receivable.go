package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Student is the subset of a student record the AR summary needs.
type Student struct {
	ID             string
	Name           string
	GradeID        string
	AcademicYearID string
}

// Grade is a class level, e.g. "Grade 4".
type Grade struct {
	ID    string
	Name  string
	Order int
}

// FeeHead is a named fee item, e.g. "Tuition".
type FeeHead struct {
	ID   string
	Name string
}

// InvoiceItem is one fee line on a student invoice.
type InvoiceItem struct {
	FeeHeadID string
	Name      string
	Amount    decimal.Decimal
}

// Invoice is a student invoice.
type Invoice struct {
	ID             string
	StudentID      string
	GradeID        string // "" when the invoice does not carry it
	AcademicYearID string // "" when the invoice does not carry it
	Status         string // normalized upper case
	Voided         bool
	Date           time.Time
	Discount       decimal.Decimal
	Items          []InvoiceItem
}
