package canon

import (
	"strings"

	"github.com/cleared-dev/ledgerview/internal/model"
)

// Account resolves a chart-of-accounts record. It requires an id and a
// recognizable account type.
func Account(r Record) (model.Account, bool) {
	id := r.String(AccountIDKeys)
	if id == "" {
		return model.Account{}, false
	}
	typ, ok := model.ParseAccountType(r.String(AccountTypeKeys))
	if !ok {
		return model.Account{}, false
	}
	code := r.String(AccountCodeKeys)
	if code == "" {
		code = id
	}
	isCash, _ := r.Bool(AccountIsCashKeys)
	return model.Account{
		ID:        id,
		Code:      code,
		Name:      r.String(AccountNameKeys),
		Type:      typ,
		ParentID:  r.String(AccountParentKeys),
		SystemTag: strings.ToUpper(r.String(AccountTagKeys)),
		IsCash:    isCash,
		SubType:   strings.ToUpper(r.String(AccountSubTypeKeys)),
	}, true
}

// Line resolves one journal line. It requires an account reference.
func Line(r Record) (model.JournalLine, bool) {
	acct := r.String(LineAccountKeys)
	if acct == "" {
		return model.JournalLine{}, false
	}
	return model.JournalLine{
		AccountID: acct,
		Debit:     r.Decimal(LineDebitKeys),
		Credit:    r.Decimal(LineCreditKeys),
	}, true
}

// Entry resolves a journal entry and its lines. Lines without an account
// reference are dropped and counted in the second result. The entry itself
// requires an id or a number.
func Entry(r Record) (model.JournalEntry, int, bool) {
	entryID := r.String(EntryIDKeys)
	number := r.String(EntryNumberKeys)
	if entryID == "" && number == "" {
		return model.JournalEntry{}, 0, false
	}
	if entryID == "" {
		entryID = number
	}
	if number == "" {
		number = entryID
	}

	var balanced *bool
	if b, ok := r.Bool(EntryBalancedKeys); ok {
		balanced = &b
	}

	var lines []model.JournalLine
	dropped := 0
	for _, lr := range r.Records(EntryLinesKeys) {
		l, ok := Line(lr)
		if !ok {
			dropped++
			continue
		}
		lines = append(lines, l)
	}

	return model.JournalEntry{
		ID:             entryID,
		Number:         number,
		Date:           r.Time(EntryDateKeys),
		CreatedAt:      r.Time(EntryCreatedKeys),
		Source:         r.String(EntrySourceKeys),
		Description:    r.String(EntryDescriptionKeys),
		Status:         model.EntryStatus(strings.ToUpper(r.String(EntryStatusKeys))),
		AcademicYearID: r.String(AcademicYearKeys),
		Balanced:       balanced,
		Lines:          lines,
	}, dropped, true
}

// Student resolves a student record. It requires a student id.
func Student(r Record) (model.Student, bool) {
	id := r.String(StudentIDKeys)
	if id == "" {
		return model.Student{}, false
	}
	return model.Student{
		ID:             id,
		Name:           r.String(StudentNameKeys),
		GradeID:        r.String(StudentGradeKeys),
		AcademicYearID: r.String(AcademicYearKeys),
	}, true
}

// Grade resolves a grade record. It requires an id.
func Grade(r Record) (model.Grade, bool) {
	id := r.String(GradeIDKeys)
	if id == "" {
		return model.Grade{}, false
	}
	name := r.String(GradeNameKeys)
	if name == "" {
		name = id
	}
	return model.Grade{ID: id, Name: name, Order: r.Int(GradeOrderKeys)}, true
}

// FeeHead resolves a fee head record. It requires an id.
func FeeHead(r Record) (model.FeeHead, bool) {
	id := r.String(FeeHeadIDKeys)
	if id == "" {
		return model.FeeHead{}, false
	}
	return model.FeeHead{ID: id, Name: r.String(FeeHeadNameKeys)}, true
}

// Invoice resolves a student invoice. It requires a student id.
// Voided comes only from the explicit void flag keys. The status is
// upper-cased and kept as is; the AR summary decides which statuses count
// as void.
func Invoice(r Record) (model.Invoice, bool) {
	student := r.String(InvoiceStudentKeys)
	if student == "" {
		return model.Invoice{}, false
	}
	voided, _ := r.Bool(InvoiceVoidKeys)

	var items []model.InvoiceItem
	for _, ir := range r.Records(InvoiceItemsKeys) {
		items = append(items, model.InvoiceItem{
			FeeHeadID: ir.String(ItemFeeHeadKeys),
			Name:      ir.String(ItemNameKeys),
			Amount:    ir.Decimal(ItemAmountKeys),
		})
	}

	return model.Invoice{
		ID:             r.String(InvoiceIDKeys),
		StudentID:      student,
		GradeID:        r.String(InvoiceGradeKeys),
		AcademicYearID: r.String(AcademicYearKeys),
		Status:         strings.ToUpper(r.String(InvoiceStatusKeys)),
		Voided:         voided,
		Date:           r.Time(InvoiceDateKeys),
		Discount:       r.Decimal(InvoiceDiscountKeys),
		Items:          items,
	}, true
}
