package canon

// Key chains, highest priority first. Reordering a chain changes which value
// wins when a record carries several of these keys, and so changes report
// output; append new spellings at the end.
var (
	IDKeys = []string{"id", "_id", "uid"}

	AccountIDKeys      = []string{"id", "_id", "accountId", "account_id"}
	AccountCodeKeys    = []string{"code", "accountCode", "account_code", "number"}
	AccountNameKeys    = []string{"name", "accountName", "account_name", "title"}
	AccountTypeKeys    = []string{"type", "accountType", "account_type", "category"}
	AccountParentKeys  = []string{"parentId", "parent_id", "parentAccountId", "parent"}
	AccountTagKeys     = []string{"systemTag", "system_tag", "tag"}
	AccountIsCashKeys  = []string{"isCash", "is_cash", "cash"}
	AccountSubTypeKeys = []string{"subType", "sub_type", "subtype", "accountSubType"}

	EntryIDKeys          = []string{"id", "_id", "entryId", "entry_id"}
	EntryNumberKeys      = []string{"number", "entryNumber", "entry_number", "reference", "ref"}
	EntryDateKeys        = []string{"date", "entryDate", "entry_date", "postingDate", "posting_date"}
	EntryCreatedKeys     = []string{"createdAt", "created_at"}
	EntrySourceKeys      = []string{"source", "sourceType", "source_type", "entryType", "type"}
	EntryDescriptionKeys = []string{"description", "memo", "narration", "notes"}
	EntryStatusKeys      = []string{"status", "state"}
	EntryBalancedKeys    = []string{"isBalanced", "is_balanced", "balanced"}
	EntryLinesKeys       = []string{"lines", "items", "details", "entries"}

	LineAccountKeys = []string{"accountId", "account_id", "account", "accountRef"}
	LineDebitKeys   = []string{"debit", "dr", "debitAmount", "debit_amount"}
	LineCreditKeys  = []string{"credit", "cr", "creditAmount", "credit_amount"}

	AcademicYearKeys = []string{"academicYearId", "academic_year_id", "academicYear", "academic_year", "yearId"}

	StudentIDKeys    = []string{"id", "_id", "studentId", "student_id", "uid", "admissionNo"}
	StudentNameKeys  = []string{"name", "fullName", "full_name", "studentName"}
	StudentGradeKeys = []string{"gradeId", "grade_id", "gradeLevelId", "classId", "class_id", "grade"}

	InvoiceIDKeys       = []string{"id", "_id", "invoiceId", "invoice_id", "number"}
	InvoiceStudentKeys  = []string{"studentId", "student_id", "student", "studentUid", "studentCode", "customerId"}
	InvoiceGradeKeys    = []string{"gradeId", "grade_id", "gradeLevelId", "classId", "class_id"}
	InvoiceStatusKeys   = []string{"status", "state", "approvalStatus", "approval_status"}
	InvoiceVoidKeys     = []string{"isVoid", "is_void", "voided", "isVoided"}
	InvoiceDateKeys     = []string{"date", "invoiceDate", "invoice_date", "issueDate", "createdAt", "created_at"}
	InvoiceDiscountKeys = []string{"discount", "discountAmount", "discount_amount", "discountTotal", "exemption", "exemptions"}
	InvoiceItemsKeys    = []string{"items", "lines", "feeItems", "fee_items", "details"}

	ItemFeeHeadKeys = []string{"feeHeadId", "fee_head_id", "feeId", "feeItemId", "fee_item_id"}
	ItemNameKeys    = []string{"name", "feeName", "fee_name", "feeItemName", "description", "title"}
	ItemAmountKeys  = []string{"amount", "total", "price", "value"}

	GradeIDKeys    = []string{"id", "_id", "gradeId", "grade_id"}
	GradeNameKeys  = []string{"name", "title", "gradeName", "grade_name", "label"}
	GradeOrderKeys = []string{"order", "sortOrder", "sort_order", "level"}

	FeeHeadIDKeys   = []string{"id", "_id", "feeHeadId", "fee_head_id"}
	FeeHeadNameKeys = []string{"name", "title", "feeName", "fee_name"}
)
