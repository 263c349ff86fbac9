package accounts

import "github.com/cleared-dev/ledgerview/internal/model"

// DefaultChart returns the starter chart of accounts for a school.
func DefaultChart() []model.Account {
	return []model.Account{
		{ID: "1000", Code: "1000", Name: "Current Assets", Type: model.AccountTypeAsset},
		{ID: "1010", Code: "1010", Name: "Cash on Hand", Type: model.AccountTypeAsset, ParentID: "1000", SystemTag: "CASH", IsCash: true},
		{ID: "1020", Code: "1020", Name: "School Bank Account", Type: model.AccountTypeAsset, ParentID: "1000", SystemTag: "BANK", IsCash: true},
		{ID: "1100", Code: "1100", Name: "Student Receivables", Type: model.AccountTypeAsset, ParentID: "1000"},
		{ID: "1500", Code: "1500", Name: "Fixed Assets", Type: model.AccountTypeAsset, SubType: "FIXED"},
		{ID: "1510", Code: "1510", Name: "Buses & Vehicles", Type: model.AccountTypeAsset, ParentID: "1500", SubType: "FIXED"},
		{ID: "1520", Code: "1520", Name: "Furniture & Equipment", Type: model.AccountTypeAsset, ParentID: "1500", SubType: "FIXED"},
		{ID: "2000", Code: "2000", Name: "Liabilities", Type: model.AccountTypeLiability},
		{ID: "2010", Code: "2010", Name: "Accounts Payable", Type: model.AccountTypeLiability, ParentID: "2000"},
		{ID: "2020", Code: "2020", Name: "Fees Received in Advance", Type: model.AccountTypeLiability, ParentID: "2000"},
		{ID: "2100", Code: "2100", Name: "Bank Loan", Type: model.AccountTypeLiability, ParentID: "2000"},
		{ID: "3000", Code: "3000", Name: "Owners' Capital", Type: model.AccountTypeEquity},
		{ID: "3100", Code: "3100", Name: "Retained Earnings", Type: model.AccountTypeEquity},
		{ID: "4000", Code: "4000", Name: "Fee Revenue", Type: model.AccountTypeRevenue},
		{ID: "4010", Code: "4010", Name: "Tuition Fees", Type: model.AccountTypeRevenue, ParentID: "4000"},
		{ID: "4020", Code: "4020", Name: "Transport Fees", Type: model.AccountTypeRevenue, ParentID: "4000"},
		{ID: "4030", Code: "4030", Name: "Activity Fees", Type: model.AccountTypeRevenue, ParentID: "4000"},
		{ID: "5000", Code: "5000", Name: "Operating Expenses", Type: model.AccountTypeExpense},
		{ID: "5010", Code: "5010", Name: "Salaries", Type: model.AccountTypeExpense, ParentID: "5000"},
		{ID: "5020", Code: "5020", Name: "Utilities", Type: model.AccountTypeExpense, ParentID: "5000"},
		{ID: "5030", Code: "5030", Name: "Teaching Materials", Type: model.AccountTypeExpense, ParentID: "5000"},
		{ID: "5040", Code: "5040", Name: "Fuel & Maintenance", Type: model.AccountTypeExpense, ParentID: "5000"},
	}
}
