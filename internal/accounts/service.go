package accounts

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cleared-dev/ledgerview/internal/canon"
	"github.com/cleared-dev/ledgerview/internal/model"
)

// ChartPath is the chart of accounts location relative to a ledger root.
const ChartPath = "accounts/chart-of-accounts.csv"

// Directory provides in-memory lookup over the chart of accounts.
// Ids are matched after trimming and case folding.
type Directory struct {
	accounts []model.Account
	byID     map[string]model.Account
}

// NewDirectory creates a Directory from a slice of accounts. A later account
// with the same id replaces an earlier one in place.
func NewDirectory(accounts []model.Account) *Directory {
	byID := make(map[string]model.Account, len(accounts))
	pos := make(map[string]int, len(accounts))
	var list []model.Account
	for _, a := range accounts {
		k := canon.Key(a.ID)
		byID[k] = a
		if i, ok := pos[k]; ok {
			list[i] = a
			continue
		}
		pos[k] = len(list)
		list = append(list, a)
	}
	return &Directory{accounts: list, byID: byID}
}

// Load reads chart-of-accounts.csv from a ledger root.
func Load(root string) ([]model.Account, error) {
	path := filepath.Join(root, ChartPath)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	return accts, nil
}

// Save writes accounts to <root>/accounts/chart-of-accounts.csv.
func Save(root string, accounts []model.Account) error {
	dir := filepath.Join(root, filepath.Dir(ChartPath))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating accounts dir: %w", err)
	}

	f, err := os.Create(filepath.Join(root, ChartPath))
	if err != nil {
		return fmt.Errorf("creating chart of accounts file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, accounts); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	return nil
}

// All returns all accounts in input order.
func (d *Directory) All() []model.Account {
	return d.accounts
}

// Get returns an account by id.
func (d *Directory) Get(id string) (model.Account, bool) {
	a, ok := d.byID[canon.Key(id)]
	return a, ok
}

// Exists reports whether an account id exists.
func (d *Directory) Exists(id string) bool {
	_, ok := d.byID[canon.Key(id)]
	return ok
}

// OrphanParents returns ids of accounts whose parent does not exist.
func (d *Directory) OrphanParents() []string {
	var ids []string
	for _, a := range d.accounts {
		if a.ParentID != "" && !d.Exists(a.ParentID) {
			ids = append(ids, a.ID)
		}
	}
	return ids
}
