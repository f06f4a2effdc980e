package importer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/findash/internal/model"
)

// Profile normalizes one bank's CSV layout into Transactions.
type Profile interface {
	// Name identifies the profile, e.g. "chase".
	Name() string
	// Detect reports whether the table looks like this profile's export.
	Detect(t *Table) bool
	// Normalize converts the table, returning the kept rows and the number
	// of rows dropped for an unparseable date or a blank amount.
	Normalize(t *Table) ([]model.Transaction, int, error)
}

// Registry holds profiles in detection priority order.
type Registry struct {
	profiles []Profile
	byName   map[string]Profile
}

// NewRegistry creates an empty profile registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Profile)}
}

// Register appends a profile to the detection order. Panics on duplicate name.
func (r *Registry) Register(p Profile) {
	key := strings.ToLower(p.Name())
	if _, ok := r.byName[key]; ok {
		panic("duplicate profile: " + key)
	}
	r.byName[key] = p
	r.profiles = append(r.profiles, p)
}

// Get returns the profile for name, or nil.
func (r *Registry) Get(name string) Profile {
	return r.byName[strings.ToLower(name)]
}

// Detect returns the first registered profile that claims the table.
func (r *Registry) Detect(t *Table) (Profile, bool) {
	for _, p := range r.profiles {
		if p.Detect(t) {
			return p, true
		}
	}
	return nil, false
}

// DefaultRegistry returns a registry with all built-in profiles. Header
// profiles come first, then the headerless positional layout, then the
// generic fallback which claims anything.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&ChaseProfile{})
	r.Register(&BofAProfile{})
	r.Register(&CapitalOneProfile{})
	r.Register(&CashAppProfile{})
	r.Register(&WellsFargoProfile{})
	r.Register(&GenericProfile{})
	return r
}

// FileInfo describes a CSV file in the input directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// Scan returns the CSV files directly inside dir, sorted by name.
func Scan(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputDirNotFound, dir)
		}
		return nil, fmt.Errorf("reading input dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

var txnNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://cleared.dev/findash/transaction"))

// TransactionID derives a stable ID from the file name and 1-based line.
func TransactionID(file string, line int) string {
	return uuid.NewSHA1(txnNamespace, []byte(fmt.Sprintf("%s:%d", file, line))).String()
}

// rowInput is the string form of one row before coercion.
type rowInput struct {
	line         int
	date         string
	description  string
	amount       string
	bankCategory string
}

// buildRow coerces a row. ok is false when the row must be dropped; err is
// non-nil when the amount is present but malformed, which fails the file.
func buildRow(file string, in rowInput, layouts []string) (txn model.Transaction, ok bool, err error) {
	date := ParseDate(in.date, layouts...)
	if date.IsZero() {
		return model.Transaction{}, false, nil
	}

	amount, err := ParseAmount(in.amount)
	if errors.Is(err, ErrEmptyAmount) {
		return model.Transaction{}, false, nil
	}
	if err != nil {
		return model.Transaction{}, false, fmt.Errorf("line %d: %w", in.line, err)
	}

	return newTransaction(file, in.line, date, in.description, amount, in.bankCategory), true, nil
}

func newTransaction(file string, line int, date time.Time, desc string, amount decimal.Decimal, bankCategory string) model.Transaction {
	return model.Transaction{
		ID:           TransactionID(file, line),
		Date:         date,
		Description:  desc,
		Amount:       amount,
		BankCategory: bankCategory,
		SourceFile:   file,
	}
}

// columnLayout maps header names to transaction fields for exports whose
// only quirk is which columns hold what.
type columnLayout struct {
	date        string
	description string
	amount      string
	category    string // optional
}

func (c columnLayout) normalize(t *Table) ([]model.Transaction, int, error) {
	dateIdx := t.Index(c.date)
	descIdx := t.Index(c.description)
	amtIdx := t.Index(c.amount)
	catIdx := -1
	if c.category != "" {
		catIdx = t.Index(c.category)
	}

	var txns []model.Transaction
	dropped := 0
	for i, rec := range t.Body() {
		txn, ok, err := buildRow(t.File, rowInput{
			line:         i + 2,
			date:         cell(rec, dateIdx),
			description:  cell(rec, descIdx),
			amount:       cell(rec, amtIdx),
			bankCategory: cell(rec, catIdx),
		}, nil)
		if err != nil {
			return nil, 0, err
		}
		if !ok {
			dropped++
			continue
		}
		txns = append(txns, txn)
	}
	return txns, dropped, nil
}
