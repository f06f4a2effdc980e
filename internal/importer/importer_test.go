package importer

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/findash/internal/model"
)

func readFixture(t *testing.T, name string) *Table {
	t.Helper()
	f, err := os.Open(filepath.Join("../../testdata", name))
	require.NoError(t, err)
	defer f.Close()

	tbl, err := ReadTable(name, f)
	require.NoError(t, err)
	return tbl
}

func normalizeFixture(t *testing.T, name string) (Profile, []model.Transaction, int) {
	t.Helper()
	tbl := readFixture(t, name)
	p, ok := DefaultRegistry().Detect(tbl)
	require.True(t, ok)
	txns, dropped, err := p.Normalize(tbl)
	require.NoError(t, err)
	return p, txns, dropped
}

func TestDetect(t *testing.T) {
	tests := []struct {
		file string
		want string
	}{
		{"chase.csv", "chase"},
		{"bofa.csv", "bofa"},
		{"capital_one.csv", "capital_one"},
		{"cash_app.csv", "cash_app"},
		{"wells_fargo.csv", "wells_fargo"},
		{"generic.csv", "generic"},
		{"unknown.csv", "generic"},
	}
	reg := DefaultRegistry()
	for _, tt := range tests {
		p, ok := reg.Detect(readFixture(t, tt.file))
		require.True(t, ok, tt.file)
		assert.Equal(t, tt.want, p.Name(), tt.file)
	}
}

func TestChaseProfile(t *testing.T) {
	_, txns, dropped := normalizeFixture(t, "chase.csv")
	require.Len(t, txns, 5)
	assert.Equal(t, 1, dropped, "row with a bad date is dropped")

	assert.Equal(t, "NETFLIX.COM", txns[0].Description)
	assert.Equal(t, "-15.49", txns[0].Amount.StringFixed(2))
	assert.Equal(t, "Entertainment", txns[0].BankCategory)
	assert.Equal(t, "chase.csv", txns[0].SourceFile)
	assert.Equal(t, 2024, txns[0].Date.Year())
	assert.Equal(t, 3, txns[0].Date.Day())

	assert.True(t, txns[3].Amount.IsPositive())
}

func TestBofAProfile_AccountingNotation(t *testing.T) {
	_, txns, _ := normalizeFixture(t, "bofa.csv")
	require.Len(t, txns, 3)
	assert.Equal(t, "3000.00", txns[0].Amount.StringFixed(2))
	assert.Equal(t, "-45.10", txns[1].Amount.StringFixed(2))
	assert.Empty(t, txns[1].BankCategory)
}

func TestCapitalOneProfile_NegatesDebits(t *testing.T) {
	_, txns, _ := normalizeFixture(t, "capital_one.csv")
	require.Len(t, txns, 2)
	assert.Equal(t, "-10.99", txns[0].Amount.StringFixed(2))
	assert.Equal(t, "250.00", txns[1].Amount.StringFixed(2))
}

func TestCashAppProfile(t *testing.T) {
	_, txns, dropped := normalizeFixture(t, "cash_app.csv")
	require.Len(t, txns, 4, "failed row is filtered out")
	assert.Zero(t, dropped)

	assert.Equal(t, "Pizza \u2014 Jordan", txns[0].Description)
	assert.Equal(t, "-25.00", txns[0].Amount.StringFixed(2))
	assert.Equal(t, "P2P", txns[0].BankCategory)
	assert.Equal(t, 10, txns[0].Date.Day())

	assert.Equal(t, "Cash App Cash Out", txns[1].Description)
	assert.Equal(t, "Withdrawal", txns[1].BankCategory)
	assert.Equal(t, "Cash App Add Cash", txns[2].Description)
	assert.Equal(t, "Deposits", txns[2].BankCategory)
	assert.Equal(t, "Chipotle", txns[3].Description)
}

func TestCashAppDescription(t *testing.T) {
	assert.Equal(t, "Cash App P2P", cashAppDescription("P2P", "", "nan"))
	assert.Equal(t, "Sam", cashAppDescription("P2P", "", "Sam"))
	assert.Equal(t, "Cash App Bitcoin Buy", cashAppDescription("Bitcoin Buy", "", ""))
}

func TestWellsFargoProfile(t *testing.T) {
	_, txns, _ := normalizeFixture(t, "wells_fargo.csv")
	require.Len(t, txns, 2)
	assert.Equal(t, "STARBUCKS STORE 1234", txns[0].Description)
	assert.Equal(t, "-6.50", txns[0].Amount.StringFixed(2))
	assert.Equal(t, 18, txns[1].Date.Day())
}

func TestProfiles_ISODates(t *testing.T) {
	tests := []struct {
		name    string
		profile string
		data    string
	}{
		{"chase", "chase", "Transaction Date,Post Date,Description,Category,Type,Amount,Memo\n2024-01-15,2024-01-16,NETFLIX.COM,,Sale,-15.49,\n"},
		{"bofa", "bofa", "Date,Description,Amount,Running Bal.\n2024-01-15,SHELL OIL,-45.10,100.00\n"},
		{"wells fargo", "wells_fargo", "\"2024-01-15\",\"-6.50\",\"*\",\"\",\"STARBUCKS\"\n\"2024-01-18\",\"12.00\",\"*\",\"\",\"REFUND\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, txns, err := NormalizeFile(DefaultRegistry(), Source{Name: "x.csv", Reader: strings.NewReader(tt.data)})
			require.NoError(t, err)
			assert.Equal(t, tt.profile, summary.Profile)
			assert.Zero(t, summary.Dropped)
			require.NotEmpty(t, txns)
			assert.Equal(t, time.January, txns[0].Date.Month())
			assert.Equal(t, 15, txns[0].Date.Day())
		})
	}
}

func TestWellsFargoProfile_RejectsHeader(t *testing.T) {
	tbl, err := ReadTable("x.csv", strings.NewReader("Date,Amount,A,B,Description\n01/04/2024,-1.00,*,,X\n"))
	require.NoError(t, err)
	assert.False(t, (&WellsFargoProfile{}).Detect(tbl))
}

func TestGenericProfile(t *testing.T) {
	_, txns, dropped := normalizeFixture(t, "generic.csv")
	require.Len(t, txns, 1)
	assert.Equal(t, 1, dropped, "blank amount drops the row")
	assert.Equal(t, "Corner Bakery", txns[0].Description)
	assert.Equal(t, "-9.25", txns[0].Amount.StringFixed(2))
}

func TestGenericProfile_FormatDetectionError(t *testing.T) {
	tbl := readFixture(t, "unknown.csv")
	_, _, err := (&GenericProfile{}).Normalize(tbl)
	require.Error(t, err)

	var fde *FormatDetectionError
	require.True(t, errors.As(err, &fde))
	assert.Equal(t, []string{"When", "What", "HowMuch"}, fde.Columns)
	assert.Contains(t, err.Error(), "When, What, HowMuch")
}

func TestNormalize_MalformedAmountFailsFile(t *testing.T) {
	csv := "Date,Description,Amount\n2024-01-01,coffee,abc\n"
	_, _, err := NormalizeFile(DefaultRegistry(), Source{Name: "bad.csv", Reader: strings.NewReader(csv)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing amount")
}

func TestReadTable_StripsBOMAndLatin1(t *testing.T) {
	data := append([]byte("\xef\xbb\xbfDate,Description,Amount\n"), []byte("2024-01-01,Caf\xe9,-3.00\n")...)
	tbl, err := ReadTable("latin.csv", strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Equal(t, "Date", tbl.Header()[0])
	assert.Equal(t, "Café", tbl.Body()[0][1])

	tbl, err = ReadTable("bom.csv", strings.NewReader("\ufeffDate,Description,Amount\n"))
	require.NoError(t, err)
	assert.Equal(t, "Date", tbl.Header()[0])
}

func TestTransactionID_Deterministic(t *testing.T) {
	assert.Equal(t, TransactionID("a.csv", 2), TransactionID("a.csv", 2))
	assert.NotEqual(t, TransactionID("a.csv", 2), TransactionID("a.csv", 3))
	assert.NotEqual(t, TransactionID("a.csv", 2), TransactionID("b.csv", 2))
}

func TestRegistry_GetUnknown(t *testing.T) {
	assert.Nil(t, NewRegistry().Get("nonexistent"))
}

func TestRegistry_CaseInsensitive(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r.Get("Chase"))
	assert.NotNil(t, r.Get("CASH_APP"))
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(&ChaseProfile{})
	assert.Panics(t, func() { r.Register(&ChaseProfile{}) })
}

func TestScan_FindsCSVs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bank.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("data"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested.csv"), 0o755))

	files, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "bank.csv", files[0].Name)
}

func TestScan_MissingDir(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, ErrInputDirNotFound)
}
