// Package export writes pipeline results as CSV files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/findash/internal/model"
)

// LedgerHeader is the CSV header for transactions_clean.csv.
const LedgerHeader = "id,date,description,amount,bank_category,source_file,merchant,category,day_of_week,day_name,month,month_name,year,year_month,is_weekend,is_expense,abs_amount,is_duplicate,is_anomaly,anomaly_zscore,running_balance"

const (
	numLedgerFields = 21
	dateFormat      = "2006-01-02"
	colID           = 0
	colDate         = 1
	colDesc         = 2
	colAmount       = 3
	colBankCat      = 4
	colSource       = 5
	colMerchant     = 6
	colCategory     = 7
	colDow          = 8
	colDayName      = 9
	colMonth        = 10
	colMonthName    = 11
	colYear         = 12
	colYearMonth    = 13
	colWeekend      = 14
	colExpense      = 15
	colAbsAmount    = 16
	colDuplicate    = 17
	colAnomaly      = 18
	colZScore       = 19
	colBalance      = 20
)

// WriteLedger writes the annotated ledger (including header).
func WriteLedger(w io.Writer, ledger []model.EnrichedTransaction) error {
	rows := make([][]string, len(ledger))
	for i, txn := range ledger {
		rows[i] = MarshalTransaction(txn)
	}
	return writeRows(w, LedgerHeader, rows)
}

// ReadLedger reads a ledger written by WriteLedger.
func ReadLedger(r io.Reader) ([]model.EnrichedTransaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numLedgerFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var ledger []model.EnrichedTransaction
	for i, rec := range records[1:] {
		txn, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		ledger = append(ledger, txn)
	}
	return ledger, nil
}

// MarshalTransaction converts a ledger row to a CSV record.
func MarshalTransaction(txn model.EnrichedTransaction) []string {
	row := make([]string, numLedgerFields)
	row[colID] = txn.ID
	row[colDate] = txn.Date.Format(dateFormat)
	row[colDesc] = txn.Description
	row[colAmount] = txn.Amount.StringFixed(2)
	row[colBankCat] = txn.BankCategory
	row[colSource] = txn.SourceFile
	row[colMerchant] = txn.Merchant
	row[colCategory] = txn.Category
	row[colDow] = strconv.Itoa(txn.DayOfWeek)
	row[colDayName] = txn.DayName
	row[colMonth] = strconv.Itoa(txn.Month)
	row[colMonthName] = txn.MonthName
	row[colYear] = strconv.Itoa(txn.Year)
	row[colYearMonth] = txn.YearMonth
	row[colWeekend] = strconv.FormatBool(txn.IsWeekend)
	row[colExpense] = strconv.FormatBool(txn.IsExpense)
	row[colAbsAmount] = txn.AbsAmount.StringFixed(2)
	row[colDuplicate] = strconv.FormatBool(txn.IsDuplicate)
	row[colAnomaly] = strconv.FormatBool(txn.IsAnomaly)
	if txn.AnomalyZScore != nil {
		row[colZScore] = formatFloat(*txn.AnomalyZScore, 2)
	}
	row[colBalance] = txn.RunningBalance.StringFixed(2)
	return row
}

// UnmarshalTransaction converts a CSV record back to a ledger row. Derived
// calendar fields are parsed as written, not recomputed.
func UnmarshalTransaction(record []string) (model.EnrichedTransaction, error) {
	if len(record) != numLedgerFields {
		return model.EnrichedTransaction{}, fmt.Errorf("expected %d fields, got %d", numLedgerFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.EnrichedTransaction{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	var p fieldParser
	txn := model.EnrichedTransaction{
		Transaction: model.Transaction{
			ID:           record[colID],
			Date:         date,
			Description:  record[colDesc],
			Amount:       p.decimalField("amount", record[colAmount]),
			BankCategory: record[colBankCat],
			SourceFile:   record[colSource],
		},
		Merchant:       record[colMerchant],
		Category:       record[colCategory],
		DayOfWeek:      p.intField("day_of_week", record[colDow]),
		DayName:        record[colDayName],
		Month:          p.intField("month", record[colMonth]),
		MonthName:      record[colMonthName],
		Year:           p.intField("year", record[colYear]),
		YearMonth:      record[colYearMonth],
		IsWeekend:      p.boolField("is_weekend", record[colWeekend]),
		IsExpense:      p.boolField("is_expense", record[colExpense]),
		AbsAmount:      p.decimalField("abs_amount", record[colAbsAmount]),
		IsDuplicate:    p.boolField("is_duplicate", record[colDuplicate]),
		IsAnomaly:      p.boolField("is_anomaly", record[colAnomaly]),
		RunningBalance: p.decimalField("running_balance", record[colBalance]),
	}
	if record[colZScore] != "" {
		z := p.floatField("anomaly_zscore", record[colZScore])
		txn.AnomalyZScore = &z
	}
	if p.err != nil {
		return model.EnrichedTransaction{}, p.err
	}
	return txn, nil
}

// fieldParser keeps the first parse error so a record can be decoded in
// one expression.
type fieldParser struct{ err error }

func (p *fieldParser) fail(field, value string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("parsing %s %q: %w", field, value, err)
	}
}

func (p *fieldParser) decimalField(field, s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		p.fail(field, s, err)
	}
	return d
}

func (p *fieldParser) intField(field, s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		p.fail(field, s, err)
	}
	return n
}

func (p *fieldParser) boolField(field, s string) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		p.fail(field, s, err)
	}
	return b
}

func (p *fieldParser) floatField(field, s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		p.fail(field, s, err)
	}
	return f
}

// MonthlySummaryHeader is the CSV header for monthly_summary.csv.
const MonthlySummaryHeader = "year_month,income,expenses,net,savings_rate"

// WriteMonthlySummary writes monthly income against expenses.
func WriteMonthlySummary(w io.Writer, rows []model.MonthlySummary) error {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{r.YearMonth, r.Income.StringFixed(2), r.Expenses.StringFixed(2), r.Net.StringFixed(2), formatFloat(r.SavingsRate, 3)}
	}
	return writeRows(w, MonthlySummaryHeader, out)
}

// MonthlyByCategoryHeader is the CSV header for monthly_by_category.csv.
const MonthlyByCategoryHeader = "year_month,category,total_spent"

// WriteMonthlyByCategory writes spend per month and category.
func WriteMonthlyByCategory(w io.Writer, rows []model.MonthlyCategorySummary) error {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{r.YearMonth, r.Category, r.TotalSpent.StringFixed(2)}
	}
	return writeRows(w, MonthlyByCategoryHeader, out)
}

// RecurringHeader is the CSV header for recurring.csv.
const RecurringHeader = "merchant,category,avg_amount,occurrences,interval_days"

// WriteRecurring writes the detected recurring charges.
func WriteRecurring(w io.Writer, rows []model.RecurringGroup) error {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{r.Merchant, r.Category, r.AvgAmount.StringFixed(2), strconv.Itoa(r.Occurrences), formatFloat(r.IntervalDays, 1)}
	}
	return writeRows(w, RecurringHeader, out)
}

// TopMerchantsHeader is the CSV header for top_merchants.csv.
const TopMerchantsHeader = "merchant,total_spent,transactions,avg_amount,category"

// WriteTopMerchants writes the merchant ranking.
func WriteTopMerchants(w io.Writer, rows []model.MerchantRanking) error {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{r.Merchant, r.TotalSpent.StringFixed(2), strconv.Itoa(r.Transactions), r.AvgAmount.StringFixed(2), r.Category}
	}
	return writeRows(w, TopMerchantsHeader, out)
}

func writeRows(w io.Writer, header string, rows [][]string) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(f float64, prec int) string {
	return strconv.FormatFloat(f, 'f', prec, 64)
}
