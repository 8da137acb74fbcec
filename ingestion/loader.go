package ingestion

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/molekadoces/dashboard_backend/models"
	"github.com/molekadoces/dashboard_backend/utils"
)

// Error taxonomy for the one fallible step of the pipeline. Everything past
// LoadData operates on validated in-memory records and cannot fail on
// malformed input.
var (
	ErrWorkbookFetch = errors.New("workbook could not be fetched")
	ErrWorkbookParse = errors.New("workbook could not be parsed")
)

const (
	salesSheetName   = "receita"
	expenseSheetName = "despesa"
)

// Dataset is the ingestion result: two date-sorted, immutable record slices.
// Version identifies this load for cache keying.
type Dataset struct {
	Sales    []*models.SaleRecord
	Expenses []*models.ExpenseRecord
	Source   string
	LoadedAt time.Time
	Version  int64
}

// LoadData fetches and parses the workbook at pathOrURL and runs the record
// builders over the sales and expense sheets. Fetch failures wrap
// ErrWorkbookFetch, parse failures ErrWorkbookParse; per-row validation
// failures are logged and dropped, never returned.
func LoadData(ctx context.Context, pathOrURL string) (*Dataset, error) {
	f, err := openWorkbook(ctx, pathOrURL)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ds := &Dataset{
		Source:   pathOrURL,
		LoadedAt: time.Now(),
	}
	ds.Version = ds.LoadedAt.UnixNano()

	sheets := f.GetSheetList()

	// Sales sheet: normalized-name match with first-sheet fallback.
	salesSheet := findSheet(sheets, salesSheetName)
	if salesSheet == "" && len(sheets) > 0 {
		salesSheet = sheets[0]
	}
	if salesSheet != "" {
		rows, err := readRows(f, salesSheet)
		if err != nil {
			return nil, err
		}
		ds.Sales = buildSales(rows)
	}

	// Expense sheet: normalized-name match only. Absence means zero expense
	// records, not an error.
	if expenseSheet := findSheet(sheets, expenseSheetName); expenseSheet != "" {
		rows, err := readRows(f, expenseSheet)
		if err != nil {
			return nil, err
		}
		ds.Expenses = buildExpenses(rows)
	}

	sort.SliceStable(ds.Sales, func(i, j int) bool {
		return ds.Sales[i].SaleDate.Before(ds.Sales[j].SaleDate)
	})
	sort.SliceStable(ds.Expenses, func(i, j int) bool {
		return ds.Expenses[i].PurchaseDate.Before(ds.Expenses[j].PurchaseDate)
	})

	return ds, nil
}

func openWorkbook(ctx context.Context, pathOrURL string) (*excelize.File, error) {
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return readWorkbookFromURL(ctx, pathOrURL)
	}

	r, err := os.Open(pathOrURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWorkbookFetch, err)
	}
	defer r.Close()

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWorkbookParse, err)
	}
	return f, nil
}

func readWorkbookFromURL(ctx context.Context, fileURL string) (*excelize.File, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWorkbookFetch, err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWorkbookFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: received status code %d", ErrWorkbookFetch, resp.StatusCode)
	}

	f, err := excelize.OpenReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWorkbookParse, err)
	}
	return f, nil
}

func findSheet(sheets []string, normalized string) string {
	for _, name := range sheets {
		if utils.NormalizeKey(name) == normalized {
			return name
		}
	}
	return ""
}

// readRows reads a sheet with raw cell values, so dates arrive as serial
// numbers and amounts as canonical dot-decimal strings regardless of the
// cell's display format.
func readRows(f *excelize.File, sheet string) ([][]string, error) {
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %v", ErrWorkbookParse, sheet, err)
	}
	return rows, nil
}

func buildSales(rows [][]string) []*models.SaleRecord {
	// Headers only (or empty) means zero records, not an error.
	if len(rows) < 2 {
		return []*models.SaleRecord{}
	}
	headers := normalizeHeaders(rows[0])
	sales := make([]*models.SaleRecord, 0, len(rows)-1)
	for i, cells := range rows[1:] {
		if sale := buildSaleRecord(newRawRow(headers, cells), i, i+2); sale != nil {
			sales = append(sales, sale)
		}
	}
	return sales
}

func buildExpenses(rows [][]string) []*models.ExpenseRecord {
	if len(rows) < 2 {
		return []*models.ExpenseRecord{}
	}
	headers := normalizeHeaders(rows[0])
	expenses := make([]*models.ExpenseRecord, 0, len(rows)-1)
	for i, cells := range rows[1:] {
		if expense := buildExpenseRecord(newRawRow(headers, cells), i, i+2); expense != nil {
			expenses = append(expenses, expense)
		}
	}
	return expenses
}
