package ingestion_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/molekadoces/dashboard_backend/ingestion"
	"github.com/molekadoces/dashboard_backend/models"
)

type sheet struct {
	name string
	rows [][]interface{}
}

// writeWorkbook builds an .xlsx fixture in a temp dir. Cell values are
// written as strings so they survive a raw-value read unchanged, which is
// how hand-entered spreadsheet data arrives.
func writeWorkbook(t *testing.T, sheets ...sheet) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else {
			if _, err := f.NewSheet(s.name); err != nil {
				t.Fatalf("add sheet %q: %v", s.name, err)
			}
		}
		for r, row := range s.rows {
			cell := fmt.Sprintf("A%d", r+1)
			if err := f.SetSheetRow(s.name, cell, &row); err != nil {
				t.Fatalf("write row %d of %q: %v", r+1, s.name, err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "fixture.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

var salesHeaders = []interface{}{
	"Tipo de Cliente", "Data da Venda", "Produtos", "SKU", "Sabor", "Quantidade", "Valor Bruto", "Valor de Compra",
}

func TestLoadDataGoldenRow(t *testing.T) {
	path := writeWorkbook(t, sheet{name: "Receita", rows: [][]interface{}{
		salesHeaders,
		{"Varejo", "15/03/2022", "Brigadeiro", "BR01", "Chocolate", "10", "100,00", "40,00"},
	}})

	ds, err := ingestion.LoadData(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadData: %v", err)
	}
	if len(ds.Sales) != 1 {
		t.Fatalf("got %d sales, want 1", len(ds.Sales))
	}

	s := ds.Sales[0]
	if !strings.HasPrefix(s.ID, "sale-0-") {
		t.Errorf("id = %q", s.ID)
	}
	if s.ClientType != "Varejo" || s.ProductName != "Brigadeiro" || s.Sku != "BR01" || s.Flavor != "Chocolate" {
		t.Errorf("string fields wrong: %+v", s)
	}
	want := time.Date(2022, time.March, 15, 0, 0, 0, 0, time.UTC)
	if !s.SaleDate.Equal(want) {
		t.Errorf("sale date = %s", s.SaleDate)
	}
	if s.Quantity != 10 {
		t.Errorf("quantity = %d", s.Quantity)
	}
	if s.GrossValue.StringFixed(2) != "100.00" || s.PurchaseValue.StringFixed(2) != "40.00" {
		t.Errorf("values wrong: gross=%s purchase=%s", s.GrossValue, s.PurchaseValue)
	}
	// No explicit net column, so net is derived.
	if s.NetValue.StringFixed(2) != "60.00" {
		t.Errorf("net = %s, want 60.00", s.NetValue.StringFixed(2))
	}
	if len(ds.Expenses) != 0 {
		t.Errorf("expense sheet absent but got %d expense records", len(ds.Expenses))
	}
}

func TestLoadDataDropsUndatedRows(t *testing.T) {
	path := writeWorkbook(t, sheet{name: "Receita", rows: [][]interface{}{
		salesHeaders,
		{"Varejo", "15/03/2022", "Brigadeiro", "BR01", "Chocolate", "10", "100,00", "40,00"},
		{"Varejo", "abc", "Beijinho", "BE01", "Coco", "5", "50,00", "20,00"},
		{"Atacado", "20/03/2022", "Pudim", "PU01", "Leite", "2", "30,00", "10,00"},
	}})

	ds, err := ingestion.LoadData(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadData: %v", err)
	}
	if len(ds.Sales) != 2 {
		t.Fatalf("got %d sales, want 2 (undated row dropped)", len(ds.Sales))
	}
	for _, s := range ds.Sales {
		if s.ProductName == "Beijinho" {
			t.Fatal("undated row survived")
		}
	}
	// Records come out sorted ascending by date.
	if ds.Sales[0].SaleDate.After(ds.Sales[1].SaleDate) {
		t.Error("sales not date-sorted")
	}
}

func TestLoadDataSalesDefaults(t *testing.T) {
	path := writeWorkbook(t, sheet{name: "Receita", rows: [][]interface{}{
		{"Data da Venda", "Valor Bruto"},
		{"15/03/2022", "10,00"},
	}})

	ds, err := ingestion.LoadData(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadData: %v", err)
	}
	if len(ds.Sales) != 1 {
		t.Fatalf("got %d sales, want 1", len(ds.Sales))
	}
	s := ds.Sales[0]
	if s.ClientType != models.UnknownClientType {
		t.Errorf("client type = %q", s.ClientType)
	}
	if s.ProductName != models.UnknownProduct || s.Flavor != models.UnknownFlavor || s.Sku != models.UnknownSku {
		t.Errorf("defaults not applied: %+v", s)
	}
	if s.NetValue.StringFixed(2) != "10.00" {
		t.Errorf("net = %s, want gross when no purchase value", s.NetValue.StringFixed(2))
	}
}

func TestLoadDataExplicitNetValue(t *testing.T) {
	path := writeWorkbook(t, sheet{name: "Receita", rows: [][]interface{}{
		{"Data da Venda", "Valor Bruto", "Valor de Compra", "Valor Líquido"},
		{"15/03/2022", "100,00", "40,00", "55,00"},
	}})

	ds, err := ingestion.LoadData(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadData: %v", err)
	}
	if len(ds.Sales) != 1 {
		t.Fatalf("got %d sales, want 1", len(ds.Sales))
	}
	if got := ds.Sales[0].NetValue.StringFixed(2); got != "55.00" {
		t.Errorf("net = %s, explicit column must win over gross-purchase", got)
	}
}

func TestLoadDataHeadersOnly(t *testing.T) {
	path := writeWorkbook(t,
		sheet{name: "Receita", rows: [][]interface{}{salesHeaders}},
		sheet{name: "Despesa", rows: [][]interface{}{{"Data da Compra", "Valor"}}},
	)

	ds, err := ingestion.LoadData(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadData: %v", err)
	}
	if len(ds.Sales) != 0 || len(ds.Expenses) != 0 {
		t.Fatalf("headers-only sheets produced records: %d sales, %d expenses", len(ds.Sales), len(ds.Expenses))
	}
}

func TestLoadDataSalesSheetFallback(t *testing.T) {
	// No sheet normalizes to "receita": the first sheet is used for sales.
	path := writeWorkbook(t, sheet{name: "Vendas 2022", rows: [][]interface{}{
		salesHeaders,
		{"Varejo", "15/03/2022", "Brigadeiro", "BR01", "Chocolate", "10", "100,00", "40,00"},
	}})

	ds, err := ingestion.LoadData(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadData: %v", err)
	}
	if len(ds.Sales) != 1 {
		t.Fatalf("fallback sheet not ingested: %d sales", len(ds.Sales))
	}
}

func TestLoadDataExpenses(t *testing.T) {
	path := writeWorkbook(t,
		sheet{name: "Receita", rows: [][]interface{}{salesHeaders}},
		sheet{name: "Despesa", rows: [][]interface{}{
			{"Nota", "Data da Compra", "Produtos", "Quantidade", "Valor Final de Compra", "Categoria"},
			{"NF-1", "03/03/2022", "Chocolate em pó", "4", "80,00", ""},
			{"NF-2", "10/03/2022", "", "", "500,00", ""},
			{"NF-3", "12/03/2022", "Leite condensado", "6", "", ""},
		}},
	)

	ds, err := ingestion.LoadData(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadData: %v", err)
	}
	if len(ds.Expenses) != 2 {
		t.Fatalf("got %d expenses, want 2 (row without final value dropped)", len(ds.Expenses))
	}

	merch := ds.Expenses[0]
	if merch.Kind() != models.ExpenseMerchandise || merch.Category != models.CategoryMerchandise {
		t.Errorf("merchandise row misclassified: kind=%v category=%q", merch.Kind(), merch.Category)
	}
	if merch.ProductName() != "Chocolate em pó" || merch.Quantity() != 4 {
		t.Errorf("merchandise detail wrong: %+v", merch.Merchandise)
	}
	if merch.FinalPurchaseValue.StringFixed(2) != "80.00" {
		t.Errorf("final value = %s", merch.FinalPurchaseValue.StringFixed(2))
	}

	general := ds.Expenses[1]
	if general.Kind() != models.ExpenseGeneral || general.Category != models.CategoryGeneralExpense {
		t.Errorf("general row misclassified: kind=%v category=%q", general.Kind(), general.Category)
	}
	if general.Merchandise != nil {
		t.Error("general expense carries merchandise detail")
	}
}

func TestLoadDataFetchAndParseErrors(t *testing.T) {
	if _, err := ingestion.LoadData(context.Background(), filepath.Join(t.TempDir(), "missing.xlsx")); !errors.Is(err, ingestion.ErrWorkbookFetch) {
		t.Errorf("missing file: err = %v, want ErrWorkbookFetch", err)
	}

	garbage := filepath.Join(t.TempDir(), "garbage.xlsx")
	if err := os.WriteFile(garbage, []byte("not a workbook"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ingestion.LoadData(context.Background(), garbage); !errors.Is(err, ingestion.ErrWorkbookParse) {
		t.Errorf("garbage file: err = %v, want ErrWorkbookParse", err)
	}
}
