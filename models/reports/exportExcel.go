package reports

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/molekadoces/dashboard_backend/models"
)

// ExportSalesExcel writes the filtered sales as an .xlsx workbook with the
// same column order as the CSV export. Amounts are written as numbers so the
// sheet stays usable for further spreadsheet work.
func ExportSalesExcel(w io.Writer, sales []*models.SaleRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	if _, err := f.NewSheet(sheetName); err != nil {
		return err
	}

	// Add headers
	col := 'A'
	for _, h := range csvHeaders {
		if err := f.SetCellValue(sheetName, string(col)+"1", h); err != nil {
			return err
		}
		col++
	}

	// Add data
	for i, s := range sales {
		rowNo := fmt.Sprint(i + 2)
		gross, _ := s.GrossValue.Float64()
		purchase, _ := s.PurchaseValue.Float64()
		net, _ := s.NetValue.Float64()
		cells := []any{
			s.ID,
			s.ClientType,
			s.SaleDate.Format("2006-01-02"),
			s.ProductName,
			s.Sku,
			s.Flavor,
			s.Size,
			s.Quantity,
			gross,
			purchase,
			net,
		}
		col := 'A'
		for _, value := range cells {
			if err := f.SetCellValue(sheetName, string(col)+rowNo, value); err != nil {
				return err
			}
			col++
		}
	}

	if err := f.Write(w); err != nil {
		return err
	}
	return nil
}
