package reports

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/molekadoces/dashboard_backend/models"
)

var csvHeaders = []string{
	"ID", "Tipo de Cliente", "Data da Venda", "Produto", "SKU",
	"Sabor", "Tamanho", "Quantidade", "Valor Bruto (R$)",
	"Valor de Compra (R$)", "Valor Líquido (R$)",
}

// ExportSalesCSV writes the filtered sales as delimited text: fixed column
// order, comma delimiter, double-quote escaping, and a UTF-8 BOM prefix so
// spreadsheet programs pick up the encoding.
func ExportSalesCSV(w io.Writer, sales []*models.SaleRecord) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeaders); err != nil {
		return err
	}
	for _, s := range sales {
		record := []string{
			s.ID,
			s.ClientType,
			s.SaleDate.Format("2006-01-02 15:04:05"),
			s.ProductName,
			s.Sku,
			s.Flavor,
			s.Size,
			strconv.Itoa(s.Quantity),
			s.GrossValue.StringFixed(2),
			s.PurchaseValue.StringFixed(2),
			s.NetValue.StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
