package reports

import (
	"github.com/shopspring/decimal"

	"github.com/molekadoces/dashboard_backend/models"
)

type MarginByItemResponse struct {
	Name   string          `json:"name"`
	Margin decimal.Decimal `json:"margin"`
}

// GetMarginByItemReport sums net value per product or flavor, descending,
// truncated to the top n.
func GetMarginByItemReport(sales []*models.SaleRecord, by string, n int) ([]*MarginByItemResponse, bool) {
	key, ok := SaleKey(by)
	if !ok || by == "clientType" {
		return nil, false
	}
	grouped := GetTopItemsReport(sales, key,
		func(s *models.SaleRecord) decimal.Decimal { return s.NetValue }, n)
	out := make([]*MarginByItemResponse, 0, len(grouped))
	for _, g := range grouped {
		out = append(out, &MarginByItemResponse{Name: g.Name, Margin: g.Value})
	}
	return out, true
}
