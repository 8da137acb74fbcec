package reports

import (
	"github.com/shopspring/decimal"

	"github.com/molekadoces/dashboard_backend/models"
)

// Weekday bucket order is fixed, Sunday first, matching time.Weekday.
var weekdayNames = [7]string{"Domingo", "Segunda", "Terça", "Quarta", "Quinta", "Sexta", "Sábado"}

type DayOfWeekResponse struct {
	Day   string          `json:"day"`
	Value decimal.Decimal `json:"value"`
}

// GetSalesByDayOfWeekReport sums quantity or gross value into the 7 fixed
// weekday buckets. All 7 buckets are always present, zeroed when empty —
// including for empty input.
func GetSalesByDayOfWeekReport(sales []*models.SaleRecord, metric string) ([]*DayOfWeekResponse, bool) {
	var pick func(*models.SaleRecord) decimal.Decimal
	switch metric {
	case "quantity":
		pick = func(s *models.SaleRecord) decimal.Decimal { return decimal.NewFromInt(int64(s.Quantity)) }
	case "gross":
		pick = func(s *models.SaleRecord) decimal.Decimal { return s.GrossValue }
	default:
		return nil, false
	}

	var sums [7]decimal.Decimal
	for _, s := range sales {
		idx := int(s.SaleDate.Weekday())
		sums[idx] = sums[idx].Add(pick(s))
	}

	out := make([]*DayOfWeekResponse, 7)
	for i, name := range weekdayNames {
		out[i] = &DayOfWeekResponse{Day: name, Value: sums[i].Round(2)}
	}
	return out, true
}
