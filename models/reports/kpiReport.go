package reports

import (
	"github.com/shopspring/decimal"

	"github.com/molekadoces/dashboard_backend/models"
)

// OthersLabel is the rollup bucket appended when revenue-by-client-type has
// more groups than requested.
const OthersLabel = "Outros"

type DashboardKPIResponse struct {
	HasData             bool               `json:"hasData"`
	TotalRevenue        decimal.Decimal    `json:"totalRevenue"`
	AverageTicket       decimal.Decimal    `json:"averageTicket"`
	RevenueByClientType []*CategoryResponse `json:"revenueByClientType"`

	TotalPurchaseCost   decimal.Decimal   `json:"totalPurchaseCost"`
	TotalItemsPurchased int               `json:"totalItemsPurchased"`
	AverageCostPerItem  decimal.Decimal   `json:"averageCostPerItem"`
	TopPurchasedProduct *CategoryResponse `json:"topPurchasedProduct,omitempty"`
}

// GetDashboardKPIReport computes the headline figures over the filtered
// record sets.
func GetDashboardKPIReport(sales []*models.SaleRecord, expenses []*models.ExpenseRecord) *DashboardKPIResponse {
	resp := &DashboardKPIResponse{
		HasData:             len(sales) > 0,
		TotalRevenue:        TotalRevenue(sales),
		AverageTicket:       AverageTicket(sales),
		RevenueByClientType: RevenueByClientType(sales, 2),
		TotalPurchaseCost:   TotalPurchaseCost(expenses),
		TotalItemsPurchased: TotalItemsPurchased(expenses),
		AverageCostPerItem:  AverageCostPerItem(expenses),
	}
	if top := TopPurchasedProduct(expenses, "quantity", 1); len(top) > 0 {
		resp.TopPurchasedProduct = top[0]
	}
	return resp
}

func TotalRevenue(sales []*models.SaleRecord) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range sales {
		sum = sum.Add(s.GrossValue)
	}
	return sum.Round(2)
}

// AverageTicket is total gross revenue divided by the number of sale lines.
func AverageTicket(sales []*models.SaleRecord) decimal.Decimal {
	if len(sales) == 0 {
		return decimal.Zero
	}
	return TotalRevenue(sales).Div(decimal.NewFromInt(int64(len(sales)))).Round(2)
}

// RevenueByClientType ranks client types by gross revenue. When more than
// topN groups exist the remainder is rolled into "Outros", but only when
// that remainder is positive.
func RevenueByClientType(sales []*models.SaleRecord, topN int) []*CategoryResponse {
	ranked := groupSum(sales,
		func(s *models.SaleRecord) string { return s.ClientType },
		func(s *models.SaleRecord) decimal.Decimal { return s.GrossValue })
	if len(ranked) <= topN || topN <= 0 {
		return ranked
	}
	top := ranked[:topN]
	others := decimal.Zero
	for _, c := range ranked[topN:] {
		others = others.Add(c.Value)
	}
	if others.IsPositive() {
		top = append(top, &CategoryResponse{Name: OthersLabel, Value: others.Round(2)})
	}
	return top
}

func TotalPurchaseCost(expenses []*models.ExpenseRecord) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range expenses {
		sum = sum.Add(e.FinalPurchaseValue)
	}
	return sum.Round(2)
}

func TotalItemsPurchased(expenses []*models.ExpenseRecord) int {
	total := 0
	for _, e := range expenses {
		total += e.Quantity()
	}
	return total
}

// AverageCostPerItem is total cost over total purchased quantity, zero when
// no quantities were recorded.
func AverageCostPerItem(expenses []*models.ExpenseRecord) decimal.Decimal {
	qty := TotalItemsPurchased(expenses)
	if qty == 0 {
		return decimal.Zero
	}
	return TotalPurchaseCost(expenses).Div(decimal.NewFromInt(int64(qty))).Round(2)
}

// TopPurchasedProduct ranks purchased products by quantity or cost. General
// expenses carry no product name and are excluded by the empty-key rule.
func TopPurchasedProduct(expenses []*models.ExpenseRecord, metric string, topN int) []*CategoryResponse {
	pick, ok := ExpenseMetric(metric)
	if !ok {
		return nil
	}
	return GetTopItemsReport(expenses,
		func(e *models.ExpenseRecord) string { return e.ProductName() }, pick, topN)
}
