package reports

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/molekadoces/dashboard_backend/models"
)

type CategoryResponse struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// groupSum groups records by key and sums metric per group. Records with an
// empty key are excluded. Sums are rounded to 2 decimal places and the
// result is sorted descending by value (name ascending as tie-break, so the
// output is deterministic).
func groupSum[T any](records []T, key func(T) string, metric func(T) decimal.Decimal) []*CategoryResponse {
	sums := make(map[string]decimal.Decimal)
	for _, r := range records {
		k := key(r)
		if k == "" {
			continue
		}
		sums[k] = sums[k].Add(metric(r))
	}
	out := make([]*CategoryResponse, 0, len(sums))
	for name, value := range sums {
		out = append(out, &CategoryResponse{Name: name, Value: value.Round(2)})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Value.Equal(out[j].Value) {
			return out[i].Value.GreaterThan(out[j].Value)
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// GetTopItemsReport ranks groups by summed metric, keeping the top n.
func GetTopItemsReport[T any](records []T, key func(T) string, metric func(T) decimal.Decimal, n int) []*CategoryResponse {
	out := groupSum(records, key, metric)
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// GetDistributionReport is the untruncated variant used for proportional
// (pie-style) breakdowns; groups with a zero or negative sum are dropped.
func GetDistributionReport[T any](records []T, key func(T) string, metric func(T) decimal.Decimal) []*CategoryResponse {
	all := groupSum(records, key, metric)
	out := make([]*CategoryResponse, 0, len(all))
	for _, c := range all {
		if c.Value.IsPositive() {
			out = append(out, c)
		}
	}
	return out
}

// Named selectors for the HTTP layer; grouping keys and metrics arrive as
// query-string values.

func SaleKey(by string) (func(*models.SaleRecord) string, bool) {
	switch by {
	case "product":
		return func(s *models.SaleRecord) string { return s.ProductName }, true
	case "flavor":
		return func(s *models.SaleRecord) string { return s.Flavor }, true
	case "clientType":
		return func(s *models.SaleRecord) string { return s.ClientType }, true
	}
	return nil, false
}

func SaleMetric(metric string) (func(*models.SaleRecord) decimal.Decimal, bool) {
	switch metric {
	case "quantity":
		return func(s *models.SaleRecord) decimal.Decimal { return decimal.NewFromInt(int64(s.Quantity)) }, true
	case "gross":
		return func(s *models.SaleRecord) decimal.Decimal { return s.GrossValue }, true
	case "net":
		return func(s *models.SaleRecord) decimal.Decimal { return s.NetValue }, true
	}
	return nil, false
}

func ExpenseKey(by string) (func(*models.ExpenseRecord) string, bool) {
	switch by {
	case "product":
		return func(e *models.ExpenseRecord) string { return e.ProductName() }, true
	case "nota":
		return func(e *models.ExpenseRecord) string { return e.Nota }, true
	case "category":
		return func(e *models.ExpenseRecord) string { return e.Category }, true
	}
	return nil, false
}

func ExpenseMetric(metric string) (func(*models.ExpenseRecord) decimal.Decimal, bool) {
	switch metric {
	case "quantity":
		return func(e *models.ExpenseRecord) decimal.Decimal { return decimal.NewFromInt(int64(e.Quantity())) }, true
	case "cost":
		return func(e *models.ExpenseRecord) decimal.Decimal { return e.FinalPurchaseValue }, true
	}
	return nil, false
}
