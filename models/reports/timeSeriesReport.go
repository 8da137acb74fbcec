package reports

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/molekadoces/dashboard_backend/models"
)

// Period is the time-series bucket granularity.
type Period string

const (
	PeriodDay    Period = "day"
	PeriodWeek   Period = "week"
	PeriodBiWeek Period = "bi-week"
	PeriodMonth  Period = "month"
)

func ParsePeriod(s string) (Period, bool) {
	switch Period(s) {
	case PeriodDay, PeriodWeek, PeriodBiWeek, PeriodMonth:
		return Period(s), true
	}
	return "", false
}

const dateKeyLayout = "2006-01-02"

// BucketStart returns the period-start date for a record date: the day
// itself, the Monday of its week, the 1st/16th of its month (bi-week split
// on day 15), or the 1st of its month.
func BucketStart(date time.Time, period Period) time.Time {
	switch period {
	case PeriodWeek:
		offset := (int(date.Weekday()) + 6) % 7
		return date.AddDate(0, 0, -offset)
	case PeriodBiWeek:
		if date.Day() <= 15 {
			return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
		}
		return time.Date(date.Year(), date.Month(), 16, 0, 0, 0, 0, date.Location())
	case PeriodMonth:
		return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	default:
		return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	}
}

type SalesOverTimeResponse struct {
	Date       string          `json:"date"`
	Quantity   int             `json:"quantity"`
	GrossValue decimal.Decimal `json:"grossValue"`
	NetValue   decimal.Decimal `json:"netValue"`
}

// GetSalesOverTimeReport buckets sales by period start and sums quantity,
// gross and net value per bucket, ascending by bucket date.
func GetSalesOverTimeReport(sales []*models.SaleRecord, period Period) []*SalesOverTimeResponse {
	buckets := make(map[string]*SalesOverTimeResponse)
	for _, s := range sales {
		key := BucketStart(s.SaleDate, period).Format(dateKeyLayout)
		b, ok := buckets[key]
		if !ok {
			b = &SalesOverTimeResponse{Date: key}
			buckets[key] = b
		}
		b.Quantity += s.Quantity
		b.GrossValue = b.GrossValue.Add(s.GrossValue)
		b.NetValue = b.NetValue.Add(s.NetValue)
	}
	out := make([]*SalesOverTimeResponse, 0, len(buckets))
	for _, b := range buckets {
		b.GrossValue = b.GrossValue.Round(2)
		b.NetValue = b.NetValue.Round(2)
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

type PurchasesOverTimeResponse struct {
	Date      string          `json:"date"`
	CostValue decimal.Decimal `json:"costValue"`
	ItemCount int             `json:"itemCount"`
}

// GetPurchasesOverTimeReport buckets expenses by period start and sums the
// final purchase value and purchased item count per bucket.
func GetPurchasesOverTimeReport(expenses []*models.ExpenseRecord, period Period) []*PurchasesOverTimeResponse {
	buckets := make(map[string]*PurchasesOverTimeResponse)
	for _, e := range expenses {
		key := BucketStart(e.PurchaseDate, period).Format(dateKeyLayout)
		b, ok := buckets[key]
		if !ok {
			b = &PurchasesOverTimeResponse{Date: key}
			buckets[key] = b
		}
		b.CostValue = b.CostValue.Add(e.FinalPurchaseValue)
		b.ItemCount += e.Quantity()
	}
	out := make([]*PurchasesOverTimeResponse, 0, len(buckets))
	for _, b := range buckets {
		b.CostValue = b.CostValue.Round(2)
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

type ProfitOverTimeResponse struct {
	Date         string          `json:"date"`
	RevenueValue decimal.Decimal `json:"revenueValue"`
	ExpenseValue decimal.Decimal `json:"expenseValue"`
	ProfitValue  decimal.Decimal `json:"profitValue"`
}

// GetProfitOverTimeReport merges sales revenue and expense cost over the
// union of their buckets; profit = revenue - expense per bucket.
func GetProfitOverTimeReport(sales []*models.SaleRecord, expenses []*models.ExpenseRecord, period Period) []*ProfitOverTimeResponse {
	buckets := make(map[string]*ProfitOverTimeResponse)
	at := func(key string) *ProfitOverTimeResponse {
		b, ok := buckets[key]
		if !ok {
			b = &ProfitOverTimeResponse{Date: key}
			buckets[key] = b
		}
		return b
	}
	for _, s := range sales {
		b := at(BucketStart(s.SaleDate, period).Format(dateKeyLayout))
		b.RevenueValue = b.RevenueValue.Add(s.GrossValue)
	}
	for _, e := range expenses {
		b := at(BucketStart(e.PurchaseDate, period).Format(dateKeyLayout))
		b.ExpenseValue = b.ExpenseValue.Add(e.FinalPurchaseValue)
	}
	out := make([]*ProfitOverTimeResponse, 0, len(buckets))
	for _, b := range buckets {
		b.RevenueValue = b.RevenueValue.Round(2)
		b.ExpenseValue = b.ExpenseValue.Round(2)
		b.ProfitValue = b.RevenueValue.Sub(b.ExpenseValue).Round(2)
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
