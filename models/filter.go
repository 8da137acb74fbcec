package models

import (
	"strconv"
	"time"
)

// Season is one of the four Southern-hemisphere meteorological seasons used
// as a filter dimension.
type Season string

const (
	SeasonSummer Season = "Verão"
	SeasonAutumn Season = "Outono"
	SeasonWinter Season = "Inverno"
	SeasonSpring Season = "Primavera"
)

var AllSeasons = []Season{SeasonSummer, SeasonAutumn, SeasonWinter, SeasonSpring}

// SeasonOf maps a date onto its Brazilian season. Boundaries are inclusive:
//   - Verão:     Dec 21 – Mar 20
//   - Outono:    Mar 21 – Jun 20
//   - Inverno:   Jun 21 – Sep 22
//   - Primavera: Sep 23 – Dec 20 (the else branch)
func SeasonOf(date time.Time) Season {
	month := int(date.Month())
	day := date.Day()

	if (month == 12 && day >= 21) || month == 1 || month == 2 || (month == 3 && day <= 20) {
		return SeasonSummer
	}
	if (month == 3 && day >= 21) || month == 4 || month == 5 || (month == 6 && day <= 20) {
		return SeasonAutumn
	}
	if (month == 6 && day >= 21) || month == 7 || month == 8 || (month == 9 && day <= 22) {
		return SeasonWinter
	}
	return SeasonSpring
}

// FilterState is the full set of dashboard filter dimensions. An empty slice
// imposes no restriction on its dimension; nil date bounds are open ended.
// Months are 0-based (0 = Janeiro) and years are their string form, matching
// the values the filter panel sends back.
type FilterState struct {
	StartDate    *time.Time `json:"startDate,omitempty"`
	EndDate      *time.Time `json:"endDate,omitempty"`
	ClientTypes  []string   `json:"clientTypes"`
	ProductNames []string   `json:"productNames"`
	Flavors      []string   `json:"flavors"`
	Seasons      []Season   `json:"seasons"`
	Months       []int      `json:"months"`
	Years        []string   `json:"years"`
}

func (f *FilterState) IsEmpty() bool {
	return f.StartDate == nil && f.EndDate == nil &&
		len(f.ClientTypes) == 0 && len(f.ProductNames) == 0 && len(f.Flavors) == 0 &&
		len(f.Seasons) == 0 && len(f.Months) == 0 && len(f.Years) == 0
}

// matchesDate applies the date-derived dimensions shared by sales and
// expenses: range (end date inclusive of its whole calendar day), season,
// month index and year.
func (f *FilterState) matchesDate(date time.Time) bool {
	if f.StartDate != nil && date.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && !date.Before(f.EndDate.AddDate(0, 0, 1)) {
		return false
	}
	if len(f.Seasons) > 0 && !containsSeason(f.Seasons, SeasonOf(date)) {
		return false
	}
	if len(f.Months) > 0 && !containsInt(f.Months, int(date.Month())-1) {
		return false
	}
	if len(f.Years) > 0 && !containsString(f.Years, strconv.Itoa(date.Year())) {
		return false
	}
	return true
}

// MatchesSale reports whether a sale passes every filter dimension.
func (f *FilterState) MatchesSale(s *SaleRecord) bool {
	if !f.matchesDate(s.SaleDate) {
		return false
	}
	if len(f.ClientTypes) > 0 && !containsString(f.ClientTypes, s.ClientType) {
		return false
	}
	if len(f.ProductNames) > 0 && !containsString(f.ProductNames, s.ProductName) {
		return false
	}
	if len(f.Flavors) > 0 && !containsString(f.Flavors, s.Flavor) {
		return false
	}
	return true
}

// MatchesExpense applies the date-derived dimensions only; expenses have no
// client type, product or flavor dimension.
func (f *FilterState) MatchesExpense(e *ExpenseRecord) bool {
	return f.matchesDate(e.PurchaseDate)
}

// FilterSales returns the subset of sales passing the filter. An empty
// filter is the identity and hands the input slice back as-is; records are
// shared either way and never mutated.
func FilterSales(sales []*SaleRecord, f *FilterState) []*SaleRecord {
	if f == nil || f.IsEmpty() {
		if sales == nil {
			return []*SaleRecord{}
		}
		return sales
	}
	out := make([]*SaleRecord, 0, len(sales))
	for _, s := range sales {
		if f.MatchesSale(s) {
			out = append(out, s)
		}
	}
	return out
}

func FilterExpenses(expenses []*ExpenseRecord, f *FilterState) []*ExpenseRecord {
	if f == nil || f.IsEmpty() {
		if expenses == nil {
			return []*ExpenseRecord{}
		}
		return expenses
	}
	out := make([]*ExpenseRecord, 0, len(expenses))
	for _, e := range expenses {
		if f.MatchesExpense(e) {
			out = append(out, e)
		}
	}
	return out
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsInt(set []int, v int) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsSeason(set []Season, v Season) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
