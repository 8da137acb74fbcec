package reports

import (
	"sort"
	"strconv"

	"github.com/molekadoces/dashboard_backend/models"
	"github.com/molekadoces/dashboard_backend/utils"
)

type FilterOptionsResponse struct {
	ClientTypes  []string        `json:"clientTypes"`
	ProductNames []string        `json:"productNames"`
	Flavors      []string        `json:"flavors"`
	Years        []string        `json:"years"`
	Seasons      []models.Season `json:"seasons"`
}

// GetFilterOptionsReport derives the selectable filter values from the full
// (unfiltered) sales set: distinct client types, products and flavors sorted
// ascending, years descending.
func GetFilterOptionsReport(sales []*models.SaleRecord) *FilterOptionsResponse {
	years := utils.UniqueSorted(sales, func(s *models.SaleRecord) string {
		return strconv.Itoa(s.SaleDate.Year())
	})
	sort.Sort(sort.Reverse(sort.StringSlice(years)))

	return &FilterOptionsResponse{
		ClientTypes:  utils.UniqueSorted(sales, func(s *models.SaleRecord) string { return s.ClientType }),
		ProductNames: utils.UniqueSorted(sales, func(s *models.SaleRecord) string { return s.ProductName }),
		Flavors:      utils.UniqueSorted(sales, func(s *models.SaleRecord) string { return s.Flavor }),
		Years:        years,
		Seasons:      models.AllSeasons,
	}
}
