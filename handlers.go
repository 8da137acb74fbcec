package main

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/molekadoces/dashboard_backend/models"
	"github.com/molekadoces/dashboard_backend/models/reports"
	"github.com/molekadoces/dashboard_backend/utils"
)

// FilterQuery is the query-string form of FilterState. Repeated params feed
// the slice dimensions (?clientTypes=Varejo&clientTypes=Atacado).
type FilterQuery struct {
	StartDate    string   `form:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate      string   `form:"endDate" binding:"omitempty,datetime=2006-01-02"`
	ClientTypes  []string `form:"clientTypes"`
	ProductNames []string `form:"productNames"`
	Flavors      []string `form:"flavors"`
	Seasons      []string `form:"seasons"`
	Months       []int    `form:"months" binding:"omitempty,dive,min=0,max=11"`
	Years        []string `form:"years"`
}

func (q *FilterQuery) toFilterState() (*models.FilterState, error) {
	f := &models.FilterState{
		ClientTypes:  q.ClientTypes,
		ProductNames: q.ProductNames,
		Flavors:      q.Flavors,
		Months:       q.Months,
		Years:        q.Years,
	}
	if q.StartDate != "" {
		t, _ := time.ParseInLocation("2006-01-02", q.StartDate, time.UTC)
		f.StartDate = &t
	}
	if q.EndDate != "" {
		t, _ := time.ParseInLocation("2006-01-02", q.EndDate, time.UTC)
		f.EndDate = &t
	}
	for _, s := range q.Seasons {
		season := models.Season(s)
		switch season {
		case models.SeasonSummer, models.SeasonAutumn, models.SeasonWinter, models.SeasonSpring:
			f.Seasons = append(f.Seasons, season)
		default:
			return nil, fmt.Errorf("unknown season %q", s)
		}
	}
	return f, nil
}

// bindFilter parses and validates the filter dimensions from the query
// string, answering 400 with per-field tags on invalid input.
func bindFilter(c *gin.Context) (*models.FilterState, bool) {
	var q FilterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.ProcessValidationErrors(err)})
		return nil, false
	}
	f, err := q.toFilterState()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return f, true
}

func intQuery(c *gin.Context, name string, fallback int) int {
	if v := c.Query(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func periodQuery(c *gin.Context) (reports.Period, bool) {
	period, ok := reports.ParsePeriod(c.DefaultQuery("period", string(reports.PeriodDay)))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "period must be one of day, week, bi-week, month"})
	}
	return period, ok
}

func registerRoutes(r *gin.Engine, holder *datasetHolder) {
	api := r.Group("/api")

	api.GET("/filters", func(c *gin.Context) {
		ds, _, _ := holder.get()
		c.JSON(http.StatusOK, reports.GetFilterOptionsReport(ds.Sales))
	})

	api.GET("/sales", func(c *gin.Context) {
		ds, _, _ := holder.get()
		f, ok := bindFilter(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, models.FilterSales(ds.Sales, f))
	})

	api.GET("/expenses", func(c *gin.Context) {
		ds, _, _ := holder.get()
		f, ok := bindFilter(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, models.FilterExpenses(ds.Expenses, f))
	})

	dashboard := api.Group("/dashboard")

	dashboard.GET("", func(c *gin.Context) {
		ds, _, _ := holder.get()
		f, ok := bindFilter(c)
		if !ok {
			return
		}
		started := time.Now()
		resp := reports.Cached(reports.CacheKey(ds.Version, f, "kpis"), func() *reports.DashboardKPIResponse {
			kpis := reports.GetDashboardKPIReport(models.FilterSales(ds.Sales, f), models.FilterExpenses(ds.Expenses, f))
			// "No data at all" is a distinct state from "filters matched
			// nothing"; the flag reflects the full dataset.
			kpis.HasData = len(ds.Sales) > 0
			return kpis
		})
		reports.LogSlowReport(c.Request.Context(), "kpis", started, nil)
		c.JSON(http.StatusOK, resp)
	})

	dashboard.GET("/sales-over-time", func(c *gin.Context) {
		ds, _, _ := holder.get()
		f, ok := bindFilter(c)
		if !ok {
			return
		}
		period, ok := periodQuery(c)
		if !ok {
			return
		}
		started := time.Now()
		resp := reports.Cached(reports.CacheKey(ds.Version, f, "salesOverTime", string(period)), func() []*reports.SalesOverTimeResponse {
			return reports.GetSalesOverTimeReport(models.FilterSales(ds.Sales, f), period)
		})
		reports.LogSlowReport(c.Request.Context(), "salesOverTime", started, map[string]any{"period": period})
		c.JSON(http.StatusOK, resp)
	})

	dashboard.GET("/purchases-over-time", func(c *gin.Context) {
		ds, _, _ := holder.get()
		f, ok := bindFilter(c)
		if !ok {
			return
		}
		period, ok := periodQuery(c)
		if !ok {
			return
		}
		started := time.Now()
		resp := reports.Cached(reports.CacheKey(ds.Version, f, "purchasesOverTime", string(period)), func() []*reports.PurchasesOverTimeResponse {
			return reports.GetPurchasesOverTimeReport(models.FilterExpenses(ds.Expenses, f), period)
		})
		reports.LogSlowReport(c.Request.Context(), "purchasesOverTime", started, map[string]any{"period": period})
		c.JSON(http.StatusOK, resp)
	})

	dashboard.GET("/profit-over-time", func(c *gin.Context) {
		ds, _, _ := holder.get()
		f, ok := bindFilter(c)
		if !ok {
			return
		}
		period, ok := periodQuery(c)
		if !ok {
			return
		}
		started := time.Now()
		resp := reports.Cached(reports.CacheKey(ds.Version, f, "profitOverTime", string(period)), func() []*reports.ProfitOverTimeResponse {
			return reports.GetProfitOverTimeReport(models.FilterSales(ds.Sales, f), models.FilterExpenses(ds.Expenses, f), period)
		})
		reports.LogSlowReport(c.Request.Context(), "profitOverTime", started, map[string]any{"period": period})
		c.JSON(http.StatusOK, resp)
	})

	dashboard.GET("/top-items", func(c *gin.Context) {
		ds, _, _ := holder.get()
		f, ok := bindFilter(c)
		if !ok {
			return
		}
		by := c.DefaultQuery("by", "product")
		metric := c.DefaultQuery("metric", "gross")
		n := intQuery(c, "n", 5)

		key, okKey := reports.SaleKey(by)
		pick, okMetric := reports.SaleMetric(metric)
		if !okKey || !okMetric {
			c.JSON(http.StatusBadRequest, gin.H{"error": "by must be product, flavor or clientType; metric must be quantity, gross or net"})
			return
		}
		resp := reports.Cached(reports.CacheKey(ds.Version, f, "topItems", by, metric, strconv.Itoa(n)), func() []*reports.CategoryResponse {
			return reports.GetTopItemsReport(models.FilterSales(ds.Sales, f), key, pick, n)
		})
		c.JSON(http.StatusOK, resp)
	})

	dashboard.GET("/margin", func(c *gin.Context) {
		ds, _, _ := holder.get()
		f, ok := bindFilter(c)
		if !ok {
			return
		}
		by := c.DefaultQuery("by", "product")
		n := intQuery(c, "n", 10)
		resp, ok := reports.GetMarginByItemReport(models.FilterSales(ds.Sales, f), by, n)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "by must be product or flavor"})
			return
		}
		c.JSON(http.StatusOK, resp)
	})

	dashboard.GET("/day-of-week", func(c *gin.Context) {
		ds, _, _ := holder.get()
		f, ok := bindFilter(c)
		if !ok {
			return
		}
		metric := c.DefaultQuery("metric", "quantity")
		resp, ok := reports.GetSalesByDayOfWeekReport(models.FilterSales(ds.Sales, f), metric)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "metric must be quantity or gross"})
			return
		}
		c.JSON(http.StatusOK, resp)
	})

	dashboard.GET("/distribution", func(c *gin.Context) {
		ds, _, _ := holder.get()
		f, ok := bindFilter(c)
		if !ok {
			return
		}
		of := c.DefaultQuery("of", "sales")
		switch of {
		case "sales":
			key, okKey := reports.SaleKey(c.DefaultQuery("by", "clientType"))
			pick, okMetric := reports.SaleMetric(c.DefaultQuery("metric", "gross"))
			if !okKey || !okMetric {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid by/metric for sales distribution"})
				return
			}
			c.JSON(http.StatusOK, reports.GetDistributionReport(models.FilterSales(ds.Sales, f), key, pick))
		case "expenses":
			key, okKey := reports.ExpenseKey(c.DefaultQuery("by", "category"))
			pick, okMetric := reports.ExpenseMetric(c.DefaultQuery("metric", "cost"))
			if !okKey || !okMetric {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid by/metric for expense distribution"})
				return
			}
			c.JSON(http.StatusOK, reports.GetDistributionReport(models.FilterExpenses(ds.Expenses, f), key, pick))
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "of must be sales or expenses"})
		}
	})

	export := api.Group("/export")

	export.GET("/sales.csv", func(c *gin.Context) {
		ds, _, _ := holder.get()
		f, ok := bindFilter(c)
		if !ok {
			return
		}
		var buf bytes.Buffer
		if err := reports.ExportSalesCSV(&buf, models.FilterSales(ds.Sales, f)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", `attachment; filename=sales_report.csv`)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
	})

	export.GET("/sales.xlsx", func(c *gin.Context) {
		ds, _, _ := holder.get()
		f, ok := bindFilter(c)
		if !ok {
			return
		}
		var buf bytes.Buffer
		if err := reports.ExportSalesExcel(&buf, models.FilterSales(ds.Sales, f)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", `attachment; filename=sales_report.xlsx`)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	})
}
