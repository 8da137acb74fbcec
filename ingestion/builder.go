package ingestion

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/molekadoces/dashboard_backend/config"
	"github.com/molekadoces/dashboard_backend/models"
	"github.com/molekadoces/dashboard_backend/utils"
)

// rawRow maps normalized headers onto their cell text for one data row.
type rawRow map[string]string

func newRawRow(headers []string, cells []string) rawRow {
	row := make(rawRow, len(headers))
	for i, h := range headers {
		if i < len(cells) {
			row[h] = cells[i]
		} else {
			row[h] = ""
		}
	}
	return row
}

func normalizeHeaders(raw []string) []string {
	out := make([]string, len(raw))
	for i, h := range raw {
		out[i] = utils.NormalizeKey(h)
	}
	return out
}

func recordID(prefix string, rowIdx int) string {
	return fmt.Sprintf("%s-%d-%s", prefix, rowIdx, uuid.NewString()[:8])
}

// buildSaleRecord maps one data row into a SaleRecord. rowNum is the
// 1-based sheet row (headers are row 1) and only used for diagnostics.
// Returns nil when the row fails the essential-field checks; that is a
// silent-drop, never an error.
func buildSaleRecord(row rawRow, rowIdx, rowNum int) *models.SaleRecord {
	sale := &models.SaleRecord{
		ID:            recordID("sale", rowIdx),
		SaleDate:      models.SentinelDate,
		GrossValue:    decimal.Zero,
		PurchaseValue: decimal.Zero,
		NetValue:      decimal.Zero,
	}
	netExplicit := false

	for _, col := range salesColumns {
		cell, ok := row[col.alias]
		if !ok || strings.TrimSpace(cell) == "" {
			continue
		}
		switch col.kind {
		case FieldDate:
			sale.SaleDate = models.DecodeCellDate(cell)
		case FieldInteger:
			sale.Quantity = models.ParseQuantity(cell)
		case FieldCurrency:
			v := models.ParseCurrency(cell)
			switch col.field {
			case fieldGrossValue:
				sale.GrossValue = v
			case fieldPurchaseValue:
				sale.PurchaseValue = v
			case fieldNetValue:
				sale.NetValue = v
				netExplicit = true
			}
		default:
			v := strings.TrimSpace(cell)
			switch col.field {
			case fieldClientType:
				sale.ClientType = v
			case fieldProductName:
				sale.ProductName = v
			case fieldSku:
				sale.Sku = v
			case fieldFlavor:
				sale.Flavor = v
			case fieldSize:
				sale.Size = v
			}
		}
	}

	if sale.ClientType == "" {
		sale.ClientType = models.UnknownClientType
	}
	if sale.ProductName == "" {
		sale.ProductName = models.UnknownProduct
	}
	if sale.Flavor == "" {
		sale.Flavor = models.UnknownFlavor
	}
	if sale.Sku == "" {
		sale.Sku = models.UnknownSku
	}
	if !netExplicit {
		sale.NetValue = sale.GrossValue.Sub(sale.PurchaseValue).Round(2)
	}

	if models.IsSentinel(sale.SaleDate) {
		logRejection("buildSaleRecord", rowNum, "sale date could not be decoded")
		return nil
	}
	return sale
}

// buildExpenseRecord maps one data row into an ExpenseRecord. Rows without a
// resolvable purchase date or a mapped final purchase value are dropped.
func buildExpenseRecord(row rawRow, rowIdx, rowNum int) *models.ExpenseRecord {
	expense := &models.ExpenseRecord{
		ID:                 recordID("expense", rowIdx),
		PurchaseDate:       models.SentinelDate,
		FinalPurchaseValue: decimal.Zero,
	}
	detail := &models.MerchandiseDetail{
		GrossPurchaseValue: decimal.Zero,
		UnitPurchaseValue:  decimal.Zero,
	}
	finalExplicit := false

	for _, col := range expenseColumns {
		cell, ok := row[col.alias]
		if !ok || strings.TrimSpace(cell) == "" {
			continue
		}
		switch col.kind {
		case FieldDate:
			expense.PurchaseDate = models.DecodeCellDate(cell)
		case FieldInteger:
			detail.Quantity = models.ParseQuantity(cell)
		case FieldCurrency:
			v := models.ParseCurrency(cell)
			switch col.field {
			case fieldGrossPurchaseValue:
				detail.GrossPurchaseValue = v
			case fieldFinalPurchaseValue:
				expense.FinalPurchaseValue = v
				finalExplicit = true
			case fieldUnitPurchaseValue:
				detail.UnitPurchaseValue = v
			}
		default:
			v := strings.TrimSpace(cell)
			switch col.field {
			case fieldNota:
				expense.Nota = v
			case fieldProductName:
				detail.ProductName = v
			case fieldFlavor:
				detail.Flavor = v
			case fieldSize:
				detail.Size = v
			case fieldCategory:
				expense.Category = v
			case fieldDescription:
				expense.Description = v
			}
		}
	}

	// A product name turns the row into a merchandise purchase; without one
	// the merchandise fields are meaningless and stay off the record.
	if detail.ProductName != "" {
		expense.Merchandise = detail
	}
	if expense.Category == "" {
		if expense.Merchandise != nil {
			expense.Category = models.CategoryMerchandise
		} else {
			expense.Category = models.CategoryGeneralExpense
		}
	}

	if models.IsSentinel(expense.PurchaseDate) {
		logRejection("buildExpenseRecord", rowNum, "purchase date could not be decoded")
		return nil
	}
	if !finalExplicit {
		logRejection("buildExpenseRecord", rowNum, "final purchase value missing")
		return nil
	}
	return expense
}

func logRejection(funcName string, rowNum int, reason string) {
	config.GetLogger().WithFields(logrus.Fields{
		"module":   "ingestion",
		"funcName": funcName,
		"row":      rowNum,
	}).Warn(reason)
}
