package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense categories assigned when the sheet has no explicit category column.
const (
	CategoryMerchandise    = "Compra de Mercadoria"
	CategoryGeneralExpense = "Despesa Geral"
)

type ExpenseKind int

const (
	ExpenseGeneral ExpenseKind = iota
	ExpenseMerchandise
)

// MerchandiseDetail carries the product-purchase fields that only exist when
// an expense row represents bought merchandise.
type MerchandiseDetail struct {
	ProductName        string          `json:"productName"`
	Flavor             string          `json:"flavor,omitempty"`
	Size               string          `json:"size,omitempty"`
	Quantity           int             `json:"quantity"`
	GrossPurchaseValue decimal.Decimal `json:"grossPurchaseValue"`
	UnitPurchaseValue  decimal.Decimal `json:"unitPurchaseValue"`
}

// ExpenseRecord is one purchase/cost line from the expense sheet. A row with
// a product name is a merchandise purchase and carries Merchandise; any other
// row is a general expense and Merchandise is nil. FinalPurchaseValue is the
// authoritative amount and is always present on records that survived
// ingestion.
type ExpenseRecord struct {
	ID                 string             `json:"id"`
	Nota               string             `json:"nota,omitempty"`
	PurchaseDate       time.Time          `json:"purchaseDate"`
	FinalPurchaseValue decimal.Decimal    `json:"finalPurchaseValue"`
	Category           string             `json:"category"`
	Description        string             `json:"description,omitempty"`
	Merchandise        *MerchandiseDetail `json:"merchandise,omitempty"`
}

func (e *ExpenseRecord) Kind() ExpenseKind {
	if e.Merchandise != nil {
		return ExpenseMerchandise
	}
	return ExpenseGeneral
}

// ProductName returns the purchased product's name, or "" for general
// expenses. Aggregators rely on the empty key to exclude non-merchandise
// rows from product groupings.
func (e *ExpenseRecord) ProductName() string {
	if e.Merchandise == nil {
		return ""
	}
	return e.Merchandise.ProductName
}

// Quantity returns the purchased item count, 0 for general expenses.
func (e *ExpenseRecord) Quantity() int {
	if e.Merchandise == nil {
		return 0
	}
	return e.Merchandise.Quantity
}
