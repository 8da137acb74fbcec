package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Placeholder labels applied when the source sheet leaves a categorical
// column empty. They are data, not UI strings: the filter option lists and
// the distribution charts group on them.
const (
	UnknownClientType = "N/A"
	UnknownProduct    = "Produto Desconhecido"
	UnknownFlavor     = "Sabor Desconhecido"
	UnknownSku        = "SKU Desconhecido"
)

// SaleRecord is one transaction line from the revenue sheet. Records are
// created once at ingestion and never mutated afterwards.
type SaleRecord struct {
	ID            string          `json:"id"`
	ClientType    string          `json:"clientType"`
	SaleDate      time.Time       `json:"saleDate"`
	ProductName   string          `json:"productName"`
	Sku           string          `json:"sku"`
	Flavor        string          `json:"flavor"`
	Size          string          `json:"size,omitempty"`
	Quantity      int             `json:"quantity"`
	GrossValue    decimal.Decimal `json:"grossValue"`
	PurchaseValue decimal.Decimal `json:"purchaseValue"`
	NetValue      decimal.Decimal `json:"netValue"`
}
