package ingestion

// FieldKind tags how a mapped cell is decoded. The record builders dispatch
// on it instead of inspecting cell contents.
type FieldKind int

const (
	FieldString FieldKind = iota
	FieldDate
	FieldCurrency
	FieldInteger
)

// Canonical field names for the two record shapes.
const (
	fieldClientType    = "clientType"
	fieldSaleDate      = "saleDate"
	fieldProductName   = "productName"
	fieldSku           = "sku"
	fieldFlavor        = "flavor"
	fieldSize          = "size"
	fieldQuantity      = "quantity"
	fieldGrossValue    = "grossValue"
	fieldPurchaseValue = "purchaseValue"
	fieldNetValue      = "netValue"

	fieldNota               = "nota"
	fieldPurchaseDate       = "purchaseDate"
	fieldGrossPurchaseValue = "grossPurchaseValue"
	fieldFinalPurchaseValue = "finalPurchaseValue"
	fieldUnitPurchaseValue  = "unitPurchaseValue"
	fieldCategory           = "category"
	fieldDescription        = "description"
)

type columnMapping struct {
	alias string // already normalized (lowercase, no accents, no spaces)
	field string
	kind  FieldKind
}

// Alias tables are static read-only configuration: several header spellings
// map onto one canonical field. Order matters — when a sheet carries two
// aliases of the same field, the later table entry wins. Unknown headers are
// simply never looked up.

var salesColumns = []columnMapping{
	{"tipodecliente", fieldClientType, FieldString},
	{"clientetype", fieldClientType, FieldString},
	{"datadavenda", fieldSaleDate, FieldDate},
	{"data", fieldSaleDate, FieldDate},
	{"produtos", fieldProductName, FieldString},
	{"produto", fieldProductName, FieldString},
	{"sku", fieldSku, FieldString},
	{"sabor", fieldFlavor, FieldString},
	{"tamanho", fieldSize, FieldString},
	{"quantidade", fieldQuantity, FieldInteger},
	{"qtd", fieldQuantity, FieldInteger},
	{"valorbruto", fieldGrossValue, FieldCurrency},
	{"receitabruta", fieldGrossValue, FieldCurrency},
	{"valordecompra", fieldPurchaseValue, FieldCurrency},
	{"custo", fieldPurchaseValue, FieldCurrency},
	{"valorliquido", fieldNetValue, FieldCurrency},
}

var expenseColumns = []columnMapping{
	{"nota", fieldNota, FieldString},
	{"estabelecimento", fieldNota, FieldString},
	{"fornecedor", fieldNota, FieldString},
	{"datadacompra", fieldPurchaseDate, FieldDate},
	{"datadespesa", fieldPurchaseDate, FieldDate},
	{"data", fieldPurchaseDate, FieldDate},
	{"produtos", fieldProductName, FieldString},
	{"produto", fieldProductName, FieldString},
	{"item", fieldProductName, FieldString},
	{"sabor", fieldFlavor, FieldString},
	{"tamanho", fieldSize, FieldString},
	{"quantidade", fieldQuantity, FieldInteger},
	{"qtd", fieldQuantity, FieldInteger},
	{"valorbruto", fieldGrossPurchaseValue, FieldCurrency},
	{"valorfinaldecompra", fieldFinalPurchaseValue, FieldCurrency},
	{"valordespesa", fieldFinalPurchaseValue, FieldCurrency},
	{"valor", fieldFinalPurchaseValue, FieldCurrency},
	{"custototal", fieldFinalPurchaseValue, FieldCurrency},
	{"valorunitario", fieldUnitPurchaseValue, FieldCurrency},
	{"precounitario", fieldUnitPurchaseValue, FieldCurrency},
	{"categoria", fieldCategory, FieldString},
	{"descricao", fieldDescription, FieldString},
}
