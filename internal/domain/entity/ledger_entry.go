package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de asiento del libro (compra/venta).
const (
	KindAcquire = "ACQUIRE" // compra: entra mercancía, sale dinero
	KindDispose = "DISPOSE" // venta: sale mercancía, entra dinero
)

// Estados de liquidación de un asiento.
const (
	SettlementPending = "PENDING"
	SettlementPaid    = "PAID"
	SettlementPartial = "PARTIAL"
)

// Settlement metadatos de liquidación. Se arrastran con el asiento pero no
// participan del invariante de stock.
type Settlement struct {
	Status        string
	PaymentMethod string
	TaxPct        decimal.Decimal // porcentaje de impuesto aplicado al lote
	Discount      decimal.Decimal // descuento plano, una sola vez por lote
	FinalAmount   decimal.Decimal // monto final liquidado (con signo de flujo de caja)
}

// LedgerEntry representa un evento fechado de compra o venta contra un bien.
// Amount se guarda siempre sin signo; el signo del flujo lo deriva Kind.
type LedgerEntry struct {
	ID           string
	BatchID      string // agrupa los asientos creados en un mismo lote; vacío si fue individual
	Reference    string // número legible del documento (remisión, lote)
	GoodID       string
	GoodName     string // copia desnormalizada del nombre del bien al momento del asiento
	Kind         string // ACQUIRE | DISPOSE
	Quantity     decimal.Decimal // magnitud positiva, en la unidad del bien
	UnitRate     decimal.Decimal
	Amount       decimal.Decimal // Quantity × UnitRate salvo override explícito; nunca cero ni negativo
	Counterparty string          // nombre libre del tercero (productor/comprador)
	Note         string
	Date         time.Time // fecha del evento: manda en toda la agregación, distinta de CreatedAt
	Settlement   Settlement
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidKind indica si el tipo de asiento es uno de los dos soportados.
func ValidKind(kind string) bool {
	return kind == KindAcquire || kind == KindDispose
}
