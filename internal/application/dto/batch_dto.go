package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BatchLineRequest una línea del lote: el bien se referencia por nombre
// (resolución sin distinguir mayúsculas).
type BatchLineRequest struct {
	GoodName string          `json:"good_name"`
	Kind     string          `json:"kind"` // ACQUIRE | DISPOSE
	Quantity decimal.Decimal `json:"quantity"`
	UnitRate decimal.Decimal `json:"unit_rate"`
	Note     string          `json:"note"`
}

// ProcessBatchRequest entrada del procesador de lotes: lista ordenada de
// líneas que comparten tercero, liquidación y un identificador de lote.
type ProcessBatchRequest struct {
	Lines         []BatchLineRequest `json:"lines"`
	Counterparty  string             `json:"counterparty"`
	Reference     string             `json:"reference"` // vacío = se genera
	Date          time.Time          `json:"date"`      // vacía = ahora
	TaxPct        decimal.Decimal    `json:"tax_pct"`   // % sobre el total bruto del lote
	Discount      decimal.Decimal    `json:"discount"`  // plano, una vez por lote
	Status        string             `json:"status"`
	PaymentMethod string             `json:"payment_method"`
}

// BatchResult asientos creados más las cifras agregadas del lote, para
// mostrar o imprimir. FinalAmount lleva signo de flujo de caja: negativo
// cuando el dinero sale (lote de solo compras).
type BatchResult struct {
	BatchID      string          `json:"batch_id"`
	Reference    string          `json:"reference"`
	Entries      []EntryResponse `json:"entries"`
	AcquireTotal decimal.Decimal `json:"acquire_total"`
	DisposeTotal decimal.Decimal `json:"dispose_total"`
	GrossTotal   decimal.Decimal `json:"gross_total"` // base del impuesto
	NetAmount    decimal.Decimal `json:"net_amount"`  // ventas − compras
	Tax          decimal.Decimal `json:"tax"`
	Discount     decimal.Decimal `json:"discount"`
	FinalAmount  decimal.Decimal `json:"final_amount"`
}
