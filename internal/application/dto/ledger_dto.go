package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateEntryRequest entrada para registrar un asiento individual.
// Amount es opcional: si viene nulo se calcula quantity × unit_rate.
// Date vacía = ahora.
type CreateEntryRequest struct {
	GoodID        string           `json:"good_id"`
	Kind          string           `json:"kind"` // ACQUIRE | DISPOSE
	Quantity      decimal.Decimal  `json:"quantity"`
	UnitRate      decimal.Decimal  `json:"unit_rate"`
	Amount        *decimal.Decimal `json:"amount"`
	Counterparty  string           `json:"counterparty"`
	Note          string           `json:"note"`
	Date          time.Time        `json:"date"`
	Reference     string           `json:"reference"`
	Status        string           `json:"status"`
	PaymentMethod string           `json:"payment_method"`
}

// UpdateEntryRequest enmienda parcial de un asiento. Cualquier campo puede
// cambiar, incluidos kind, quantity y el bien destino; el reconciliador
// revierte el delta original y aplica el nuevo en la misma transacción.
type UpdateEntryRequest struct {
	GoodID        *string          `json:"good_id"`
	Kind          *string          `json:"kind"`
	Quantity      *decimal.Decimal `json:"quantity"`
	UnitRate      *decimal.Decimal `json:"unit_rate"`
	Amount        *decimal.Decimal `json:"amount"`
	Counterparty  *string          `json:"counterparty"`
	Note          *string          `json:"note"`
	Date          *time.Time       `json:"date"`
	Status        *string          `json:"status"`
	PaymentMethod *string          `json:"payment_method"`
}

// ListEntriesRequest filtros de consulta para el listado de asientos.
type ListEntriesRequest struct {
	GoodIDs   []string `query:"good_id"`
	Kind      string   `query:"kind"`
	BatchID   string   `query:"batch_id"`
	StartDate string   `query:"start_date"` // YYYY-MM-DD
	EndDate   string   `query:"end_date"`   // YYYY-MM-DD
	PageRequest
}

// EntryResponse salida de un asiento del libro.
type EntryResponse struct {
	ID            string          `json:"id"`
	BatchID       string          `json:"batch_id,omitempty"`
	Reference     string          `json:"reference,omitempty"`
	GoodID        string          `json:"good_id"`
	GoodName      string          `json:"good_name"`
	Kind          string          `json:"kind"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitRate      decimal.Decimal `json:"unit_rate"`
	Amount        decimal.Decimal `json:"amount"`
	Counterparty  string          `json:"counterparty"`
	Note          string          `json:"note,omitempty"`
	Date          time.Time       `json:"date"`
	Status        string          `json:"status,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	TaxPct        decimal.Decimal `json:"tax_pct"`
	Discount      decimal.Decimal `json:"discount"`
	FinalAmount   decimal.Decimal `json:"final_amount"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// EntryListResponse lista paginada de asientos.
type EntryListResponse struct {
	Items []EntryResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
