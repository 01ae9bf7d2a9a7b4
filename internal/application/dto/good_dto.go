package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateGoodRequest entrada para registrar un bien (acción administrativa).
type CreateGoodRequest struct {
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// UpdateGoodRequest entrada para actualizar un bien. QuantityOnHand no se
// puede tocar por aquí: solo el reconciliador la mueve.
type UpdateGoodRequest struct {
	Name      *string          `json:"name"`
	Unit      *string          `json:"unit"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// GoodResponse salida de un bien.
type GoodResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Unit           string          `json:"unit"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	QuantityOnHand decimal.Decimal `json:"quantity_on_hand"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// GoodListResponse lista paginada de bienes.
type GoodListResponse struct {
	Items []GoodResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
