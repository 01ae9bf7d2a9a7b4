package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Good representa un bien transable del acopio (grano, cosecha, insumo).
// QuantityOnHand es la existencia acumulada derivada del libro: solo se
// modifica vía el delta atómico del reconciliador, nunca con un setter directo.
type Good struct {
	ID             string
	Name           string          // único por nombre, sin distinguir mayúsculas
	Unit           string          // unidad de medida (kg, bulto, tonelada)
	UnitPrice      decimal.Decimal // precio nominal de referencia por unidad
	QuantityOnHand decimal.Decimal // Σ cantidades ACQUIRE − Σ cantidades DISPOSE
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
