package repository

import (
	"github.com/shopspring/decimal"

	"github.com/acopio/acopio-api/internal/domain/entity"
)

// GoodRepository define el puerto de persistencia para Good (DIP).
// QuantityOnHand solo se toca con AdjustQuantity; no existe un Update de cantidad.
type GoodRepository interface {
	Create(good *entity.Good) error
	GetByID(id string) (*entity.Good, error)
	// GetByName resuelve un bien por nombre sin distinguir mayúsculas.
	GetByName(name string) (*entity.Good, error)
	Update(good *entity.Good) error
	// Delete falla con ErrConflict si hay asientos que referencian el bien.
	Delete(id string) error
	List(limit, offset int) ([]*entity.Good, error)
	// Count cuenta bienes; con ids no vacío, solo los de ese subconjunto.
	Count(ids []string) (int, error)
	// AdjustQuantity aplica el delta con un incremento atómico en la base
	// (nunca leer-modificar-escribir) y devuelve la existencia resultante.
	AdjustQuantity(id string, delta decimal.Decimal) (decimal.Decimal, error)
}
