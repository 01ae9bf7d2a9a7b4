// Package ledger contiene la lógica pura del libro: regla de signo del delta
// de stock y los plegados de agregación. Sin estado, sin efectos.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/acopio/acopio-api/internal/domain/entity"
)

// StockDelta devuelve el delta con signo que un asiento aplica a la existencia
// del bien: +cantidad para ACQUIRE, −cantidad para DISPOSE. El invariante
// "existencia = neto de todos los deltas aplicados" depende de que todo
// camino de mutación pase por esta regla.
func StockDelta(kind string, quantity decimal.Decimal) decimal.Decimal {
	if kind == entity.KindDispose {
		return quantity.Neg()
	}
	return quantity
}

// ReversalDelta devuelve el delta que deshace un asiento existente.
func ReversalDelta(kind string, quantity decimal.Decimal) decimal.Decimal {
	return StockDelta(kind, quantity).Neg()
}
