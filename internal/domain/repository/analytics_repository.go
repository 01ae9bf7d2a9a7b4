package repository

import (
	"context"
	"time"

	"github.com/acopio/acopio-api/internal/domain/entity"
)

// AnalyticsFilter ventana de agregación: rango de fechas obligatorio (lo
// resuelve el caso de uso con sus defaults), bienes y tipo opcionales.
type AnalyticsFilter struct {
	From    time.Time
	To      time.Time
	GoodIDs []string
	Kind    string // vacío = ambos
}

// AnalyticsRepository define las lecturas para el motor de agregación.
// Las implementaciones son read-only: jamás modifican el libro.
type AnalyticsRepository interface {
	// ListEntries devuelve el corte fechado del libro, ordenado por fecha de
	// evento ascendente. Ventana vacía = slice vacío, nunca error.
	ListEntries(ctx context.Context, f AnalyticsFilter) ([]entity.LedgerEntry, error)

	// CountGoods cuenta los bienes registrados, restringido al subconjunto de
	// ids cuando no viene vacío.
	CountGoods(ctx context.Context, ids []string) (int, error)
}
