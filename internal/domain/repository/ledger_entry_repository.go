package repository

import (
	"time"

	"github.com/acopio/acopio-api/internal/domain/entity"
)

// EntryFilter filtros para listar asientos del libro.
type EntryFilter struct {
	GoodIDs []string
	Kind    string // vacío = ambos
	BatchID string
	From    *time.Time
	To      *time.Time
	Limit   int
	Offset  int
}

// LedgerEntryRepository define el puerto de persistencia para LedgerEntry.
// GetForUpdate solo tiene sentido dentro de una transacción: serializa
// enmiendas concurrentes sobre el mismo asiento.
type LedgerEntryRepository interface {
	Create(entry *entity.LedgerEntry) error
	GetByID(id string) (*entity.LedgerEntry, error)
	// GetForUpdate obtiene el asiento y bloquea la fila (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.LedgerEntry, error)
	Update(entry *entity.LedgerEntry) error
	Delete(id string) error
	List(filter EntryFilter) ([]*entity.LedgerEntry, error)
}
