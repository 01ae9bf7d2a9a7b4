// Package memory implementa los puertos de persistencia en memoria, para
// tests y desarrollo sin base de datos. La transacción se simula con
// snapshot y restore bajo un solo lock.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	appledger "github.com/acopio/acopio-api/internal/application/ledger"
	"github.com/acopio/acopio-api/internal/domain"
	"github.com/acopio/acopio-api/internal/domain/entity"
	"github.com/acopio/acopio-api/internal/domain/repository"
)

var _ appledger.TxRunner = (*Store)(nil)
var _ repository.AnalyticsRepository = (*Store)(nil)

// Store guarda bienes y asientos en mapas. Todas las vistas comparten el
// mismo estado; el lock serializa lecturas y escrituras.
type Store struct {
	mu      sync.RWMutex
	goods   map[string]entity.Good
	entries map[string]entity.LedgerEntry
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{
		goods:   make(map[string]entity.Good),
		entries: make(map[string]entity.LedgerEntry),
	}
}

// GoodRepo devuelve la vista GoodRepository atada al almacén (fuera de tx).
func (s *Store) GoodRepo() repository.GoodRepository { return &goodRepo{s: s, locked: false} }

// EntryRepo devuelve la vista LedgerEntryRepository atada al almacén (fuera de tx).
func (s *Store) EntryRepo() repository.LedgerEntryRepository { return &entryRepo{s: s, locked: false} }

// Run simula una transacción: toma el lock, saca un snapshot, ejecuta fn con
// vistas sin lock propio y restaura el snapshot si fn falla.
func (s *Store) Run(_ context.Context, fn func(
	entryRepo repository.LedgerEntryRepository,
	goodRepo repository.GoodRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(&entryRepo{s: s, locked: true}, &goodRepo{s: s, locked: true}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type storeSnapshot struct {
	goods   map[string]entity.Good
	entries map[string]entity.LedgerEntry
}

func (s *Store) snapshot() storeSnapshot {
	goods := make(map[string]entity.Good, len(s.goods))
	for k, v := range s.goods {
		goods[k] = v
	}
	entries := make(map[string]entity.LedgerEntry, len(s.entries))
	for k, v := range s.entries {
		entries[k] = v
	}
	return storeSnapshot{goods: goods, entries: entries}
}

func (s *Store) restore(snap storeSnapshot) {
	s.goods = snap.goods
	s.entries = snap.entries
}

// =============================================================================
// GOODS
// =============================================================================

// goodRepo vista de GoodRepository. Con locked=true asume que Run ya tiene el
// lock (dentro de tx); con locked=false lo toma por operación.
type goodRepo struct {
	s      *Store
	locked bool
}

func (r *goodRepo) Create(good *entity.Good) error {
	if !r.locked {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	for _, g := range r.s.goods {
		if strings.EqualFold(g.Name, good.Name) {
			return domain.ErrDuplicateName
		}
	}
	r.s.goods[good.ID] = *good
	return nil
}

func (r *goodRepo) GetByID(id string) (*entity.Good, error) {
	if !r.locked {
		r.s.mu.RLock()
		defer r.s.mu.RUnlock()
	}
	g, ok := r.s.goods[id]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

func (r *goodRepo) GetByName(name string) (*entity.Good, error) {
	if !r.locked {
		r.s.mu.RLock()
		defer r.s.mu.RUnlock()
	}
	for _, g := range r.s.goods {
		if strings.EqualFold(g.Name, name) {
			out := g
			return &out, nil
		}
	}
	return nil, nil
}

func (r *goodRepo) Update(good *entity.Good) error {
	if !r.locked {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	current, ok := r.s.goods[good.ID]
	if !ok {
		return domain.ErrNotFound
	}
	// la existencia solo se toca con AdjustQuantity
	next := *good
	next.QuantityOnHand = current.QuantityOnHand
	r.s.goods[good.ID] = next
	return nil
}

func (r *goodRepo) Delete(id string) error {
	if !r.locked {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	if _, ok := r.s.goods[id]; !ok {
		return domain.ErrNotFound
	}
	for _, e := range r.s.entries {
		if e.GoodID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.goods, id)
	return nil
}

func (r *goodRepo) List(limit, offset int) ([]*entity.Good, error) {
	if !r.locked {
		r.s.mu.RLock()
		defer r.s.mu.RUnlock()
	}
	all := make([]*entity.Good, 0, len(r.s.goods))
	for _, g := range r.s.goods {
		out := g
		all = append(all, &out)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return paginate(all, limit, offset), nil
}

func (r *goodRepo) Count(ids []string) (int, error) {
	if !r.locked {
		r.s.mu.RLock()
		defer r.s.mu.RUnlock()
	}
	if len(ids) == 0 {
		return len(r.s.goods), nil
	}
	count := 0
	for _, id := range ids {
		if _, ok := r.s.goods[id]; ok {
			count++
		}
	}
	return count, nil
}

func (r *goodRepo) AdjustQuantity(id string, delta decimal.Decimal) (decimal.Decimal, error) {
	if !r.locked {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	g, ok := r.s.goods[id]
	if !ok {
		return decimal.Zero, domain.ErrNotFound
	}
	g.QuantityOnHand = g.QuantityOnHand.Add(delta)
	r.s.goods[id] = g
	return g.QuantityOnHand, nil
}

// =============================================================================
// LEDGER ENTRIES
// =============================================================================

type entryRepo struct {
	s      *Store
	locked bool
}

func (r *entryRepo) Create(entry *entity.LedgerEntry) error {
	if !r.locked {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	r.s.entries[entry.ID] = *entry
	return nil
}

func (r *entryRepo) GetByID(id string) (*entity.LedgerEntry, error) {
	if !r.locked {
		r.s.mu.RLock()
		defer r.s.mu.RUnlock()
	}
	e, ok := r.s.entries[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

// GetForUpdate en memoria equivale a GetByID: el lock del Run ya serializa.
func (r *entryRepo) GetForUpdate(id string) (*entity.LedgerEntry, error) {
	return r.GetByID(id)
}

func (r *entryRepo) Update(entry *entity.LedgerEntry) error {
	if !r.locked {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	if _, ok := r.s.entries[entry.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.entries[entry.ID] = *entry
	return nil
}

func (r *entryRepo) Delete(id string) error {
	if !r.locked {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	delete(r.s.entries, id)
	return nil
}

func (r *entryRepo) List(filter repository.EntryFilter) ([]*entity.LedgerEntry, error) {
	if !r.locked {
		r.s.mu.RLock()
		defer r.s.mu.RUnlock()
	}
	var all []*entity.LedgerEntry
	for _, e := range r.s.entries {
		if !matchesFilter(e, filter) {
			continue
		}
		out := e
		all = append(all, &out)
	}
	// más recientes primero, como el adaptador SQL
	sort.Slice(all, func(i, j int) bool {
		if !all[i].Date.Equal(all[j].Date) {
			return all[i].Date.After(all[j].Date)
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return paginate(all, filter.Limit, filter.Offset), nil
}

func matchesFilter(e entity.LedgerEntry, f repository.EntryFilter) bool {
	if len(f.GoodIDs) > 0 {
		found := false
		for _, id := range f.GoodIDs {
			if e.GoodID == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Kind != "" && e.Kind != f.Kind {
		return false
	}
	if f.BatchID != "" && e.BatchID != f.BatchID {
		return false
	}
	if f.From != nil && e.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && e.Date.After(*f.To) {
		return false
	}
	return true
}

func paginate[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all
}

// =============================================================================
// ANALYTICS
// =============================================================================

// ListEntries corte fechado del libro, fecha de evento ascendente.
func (s *Store) ListEntries(_ context.Context, f repository.AnalyticsFilter) ([]entity.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []entity.LedgerEntry
	for _, e := range s.entries {
		if e.Date.Before(f.From) || e.Date.After(f.To) {
			continue
		}
		if f.Kind != "" && e.Kind != f.Kind {
			continue
		}
		if len(f.GoodIDs) > 0 {
			found := false
			for _, id := range f.GoodIDs {
				if e.GoodID == id {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// CountGoods cuenta bienes, restringido al subconjunto de ids si no viene vacío.
func (s *Store) CountGoods(_ context.Context, ids []string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(ids) == 0 {
		return len(s.goods), nil
	}
	count := 0
	for _, id := range ids {
		if _, ok := s.goods[id]; ok {
			count++
		}
	}
	return count, nil
}
