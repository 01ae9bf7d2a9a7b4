package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/acopio/acopio-api/internal/domain"
	"github.com/acopio/acopio-api/internal/domain/entity"
	"github.com/acopio/acopio-api/internal/domain/repository"
)

var _ repository.GoodRepository = (*GoodRepo)(nil)

// GoodRepo implementación del puerto GoodRepository sobre PostgreSQL (usable con pool o tx).
type GoodRepo struct {
	q Querier
}

// NewGoodRepository construye el adaptador de persistencia para bienes. Pasar pool o tx (Querier).
func NewGoodRepository(q Querier) *GoodRepo {
	return &GoodRepo{q: q}
}

// Create persiste un bien nuevo. La existencia nace en cero.
func (r *GoodRepo) Create(good *entity.Good) error {
	query := `
		INSERT INTO goods (id, name, unit, unit_price, quantity_on_hand, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		good.ID, good.Name, good.Unit, good.UnitPrice, good.QuantityOnHand,
		good.CreatedAt, good.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("insert good: %w", err)
	}
	return nil
}

// GetByID obtiene un bien por ID. Sin fila devuelve (nil, nil).
func (r *GoodRepo) GetByID(id string) (*entity.Good, error) {
	query := `
		SELECT id, name, unit, unit_price, quantity_on_hand, created_at, updated_at
		FROM goods WHERE id = $1`
	var g entity.Good
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&g.ID, &g.Name, &g.Unit, &g.UnitPrice, &g.QuantityOnHand, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get good: %w", err)
	}
	return &g, nil
}

// GetByName obtiene un bien por nombre sin distinguir mayúsculas. Sin fila devuelve (nil, nil).
func (r *GoodRepo) GetByName(name string) (*entity.Good, error) {
	query := `
		SELECT id, name, unit, unit_price, quantity_on_hand, created_at, updated_at
		FROM goods WHERE LOWER(name) = LOWER($1)`
	var g entity.Good
	err := r.q.QueryRow(context.Background(), query, name).Scan(
		&g.ID, &g.Name, &g.Unit, &g.UnitPrice, &g.QuantityOnHand, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get good by name: %w", err)
	}
	return &g, nil
}

// Update actualiza nombre, unidad y precio. La existencia no se toca aquí
// (se maneja vía AdjustQuantity).
func (r *GoodRepo) Update(good *entity.Good) error {
	query := `
		UPDATE goods SET name = $2, unit = $3, unit_price = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		good.ID, good.Name, good.Unit, good.UnitPrice, good.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("update good: %w", err)
	}
	return nil
}

// Delete elimina un bien por ID. Si el libro lo referencia, falla con ErrConflict.
func (r *GoodRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM goods WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete good: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista bienes con paginación, ordenados por nombre.
func (r *GoodRepo) List(limit, offset int) ([]*entity.Good, error) {
	query := `
		SELECT id, name, unit, unit_price, quantity_on_hand, created_at, updated_at
		FROM goods ORDER BY name ASC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list goods: %w", err)
	}
	defer rows.Close()
	var list []*entity.Good
	for rows.Next() {
		var g entity.Good
		if err := rows.Scan(&g.ID, &g.Name, &g.Unit, &g.UnitPrice, &g.QuantityOnHand, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan good: %w", err)
		}
		list = append(list, &g)
	}
	return list, rows.Err()
}

// Count cuenta bienes; con ids no vacío, solo los de ese subconjunto.
func (r *GoodRepo) Count(ids []string) (int, error) {
	var count int
	var err error
	if len(ids) == 0 {
		err = r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM goods`).Scan(&count)
	} else {
		err = r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM goods WHERE id = ANY($1)`, ids).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("count goods: %w", err)
	}
	return count, nil
}

// AdjustQuantity aplica el delta con un incremento atómico en la base y
// devuelve la existencia resultante. Jamás leer-modificar-escribir: dos
// asientos concurrentes sobre el mismo bien deben sumar ambos.
func (r *GoodRepo) AdjustQuantity(id string, delta decimal.Decimal) (decimal.Decimal, error) {
	query := `
		UPDATE goods
		SET quantity_on_hand = quantity_on_hand + $2, updated_at = now()
		WHERE id = $1
		RETURNING quantity_on_hand`
	var qty decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, id, delta).Scan(&qty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, domain.ErrNotFound
		}
		return decimal.Zero, fmt.Errorf("adjust good quantity: %w", err)
	}
	return qty, nil
}
