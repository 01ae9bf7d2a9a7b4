package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acopio/acopio-api/internal/domain/entity"
	"github.com/acopio/acopio-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el motor de agregación.
// Siempre va contra el pool: la analítica nunca participa de una transacción.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// ListEntries devuelve el corte fechado del libro ordenado por fecha de evento
// ascendente. Los plegados (P&G, desempeño, tendencia) se hacen en el dominio;
// aquí solo se recorta la ventana.
func (r *AnalyticsRepo) ListEntries(ctx context.Context, f repository.AnalyticsFilter) ([]entity.LedgerEntry, error) {
	builder := psql.Select(entryColumns...).
		From("ledger_entries").
		Where(sq.GtOrEq{"date": f.From}).
		Where(sq.LtOrEq{"date": f.To}).
		OrderBy("date ASC", "created_at ASC")
	if len(f.GoodIDs) > 0 {
		builder = builder.Where(sq.Eq{"good_id": f.GoodIDs})
	}
	if f.Kind != "" {
		builder = builder.Where(sq.Eq{"kind": f.Kind})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build analytics query: %w", err)
	}
	var rows []entryRow
	if err := pgxscan.Select(ctx, r.pool, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("analytics.ListEntries: %w", err)
	}
	entries := make([]entity.LedgerEntry, 0, len(rows))
	for i := range rows {
		entries = append(entries, *rows[i].toEntity())
	}
	return entries, nil
}

// CountGoods cuenta los bienes registrados, restringido al subconjunto de ids
// cuando no viene vacío.
func (r *AnalyticsRepo) CountGoods(ctx context.Context, ids []string) (int, error) {
	var count int
	var err error
	if len(ids) == 0 {
		err = r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM goods`).Scan(&count)
	} else {
		err = r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM goods WHERE id = ANY($1)`, ids).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("analytics.CountGoods: %w", err)
	}
	return count, nil
}
