package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/acopio/acopio-api/internal/domain/entity"
	"github.com/acopio/acopio-api/internal/domain/repository"
)

var _ repository.LedgerEntryRepository = (*LedgerEntryRepo)(nil)

// psql builder con placeholders $1, $2, ... de PostgreSQL.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// entryColumns columnas del libro en el orden canónico de lectura.
var entryColumns = []string{
	"id", "batch_id", "reference", "good_id", "good_name", "kind",
	"quantity", "unit_rate", "amount", "counterparty", "note", "date",
	"status", "payment_method", "tax_pct", "discount", "final_amount",
	"created_at", "updated_at",
}

// entryRow fila plana del libro; los metadatos de liquidación viven
// desnormalizados en la misma tabla.
type entryRow struct {
	ID            string          `db:"id"`
	BatchID       string          `db:"batch_id"`
	Reference     string          `db:"reference"`
	GoodID        string          `db:"good_id"`
	GoodName      string          `db:"good_name"`
	Kind          string          `db:"kind"`
	Quantity      decimal.Decimal `db:"quantity"`
	UnitRate      decimal.Decimal `db:"unit_rate"`
	Amount        decimal.Decimal `db:"amount"`
	Counterparty  string          `db:"counterparty"`
	Note          string          `db:"note"`
	Date          time.Time       `db:"date"`
	Status        string          `db:"status"`
	PaymentMethod string          `db:"payment_method"`
	TaxPct        decimal.Decimal `db:"tax_pct"`
	Discount      decimal.Decimal `db:"discount"`
	FinalAmount   decimal.Decimal `db:"final_amount"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

func (row *entryRow) toEntity() *entity.LedgerEntry {
	return &entity.LedgerEntry{
		ID:           row.ID,
		BatchID:      row.BatchID,
		Reference:    row.Reference,
		GoodID:       row.GoodID,
		GoodName:     row.GoodName,
		Kind:         row.Kind,
		Quantity:     row.Quantity,
		UnitRate:     row.UnitRate,
		Amount:       row.Amount,
		Counterparty: row.Counterparty,
		Note:         row.Note,
		Date:         row.Date,
		Settlement: entity.Settlement{
			Status:        row.Status,
			PaymentMethod: row.PaymentMethod,
			TaxPct:        row.TaxPct,
			Discount:      row.Discount,
			FinalAmount:   row.FinalAmount,
		},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

// LedgerEntryRepo implementación del puerto LedgerEntryRepository sobre
// PostgreSQL (usable con pool o tx).
type LedgerEntryRepo struct {
	q Querier
}

// NewLedgerEntryRepository construye el adaptador del libro. Pasar pool o tx (Querier).
func NewLedgerEntryRepository(q Querier) *LedgerEntryRepo {
	return &LedgerEntryRepo{q: q}
}

// Create persiste un asiento nuevo.
func (r *LedgerEntryRepo) Create(entry *entity.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (
			id, batch_id, reference, good_id, good_name, kind,
			quantity, unit_rate, amount, counterparty, note, date,
			status, payment_method, tax_pct, discount, final_amount,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.BatchID, entry.Reference, entry.GoodID, entry.GoodName, entry.Kind,
		entry.Quantity, entry.UnitRate, entry.Amount, entry.Counterparty, entry.Note, entry.Date,
		entry.Settlement.Status, entry.Settlement.PaymentMethod, entry.Settlement.TaxPct,
		entry.Settlement.Discount, entry.Settlement.FinalAmount,
		entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// GetByID obtiene un asiento por ID. Sin fila devuelve (nil, nil).
func (r *LedgerEntryRepo) GetByID(id string) (*entity.LedgerEntry, error) {
	return r.getOne(id, false)
}

// GetForUpdate obtiene el asiento y bloquea la fila (SELECT FOR UPDATE).
// Solo tiene sentido dentro de una transacción.
func (r *LedgerEntryRepo) GetForUpdate(id string) (*entity.LedgerEntry, error) {
	return r.getOne(id, true)
}

func (r *LedgerEntryRepo) getOne(id string, forUpdate bool) (*entity.LedgerEntry, error) {
	builder := psql.Select(entryColumns...).From("ledger_entries").Where(sq.Eq{"id": id})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get entry: %w", err)
	}
	var row entryRow
	if err := pgxscan.Get(context.Background(), r.q, &row, query, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ledger entry: %w", err)
	}
	return row.toEntity(), nil
}

// Update persiste todos los campos enmendables de un asiento.
func (r *LedgerEntryRepo) Update(entry *entity.LedgerEntry) error {
	query := `
		UPDATE ledger_entries SET
			good_id = $2, good_name = $3, kind = $4, quantity = $5, unit_rate = $6,
			amount = $7, counterparty = $8, note = $9, date = $10,
			status = $11, payment_method = $12, updated_at = $13
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.GoodID, entry.GoodName, entry.Kind, entry.Quantity, entry.UnitRate,
		entry.Amount, entry.Counterparty, entry.Note, entry.Date,
		entry.Settlement.Status, entry.Settlement.PaymentMethod, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update ledger entry: %w", err)
	}
	return nil
}

// Delete elimina un asiento por ID.
func (r *LedgerEntryRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM ledger_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete ledger entry: %w", err)
	}
	return nil
}

// List lista asientos con filtros dinámicos, más recientes primero.
func (r *LedgerEntryRepo) List(filter repository.EntryFilter) ([]*entity.LedgerEntry, error) {
	builder := psql.Select(entryColumns...).
		From("ledger_entries").
		OrderBy("date DESC", "created_at DESC")
	if len(filter.GoodIDs) > 0 {
		builder = builder.Where(sq.Eq{"good_id": filter.GoodIDs})
	}
	if filter.Kind != "" {
		builder = builder.Where(sq.Eq{"kind": filter.Kind})
	}
	if filter.BatchID != "" {
		builder = builder.Where(sq.Eq{"batch_id": filter.BatchID})
	}
	if filter.From != nil {
		builder = builder.Where(sq.GtOrEq{"date": *filter.From})
	}
	if filter.To != nil {
		builder = builder.Where(sq.LtOrEq{"date": *filter.To})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list entries: %w", err)
	}
	var rows []entryRow
	if err := pgxscan.Select(context.Background(), r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	list := make([]*entity.LedgerEntry, 0, len(rows))
	for i := range rows {
		list = append(list, rows[i].toEntity())
	}
	return list, nil
}
