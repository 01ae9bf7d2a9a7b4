package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acopio/acopio-api/internal/application/ledger"
	"github.com/acopio/acopio-api/internal/domain"
	"github.com/acopio/acopio-api/internal/domain/entity"
	"github.com/acopio/acopio-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr[T any](v T) *T { return &v }

// newFixture construye el reconciliador sobre el almacén en memoria con un
// bien ya registrado.
func newFixture(t *testing.T) (*ledger.ReconcilerUseCase, *memory.Store, *entity.Good) {
	t.Helper()
	store := memory.NewStore()
	good := &entity.Good{
		ID:        uuid.New().String(),
		Name:      "Maíz",
		Unit:      "kg",
		UnitPrice: d("12"),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, store.GoodRepo().Create(good))
	uc := ledger.NewReconcilerUseCase(store, store.GoodRepo(), store.EntryRepo(), nil)
	return uc, store, good
}

func quantityOnHand(t *testing.T, store *memory.Store, goodID string) decimal.Decimal {
	t.Helper()
	g, err := store.GoodRepo().GetByID(goodID)
	require.NoError(t, err)
	require.NotNil(t, g)
	return g.QuantityOnHand
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta de asientos
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateEntryAjustaExistencia(t *testing.T) {
	uc, store, good := newFixture(t)
	ctx := context.Background()

	entry, err := uc.CreateEntry(ctx, ledger.EntryInput{
		GoodID:       good.ID,
		Kind:         entity.KindAcquire,
		Quantity:     d("100"),
		UnitRate:     d("10"),
		Counterparty: "Finca La Palma",
	})
	require.NoError(t, err)
	assert.True(t, entry.Amount.Equal(d("1000")), "amount por defecto = qty × tarifa")
	assert.Equal(t, good.Name, entry.GoodName, "el nombre del bien se copia al asiento")
	assert.True(t, quantityOnHand(t, store, good.ID).Equal(d("100")))

	_, err = uc.CreateEntry(ctx, ledger.EntryInput{
		GoodID:       good.ID,
		Kind:         entity.KindDispose,
		Quantity:     d("40"),
		UnitRate:     d("15"),
		Counterparty: "Molino Central",
	})
	require.NoError(t, err)
	assert.True(t, quantityOnHand(t, store, good.ID).Equal(d("60")))
}

func TestCreateEntryConAmountExplicito(t *testing.T) {
	uc, _, good := newFixture(t)

	entry, err := uc.CreateEntry(context.Background(), ledger.EntryInput{
		GoodID:       good.ID,
		Kind:         entity.KindAcquire,
		Quantity:     d("10"),
		UnitRate:     d("10"),
		Amount:       ptr(d("95")), // precio pactado distinto de qty × tarifa
		Counterparty: "Finca La Palma",
	})
	require.NoError(t, err)
	assert.True(t, entry.Amount.Equal(d("95")))
}

func TestCreateEntryValidaciones(t *testing.T) {
	uc, store, good := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   ledger.EntryInput
		want error
	}{
		{"tipo inválido", ledger.EntryInput{GoodID: good.ID, Kind: "TRANSFER", Quantity: d("1"), UnitRate: d("1"), Counterparty: "x"}, domain.ErrInvalidInput},
		{"cantidad cero", ledger.EntryInput{GoodID: good.ID, Kind: entity.KindAcquire, Quantity: d("0"), UnitRate: d("1"), Counterparty: "x"}, domain.ErrInvalidInput},
		{"cantidad negativa", ledger.EntryInput{GoodID: good.ID, Kind: entity.KindAcquire, Quantity: d("-5"), UnitRate: d("1"), Counterparty: "x"}, domain.ErrInvalidInput},
		{"tarifa cero", ledger.EntryInput{GoodID: good.ID, Kind: entity.KindAcquire, Quantity: d("1"), UnitRate: d("0"), Counterparty: "x"}, domain.ErrInvalidInput},
		{"sin tercero", ledger.EntryInput{GoodID: good.ID, Kind: entity.KindAcquire, Quantity: d("1"), UnitRate: d("1")}, domain.ErrInvalidInput},
		{"monto cero explícito", ledger.EntryInput{GoodID: good.ID, Kind: entity.KindAcquire, Quantity: d("1"), UnitRate: d("1"), Amount: ptr(d("0")), Counterparty: "x"}, domain.ErrInvalidInput},
		{"bien inexistente", ledger.EntryInput{GoodID: "nope", Kind: entity.KindAcquire, Quantity: d("1"), UnitRate: d("1"), Counterparty: "x"}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreateEntry(ctx, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	// ningún intento fallido tocó la existencia
	assert.True(t, quantityOnHand(t, store, good.ID).IsZero())
}

func TestCreateEntryPermiteStockNegativo(t *testing.T) {
	uc, store, good := newFixture(t)

	// vender sin haber comprado: permitido, la existencia queda negativa
	_, err := uc.CreateEntry(context.Background(), ledger.EntryInput{
		GoodID:       good.ID,
		Kind:         entity.KindDispose,
		Quantity:     d("30"),
		UnitRate:     d("10"),
		Counterparty: "Molino Central",
	})
	require.NoError(t, err)
	assert.True(t, quantityOnHand(t, store, good.ID).Equal(d("-30")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Enmiendas
// ──────────────────────────────────────────────────────────────────────────────

func TestAmendEntryReconciliaExistencia(t *testing.T) {
	uc, store, good := newFixture(t)
	ctx := context.Background()

	_, err := uc.CreateEntry(ctx, ledger.EntryInput{
		GoodID: good.ID, Kind: entity.KindAcquire, Quantity: d("100"), UnitRate: d("10"), Counterparty: "Finca",
	})
	require.NoError(t, err)
	sale, err := uc.CreateEntry(ctx, ledger.EntryInput{
		GoodID: good.ID, Kind: entity.KindDispose, Quantity: d("40"), UnitRate: d("15"), Counterparty: "Molino",
	})
	require.NoError(t, err)
	require.True(t, quantityOnHand(t, store, good.ID).Equal(d("60")))

	// corregir la venta de 40 a 20: la existencia pasa de 60 a 80
	amended, err := uc.AmendEntry(ctx, sale.ID, ledger.EntryPatch{Quantity: ptr(d("20"))})
	require.NoError(t, err)
	assert.True(t, amended.Quantity.Equal(d("20")))
	assert.True(t, amended.Amount.Equal(d("300")), "sin override el monto vuelve a qty × tarifa")
	assert.True(t, quantityOnHand(t, store, good.ID).Equal(d("80")))
}

func TestAmendEntrySinCambiosEsIdempotente(t *testing.T) {
	uc, store, good := newFixture(t)
	ctx := context.Background()

	entry, err := uc.CreateEntry(ctx, ledger.EntryInput{
		GoodID: good.ID, Kind: entity.KindAcquire, Quantity: d("50"), UnitRate: d("8"), Counterparty: "Finca",
	})
	require.NoError(t, err)

	amended, err := uc.AmendEntry(ctx, entry.ID, ledger.EntryPatch{})
	require.NoError(t, err)
	assert.True(t, amended.Quantity.Equal(entry.Quantity))
	assert.True(t, amended.Amount.Equal(entry.Amount))
	assert.True(t, quantityOnHand(t, store, good.ID).Equal(d("50")))
}

func TestAmendEntryCambiaDeBien(t *testing.T) {
	uc, store, good := newFixture(t)
	ctx := context.Background()

	other := &entity.Good{ID: uuid.New().String(), Name: "Café", Unit: "kg", UnitPrice: d("30")}
	require.NoError(t, store.GoodRepo().Create(other))

	entry, err := uc.CreateEntry(ctx, ledger.EntryInput{
		GoodID: good.ID, Kind: entity.KindAcquire, Quantity: d("25"), UnitRate: d("10"), Counterparty: "Finca",
	})
	require.NoError(t, err)

	amended, err := uc.AmendEntry(ctx, entry.ID, ledger.EntryPatch{GoodID: ptr(other.ID)})
	require.NoError(t, err)
	assert.Equal(t, other.ID, amended.GoodID)
	assert.Equal(t, "Café", amended.GoodName)
	assert.True(t, quantityOnHand(t, store, good.ID).IsZero(), "el bien original queda restaurado")
	assert.True(t, quantityOnHand(t, store, other.ID).Equal(d("25")), "el bien destino recibe el delta")
}

func TestAmendEntryCambiaTipo(t *testing.T) {
	uc, store, good := newFixture(t)
	ctx := context.Background()

	entry, err := uc.CreateEntry(ctx, ledger.EntryInput{
		GoodID: good.ID, Kind: entity.KindAcquire, Quantity: d("10"), UnitRate: d("5"), Counterparty: "Finca",
	})
	require.NoError(t, err)
	require.True(t, quantityOnHand(t, store, good.ID).Equal(d("10")))

	// la compra registrada era en realidad una venta
	_, err = uc.AmendEntry(ctx, entry.ID, ledger.EntryPatch{Kind: ptr(entity.KindDispose)})
	require.NoError(t, err)
	assert.True(t, quantityOnHand(t, store, good.ID).Equal(d("-10")))
}

func TestAmendEntryInvalidaNoDejaEfectosParciales(t *testing.T) {
	uc, store, good := newFixture(t)
	ctx := context.Background()

	entry, err := uc.CreateEntry(ctx, ledger.EntryInput{
		GoodID: good.ID, Kind: entity.KindAcquire, Quantity: d("10"), UnitRate: d("5"), Counterparty: "Finca",
	})
	require.NoError(t, err)

	// cantidad inválida: la reversión no puede quedar aplicada a medias
	_, err = uc.AmendEntry(ctx, entry.ID, ledger.EntryPatch{Quantity: ptr(d("-3"))})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, quantityOnHand(t, store, good.ID).Equal(d("10")))

	unchanged, err := uc.GetEntry(ctx, entry.ID)
	require.NoError(t, err)
	assert.True(t, unchanged.Quantity.Equal(d("10")))
}

func TestAmendEntryInexistente(t *testing.T) {
	uc, _, _ := newFixture(t)
	_, err := uc.AmendEntry(context.Background(), uuid.New().String(), ledger.EntryPatch{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Bajas
// ──────────────────────────────────────────────────────────────────────────────

func TestRemoveEntryRevierteDelta(t *testing.T) {
	uc, store, good := newFixture(t)
	ctx := context.Background()

	buy, err := uc.CreateEntry(ctx, ledger.EntryInput{
		GoodID: good.ID, Kind: entity.KindAcquire, Quantity: d("100"), UnitRate: d("10"), Counterparty: "Finca",
	})
	require.NoError(t, err)
	_, err = uc.CreateEntry(ctx, ledger.EntryInput{
		GoodID: good.ID, Kind: entity.KindDispose, Quantity: d("40"), UnitRate: d("15"), Counterparty: "Molino",
	})
	require.NoError(t, err)

	// borrar la compra deja la existencia en -40 (negativo permitido)
	require.NoError(t, uc.RemoveEntry(ctx, buy.ID))
	assert.True(t, quantityOnHand(t, store, good.ID).Equal(d("-40")))

	_, err = uc.GetEntry(ctx, buy.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoveEntryInexistente(t *testing.T) {
	uc, _, _ := newFixture(t)
	err := uc.RemoveEntry(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
