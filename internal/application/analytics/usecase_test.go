package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acopio/acopio-api/internal/application/analytics"
	"github.com/acopio/acopio-api/internal/application/dto"
	"github.com/acopio/acopio-api/internal/domain"
	"github.com/acopio/acopio-api/internal/domain/entity"
	"github.com/acopio/acopio-api/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// seedEntry inserta un asiento directo al almacén, sin pasar por el
// reconciliador (aquí solo interesa la lectura).
func seedEntry(t *testing.T, store *memory.Store, goodID, kind string, qty, amount string, date time.Time) {
	t.Helper()
	require.NoError(t, store.EntryRepo().Create(&entity.LedgerEntry{
		ID:        uuid.New().String(),
		GoodID:    goodID,
		GoodName:  "Maíz",
		Kind:      kind,
		Quantity:  d(qty),
		UnitRate:  d("1"),
		Amount:    d(amount),
		Date:      date,
		CreatedAt: date,
	}))
}

func newFixture(t *testing.T) (*analytics.UseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return analytics.NewUseCase(store), store
}

// ──────────────────────────────────────────────────────────────────────────────
// Resolución de ventana
// ──────────────────────────────────────────────────────────────────────────────

func TestVentanaPorDefectoUltimos365Dias(t *testing.T) {
	uc, store := newFixture(t)
	now := time.Now()

	seedEntry(t, store, "g1", entity.KindDispose, "10", "500", now.AddDate(0, 0, -10))
	seedEntry(t, store, "g1", entity.KindDispose, "10", "999", now.AddDate(0, 0, -400)) // fuera de ventana

	out, err := uc.Summary(context.Background(), dto.AnalyticsRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, out.EntryCount)
	assert.True(t, out.DisposeTotal.Equal(d("500")))
}

func TestVentanaExplicitaIncluyeFinDeDia(t *testing.T) {
	uc, store := newFixture(t)

	// el asiento ocurre a las 18:00 del último día de la ventana
	seedEntry(t, store, "g1", entity.KindDispose, "1", "100",
		time.Date(2025, 3, 15, 18, 0, 0, 0, time.Local))

	out, err := uc.Summary(context.Background(), dto.AnalyticsRequest{
		StartDate: "2025-03-01",
		EndDate:   "2025-03-15",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, out.EntryCount, "end_date es inclusivo hasta el final del día")
}

func TestVentanaInvalida(t *testing.T) {
	uc, _ := newFixture(t)
	ctx := context.Background()

	cases := []dto.AnalyticsRequest{
		{StartDate: "15/03/2025"},                          // formato malo
		{EndDate: "ayer"},                                  // formato malo
		{StartDate: "2025-06-01", EndDate: "2025-05-01"},   // invertida
		{Kind: "TRANSFER"},                                 // tipo inválido
	}
	for _, in := range cases {
		_, err := uc.Summary(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestVentanaVaciaDevuelveColeccionesVacias(t *testing.T) {
	uc, _ := newFixture(t)
	ctx := context.Background()

	pl, err := uc.ProfitLoss(ctx, dto.AnalyticsRequest{})
	require.NoError(t, err)
	assert.Empty(t, pl.Days)

	perf, err := uc.Performance(ctx, dto.AnalyticsRequest{})
	require.NoError(t, err)
	assert.Empty(t, perf.Goods)

	trend, err := uc.Trend(ctx, dto.TrendRequest{})
	require.NoError(t, err)
	assert.Empty(t, trend.Points)

	sum, err := uc.Summary(ctx, dto.AnalyticsRequest{})
	require.NoError(t, err)
	assert.Zero(t, sum.EntryCount)
	assert.True(t, sum.ProfitMargin.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestProfitLossMapeaDias(t *testing.T) {
	uc, store := newFixture(t)

	day := time.Date(2025, 2, 10, 10, 0, 0, 0, time.Local)
	seedEntry(t, store, "g1", entity.KindAcquire, "100", "1000", day)
	seedEntry(t, store, "g1", entity.KindDispose, "40", "600", day)

	out, err := uc.ProfitLoss(context.Background(), dto.AnalyticsRequest{
		StartDate: "2025-02-01", EndDate: "2025-02-28",
	})
	require.NoError(t, err)
	require.Len(t, out.Days, 1)
	assert.Equal(t, "2025-02-10", out.Days[0].Date)
	assert.True(t, out.Days[0].Net.Equal(d("-400")))
	assert.Equal(t, "2025-02-01", out.Period.StartDate)
	assert.Equal(t, "2025-02-28", out.Period.EndDate)
}

func TestPerformanceFiltraPorBien(t *testing.T) {
	uc, store := newFixture(t)
	now := time.Now()

	seedEntry(t, store, "g1", entity.KindDispose, "10", "500", now.AddDate(0, 0, -1))
	seedEntry(t, store, "g2", entity.KindDispose, "10", "700", now.AddDate(0, 0, -1))

	out, err := uc.Performance(context.Background(), dto.AnalyticsRequest{GoodIDs: []string{"g2"}})
	require.NoError(t, err)
	require.Len(t, out.Goods, 1)
	assert.Equal(t, "g2", out.Goods[0].GoodID)
}

func TestTrendGranularidadInvalida(t *testing.T) {
	uc, _ := newFixture(t)
	_, err := uc.Trend(context.Background(), dto.TrendRequest{Granularity: "quarter"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTrendGranularidadPorDefecto(t *testing.T) {
	uc, store := newFixture(t)
	now := time.Now()
	seedEntry(t, store, "g1", entity.KindAcquire, "1", "10", now.AddDate(0, 0, -2))

	out, err := uc.Trend(context.Background(), dto.TrendRequest{})
	require.NoError(t, err)
	assert.Equal(t, "day", out.Granularity)
	require.Len(t, out.Points, 1)
}

func TestSummaryCuentaBienesFiltrados(t *testing.T) {
	uc, store := newFixture(t)
	now := time.Now()

	g1 := &entity.Good{ID: "g1", Name: "Maíz", Unit: "kg"}
	g2 := &entity.Good{ID: "g2", Name: "Café", Unit: "kg"}
	require.NoError(t, store.GoodRepo().Create(g1))
	require.NoError(t, store.GoodRepo().Create(g2))
	seedEntry(t, store, "g1", entity.KindDispose, "1", "100", now.AddDate(0, 0, -1))

	out, err := uc.Summary(context.Background(), dto.AnalyticsRequest{GoodIDs: []string{"g1"}})
	require.NoError(t, err)
	assert.Equal(t, 1, out.GoodCount)

	all, err := uc.Summary(context.Background(), dto.AnalyticsRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, all.GoodCount)
}
