package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acopio/acopio-api/internal/application/analytics"
	"github.com/acopio/acopio-api/internal/application/batch"
	"github.com/acopio/acopio-api/internal/application/dto"
	"github.com/acopio/acopio-api/internal/application/ledger"
	"github.com/acopio/acopio-api/internal/application/usecase"
	apphttp "github.com/acopio/acopio-api/internal/interfaces/http"
	"github.com/acopio/acopio-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp arma la aplicación completa sobre el almacén en memoria.
func buildTestApp(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	store := memory.NewStore()

	goodUC := usecase.NewGoodUseCase(store.GoodRepo())
	reconcilerUC := ledger.NewReconcilerUseCase(store, store.GoodRepo(), store.EntryRepo(), nil)
	processorUC := batch.NewProcessorUseCase(store, reconcilerUC, store.GoodRepo())
	analyticsUC := analytics.NewUseCase(store)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		GoodUC:      goodUC,
		Reconciler:  reconcilerUC,
		Processor:   processorUC,
		AnalyticsUC: analyticsUC,
	})
	return app, store
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp, raw
}

func createGood(t *testing.T, app *fiber.App, name string) dto.GoodResponse {
	t.Helper()
	resp, raw := doJSON(t, app, http.MethodPost, "/api/goods", map[string]any{
		"name": name, "unit": "kg", "unit_price": "12",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))
	var out dto.GoodResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Goods
// ──────────────────────────────────────────────────────────────────────────────

func TestGoodEndpoints(t *testing.T) {
	app, _ := buildTestApp(t)

	good := createGood(t, app, "Maíz")
	assert.NotEmpty(t, good.ID)

	// duplicado -> 409
	resp, raw := doJSON(t, app, http.MethodPost, "/api/goods", map[string]any{
		"name": "maíz", "unit": "kg", "unit_price": "10",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	var errBody dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &errBody))
	assert.Equal(t, "DUPLICATE", errBody.Code)

	// sin nombre -> 400
	resp, _ = doJSON(t, app, http.MethodPost, "/api/goods", map[string]any{"unit": "kg"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// obtener
	resp, raw = doJSON(t, app, http.MethodGet, "/api/goods/"+good.ID, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var fetched dto.GoodResponse
	require.NoError(t, json.Unmarshal(raw, &fetched))
	assert.Equal(t, "Maíz", fetched.Name)

	// inexistente -> 404
	resp, _ = doJSON(t, app, http.MethodGet, "/api/goods/desconocido", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// eliminar -> 204
	resp, _ = doJSON(t, app, http.MethodDelete, "/api/goods/"+good.ID, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ledger
// ──────────────────────────────────────────────────────────────────────────────

func TestLedgerEndpoints(t *testing.T) {
	app, _ := buildTestApp(t)
	good := createGood(t, app, "Maíz")

	// registrar compra
	resp, raw := doJSON(t, app, http.MethodPost, "/api/ledger/entries", map[string]any{
		"good_id":      good.ID,
		"kind":         "ACQUIRE",
		"quantity":     "100",
		"unit_rate":    "10",
		"counterparty": "Finca La Palma",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))
	var entry dto.EntryResponse
	require.NoError(t, json.Unmarshal(raw, &entry))
	assert.Equal(t, "PENDING", entry.Status, "estado de liquidación por defecto")

	// la existencia quedó reconciliada
	resp, raw = doJSON(t, app, http.MethodGet, "/api/goods/"+good.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var fetched dto.GoodResponse
	require.NoError(t, json.Unmarshal(raw, &fetched))
	assert.Equal(t, "100", fetched.QuantityOnHand.String())

	// enmienda
	resp, raw = doJSON(t, app, http.MethodPut, "/api/ledger/entries/"+entry.ID, map[string]any{
		"quantity": "60",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	var amended dto.EntryResponse
	require.NoError(t, json.Unmarshal(raw, &amended))
	assert.Equal(t, "600", amended.Amount.String())

	// tipo inválido -> 400
	resp, _ = doJSON(t, app, http.MethodPut, "/api/ledger/entries/"+entry.ID, map[string]any{
		"kind": "TRANSFER",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// listado con filtro
	resp, raw = doJSON(t, app, http.MethodGet, "/api/ledger/entries?kind=ACQUIRE", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list dto.EntryListResponse
	require.NoError(t, json.Unmarshal(raw, &list))
	assert.Len(t, list.Items, 1)

	// eliminar revierte la existencia
	resp, _ = doJSON(t, app, http.MethodDelete, "/api/ledger/entries/"+entry.ID, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, raw = doJSON(t, app, http.MethodGet, "/api/goods/"+good.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(raw, &fetched))
	assert.Equal(t, "0", fetched.QuantityOnHand.String())

	// asiento inexistente -> 404
	resp, _ = doJSON(t, app, http.MethodGet, "/api/ledger/entries/desconocido", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Batches
// ──────────────────────────────────────────────────────────────────────────────

func TestBatchEndpoint(t *testing.T) {
	app, _ := buildTestApp(t)
	createGood(t, app, "Maíz")
	createGood(t, app, "Café")

	resp, raw := doJSON(t, app, http.MethodPost, "/api/ledger/batches", map[string]any{
		"counterparty": "Cooperativa El Progreso",
		"tax_pct":      "10",
		"discount":     "50",
		"lines": []map[string]any{
			{"good_name": "Maíz", "kind": "ACQUIRE", "quantity": "100", "unit_rate": "10"},
			{"good_name": "Café", "kind": "ACQUIRE", "quantity": "20", "unit_rate": "50"},
		},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))
	var out dto.BatchResult
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Len(t, out.Entries, 2)
	assert.Equal(t, "-2150", out.FinalAmount.String(), "lote de solo compras: −(2000+200−50)")

	// stock insuficiente -> 409, sin efectos
	resp, raw = doJSON(t, app, http.MethodPost, "/api/ledger/batches", map[string]any{
		"counterparty": "Molino",
		"lines": []map[string]any{
			{"good_name": "Café", "kind": "DISPOSE", "quantity": "500", "unit_rate": "60"},
		},
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	var errBody dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &errBody))
	assert.Equal(t, "INSUFFICIENT_STOCK", errBody.Code)

	// bien inexistente -> 404
	resp, _ = doJSON(t, app, http.MethodPost, "/api/ledger/batches", map[string]any{
		"counterparty": "Molino",
		"lines": []map[string]any{
			{"good_name": "Quinoa", "kind": "ACQUIRE", "quantity": "1", "unit_rate": "1"},
		},
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Analytics
// ──────────────────────────────────────────────────────────────────────────────

func TestAnalyticsEndpoints(t *testing.T) {
	app, _ := buildTestApp(t)
	good := createGood(t, app, "Maíz")

	resp, raw := doJSON(t, app, http.MethodPost, "/api/ledger/entries", map[string]any{
		"good_id": good.ID, "kind": "ACQUIRE", "quantity": "100", "unit_rate": "10",
		"counterparty": "Finca",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))
	resp, raw = doJSON(t, app, http.MethodPost, "/api/ledger/entries", map[string]any{
		"good_id": good.ID, "kind": "DISPOSE", "quantity": "50", "unit_rate": "30",
		"counterparty": "Molino",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))

	resp, raw = doJSON(t, app, http.MethodGet, "/api/analytics/summary", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var sum dto.SummaryResponse
	require.NoError(t, json.Unmarshal(raw, &sum))
	assert.Equal(t, 2, sum.EntryCount)
	assert.Equal(t, "500", sum.NetProfit.String())

	resp, raw = doJSON(t, app, http.MethodGet, "/api/analytics/performance", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var perf dto.PerformanceResponse
	require.NoError(t, json.Unmarshal(raw, &perf))
	require.Len(t, perf.Goods, 1)
	assert.Equal(t, good.ID, perf.Goods[0].GoodID)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/analytics/trend?granularity=day", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// fecha malformada -> 400
	resp, _ = doJSON(t, app, http.MethodGet, "/api/analytics/profit-loss?start_date=ayer", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// granularidad inválida -> 400
	resp, _ = doJSON(t, app, http.MethodGet, "/api/analytics/trend?granularity=quarter", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
