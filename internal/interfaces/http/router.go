package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/acopio/acopio-api/internal/application/analytics"
	"github.com/acopio/acopio-api/internal/application/batch"
	"github.com/acopio/acopio-api/internal/application/ledger"
	"github.com/acopio/acopio-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	GoodUC      *usecase.GoodUseCase
	Reconciler  *ledger.ReconcilerUseCase
	Processor   *batch.ProcessorUseCase
	AnalyticsUC *analytics.UseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Goods
	goods := api.Group("/goods")
	goodHandler := NewGoodHandler(deps.GoodUC)
	goods.Post("/", goodHandler.Create)
	goods.Get("/", goodHandler.List)
	goods.Get("/:id", goodHandler.GetByID)
	goods.Put("/:id", goodHandler.Update)
	goods.Delete("/:id", goodHandler.Delete)

	// Ledger entries
	entries := api.Group("/ledger/entries")
	ledgerHandler := NewLedgerHandler(deps.Reconciler)
	entries.Post("/", ledgerHandler.Create)
	entries.Get("/", ledgerHandler.List)
	entries.Get("/:id", ledgerHandler.GetByID)
	entries.Put("/:id", ledgerHandler.Update)
	entries.Delete("/:id", ledgerHandler.Delete)

	// Batches
	batchHandler := NewBatchHandler(deps.Processor)
	api.Post("/ledger/batches", batchHandler.Process)

	// Analytics
	analyticsGroup := api.Group("/analytics")
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	analyticsGroup.Get("/profit-loss", analyticsHandler.ProfitLoss)
	analyticsGroup.Get("/performance", analyticsHandler.Performance)
	analyticsGroup.Get("/trend", analyticsHandler.Trend)
	analyticsGroup.Get("/summary", analyticsHandler.Summary)
}
