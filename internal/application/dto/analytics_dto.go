package dto

import "github.com/shopspring/decimal"

// ── Query parameters ──────────────────────────────────────────────────────────

// AnalyticsRequest filtros comunes de las consultas de agregación.
// Ventana por defecto: 365 días hacia atrás terminando hoy.
type AnalyticsRequest struct {
	StartDate string   `query:"start_date"` // YYYY-MM-DD
	EndDate   string   `query:"end_date"`   // YYYY-MM-DD
	GoodIDs   []string `query:"good_id"`
	Kind      string   `query:"kind"` // ACQUIRE | DISPOSE | vacío
}

// TrendRequest agrega el selector de granularidad a los filtros comunes.
type TrendRequest struct {
	AnalyticsRequest
	Granularity string `query:"granularity"` // day | week | month (default day)
}

// ── Respuestas ────────────────────────────────────────────────────────────────

// DailyPLDTO fila de pérdidas y ganancias por día.
type DailyPLDTO struct {
	Date    string          `json:"date"` // YYYY-MM-DD
	Revenue decimal.Decimal `json:"revenue"`
	Cost    decimal.Decimal `json:"cost"`
	Profit  decimal.Decimal `json:"profit"`
	Loss    decimal.Decimal `json:"loss"`
	Net     decimal.Decimal `json:"net"`
}

// ProfitLossResponse serie diaria más el período aplicado.
type ProfitLossResponse struct {
	Period PeriodDTO    `json:"period"`
	Days   []DailyPLDTO `json:"days"`
}

// GoodPerfDTO desempeño de un bien, ordenado por margen descendente.
type GoodPerfDTO struct {
	GoodID         string          `json:"good_id"`
	GoodName       string          `json:"good_name"`
	AcquiredQty    decimal.Decimal `json:"acquired_qty"`
	AcquiredAmount decimal.Decimal `json:"acquired_amount"`
	DisposedQty    decimal.Decimal `json:"disposed_qty"`
	DisposedAmount decimal.Decimal `json:"disposed_amount"`
	NetProfit      decimal.Decimal `json:"net_profit"`
	ProfitMargin   decimal.Decimal `json:"profit_margin"` // %, 0 si no hubo ventas
}

// PerformanceResponse ranking de bienes más el período aplicado.
type PerformanceResponse struct {
	Period PeriodDTO     `json:"period"`
	Goods  []GoodPerfDTO `json:"goods"`
}

// TrendPointDTO bucket de la serie de tendencia.
type TrendPointDTO struct {
	Bucket        string          `json:"bucket"`
	AcquireAmount decimal.Decimal `json:"acquire_amount"`
	AcquireQty    decimal.Decimal `json:"acquire_qty"`
	DisposeAmount decimal.Decimal `json:"dispose_amount"`
	DisposeQty    decimal.Decimal `json:"dispose_qty"`
	Profit        decimal.Decimal `json:"profit"`
	Entries       int             `json:"entries"`
}

// TrendResponse serie de tendencia más el período y granularidad aplicados.
type TrendResponse struct {
	Period      PeriodDTO       `json:"period"`
	Granularity string          `json:"granularity"`
	Points      []TrendPointDTO `json:"points"`
}

// SummaryResponse consolidado de una sola fila de la ventana filtrada.
type SummaryResponse struct {
	Period       PeriodDTO       `json:"period"`
	GoodCount    int             `json:"good_count"`
	EntryCount   int             `json:"entry_count"`
	AcquireCount int             `json:"acquire_count"`
	DisposeCount int             `json:"dispose_count"`
	AcquireTotal decimal.Decimal `json:"acquire_total"`
	DisposeTotal decimal.Decimal `json:"dispose_total"`
	NetProfit    decimal.Decimal `json:"net_profit"`
	ProfitMargin decimal.Decimal `json:"profit_margin"`
}
