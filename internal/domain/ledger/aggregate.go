package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/acopio/acopio-api/internal/domain/entity"
)

// Granularidades del bucket temporal de la serie de tendencia.
const (
	GranularityDay   = "day"
	GranularityWeek  = "week"
	GranularityMonth = "month"
)

var hundred = decimal.NewFromInt(100)

// DailyPL fila de pérdidas y ganancias de un día calendario.
// La clasificación siempre sale de Kind, nunca del signo de Amount.
type DailyPL struct {
	Day     time.Time       // fecha del evento truncada a día calendario
	Revenue decimal.Decimal // Σ Amount de asientos DISPOSE
	Cost    decimal.Decimal // Σ Amount de asientos ACQUIRE
	Profit  decimal.Decimal // max(Revenue−Cost, 0)
	Loss    decimal.Decimal // max(Cost−Revenue, 0)
	Net     decimal.Decimal // Revenue−Cost
}

// GoodPerf desempeño acumulado de un bien en la ventana consultada.
type GoodPerf struct {
	GoodID         string
	GoodName       string
	AcquiredQty    decimal.Decimal
	AcquiredAmount decimal.Decimal
	DisposedQty    decimal.Decimal
	DisposedAmount decimal.Decimal
	NetProfit      decimal.Decimal // DisposedAmount − AcquiredAmount
	ProfitMargin   decimal.Decimal // NetProfit/DisposedAmount×100; exactamente 0 si no hubo ventas
}

// TrendPoint bucket de la serie de tendencia (día, semana o mes).
type TrendPoint struct {
	Bucket        string // "2006-01-02" para day/week (inicio de semana) o "2006-01" para month
	AcquireAmount decimal.Decimal
	AcquireQty    decimal.Decimal
	DisposeAmount decimal.Decimal
	DisposeQty    decimal.Decimal
	Profit        decimal.Decimal // DisposeAmount − AcquireAmount
	Entries       int
}

// Summary consolidado de una sola fila sobre la ventana filtrada.
type Summary struct {
	GoodCount    int
	EntryCount   int
	AcquireCount int
	DisposeCount int
	AcquireTotal decimal.Decimal
	DisposeTotal decimal.Decimal
	NetProfit    decimal.Decimal
	ProfitMargin decimal.Decimal
	From         time.Time
	To           time.Time
}

// truncateDay recorta el timestamp del evento a su día calendario, conservando
// la zona del propio asiento (sin corrimientos adicionales de huso).
func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DailyProfitLoss pliega los asientos en buckets por día calendario del evento.
// Los días sin asientos se omiten (no se rellenan con ceros). El resultado
// queda ordenado ascendente por día; la entrada nunca se modifica.
func DailyProfitLoss(entries []entity.LedgerEntry) []DailyPL {
	buckets := make(map[time.Time]*DailyPL)
	for _, e := range entries {
		day := truncateDay(e.Date)
		b, ok := buckets[day]
		if !ok {
			b = &DailyPL{Day: day}
			buckets[day] = b
		}
		switch e.Kind {
		case entity.KindDispose:
			b.Revenue = b.Revenue.Add(e.Amount)
		case entity.KindAcquire:
			b.Cost = b.Cost.Add(e.Amount)
		}
	}

	result := make([]DailyPL, 0, len(buckets))
	for _, b := range buckets {
		b.Net = b.Revenue.Sub(b.Cost)
		if b.Net.IsPositive() {
			b.Profit = b.Net
		}
		if b.Net.IsNegative() {
			b.Loss = b.Net.Neg()
		}
		result = append(result, *b)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Day.Before(result[j].Day) })
	return result
}

// GoodPerformance agrupa los asientos por bien y calcula compras, ventas,
// utilidad neta y margen. Orden: margen descendente, con desempate estable
// por ID de bien ascendente. Margen exactamente 0 cuando no hubo ventas
// (jamás NaN ni infinito).
func GoodPerformance(entries []entity.LedgerEntry) []GoodPerf {
	groups := make(map[string]*GoodPerf)
	for _, e := range entries {
		g, ok := groups[e.GoodID]
		if !ok {
			g = &GoodPerf{GoodID: e.GoodID, GoodName: e.GoodName}
			groups[e.GoodID] = g
		}
		switch e.Kind {
		case entity.KindAcquire:
			g.AcquiredQty = g.AcquiredQty.Add(e.Quantity)
			g.AcquiredAmount = g.AcquiredAmount.Add(e.Amount)
		case entity.KindDispose:
			g.DisposedQty = g.DisposedQty.Add(e.Quantity)
			g.DisposedAmount = g.DisposedAmount.Add(e.Amount)
		}
	}

	result := make([]GoodPerf, 0, len(groups))
	for _, g := range groups {
		g.NetProfit = g.DisposedAmount.Sub(g.AcquiredAmount)
		if g.DisposedAmount.IsPositive() {
			g.ProfitMargin = g.NetProfit.Div(g.DisposedAmount).Mul(hundred)
		}
		result = append(result, *g)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].ProfitMargin.Equal(result[j].ProfitMargin) {
			return result[i].ProfitMargin.GreaterThan(result[j].ProfitMargin)
		}
		return result[i].GoodID < result[j].GoodID
	})
	return result
}

// bucketKey calcula la clave del bucket para la granularidad pedida.
// Semana: fecha del evento menos su offset de día de semana, es decir el
// domingo que ancla esa semana calendario.
func bucketKey(t time.Time, granularity string) string {
	day := truncateDay(t)
	switch granularity {
	case GranularityWeek:
		return day.AddDate(0, 0, -int(day.Weekday())).Format("2006-01-02")
	case GranularityMonth:
		return day.Format("2006-01")
	default:
		return day.Format("2006-01-02")
	}
}

// TrendSeries pliega los asientos en la serie temporal de la granularidad
// indicada. Orden ascendente por clave de bucket (los formatos usados ordenan
// lexicográficamente igual que cronológicamente).
func TrendSeries(entries []entity.LedgerEntry, granularity string) []TrendPoint {
	buckets := make(map[string]*TrendPoint)
	for _, e := range entries {
		key := bucketKey(e.Date, granularity)
		b, ok := buckets[key]
		if !ok {
			b = &TrendPoint{Bucket: key}
			buckets[key] = b
		}
		switch e.Kind {
		case entity.KindAcquire:
			b.AcquireAmount = b.AcquireAmount.Add(e.Amount)
			b.AcquireQty = b.AcquireQty.Add(e.Quantity)
		case entity.KindDispose:
			b.DisposeAmount = b.DisposeAmount.Add(e.Amount)
			b.DisposeQty = b.DisposeQty.Add(e.Quantity)
		}
		b.Entries++
	}

	result := make([]TrendPoint, 0, len(buckets))
	for _, b := range buckets {
		b.Profit = b.DisposeAmount.Sub(b.AcquireAmount)
		result = append(result, *b)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Bucket < result[j].Bucket })
	return result
}

// Summarize consolida la ventana en una sola fila. goodCount lo resuelve el
// caller (total de bienes, o del subconjunto pedido). Una ventana vacía
// produce un resumen en ceros, nunca un error.
func Summarize(entries []entity.LedgerEntry, goodCount int, from, to time.Time) Summary {
	s := Summary{GoodCount: goodCount, EntryCount: len(entries), From: from, To: to}
	for _, e := range entries {
		switch e.Kind {
		case entity.KindAcquire:
			s.AcquireCount++
			s.AcquireTotal = s.AcquireTotal.Add(e.Amount)
		case entity.KindDispose:
			s.DisposeCount++
			s.DisposeTotal = s.DisposeTotal.Add(e.Amount)
		}
	}
	s.NetProfit = s.DisposeTotal.Sub(s.AcquireTotal)
	if s.DisposeTotal.IsPositive() {
		s.ProfitMargin = s.NetProfit.Div(s.DisposeTotal).Mul(hundred)
	}
	return s
}
