// Package analytics contiene los casos de uso de lectura del motor de
// agregación: P&G diario, desempeño por bien, serie de tendencia y resumen.
package analytics

import (
	"context"
	"time"

	"github.com/acopio/acopio-api/internal/application/dto"
	"github.com/acopio/acopio-api/internal/domain"
	"github.com/acopio/acopio-api/internal/domain/entity"
	"github.com/acopio/acopio-api/internal/domain/ledger"
	"github.com/acopio/acopio-api/internal/domain/repository"
)

const defaultWindowDays = 365 // ventana por defecto: 365 días hacia atrás

// UseCase orquesta las consultas de agregación: resuelve la ventana, trae el
// corte del libro y aplica los plegados puros de domain/ledger. Solo lectura;
// una ventana sin asientos devuelve colecciones vacías, jamás error.
type UseCase struct {
	repo repository.AnalyticsRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.AnalyticsRepository) *UseCase {
	return &UseCase{repo: repo}
}

// resolveFilter valida los parámetros y arma el filtro con la ventana
// resuelta. Fechas malformadas o invertidas fallan con ErrInvalidInput.
func resolveFilter(in dto.AnalyticsRequest) (repository.AnalyticsFilter, error) {
	now := time.Now()

	var end time.Time
	if in.EndDate == "" {
		end = now
	} else {
		parsed, err := time.ParseInLocation("2006-01-02", in.EndDate, now.Location())
		if err != nil {
			return repository.AnalyticsFilter{}, domain.ErrInvalidInput
		}
		end = parsed.Add(24*time.Hour - time.Nanosecond) // inclusive hasta el final del día
	}

	var start time.Time
	if in.StartDate == "" {
		start = end.AddDate(0, 0, -defaultWindowDays)
	} else {
		parsed, err := time.ParseInLocation("2006-01-02", in.StartDate, now.Location())
		if err != nil {
			return repository.AnalyticsFilter{}, domain.ErrInvalidInput
		}
		start = parsed
	}

	if start.After(end) {
		return repository.AnalyticsFilter{}, domain.ErrInvalidInput
	}
	if in.Kind != "" && !entity.ValidKind(in.Kind) {
		return repository.AnalyticsFilter{}, domain.ErrInvalidInput
	}

	return repository.AnalyticsFilter{
		From:    start,
		To:      end,
		GoodIDs: in.GoodIDs,
		Kind:    in.Kind,
	}, nil
}

func periodOf(f repository.AnalyticsFilter) dto.PeriodDTO {
	return dto.PeriodDTO{
		StartDate: f.From.Format("2006-01-02"),
		EndDate:   f.To.Format("2006-01-02"),
	}
}

// ProfitLoss serie de pérdidas y ganancias por día calendario del evento.
func (uc *UseCase) ProfitLoss(ctx context.Context, in dto.AnalyticsRequest) (*dto.ProfitLossResponse, error) {
	filter, err := resolveFilter(in)
	if err != nil {
		return nil, err
	}
	entries, err := uc.repo.ListEntries(ctx, filter)
	if err != nil {
		return nil, err
	}
	days := ledger.DailyProfitLoss(entries)
	out := make([]dto.DailyPLDTO, 0, len(days))
	for _, d := range days {
		out = append(out, dto.DailyPLDTO{
			Date:    d.Day.Format("2006-01-02"),
			Revenue: d.Revenue.Round(2),
			Cost:    d.Cost.Round(2),
			Profit:  d.Profit.Round(2),
			Loss:    d.Loss.Round(2),
			Net:     d.Net.Round(2),
		})
	}
	return &dto.ProfitLossResponse{Period: periodOf(filter), Days: out}, nil
}

// Performance ranking de bienes por margen descendente.
func (uc *UseCase) Performance(ctx context.Context, in dto.AnalyticsRequest) (*dto.PerformanceResponse, error) {
	filter, err := resolveFilter(in)
	if err != nil {
		return nil, err
	}
	entries, err := uc.repo.ListEntries(ctx, filter)
	if err != nil {
		return nil, err
	}
	perf := ledger.GoodPerformance(entries)
	out := make([]dto.GoodPerfDTO, 0, len(perf))
	for _, p := range perf {
		out = append(out, dto.GoodPerfDTO{
			GoodID:         p.GoodID,
			GoodName:       p.GoodName,
			AcquiredQty:    p.AcquiredQty,
			AcquiredAmount: p.AcquiredAmount.Round(2),
			DisposedQty:    p.DisposedQty,
			DisposedAmount: p.DisposedAmount.Round(2),
			NetProfit:      p.NetProfit.Round(2),
			ProfitMargin:   p.ProfitMargin.Round(2),
		})
	}
	return &dto.PerformanceResponse{Period: periodOf(filter), Goods: out}, nil
}

// Trend serie temporal con granularidad day, week o month.
func (uc *UseCase) Trend(ctx context.Context, in dto.TrendRequest) (*dto.TrendResponse, error) {
	granularity := in.Granularity
	if granularity == "" {
		granularity = ledger.GranularityDay
	}
	switch granularity {
	case ledger.GranularityDay, ledger.GranularityWeek, ledger.GranularityMonth:
	default:
		return nil, domain.ErrInvalidInput
	}
	filter, err := resolveFilter(in.AnalyticsRequest)
	if err != nil {
		return nil, err
	}
	entries, err := uc.repo.ListEntries(ctx, filter)
	if err != nil {
		return nil, err
	}
	points := ledger.TrendSeries(entries, granularity)
	out := make([]dto.TrendPointDTO, 0, len(points))
	for _, p := range points {
		out = append(out, dto.TrendPointDTO{
			Bucket:        p.Bucket,
			AcquireAmount: p.AcquireAmount.Round(2),
			AcquireQty:    p.AcquireQty,
			DisposeAmount: p.DisposeAmount.Round(2),
			DisposeQty:    p.DisposeQty,
			Profit:        p.Profit.Round(2),
			Entries:       p.Entries,
		})
	}
	return &dto.TrendResponse{Period: periodOf(filter), Granularity: granularity, Points: out}, nil
}

// Summary consolidado de una sola fila sobre la ventana filtrada.
func (uc *UseCase) Summary(ctx context.Context, in dto.AnalyticsRequest) (*dto.SummaryResponse, error) {
	filter, err := resolveFilter(in)
	if err != nil {
		return nil, err
	}
	entries, err := uc.repo.ListEntries(ctx, filter)
	if err != nil {
		return nil, err
	}
	goodCount, err := uc.repo.CountGoods(ctx, filter.GoodIDs)
	if err != nil {
		return nil, err
	}
	s := ledger.Summarize(entries, goodCount, filter.From, filter.To)
	return &dto.SummaryResponse{
		Period:       periodOf(filter),
		GoodCount:    s.GoodCount,
		EntryCount:   s.EntryCount,
		AcquireCount: s.AcquireCount,
		DisposeCount: s.DisposeCount,
		AcquireTotal: s.AcquireTotal.Round(2),
		DisposeTotal: s.DisposeTotal.Round(2),
		NetProfit:    s.NetProfit.Round(2),
		ProfitMargin: s.ProfitMargin.Round(2),
	}, nil
}
