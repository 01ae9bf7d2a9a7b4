package ledger

import (
	"context"
	"time"

	"github.com/acopio/acopio-api/internal/application/dto"
	"github.com/acopio/acopio-api/internal/domain"
	"github.com/acopio/acopio-api/internal/domain/entity"
	"github.com/acopio/acopio-api/internal/domain/repository"
)

// CreateFromRequest adapta el request HTTP al caso de uso CreateEntry.
func (uc *ReconcilerUseCase) CreateFromRequest(ctx context.Context, in dto.CreateEntryRequest) (*entity.LedgerEntry, error) {
	status := in.Status
	if status == "" {
		status = entity.SettlementPending
	}
	return uc.CreateEntry(ctx, EntryInput{
		GoodID:       in.GoodID,
		Kind:         in.Kind,
		Quantity:     in.Quantity,
		UnitRate:     in.UnitRate,
		Amount:       in.Amount,
		Counterparty: in.Counterparty,
		Note:         in.Note,
		Date:         in.Date,
		Reference:    in.Reference,
		Settlement: entity.Settlement{
			Status:        status,
			PaymentMethod: in.PaymentMethod,
		},
	})
}

// AmendFromRequest adapta el request HTTP al caso de uso AmendEntry.
func (uc *ReconcilerUseCase) AmendFromRequest(ctx context.Context, id string, in dto.UpdateEntryRequest) (*entity.LedgerEntry, error) {
	return uc.AmendEntry(ctx, id, EntryPatch{
		GoodID:        in.GoodID,
		Kind:          in.Kind,
		Quantity:      in.Quantity,
		UnitRate:      in.UnitRate,
		Amount:        in.Amount,
		Counterparty:  in.Counterparty,
		Note:          in.Note,
		Date:          in.Date,
		Status:        in.Status,
		PaymentMethod: in.PaymentMethod,
	})
}

// ListFromRequest traduce los filtros de query al filtro del repositorio.
func (uc *ReconcilerUseCase) ListFromRequest(ctx context.Context, in dto.ListEntriesRequest) (*dto.EntryListResponse, error) {
	in.DefaultPage()
	filter := repository.EntryFilter{
		GoodIDs: in.GoodIDs,
		Kind:    in.Kind,
		BatchID: in.BatchID,
		Limit:   in.Limit,
		Offset:  in.Offset,
	}
	if in.Kind != "" && !entity.ValidKind(in.Kind) {
		return nil, domain.ErrInvalidInput
	}
	if in.StartDate != "" {
		from, err := time.ParseInLocation("2006-01-02", in.StartDate, time.Local)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filter.From = &from
	}
	if in.EndDate != "" {
		to, err := time.ParseInLocation("2006-01-02", in.EndDate, time.Local)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		to = to.Add(24*time.Hour - time.Nanosecond) // inclusive hasta el final del día
		filter.To = &to
	}
	entries, err := uc.ListEntries(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, ToEntryResponse(e))
	}
	return &dto.EntryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// ToEntryResponse mapea la entidad al DTO de salida.
func ToEntryResponse(e *entity.LedgerEntry) dto.EntryResponse {
	return dto.EntryResponse{
		ID:            e.ID,
		BatchID:       e.BatchID,
		Reference:     e.Reference,
		GoodID:        e.GoodID,
		GoodName:      e.GoodName,
		Kind:          e.Kind,
		Quantity:      e.Quantity,
		UnitRate:      e.UnitRate,
		Amount:        e.Amount,
		Counterparty:  e.Counterparty,
		Note:          e.Note,
		Date:          e.Date,
		Status:        e.Settlement.Status,
		PaymentMethod: e.Settlement.PaymentMethod,
		TaxPct:        e.Settlement.TaxPct,
		Discount:      e.Settlement.Discount,
		FinalAmount:   e.Settlement.FinalAmount,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}
