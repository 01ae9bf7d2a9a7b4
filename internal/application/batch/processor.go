// Package batch implementa el procesador de lotes: una remisión de varias
// líneas que se valida completa y se confirma completa, nunca a medias.
package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/acopio/acopio-api/internal/application/dto"
	appledger "github.com/acopio/acopio-api/internal/application/ledger"
	"github.com/acopio/acopio-api/internal/domain"
	"github.com/acopio/acopio-api/internal/domain/entity"
	"github.com/acopio/acopio-api/internal/domain/repository"
)

var hundred = decimal.NewFromInt(100)

// LedgerUseCase es lo que el procesador necesita del reconciliador: crear un
// asiento dentro de la transacción del lote (integración lote-inventario).
type LedgerUseCase interface {
	CreateInTx(
		entryRepo repository.LedgerEntryRepository,
		goodRepo repository.GoodRepository,
		entry *entity.LedgerEntry,
	) error
}

// ProcessorUseCase aplica una lista ordenada de altas de asiento como una
// unidad lógica, con una sola cifra de liquidación para todo el lote.
type ProcessorUseCase struct {
	txRunner appledger.TxRunner
	ledgerUC LedgerUseCase
	goodRepo repository.GoodRepository
}

// NewProcessorUseCase construye el caso de uso.
func NewProcessorUseCase(txRunner appledger.TxRunner, ledgerUC LedgerUseCase, goodRepo repository.GoodRepository) *ProcessorUseCase {
	return &ProcessorUseCase{txRunner: txRunner, ledgerUC: ledgerUC, goodRepo: goodRepo}
}

// ProcessBatch valida todas las líneas y, solo si todas pasan, las confirma
// en una única transacción. Cualquier línea inválida deja la base intacta.
//
// Chequeo de stock: cada línea DISPOSE no puede exceder la existencia actual
// del bien al momento de validar. Es un chequeo consultivo: dos lotes
// concurrentes pueden pasar ambos y llevar la existencia bajo cero (política
// de negativo permitido; el reconciliador lo alerta).
func (uc *ProcessorUseCase) ProcessBatch(ctx context.Context, in dto.ProcessBatchRequest) (*dto.BatchResult, error) {
	if len(in.Lines) == 0 || in.Counterparty == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}

	// Resolver y validar todas las líneas antes de tocar la base.
	goodsByName := make(map[string]*entity.Good)
	disposeDemand := make(map[string]decimal.Decimal) // goodID -> qty total a despachar
	for _, line := range in.Lines {
		if !entity.ValidKind(line.Kind) || !line.Quantity.IsPositive() || !line.UnitRate.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		if line.GoodName == "" {
			return nil, domain.ErrInvalidInput
		}
		good, ok := goodsByName[line.GoodName]
		if !ok {
			var err error
			good, err = uc.goodRepo.GetByName(line.GoodName)
			if err != nil {
				return nil, err
			}
			if good == nil {
				return nil, domain.ErrNotFound
			}
			goodsByName[line.GoodName] = good
		}
		if line.Kind == entity.KindDispose {
			disposeDemand[good.ID] = disposeDemand[good.ID].Add(line.Quantity)
		}
	}
	for _, good := range goodsByName {
		if demand, ok := disposeDemand[good.ID]; ok && demand.GreaterThan(good.QuantityOnHand) {
			return nil, domain.ErrInsufficientStock
		}
	}

	// Cifras agregadas del lote.
	var acquireTotal, disposeTotal decimal.Decimal
	for _, line := range in.Lines {
		amount := line.Quantity.Mul(line.UnitRate)
		if line.Kind == entity.KindAcquire {
			acquireTotal = acquireTotal.Add(amount)
		} else {
			disposeTotal = disposeTotal.Add(amount)
		}
	}
	grossTotal := acquireTotal.Add(disposeTotal) // base del impuesto
	netAmount := disposeTotal.Sub(acquireTotal)
	tax := grossTotal.Mul(in.TaxPct).Div(hundred)
	final := finalSettlement(acquireTotal, disposeTotal, netAmount, tax, in.Discount)

	batchID := uuid.New().String()
	reference := in.Reference
	if reference == "" {
		reference = fmt.Sprintf("LOT-%d", now.Unix())
	}
	status := in.Status
	if status == "" {
		status = entity.SettlementPending
	}
	settlement := entity.Settlement{
		Status:        status,
		PaymentMethod: in.PaymentMethod,
		TaxPct:        in.TaxPct,
		Discount:      in.Discount,
		FinalAmount:   final,
	}

	entries := make([]*entity.LedgerEntry, 0, len(in.Lines))
	for _, line := range in.Lines {
		good := goodsByName[line.GoodName]
		entries = append(entries, &entity.LedgerEntry{
			ID:           uuid.New().String(),
			BatchID:      batchID,
			Reference:    reference,
			GoodID:       good.ID,
			GoodName:     good.Name,
			Kind:         line.Kind,
			Quantity:     line.Quantity,
			UnitRate:     line.UnitRate,
			Amount:       line.Quantity.Mul(line.UnitRate),
			Counterparty: in.Counterparty,
			Note:         line.Note,
			Date:         date,
			Settlement:   settlement,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	// Una sola transacción para todas las líneas: si una falla, rollback total.
	err := uc.txRunner.Run(ctx, func(entryRepo repository.LedgerEntryRepository, goodRepo repository.GoodRepository) error {
		for _, entry := range entries {
			if err := uc.ledgerUC.CreateInTx(entryRepo, goodRepo, entry); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	items := make([]dto.EntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, appledger.ToEntryResponse(e))
	}
	return &dto.BatchResult{
		BatchID:      batchID,
		Reference:    reference,
		Entries:      items,
		AcquireTotal: acquireTotal,
		DisposeTotal: disposeTotal,
		GrossTotal:   grossTotal,
		NetAmount:    netAmount,
		Tax:          tax,
		Discount:     in.Discount,
		FinalAmount:  final,
	}, nil
}

// finalSettlement cifra final de liquidación según la composición del lote.
// Regla de negocio deliberada: impuesto sobre el total bruto del lote y
// descuento plano una sola vez, nunca prorrateados por línea.
//
//	solo compras: −(compras + impuesto − descuento)   (el dinero sale)
//	solo ventas:  ventas + impuesto − descuento       (el dinero entra)
//	mixto:        neto + signo(neto)·impuesto − descuento
func finalSettlement(acquireTotal, disposeTotal, netAmount, tax, discount decimal.Decimal) decimal.Decimal {
	switch {
	case disposeTotal.IsZero():
		return acquireTotal.Add(tax).Sub(discount).Neg()
	case acquireTotal.IsZero():
		return disposeTotal.Add(tax).Sub(discount)
	default:
		final := netAmount
		if netAmount.IsPositive() {
			final = final.Add(tax)
		} else if netAmount.IsNegative() {
			final = final.Sub(tax)
		}
		return final.Sub(discount)
	}
}
