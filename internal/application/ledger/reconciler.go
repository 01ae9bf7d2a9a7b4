package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/acopio/acopio-api/internal/domain"
	"github.com/acopio/acopio-api/internal/domain/entity"
	domledger "github.com/acopio/acopio-api/internal/domain/ledger"
	"github.com/acopio/acopio-api/internal/domain/repository"
	"github.com/acopio/acopio-api/pkg/logger"
)

// ReconcilerUseCase mantiene el invariante de stock: cada alta, enmienda o
// baja de un asiento reconcilia la existencia del bien afectado dentro de la
// misma transacción, con incremento atómico (nunca leer-modificar-escribir).
type ReconcilerUseCase struct {
	txRunner  TxRunner
	goodRepo  repository.GoodRepository
	entryRepo repository.LedgerEntryRepository
	log       *logger.Logger
}

// NewReconcilerUseCase construye el caso de uso. goodRepo y entryRepo van
// atados al pool (lecturas fuera de tx); las escrituras pasan por txRunner.
func NewReconcilerUseCase(
	txRunner TxRunner,
	goodRepo repository.GoodRepository,
	entryRepo repository.LedgerEntryRepository,
	log *logger.Logger,
) *ReconcilerUseCase {
	return &ReconcilerUseCase{txRunner: txRunner, goodRepo: goodRepo, entryRepo: entryRepo, log: log}
}

// EntryInput entrada para registrar un asiento. Amount nulo = quantity × unit_rate.
type EntryInput struct {
	GoodID       string
	Kind         string
	Quantity     decimal.Decimal
	UnitRate     decimal.Decimal
	Amount       *decimal.Decimal
	Counterparty string
	Note         string
	Date         time.Time // cero = ahora
	BatchID      string
	Reference    string
	Settlement   entity.Settlement
}

// EntryPatch enmienda parcial: los campos nulos conservan el valor original.
type EntryPatch struct {
	GoodID        *string
	Kind          *string
	Quantity      *decimal.Decimal
	UnitRate      *decimal.Decimal
	Amount        *decimal.Decimal
	Counterparty  *string
	Note          *string
	Date          *time.Time
	Status        *string
	PaymentMethod *string
}

// validateEntry reglas comunes a alta y enmienda.
func validateEntry(kind string, quantity, unitRate, amount decimal.Decimal, counterparty string) error {
	if !entity.ValidKind(kind) {
		return domain.ErrInvalidInput
	}
	if !quantity.IsPositive() || !unitRate.IsPositive() {
		return domain.ErrInvalidInput
	}
	if !amount.IsPositive() {
		return domain.ErrInvalidInput
	}
	if counterparty == "" {
		return domain.ErrInvalidInput
	}
	return nil
}

// CreateEntry valida el borrador y, en una sola transacción, inserta el
// asiento y aplica el delta (+qty compra, −qty venta) a la existencia del
// bien con el incremento atómico del repositorio.
func (uc *ReconcilerUseCase) CreateEntry(ctx context.Context, in EntryInput) (*entity.LedgerEntry, error) {
	amount := in.UnitRate.Mul(in.Quantity)
	if in.Amount != nil {
		amount = *in.Amount
	}
	if err := validateEntry(in.Kind, in.Quantity, in.UnitRate, amount, in.Counterparty); err != nil {
		return nil, err
	}

	good, err := uc.goodRepo.GetByID(in.GoodID)
	if err != nil {
		return nil, err
	}
	if good == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	entry := &entity.LedgerEntry{
		ID:           uuid.New().String(),
		BatchID:      in.BatchID,
		Reference:    in.Reference,
		GoodID:       good.ID,
		GoodName:     good.Name, // copia histórica del nombre
		Kind:         in.Kind,
		Quantity:     in.Quantity,
		UnitRate:     in.UnitRate,
		Amount:       amount,
		Counterparty: in.Counterparty,
		Note:         in.Note,
		Date:         date,
		Settlement:   in.Settlement,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.txRunner.Run(ctx, func(entryRepo repository.LedgerEntryRepository, goodRepo repository.GoodRepository) error {
		if err := entryRepo.Create(entry); err != nil {
			return err
		}
		newQty, err := goodRepo.AdjustQuantity(entry.GoodID, domledger.StockDelta(entry.Kind, entry.Quantity))
		if err != nil {
			return err
		}
		uc.warnIfNegative(entry.GoodID, newQty)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// AmendEntry enmienda un asiento. En una sola transacción: (1) bloquea la
// fila del asiento (serializa enmiendas concurrentes), (2) revierte el delta
// original sobre el bien original, (3) persiste los campos enmendados y
// (4) aplica el delta nuevo sobre el bien destino (que puede ser otro).
// Si cualquier paso falla, todo se revierte: la reversión nunca queda
// aplicada sin su reaplicación.
func (uc *ReconcilerUseCase) AmendEntry(ctx context.Context, id string, patch EntryPatch) (*entity.LedgerEntry, error) {
	var amended *entity.LedgerEntry
	err := uc.txRunner.Run(ctx, func(entryRepo repository.LedgerEntryRepository, goodRepo repository.GoodRepository) error {
		entry, err := entryRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if entry == nil {
			return domain.ErrNotFound
		}

		// 1) revertir el delta original
		if _, err := goodRepo.AdjustQuantity(entry.GoodID, domledger.ReversalDelta(entry.Kind, entry.Quantity)); err != nil {
			return err
		}

		// 2) aplicar el parche sobre una copia; lo no parchado conserva el original
		next := *entry
		quantityOrRateChanged := false
		if patch.GoodID != nil && *patch.GoodID != entry.GoodID {
			good, err := goodRepo.GetByID(*patch.GoodID)
			if err != nil {
				return err
			}
			if good == nil {
				return domain.ErrNotFound
			}
			next.GoodID = good.ID
			next.GoodName = good.Name
		}
		if patch.Kind != nil {
			next.Kind = *patch.Kind
		}
		if patch.Quantity != nil {
			next.Quantity = *patch.Quantity
			quantityOrRateChanged = true
		}
		if patch.UnitRate != nil {
			next.UnitRate = *patch.UnitRate
			quantityOrRateChanged = true
		}
		switch {
		case patch.Amount != nil:
			next.Amount = *patch.Amount
		case quantityOrRateChanged:
			// sin override explícito, el monto vuelve a qty × tarifa
			next.Amount = next.Quantity.Mul(next.UnitRate)
		}
		if patch.Counterparty != nil {
			next.Counterparty = *patch.Counterparty
		}
		if patch.Note != nil {
			next.Note = *patch.Note
		}
		if patch.Date != nil {
			next.Date = *patch.Date
		}
		if patch.Status != nil {
			next.Settlement.Status = *patch.Status
		}
		if patch.PaymentMethod != nil {
			next.Settlement.PaymentMethod = *patch.PaymentMethod
		}
		if err := validateEntry(next.Kind, next.Quantity, next.UnitRate, next.Amount, next.Counterparty); err != nil {
			return err
		}
		next.UpdatedAt = time.Now()

		if err := entryRepo.Update(&next); err != nil {
			return err
		}

		// 3) aplicar el delta nuevo sobre el bien destino
		newQty, err := goodRepo.AdjustQuantity(next.GoodID, domledger.StockDelta(next.Kind, next.Quantity))
		if err != nil {
			return err
		}
		uc.warnIfNegative(next.GoodID, newQty)
		amended = &next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return amended, nil
}

// RemoveEntry elimina un asiento revirtiendo su delta sobre el bien en la
// misma transacción.
func (uc *ReconcilerUseCase) RemoveEntry(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(entryRepo repository.LedgerEntryRepository, goodRepo repository.GoodRepository) error {
		entry, err := entryRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if entry == nil {
			return domain.ErrNotFound
		}
		newQty, err := goodRepo.AdjustQuantity(entry.GoodID, domledger.ReversalDelta(entry.Kind, entry.Quantity))
		if err != nil {
			return err
		}
		uc.warnIfNegative(entry.GoodID, newQty)
		return entryRepo.Delete(entry.ID)
	})
}

// CreateInTx inserta un asiento ya validado y aplica su delta usando los
// repositorios proporcionados (misma transacción del caller). Lo usa el
// procesador de lotes para confirmar N asientos como una sola unidad.
func (uc *ReconcilerUseCase) CreateInTx(
	entryRepo repository.LedgerEntryRepository,
	goodRepo repository.GoodRepository,
	entry *entity.LedgerEntry,
) error {
	if err := entryRepo.Create(entry); err != nil {
		return err
	}
	newQty, err := goodRepo.AdjustQuantity(entry.GoodID, domledger.StockDelta(entry.Kind, entry.Quantity))
	if err != nil {
		return err
	}
	uc.warnIfNegative(entry.GoodID, newQty)
	return nil
}

// GetEntry obtiene un asiento por ID (lectura fuera de tx).
func (uc *ReconcilerUseCase) GetEntry(_ context.Context, id string) (*entity.LedgerEntry, error) {
	entry, err := uc.entryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	return entry, nil
}

// ListEntries lista asientos con filtros y paginación (lectura fuera de tx).
func (uc *ReconcilerUseCase) ListEntries(_ context.Context, filter repository.EntryFilter) ([]*entity.LedgerEntry, error) {
	return uc.entryRepo.List(filter)
}

// warnIfNegative deja alerta estructurada cuando una mutación legítima lleva
// la existencia por debajo de cero (política de stock negativo permitido).
func (uc *ReconcilerUseCase) warnIfNegative(goodID string, qty decimal.Decimal) {
	if uc.log != nil && qty.IsNegative() {
		uc.log.Warn().
			Str("good_id", goodID).
			Str("quantity_on_hand", qty.String()).
			Msg("existencia negativa tras reconciliar")
	}
}
