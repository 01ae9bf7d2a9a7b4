package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/acopio/acopio-api/internal/application/dto"
	"github.com/acopio/acopio-api/internal/domain"
	"github.com/acopio/acopio-api/internal/domain/entity"
	"github.com/acopio/acopio-api/internal/domain/repository"
)

// GoodUseCase casos de uso CRUD para bienes. QuantityOnHand se maneja vía el
// reconciliador; aquí solo nace en cero.
type GoodUseCase struct {
	repo repository.GoodRepository
}

// NewGoodUseCase construye el caso de uso.
func NewGoodUseCase(repo repository.GoodRepository) *GoodUseCase {
	return &GoodUseCase{repo: repo}
}

// Create registra un bien nuevo. El nombre es único sin distinguir mayúsculas.
func (uc *GoodUseCase) Create(in dto.CreateGoodRequest) (*dto.GoodResponse, error) {
	if in.Name == "" || in.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateName
	}
	now := time.Now()
	good := &entity.Good{
		ID:             uuid.New().String(),
		Name:           in.Name,
		Unit:           in.Unit,
		UnitPrice:      in.UnitPrice,
		QuantityOnHand: decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(good); err != nil {
		return nil, err
	}
	return toGoodResponse(good), nil
}

// GetByID obtiene un bien por ID.
func (uc *GoodUseCase) GetByID(id string) (*dto.GoodResponse, error) {
	good, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if good == nil {
		return nil, domain.ErrNotFound
	}
	return toGoodResponse(good), nil
}

// Update actualiza nombre, unidad o precio. No permite tocar QuantityOnHand.
func (uc *GoodUseCase) Update(id string, in dto.UpdateGoodRequest) (*dto.GoodResponse, error) {
	good, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if good == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil && *in.Name != good.Name {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		existing, err := uc.repo.GetByName(*in.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != good.ID {
			return nil, domain.ErrDuplicateName
		}
		good.Name = *in.Name
	}
	if in.Unit != nil {
		if *in.Unit == "" {
			return nil, domain.ErrInvalidInput
		}
		good.Unit = *in.Unit
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		good.UnitPrice = *in.UnitPrice
	}
	good.UpdatedAt = time.Now()
	if err := uc.repo.Update(good); err != nil {
		return nil, err
	}
	return toGoodResponse(good), nil
}

// Delete elimina un bien. Falla con ErrConflict si el libro lo referencia.
func (uc *GoodUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

// List lista bienes con paginación.
func (uc *GoodUseCase) List(page dto.PageRequest) (*dto.GoodListResponse, error) {
	page.DefaultPage()
	goods, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.GoodResponse, 0, len(goods))
	for _, g := range goods {
		items = append(items, *toGoodResponse(g))
	}
	return &dto.GoodListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toGoodResponse(g *entity.Good) *dto.GoodResponse {
	return &dto.GoodResponse{
		ID:             g.ID,
		Name:           g.Name,
		Unit:           g.Unit,
		UnitPrice:      g.UnitPrice,
		QuantityOnHand: g.QuantityOnHand,
		CreatedAt:      g.CreatedAt,
		UpdatedAt:      g.UpdatedAt,
	}
}
