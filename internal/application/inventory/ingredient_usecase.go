package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/panaderia-ops/internal/application/dto"
	"github.com/jhoicas/panaderia-ops/internal/application/refresh"
	"github.com/jhoicas/panaderia-ops/internal/domain"
	"github.com/jhoicas/panaderia-ops/internal/domain/entity"
	domaininv "github.com/jhoicas/panaderia-ops/internal/domain/inventory"
	"github.com/jhoicas/panaderia-ops/internal/domain/repository"
)

// Claves de las vistas de materia prima.
var (
	IngredientsKey   = refresh.Key{Family: domain.FamilyIngredients, View: "all"}
	LowStockCountKey = refresh.Key{Family: domain.FamilyIngredients, View: "low_stock_count"}
)

// IngredientUseCase stock de materia prima y su bandera de stock bajo.
type IngredientUseCase struct {
	txRunner       TxRunner
	ingredientRepo repository.IngredientRepository
	store          *refresh.Store
	now            func() time.Time

	all      *refresh.View[[]dto.IngredientDTO]
	lowCount *refresh.View[int]
}

// NewIngredientUseCase construye el caso de uso. badge es la política del contador de stock bajo.
func NewIngredientUseCase(
	txRunner TxRunner,
	ingredientRepo repository.IngredientRepository,
	store *refresh.Store,
	badge refresh.Policy,
) *IngredientUseCase {
	uc := &IngredientUseCase{
		txRunner:       txRunner,
		ingredientRepo: ingredientRepo,
		store:          store,
		now:            time.Now,
	}
	uc.all = refresh.NewView(store, IngredientsKey, refresh.OnInvalidate(), func(ctx context.Context) ([]dto.IngredientDTO, error) {
		ings, err := ingredientRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("ingredients.List: %w", err)
		}
		out := make([]dto.IngredientDTO, 0, len(ings))
		for _, ing := range ings {
			out = append(out, toIngredientDTO(ing))
		}
		return out, nil
	})
	// Siempre sobre el conjunto completo, nunca un contador incremental.
	uc.lowCount = refresh.NewView(store, LowStockCountKey, badge, func(ctx context.Context) (int, error) {
		ings, err := ingredientRepo.List(ctx)
		if err != nil {
			return 0, fmt.Errorf("ingredients.LowStockCount: %w", err)
		}
		return domaininv.CountLow(ings), nil
	})
	return uc
}

// AllView vista del listado completo.
func (uc *IngredientUseCase) AllView() *refresh.View[[]dto.IngredientDTO] { return uc.all }

// LowStockView vista del badge de stock bajo.
func (uc *IngredientUseCase) LowStockView() *refresh.View[int] { return uc.lowCount }

// List conjunto completo ordenado por nombre.
func (uc *IngredientUseCase) List(ctx context.Context) ([]dto.IngredientDTO, error) {
	return uc.all.Get(ctx)
}

// LowStockCount cantidad de ingredientes con stock <= mínimo (mínimo > 0).
func (uc *IngredientUseCase) LowStockCount(ctx context.Context) (int, error) {
	return uc.lowCount.Get(ctx)
}

// ListLowStock ingredientes en stock bajo, para la tarjeta de reposición.
func (uc *IngredientUseCase) ListLowStock(ctx context.Context) ([]dto.IngredientDTO, error) {
	all, err := uc.all.Get(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.IngredientDTO, 0)
	for _, ing := range all {
		if ing.IsLow {
			out = append(out, ing)
		}
	}
	return out, nil
}

// RegisterIngredient da de alta una materia prima.
func (uc *IngredientUseCase) RegisterIngredient(ctx context.Context, in dto.CreateIngredientRequest) (*dto.IngredientDTO, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.UnitPrice.IsNegative() || in.StockQuantity.IsNegative() || in.MinStock.IsNegative() {
		return nil, fmt.Errorf("%w: precio, cantidad y mínimo deben ser >= 0", domain.ErrInvalidInput)
	}

	now := uc.now()
	ing := &entity.Ingredient{
		ID:            uuid.New().String(),
		Name:          strings.TrimSpace(in.Name),
		Unit:          in.Unit,
		UnitPrice:     in.UnitPrice,
		StockQuantity: in.StockQuantity,
		MinStock:      in.MinStock,
		ExpiresAt:     in.ExpiresAt,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.ingredientRepo.Create(ctx, ing); err != nil {
		return nil, fmt.Errorf("ingredients.Register: %w", err)
	}

	uc.store.Invalidate(domain.FamilyIngredients)
	out := toIngredientDTO(ing)
	return &out, nil
}

// AdjustIngredient aplica un movimiento de stock (reposición o consumo) bloqueando la fila.
// domain.ErrInsufficientStock si la cantidad quedaría negativa.
func (uc *IngredientUseCase) AdjustIngredient(ctx context.Context, id string, in dto.AdjustIngredientRequest) (*dto.IngredientDTO, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.Delta.IsZero() {
		return nil, fmt.Errorf("%w: el movimiento no puede ser 0", domain.ErrInvalidInput)
	}

	var adjusted *entity.Ingredient
	err := uc.txRunner.Run(ctx, func(_ repository.InventoryRepository, ingredientRepo repository.IngredientRepository) error {
		ing, err := ingredientRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if ing == nil {
			return domain.ErrNotFound
		}
		next, err := domaininv.ApplyMovement(ing.StockQuantity, in.Delta)
		if err != nil {
			return err
		}
		if err := ingredientRepo.UpdateQuantity(ctx, id, next); err != nil {
			return err
		}
		ing.StockQuantity = next
		adjusted = ing
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ingredients.Adjust: %w", err)
	}

	uc.store.Invalidate(domain.FamilyIngredients)
	out := toIngredientDTO(adjusted)
	return &out, nil
}

