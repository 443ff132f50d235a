package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/panaderia-ops/internal/application/dto"
	"github.com/jhoicas/panaderia-ops/internal/application/refresh"
	"github.com/jhoicas/panaderia-ops/internal/domain"
	"github.com/jhoicas/panaderia-ops/internal/domain/entity"
	domaininv "github.com/jhoicas/panaderia-ops/internal/domain/inventory"
	"github.com/jhoicas/panaderia-ops/internal/domain/repository"
)

// ActiveItemsKey vista de lotes con masa > 0.
var ActiveItemsKey = refresh.Key{Family: domain.FamilyInventory, View: "active_items"}

// StockUseCase clasificación y descarte de lotes producidos.
// El estado es explícito: nunca se reclasifica solo por cambios de masa.
type StockUseCase struct {
	txRunner TxRunner
	store    *refresh.Store
	active   *refresh.View[[]dto.InventoryItemDTO]
}

// NewStockUseCase construye el caso de uso. La vista de activos se refresca solo por invalidación.
func NewStockUseCase(txRunner TxRunner, itemRepo repository.InventoryRepository, store *refresh.Store) *StockUseCase {
	uc := &StockUseCase{txRunner: txRunner, store: store}
	uc.active = refresh.NewView(store, ActiveItemsKey, refresh.OnInvalidate(), func(ctx context.Context) ([]dto.InventoryItemDTO, error) {
		items, err := itemRepo.ListActive(ctx)
		if err != nil {
			return nil, fmt.Errorf("inventory.ListActive: %w", err)
		}
		// El repositorio ya filtra; se repite el filtro para no depender del SQL.
		items = domaininv.FilterActive(items)
		out := make([]dto.InventoryItemDTO, 0, len(items))
		for _, it := range items {
			out = append(out, toItemDTO(it))
		}
		return out, nil
	})
	return uc
}

// ActiveView vista de lotes activos.
func (uc *StockUseCase) ActiveView() *refresh.View[[]dto.InventoryItemDTO] { return uc.active }

// ListActive lotes con stock, más recientes primero.
func (uc *StockUseCase) ListActive(ctx context.Context) ([]dto.InventoryItemDTO, error) {
	return uc.active.Get(ctx)
}

// SetStatus reclasifica un lote. Solo acepta normal, atencion o critico.
func (uc *StockUseCase) SetStatus(ctx context.Context, id string, in dto.SetStatusRequest) (*dto.InventoryItemDTO, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	status, err := domaininv.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}

	var updated *entity.InventoryItem
	err = uc.txRunner.Run(ctx, func(itemRepo repository.InventoryRepository, _ repository.IngredientRepository) error {
		item, err := itemRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if err := itemRepo.UpdateStatus(ctx, id, status); err != nil {
			return err
		}
		item.Status = status
		updated = item
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("inventory.SetStatus: %w", err)
	}

	uc.store.Invalidate(domain.FamilyInventory)
	out := toItemDTO(updated)
	return &out, nil
}

// Discard pone el lote en masa 0, porciones 0 y estado crítico en una sola escritura.
// Descartar un lote ya descartado deja el mismo resultado.
func (uc *StockUseCase) Discard(ctx context.Context, id string) (*dto.InventoryItemDTO, error) {
	var discarded *entity.InventoryItem
	err := uc.txRunner.Run(ctx, func(itemRepo repository.InventoryRepository, _ repository.IngredientRepository) error {
		item, err := itemRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if err := itemRepo.Discard(ctx, id); err != nil {
			return err
		}
		domaininv.ApplyDiscard(item)
		discarded = item
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("inventory.Discard: %w", err)
	}

	uc.store.Invalidate(domain.FamilyInventory)
	out := toItemDTO(discarded)
	return &out, nil
}
