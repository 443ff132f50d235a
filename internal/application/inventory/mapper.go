package inventory

import (
	"github.com/jhoicas/panaderia-ops/internal/application/dto"
	"github.com/jhoicas/panaderia-ops/internal/domain/entity"
	domaininv "github.com/jhoicas/panaderia-ops/internal/domain/inventory"
)

func toItemDTO(it *entity.InventoryItem) dto.InventoryItemDTO {
	out := dto.InventoryItemDTO{
		ID:         it.ID,
		RecipeID:   it.RecipeID,
		RecipeName: it.RecipeName,
		StockGrams: it.StockGrams,
		Status:     string(it.Status),
		ProducedAt: it.ProducedAt,
	}
	if it.SlicesAvailable != nil {
		n := *it.SlicesAvailable
		out.SlicesAvailable = &n
	}
	return out
}

func toIngredientDTO(ing *entity.Ingredient) dto.IngredientDTO {
	return dto.IngredientDTO{
		ID:            ing.ID,
		Name:          ing.Name,
		Unit:          ing.Unit,
		UnitPrice:     ing.UnitPrice,
		StockQuantity: ing.StockQuantity,
		MinStock:      ing.MinStock,
		ExpiresAt:     ing.ExpiresAt,
		IsLow:         domaininv.IsLow(ing),
	}
}
