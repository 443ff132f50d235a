package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItemDTO lote producido para la tarjeta de inventario activo.
type InventoryItemDTO struct {
	ID              string          `json:"id"`
	RecipeID        string          `json:"recipe_id"`
	RecipeName      string          `json:"recipe_name"`
	StockGrams      decimal.Decimal `json:"stock_grams"`
	SlicesAvailable *int            `json:"slices_available"`
	Status          string          `json:"status"`
	ProducedAt      time.Time       `json:"produced_at"`
}

// SetStatusRequest body de PATCH /api/inventory/items/:id/status.
type SetStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=normal atencion critico"`
}

// IngredientDTO línea de materia prima con su bandera de stock bajo.
type IngredientDTO struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
	MinStock      decimal.Decimal `json:"min_stock"`
	ExpiresAt     *time.Time      `json:"expires_at,omitempty"`
	IsLow         bool            `json:"is_low"`
}

// CreateIngredientRequest body de POST /api/ingredients.
type CreateIngredientRequest struct {
	Name          string          `json:"name" validate:"required,max=120"`
	Unit          string          `json:"unit" validate:"required,oneof=g kg ml l un"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
	MinStock      decimal.Decimal `json:"min_stock"`
	ExpiresAt     *time.Time      `json:"expires_at,omitempty"`
}

// AdjustIngredientRequest body de POST /api/ingredients/:id/movements.
// Delta positivo = reposición; negativo = consumo.
type AdjustIngredientRequest struct {
	Delta  decimal.Decimal `json:"delta"`
	Reason string          `json:"reason" validate:"omitempty,oneof=reposicion consumo ajuste merma"`
}
