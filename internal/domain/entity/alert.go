package entity

import "time"

// Alert bandera operativa sobre una receta/producto.
// ResolvedAt y ActionTaken se fijan juntos, una sola vez; Resolved solo pasa de false a true.
type Alert struct {
	ID          string
	RecipeID    string
	RecipeName  string // join de solo lectura
	Resolved    bool
	CreatedAt   time.Time
	ResolvedAt  *time.Time
	ActionTaken *string
}
