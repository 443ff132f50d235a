package dto

import "time"

// AlertDTO alerta activa con el nombre del producto para presentación.
type AlertDTO struct {
	ID          string     `json:"id"`
	RecipeID    string     `json:"recipe_id"`
	RecipeName  string     `json:"recipe_name"`
	Resolved    bool       `json:"resolved"`
	CreatedAt   time.Time  `json:"created_at"`
	ResolvedAt  *time.Time `json:"resolved_at"`
	ActionTaken *string    `json:"action_taken"`
}

// ResolveAlertRequest body de POST /api/alerts/:id/resolve.
type ResolveAlertRequest struct {
	ActionTaken string `json:"action_taken" validate:"required,max=500"`
}

// RaiseAlertRequest body de POST /api/alerts (lo invoca el disparador de reglas externo).
type RaiseAlertRequest struct {
	RecipeID string `json:"recipe_id" validate:"required"`
}
