package domain

// Family identifica una familia de registros del ledger.
// Las vistas derivadas se invalidan por familia tras cada mutación exitosa.
type Family string

const (
	FamilySales            Family = "sales"
	FamilyInventory        Family = "inventory"
	FamilyIngredients      Family = "ingredients"
	FamilyAlerts           Family = "alerts"
	FamilyRegisterSessions Family = "register_sessions"

	// Familias de paso (CRUD sin lógica derivada).
	FamilyCRMMessages Family = "crm_messages"
	FamilyDiscounts   Family = "influence_discounts"
)

// Families lista todas las familias conocidas.
func Families() []Family {
	return []Family{
		FamilySales, FamilyInventory, FamilyIngredients, FamilyAlerts,
		FamilyRegisterSessions, FamilyCRMMessages, FamilyDiscounts,
	}
}

// ParseFamily valida un nombre de familia recibido desde fuera (HTTP, CLI).
func ParseFamily(s string) (Family, error) {
	for _, f := range Families() {
		if string(f) == s {
			return f, nil
		}
	}
	return "", ErrInvalidInput
}
