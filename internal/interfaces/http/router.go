package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/panaderia-ops/internal/application/alerts"
	appanalytics "github.com/jhoicas/panaderia-ops/internal/application/analytics"
	"github.com/jhoicas/panaderia-ops/internal/application/crm"
	"github.com/jhoicas/panaderia-ops/internal/application/inventory"
	"github.com/jhoicas/panaderia-ops/internal/application/refresh"
	"github.com/jhoicas/panaderia-ops/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ServiceName string
	Dashboard   *appanalytics.DashboardUseCase
	Report      *appanalytics.ReportUseCase
	Stock       *inventory.StockUseCase
	Ingredients *inventory.IngredientUseCase
	Alerts      *alerts.UseCase
	Messages    *crm.MessageUseCase
	Discounts   *crm.DiscountUseCase
	Store       *refresh.Store
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Todo /api requiere token de personal
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	anyStaff := RequireRole(jwt.RoleAdmin, jwt.RoleCajero, jwt.RoleProduccion)
	production := RequireRole(jwt.RoleAdmin, jwt.RoleProduccion)
	sales := RequireRole(jwt.RoleAdmin, jwt.RoleCajero)

	// Dashboard
	dash := api.Group("/dashboard", anyStaff)
	dashboardHandler := NewDashboardHandler(deps.Dashboard, deps.Report)
	dash.Get("/summary", dashboardHandler.GetSummary)
	dash.Get("/sales-chart", dashboardHandler.GetSalesChart)
	dash.Get("/report.pdf", RequireRole(jwt.RoleAdmin), dashboardHandler.GetDailyReport)

	// Inventario de lotes (vitrina)
	inventoryHandler := NewInventoryHandler(deps.Stock, deps.Ingredients)
	items := api.Group("/inventory/items")
	items.Get("/", anyStaff, inventoryHandler.ListItems)
	items.Patch("/:id/status", production, inventoryHandler.SetStatus)
	items.Post("/:id/discard", production, inventoryHandler.Discard)

	// Ingredientes (bodega)
	ingredients := api.Group("/ingredients")
	ingredients.Get("/", anyStaff, inventoryHandler.ListIngredients)
	ingredients.Get("/low-stock", anyStaff, inventoryHandler.ListLowStock)
	ingredients.Get("/low-stock/count", anyStaff, inventoryHandler.LowStockCount)
	ingredients.Post("/", production, inventoryHandler.CreateIngredient)
	ingredients.Post("/:id/movements", production, inventoryHandler.AdjustIngredient)

	// Alertas
	alertGroup := api.Group("/alerts")
	alertHandler := NewAlertHandler(deps.Alerts)
	alertGroup.Get("/", anyStaff, alertHandler.ListActive)
	alertGroup.Get("/count", anyStaff, alertHandler.CountActive)
	alertGroup.Post("/", production, alertHandler.Raise)
	alertGroup.Post("/:id/resolve", production, alertHandler.Resolve)

	// CRM (paso directo, sin lógica derivada)
	crmHandler := NewCRMHandler(deps.Messages, deps.Discounts)
	api.Post("/crm/messages", sales, crmHandler.CreateMessage)
	api.Get("/crm/customers/:customerId/messages", sales, crmHandler.ListMessages)
	api.Post("/discounts", RequireRole(jwt.RoleAdmin), crmHandler.CreateDiscount)
	api.Get("/discounts", sales, crmHandler.ListDiscounts)

	// Hook de invalidación de vistas
	viewHandler := NewViewHandler(deps.Store)
	api.Post("/views/invalidate", anyStaff, viewHandler.Invalidate)
}
