// Package bootstrap arma el grafo de dependencias compartido por la API y opsctl:
// ledger (postgres o memoria), store de vistas, casos de uso y refresher.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/panaderia-ops/internal/application/alerts"
	appanalytics "github.com/jhoicas/panaderia-ops/internal/application/analytics"
	"github.com/jhoicas/panaderia-ops/internal/application/crm"
	"github.com/jhoicas/panaderia-ops/internal/application/inventory"
	"github.com/jhoicas/panaderia-ops/internal/application/refresh"
	"github.com/jhoicas/panaderia-ops/internal/domain/calendar"
	"github.com/jhoicas/panaderia-ops/internal/domain/repository"
	"github.com/jhoicas/panaderia-ops/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/panaderia-ops/internal/infrastructure/pdf"
	"github.com/jhoicas/panaderia-ops/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/panaderia-ops/internal/interfaces/http"
	"github.com/jhoicas/panaderia-ops/pkg/config"
	"github.com/jhoicas/panaderia-ops/pkg/logger"
)

// txRunner lo que piden inventario y alertas; lo cumplen ambos drivers.
type txRunner interface {
	inventory.TxRunner
	alerts.TxRunner
}

// repos juego de repositorios sobre un mismo ledger.
type repos struct {
	sales       repository.SaleRepository
	sessions    repository.RegisterSessionRepository
	items       repository.InventoryRepository
	ingredients repository.IngredientRepository
	alerts      repository.AlertRepository
	messages    repository.CRMMessageRepository
	discounts   repository.DiscountRepository
	tx          txRunner
}

// Container dependencias ya cableadas.
type Container struct {
	Config   *config.Config
	Log      *logger.Logger
	Calendar *calendar.Calendar
	Store    *refresh.Store

	// Solo uno de los dos según LEDGER_DRIVER.
	Pool   *pgxpool.Pool
	Memory *memory.Ledger

	Dashboard   *appanalytics.DashboardUseCase
	Report      *appanalytics.ReportUseCase
	Stock       *inventory.StockUseCase
	Ingredients *inventory.IngredientUseCase
	Alerts      *alerts.UseCase
	Messages    *crm.MessageUseCase
	Discounts   *crm.DiscountUseCase
	Refresher   *refresh.Refresher
}

// Build conecta el ledger configurado y construye los casos de uso.
func Build(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Container, error) {
	cal, err := calendar.Load(cfg.Calendar.TimeZone, cfg.Calendar.Language)
	if err != nil {
		return nil, err
	}

	c := &Container{
		Config:   cfg,
		Log:      log,
		Calendar: cal,
		Store:    refresh.NewStore(log),
	}

	var r repos
	switch cfg.Ledger.Driver {
	case "memory":
		c.Memory = memory.NewLedger()
		r = repos{
			sales:       c.Memory.Sales(),
			sessions:    c.Memory.RegisterSessions(),
			items:       c.Memory.Inventory(),
			ingredients: c.Memory.Ingredients(),
			alerts:      c.Memory.Alerts(),
			messages:    c.Memory.CRMMessages(),
			discounts:   c.Memory.Discounts(),
			tx:          memory.NewTxRunner(c.Memory),
		}
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB, cfg.Ledger)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		c.Pool = pool
		r = repos{
			sales:       postgres.NewSaleRepository(pool),
			sessions:    postgres.NewRegisterSessionRepository(pool),
			items:       postgres.NewInventoryRepository(pool),
			ingredients: postgres.NewIngredientRepository(pool),
			alerts:      postgres.NewAlertRepository(pool),
			messages:    postgres.NewCRMMessageRepository(pool),
			discounts:   postgres.NewDiscountRepository(pool),
			tx:          postgres.NewTxRunner(pool),
		}
	default:
		return nil, fmt.Errorf("ledger driver desconocido %q", cfg.Ledger.Driver)
	}

	dashPolicy := refresh.Every(cfg.Refresh.DashboardInterval)
	badgePolicy := refresh.Every(cfg.Refresh.BadgeInterval)

	c.Dashboard = appanalytics.NewDashboardUseCase(r.sales, r.sessions, cal, c.Store, dashPolicy)
	c.Stock = inventory.NewStockUseCase(r.tx, r.items, c.Store)
	c.Ingredients = inventory.NewIngredientUseCase(r.tx, r.ingredients, c.Store, badgePolicy)
	c.Alerts = alerts.NewUseCase(r.tx, r.alerts, c.Store, badgePolicy)
	c.Messages = crm.NewMessageUseCase(r.messages, c.Store)
	c.Discounts = crm.NewDiscountUseCase(r.discounts, c.Store)
	c.Report = appanalytics.NewReportUseCase(
		c.Dashboard, c.Ingredients, c.Alerts,
		infrapdf.NewDailyReportGenerator(cfg.App.Name, cal.Language()),
	)

	c.Refresher = refresh.NewRefresher(log,
		c.Dashboard.SummaryView(),
		c.Dashboard.ChartView(),
		c.Ingredients.LowStockView(),
		c.Alerts.CountView(),
	)
	return c, nil
}

// RouterDeps dependencias del router HTTP.
func (c *Container) RouterDeps() httpRouter.RouterDeps {
	return httpRouter.RouterDeps{
		ServiceName: c.Config.App.Name,
		Dashboard:   c.Dashboard,
		Report:      c.Report,
		Stock:       c.Stock,
		Ingredients: c.Ingredients,
		Alerts:      c.Alerts,
		Messages:    c.Messages,
		Discounts:   c.Discounts,
		Store:       c.Store,
		JWTSecret:   c.Config.JWT.Secret,
	}
}

// Close libera el pool si lo hay.
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
}
