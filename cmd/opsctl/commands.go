package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jhoicas/panaderia-ops/internal/application/dto"
	"github.com/jhoicas/panaderia-ops/internal/bootstrap"
	"github.com/jhoicas/panaderia-ops/internal/infrastructure/postgres"
)

// =============================================================================
// ROOT
// =============================================================================

// buildFunc arma el contenedor; los tests inyectan uno con ledger en memoria.
type buildFunc func(ctx context.Context) (*bootstrap.Container, error)

type cli struct {
	build   buildFunc
	deps    *bootstrap.Container
	jsonOut bool
}

func newRootCmd(build buildFunc) *cobra.Command {
	c := &cli{build: build}

	root := &cobra.Command{
		Use:           "opsctl",
		Short:         "Métricas operativas e inventario de la panadería",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := c.build(cmd.Context())
			if err != nil {
				return err
			}
			c.deps = deps
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if c.deps != nil {
				c.deps.Close()
			}
		},
	}
	root.PersistentFlags().BoolVar(&c.jsonOut, "json", false, "salida en JSON")

	root.AddCommand(
		c.summaryCmd(),
		c.chartCmd(),
		c.lowStockCmd(),
		c.alertsCmd(),
		c.resolveCmd(),
		c.migrateCmd(),
	)
	return root
}

// =============================================================================
// DASHBOARD
// =============================================================================

func (c *cli) summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "KPIs del día local: ingresos, transacciones, ticket promedio, cajas cerradas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.deps.Dashboard.DaySummary(cmd.Context())
			if err != nil {
				return err
			}
			if c.jsonOut {
				return writeJSON(cmd.OutOrStdout(), s)
			}
			w := table(cmd.OutOrStdout())
			fmt.Fprintf(w, "Fecha\t%s\n", s.Date)
			fmt.Fprintf(w, "Ingresos\t%s\n", s.Revenue.StringFixed(2))
			fmt.Fprintf(w, "Transacciones\t%d\n", s.Count)
			fmt.Fprintf(w, "Ticket promedio\t%s\n", s.AvgTicket.StringFixed(2))
			fmt.Fprintf(w, "Cajas cerradas\t%d\n", s.ClosedCount)
			return w.Flush()
		},
	}
}

func (c *cli) chartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chart",
		Short: "Ventas de los últimos 7 días, un renglón por día",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			points, err := c.deps.Dashboard.SalesChart(cmd.Context())
			if err != nil {
				return err
			}
			if c.jsonOut {
				return writeJSON(cmd.OutOrStdout(), points)
			}
			w := table(cmd.OutOrStdout())
			fmt.Fprintln(w, "FECHA\tDÍA\tTOTAL")
			for _, p := range points {
				fmt.Fprintf(w, "%s\t%s\t%s\n", p.Date, p.Label, p.Total.StringFixed(2))
			}
			return w.Flush()
		},
	}
}

// =============================================================================
// INVENTARIO Y ALERTAS
// =============================================================================

func (c *cli) lowStockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "low-stock",
		Short: "Ingredientes en o bajo su mínimo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := c.deps.Ingredients.ListLowStock(cmd.Context())
			if err != nil {
				return err
			}
			if c.jsonOut {
				return writeJSON(cmd.OutOrStdout(), list)
			}
			w := table(cmd.OutOrStdout())
			fmt.Fprintln(w, "INGREDIENTE\tSTOCK\tMÍNIMO\tUNIDAD")
			for _, ing := range list {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", ing.Name, ing.StockQuantity.String(), ing.MinStock.String(), ing.Unit)
			}
			fmt.Fprintf(w, "\n%d en stock bajo\n", len(list))
			return w.Flush()
		},
	}
}

func (c *cli) alertsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "alerts",
		Short: "Alertas activas, más nuevas primero",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := c.deps.Alerts.ListActive(cmd.Context())
			if err != nil {
				return err
			}
			if c.jsonOut {
				return writeJSON(cmd.OutOrStdout(), list)
			}
			w := table(cmd.OutOrStdout())
			fmt.Fprintln(w, "ID\tPRODUCTO\tCREADA")
			for _, a := range list {
				fmt.Fprintf(w, "%s\t%s\t%s\n", a.ID, a.RecipeName, a.CreatedAt.In(c.deps.Calendar.Location()).Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}
}

func (c *cli) resolveCmd() *cobra.Command {
	var action string
	cmd := &cobra.Command{
		Use:   "resolve <alert-id>",
		Short: "Resuelve una alerta registrando la acción tomada",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.deps.Alerts.Resolve(cmd.Context(), args[0], dto.ResolveAlertRequest{ActionTaken: action})
			if err != nil {
				return err
			}
			if c.jsonOut {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "alerta %s resuelta\n", out.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&action, "action", "a", "", "acción tomada (obligatoria)")
	_ = cmd.MarkFlagRequired("action")
	return cmd
}

// =============================================================================
// ESQUEMA
// =============================================================================

func (c *cli) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones embebidas sobre PostgreSQL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.deps.Pool == nil {
				return errors.New("migrate requiere LEDGER_DRIVER=postgres")
			}
			applied, err := postgres.Migrate(cmd.Context(), c.deps.Pool)
			if err != nil {
				return err
			}
			for _, name := range applied {
				fmt.Fprintln(cmd.OutOrStdout(), "aplicada", name)
			}
			return nil
		},
	}
}

func table(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
