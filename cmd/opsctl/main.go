// Command opsctl consulta y opera las vistas del dashboard desde la terminal,
// sobre el mismo ledger y con las mismas reglas que la API.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/panaderia-ops/internal/bootstrap"
	"github.com/jhoicas/panaderia-ops/pkg/config"
	"github.com/jhoicas/panaderia-ops/pkg/logger"
)

func main() {
	root := newRootCmd(func(ctx context.Context) (*bootstrap.Container, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		log := logger.New(logger.Config{Env: cfg.App.Env, Level: "warn"})
		return bootstrap.Build(ctx, cfg, log)
	})
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
