package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/gestor-notas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/gestor-notas-api/pkg/config"
	"github.com/jhoicas/gestor-notas-api/pkg/logger"
)

var version = "1.0.0"

var (
	cfg *config.Config
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:           "gestorctl",
	Short:         "Herramienta de soporte del gestor de notas fiscais",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("cargar configuración: %w", err)
		}
		level, _ := cmd.Flags().GetString("log-level")
		if level == "" {
			level = cfg.App.LogLevel
		}
		log = logger.New(logger.Config{Env: "development", Level: level, Service: "gestorctl", Output: os.Stderr})
		return nil
	},
}

// Execute ejecuta el comando raíz; sale con código 1 si falla.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if log != nil {
			log.Error().Err(err).Msg("comando fallido")
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "nivel de log (trace, debug, info, warn, error)")
}

// openPool abre el pool con la configuración cargada en PersistentPreRunE.
func openPool(ctx context.Context) (*pgxpool.Pool, error) {
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	return pool, nil
}
