package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/gestor-notas-api/internal/application/dto"
	appreport "github.com/jhoicas/gestor-notas-api/internal/application/report"
	infrapdf "github.com/jhoicas/gestor-notas-api/internal/infrastructure/pdf"
	"github.com/jhoicas/gestor-notas-api/internal/infrastructure/postgres"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Genera el informe de un usuario en PDF",
	Example: `  gestorctl report --user <uuid> --type complete --from 2024-03-01 --to 2024-03-31
  gestorctl report --user <uuid> --type payments-by-month --month 2024-02 -o fevereiro.pdf`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().String("user", "", "UUID del usuario")
	reportCmd.Flags().String("type", "complete", "tipo de informe")
	reportCmd.Flags().String("from", "", "inicio YYYY-MM-DD")
	reportCmd.Flags().String("to", "", "fin YYYY-MM-DD")
	reportCmd.Flags().String("month", "", "mes de referencia YYYY-MM (payments-by-month)")
	reportCmd.Flags().StringP("output", "o", "", "archivo de salida (por defecto el nombre sugerido)")
	reportCmd.Flags().Int("timeout", 60, "timeout en segundos")
	_ = reportCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	userID, _ := cmd.Flags().GetString("user")
	timeout, _ := cmd.Flags().GetInt("timeout")
	req := dto.ReportRequest{}
	req.Type, _ = cmd.Flags().GetString("type")
	req.From, _ = cmd.Flags().GetString("from")
	req.To, _ = cmd.Flags().GetString("to")
	req.ReferenceMonth, _ = cmd.Flags().GetString("month")

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(timeout)*time.Second)
	defer cancel()

	pool, err := openPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	uc := appreport.NewUseCase(
		postgres.NewInvoiceRepository(pool),
		postgres.NewRevenueRepository(pool),
		postgres.NewDebtRepository(pool),
		infrapdf.NewReportRenderer(cfg.App.Name),
		nil,
	)
	body, name, err := uc.PDF(ctx, userID, req)
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("output")
	if out == "" {
		out = name
	}
	if err := os.WriteFile(out, body, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", out, err)
	}
	abs, _ := filepath.Abs(out)
	log.Info().Str("file", abs).Int("bytes", len(body)).Str("type", req.Type).Msg("informe generado")
	return nil
}
