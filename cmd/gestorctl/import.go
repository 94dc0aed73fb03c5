package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/gestor-notas-api/internal/application/dto"
	"github.com/jhoicas/gestor-notas-api/internal/application/records"
	"github.com/jhoicas/gestor-notas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/gestor-notas-api/pkg/money"
)

var importCmd = &cobra.Command{
	Use:   "import-invoices <archivo.csv>",
	Short: "Importa notas manuales desde un CSV exportado de una hoja de cálculo",
	Long: `Columnas (con cabecera): data;numero;valor;contato;telefone

data en DD/MM/YYYY o YYYY-MM-DD; valor admite "1.234,56" o "1234.56".
Las hojas exportadas desde Excel suelen venir en Windows-1252: usar --encoding cp1252.`,
	Example: `  gestorctl import-invoices notas_marco.csv --user <uuid> --validated
  gestorctl import-invoices antigo.csv --user <uuid> --encoding latin1 --sep , --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().String("user", "", "UUID del usuario dueño de las notas")
	importCmd.Flags().String("encoding", "utf8", "utf8 | latin1 | cp1252")
	importCmd.Flags().String("sep", ";", "separador de columnas")
	importCmd.Flags().Bool("validated", false, "marcar las notas como validadas")
	importCmd.Flags().Bool("dry-run", false, "solo valida el archivo")
	_ = importCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	userID, _ := cmd.Flags().GetString("user")
	enc, _ := cmd.Flags().GetString("encoding")
	sep, _ := cmd.Flags().GetString("sep")
	validated, _ := cmd.Flags().GetBool("validated")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	if len([]rune(sep)) != 1 {
		return fmt.Errorf("--sep debe ser un único carácter")
	}
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("abrir CSV: %w", err)
	}
	defer f.Close()

	rows, err := readInvoiceRows(f, enc, []rune(sep)[0])
	if err != nil {
		return err
	}
	log.Info().Int("rows", len(rows)).Str("file", args[0]).Msg("CSV leído")
	if dryRun {
		return nil
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
	defer cancel()
	pool, err := openPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	uc := records.NewInvoiceUseCase(records.InvoiceDeps{
		Repo: postgres.NewInvoiceRepository(pool),
		Log:  log.WithComponent("import"),
	})
	created := 0
	for i, row := range rows {
		row.IsValidated = validated
		if _, err := uc.CreateManual(ctx, userID, row); err != nil {
			return fmt.Errorf("fila %d: %w (importadas %d)", i+2, err, created)
		}
		created++
	}
	log.Info().Int("created", created).Msg("importación terminada")
	return nil
}

// decoderFor envuelve r con el decodificador del charset indicado.
func decoderFor(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.ReplaceAll(encoding, "-", "")) {
	case "", "utf8":
		return r, nil
	case "latin1", "iso88591":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "cp1252", "windows1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("encoding no soportado: %q", encoding)
	}
}

// readInvoiceRows lee el CSV y lo convierte en peticiones de alta manual.
// La primera fila es la cabecera; las filas vacías se ignoran.
func readInvoiceRows(r io.Reader, encoding string, sep rune) ([]dto.CreateInvoiceRequest, error) {
	dr, err := decoderFor(r, encoding)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(dr)
	cr.Comma = sep
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("CSV vacío")
	}
	if err != nil {
		return nil, fmt.Errorf("leer cabecera: %w", err)
	}
	cols := columnIndex(header)
	for _, required := range []string{"data", "valor"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("falta la columna %q", required)
		}
	}

	var out []dto.CreateInvoiceRequest
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		get := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		if get("data") == "" && get("valor") == "" {
			continue
		}
		date, err := normalizeDate(get("data"))
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		value, err := money.Parse(get("valor"))
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		out = append(out, dto.CreateInvoiceRequest{
			InvoiceNumber: get("numero"),
			DeliveryDate:  date,
			TotalValue:    value,
			ContactName:   get("contato"),
			PhoneNumber:   get("telefone"),
		})
	}
	return out, nil
}

func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		cols[key] = i
	}
	return cols
}

// normalizeDate acepta DD/MM/YYYY o YYYY-MM-DD y devuelve YYYY-MM-DD.
func normalizeDate(s string) (string, error) {
	for _, layout := range []string{"02/01/2006", "2/1/2006", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("fecha inválida %q", s)
}
