package ports

import "github.com/jhoicas/gestor-notas-api/internal/domain/report"

// ReportPDFRenderer genera el PDF de un informe ya calculado; no deriva importes.
type ReportPDFRenderer interface {
	Render(r *report.Report) ([]byte, error)
}
