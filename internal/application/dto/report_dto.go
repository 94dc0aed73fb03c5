package dto

import (
	"encoding/json"
	"time"
)

// ReportRequest parámetros de un informe. payments-by-month usa ReferenceMonth
// (YYYY-MM); el resto From/To (YYYY-MM-DD).
type ReportRequest struct {
	Type           string `json:"type" query:"type"`
	From           string `json:"from,omitempty" query:"from"`
	To             string `json:"to,omitempty" query:"to"`
	ReferenceMonth string `json:"reference_month,omitempty" query:"reference_month"`
}

// ShareReportResponse respuesta de POST /api/reports/share.
type ShareReportResponse struct {
	ID        string     `json:"id"`
	URL       string     `json:"url"`
	Title     string     `json:"title"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// SharedReportDTO enlace del usuario en GET /api/shared-reports.
type SharedReportDTO struct {
	ID          string     `json:"id"`
	ReportType  string     `json:"report_type"`
	ReportTitle string     `json:"report_title"`
	URL         string     `json:"url"`
	Status      string     `json:"status"` // active | expired
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   *time.Time `json:"expires_at"` // null = no expira
}

// ExtendLinkRequest body de PATCH /api/shared-reports/:id/extend.
type ExtendLinkRequest struct {
	Days int `json:"days"`
}

// PublicReportDTO instantánea servida sin autenticación.
type PublicReportDTO struct {
	ID          string          `json:"id"`
	ReportType  string          `json:"report_type"`
	ReportTitle string          `json:"report_title"`
	CreatedAt   time.Time       `json:"created_at"`
	ExpiresAt   *time.Time      `json:"expires_at"`
	Report      json.RawMessage `json:"report"`
}
