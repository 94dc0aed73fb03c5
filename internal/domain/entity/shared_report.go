package entity

import (
	"encoding/json"
	"time"
)

// Estados de un enlace compartido.
const (
	LinkStatusActive  = "active"
	LinkStatusExpired = "expired"
)

// SharedReport instantánea inmutable de un informe, accesible por su ID (token público)
// hasta ExpiresAt. ExpiresAt nil = no expira.
type SharedReport struct {
	ID          string
	UserID      string
	ReportType  string
	ReportTitle string
	ReportData  json.RawMessage
	CreatedAt   time.Time
	ExpiresAt   *time.Time
}

// IsExpired indica si el enlace ya expiró en el instante now.
func (s *SharedReport) IsExpired(now time.Time) bool {
	return s.ExpiresAt != nil && s.ExpiresAt.Before(now)
}

// Status devuelve LinkStatusActive o LinkStatusExpired.
func (s *SharedReport) Status(now time.Time) string {
	if s.IsExpired(now) {
		return LinkStatusExpired
	}
	return LinkStatusActive
}
