package ports

import (
	"context"

	"github.com/jhoicas/gestor-notas-api/internal/application/dto"
)

// InvoiceExtractor puerto de salida hacia el modelo de visión que lee la foto de una nota.
// Cualquier adaptador (gateway compatible con OpenAI, Anthropic, mock) implementa este
// contrato; la aplicación no conoce la implementación concreta.
type InvoiceExtractor interface {
	// Extract hace una única llamada sin reintentos. Nunca devuelve error: ante fallo de
	// transporte, status distinto de 200 o cuerpo ilegible devuelve dto.DefaultExtraction().
	// El contexto debe llevar timeout.
	Extract(ctx context.Context, imageURL string) dto.ExtractionDTO
}
