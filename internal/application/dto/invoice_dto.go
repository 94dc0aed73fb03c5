package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest body de POST /api/invoices (entrada manual).
type CreateInvoiceRequest struct {
	InvoiceNumber string               `json:"invoice_number,omitempty"`
	DeliveryDate  string               `json:"delivery_date"` // YYYY-MM-DD
	TotalValue    decimal.Decimal      `json:"total_value"`
	IsValidated   bool                 `json:"is_validated"`
	ContactName   string               `json:"contact_name,omitempty"`
	PhoneNumber   string               `json:"phone_number,omitempty"`
	Items         []InvoiceItemRequest `json:"items,omitempty"`
}

// InvoiceItemRequest línea de la nota.
type InvoiceItemRequest struct {
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
}

// ListInvoicesRequest query de GET /api/invoices. Validated: "true", "false" o vacío (todas).
type ListInvoicesRequest struct {
	From      string `query:"from"`
	To        string `query:"to"`
	Validated string `query:"validated"`
}

// SetValidatedRequest body de PATCH /api/invoices/:id/validation.
type SetValidatedRequest struct {
	IsValidated bool `json:"is_validated"`
}

// InvoiceResponse nota con sus ítems.
type InvoiceResponse struct {
	ID            string                `json:"id"`
	InvoiceNumber string                `json:"invoice_number,omitempty"`
	DeliveryDate  string                `json:"delivery_date"`
	TotalValue    decimal.Decimal       `json:"total_value"`
	IsValidated   bool                  `json:"is_validated"`
	IsManualEntry bool                  `json:"is_manual_entry"`
	ContactName   string                `json:"contact_name,omitempty"`
	PhoneNumber   string                `json:"phone_number,omitempty"`
	ImageRef      string                `json:"image_ref,omitempty"`
	ImageURL      string                `json:"image_url,omitempty"` // URL firmada temporal
	Items         []InvoiceItemResponse `json:"items"`
	CreatedAt     time.Time             `json:"created_at"`
}

// InvoiceItemResponse línea en respuestas.
type InvoiceItemResponse struct {
	ID          string          `json:"id"`
	Position    int             `json:"position"`
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
}

// InvoiceListResponse listado de notas.
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Total int               `json:"total"`
}

// ScanInvoiceResponse resultado de POST /api/invoices/scan: la nota creada (sin validar)
// y lo que devolvió la extracción.
type ScanInvoiceResponse struct {
	Invoice    InvoiceResponse `json:"invoice"`
	Extraction ExtractionDTO   `json:"extraction"`
}

// ExtractionDTO respuesta de la extracción por IA. Las claves en camelCase son las que
// se piden al modelo. Defaulted=true indica que se usó la carga por defecto (error de
// transporte, status != 200 o cuerpo ilegible) y conviene revisar la nota a mano.
type ExtractionDTO struct {
	InvoiceNumber *string            `json:"invoiceNumber"`
	InvoiceDate   *string            `json:"invoiceDate"`
	Items         []ExtractedItemDTO `json:"items"`
	TotalValue    decimal.Decimal    `json:"totalValue"`
	PhoneNumber   *string            `json:"phoneNumber"`
	ContactName   *string            `json:"contactName"`
	Defaulted     bool               `json:"defaulted"`
}

// ExtractedItemDTO línea extraída de la imagen.
type ExtractedItemDTO struct {
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
}

// DefaultExtraction carga por defecto: todo nulo, cero o vacío.
func DefaultExtraction() ExtractionDTO {
	return ExtractionDTO{
		Items:      []ExtractedItemDTO{},
		TotalValue: decimal.Zero,
		Defaulted:  true,
	}
}
