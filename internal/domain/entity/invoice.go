package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice nota fiscal entregada. Solo las validadas (IsValidated) entran en los totales.
// Tras la creación solo cambia IsValidated; TotalValue nunca se recalcula a partir de los ítems.
type Invoice struct {
	ID            string
	UserID        string
	InvoiceNumber string
	DeliveryDate  time.Time // fecha civil (UTC, 00:00)
	TotalValue    decimal.Decimal
	IsValidated   bool
	IsManualEntry bool // true = introducida a mano; false = escaneada y extraída por IA
	ContactName   string
	PhoneNumber   string
	ImageRef      string // clave del objeto en el almacenamiento de imágenes
	Items         []InvoiceItem
	CreatedAt     time.Time
}

// InvoiceItem línea de la nota, en el orden de Position.
type InvoiceItem struct {
	ID          string
	InvoiceID   string
	Position    int
	Description string
	Value       decimal.Decimal
}

// HasContact indica si la nota tiene nombre o teléfono de contacto.
func (i *Invoice) HasContact() bool {
	return i.ContactName != "" || i.PhoneNumber != ""
}
