// Package report construye el objeto de informe normalizado. El mismo objeto se devuelve
// como vista previa JSON, se renderiza a PDF y se guarda como instantánea compartida:
// todos los importes llegan ya redondeados y formateados.
package report

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Type tipo de informe (conjunto cerrado).
type Type string

const (
	TypeComplete         Type = "complete"
	TypeNumberValue      Type = "number-value"
	TypeValueOnly        Type = "value-only"
	TypeNumberItemsValue Type = "number-items-value"
	TypeContacts         Type = "contacts"
	TypePayments         Type = "payments"
	TypePaymentsByMonth  Type = "payments-by-month"
)

var typeLabels = map[Type]string{
	TypeComplete:         "Completo",
	TypeNumberValue:      "Nota + Valor",
	TypeValueOnly:        "Apenas Valores",
	TypeNumberItemsValue: "Nota + Itens",
	TypeContacts:         "Contactos",
	TypePayments:         "Pagamentos",
	TypePaymentsByMonth:  "Pagamentos por Mês",
}

// Types todos los tipos en orden de presentación.
func Types() []Type {
	return []Type{
		TypeComplete, TypeNumberValue, TypeValueOnly, TypeNumberItemsValue,
		TypeContacts, TypePayments, TypePaymentsByMonth,
	}
}

// ParseType valida el tag recibido.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if _, ok := typeLabels[t]; !ok {
		return "", fmt.Errorf("tipo de informe desconocido: %q", s)
	}
	return t, nil
}

// Label nombre corto en portugués ("Nota + Valor").
func (t Type) Label() string { return typeLabels[t] }

// ByMonth indica si el informe se pide por mes de referencia en lugar de por intervalo.
func (t Type) ByMonth() bool { return t == TypePaymentsByMonth }

// Tone tono visual de una línea de resumen.
type Tone string

const (
	ToneDefault   Tone = "default"
	ToneProjected Tone = "projected" // rojo
	ToneBonus     Tone = "bonus"     // verde
)

// SummaryLine línea del bloque de resumen.
type SummaryLine struct {
	Label   string          `json:"label"`
	Amount  decimal.Decimal `json:"amount"`
	Display string          `json:"display"`
	Tone    Tone            `json:"tone"`
}

// Table tabla del informe: columnas y celdas ya formateadas.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Totals totales de notas validadas del intervalo.
type Totals struct {
	InvoiceCount int             `json:"invoice_count"`
	ScannedCount int             `json:"scanned_count"`
	ScannedValue decimal.Decimal `json:"scanned_value"`
	ManualCount  int             `json:"manual_count"`
	ManualValue  decimal.Decimal `json:"manual_value"`
	TotalValue   decimal.Decimal `json:"total_value"`
	ItemCount    int             `json:"item_count"`
}

// RevenueLine pago incluido en el informe. Match indica la regla aplicada
// ("reference_month" o "date").
type RevenueLine struct {
	ID             string          `json:"id"`
	Date           string          `json:"date"`
	Amount         decimal.Decimal `json:"amount"`
	Display        string          `json:"display"`
	Description    string          `json:"description,omitempty"`
	ReferenceMonth string          `json:"reference_month,omitempty"`
	Match          string          `json:"match"`
}

// DebtLine deuda Corte & Cose del intervalo.
type DebtLine struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Display     string          `json:"display"`
	Description string          `json:"description,omitempty"`
}

// Report objeto de informe. Es la única fuente de verdad para las tres vistas.
type Report struct {
	Type           Type   `json:"type"`
	Title          string `json:"title"`   // título del enlace compartido
	Heading        string `json:"heading"` // cabecera del PDF/página
	PeriodLabel    string `json:"period_label"`
	From           string `json:"from"`
	To             string `json:"to"`
	ReferenceMonth string `json:"reference_month,omitempty"`

	Totals            Totals          `json:"totals"`
	ProjectedEarnings decimal.Decimal `json:"projected_earnings"`
	ProjectedDisplay  string          `json:"projected_display"`
	DebtsTotal        decimal.Decimal `json:"debts_total"`
	TotalToReceive    decimal.Decimal `json:"total_to_receive"`
	TotalPaid         decimal.Decimal `json:"total_paid"`
	Balance           decimal.Decimal `json:"balance"`

	Revenues          []RevenueLine `json:"revenues"`
	UnmatchedRevenues []RevenueLine `json:"unmatched_revenues"`
	Debts             []DebtLine    `json:"debts"`

	Summary     []SummaryLine `json:"summary"`
	Table       Table         `json:"table"`
	GeneratedAt time.Time     `json:"generated_at"`
}
