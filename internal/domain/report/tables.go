package report

import (
	"path"
	"strings"
	"time"

	"github.com/jhoicas/gestor-notas-api/internal/domain/entity"
	"github.com/jhoicas/gestor-notas-api/internal/domain/period"
	"github.com/jhoicas/gestor-notas-api/pkg/money"
)

type shapeFunc func(invoices []*entity.Invoice, r *Report) Table

// shapers una función de tabla por tipo; Build rechaza cualquier tipo fuera del mapa.
var shapers = map[Type]shapeFunc{
	TypeComplete:         completeTable,
	TypeNumberValue:      numberValueTable,
	TypeValueOnly:        valueOnlyTable,
	TypeNumberItemsValue: numberItemsValueTable,
	TypeContacts:         contactsTable,
	TypePayments:         paymentsTable,
	TypePaymentsByMonth:  paymentsByMonthTable,
}

const empty = "-"

func completeTable(invoices []*entity.Invoice, _ *Report) Table {
	t := Table{Columns: []string{"Data", "Nº Nota", "Descrição", "Valor", "Contacto", "Foto"}, Rows: [][]string{}}
	for _, inv := range invoices {
		for _, item := range inv.Items {
			t.Rows = append(t.Rows, []string{
				fmtDate(inv.DeliveryDate),
				orEmpty(inv.InvoiceNumber),
				item.Description,
				money.Format(money.Cents(item.Value)),
				orEmpty(inv.ContactName),
				shortRef(inv.ImageRef),
			})
		}
	}
	return t
}

func numberValueTable(invoices []*entity.Invoice, _ *Report) Table {
	t := Table{Columns: []string{"Nº Nota", "Data", "Valor Total"}, Rows: [][]string{}}
	for _, inv := range invoices {
		t.Rows = append(t.Rows, []string{
			orEmpty(inv.InvoiceNumber),
			fmtDate(inv.DeliveryDate),
			money.Format(money.Cents(inv.TotalValue)),
		})
	}
	return t
}

func valueOnlyTable(invoices []*entity.Invoice, _ *Report) Table {
	t := Table{Columns: []string{"Data", "Valor"}, Rows: [][]string{}}
	for _, inv := range invoices {
		t.Rows = append(t.Rows, []string{
			fmtDate(inv.DeliveryDate),
			money.Format(money.Cents(inv.TotalValue)),
		})
	}
	return t
}

// numberItemsValueTable número y total de la nota solo en la primera fila de sus ítems.
func numberItemsValueTable(invoices []*entity.Invoice, _ *Report) Table {
	t := Table{Columns: []string{"Nº Nota", "Item", "Valor Item", "Total Nota"}, Rows: [][]string{}}
	for _, inv := range invoices {
		for i, item := range inv.Items {
			number, total := "", ""
			if i == 0 {
				number = orEmpty(inv.InvoiceNumber)
				total = money.Format(money.Cents(inv.TotalValue))
			}
			t.Rows = append(t.Rows, []string{number, item.Description, money.Format(money.Cents(item.Value)), total})
		}
	}
	return t
}

func contactsTable(invoices []*entity.Invoice, _ *Report) Table {
	t := Table{Columns: []string{"Nº Nota", "Nome", "Telefone", "Data", "Valor"}, Rows: [][]string{}}
	for _, inv := range invoices {
		if !inv.HasContact() {
			continue
		}
		t.Rows = append(t.Rows, []string{
			orEmpty(inv.InvoiceNumber),
			orEmpty(inv.ContactName),
			orEmpty(inv.PhoneNumber),
			fmtDate(inv.DeliveryDate),
			money.Format(money.Cents(inv.TotalValue)),
		})
	}
	return t
}

func paymentsTable(_ []*entity.Invoice, r *Report) Table {
	t := Table{Columns: []string{"Data", "Valor", "Mês Ref.", "Descrição"}, Rows: [][]string{}}
	for _, rev := range r.Revenues {
		t.Rows = append(t.Rows, []string{
			fmtISODate(rev.Date),
			rev.Display,
			refMonthLabel(rev.ReferenceMonth),
			orEmpty(rev.Description),
		})
	}
	return t
}

func paymentsByMonthTable(_ []*entity.Invoice, r *Report) Table {
	t := Table{Columns: []string{"Data do Pagamento", "Valor", "Descrição"}, Rows: [][]string{}}
	for _, rev := range r.Revenues {
		t.Rows = append(t.Rows, []string{fmtISODate(rev.Date), rev.Display, orEmpty(rev.Description)})
	}
	return t
}

func fmtDate(t time.Time) string { return t.Format(dateLayout) }

func fmtISODate(s string) string {
	t, err := time.Parse(isoDateLayout, s)
	if err != nil {
		return s
	}
	return fmtDate(t)
}

func orEmpty(s string) string {
	if strings.TrimSpace(s) == "" {
		return empty
	}
	return s
}

// refMonthLabel "2024-03" → "mar/2024".
func refMonthLabel(key string) string {
	if key == "" {
		return empty
	}
	mr, err := period.ParseMonthKey(key)
	if err != nil {
		return key
	}
	return period.MonthAbbrev(mr.Start.Month()) + "/" + mr.Start.Format("2006")
}

// shortRef último segmento de la referencia de la imagen, recortado a 15 caracteres.
func shortRef(ref string) string {
	if ref == "" {
		return empty
	}
	name := []rune(path.Base(ref))
	if len(name) > 15 {
		return string(name[:12]) + "..."
	}
	return string(name)
}
