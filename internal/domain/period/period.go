// Package period resuelve la selección de período del usuario (mes o año) en rangos
// de fechas concretos e inclusivos.
package period

import (
	"fmt"
	"strconv"
	"time"
)

// Mode tipo de período seleccionado.
type Mode string

const (
	ModeMonth Mode = "month"
	ModeYear  Mode = "year"
)

// Inception primer día considerado en los saldos acumulados.
var Inception = Date(2024, time.January, 1)

// Range intervalo de fechas civiles [Start, End], inclusivo en ambos extremos.
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains indica si el día de t cae dentro del rango.
func (r Range) Contains(t time.Time) bool {
	d := Day(t)
	return !d.Before(r.Start) && !d.After(r.End)
}

// Overlaps indica si los dos rangos comparten al menos un día.
func (r Range) Overlaps(o Range) bool {
	return !r.Start.After(o.End) && !o.Start.After(r.End)
}

// Days número de días del rango.
func (r Range) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// Selection período elegido. Month es el índice 0–11 y solo aplica en ModeMonth.
type Selection struct {
	Mode  Mode
	Year  int
	Month int
}

// Windows los cuatro rangos que necesitan el dashboard y los saldos.
type Windows struct {
	Current        Range // (a) período seleccionado
	PreviousMonth  Range // (b) mes inmediatamente anterior
	SinceInception Range // (c) Inception → fin del período
	UpToPrevMonth  Range // (d) Inception → fin del mes anterior
}

// Resolve calcula los rangos de la selección. Cualquier combinación año/mes es válida.
// En modo año el "mes anterior" es diciembre del año previo.
func Resolve(sel Selection) Windows {
	var current Range
	var prevAnchor time.Time
	if sel.Mode == ModeYear {
		current = Range{Start: Date(sel.Year, time.January, 1), End: Date(sel.Year, time.December, 31)}
		prevAnchor = Date(sel.Year-1, time.December, 1)
	} else {
		current = MonthRange(sel.Year, time.Month(sel.Month+1))
		prevAnchor = current.Start.AddDate(0, -1, 0)
	}
	prev := MonthRange(prevAnchor.Year(), prevAnchor.Month())

	return Windows{
		Current:        current,
		PreviousMonth:  prev,
		SinceInception: Range{Start: Inception, End: current.End},
		UpToPrevMonth:  Range{Start: Inception, End: prev.End},
	}
}

// Key clave usada para emparejar pagos por mes de referencia:
// "YYYY-MM" en modo mes, "YYYY" en modo año.
func (s Selection) Key() string {
	if s.Mode == ModeYear {
		return strconv.Itoa(s.Year)
	}
	return MonthKey(s.Year, time.Month(s.Month+1))
}

// Label etiqueta legible: "Março 2024" o "2024".
func (s Selection) Label() string {
	if s.Mode == ModeYear {
		return strconv.Itoa(s.Year)
	}
	return fmt.Sprintf("%s %d", MonthName(time.Month(s.Month+1)), s.Year)
}

// Validate comprueba el modo y el índice de mes (lo usan los handlers antes de resolver).
func (s Selection) Validate() error {
	switch s.Mode {
	case ModeYear:
		return nil
	case ModeMonth:
		if s.Month < 0 || s.Month > 11 {
			return fmt.Errorf("mes fuera de rango: %d", s.Month)
		}
		return nil
	default:
		return fmt.Errorf("modo de período desconocido: %q", s.Mode)
	}
}

// MonthRange primer y último día del mes.
func MonthRange(year int, month time.Month) Range {
	start := Date(year, month, 1)
	return Range{Start: start, End: start.AddDate(0, 1, -1)}
}

// Date fecha civil en UTC a las 00:00.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Day trunca t a su fecha civil (UTC).
func Day(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// MonthKey "YYYY-MM".
func MonthKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// ParseMonthKey interpreta "YYYY-MM" y devuelve el rango de ese mes.
func ParseMonthKey(key string) (Range, error) {
	t, err := time.Parse("2006-01", key)
	if err != nil || len(key) != 7 {
		return Range{}, fmt.Errorf("mes de referencia inválido %q (formato YYYY-MM)", key)
	}
	return MonthRange(t.Year(), t.Month()), nil
}

var monthNames = [...]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

var monthAbbrev = [...]string{
	"jan", "fev", "mar", "abr", "mai", "jun",
	"jul", "ago", "set", "out", "nov", "dez",
}

// MonthName nombre del mes en portugués.
func MonthName(m time.Month) string {
	return monthNames[m-1]
}

// MonthAbbrev abreviatura del mes en portugués ("mar").
func MonthAbbrev(m time.Month) string {
	return monthAbbrev[m-1]
}

// ParseDate interpreta "YYYY-MM-DD" como fecha civil.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida %q (formato YYYY-MM-DD)", s)
	}
	return t, nil
}

// ParseRange construye un rango a partir de dos fechas "YYYY-MM-DD"; exige from <= to.
func ParseRange(from, to string) (Range, error) {
	if from == "" || to == "" {
		return Range{}, fmt.Errorf("las fechas inicial y final son obligatorias")
	}
	start, err := ParseDate(from)
	if err != nil {
		return Range{}, err
	}
	end, err := ParseDate(to)
	if err != nil {
		return Range{}, err
	}
	if end.Before(start) {
		return Range{}, fmt.Errorf("la fecha final %s es anterior a la inicial %s", to, from)
	}
	return Range{Start: start, End: end}, nil
}
