package ledger

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestor-notas-api/internal/domain/entity"
	"github.com/jhoicas/gestor-notas-api/internal/domain/period"
)

// MatchKind regla que decidió la pertenencia de un pago a un período.
type MatchKind int

const (
	// MatchedByReferenceMonth el pago tiene mes de referencia: solo cuenta ese mes,
	// aunque se haya pagado en otro.
	MatchedByReferenceMonth MatchKind = iota + 1
	// MatchedByDate sin mes de referencia: cuenta la fecha de pago.
	MatchedByDate
)

func (k MatchKind) String() string {
	switch k {
	case MatchedByReferenceMonth:
		return "reference_month"
	case MatchedByDate:
		return "date"
	default:
		return "unknown"
	}
}

// KindOf devuelve la regla aplicable a un pago.
func KindOf(r *entity.Revenue) MatchKind {
	if r.HasReferenceMonth() {
		return MatchedByReferenceMonth
	}
	return MatchedByDate
}

// RevenueMatch pago clasificado junto con la regla usada.
type RevenueMatch struct {
	Revenue *entity.Revenue
	Kind    MatchKind
}

// MatchResult pagos que pertenecen al período y los que no.
type MatchResult struct {
	Matched   []RevenueMatch
	Unmatched []RevenueMatch
}

// Total suma de los pagos emparejados.
func (m MatchResult) Total() decimal.Decimal {
	total := decimal.Zero
	for _, rm := range m.Matched {
		total = total.Add(rm.Revenue.Amount)
	}
	return total
}

// MatchedRevenues los pagos emparejados sin la etiqueta.
func (m MatchResult) MatchedRevenues() []*entity.Revenue {
	out := make([]*entity.Revenue, len(m.Matched))
	for i, rm := range m.Matched {
		out[i] = rm.Revenue
	}
	return out
}

// MatchRevenuesToPeriod clasifica los pagos respecto a la selección:
// con mes de referencia se compara contra sel.Key() (igualdad en modo mes, prefijo de
// año en modo año) ignorando la fecha de pago; sin él, la fecha de pago debe caer en r.
func MatchRevenuesToPeriod(revenues []*entity.Revenue, sel period.Selection, r period.Range) MatchResult {
	key := sel.Key()
	var res MatchResult
	for _, rev := range revenues {
		if rev == nil {
			continue
		}
		kind := KindOf(rev)
		var in bool
		switch kind {
		case MatchedByReferenceMonth:
			if sel.Mode == period.ModeYear {
				in = strings.HasPrefix(rev.ReferenceMonth, key)
			} else {
				in = rev.ReferenceMonth == key
			}
		case MatchedByDate:
			in = r.Contains(rev.RevenueDate)
		}
		if in {
			res.Matched = append(res.Matched, RevenueMatch{Revenue: rev, Kind: kind})
		} else {
			res.Unmatched = append(res.Unmatched, RevenueMatch{Revenue: rev, Kind: kind})
		}
	}
	return res
}

// MatchRevenuesToRange clasifica los pagos dentro de un rango arbitrario (informes por
// intervalo y saldos acumulados). Con mes de referencia basta con que ese mes se solape
// con r; sin él, la fecha de pago debe caer en r.
func MatchRevenuesToRange(revenues []*entity.Revenue, r period.Range) MatchResult {
	var res MatchResult
	for _, rev := range revenues {
		if rev == nil {
			continue
		}
		rm := RevenueMatch{Revenue: rev, Kind: KindOf(rev)}
		if inRange(rev, r) {
			res.Matched = append(res.Matched, rm)
		} else {
			res.Unmatched = append(res.Unmatched, rm)
		}
	}
	return res
}

func inRange(rev *entity.Revenue, r period.Range) bool {
	if rev.HasReferenceMonth() {
		if mr, err := period.ParseMonthKey(rev.ReferenceMonth); err == nil {
			return mr.Overlaps(r)
		}
	}
	return r.Contains(rev.RevenueDate)
}

// PaidIn filtra los pagos por fecha de pago dentro de r.
func PaidIn(revenues []RevenueMatch, r period.Range) []RevenueMatch {
	var out []RevenueMatch
	for _, rm := range revenues {
		if r.Contains(rm.Revenue.RevenueDate) {
			out = append(out, rm)
		}
	}
	return out
}
