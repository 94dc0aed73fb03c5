// Package money formatea importes en euros y construye nombres de archivo seguros
// a partir de títulos de informes.
package money

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Symbol moneda única de la aplicación.
const Symbol = "€"

// Cents redondea a dos decimales (forma final de cualquier importe mostrado).
func Cents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Format devuelve el importe con símbolo y dos decimales: "€ 1000.00".
func Format(d decimal.Decimal) string {
	return Symbol + " " + d.StringFixed(2)
}

// Parse lee un importe escrito a mano o exportado de una hoja de cálculo:
// "1234.56", "1.234,56", "€ 12,50" o "12,5". Con ambos separadores, el último es el decimal.
// Sin coma, los puntos seguidos de grupos de tres dígitos son de millar como en
// portugués ("1.234" = 1234); "1.23" o "0.500" siguen siendo decimales.
func Parse(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), Symbol))
	clean = strings.ReplaceAll(clean, " ", "")
	if clean == "" {
		return decimal.Zero, fmt.Errorf("importe vacío")
	}
	dot, comma := strings.LastIndex(clean, "."), strings.LastIndex(clean, ",")
	switch {
	case comma > dot:
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.Replace(clean, ",", ".", 1)
	case dot > comma && comma >= 0:
		clean = strings.ReplaceAll(clean, ",", "")
	case comma < 0 && thousandsOnly(clean):
		clean = strings.ReplaceAll(clean, ".", "")
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("importe inválido %q", s)
	}
	return d, nil
}

// thousandsOnly indica si s tiene la forma "1.234" o "12.345.678": primer grupo de
// uno a tres dígitos sin cero inicial y el resto de exactamente tres.
func thousandsOnly(s string) bool {
	groups := strings.Split(strings.TrimPrefix(s, "-"), ".")
	if len(groups) < 2 || len(groups[0]) == 0 || len(groups[0]) > 3 || groups[0][0] == '0' {
		return false
	}
	for i, g := range groups {
		if i > 0 && len(g) != 3 {
			return false
		}
		for _, r := range g {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}

// FileName convierte un título ("Pagamentos - Março 2024") en un nombre de archivo
// ASCII en minúsculas ("pagamentos_marco_2024"). Los acentos se eliminan por
// descomposición NFD.
func FileName(title string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, title)
	if err != nil {
		plain = title
	}

	var b strings.Builder
	lastSep := true
	for _, r := range strings.ToLower(plain) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			lastSep = false
		case r == '-' && !lastSep:
			// conserva guiones de fechas (2024-03)
			b.WriteRune(r)
			lastSep = true
		default:
			if !lastSep {
				b.WriteRune('_')
				lastSep = true
			}
		}
	}
	out := strings.Trim(b.String(), "_-")
	if out == "" {
		return "relatorio"
	}
	return out
}
