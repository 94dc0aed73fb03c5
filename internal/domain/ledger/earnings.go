// Package ledger contiene el motor de agregación: funciones puras sobre notas, pagos y
// deudas que producen los totales del dashboard y de los informes.
package ledger

import "github.com/shopspring/decimal"

// ProjectedShare parte del valor facturado que corresponde al usuario (30%).
var ProjectedShare = decimal.New(3, -1)

// ProjectedEarnings ganancia proyectada = total × 0,30 (sin redondeo).
func ProjectedEarnings(invoiceTotal decimal.Decimal) decimal.Decimal {
	return invoiceTotal.Mul(ProjectedShare)
}

// Balance saldo a recibir:
// ProjectedEarnings(facturado) + deudas − pagos emparejados.
// Puede ser negativo si se pagó de más.
func Balance(invoiceTotal, debts, paid decimal.Decimal) decimal.Decimal {
	return ProjectedEarnings(invoiceTotal).Add(debts).Sub(paid)
}

// CarriedBalance saldo arrastrado: el excedente no se arrastra como deuda negativa.
func CarriedBalance(balance decimal.Decimal) decimal.Decimal {
	if balance.IsNegative() {
		return decimal.Zero
	}
	return balance
}
