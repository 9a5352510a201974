// Package inventory reglas de dominio del stock que no dependen de persistencia.
package inventory

import "github.com/shopspring/decimal"

// WeightedAverageCost costo promedio ponderado tras recibir mercadería.
// nuevoCosto = ((stock * costo) + (recibido * costoRecibido)) / (stock + recibido)
// Sin unidades resultantes devuelve el costo de la entrada.
func WeightedAverageCost(onHand, cost, received, receivedCost decimal.Decimal) decimal.Decimal {
	if onHand.LessThan(decimal.Zero) {
		onHand = decimal.Zero
	}
	total := onHand.Add(received)
	if total.LessThanOrEqual(decimal.Zero) {
		return receivedCost
	}
	num := onHand.Mul(cost).Add(received.Mul(receivedCost))
	return num.DivRound(total, 4)
}
