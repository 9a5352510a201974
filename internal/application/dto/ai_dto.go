package dto

import "github.com/shopspring/decimal"

// AIParsedLine respuesta del modelo para una línea de pedido.
// ItemName debe coincidir con un nombre del catálogo para aceptarse.
type AIParsedLine struct {
	Found    bool            `json:"found"`
	ItemName string          `json:"item_name"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
}
