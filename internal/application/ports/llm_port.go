package ports

import (
	"context"

	"github.com/jhoicas/kirana-pos/internal/application/dto"
	"github.com/jhoicas/kirana-pos/internal/domain/entity"
)

// LLMService define el puerto de salida para el parseo asistido por IA de una línea de pedido.
// Cualquier adaptador (Gemini, Anthropic, mock) debe implementar esta interfaz.
// Solo se consulta cuando el pipeline determinista no encontró el artículo.
type LLMService interface {
	// ParseOrderLine interpreta input contra el catálogo y devuelve artículo, cantidad y unidad.
	// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
	ParseOrderLine(
		ctx context.Context,
		input string,
		catalog []*entity.InventoryItem,
	) (*dto.AIParsedLine, error)
}
