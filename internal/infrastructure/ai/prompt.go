package ai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kirana-pos/internal/application/dto"
	"github.com/jhoicas/kirana-pos/internal/domain/entity"
)

// maxCatalogLines tope de artículos enviados en el prompt.
const maxCatalogLines = 300

const systemPromptTemplate = `You are a smart shop assistant that parses customer orders in any language (Hindi, Telugu, English, Hinglish, Tenglish).

Available inventory:
%s

Parse the user's input and extract:
1. Item name (match to the closest inventory item, copy its name exactly)
2. Quantity (number)
3. Unit (convert if needed: 1000g=1kg, 1000ml=1l)

Examples:
- "2kg chawal" -> item: "Rice", quantity: 2, unit: "kg"
- "rice 2 kilo" -> item: "Rice", quantity: 2, unit: "kg"
- "ek litre doodh" -> item: "Milk", quantity: 1, unit: "l"
- "2 packet namak" -> item: "Salt", quantity: 2, unit: "pack"

Return ONLY a JSON object, no markdown, with these fields:
{"found": <boolean>, "item_name": "<string>", "quantity": <number>, "unit": "<string>"}`

// Opciones comunes de los adaptadores.
type options struct {
	endpoint string
	client   httpDoer
}

// Option configura un adaptador (endpoint alternativo en tests, cliente HTTP propio).
type Option func(*options)

// WithEndpoint reemplaza la URL base de la API.
func WithEndpoint(url string) Option {
	return func(o *options) { o.endpoint = url }
}

// WithHTTPClient reemplaza el cliente HTTP.
func WithHTTPClient(c httpDoer) Option {
	return func(o *options) { o.client = c }
}

// buildSystemPrompt lista el catálogo con precio, unidad y stock.
func buildSystemPrompt(catalog []*entity.InventoryItem) string {
	var b strings.Builder
	for i, it := range catalog {
		if i == maxCatalogLines {
			break
		}
		fmt.Fprintf(&b, "- %s (₹%s/%s, stock: %s)\n", it.Name, it.SellingPrice.String(), it.Unit, it.QuantityOnHand.String())
	}
	return fmt.Sprintf(systemPromptTemplate, strings.TrimRight(b.String(), "\n"))
}

// llmParsePayload es el JSON que esperamos recibir del modelo.
type llmParsePayload struct {
	Found    bool        `json:"found"`
	ItemName string      `json:"item_name"`
	Quantity json.Number `json:"quantity"`
	Unit     string      `json:"unit"`
}

// jsonBlockRe extrae el primer objeto JSON del texto aunque el modelo lo envuelva en markdown.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// decodeParsedLine interpreta la respuesta del modelo. Cantidad ausente o <= 0 se toma como 1.
func decodeParsedLine(rawText string) (*dto.AIParsedLine, error) {
	cleanJSON := extractJSON(rawText)
	if cleanJSON == "" {
		return nil, fmt.Errorf("AI: no se encontró JSON válido en la respuesta del modelo (respuesta: %s)", rawText)
	}
	dec := json.NewDecoder(strings.NewReader(cleanJSON))
	dec.UseNumber()
	var p llmParsePayload
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("AI: parsear JSON de la línea: %w (JSON extraído: %s)", err, cleanJSON)
	}

	qty := decimal.NewFromInt(1)
	if p.Quantity != "" {
		if q, err := decimal.NewFromString(p.Quantity.String()); err == nil && q.GreaterThan(decimal.Zero) {
			qty = q
		}
	}
	return &dto.AIParsedLine{
		Found:    p.Found && strings.TrimSpace(p.ItemName) != "",
		ItemName: strings.TrimSpace(p.ItemName),
		Quantity: qty,
		Unit:     strings.ToLower(strings.TrimSpace(p.Unit)),
	}, nil
}

// extractJSON extrae el primer objeto JSON bien formado de un texto libre.
// Estrategia en dos pasos:
//  1. Eliminar bloques de código markdown (```json … ``` o ``` … ```).
//  2. Usar regex para capturar el primer bloque { … }.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		if end := strings.LastIndex(after, "```"); end != -1 {
			after = after[:end]
		}
		text = strings.TrimSpace(after)
	}
	if strings.HasPrefix(text, "{") {
		return text
	}
	return strings.TrimSpace(jsonBlockRe.FindString(text))
}
