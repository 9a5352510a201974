package orderparse

import "github.com/jhoicas/kirana-pos/internal/domain/entity"

// Parser encadena normalizador, extractor, traductor y matcher.
type Parser struct {
	translator *Translator
}

// NewParser construye el parser. Con translator nil usa el diccionario incluido.
func NewParser(translator *Translator) *Parser {
	if translator == nil {
		translator = NewTranslator(defaultTranslations)
	}
	return &Parser{translator: translator}
}

// Parse convierte el texto crudo en un Result contra el snapshot del catálogo.
// Nunca falla: sin número reconocible la cantidad es 1; sin artículo devuelve Unmatched.
func (p *Parser) Parse(raw string, catalog []*entity.InventoryItem) Result {
	ext := Extract(Normalize(raw))
	phrase := p.translator.Translate(ext.Remainder)
	return Match(raw, ext, phrase, catalog)
}
