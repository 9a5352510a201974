// Package orderparse convierte texto libre de pedido ("2kg chawal", "okati doodh") en una línea
// estructurada contra el catálogo de la tienda.
//
// Pipeline determinista, sin estado compartido:
//
//	texto crudo → Normalize → Extract → Translator.Translate → Match → Result
//
// Todas las funciones son puras y seguras para uso concurrente; el catálogo se recibe
// como snapshot de solo lectura.
package orderparse

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// numberWords tabla cerrada de números en palabras (solo se revisa el primer token).
// Inglés, transliteración telugu y transliteración hindi.
var numberWords = map[string]string{
	// inglés
	"a": "1", "an": "1", "one": "1", "two": "2", "three": "3", "four": "4", "five": "5",
	"six": "6", "seven": "7", "eight": "8", "nine": "9", "ten": "10",
	// telugu
	"okati": "1", "oka": "1", "rendu": "2", "moodu": "3", "mudu": "3", "naalugu": "4",
	"nalugu": "4", "aidu": "5", "ayidu": "5", "aaru": "6", "eedu": "7", "enimidi": "8",
	"tommidi": "9", "padi": "10",
	// hindi
	"ek": "1", "do": "2", "teen": "3", "char": "4", "chaar": "4", "paanch": "5", "panch": "5",
	"chhe": "6", "saat": "7", "aath": "8", "nau": "9", "das": "10",
}

// Normalize limpia el texto crudo: trim, quita puntuación (salvo el punto decimal),
// pasa a minúsculas, colapsa espacios y sustituye el PRIMER token si es un número en palabras.
// Números compuestos o en medio de la frase no se reconocen (limitación conocida).
func Normalize(raw string) string {
	fields := strings.Fields(foldKey(raw))
	if len(fields) == 0 {
		return ""
	}
	if digits, ok := numberWords[fields[0]]; ok {
		fields[0] = digits
	}
	return strings.Join(fields, " ")
}

// NameKey clave de comparación exacta: sin puntuación, minúsculas y espacios colapsados,
// sin sustituir números en palabras. Se usa para el bypass exacto contra el catálogo.
func NameKey(s string) string {
	return strings.Join(strings.Fields(foldKey(s)), " ")
}

func foldKey(s string) string {
	s = norm.NFC.String(strings.TrimSpace(s))
	s = stripPunctuation(s)
	// cases.Caser no es seguro entre goroutines: uno por llamada.
	return cases.Lower(language.Und).String(s)
}

// stripPunctuation reemplaza por espacio signos y símbolos. El guion se conserva, el punto
// solo sobrevive entre dos dígitos ("2.5kg") y la coma de miles se elimina ("1,000g").
func stripPunctuation(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s))
	for i, r := range runes {
		switch {
		case r == '.':
			if i > 0 && i < len(runes)-1 && unicode.IsDigit(runes[i-1]) && unicode.IsDigit(runes[i+1]) {
				b.WriteRune(r)
			} else {
				b.WriteRune(' ')
			}
		case r == ',' && isThousandsComma(runes, i):
			// separador de miles: "1,000g" → "1000g"
		case r == '-':
			b.WriteRune(r)
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isThousandsComma coma precedida por un dígito y seguida por exactamente tres dígitos.
func isThousandsComma(runes []rune, i int) bool {
	if i == 0 || i+3 >= len(runes) || !unicode.IsDigit(runes[i-1]) {
		return false
	}
	for j := i + 1; j <= i+3; j++ {
		if !unicode.IsDigit(runes[j]) {
			return false
		}
	}
	return i+4 == len(runes) || !unicode.IsDigit(runes[i+4])
}
