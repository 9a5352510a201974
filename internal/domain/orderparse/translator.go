package orderparse

import "strings"

// Translation par (término de origen → término canónico).
type Translation struct {
	Source    string
	Canonical string
}

// defaultTranslations lista ORDENADA: la primera coincidencia gana.
// Claves más largas van antes que las que contienen (ullipayalu antes que ullipaya).
var defaultTranslations = []Translation{
	{"chai patti", "tea"},
	{"tea podi", "tea"},
	{"godhuma pindi", "wheat flour"},
	{"gehun ka atta", "wheat flour"},
	{"kandi pappu", "toor dal"},
	{"arhar dal", "toor dal"},
	{"sarson tel", "mustard oil"},
	{"biyyam", "rice"},
	{"chawal", "rice"},
	{"chaval", "rice"},
	{"doodh", "milk"},
	{"paalu", "milk"},
	{"namak", "salt"},
	{"uppu", "salt"},
	{"cheeni", "sugar"},
	{"chakkera", "sugar"},
	{"shakkar", "sugar"},
	{"atta", "wheat flour"},
	{"pappu", "dal"},
	{"nune", "oil"},
	{"guddu", "egg"},
	{"ande", "egg"},
	{"anda", "egg"},
	{"aloo", "potato"},
	{"bangaladumpa", "potato"},
	{"pyaaz", "onion"},
	{"pyaz", "onion"},
	{"ullipayalu", "onion"},
	{"ullipaya", "onion"},
	{"tamatar", "tomato"},
	{"tamata", "tomato"},
	{"haldi", "turmeric"},
	{"pasupu", "turmeric"},
	{"sabun", "soap"},
	{"sabbu", "soap"},
	// escritura telugu y devanagari (tal como llega del dictado por voz)
	{"బియ్యం", "rice"},
	{"పాలు", "milk"},
	{"ఉప్పు", "salt"},
	{"చక్కెర", "sugar"},
	{"चावल", "rice"},
	{"दूध", "milk"},
	{"नमक", "salt"},
	{"चीनी", "sugar"},
}

// DefaultTranslations copia del diccionario incluido.
func DefaultTranslations() []Translation {
	out := make([]Translation, len(defaultTranslations))
	copy(out, defaultTranslations)
	return out
}

// Translator sustituye términos regionales por el vocabulario canónico del catálogo.
// Usa una lista ordenada (no un map) para que el resultado sea determinista.
type Translator struct {
	pairs []Translation
}

// NewTranslator construye el traductor; las claves se normalizan igual que el texto de entrada.
func NewTranslator(pairs []Translation) *Translator {
	t := &Translator{pairs: make([]Translation, 0, len(pairs))}
	for _, p := range pairs {
		src := NameKey(p.Source)
		if src == "" {
			continue
		}
		t.pairs = append(t.pairs, Translation{Source: src, Canonical: NameKey(p.Canonical)})
	}
	return t
}

// Translate aplica, en orden: coincidencia exacta de toda la frase; si no, la primera clave
// contenida como subcadena (una sola sustitución); si no, devuelve la frase sin cambios.
func (t *Translator) Translate(phrase string) string {
	if phrase == "" {
		return phrase
	}
	for _, p := range t.pairs {
		if phrase == p.Source {
			return p.Canonical
		}
	}
	for _, p := range t.pairs {
		if i := strings.Index(phrase, p.Source); i >= 0 {
			return phrase[:i] + p.Canonical + phrase[i+len(p.Source):]
		}
	}
	return phrase
}
