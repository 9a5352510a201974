package orderparse_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kirana-pos/internal/domain/entity"
	"github.com/jhoicas/kirana-pos/internal/domain/orderparse"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func item(id, name, unit string, stock int64) *entity.InventoryItem {
	return &entity.InventoryItem{
		ID:             id,
		OwnerID:        "owner-1",
		Name:           name,
		Unit:           unit,
		QuantityOnHand: decimal.NewFromInt(stock),
		CostPrice:      decimal.NewFromInt(40),
		SellingPrice:   decimal.NewFromInt(50),
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Normalize
// ──────────────────────────────────────────────────────────────────────────────

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"trim y minúsculas", "  Rice  ", "rice"},
		{"quita puntuación", "2kg, rice!", "2kg rice"},
		{"conserva punto decimal", "2.5kg sugar.", "2.5kg sugar"},
		{"barras y símbolos", "rice/₹50", "rice 50"},
		{"número en inglés", "Two kg rice", "2 kg rice"},
		{"artículo a", "a milk", "1 milk"},
		{"telugu", "rendu biyyam", "2 biyyam"},
		{"hindi", "ek litre doodh", "1 litre doodh"},
		{"solo el primer token", "rice two", "rice two"},
		{"coma de miles", "1,000g rice", "1000g rice"},
		{"coma de miles con decimal", "1,250.5 ml oil", "1250.5 ml oil"},
		{"coma que no es de miles", "2,5kg rice", "2 5kg rice"},
		{"coma de miles al final", "rice 1,000", "rice 1000"},
		{"vacío", "   ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, orderparse.Normalize(tc.in))
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Extract
// ──────────────────────────────────────────────────────────────────────────────

func TestExtract_NumeroConUnidad(t *testing.T) {
	ext := orderparse.Extract("2kg rice")
	assert.True(t, ext.Found)
	assert.True(t, dec("2").Equal(ext.Quantity))
	assert.Equal(t, "kg", ext.Unit)
	assert.Equal(t, "rice", ext.Remainder)
}

func TestExtract_Decimal(t *testing.T) {
	ext := orderparse.Extract("1.5l milk")
	assert.True(t, dec("1.5").Equal(ext.Quantity))
	assert.Equal(t, "l", ext.Unit)
	assert.Equal(t, "milk", ext.Remainder)
}

func TestExtract_UnidadSeparadaQuedaEnLaFrase(t *testing.T) {
	ext := orderparse.Extract("2 kg rice")
	assert.True(t, dec("2").Equal(ext.Quantity))
	assert.Equal(t, "", ext.Unit)
	assert.Equal(t, "kg rice", ext.Remainder)
}

func TestExtract_SinNumeroUsaCantidadUno(t *testing.T) {
	ext := orderparse.Extract("rice 2")
	assert.False(t, ext.Found)
	assert.True(t, dec("1").Equal(ext.Quantity))
	assert.Equal(t, "", ext.Unit)
	assert.Equal(t, "rice 2", ext.Remainder)
}

func TestExtract_CeroONegativoEsSinNumero(t *testing.T) {
	for _, in := range []string{"0 rice", "0.0kg rice", "-3 rice"} {
		ext := orderparse.Extract(in)
		assert.False(t, ext.Found, in)
		assert.True(t, dec("1").Equal(ext.Quantity), in)
		assert.Equal(t, in, ext.Remainder, in)
	}
}

func TestExtract_ComaDeMiles(t *testing.T) {
	ext := orderparse.Extract(orderparse.Normalize("1,000g rice"))
	assert.True(t, dec("1000").Equal(ext.Quantity), ext.Quantity.String())
	assert.Equal(t, "g", ext.Unit)
	assert.Equal(t, "rice", ext.Remainder)
}

// Para cualquier entrada la cantidad extraída es > 0.
func TestExtract_CantidadSiemprePositiva(t *testing.T) {
	inputs := []string{"", "rice", "0", "-1kg", "00", "3", "2.5.1kg x", "999999999999999999999kg", "kg", ". . ."}
	for _, in := range inputs {
		ext := orderparse.Extract(orderparse.Normalize(in))
		assert.True(t, ext.Quantity.GreaterThan(decimal.Zero), "entrada %q", in)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Translator
// ──────────────────────────────────────────────────────────────────────────────

func TestTranslator_ExactoSustituyeTodo(t *testing.T) {
	tr := orderparse.NewTranslator(orderparse.DefaultTranslations())
	assert.Equal(t, "rice", tr.Translate("chawal"))
	assert.Equal(t, "tea", tr.Translate("chai patti"))
}

func TestTranslator_SubcadenaUnaSolaSustitucion(t *testing.T) {
	tr := orderparse.NewTranslator(orderparse.DefaultTranslations())
	assert.Equal(t, "basmati rice", tr.Translate("basmati chawal"))
	// solo se aplica la primera clave de la lista, aunque haya otra en la frase
	assert.Equal(t, "rice doodh", tr.Translate("chawal doodh"))
}

func TestTranslator_OrdenDeterminista(t *testing.T) {
	tr := orderparse.NewTranslator([]orderparse.Translation{
		{Source: "ullipayalu", Canonical: "onion"},
		{Source: "ullipaya", Canonical: "onion"},
	})
	assert.Equal(t, "red onion", tr.Translate("red ullipayalu"))

	reversed := orderparse.NewTranslator([]orderparse.Translation{
		{Source: "ullipaya", Canonical: "onion"},
		{Source: "ullipayalu", Canonical: "onion"},
	})
	assert.Equal(t, "red onionlu", reversed.Translate("red ullipayalu"))
}

func TestTranslator_SinCoincidencia(t *testing.T) {
	tr := orderparse.NewTranslator(orderparse.DefaultTranslations())
	assert.Equal(t, "biscuits", tr.Translate("biscuits"))
	assert.Equal(t, "", tr.Translate(""))
}

func TestTranslator_EscrituraTelugu(t *testing.T) {
	tr := orderparse.NewTranslator(orderparse.DefaultTranslations())
	assert.Equal(t, "rice", tr.Translate("బియ్యం"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Parser (pipeline completo)
// ──────────────────────────────────────────────────────────────────────────────

func TestParse_CantidadUnidadYArticulo(t *testing.T) {
	p := orderparse.NewParser(nil)
	catalog := []*entity.InventoryItem{item("i-1", "Rice", "kg", 10)}

	res := p.Parse("2kg rice", catalog)
	m, ok := res.(orderparse.Matched)
	require.True(t, ok, "debe resolver contra el catálogo")
	assert.Equal(t, "i-1", m.InventoryID())
	assert.True(t, dec("2").Equal(m.Quantity))
	assert.Equal(t, "kg", m.Unit)
	assert.False(t, m.Exact)
}

func TestParse_BypassExacto(t *testing.T) {
	p := orderparse.NewParser(nil)
	catalog := []*entity.InventoryItem{item("i-1", "Rice", "kg", 10)}

	m, ok := p.Parse("Rice", catalog).(orderparse.Matched)
	require.True(t, ok)
	assert.True(t, m.Exact)
	assert.True(t, dec("1").Equal(m.Quantity))
	assert.Equal(t, "kg", m.Unit)
}

func TestParse_BypassExactoIgnoraCantidadExtraida(t *testing.T) {
	p := orderparse.NewParser(nil)
	catalog := []*entity.InventoryItem{
		item("i-1", "7 Up", "pcs", 10),
		item("i-2", "Up Beat Soap", "pcs", 10),
	}
	m, ok := p.Parse("7 up!", catalog).(orderparse.Matched)
	require.True(t, ok)
	assert.Equal(t, "i-1", m.InventoryID())
	assert.True(t, dec("1").Equal(m.Quantity))
}

func TestParse_TraduccionRegional(t *testing.T) {
	p := orderparse.NewParser(nil)
	catalog := []*entity.InventoryItem{
		item("i-1", "Milk", "l", 20),
		item("i-2", "Rice", "kg", 10),
	}
	m, ok := p.Parse("rendu chawal", catalog).(orderparse.Matched)
	require.True(t, ok)
	assert.Equal(t, "i-2", m.InventoryID())
	assert.True(t, dec("2").Equal(m.Quantity))
	assert.Equal(t, "kg", m.Unit, "sin unidad extraída se usa la del catálogo")
}

func TestParse_ContencionPrimeraPorNombre(t *testing.T) {
	p := orderparse.NewParser(nil)
	catalog := []*entity.InventoryItem{
		item("i-9", "Sona Masoori Rice", "kg", 10),
		item("i-3", "Basmati Rice", "kg", 10),
	}
	m, ok := p.Parse("3 rice", catalog).(orderparse.Matched)
	require.True(t, ok)
	assert.Equal(t, "i-3", m.InventoryID(), "Basmati < Sona en orden alfabético")
}

func TestParse_SinArticulo(t *testing.T) {
	p := orderparse.NewParser(nil)
	catalog := []*entity.InventoryItem{item("i-1", "Rice", "kg", 10)}

	u, ok := p.Parse("3 biscuits", catalog).(orderparse.Unmatched)
	require.True(t, ok)
	assert.Equal(t, "biscuits", u.Phrase())
	assert.True(t, dec("3").Equal(u.Quantity))
	assert.Equal(t, orderparse.DefaultUnit, u.Unit)

	u2, ok := p.Parse("2pkt biscuits", catalog).(orderparse.Unmatched)
	require.True(t, ok)
	assert.Equal(t, "pkt", u2.Unit)
}

func TestParse_FraseVaciaNoCoincide(t *testing.T) {
	p := orderparse.NewParser(nil)
	catalog := []*entity.InventoryItem{item("i-1", "Rice", "kg", 10)}

	_, ok := p.Parse("5", catalog).(orderparse.Unmatched)
	assert.True(t, ok, "un número solo no debe resolver al primer artículo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Unidades
// ──────────────────────────────────────────────────────────────────────────────

func TestConvertQuantity(t *testing.T) {
	q, err := orderparse.ConvertQuantity(dec("500"), "g", "kg")
	require.NoError(t, err)
	assert.True(t, dec("0.5").Equal(q))

	q, err = orderparse.ConvertQuantity(dec("2"), "kilo", "kg")
	require.NoError(t, err)
	assert.True(t, dec("2").Equal(q))

	q, err = orderparse.ConvertQuantity(dec("1"), "dozen", "pcs")
	require.NoError(t, err)
	assert.True(t, dec("12").Equal(q))

	q, err = orderparse.ConvertQuantity(dec("18"), "pcs", "dozen")
	require.NoError(t, err)
	assert.True(t, dec("1.5").Equal(q))

	_, err = orderparse.ConvertQuantity(dec("2"), "packet", "kg")
	assert.ErrorIs(t, err, orderparse.ErrIncompatibleUnits)
	_, err = orderparse.ConvertQuantity(dec("2"), "l", "kg")
	assert.ErrorIs(t, err, orderparse.ErrIncompatibleUnits)
}

func TestConvertQuantity_InexactRejected(t *testing.T) {
	for _, raw := range []string{"1", "5", "7"} {
		q, err := orderparse.ConvertQuantity(dec(raw), "pcs", "dozen")
		assert.ErrorIs(t, err, orderparse.ErrInexactConversion, raw)
		assert.True(t, dec(raw).Equal(q), "la cantidad original se devuelve sin tocar")
	}
}
