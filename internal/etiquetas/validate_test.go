package etiquetas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docesmara/etiquetas/internal/apperror"
)

// validInput returns a fully valid request body with numbers encoded as
// strings, the way the bakery form submits them.
func validInput() *EtiquetaInput {
	return &EtiquetaInput{
		Nome:              "Bolo de Chocolate",
		Descricao:         "Bolo de chocolate com cobertura de brigadeiro",
		DataFabricacao:    "2024-03-01",
		DataValidade:      "2024-03-06",
		Porcao:            "100",
		UnidadePorcao:     "g",
		ValorEnergetico:   "320",
		UnidadeEnergetico: "kcal",
		Carboidratos:      "42",
		Acucares:          "28",
		Proteinas:         "4.5",
		GordurasTotais:    "14",
		GordurasSaturadas: "6",
		Sodio:             "150",
		Fibras:            "1.8",
	}
}

func fieldMessages(fields []apperror.FieldError) map[string]string {
	m := make(map[string]string, len(fields))
	for _, f := range fields {
		m[f.Campo] = f.Mensagem
	}
	return m
}

func TestValidateCoercesNumericStrings(t *testing.T) {
	e, fields := Validate(validInput())

	require.Nil(t, fields)
	require.NotNil(t, e)
	assert.Equal(t, "Bolo de Chocolate", e.Nome)
	assert.Equal(t, 100.0, e.Porcao)
	assert.Equal(t, 320.0, e.ValorEnergetico)
	assert.Equal(t, 4.5, e.Proteinas)
	assert.Equal(t, 1.8, e.Fibras)
}

func TestValidateAcceptsJSONNumbers(t *testing.T) {
	input := validInput()
	input.Porcao = 100.0
	input.Carboidratos = 42.0
	input.Sodio = 150.0

	e, fields := Validate(input)

	require.Nil(t, fields)
	assert.Equal(t, 100.0, e.Porcao)
	assert.Equal(t, 42.0, e.Carboidratos)
}

func TestValidateDefaultsUnits(t *testing.T) {
	input := validInput()
	input.UnidadePorcao = ""
	input.UnidadeEnergetico = ""

	e, fields := Validate(input)

	require.Nil(t, fields)
	assert.Equal(t, "g", e.UnidadePorcao)
	assert.Equal(t, "kcal", e.UnidadeEnergetico)
}

func TestValidateReportsEveryFailingField(t *testing.T) {
	input := validInput()
	input.Nome = "Bo"
	input.Descricao = "Bolo"
	input.DataFabricacao = ""
	input.Porcao = "0"
	input.Carboidratos = "-1"
	input.Sodio = "abc"

	e, fields := Validate(input)

	require.Nil(t, e)
	messages := fieldMessages(fields)
	assert.Len(t, fields, 6)
	assert.Equal(t, "O nome deve ter pelo menos 3 caracteres", messages["nome"])
	assert.Equal(t, "A descrição deve ter pelo menos 5 caracteres", messages["descricao"])
	assert.Equal(t, "Selecione a data de fabricação", messages["dataFabricacao"])
	assert.Equal(t, "Deve ser maior que zero", messages["porcao"])
	assert.Equal(t, "Não pode ser negativo", messages["carboidratos"])
	assert.Equal(t, "Deve ser um número", messages["sodio"])
}

func TestValidateMinLengthCountsRunes(t *testing.T) {
	input := validInput()
	input.Nome = "Pão" // 3 runes, 4 bytes

	_, fields := Validate(input)

	assert.Nil(t, fields)
}

func TestValidateRejectsMalformedDates(t *testing.T) {
	input := validInput()
	input.DataFabricacao = "01/03/2024"
	input.DataValidade = "2024-13-40"

	_, fields := Validate(input)

	messages := fieldMessages(fields)
	assert.Equal(t, "Data inválida, use o formato AAAA-MM-DD", messages["dataFabricacao"])
	assert.Equal(t, "Data inválida, use o formato AAAA-MM-DD", messages["dataValidade"])
}

func TestValidateMissingNumericFields(t *testing.T) {
	input := validInput()
	input.Porcao = nil
	input.Fibras = nil

	_, fields := Validate(input)

	messages := fieldMessages(fields)
	assert.Equal(t, "Deve ser um número", messages["porcao"])
	assert.Equal(t, "Deve ser um número", messages["fibras"])
}

func TestValidateRejectsNonFiniteValues(t *testing.T) {
	// ParseFloat accepts these spellings, but an accepted NaN would pass
	// both sign checks and then poison every response that re-serializes
	// the record (json.Marshal fails on NaN/Inf).
	input := validInput()
	input.Porcao = "NaN"
	input.Sodio = "Inf"
	input.Fibras = "-Infinity"
	input.Carboidratos = math.Inf(1)
	input.Proteinas = math.NaN()

	e, fields := Validate(input)

	require.Nil(t, e)
	messages := fieldMessages(fields)
	assert.Len(t, fields, 5)
	assert.Equal(t, "Deve ser um número", messages["porcao"])
	assert.Equal(t, "Deve ser um número", messages["sodio"])
	assert.Equal(t, "Deve ser um número", messages["fibras"])
	assert.Equal(t, "Deve ser um número", messages["carboidratos"])
	assert.Equal(t, "Deve ser um número", messages["proteinas"])
}

func TestValidateZeroNutrientsAreAllowed(t *testing.T) {
	input := validInput()
	input.Acucares = "0"
	input.Fibras = 0.0

	e, fields := Validate(input)

	require.Nil(t, fields)
	assert.Equal(t, 0.0, e.Acucares)
	assert.Equal(t, 0.0, e.Fibras)
}

func TestValidateAdicionais(t *testing.T) {
	input := validInput()
	input.Adicionais = []NutrienteAdicionalInput{
		{Nome: "Cálcio", Valor: "120", Unidade: "mg"},
		{Nome: "Ferro", Valor: 2.5, Unidade: "mg"},
	}

	e, fields := Validate(input)

	require.Nil(t, fields)
	require.Len(t, e.Adicionais, 2)
	assert.Equal(t, NutrienteAdicional{Nome: "Cálcio", Valor: 120, Unidade: "mg"}, e.Adicionais[0])
	assert.Equal(t, NutrienteAdicional{Nome: "Ferro", Valor: 2.5, Unidade: "mg"}, e.Adicionais[1])
}

func TestValidateAdicionaisElementErrors(t *testing.T) {
	input := validInput()
	input.Adicionais = []NutrienteAdicionalInput{
		{Nome: "Cálcio", Valor: "120", Unidade: "mg"},
		{Nome: "", Valor: "-1", Unidade: ""},
	}

	e, fields := Validate(input)

	require.Nil(t, e)
	messages := fieldMessages(fields)
	assert.Len(t, fields, 3)
	assert.Equal(t, "Informe o nome do nutriente", messages["nutrientesAdicionais[1].nome"])
	assert.Equal(t, "Não pode ser negativo", messages["nutrientesAdicionais[1].valor"])
	assert.Equal(t, "Informe a unidade", messages["nutrientesAdicionais[1].unidade"])
}

func TestValidateTrimsWhitespace(t *testing.T) {
	input := validInput()
	input.Nome = "  Bolo de Cenoura  "
	input.Porcao = " 80 "

	e, fields := Validate(input)

	require.Nil(t, fields)
	assert.Equal(t, "Bolo de Cenoura", e.Nome)
	assert.Equal(t, 80.0, e.Porcao)
}
