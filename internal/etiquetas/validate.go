package etiquetas

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/docesmara/etiquetas/internal/apperror"
	"github.com/docesmara/etiquetas/internal/nutrition"
)

// Validate checks an untyped input against the label schema and returns the
// normalized record, or the full list of field errors. Validation is
// all-or-nothing: one failing field rejects the whole record, and every
// failing field is reported, not just the first. Unknown input fields were
// already dropped by JSON binding.
//
// Numeric rules: serving size and energy value must be strictly positive;
// the seven required nutrients must be non-negative. Numeric strings are
// coerced. Units default to "g" and "kcal" when omitted, matching the
// storage schema defaults.
func Validate(input *EtiquetaInput) (*Etiqueta, []apperror.FieldError) {
	var fields []apperror.FieldError
	fail := func(campo, mensagem string) {
		fields = append(fields, apperror.FieldError{Campo: campo, Mensagem: mensagem})
	}

	e := &Etiqueta{
		Nome:              strings.TrimSpace(input.Nome),
		Descricao:         strings.TrimSpace(input.Descricao),
		DataFabricacao:    strings.TrimSpace(input.DataFabricacao),
		DataValidade:      strings.TrimSpace(input.DataValidade),
		UnidadePorcao:     strings.TrimSpace(input.UnidadePorcao),
		UnidadeEnergetico: strings.TrimSpace(input.UnidadeEnergetico),
	}

	if utf8.RuneCountInString(e.Nome) < 3 {
		fail("nome", "O nome deve ter pelo menos 3 caracteres")
	}
	if utf8.RuneCountInString(e.Descricao) < 5 {
		fail("descricao", "A descrição deve ter pelo menos 5 caracteres")
	}

	if e.DataFabricacao == "" {
		fail("dataFabricacao", "Selecione a data de fabricação")
	} else if !nutrition.ValidarData(e.DataFabricacao) {
		fail("dataFabricacao", "Data inválida, use o formato AAAA-MM-DD")
	}
	if e.DataValidade == "" {
		fail("dataValidade", "Selecione a data de validade")
	} else if !nutrition.ValidarData(e.DataValidade) {
		fail("dataValidade", "Data inválida, use o formato AAAA-MM-DD")
	}

	if e.UnidadePorcao == "" {
		e.UnidadePorcao = "g"
	}
	if e.UnidadeEnergetico == "" {
		e.UnidadeEnergetico = "kcal"
	}

	e.Porcao = requirePositive(input.Porcao, "porcao", fail)
	e.ValorEnergetico = requirePositive(input.ValorEnergetico, "valorEnergetico", fail)

	e.Carboidratos = requireNonNegative(input.Carboidratos, "carboidratos", fail)
	e.Acucares = requireNonNegative(input.Acucares, "acucares", fail)
	e.Proteinas = requireNonNegative(input.Proteinas, "proteinas", fail)
	e.GordurasTotais = requireNonNegative(input.GordurasTotais, "gordurasTotais", fail)
	e.GordurasSaturadas = requireNonNegative(input.GordurasSaturadas, "gordurasSaturadas", fail)
	e.Sodio = requireNonNegative(input.Sodio, "sodio", fail)
	e.Fibras = requireNonNegative(input.Fibras, "fibras", fail)

	// Additional nutrients are optional; when present, every element must be
	// fully valid. An empty list and an absent field are equivalent.
	for i, in := range input.Adicionais {
		path := fmt.Sprintf("nutrientesAdicionais[%d]", i)

		nome := strings.TrimSpace(in.Nome)
		if nome == "" {
			fail(path+".nome", "Informe o nome do nutriente")
		}

		valor, ok := coerceNumber(in.Valor)
		if !ok {
			fail(path+".valor", "Deve ser um número")
		} else if valor < 0 {
			fail(path+".valor", "Não pode ser negativo")
		}

		unidade := strings.TrimSpace(in.Unidade)
		if unidade == "" {
			fail(path+".unidade", "Informe a unidade")
		}

		e.Adicionais = append(e.Adicionais, NutrienteAdicional{
			Nome:    nome,
			Valor:   valor,
			Unidade: unidade,
		})
	}

	if len(fields) > 0 {
		return nil, fields
	}
	return e, nil
}

// requirePositive coerces v and reports a failure unless it is a number
// strictly greater than zero.
func requirePositive(v any, campo string, fail func(campo, mensagem string)) float64 {
	n, ok := coerceNumber(v)
	if !ok {
		fail(campo, "Deve ser um número")
		return 0
	}
	if n <= 0 {
		fail(campo, "Deve ser maior que zero")
	}
	return n
}

// requireNonNegative coerces v and reports a failure unless it is a number
// greater than or equal to zero.
func requireNonNegative(v any, campo string, fail func(campo, mensagem string)) float64 {
	n, ok := coerceNumber(v)
	if !ok {
		fail(campo, "Deve ser um número")
		return 0
	}
	if n < 0 {
		fail(campo, "Não pode ser negativo")
	}
	return n
}

// coerceNumber converts numeric-looking input to a float64. JSON binding
// produces float64 for numbers and string for quoted values; json.Number
// appears when a decoder is configured with UseNumber. Anything else,
// including absent fields (nil) and empty strings, is not a number.
// NaN and Inf are rejected: ParseFloat accepts them, but they defeat the
// sign checks and cannot be serialized back out as JSON.
func coerceNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return finite(n)
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return finite(f)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return finite(f)
	default:
		return 0, false
	}
}

// finite reports f as a number only when it is an actual finite value.
func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
