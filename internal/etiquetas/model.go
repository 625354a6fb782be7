// Package etiquetas implements the nutrition-label records: schema
// validation, persistence, and the HTTP endpoints under /api/etiquetas.
// An etiqueta is one printable label for one cake, with descriptive fields,
// manufacture/expiry dates, and the nutrition facts table.
package etiquetas

import (
	"time"
)

// Etiqueta is the persisted nutrition-label record. JSON field names match
// the form the bakery frontend submits. Numeric nutrient values are per
// portion, in grams except sodium (mg) and energy (kcal or kJ).
type Etiqueta struct {
	ID                int                  `json:"id"`
	Nome              string               `json:"nome"`
	Descricao         string               `json:"descricao"`
	DataFabricacao    string               `json:"dataFabricacao"` // YYYY-MM-DD
	DataValidade      string               `json:"dataValidade"`   // YYYY-MM-DD
	Porcao            float64              `json:"porcao"`
	UnidadePorcao     string               `json:"unidadePorcao"` // "g" or "ml"
	ValorEnergetico   float64              `json:"valorEnergetico"`
	UnidadeEnergetico string               `json:"unidadeEnergetico"` // "kcal" or "kJ"
	Carboidratos      float64              `json:"carboidratos"`
	Acucares          float64              `json:"acucares"`
	Proteinas         float64              `json:"proteinas"`
	GordurasTotais    float64              `json:"gordurasTotais"`
	GordurasSaturadas float64              `json:"gordurasSaturadas"`
	Sodio             float64              `json:"sodio"`
	Fibras            float64              `json:"fibras"`
	Adicionais        []NutrienteAdicional `json:"nutrientesAdicionais"`
	DataCriacao       time.Time            `json:"dataCriacao"` // server-assigned, immutable
}

// NutrienteAdicional is one extra nutrient row on the label, beyond the
// required table. Order in the slice is display order.
type NutrienteAdicional struct {
	Nome    string  `json:"nome"`
	Valor   float64 `json:"valor"`
	Unidade string  `json:"unidade"`
}

// EtiquetaInput is the untyped request body for create and update. Numeric
// fields are `any` because the form submits numbers as strings ("42") while
// API clients send JSON numbers; the validation layer coerces both. A
// client-supplied dataCriacao is bound here only so it can be ignored -- the
// creation timestamp is always server-assigned.
type EtiquetaInput struct {
	Nome              string                    `json:"nome"`
	Descricao         string                    `json:"descricao"`
	DataFabricacao    string                    `json:"dataFabricacao"`
	DataValidade      string                    `json:"dataValidade"`
	Porcao            any                       `json:"porcao"`
	UnidadePorcao     string                    `json:"unidadePorcao"`
	ValorEnergetico   any                       `json:"valorEnergetico"`
	UnidadeEnergetico string                    `json:"unidadeEnergetico"`
	Carboidratos      any                       `json:"carboidratos"`
	Acucares          any                       `json:"acucares"`
	Proteinas         any                       `json:"proteinas"`
	GordurasTotais    any                       `json:"gordurasTotais"`
	GordurasSaturadas any                       `json:"gordurasSaturadas"`
	Sodio             any                       `json:"sodio"`
	Fibras            any                       `json:"fibras"`
	Adicionais        []NutrienteAdicionalInput `json:"nutrientesAdicionais"`
	DataCriacao       any                       `json:"dataCriacao"` // ignored
}

// NutrienteAdicionalInput is the untyped form of one additional-nutrient row.
type NutrienteAdicionalInput struct {
	Nome    string `json:"nome"`
	Valor   any    `json:"valor"`
	Unidade string `json:"unidade"`
}
