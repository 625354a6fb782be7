// Package nutrition holds the daily-value reference table and the
// calculations derived from it: the percentage a nutrient quantity
// represents of the recommended daily intake (VD%), and the expiry-date
// offset applied to a manufacture date. Percentages are always computed,
// never stored.
package nutrition

import (
	"fmt"
	"math"
	"time"
)

// dateLayout is the wire format for calendar dates (YYYY-MM-DD), matching
// HTML date inputs and the stored label columns.
const dateLayout = "2006-01-02"

// DiasValidadePadrao is the default shelf life, in days, applied when
// deriving an expiry date from a manufacture date.
const DiasValidadePadrao = 5

// ValoresDiarios is the reference daily intake for each nutrient with an
// established recommendation, based on a 2000 kcal diet. Keys are the label
// field names; values are in the unit the label stores for that field
// (kcal for energy, mg for sodium, g for the rest).
var ValoresDiarios = map[string]float64{
	"valorEnergetico":   2000, // kcal
	"carboidratos":      300,  // g
	"proteinas":         75,   // g
	"gordurasTotais":    55,   // g
	"gordurasSaturadas": 22,   // g
	"fibras":            25,   // g
	"sodio":             2400, // mg
}

// CalcularVD returns the rounded percentage of the daily reference intake
// that valor represents for the given nutrient. The second return is false
// when the nutrient has no established reference (sugars, for example, have
// no VD% and print as "-" on the label).
func CalcularVD(nutriente string, valor float64) (int, bool) {
	referencia, ok := ValoresDiarios[nutriente]
	if !ok || referencia <= 0 {
		return 0, false
	}
	return int(math.Round(valor / referencia * 100)), true
}

// CalcularDataValidade derives the expiry date from a manufacture date by
// adding dias days. Both dates use the YYYY-MM-DD format. When dias is not
// positive, DiasValidadePadrao is applied.
func CalcularDataValidade(dataFabricacao string, dias int) (string, error) {
	fabricacao, err := time.Parse(dateLayout, dataFabricacao)
	if err != nil {
		return "", fmt.Errorf("parsing manufacture date %q: %w", dataFabricacao, err)
	}
	if dias <= 0 {
		dias = DiasValidadePadrao
	}
	return fabricacao.AddDate(0, 0, dias).Format(dateLayout), nil
}

// ValidarData reports whether s is a well-formed YYYY-MM-DD calendar date.
func ValidarData(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}
