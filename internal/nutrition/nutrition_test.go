package nutrition

import "testing"

func TestCalcularVD(t *testing.T) {
	tests := []struct {
		name      string
		nutriente string
		valor     float64
		want      int
		wantOK    bool
	}{
		{"carboidratos 42g of 300g", "carboidratos", 42, 14, true},
		{"sodio 150mg of 2400mg", "sodio", 150, 6, true},
		{"energia 320kcal of 2000kcal", "valorEnergetico", 320, 16, true},
		{"fibras rounds up", "fibras", 1.8, 7, true},
		{"zero value", "proteinas", 0, 0, true},
		{"acucares has no reference", "acucares", 28, 0, false},
		{"unknown nutrient", "cafeina", 10, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CalcularVD(tt.nutriente, tt.valor)
			if ok != tt.wantOK {
				t.Fatalf("CalcularVD(%q, %v) ok = %v, want %v", tt.nutriente, tt.valor, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("CalcularVD(%q, %v) = %d, want %d", tt.nutriente, tt.valor, got, tt.want)
			}
		})
	}
}

func TestCalcularDataValidade(t *testing.T) {
	got, err := CalcularDataValidade("2024-01-01", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2024-01-06" {
		t.Errorf("expected 2024-01-06, got %s", got)
	}

	// Default shelf life applies when dias is zero.
	got, err = CalcularDataValidade("2024-01-01", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2024-01-06" {
		t.Errorf("expected default +5 days, got %s", got)
	}

	// Month rollover.
	got, err = CalcularDataValidade("2024-01-30", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2024-02-04" {
		t.Errorf("expected 2024-02-04, got %s", got)
	}

	if _, err := CalcularDataValidade("30/01/2024", 5); err == nil {
		t.Error("expected error for non-ISO date format")
	}
}

func TestValidarData(t *testing.T) {
	if !ValidarData("2024-01-01") {
		t.Error("expected 2024-01-01 to be valid")
	}
	for _, s := range []string{"", "01/01/2024", "2024-13-01", "amanhã"} {
		if ValidarData(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}
