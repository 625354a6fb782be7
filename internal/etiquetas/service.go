package etiquetas

import (
	"context"
	"log/slog"

	"github.com/docesmara/etiquetas/internal/apperror"
	"github.com/docesmara/etiquetas/internal/nutrition"
)

// EtiquetaService defines the business logic contract for label records:
// validation, persistence orchestration, and the derived daily-value table.
// Handlers call these methods -- they never touch the repository directly.
type EtiquetaService interface {
	List(ctx context.Context) ([]Etiqueta, error)
	Get(ctx context.Context, id int) (*Etiqueta, error)
	Create(ctx context.Context, input *EtiquetaInput) (*Etiqueta, error)
	Update(ctx context.Context, id int, input *EtiquetaInput) (*Etiqueta, error)
	Delete(ctx context.Context, id int) error

	// ValoresDiarios returns the label's nutrients with the daily-value
	// percentage computed against the reference table. Percentages are
	// derived on demand, never stored.
	ValoresDiarios(ctx context.Context, id int) (*TabelaValoresDiarios, error)
}

// TabelaValoresDiarios is the computed nutrition panel for one label.
type TabelaValoresDiarios struct {
	EtiquetaID    int           `json:"etiquetaId"`
	Nome          string        `json:"nome"`
	Porcao        float64       `json:"porcao"`
	UnidadePorcao string        `json:"unidadePorcao"`
	Nutrientes    []ValorDiario `json:"nutrientes"`
}

// ValorDiario is one row of the computed panel. VD is nil for nutrients
// without an established daily reference (sugars, for example, print as "-").
type ValorDiario struct {
	Nutriente string  `json:"nutriente"`
	Valor     float64 `json:"valor"`
	Unidade   string  `json:"unidade"`
	VD        *int    `json:"vd"`
}

// etiquetaService implements EtiquetaService.
type etiquetaService struct {
	repo EtiquetaRepository
}

// NewEtiquetaService creates a new label service with the given repository.
func NewEtiquetaService(repo EtiquetaRepository) EtiquetaService {
	return &etiquetaService{repo: repo}
}

// List returns all labels in creation order.
func (s *etiquetaService) List(ctx context.Context) ([]Etiqueta, error) {
	result, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.NewInternal("Erro ao buscar etiquetas", err)
	}
	return result, nil
}

// Get returns one label by id.
func (s *etiquetaService) Get(ctx context.Context, id int) (*Etiqueta, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, err
		}
		return nil, apperror.NewInternal("Erro ao buscar etiqueta", err)
	}
	return e, nil
}

// Create validates the input and inserts the record. Any client-supplied
// creation timestamp is discarded: the input's dataCriacao field is never
// read, and the column is assigned by the database.
func (s *etiquetaService) Create(ctx context.Context, input *EtiquetaInput) (*Etiqueta, error) {
	e, fields := Validate(input)
	if fields != nil {
		return nil, apperror.NewValidation("Erro de validação", fields)
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, apperror.NewInternal("Erro ao criar etiqueta", err)
	}

	slog.Info("etiqueta created",
		slog.Int("id", e.ID),
		slog.String("nome", e.Nome),
	)

	return e, nil
}

// Update is a full-record replace: every field is re-validated even when
// unchanged, and the creation timestamp is preserved by the repository.
func (s *etiquetaService) Update(ctx context.Context, id int, input *EtiquetaInput) (*Etiqueta, error) {
	e, fields := Validate(input)
	if fields != nil {
		return nil, apperror.NewValidation("Erro de validação", fields)
	}

	if err := s.repo.Update(ctx, id, e); err != nil {
		if apperror.IsNotFound(err) {
			return nil, err
		}
		return nil, apperror.NewInternal("Erro ao atualizar etiqueta", err)
	}

	slog.Info("etiqueta updated", slog.Int("id", id))

	return e, nil
}

// Delete removes a label by id.
func (s *etiquetaService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if apperror.IsNotFound(err) {
			return err
		}
		return apperror.NewInternal("Erro ao excluir etiqueta", err)
	}

	slog.Info("etiqueta deleted", slog.Int("id", id))

	return nil
}

// ValoresDiarios computes the daily-value panel for one label.
func (s *etiquetaService) ValoresDiarios(ctx context.Context, id int) (*TabelaValoresDiarios, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	rows := []struct {
		nome    string
		valor   float64
		unidade string
	}{
		{"valorEnergetico", e.ValorEnergetico, e.UnidadeEnergetico},
		{"carboidratos", e.Carboidratos, "g"},
		{"acucares", e.Acucares, "g"},
		{"proteinas", e.Proteinas, "g"},
		{"gordurasTotais", e.GordurasTotais, "g"},
		{"gordurasSaturadas", e.GordurasSaturadas, "g"},
		{"fibras", e.Fibras, "g"},
		{"sodio", e.Sodio, "mg"},
	}

	tabela := &TabelaValoresDiarios{
		EtiquetaID:    e.ID,
		Nome:          e.Nome,
		Porcao:        e.Porcao,
		UnidadePorcao: e.UnidadePorcao,
	}

	for _, row := range rows {
		vd := ValorDiario{Nutriente: row.nome, Valor: row.valor, Unidade: row.unidade}
		if pct, ok := nutrition.CalcularVD(row.nome, row.valor); ok {
			vd.VD = &pct
		}
		tabela.Nutrientes = append(tabela.Nutrientes, vd)
	}

	// Additional nutrients keep their display order; none has a reference
	// daily value.
	for _, a := range e.Adicionais {
		tabela.Nutrientes = append(tabela.Nutrientes, ValorDiario{
			Nutriente: a.Nome,
			Valor:     a.Valor,
			Unidade:   a.Unidade,
		})
	}

	return tabela, nil
}
