package etiquetas

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/docesmara/etiquetas/internal/apperror"
)

// EtiquetaRepository defines the data access contract for label records.
// All SQL lives in the concrete implementation -- no SQL leaks out.
type EtiquetaRepository interface {
	// List returns every label ordered by creation timestamp ascending.
	// Unpaginated: the bakery's catalog is small by nature.
	List(ctx context.Context) ([]Etiqueta, error)

	// FindByID returns the label or apperror.NotFound.
	FindByID(ctx context.Context, id int) (*Etiqueta, error)

	// Create inserts a new label and fills in the server-assigned id and
	// creation timestamp.
	Create(ctx context.Context, e *Etiqueta) error

	// Update replaces every mutable column of the row matching id and fills
	// in the stored creation timestamp (which is never overwritten).
	// Returns apperror.NotFound when no row matches. The write is a single
	// atomic statement, so there is no race window between an existence
	// check and the update.
	Update(ctx context.Context, id int, e *Etiqueta) error

	// Delete removes the row matching id, or returns apperror.NotFound.
	Delete(ctx context.Context, id int) error
}

// etiquetaColumns is the SELECT column list shared by List and FindByID.
const etiquetaColumns = `id, nome, descricao, data_fabricacao, data_validade,
	       porcao, unidade_porcao, valor_energetico, unidade_energetico,
	       carboidratos, acucares, proteinas, gorduras_totais,
	       gorduras_saturadas, sodio, fibras, nutrientes_adicionais, data_criacao`

// etiquetaRepository implements EtiquetaRepository with hand-written
// Postgres queries.
type etiquetaRepository struct {
	db *sql.DB
}

// NewEtiquetaRepository creates a new label repository backed by the given DB pool.
func NewEtiquetaRepository(db *sql.DB) EtiquetaRepository {
	return &etiquetaRepository{db: db}
}

// List returns all labels in creation order.
func (r *etiquetaRepository) List(ctx context.Context) ([]Etiqueta, error) {
	query := `SELECT ` + etiquetaColumns + ` FROM etiquetas ORDER BY data_criacao ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing etiquetas: %w", err)
	}
	defer rows.Close()

	var result []Etiqueta
	for rows.Next() {
		var e Etiqueta
		if err := scanEtiqueta(rows.Scan, &e); err != nil {
			return nil, fmt.Errorf("scanning etiqueta row: %w", err)
		}
		result = append(result, e)
	}

	return result, rows.Err()
}

// FindByID retrieves a single label by its id.
func (r *etiquetaRepository) FindByID(ctx context.Context, id int) (*Etiqueta, error) {
	query := `SELECT ` + etiquetaColumns + ` FROM etiquetas WHERE id = $1`

	e := &Etiqueta{}
	err := scanEtiqueta(r.db.QueryRowContext(ctx, query, id).Scan, e)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("Etiqueta não encontrada")
	}
	if err != nil {
		return nil, fmt.Errorf("querying etiqueta by id: %w", err)
	}

	return e, nil
}

// Create inserts the label; id and data_criacao come back from the database.
func (r *etiquetaRepository) Create(ctx context.Context, e *Etiqueta) error {
	adicionais, err := marshalAdicionais(e.Adicionais)
	if err != nil {
		return err
	}

	query := `INSERT INTO etiquetas
	              (nome, descricao, data_fabricacao, data_validade,
	               porcao, unidade_porcao, valor_energetico, unidade_energetico,
	               carboidratos, acucares, proteinas, gorduras_totais,
	               gorduras_saturadas, sodio, fibras, nutrientes_adicionais)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	          RETURNING id, data_criacao`

	err = r.db.QueryRowContext(ctx, query,
		e.Nome, e.Descricao, e.DataFabricacao, e.DataValidade,
		e.Porcao, e.UnidadePorcao, e.ValorEnergetico, e.UnidadeEnergetico,
		e.Carboidratos, e.Acucares, e.Proteinas, e.GordurasTotais,
		e.GordurasSaturadas, e.Sodio, e.Fibras, adicionais,
	).Scan(&e.ID, &e.DataCriacao)
	if err != nil {
		return fmt.Errorf("inserting etiqueta: %w", err)
	}

	return nil
}

// Update replaces all mutable columns in one statement. data_criacao is not
// in the SET list, so a client-supplied creation timestamp can never reach
// the row; the stored value is read back via RETURNING.
func (r *etiquetaRepository) Update(ctx context.Context, id int, e *Etiqueta) error {
	adicionais, err := marshalAdicionais(e.Adicionais)
	if err != nil {
		return err
	}

	query := `UPDATE etiquetas SET
	              nome = $1, descricao = $2, data_fabricacao = $3, data_validade = $4,
	              porcao = $5, unidade_porcao = $6, valor_energetico = $7, unidade_energetico = $8,
	              carboidratos = $9, acucares = $10, proteinas = $11, gorduras_totais = $12,
	              gorduras_saturadas = $13, sodio = $14, fibras = $15, nutrientes_adicionais = $16
	          WHERE id = $17
	          RETURNING data_criacao`

	err = r.db.QueryRowContext(ctx, query,
		e.Nome, e.Descricao, e.DataFabricacao, e.DataValidade,
		e.Porcao, e.UnidadePorcao, e.ValorEnergetico, e.UnidadeEnergetico,
		e.Carboidratos, e.Acucares, e.Proteinas, e.GordurasTotais,
		e.GordurasSaturadas, e.Sodio, e.Fibras, adicionais,
		id,
	).Scan(&e.DataCriacao)
	if errors.Is(err, sql.ErrNoRows) {
		return apperror.NewNotFound("Etiqueta não encontrada")
	}
	if err != nil {
		return fmt.Errorf("updating etiqueta %d: %w", id, err)
	}

	e.ID = id
	return nil
}

// Delete removes the row. RowsAffected distinguishes "nothing matched"
// from a failed write.
func (r *etiquetaRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM etiquetas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting etiqueta %d: %w", id, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if n == 0 {
		return apperror.NewNotFound("Etiqueta não encontrada")
	}

	return nil
}

// scanEtiqueta scans one row into e, decoding the additional-nutrients JSON
// column. scan is either sql.Row.Scan or sql.Rows.Scan.
func scanEtiqueta(scan func(dest ...any) error, e *Etiqueta) error {
	var adicionais []byte

	err := scan(
		&e.ID, &e.Nome, &e.Descricao, &e.DataFabricacao, &e.DataValidade,
		&e.Porcao, &e.UnidadePorcao, &e.ValorEnergetico, &e.UnidadeEnergetico,
		&e.Carboidratos, &e.Acucares, &e.Proteinas, &e.GordurasTotais,
		&e.GordurasSaturadas, &e.Sodio, &e.Fibras, &adicionais, &e.DataCriacao,
	)
	if err != nil {
		return err
	}

	if len(adicionais) > 0 {
		if err := json.Unmarshal(adicionais, &e.Adicionais); err != nil {
			return fmt.Errorf("decoding nutrientes_adicionais: %w", err)
		}
	}

	return nil
}

// marshalAdicionais encodes the additional nutrients for the JSONB column.
// An empty list is stored as NULL, keeping "no additional nutrients" a
// single representation in the table.
func marshalAdicionais(adicionais []NutrienteAdicional) (any, error) {
	if len(adicionais) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(adicionais)
	if err != nil {
		return nil, fmt.Errorf("encoding nutrientes_adicionais: %w", err)
	}
	return data, nil
}
