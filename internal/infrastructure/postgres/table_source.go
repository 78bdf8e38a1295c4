// Package postgres implementa el origen tabular sobre un espejo de las hojas
// en PostgreSQL: una tabla SQL por tabla nombrada, con columnas que conservan
// los encabezados originales del libro (por eso todos los identificadores van
// entre comillas).
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicayacucho/inventario-stock/internal/domain"
	"github.com/clinicayacucho/inventario-stock/internal/domain/source"
)

// TableSource implementa source.TabularSource leyendo tablas completas del
// espejo. Solo lectura: el motor jamás escribe en el origen.
type TableSource struct {
	pool *pgxpool.Pool
}

// NewTableSource construye el origen sobre un pool existente.
func NewTableSource(pool *pgxpool.Pool) *TableSource {
	return &TableSource{pool: pool}
}

// GetTable lee todas las filas de la tabla y las convierte a campo→valor
// usando los nombres de columna del result set.
func (s *TableSource) GetTable(ctx context.Context, name string) ([]source.Row, error) {
	query := fmt.Sprintf("SELECT * FROM %s", pgx.Identifier{name}.Sanitize())
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrSourceUnavailable, name, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var out []source.Row
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrSourceUnavailable, name, err)
		}
		row := make(source.Row, len(fields))
		for i, fd := range fields {
			row[fd.Name] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrSourceUnavailable, name, err)
	}
	return out, nil
}
