package source

import "context"

// Row es un registro crudo de una tabla del origen: nombre de campo → valor
// sin tipar. Los valores se normalizan una sola vez en la frontera de
// ingestión (ver application/recon); aguas abajo nadie vuelve a inspeccionarlos.
type Row map[string]any

// TabularSource abstrae el origen de datos tabular con tablas nombradas
// (hoja de Google Sheets, espejo en PostgreSQL). Implementaciones devuelven
// domain.ErrSourceUnavailable envuelto cuando la tabla no puede leerse; el
// motor degrada esa tabla a vacía en lugar de abortar la corrida.
type TabularSource interface {
	GetTable(ctx context.Context, name string) ([]Row, error)
}
