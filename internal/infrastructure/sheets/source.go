// Package sheets implementa el origen tabular sobre una hoja de cálculo de
// Google: cada tabla nombrada es una pestaña del libro y la primera fila son
// los encabezados de columna.
package sheets

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/clinicayacucho/inventario-stock/internal/domain"
	"github.com/clinicayacucho/inventario-stock/internal/domain/source"
)

// Config credenciales y libro a usar.
type Config struct {
	SpreadsheetID   string
	CredentialsFile string // ruta a la service account JSON
	CredentialsJSON string // alternativa: JSON embebido (env)
}

// Source implementa source.TabularSource sobre la API de Google Sheets.
type Source struct {
	svc           *sheetsapi.Service
	spreadsheetID string
}

// New crea el cliente de Sheets con permiso de solo lectura. Prefiere el JSON
// explícito; sin credenciales configuradas cae en Application Default
// Credentials (service account del entorno).
func New(ctx context.Context, cfg Config) (*Source, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("sheets: falta SHEETS_SPREADSHEET_ID")
	}
	opts := []option.ClientOption{option.WithScopes(sheetsapi.SpreadsheetsReadonlyScope)}
	switch {
	case strings.TrimSpace(cfg.CredentialsJSON) != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	svc, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("crear cliente de Sheets: %w", err)
	}
	return &Source{svc: svc, spreadsheetID: cfg.SpreadsheetID}, nil
}

// GetTable lee la pestaña completa y la convierte a filas campo→valor.
// UNFORMATTED_VALUE conserva los tipos crudos de celda (número o texto);
// la normalización de IDs y cantidades ocurre aguas arriba, en el motor.
func (s *Source) GetTable(ctx context.Context, name string) ([]source.Row, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, name).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("FORMATTED_STRING").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrSourceUnavailable, name, err)
	}
	if len(resp.Values) < 2 {
		// Solo encabezados o pestaña vacía: tabla sin filas, no error.
		return nil, nil
	}

	headers := make([]string, len(resp.Values[0]))
	for i, h := range resp.Values[0] {
		headers[i] = strings.TrimSpace(fmt.Sprint(h))
	}

	rows := make([]source.Row, 0, len(resp.Values)-1)
	for _, raw := range resp.Values[1:] {
		row := make(source.Row, len(headers))
		for i, header := range headers {
			if header == "" {
				continue
			}
			if i < len(raw) {
				row[header] = raw[i]
			} else {
				row[header] = nil // celda recortada al final de la fila
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
