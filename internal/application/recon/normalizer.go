package recon

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// MissingID es el identificador centinela para celdas de ID ausentes o en
// blanco. Nunca coincide con una fila de catálogo, de modo que un ID ausente
// jamás se une silenciosamente a un producto ajeno.
const MissingID = "__sin_id__"

// NormalizeID canonicaliza un identificador crudo a su representación textual
// estable. Las hojas mezclan celdas numéricas y de texto para la misma
// columna, así que un entero y su flotante equivalente deben producir el
// mismo texto: 123 y 123.0 → "123".
func NormalizeID(raw any) string {
	switch v := raw.(type) {
	case nil:
		return MissingID
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return MissingID
		}
		return s
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case decimal.Decimal:
		return v.String()
	default:
		s := strings.TrimSpace(fmt.Sprint(v))
		if s == "" {
			return MissingID
		}
		return s
	}
}

// CoerceQuantity convierte un valor crudo de cantidad a decimal. Valores
// ausentes o no numéricos se tratan como 0, nunca como error: una fila
// malformada no aborta la conciliación, solo aporta 0 a su agrupación.
func CoerceQuantity(raw any) decimal.Decimal {
	switch v := raw.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return v
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return decimal.Zero
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// normalizeField lee un campo de texto descriptivo sin inventar valores:
// celdas ausentes quedan en "".
func normalizeField(raw any) string {
	if raw == nil {
		return ""
	}
	if s, ok := raw.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(raw))
}
