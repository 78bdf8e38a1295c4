package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrUnauthorized = errors.New("no autorizado")

	// ErrSourceUnavailable marca una tabla del origen que no pudo leerse.
	// Se recupera localmente: la tabla se trata como vacía y la corrida continúa.
	ErrSourceUnavailable = errors.New("tabla de origen no disponible")

	// ErrReconciliationFailed es fatal para la corrida: ninguno de los dos
	// catálogos base pudo leerse y no hay contra qué conciliar.
	ErrReconciliationFailed = errors.New("conciliación fallida: catálogos base no disponibles")
)
