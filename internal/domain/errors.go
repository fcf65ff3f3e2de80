package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrRunExpired   = errors.New("la corrida expiró o no existe")
)

// SchemaError describe un problema de forma en una tabla de entrada: columna
// requerida ausente o valor no parseable. Siempre nombra la tabla y la columna
// para que el error llegue al usuario con contexto (taxonomía de errores de
// entrada: fatales, antes de cualquier cálculo).
type SchemaError struct {
	Table  string
	Column string
	Row    int // 1-based; 0 si aplica a toda la columna
	Reason string
}

func (e *SchemaError) Error() string {
	switch {
	case e.Column == "":
		return fmt.Sprintf("tabla %s: %s", e.Table, e.Reason)
	case e.Row > 0:
		return fmt.Sprintf("tabla %s, columna %q, fila %d: %s", e.Table, e.Column, e.Row, e.Reason)
	default:
		return fmt.Sprintf("tabla %s, columna %q: %s", e.Table, e.Column, e.Reason)
	}
}

// Unwrap permite errors.Is(err, ErrInvalidInput).
func (e *SchemaError) Unwrap() error { return ErrInvalidInput }
