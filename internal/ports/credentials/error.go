package credentials

import "fmt"

// Error es la falla de adquisición/refresh de token de un dominio.
// Conserva la respuesta cruda del proveedor para diagnóstico.
type Error struct {
	Domain string // "google" | "alchemy"
	Detail string // respuesta cruda o descripción del proveedor
	Err    error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("credentials: %s: %v (%s)", e.Domain, e.Err, e.Detail)
	}
	return fmt.Sprintf("credentials: %s: %v", e.Domain, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
