package sync

import "fmt"

// Taxonomía de fallas del motor. Cada componente devuelve una falla tipada;
// el handler HTTP es el único lugar donde se traducen a status codes.

// ValidationError: campo inbound faltante o malformado. Siempre culpa del cliente.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %s", e.Field, e.Reason)
}

// FormatError: un string de fecha no matchea la gramática esperada,
// o la zona horaria no es un identificador IANA válido.
type FormatError struct {
	Input string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format: %q: %v", e.Input, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// IdentityError: no se pudo recuperar un record id del texto libre.
type IdentityError struct {
	Text string
}

func (e *IdentityError) Error() string {
	return fmt.Sprintf("identity: no record id found in %q", e.Text)
}

// CredentialError: falló la adquisición/refresh de token de un dominio.
type CredentialError struct {
	Domain string
	Err    error
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("credentials (%s): %v", e.Domain, e.Err)
}

func (e *CredentialError) Unwrap() error { return e.Err }

// UpstreamError: una API remota respondió no-2xx o el request expiró.
// Body conserva el diagnóstico del proveedor tal cual llegó.
type UpstreamError struct {
	Provider   string
	StatusCode int // 0 si fue falla de red/timeout
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream (%s): status=%d body=%s", e.Provider, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("upstream (%s): %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
