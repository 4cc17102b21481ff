package credentials

import "context"

// TokenProvider entrega un bearer token vigente para un dominio de identidad
// (Google o Alchemy). El provider es dueño de su caché; Invalidate descarta el
// token cacheado para forzar un refresh en la próxima llamada.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
	Invalidate()
}
