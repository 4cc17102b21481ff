package sync

import (
	"context"
	"encoding/json"

	"google.golang.org/api/calendar/v3"
)

// CalendarAPI es el cliente del proveedor de calendario. El adapter es el
// dueño de su TokenProvider y de la regla de refresh-forzado-y-un-retry.
type CalendarAPI interface {
	InsertEvent(ctx context.Context, event *calendar.Event) (*calendar.Event, error)
}

// RegistryAPI es el cliente del registry (Alchemy). UpdateUsePeriod escribe
// exactamente dos campos del registro (inicio y fin de uso) como valores
// escalares de una sola fila.
type RegistryAPI interface {
	UpdateUsePeriod(ctx context.Context, recordID int64, startUse, endUse string) (json.RawMessage, error)
}
