package sync

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/api/calendar/v3"

	"github.com/pbrose82/google-calendar-middleware/internal/platform/httpclient"
	"github.com/pbrose82/google-calendar-middleware/internal/ports/credentials"
)

// Service es el orquestador: secuencia normalización, credenciales y las dos
// APIs remotas para cada operación inbound. Stateless; seguro para requests
// concurrentes (el único estado compartido es el caché de tokens de cada
// adapter, que cuida su propio mutex).
type Service struct {
	calendar CalendarAPI
	registry RegistryAPI

	calendarID string
	defaultTZ  string

	newSyncID func() string
}

func NewService(cal CalendarAPI, reg RegistryAPI, calendarID, defaultTZ string) *Service {
	if strings.TrimSpace(calendarID) == "" {
		calendarID = "primary"
	}
	if strings.TrimSpace(defaultTZ) == "" {
		defaultTZ = "America/New_York"
	}
	return &Service{
		calendar:   cal,
		registry:   reg,
		calendarID: calendarID,
		defaultTZ:  defaultTZ,
		newSyncID:  uuid.NewString,
	}
}

// CreateResult envuelve el evento creado junto al id de la operación.
type CreateResult struct {
	SyncID string          `json:"syncId"`
	Event  *calendar.Event `json:"event"`
}

// CreateFromRecord: reserva del registry → evento de calendario.
// Revocar o reintentar con el mismo record id puede duplicar el evento; la
// idempotencia del retry es responsabilidad del caller. Ese comportamiento
// se mantiene a propósito (no hay semántica de deduplicación definida).
func (s *Service) CreateFromRecord(ctx context.Context, rec ReservationRecord) (CreateResult, error) {
	recordID := strings.TrimSpace(rec.RecordID)
	switch {
	case recordID == "":
		return CreateResult{}, &ValidationError{Field: "recordId", Reason: "is required"}
	case !isAllDigits(recordID):
		// El id tiene que poder re-extraerse después desde la description.
		return CreateResult{}, &ValidationError{Field: "recordId", Reason: "must be numeric"}
	case strings.TrimSpace(rec.StartUse) == "":
		return CreateResult{}, &ValidationError{Field: "startUse", Reason: "is required"}
	case strings.TrimSpace(rec.EndUse) == "":
		return CreateResult{}, &ValidationError{Field: "endUse", Reason: "is required"}
	}

	tz := strings.TrimSpace(rec.TimeZone)
	if tz == "" {
		tz = s.defaultTZ
	}

	start, err := ParseDisplay(rec.StartUse, tz)
	if err != nil {
		return CreateResult{}, err
	}
	end, err := ParseDisplay(rec.EndUse, tz)
	if err != nil {
		return CreateResult{}, err
	}
	end = EnsureEndAfterStart(start, end)

	event := &calendar.Event{
		Summary:     strings.TrimSpace(rec.Summary),
		Location:    strings.TrimSpace(rec.Location),
		Description: describeRecord(rec.Description, recordID),
		Start: &calendar.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: tz,
		},
		End: &calendar.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: tz,
		},
	}
	if event.Summary == "" {
		event.Summary = "Reservation " + recordID
	}
	for _, email := range rec.Attendees {
		email = strings.TrimSpace(email)
		if email == "" {
			continue
		}
		event.Attendees = append(event.Attendees, &calendar.EventAttendee{Email: email})
	}
	if rec.Reminders != nil {
		event.Reminders = buildReminders(rec.Reminders)
	}

	created, err := s.calendar.InsertEvent(ctx, event)
	if err != nil {
		return CreateResult{}, wrapRemoteError("google-calendar", err)
	}

	return CreateResult{SyncID: s.newSyncID(), Event: created}, nil
}

// UpdateFromEvent: edición en el calendario → registro del registry.
// Escribe exactamente los dos campos de período de uso, direccionados por el
// record id extraído de la description. Última escritura gana.
func (s *Service) UpdateFromEvent(ctx context.Context, ev CalendarEvent) (UpdateResult, error) {
	if strings.TrimSpace(ev.ID) == "" {
		return UpdateResult{}, &ValidationError{Field: "id", Reason: "is required"}
	}
	if strings.TrimSpace(ev.Description) == "" {
		return UpdateResult{}, &ValidationError{Field: "description", Reason: "is required"}
	}

	rawID, ok := ExtractRecordID(ev.Description)
	if !ok {
		return UpdateResult{}, &IdentityError{Text: ev.Description}
	}

	// Tombstone de cancelación: Google lo manda sin horarios utilizables.
	// Estado terminal; no hay nada que escribirle al registry.
	if strings.EqualFold(strings.TrimSpace(ev.Status), EventStatusCancelled) {
		return UpdateResult{
			SyncID:   s.newSyncID(),
			RecordID: rawID,
			Skipped:  true,
		}, nil
	}

	if strings.TrimSpace(ev.Start.DateTime) == "" {
		return UpdateResult{}, &ValidationError{Field: "start.dateTime", Reason: "is required"}
	}
	if strings.TrimSpace(ev.End.DateTime) == "" {
		return UpdateResult{}, &ValidationError{Field: "end.dateTime", Reason: "is required"}
	}

	recordID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return UpdateResult{}, &IdentityError{Text: ev.Description}
	}

	tz := strings.TrimSpace(ev.Start.TimeZone)
	if tz == "" {
		tz = s.defaultTZ
	}
	endTZ := strings.TrimSpace(ev.End.TimeZone)
	if endTZ == "" {
		endTZ = tz
	}

	startUse, err := ToDisplayFormat(ev.Start.DateTime, tz)
	if err != nil {
		return UpdateResult{}, err
	}
	endUse, err := ToDisplayFormat(ev.End.DateTime, endTZ)
	if err != nil {
		return UpdateResult{}, err
	}

	raw, err := s.registry.UpdateUsePeriod(ctx, recordID, startUse, endUse)
	if err != nil {
		return UpdateResult{}, wrapRemoteError("alchemy", err)
	}

	return UpdateResult{
		SyncID:   s.newSyncID(),
		RecordID: rawID,
		StartUse: startUse,
		EndUse:   endUse,
		Raw:      raw,
	}, nil
}

// describeRecord embebe el record id al FINAL de la description, para que la
// regla "último número standalone gana" lo recupere aunque el texto del
// usuario traiga otros números antes.
func describeRecord(description, recordID string) string {
	description = strings.TrimSpace(description)
	tag := fmt.Sprintf("Reservation Record: %s", recordID)
	if description == "" {
		return tag
	}
	return description + "\n\n" + tag
}

func buildReminders(p *ReminderPolicy) *calendar.EventReminders {
	out := &calendar.EventReminders{
		UseDefault:      p.UseDefault,
		ForceSendFields: []string{"UseDefault"},
	}
	for _, m := range p.OverrideMinutes {
		if m < 0 {
			continue
		}
		out.Overrides = append(out.Overrides, &calendar.EventReminder{
			Method:  "popup",
			Minutes: int64(m),
		})
	}
	return out
}

// wrapRemoteError traduce la falla de un adapter a la taxonomía del motor:
// error de token → CredentialError; no-2xx con body → UpstreamError con el
// diagnóstico del proveedor; red/timeout → UpstreamError sin status.
func wrapRemoteError(provider string, err error) error {
	var credErr *credentials.Error
	if errors.As(err, &credErr) {
		return &CredentialError{Domain: credErr.Domain, Err: err}
	}

	var httpErr *httpclient.HTTPError
	if errors.As(err, &httpErr) {
		return &UpstreamError{
			Provider:   provider,
			StatusCode: httpErr.StatusCode,
			Body:       httpErr.Body,
			Err:        err,
		}
	}

	return &UpstreamError{Provider: provider, Err: err}
}
