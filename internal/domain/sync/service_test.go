package sync

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"google.golang.org/api/calendar/v3"

	"github.com/pbrose82/google-calendar-middleware/internal/platform/httpclient"
	"github.com/pbrose82/google-calendar-middleware/internal/ports/credentials"
)

// -------------------------
// Fakes
// -------------------------

type fakeCalendar struct {
	lastEvent *calendar.Event
	calls     int
	err       error
}

func (f *fakeCalendar) InsertEvent(_ context.Context, ev *calendar.Event) (*calendar.Event, error) {
	f.calls++
	f.lastEvent = ev
	if f.err != nil {
		return nil, f.err
	}
	out := *ev
	out.Id = "evt-created"
	return &out, nil
}

type fakeRegistry struct {
	calls    int
	recordID int64
	startUse string
	endUse   string
	err      error
}

func (f *fakeRegistry) UpdateUsePeriod(_ context.Context, recordID int64, startUse, endUse string) (json.RawMessage, error) {
	f.calls++
	f.recordID = recordID
	f.startUse = startUse
	f.endUse = endUse
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(`{"updated":true}`), nil
}

func newTestService(cal *fakeCalendar, reg *fakeRegistry) *Service {
	svc := NewService(cal, reg, "primary", "America/New_York")
	svc.newSyncID = func() string { return "sync-test" }
	return svc
}

// -------------------------
// CreateFromRecord
// -------------------------

func TestCreateFromRecord_EndCorrectedToStartPlusOneHour(t *testing.T) {
	cal := &fakeCalendar{}
	svc := newTestService(cal, &fakeRegistry{})

	res, err := svc.CreateFromRecord(context.Background(), ReservationRecord{
		RecordID: "1001",
		StartUse: "Mar 05 2025 02:30 PM",
		EndUse:   "Mar 05 2025 02:00 PM", // anterior al inicio
		TimeZone: "America/New_York",
	})
	if err != nil {
		t.Fatalf("CreateFromRecord error: %v", err)
	}
	if res.Event == nil || res.Event.Id != "evt-created" {
		t.Fatalf("expected created event, got %+v", res.Event)
	}

	if cal.lastEvent.Start.DateTime != "2025-03-05T14:30:00-05:00" {
		t.Fatalf("unexpected start: %s", cal.lastEvent.Start.DateTime)
	}
	if cal.lastEvent.End.DateTime != "2025-03-05T15:30:00-05:00" {
		t.Fatalf("expected end corrected to start+1h, got %s", cal.lastEvent.End.DateTime)
	}
	if cal.lastEvent.Start.TimeZone != "America/New_York" {
		t.Fatalf("unexpected start timezone: %s", cal.lastEvent.Start.TimeZone)
	}
}

func TestCreateFromRecord_DescriptionEmbedsExtractableRecordID(t *testing.T) {
	cal := &fakeCalendar{}
	svc := newTestService(cal, &fakeRegistry{})

	_, err := svc.CreateFromRecord(context.Background(), ReservationRecord{
		RecordID:    "1001",
		StartUse:    "Mar 05 2025 02:30 PM",
		EndUse:      "Mar 05 2025 03:30 PM",
		Description: "Equipment in lab 3",
	})
	if err != nil {
		t.Fatalf("CreateFromRecord error: %v", err)
	}

	// El id tiene que poder recuperarse con la misma regla que usa el
	// camino de update, aunque la description del usuario traiga números.
	got, ok := ExtractRecordID(cal.lastEvent.Description)
	if !ok || got != "1001" {
		t.Fatalf("record id not extractable from %q: got (%q, %v)", cal.lastEvent.Description, got, ok)
	}
}

func TestCreateFromRecord_AttendeesAndReminders(t *testing.T) {
	cal := &fakeCalendar{}
	svc := newTestService(cal, &fakeRegistry{})

	_, err := svc.CreateFromRecord(context.Background(), ReservationRecord{
		RecordID:  "7",
		StartUse:  "Mar 05 2025 02:30 PM",
		EndUse:    "Mar 05 2025 03:30 PM",
		Summary:   "Microscope booking",
		Attendees: []string{"ana@example.com", " ", "luis@example.com"},
		Reminders: &ReminderPolicy{OverrideMinutes: []int{10, 60}},
	})
	if err != nil {
		t.Fatalf("CreateFromRecord error: %v", err)
	}

	if len(cal.lastEvent.Attendees) != 2 {
		t.Fatalf("expected 2 attendees, got %d", len(cal.lastEvent.Attendees))
	}
	if cal.lastEvent.Reminders == nil || len(cal.lastEvent.Reminders.Overrides) != 2 {
		t.Fatalf("expected 2 reminder overrides, got %+v", cal.lastEvent.Reminders)
	}
	if cal.lastEvent.Reminders.Overrides[0].Minutes != 10 {
		t.Fatalf("unexpected reminder minutes: %d", cal.lastEvent.Reminders.Overrides[0].Minutes)
	}
}

func TestCreateFromRecord_Validation(t *testing.T) {
	svc := newTestService(&fakeCalendar{}, &fakeRegistry{})

	cases := []ReservationRecord{
		{StartUse: "Mar 05 2025 02:30 PM", EndUse: "Mar 05 2025 03:30 PM"},               // sin id
		{RecordID: "abc", StartUse: "Mar 05 2025 02:30 PM", EndUse: "Mar 05 2025 03:30 PM"}, // id no numérico
		{RecordID: "1001", EndUse: "Mar 05 2025 03:30 PM"},                               // sin inicio
		{RecordID: "1001", StartUse: "Mar 05 2025 02:30 PM"},                             // sin fin
	}

	for i, rec := range cases {
		_, err := svc.CreateFromRecord(context.Background(), rec)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("case %d: expected ValidationError, got %v", i, err)
		}
	}
}

func TestCreateFromRecord_BadDateIsFormatError(t *testing.T) {
	svc := newTestService(&fakeCalendar{}, &fakeRegistry{})

	_, err := svc.CreateFromRecord(context.Background(), ReservationRecord{
		RecordID: "1001",
		StartUse: "05/03/2025 14:30",
		EndUse:   "Mar 05 2025 03:30 PM",
	})
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FormatError, got %v", err)
	}
}

func TestCreateFromRecord_UpstreamFailureKeepsProviderBody(t *testing.T) {
	cal := &fakeCalendar{err: &httpclient.HTTPError{StatusCode: 403, Body: `{"error":"rate limit"}`}}
	svc := newTestService(cal, &fakeRegistry{})

	_, err := svc.CreateFromRecord(context.Background(), ReservationRecord{
		RecordID: "1001",
		StartUse: "Mar 05 2025 02:30 PM",
		EndUse:   "Mar 05 2025 03:30 PM",
	})

	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if ue.StatusCode != 403 || ue.Body != `{"error":"rate limit"}` {
		t.Fatalf("provider diagnostics lost: %+v", ue)
	}
}

func TestCreateFromRecord_CredentialFailure(t *testing.T) {
	cal := &fakeCalendar{err: &credentials.Error{Domain: "google", Err: errors.New("invalid_grant")}}
	svc := newTestService(cal, &fakeRegistry{})

	_, err := svc.CreateFromRecord(context.Background(), ReservationRecord{
		RecordID: "1001",
		StartUse: "Mar 05 2025 02:30 PM",
		EndUse:   "Mar 05 2025 03:30 PM",
	})

	var ce *CredentialError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CredentialError, got %v", err)
	}
	if ce.Domain != "google" {
		t.Fatalf("unexpected domain: %s", ce.Domain)
	}
}

// -------------------------
// UpdateFromEvent
// -------------------------

func TestUpdateFromEvent_WritesDisplayFormatToRegistry(t *testing.T) {
	reg := &fakeRegistry{}
	svc := newTestService(&fakeCalendar{}, reg)

	res, err := svc.UpdateFromEvent(context.Background(), CalendarEvent{
		ID:          "evt1",
		Description: "Room booking 1001",
		Start:       EventDateTime{DateTime: "2025-03-05T14:30:00-05:00", TimeZone: "America/New_York"},
		End:         EventDateTime{DateTime: "2025-03-05T15:30:00-05:00", TimeZone: "America/New_York"},
	})
	if err != nil {
		t.Fatalf("UpdateFromEvent error: %v", err)
	}

	if reg.calls != 1 || reg.recordID != 1001 {
		t.Fatalf("expected one update for record 1001, got calls=%d record=%d", reg.calls, reg.recordID)
	}
	if reg.startUse != "Mar 05 2025 02:30 PM" {
		t.Fatalf("unexpected startUse: %s", reg.startUse)
	}
	if reg.endUse != "Mar 05 2025 03:30 PM" {
		t.Fatalf("unexpected endUse: %s", reg.endUse)
	}
	if res.RecordID != "1001" || res.Skipped {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestUpdateFromEvent_NoRecordIDIsIdentityError(t *testing.T) {
	reg := &fakeRegistry{}
	svc := newTestService(&fakeCalendar{}, reg)

	_, err := svc.UpdateFromEvent(context.Background(), CalendarEvent{
		ID:          "evt1",
		Description: "no digits here",
		Start:       EventDateTime{DateTime: "2025-03-05T14:30:00-05:00"},
		End:         EventDateTime{DateTime: "2025-03-05T15:30:00-05:00"},
	})

	var ie *IdentityError
	if !errors.As(err, &ie) {
		t.Fatalf("expected IdentityError, got %v", err)
	}
	if reg.calls != 0 {
		t.Fatalf("registry should not be called, got %d calls", reg.calls)
	}
}

func TestUpdateFromEvent_CancelledEventSkipsRegistry(t *testing.T) {
	reg := &fakeRegistry{}
	svc := newTestService(&fakeCalendar{}, reg)

	// Google manda los tombstones cancelados sin horarios utilizables.
	res, err := svc.UpdateFromEvent(context.Background(), CalendarEvent{
		ID:          "evt1",
		Status:      "cancelled",
		Description: "Room booking 1001",
	})
	if err != nil {
		t.Fatalf("UpdateFromEvent error: %v", err)
	}
	if !res.Skipped || res.RecordID != "1001" {
		t.Fatalf("expected skipped result for record 1001, got %+v", res)
	}
	if reg.calls != 0 {
		t.Fatalf("registry should not be touched for cancelled events, got %d calls", reg.calls)
	}
}

func TestUpdateFromEvent_Validation(t *testing.T) {
	svc := newTestService(&fakeCalendar{}, &fakeRegistry{})

	cases := []CalendarEvent{
		{Description: "x 1001", Start: EventDateTime{DateTime: "2025-03-05T14:30:00-05:00"}, End: EventDateTime{DateTime: "2025-03-05T15:30:00-05:00"}}, // sin id
		{ID: "evt1", Start: EventDateTime{DateTime: "2025-03-05T14:30:00-05:00"}, End: EventDateTime{DateTime: "2025-03-05T15:30:00-05:00"}},           // sin description
		{ID: "evt1", Description: "x 1001", End: EventDateTime{DateTime: "2025-03-05T15:30:00-05:00"}},                                                 // sin start
		{ID: "evt1", Description: "x 1001", Start: EventDateTime{DateTime: "2025-03-05T14:30:00-05:00"}},                                               // sin end
	}

	for i, ev := range cases {
		_, err := svc.UpdateFromEvent(context.Background(), ev)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("case %d: expected ValidationError, got %v", i, err)
		}
	}
}

func TestUpdateFromEvent_DefaultZoneWhenEventOmitsIt(t *testing.T) {
	reg := &fakeRegistry{}
	svc := newTestService(&fakeCalendar{}, reg)

	// Instante UTC sin zona en el evento: se rinde en la zona default.
	_, err := svc.UpdateFromEvent(context.Background(), CalendarEvent{
		ID:          "evt1",
		Description: "Room booking 1001",
		Start:       EventDateTime{DateTime: "2025-03-05T19:30:00Z"},
		End:         EventDateTime{DateTime: "2025-03-05T20:30:00Z"},
	})
	if err != nil {
		t.Fatalf("UpdateFromEvent error: %v", err)
	}
	if reg.startUse != "Mar 05 2025 02:30 PM" {
		t.Fatalf("expected default-zone rendering, got %s", reg.startUse)
	}
}

func TestUpdateFromEvent_RegistryFailureIsUpstreamError(t *testing.T) {
	reg := &fakeRegistry{err: &httpclient.HTTPError{StatusCode: 500, Body: "boom"}}
	svc := newTestService(&fakeCalendar{}, reg)

	_, err := svc.UpdateFromEvent(context.Background(), CalendarEvent{
		ID:          "evt1",
		Description: "Room booking 1001",
		Start:       EventDateTime{DateTime: "2025-03-05T14:30:00-05:00"},
		End:         EventDateTime{DateTime: "2025-03-05T15:30:00-05:00"},
	})

	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if ue.Provider != "alchemy" || ue.Body != "boom" {
		t.Fatalf("unexpected upstream error: %+v", ue)
	}
}
