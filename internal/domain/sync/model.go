package sync

// ReservationRecord es la reserva tal como la manda el registry.
// StartUse/EndUse vienen en el formato display ("Mar 05 2025 02:30 PM"),
// sin offset embebido; TimeZone es un identificador IANA opcional.
type ReservationRecord struct {
	RecordID    string   `json:"recordId"`
	StartUse    string   `json:"startUse"`
	EndUse      string   `json:"endUse"`
	TimeZone    string   `json:"timeZone,omitempty"`
	Summary     string   `json:"summary,omitempty"`
	Location    string   `json:"location,omitempty"`
	Description string   `json:"description,omitempty"`
	Attendees   []string `json:"attendees,omitempty"`

	Reminders *ReminderPolicy `json:"reminders,omitempty"`
}

// ReminderPolicy refleja la política de recordatorios del evento.
// Si OverrideMinutes está vacío y UseDefault es false, el evento
// queda sin recordatorios propios.
type ReminderPolicy struct {
	UseDefault      bool  `json:"useDefault"`
	OverrideMinutes []int `json:"overrideMinutes,omitempty"`
}

// EventDateTime es el formato máquina del calendario: instante ISO-8601
// con offset explícito, más la etiqueta de zona.
type EventDateTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone,omitempty"`
}

// CalendarEvent es el evento tal como llega del webhook del calendario.
// Description embebe el record id de la reserva asociada; ese texto es el
// único vínculo entre los dos sistemas.
type CalendarEvent struct {
	ID          string        `json:"id"`
	Status      string        `json:"status,omitempty"` // confirmed | cancelled
	Summary     string        `json:"summary,omitempty"`
	Description string        `json:"description,omitempty"`
	Start       EventDateTime `json:"start"`
	End         EventDateTime `json:"end"`
}

// EventStatusCancelled es el estado terminal que manda Google en los
// tombstones de eventos borrados desde la UI del calendario.
const EventStatusCancelled = "cancelled"

// UpdateResult describe lo que el path de update le escribió al registry.
type UpdateResult struct {
	SyncID   string `json:"syncId"`
	RecordID string `json:"recordId"`
	StartUse string `json:"startUse,omitempty"`
	EndUse   string `json:"endUse,omitempty"`

	// Skipped indica que el evento venía cancelado y no se tocó el registry.
	Skipped bool `json:"skipped,omitempty"`

	Raw any `json:"raw,omitempty"`
}
