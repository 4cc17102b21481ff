package sync

import (
	"errors"
	"strings"
	"time"
)

// DisplayLayout es la gramática fija del formato display del registry:
// mes corto, día a dos dígitos, año, hora 12h con meridiano.
// Ej: "Mar 05 2025 02:30 PM".
const DisplayLayout = "Jan 02 2006 03:04 PM"

// DefaultEventDuration es la corrección que se aplica cuando el fin
// calculado no queda estrictamente después del inicio.
const DefaultEventDuration = time.Hour

// isoLocalLayout acepta instantes ISO sin offset; se interpretan como UTC.
const isoLocalLayout = "2006-01-02T15:04:05"

// ParseDisplay interpreta un string display como hora de pared LOCAL en la
// zona dada: la hora mostrada es la hora local de esa zona, no UTC corrido.
// El offset UTC resultante depende de la fecha (DST incluido). En un
// solapamiento de fall-back gana la primera ocurrencia (offset anterior).
func ParseDisplay(display, timeZone string) (time.Time, error) {
	display = strings.TrimSpace(display)
	if display == "" {
		return time.Time{}, &FormatError{Input: display, Err: errors.New("empty date string")}
	}

	loc, err := time.LoadLocation(timeZone)
	if err != nil {
		return time.Time{}, &FormatError{Input: timeZone, Err: err}
	}

	t, err := time.ParseInLocation(DisplayLayout, display, loc)
	if err != nil {
		return time.Time{}, &FormatError{Input: display, Err: err}
	}
	return t, nil
}

// ParseISO acepta un instante ISO-8601 con offset explícito (o Z); si viene
// sin offset se asume UTC.
func ParseISO(iso string) (time.Time, error) {
	iso = strings.TrimSpace(iso)
	if iso == "" {
		return time.Time{}, &FormatError{Input: iso, Err: errors.New("empty instant")}
	}

	if t, err := time.Parse(time.RFC3339, iso); err == nil {
		return t, nil
	}

	t, err := time.ParseInLocation(isoLocalLayout, iso, time.UTC)
	if err != nil {
		return time.Time{}, &FormatError{Input: iso, Err: err}
	}
	return t, nil
}

// ToCalendarFormat convierte display + zona al formato máquina del
// calendario: RFC3339 con el offset de esa zona en esa fecha.
func ToCalendarFormat(display, timeZone string) (string, error) {
	t, err := ParseDisplay(display, timeZone)
	if err != nil {
		return "", err
	}
	return t.Format(time.RFC3339), nil
}

// ToDisplayFormat es la inversa: renderiza un instante ISO como hora de
// pared de la zona destino, en la gramática display.
func ToDisplayFormat(iso, timeZone string) (string, error) {
	t, err := ParseISO(iso)
	if err != nil {
		return "", err
	}

	loc, err := time.LoadLocation(timeZone)
	if err != nil {
		return "", &FormatError{Input: timeZone, Err: err}
	}
	return t.In(loc).Format(DisplayLayout), nil
}

// EnsureEndAfterStart aplica la política de corrección: si end no queda
// estrictamente después de start, se reemplaza por start + 1h. Determinista,
// se aplica una única vez y nunca falla.
func EnsureEndAfterStart(start, end time.Time) time.Time {
	if end.After(start) {
		return end
	}
	return start.Add(DefaultEventDuration)
}
