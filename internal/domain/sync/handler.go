package sync

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/create-event", createEventHandler(svc))

	// El webhook del calendario llega como POST o PUT según quién lo dispare.
	r.Post("/update-alchemy", updateAlchemyHandler(svc))
	r.Put("/update-alchemy", updateAlchemyHandler(svc))
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Detail  string `json:"detail,omitempty"`
}

type createResponse struct {
	Success bool `json:"success"`
	CreateResult
}

type updateResponse struct {
	Success bool         `json:"success"`
	Data    UpdateResult `json:"data"`
}

// createEventHandler godoc
// @Summary Crear evento de calendario desde una reserva del registry
// @Description Normaliza las fechas display de la reserva a instantes con offset en la zona indicada (o la default) y crea el evento en Google Calendar. El record id queda embebido en la description del evento. Reintentar con el mismo record id puede duplicar el evento.
// @Tags sync
// @Accept json
// @Produce json
// @Param payload body ReservationRecord true "Reserva del registry; startUse/endUse en formato 'Mar 05 2025 02:30 PM'"
// @Success 200 {object} createResponse
// @Failure 400 {object} errorResponse "validación / formato de fecha"
// @Failure 500 {object} errorResponse "credenciales o API remota"
// @Router /create-event [post]
func createEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rec ReservationRecord
		if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
			writeError(w, &ValidationError{Field: "body", Reason: "is not valid json"})
			return
		}

		res, err := svc.CreateFromRecord(r.Context(), rec)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, createResponse{Success: true, CreateResult: res})
	}
}

// updateAlchemyHandler godoc
// @Summary Propagar una edición del calendario al registry
// @Description Extrae el record id de la description del evento (último número standalone), convierte los instantes a formato display en la zona del evento y escribe los campos de inicio/fin de uso del registro. Eventos cancelados se reconocen y no tocan el registry.
// @Tags sync
// @Accept json
// @Produce json
// @Param payload body CalendarEvent true "Evento del calendario con start/end {dateTime, timeZone}"
// @Success 200 {object} updateResponse
// @Failure 400 {object} errorResponse "validación / sin record id / formato"
// @Failure 500 {object} errorResponse "credenciales o API remota"
// @Router /update-alchemy [post]
func updateAlchemyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ev CalendarEvent
		if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
			writeError(w, &ValidationError{Field: "body", Reason: "is not valid json"})
			return
		}

		res, err := svc.UpdateFromEvent(r.Context(), ev)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, updateResponse{Success: true, Data: res})
	}
}

// writeError es el único punto donde la taxonomía de fallas se traduce a
// status codes. Fallas de cliente => 400; credenciales/upstream => 500.
func writeError(w http.ResponseWriter, err error) {
	var (
		validationErr *ValidationError
		formatErr     *FormatError
		identityErr   *IdentityError
		credErr       *CredentialError
		upstreamErr   *UpstreamError
	)

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation_error", Detail: validationErr.Error()})
	case errors.As(err, &formatErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "format_error", Detail: formatErr.Error()})
	case errors.As(err, &identityErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "identity_error", Detail: identityErr.Error()})
	case errors.As(err, &credErr):
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "credential_error", Detail: credErr.Error()})
	case errors.As(err, &upstreamErr):
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "upstream_error", Detail: upstreamErr.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal_error", Detail: err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
