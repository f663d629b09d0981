package doselogs

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"medtracker/internal/domain/medications"
	"medtracker/internal/platform/validation"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/logs", func(lr chi.Router) {
		lr.Get("/", listLogsHandler(svc))
		lr.Post("/", createLogHandler(svc))

		// Ruta estática: chi la prioriza sobre /{logID}
		lr.Get("/filter", filterLogsHandler(svc))

		lr.Get("/{logID}", getLogHandler(svc))
		lr.Put("/{logID}", updateLogHandler(svc))
		lr.Delete("/{logID}", deleteLogHandler(svc))
	})
}

// doseLogRequest documenta el cuerpo de POST/PUT.
type doseLogRequest struct {
	Medication string `json:"medication"`
	TakenAt    string `json:"taken_at"` // RFC3339
	WasTaken   *bool  `json:"was_taken"`
}

type doseLogResponse struct {
	ID         string    `json:"id"`
	Medication string    `json:"medication"`
	TakenAt    time.Time `json:"taken_at"`
	WasTaken   bool      `json:"was_taken"`
}

// listLogsHandler godoc
// @Summary Listar registros de dosis
// @Tags logs
// @Produce json
// @Success 200 {array} doseLogResponse
// @Failure 500 {object} map[string]string "internal error"
// @Router /logs [get]
func listLogsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toDoseLogResponses(items))
	}
}

// filterLogsHandler godoc
// @Summary Filtrar registros por fecha
// @Description Devuelve los registros cuyo taken_at cae entre start y end (inclusive, días UTC).
// @Tags logs
// @Produce json
// @Param start query string true "Fecha inicial (YYYY-MM-DD)"
// @Param end query string true "Fecha final (YYYY-MM-DD)"
// @Success 200 {array} doseLogResponse
// @Failure 400 {object} map[string][]string "fechas faltantes, inválidas o rango invertido"
// @Router /logs/filter [get]
func filterLogsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		errs := validation.Errors{}
		start := parseDateParam(r, "start", errs)
		end := parseDateParam(r, "end", errs)
		if len(errs) > 0 {
			errs.Write(w)
			return
		}

		items, err := svc.FilterByDate(r.Context(), start, end)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toDoseLogResponses(items))
	}
}

// createLogHandler godoc
// @Summary Registrar dosis
// @Description Registra una toma (was_taken=true, por defecto) o una omisión (was_taken=false).
// @Tags logs
// @Accept json
// @Produce json
// @Param payload body doseLogRequest true "Registro; taken_at en RFC3339"
// @Success 201 {object} doseLogResponse
// @Failure 400 {object} map[string][]string "errores por campo"
// @Router /logs [post]
func createLogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, ok := decodeValidInput(w, r, svc)
		if !ok {
			return
		}

		l, err := svc.Create(r.Context(), in)
		if err != nil {
			writeError(w, r, err)
			return
		}

		zerolog.Ctx(r.Context()).Debug().Str("dose_log_id", l.ID).Stringer("dose_log", l).Msg("dose log created")
		writeJSON(w, http.StatusCreated, toDoseLogResponse(l))
	}
}

// getLogHandler godoc
// @Summary Obtener registro de dosis
// @Tags logs
// @Produce json
// @Param logID path string true "ID del registro"
// @Success 200 {object} doseLogResponse
// @Failure 404 {object} map[string]string "dose log not found"
// @Router /logs/{logID} [get]
func getLogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l, err := svc.GetByID(r.Context(), chi.URLParam(r, "logID"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toDoseLogResponse(l))
	}
}

// updateLogHandler godoc
// @Summary Reemplazar registro de dosis
// @Tags logs
// @Accept json
// @Produce json
// @Param logID path string true "ID del registro"
// @Param payload body doseLogRequest true "Registro completo"
// @Success 200 {object} doseLogResponse
// @Failure 400 {object} map[string][]string "errores por campo"
// @Failure 404 {object} map[string]string "dose log not found"
// @Router /logs/{logID} [put]
func updateLogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "logID")
		if _, err := svc.GetByID(r.Context(), id); err != nil {
			writeError(w, r, err)
			return
		}

		in, ok := decodeValidInput(w, r, svc)
		if !ok {
			return
		}

		l, err := svc.Update(r.Context(), id, in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toDoseLogResponse(l))
	}
}

// deleteLogHandler godoc
// @Summary Eliminar registro de dosis
// @Tags logs
// @Param logID path string true "ID del registro"
// @Success 204
// @Failure 404 {object} map[string]string "dose log not found"
// @Router /logs/{logID} [delete]
func deleteLogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "logID")); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// decodeValidInput decodifica y valida el cuerpo. Si devuelve false, la respuesta ya se escribió.
// Junta errores de tipo y de negocio para que el cliente vea todos los campos inválidos a la vez.
func decodeValidInput(w http.ResponseWriter, r *http.Request, svc *Service) (Input, bool) {
	f, err := validation.DecodeFields(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid json"})
		return Input{}, false
	}

	var in Input
	errs := validation.Errors{}

	if v, ok, err := f.String("medication"); !ok {
		errs.Add("medication", validation.MsgRequired)
	} else if err != nil {
		errs.Add("medication", validation.MsgIncorrectRef)
	} else {
		in.MedicationID = v
	}

	if v, ok, err := f.String("taken_at"); !ok {
		errs.Add("taken_at", validation.MsgRequired)
	} else if err != nil {
		errs.Add("taken_at", validation.MsgDatetime)
	} else if t, perr := parseTimestamp(v); perr != nil {
		errs.Add("taken_at", validation.MsgDatetime)
	} else {
		in.TakenAt = &t
	}

	if v, ok, err := f.Bool("was_taken"); ok && err != nil {
		errs.Add("was_taken", validation.MsgBoolean)
	} else if ok {
		in.WasTaken = &v
	}

	svcErrs, err := svc.Validate(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return Input{}, false
	}
	errs.Merge(svcErrs)

	if len(errs) > 0 {
		errs.Write(w)
		return Input{}, false
	}
	return in, true
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// parseTimestamp acepta RFC3339; sin zona horaria se asume UTC.
func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func parseDateParam(r *http.Request, name string, errs validation.Errors) time.Time {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		errs.Add(name, validation.MsgRequired)
		return time.Time{}
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		errs.Add(name, validation.MsgDate)
		return time.Time{}
	}
	return t
}

func toDoseLogResponse(l DoseLog) doseLogResponse {
	return doseLogResponse{
		ID:         l.ID,
		Medication: l.MedicationID,
		TakenAt:    l.TakenAt,
		WasTaken:   l.WasTaken,
	}
}

func toDoseLogResponses(items []DoseLog) []doseLogResponse {
	out := make([]doseLogResponse, 0, len(items))
	for _, l := range items {
		out = append(out, toDoseLogResponse(l))
	}
	return out
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		verrs.Write(w)
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "dose log not found"})
	case errors.Is(err, medications.ErrNotFound):
		// el medicamento se borró entre la validación y el insert
		validation.Errors{"medication": {validation.MsgInvalidRef}}.Write(w)
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("doselogs: internal error")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
