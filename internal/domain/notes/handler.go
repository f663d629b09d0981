package notes

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"medtracker/internal/domain/medications"
	"medtracker/internal/platform/validation"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// RegisterRoutes: las notas no se editan. Para PUT/PATCH sobre /{noteID}
// chi responde 405 solo porque la ruta existe con otros métodos.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/doctors_notes", func(nr chi.Router) {
		nr.Get("/", listNotesHandler(svc))
		nr.Post("/", createNoteHandler(svc))

		nr.Get("/{noteID}", getNoteHandler(svc))
		nr.Delete("/{noteID}", deleteNoteHandler(svc))
	})
}

type createNoteRequest struct {
	Medication string `json:"medication"`
	Content    string `json:"content"`
}

type noteResponse struct {
	ID         string    `json:"id"`
	Medication string    `json:"medication"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// listNotesHandler godoc
// @Summary Listar notas médicas
// @Tags doctors_notes
// @Produce json
// @Success 200 {array} noteResponse
// @Failure 500 {object} map[string]string "internal error"
// @Router /doctors_notes [get]
func listNotesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}

		out := make([]noteResponse, 0, len(items))
		for _, n := range items {
			out = append(out, toNoteResponse(n))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createNoteHandler godoc
// @Summary Crear nota médica
// @Description created_at lo fija el servidor; si viene en el cuerpo se ignora.
// @Tags doctors_notes
// @Accept json
// @Produce json
// @Param payload body createNoteRequest true "Nota"
// @Success 201 {object} noteResponse
// @Failure 400 {object} map[string][]string "errores por campo"
// @Router /doctors_notes [post]
func createNoteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := validation.DecodeFields(r.Body)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid json"})
			return
		}

		var in CreateInput
		errs := validation.Errors{}

		if v, ok, err := f.String("medication"); !ok {
			errs.Add("medication", validation.MsgRequired)
		} else if err != nil {
			errs.Add("medication", validation.MsgIncorrectRef)
		} else {
			in.MedicationID = v
		}

		if v, ok, err := f.String("content"); !ok {
			errs.Add("content", validation.MsgRequired)
		} else if err != nil {
			errs.Add("content", validation.MsgString)
		} else {
			in.Content = v
		}

		svcErrs, err := svc.Validate(r.Context(), in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		errs.Merge(svcErrs)
		if len(errs) > 0 {
			errs.Write(w)
			return
		}

		n, err := svc.Create(r.Context(), in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, toNoteResponse(n))
	}
}

// getNoteHandler godoc
// @Summary Obtener nota médica
// @Tags doctors_notes
// @Produce json
// @Param noteID path string true "ID de la nota"
// @Success 200 {object} noteResponse
// @Failure 404 {object} map[string]string "doctors note not found"
// @Router /doctors_notes/{noteID} [get]
func getNoteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := svc.GetByID(r.Context(), chi.URLParam(r, "noteID"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toNoteResponse(n))
	}
}

// deleteNoteHandler godoc
// @Summary Eliminar nota médica
// @Tags doctors_notes
// @Param noteID path string true "ID de la nota"
// @Success 204
// @Failure 404 {object} map[string]string "doctors note not found"
// @Router /doctors_notes/{noteID} [delete]
func deleteNoteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "noteID")); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toNoteResponse(n DoctorsNote) noteResponse {
	return noteResponse{
		ID:         n.ID,
		Medication: n.MedicationID,
		Content:    n.Content,
		CreatedAt:  n.CreatedAt,
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		verrs.Write(w)
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "doctors note not found"})
	case errors.Is(err, medications.ErrNotFound):
		// el medicamento se borró entre la validación y el insert
		validation.Errors{"medication": {validation.MsgInvalidRef}}.Write(w)
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("notes: internal error")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
