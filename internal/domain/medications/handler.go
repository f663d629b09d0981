package medications

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"medtracker/internal/domain/adherence"
	"medtracker/internal/platform/validation"
	"medtracker/internal/ports/druginfo"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/medications", func(mr chi.Router) {
		mr.Get("/", listMedicationsHandler(svc))
		mr.Post("/", createMedicationHandler(svc))

		mr.Get("/{medicationID}", getMedicationHandler(svc))
		mr.Put("/{medicationID}", updateMedicationHandler(svc))
		mr.Delete("/{medicationID}", deleteMedicationHandler(svc))

		// Lecturas calculadas
		mr.Get("/{medicationID}/expected-doses", expectedDosesHandler(svc))
		mr.Get("/{medicationID}/adherence", adherenceOverPeriodHandler(svc))

		// Consulta externa (openFDA)
		mr.Get("/{medicationID}/info", drugInfoHandler(svc))
	})
}

// medicationRequest documenta el cuerpo de POST/PUT. El handler decodifica campo por campo
// (validation.Fields) para poder reportar todos los errores de tipo juntos.
type medicationRequest struct {
	Name             string  `json:"name"`
	DosageMg         float64 `json:"dosage_mg"`
	PrescribedPerDay int     `json:"prescribed_per_day"`
}

// medicationResponse incluye la adherencia histórica calculada.
type medicationResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	DosageMg         float64 `json:"dosage_mg"`
	PrescribedPerDay int     `json:"prescribed_per_day"`
	Adherence        float64 `json:"adherence"`
}

type expectedDosesResponse struct {
	MedicationID  string `json:"medication_id"`
	Days          int    `json:"days"`
	ExpectedDoses int    `json:"expected_doses"`
}

type adherenceResponse struct {
	MedicationID string  `json:"medication_id"`
	Start        string  `json:"start"`
	End          string  `json:"end"`
	Adherence    float64 `json:"adherence"`
}

// listMedicationsHandler godoc
// @Summary Listar medicamentos
// @Description Lista todos los medicamentos con su adherencia histórica (% de dosis tomadas sobre registradas).
// @Tags medications
// @Produce json
// @Success 200 {array} medicationResponse
// @Failure 500 {object} map[string]string "internal error"
// @Router /medications [get]
func listMedicationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}

		out := make([]medicationResponse, 0, len(items))
		for _, m := range items {
			resp, err := toMedicationResponse(r, svc, m)
			if err != nil {
				writeError(w, r, err)
				return
			}
			out = append(out, resp)
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// createMedicationHandler godoc
// @Summary Crear medicamento
// @Description Crea un medicamento. `name` no puede estar vacío y `dosage_mg` debe ser > 0. `prescribed_per_day` = 0 se acepta.
// @Tags medications
// @Accept json
// @Produce json
// @Param payload body medicationRequest true "Datos del medicamento"
// @Success 201 {object} medicationResponse
// @Failure 400 {object} map[string][]string "errores por campo"
// @Router /medications [post]
func createMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, errs, err := decodeInput(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid json"})
			return
		}
		errs.Merge(svc.Validate(in))
		if len(errs) > 0 {
			errs.Write(w)
			return
		}

		m, err := svc.Create(r.Context(), in)
		if err != nil {
			writeError(w, r, err)
			return
		}

		zerolog.Ctx(r.Context()).Debug().Str("medication_id", m.ID).Stringer("medication", m).Msg("medication created")

		resp, err := toMedicationResponse(r, svc, m)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, resp)
	}
}

// getMedicationHandler godoc
// @Summary Obtener medicamento
// @Tags medications
// @Produce json
// @Param medicationID path string true "ID del medicamento"
// @Success 200 {object} medicationResponse
// @Failure 404 {object} map[string]string "medication not found"
// @Router /medications/{medicationID} [get]
func getMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := svc.GetByID(r.Context(), chi.URLParam(r, "medicationID"))
		if err != nil {
			writeError(w, r, err)
			return
		}

		resp, err := toMedicationResponse(r, svc, m)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// updateMedicationHandler godoc
// @Summary Reemplazar medicamento
// @Description Reemplaza todos los campos del medicamento (PUT). Mismas reglas que la creación.
// @Tags medications
// @Accept json
// @Produce json
// @Param medicationID path string true "ID del medicamento"
// @Param payload body medicationRequest true "Datos del medicamento"
// @Success 200 {object} medicationResponse
// @Failure 400 {object} map[string][]string "errores por campo"
// @Failure 404 {object} map[string]string "medication not found"
// @Router /medications/{medicationID} [put]
func updateMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "medicationID")

		// 404 antes que 400: no validamos cuerpos de recursos inexistentes.
		if _, err := svc.GetByID(r.Context(), id); err != nil {
			writeError(w, r, err)
			return
		}

		in, errs, err := decodeInput(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid json"})
			return
		}
		errs.Merge(svc.Validate(in))
		if len(errs) > 0 {
			errs.Write(w)
			return
		}

		m, err := svc.Update(r.Context(), id, in)
		if err != nil {
			writeError(w, r, err)
			return
		}

		resp, err := toMedicationResponse(r, svc, m)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// deleteMedicationHandler godoc
// @Summary Eliminar medicamento
// @Description Elimina el medicamento junto con sus registros de dosis y notas médicas.
// @Tags medications
// @Param medicationID path string true "ID del medicamento"
// @Success 204
// @Failure 404 {object} map[string]string "medication not found"
// @Router /medications/{medicationID} [delete]
func deleteMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "medicationID")); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// expectedDosesHandler godoc
// @Summary Dosis esperadas
// @Description Calcula prescribed_per_day * days. `days` es obligatorio y debe ser >= 0.
// @Tags medications
// @Produce json
// @Param medicationID path string true "ID del medicamento"
// @Param days query int true "Cantidad de días (>= 0)"
// @Success 200 {object} expectedDosesResponse
// @Failure 400 {object} map[string][]string "days faltante o inválido"
// @Failure 404 {object} map[string]string "medication not found"
// @Router /medications/{medicationID}/expected-doses [get]
func expectedDosesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "medicationID")

		raw := strings.TrimSpace(r.URL.Query().Get("days"))
		errs := validation.Errors{}
		days, err := strconv.Atoi(raw)
		switch {
		case raw == "":
			errs.Add("days", validation.MsgRequired)
		case err != nil:
			errs.Add("days", validation.MsgInteger)
		case days < 0:
			errs.Add("days", validation.MsgNonNegative)
		}
		if len(errs) > 0 {
			errs.Write(w)
			return
		}

		m, n, err := svc.ExpectedDoses(r.Context(), id, days)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, expectedDosesResponse{
			MedicationID:  m.ID,
			Days:          days,
			ExpectedDoses: n,
		})
	}
}

// adherenceOverPeriodHandler godoc
// @Summary Adherencia en un período
// @Description Porcentaje de dosis tomadas entre start y end (inclusive) sobre las esperadas.
// @Tags medications
// @Produce json
// @Param medicationID path string true "ID del medicamento"
// @Param start query string true "Fecha inicial (YYYY-MM-DD)"
// @Param end query string true "Fecha final (YYYY-MM-DD)"
// @Success 200 {object} adherenceResponse
// @Failure 400 {object} map[string][]string "fechas faltantes, inválidas o rango invertido"
// @Failure 404 {object} map[string]string "medication not found"
// @Router /medications/{medicationID}/adherence [get]
func adherenceOverPeriodHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "medicationID")

		errs := validation.Errors{}
		start := parseDateParam(r, "start", errs)
		end := parseDateParam(r, "end", errs)
		if len(errs) > 0 {
			errs.Write(w)
			return
		}

		rate, err := svc.AdherenceOverPeriod(r.Context(), id, start, end)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, adherenceResponse{
			MedicationID: id,
			Start:        start.Format(time.DateOnly),
			End:          end.Format(time.DateOnly),
			Adherence:    rate,
		})
	}
}

// drugInfoHandler godoc
// @Summary Información del medicamento (openFDA)
// @Description Consulta el formulario externo por el nombre del medicamento. Un fallo del servicio externo devuelve 502.
// @Tags medications
// @Produce json
// @Param medicationID path string true "ID del medicamento"
// @Success 200 {object} druginfo.Info
// @Failure 404 {object} map[string]string "medication not found"
// @Failure 502 {object} map[string]string "error del servicio externo"
// @Router /medications/{medicationID}/info [get]
func drugInfoHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, err := svc.DrugInfo(r.Context(), chi.URLParam(r, "medicationID"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, info)
	}
}

// decodeInput separa errores de tipo (del JSON) de las reglas de negocio (svc.Validate).
func decodeInput(r *http.Request) (Input, validation.Errors, error) {
	f, err := validation.DecodeFields(r.Body)
	if err != nil {
		return Input{}, nil, err
	}

	var in Input
	errs := validation.Errors{}

	if v, ok, err := f.String("name"); !ok {
		errs.Add("name", validation.MsgRequired)
	} else if err != nil {
		errs.Add("name", validation.MsgString)
	} else {
		in.Name = v
	}

	if v, ok, err := f.Number("dosage_mg"); !ok {
		errs.Add("dosage_mg", validation.MsgRequired)
	} else if err != nil {
		errs.Add("dosage_mg", validation.MsgNumber)
	} else {
		in.DosageMg = v
	}

	if v, ok, err := f.Int("prescribed_per_day"); !ok {
		errs.Add("prescribed_per_day", validation.MsgRequired)
	} else if err != nil {
		errs.Add("prescribed_per_day", validation.MsgInteger)
	} else {
		in.PrescribedPerDay = v
	}

	return in, errs, nil
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

func toMedicationResponse(r *http.Request, svc *Service, m Medication) (medicationResponse, error) {
	rate, err := svc.Adherence(r.Context(), m)
	if err != nil {
		return medicationResponse{}, err
	}
	return medicationResponse{
		ID:               m.ID,
		Name:             m.Name,
		DosageMg:         m.DosageMg,
		PrescribedPerDay: m.PrescribedPerDay,
		Adherence:        rate,
	}, nil
}

// writeError traduce errores de dominio a status HTTP.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := zerolog.Ctx(r.Context())

	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		verrs.Write(w)
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "medication not found"})
	case errors.Is(err, adherence.ErrInvalidArgument), errors.Is(err, druginfo.ErrInvalidArgument):
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
	case errors.Is(err, druginfo.ErrLookup), errors.Is(err, ErrDrugInfoNotConfigured):
		log.Warn().Err(err).Msg("drug info lookup failed")
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
	default:
		log.Error().Err(err).Msg("medications: internal error")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "internal error"})
	}
}

// writeJSON se repite por módulo (igual que en doselogs/notes) para no acoplar paquetes.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
