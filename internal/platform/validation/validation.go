package validation

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
)

// Mensajes comunes para que todos los módulos respondan igual.
const (
	MsgRequired     = "This field is required."
	MsgBlank        = "This field may not be blank."
	MsgString       = "Not a valid string."
	MsgDate         = "Date has wrong format. Use YYYY-MM-DD."
	MsgPositive     = "Ensure this value is greater than 0."
	MsgNonNegative  = "Ensure this value is greater than or equal to 0."
	MsgNumber       = "A valid number is required."
	MsgInteger      = "A valid integer is required."
	MsgBoolean      = "Must be a valid boolean."
	MsgDatetime     = "Datetime has wrong format. Use RFC3339, e.g. 2025-12-01T08:00:00Z."
	MsgInvalidRef   = "Invalid pk - object does not exist."
	MsgIncorrectRef = "Incorrect type. Expected pk value."
)

// Errors agrupa errores por campo: {"name": ["This field may not be blank."]}.
// Se serializa tal cual como cuerpo de un 400.
type Errors map[string][]string

func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Merge copia los errores de other (puede ser nil) para los campos que todavía no tienen error.
// El primer error reportado por campo gana (p.ej. "required" antes que "must be > 0").
func (e Errors) Merge(other Errors) {
	for f, msgs := range other {
		if e.Has(f) {
			continue
		}
		e[f] = append(e[f], msgs...)
	}
}

func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Err devuelve nil si no hay errores, para poder hacer `return errs.Err()`.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+strings.Join(e[f], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Write responde 400 con el mapa de errores.
func (e Errors) Write(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(e)
}
