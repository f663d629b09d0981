package validation

import (
	"encoding/json"
	"errors"
	"io"
	"math"
)

var errWrongType = errors.New("wrong json type")

// Fields es el cuerpo JSON decodificado por campo.
// Decodificar así (en vez de a un struct) permite reportar TODOS los campos con tipo
// incorrecto a la vez, en lugar de cortar en el primer error de json.Unmarshal.
type Fields map[string]json.RawMessage

func DecodeFields(r io.Reader) (Fields, error) {
	var f Fields
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, err
	}
	if f == nil {
		// body "null"
		f = Fields{}
	}
	return f, nil
}

// raw devuelve el valor si el campo vino y no es null.
func (f Fields) raw(name string) (json.RawMessage, bool) {
	v, ok := f[name]
	if !ok || string(v) == "null" {
		return nil, false
	}
	return v, true
}

// String: (valor, presente, error de tipo).
func (f Fields) String(name string) (string, bool, error) {
	v, ok := f.raw(name)
	if !ok {
		return "", false, nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", true, errWrongType
	}
	return s, true, nil
}

func (f Fields) Number(name string) (float64, bool, error) {
	v, ok := f.raw(name)
	if !ok {
		return 0, false, nil
	}
	var n float64
	if err := json.Unmarshal(v, &n); err != nil {
		return 0, true, errWrongType
	}
	return n, true, nil
}

// Int acepta números JSON sin parte decimal (3 o 3.0, no 3.5).
func (f Fields) Int(name string) (int, bool, error) {
	n, ok, err := f.Number(name)
	if !ok || err != nil {
		return 0, ok, err
	}
	if n != math.Trunc(n) || n > math.MaxInt32 || n < math.MinInt32 {
		return 0, true, errWrongType
	}
	return int(n), true, nil
}

func (f Fields) Bool(name string) (bool, bool, error) {
	v, ok := f.raw(name)
	if !ok {
		return false, false, nil
	}
	var b bool
	if err := json.Unmarshal(v, &b); err != nil {
		return false, true, errWrongType
	}
	return b, true, nil
}
