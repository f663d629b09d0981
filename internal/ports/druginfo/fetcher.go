package druginfo

import (
	"context"
	"errors"
)

var (
	// ErrInvalidArgument: nombre vacío, no se llega a hacer la llamada.
	ErrInvalidArgument = errors.New("drug name is required")
	// ErrLookup: status != 200, resultados vacíos o respuesta ilegible.
	ErrLookup = errors.New("drug info lookup failed")
)

// Info es la ficha normalizada de un medicamento según el formulario externo.
type Info struct {
	Name         string   `json:"name"`
	Manufacturer string   `json:"manufacturer"`
	Warnings     []string `json:"warnings"`
	Purpose      []string `json:"purpose"`
}

// Fetcher consulta información de un medicamento por nombre.
// Es sincrónico: un intento, sin reintentos.
type Fetcher interface {
	Fetch(ctx context.Context, drugName string) (Info, error)
}
