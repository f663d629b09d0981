package doselogs

import (
	"context"
	"errors"
	"time"

	"medtracker/internal/domain/medications"
)

var (
	ErrNotFound = errors.New("dose log not found")
)

type Repository interface {
	Create(ctx context.Context, l DoseLog) error
	GetByID(ctx context.Context, id string) (DoseLog, error)
	List(ctx context.Context, filter ListFilter) ([]DoseLog, error)
	Update(ctx context.Context, l DoseLog) error
	Delete(ctx context.Context, id string) error
}

// ListFilter: campos vacíos = sin filtro. From/To son instantes (To exclusivo).
type ListFilter struct {
	MedicationID string
	From         *time.Time
	To           *time.Time
}

// MedicationLookup es lo único que doselogs necesita del módulo de medicamentos.
// medications.Repository lo cumple.
type MedicationLookup interface {
	GetByID(ctx context.Context, id string) (medications.Medication, error)
}
