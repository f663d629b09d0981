package notes

import (
	"context"
	"errors"

	"medtracker/internal/domain/medications"
)

var (
	ErrNotFound = errors.New("doctors note not found")
)

type Repository interface {
	Create(ctx context.Context, n DoctorsNote) error
	GetByID(ctx context.Context, id string) (DoctorsNote, error)
	List(ctx context.Context) ([]DoctorsNote, error)
	Delete(ctx context.Context, id string) error
}

type MedicationLookup interface {
	GetByID(ctx context.Context, id string) (medications.Medication, error)
}
