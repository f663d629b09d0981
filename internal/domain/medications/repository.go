package medications

import (
	"context"
	"errors"

	"medtracker/internal/domain/adherence"
)

var (
	ErrNotFound = errors.New("medication not found")
)

// Repository: Delete debe borrar en cascada los registros de dosis y las notas.
type Repository interface {
	Create(ctx context.Context, m Medication) error
	GetByID(ctx context.Context, id string) (Medication, error)
	List(ctx context.Context) ([]Medication, error)
	Update(ctx context.Context, m Medication) error
	Delete(ctx context.Context, id string) error
}

// DoseHistory expone el historial de tomas de un medicamento.
// Lo implementa doselogs.Service; se declara acá para no importar doselogs (evita ciclo).
type DoseHistory interface {
	History(ctx context.Context, medicationID string) ([]adherence.Entry, error)
}
