package notes

import "time"

// DoctorsNote es una nota del médico sobre un medicamento.
// Solo se crea y se borra; no se edita.
type DoctorsNote struct {
	ID           string
	MedicationID string

	Content string

	// Lo fija el servidor al crear.
	CreatedAt time.Time
}
