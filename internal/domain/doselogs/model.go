package doselogs

import (
	"fmt"
	"time"

	"medtracker/internal/domain/adherence"
)

// DoseLog registra una toma (o una omisión) de un medicamento.
type DoseLog struct {
	ID           string
	MedicationID string

	TakenAt  time.Time
	WasTaken bool
}

func (l DoseLog) Status() string {
	if l.WasTaken {
		return "Taken"
	}
	return "Missed"
}

// String => "<medication_id> at 2025-12-01T08:00:00Z - Taken".
func (l DoseLog) String() string {
	return fmt.Sprintf("%s at %s - %s", l.MedicationID, l.TakenAt.UTC().Format(time.RFC3339), l.Status())
}

func (l DoseLog) Entry() adherence.Entry {
	return adherence.Entry{TakenAt: l.TakenAt, WasTaken: l.WasTaken}
}
