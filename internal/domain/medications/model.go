package medications

import (
	"fmt"
	"strconv"
	"time"

	"medtracker/internal/domain/adherence"
)

// Medication es un medicamento prescripto que el paciente registra.
type Medication struct {
	ID string

	Name     string
	DosageMg float64

	// PrescribedPerDay puede ser 0 (la API lo acepta), pero entonces
	// los cálculos de dosis esperadas fallan con adherence.ErrInvalidArgument.
	PrescribedPerDay int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// String => "Aspirin (100mg)".
func (m Medication) String() string {
	return fmt.Sprintf("%s (%smg)", m.Name, strconv.FormatFloat(m.DosageMg, 'f', -1, 64))
}

func (m Medication) ExpectedDoses(days int) (int, error) {
	return adherence.ExpectedDoses(m.PrescribedPerDay, days)
}

func (m Medication) AdherenceRate(logs []adherence.Entry) float64 {
	return adherence.Rate(logs)
}

func (m Medication) AdherenceRateOverPeriod(start, end time.Time, logs []adherence.Entry) (float64, error) {
	return adherence.RateOverPeriod(m.PrescribedPerDay, start, end, logs)
}
