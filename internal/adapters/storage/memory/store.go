package memory

import (
	"sync"

	"medtracker/internal/domain/doselogs"
	"medtracker/internal/domain/medications"
	"medtracker/internal/domain/notes"
)

// Store guarda las tres entidades bajo un mismo lock para que el borrado
// en cascada de un medicamento sea atómico (igual que ON DELETE CASCADE en Postgres).
type Store struct {
	mu sync.RWMutex

	medications map[string]medications.Medication
	doseLogs    map[string]doselogs.DoseLog
	notes       map[string]notes.DoctorsNote
}

func NewStore() *Store {
	return &Store{
		medications: make(map[string]medications.Medication),
		doseLogs:    make(map[string]doselogs.DoseLog),
		notes:       make(map[string]notes.DoctorsNote),
	}
}

func (s *Store) Medications() medications.Repository {
	return &medicationRepo{s: s}
}

func (s *Store) DoseLogs() doselogs.Repository {
	return &doseLogRepo{s: s}
}

func (s *Store) Notes() notes.Repository {
	return &noteRepo{s: s}
}
