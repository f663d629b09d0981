package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"medtracker/internal/domain/medications"
)

type medicationRepo struct {
	s *Store
}

func (r *medicationRepo) Create(ctx context.Context, m medications.Medication) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(m.ID) == "" {
		return errors.New("medication id required")
	}
	if _, exists := r.s.medications[m.ID]; exists {
		return errors.New("medication already exists")
	}
	r.s.medications[m.ID] = m
	return nil
}

func (r *medicationRepo) GetByID(ctx context.Context, id string) (medications.Medication, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.medications[id]
	if !ok {
		return medications.Medication{}, medications.ErrNotFound
	}
	return m, nil
}

func (r *medicationRepo) List(ctx context.Context) ([]medications.Medication, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]medications.Medication, 0, len(r.s.medications))
	for _, m := range r.s.medications {
		out = append(out, m)
	}

	// Orden estable por created_at asc (desempate por id)
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *medicationRepo) Update(ctx context.Context, m medications.Medication) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.medications[m.ID]; !exists {
		return medications.ErrNotFound
	}
	r.s.medications[m.ID] = m
	return nil
}

// Delete borra en cascada registros de dosis y notas del medicamento.
func (r *medicationRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.medications[id]; !exists {
		return medications.ErrNotFound
	}
	delete(r.s.medications, id)

	for logID, l := range r.s.doseLogs {
		if l.MedicationID == id {
			delete(r.s.doseLogs, logID)
		}
	}
	for noteID, n := range r.s.notes {
		if n.MedicationID == id {
			delete(r.s.notes, noteID)
		}
	}
	return nil
}
