package memory

import (
	"context"
	"errors"
	"sort"

	"medtracker/internal/domain/doselogs"
	"medtracker/internal/domain/medications"
)

type doseLogRepo struct {
	s *Store
}

func (r *doseLogRepo) Create(ctx context.Context, l doselogs.DoseLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if l.ID == "" {
		return errors.New("dose log id required")
	}
	if _, exists := r.s.doseLogs[l.ID]; exists {
		return errors.New("dose log already exists")
	}
	// FK: igual que en Postgres, no se aceptan registros huérfanos.
	if _, ok := r.s.medications[l.MedicationID]; !ok {
		return medications.ErrNotFound
	}

	r.s.doseLogs[l.ID] = l
	return nil
}

func (r *doseLogRepo) GetByID(ctx context.Context, id string) (doselogs.DoseLog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	l, ok := r.s.doseLogs[id]
	if !ok {
		return doselogs.DoseLog{}, doselogs.ErrNotFound
	}
	return l, nil
}

func (r *doseLogRepo) List(ctx context.Context, filter doselogs.ListFilter) ([]doselogs.DoseLog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]doselogs.DoseLog, 0)
	for _, l := range r.s.doseLogs {
		if filter.MedicationID != "" && l.MedicationID != filter.MedicationID {
			continue
		}
		if filter.From != nil && l.TakenAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !l.TakenAt.Before(*filter.To) {
			continue
		}
		out = append(out, l)
	}

	// Orden por taken_at asc
	sort.Slice(out, func(i, j int) bool {
		if out[i].TakenAt.Equal(out[j].TakenAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].TakenAt.Before(out[j].TakenAt)
	})
	return out, nil
}

func (r *doseLogRepo) Update(ctx context.Context, l doselogs.DoseLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.doseLogs[l.ID]; !exists {
		return doselogs.ErrNotFound
	}
	if _, ok := r.s.medications[l.MedicationID]; !ok {
		return medications.ErrNotFound
	}
	r.s.doseLogs[l.ID] = l
	return nil
}

func (r *doseLogRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.doseLogs[id]; !exists {
		return doselogs.ErrNotFound
	}
	delete(r.s.doseLogs, id)
	return nil
}
