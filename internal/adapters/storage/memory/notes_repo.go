package memory

import (
	"context"
	"errors"
	"sort"

	"medtracker/internal/domain/medications"
	"medtracker/internal/domain/notes"
)

type noteRepo struct {
	s *Store
}

func (r *noteRepo) Create(ctx context.Context, n notes.DoctorsNote) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if n.ID == "" {
		return errors.New("note id required")
	}
	if _, exists := r.s.notes[n.ID]; exists {
		return errors.New("note already exists")
	}
	if _, ok := r.s.medications[n.MedicationID]; !ok {
		return medications.ErrNotFound
	}

	r.s.notes[n.ID] = n
	return nil
}

func (r *noteRepo) GetByID(ctx context.Context, id string) (notes.DoctorsNote, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n, ok := r.s.notes[id]
	if !ok {
		return notes.DoctorsNote{}, notes.ErrNotFound
	}
	return n, nil
}

func (r *noteRepo) List(ctx context.Context) ([]notes.DoctorsNote, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]notes.DoctorsNote, 0, len(r.s.notes))
	for _, n := range r.s.notes {
		out = append(out, n)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *noteRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.notes[id]; !exists {
		return notes.ErrNotFound
	}
	delete(r.s.notes, id)
	return nil
}
