package doselogs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"medtracker/internal/domain/adherence"
	"medtracker/internal/domain/medications"
	"medtracker/internal/platform/validation"

	"github.com/google/uuid"
)

type Service struct {
	repo        Repository
	medications MedicationLookup
}

func NewService(repo Repository, meds MedicationLookup) *Service {
	return &Service{
		repo:        repo,
		medications: meds,
	}
}

// Input se usa para crear y para reemplazar (PUT). TakenAt nil => faltante
// (0001-01-01T00:00:00Z es un valor válido). WasTaken nil => true.
type Input struct {
	MedicationID string
	TakenAt      *time.Time
	WasTaken     *bool
}

// Validate devuelve errores por campo; el error aparte es solo para fallas de storage.
func (s *Service) Validate(ctx context.Context, in Input) (validation.Errors, error) {
	errs := validation.Errors{}

	medID := strings.TrimSpace(in.MedicationID)
	switch {
	case medID == "":
		errs.Add("medication", validation.MsgRequired)
	default:
		ok, err := s.medicationExists(ctx, medID)
		if err != nil {
			return nil, err
		}
		if !ok {
			errs.Add("medication", validation.MsgInvalidRef)
		}
	}

	if in.TakenAt == nil {
		errs.Add("taken_at", validation.MsgRequired)
	}

	return errs, nil
}

func (s *Service) Create(ctx context.Context, in Input) (DoseLog, error) {
	errs, err := s.Validate(ctx, in)
	if err != nil {
		return DoseLog{}, err
	}
	if err := errs.Err(); err != nil {
		return DoseLog{}, err
	}

	l := DoseLog{
		ID:           uuid.NewString(),
		MedicationID: strings.TrimSpace(in.MedicationID),
		TakenAt:      in.TakenAt.UTC(),
		WasTaken:     wasTaken(in.WasTaken),
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return DoseLog{}, err
	}
	return l, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (DoseLog, error) {
	id = strings.TrimSpace(id)
	if _, err := uuid.Parse(id); err != nil {
		return DoseLog{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]DoseLog, error) {
	return s.repo.List(ctx, ListFilter{})
}

// Update reemplaza el registro completo (semántica PUT).
func (s *Service) Update(ctx context.Context, id string, in Input) (DoseLog, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return DoseLog{}, err
	}

	errs, err := s.Validate(ctx, in)
	if err != nil {
		return DoseLog{}, err
	}
	if err := errs.Err(); err != nil {
		return DoseLog{}, err
	}

	current.MedicationID = strings.TrimSpace(in.MedicationID)
	current.TakenAt = in.TakenAt.UTC()
	current.WasTaken = wasTaken(in.WasTaken)

	if err := s.repo.Update(ctx, current); err != nil {
		return DoseLog{}, err
	}
	return current, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

// FilterByDate devuelve los registros cuyo taken_at cae entre start y end (días UTC, inclusivo).
func (s *Service) FilterByDate(ctx context.Context, start, end time.Time) ([]DoseLog, error) {
	from := startOfDay(start)
	to := startOfDay(end)
	if to.Before(from) {
		errs := validation.Errors{}
		errs.Add("end", "End date must be on or after start date.")
		return nil, errs
	}
	until := to.AddDate(0, 0, 1)

	return s.repo.List(ctx, ListFilter{From: &from, To: &until})
}

// History implementa medications.DoseHistory.
func (s *Service) History(ctx context.Context, medicationID string) ([]adherence.Entry, error) {
	logs, err := s.repo.List(ctx, ListFilter{MedicationID: medicationID})
	if err != nil {
		return nil, err
	}
	out := make([]adherence.Entry, 0, len(logs))
	for _, l := range logs {
		out = append(out, l.Entry())
	}
	return out, nil
}

func (s *Service) medicationExists(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}
	_, err := s.medications.GetByID(ctx, id)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, medications.ErrNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("lookup medication: %w", err)
	}
}

func wasTaken(v *bool) bool {
	if v == nil {
		return true
	}
	return *v
}

func startOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
