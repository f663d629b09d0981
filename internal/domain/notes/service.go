package notes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"medtracker/internal/domain/medications"
	"medtracker/internal/platform/validation"

	"github.com/google/uuid"
)

type Service struct {
	repo        Repository
	medications MedicationLookup
	now         func() time.Time
}

func NewService(repo Repository, meds MedicationLookup) *Service {
	return &Service{
		repo:        repo,
		medications: meds,
		now:         time.Now,
	}
}

type CreateInput struct {
	MedicationID string
	Content      string
}

func (s *Service) Validate(ctx context.Context, in CreateInput) (validation.Errors, error) {
	errs := validation.Errors{}

	medID := strings.TrimSpace(in.MedicationID)
	if medID == "" {
		errs.Add("medication", validation.MsgRequired)
	} else if _, err := uuid.Parse(medID); err != nil {
		errs.Add("medication", validation.MsgInvalidRef)
	} else if _, err := s.medications.GetByID(ctx, medID); err != nil {
		if !errors.Is(err, medications.ErrNotFound) {
			return nil, fmt.Errorf("lookup medication: %w", err)
		}
		errs.Add("medication", validation.MsgInvalidRef)
	}

	if strings.TrimSpace(in.Content) == "" {
		errs.Add("content", validation.MsgBlank)
	}

	return errs, nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (DoctorsNote, error) {
	errs, err := s.Validate(ctx, in)
	if err != nil {
		return DoctorsNote{}, err
	}
	if err := errs.Err(); err != nil {
		return DoctorsNote{}, err
	}

	n := DoctorsNote{
		ID:           uuid.NewString(),
		MedicationID: strings.TrimSpace(in.MedicationID),
		Content:      strings.TrimSpace(in.Content),
		CreatedAt:    s.now().UTC(),
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return DoctorsNote{}, err
	}
	return n, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (DoctorsNote, error) {
	id = strings.TrimSpace(id)
	if _, err := uuid.Parse(id); err != nil {
		return DoctorsNote{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]DoctorsNote, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
