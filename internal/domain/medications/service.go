package medications

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"medtracker/internal/platform/validation"
	"medtracker/internal/ports/druginfo"

	"github.com/google/uuid"
)

var (
	ErrDrugInfoNotConfigured = errors.New("drug info lookup not configured")
)

type Service struct {
	repo    Repository
	history DoseHistory
	drugs   druginfo.Fetcher
	now     func() time.Time
}

// NewService: drugs puede ser nil (entonces DrugInfo devuelve ErrDrugInfoNotConfigured).
func NewService(repo Repository, history DoseHistory, drugs druginfo.Fetcher) *Service {
	return &Service{
		repo:    repo,
		history: history,
		drugs:   drugs,
		now:     time.Now,
	}
}

// Input se usa tanto para crear como para reemplazar (PUT).
type Input struct {
	Name             string
	DosageMg         float64
	PrescribedPerDay int
}

// Validate aplica las reglas de negocio de la API.
// prescribed_per_day == 0 se acepta a propósito; solo se rechazan negativos.
func (s *Service) Validate(in Input) validation.Errors {
	errs := validation.Errors{}
	if strings.TrimSpace(in.Name) == "" {
		errs.Add("name", validation.MsgBlank)
	}
	if in.DosageMg <= 0 {
		errs.Add("dosage_mg", validation.MsgPositive)
	}
	if in.PrescribedPerDay < 0 {
		errs.Add("prescribed_per_day", validation.MsgNonNegative)
	}
	return errs
}

func (s *Service) Create(ctx context.Context, in Input) (Medication, error) {
	if err := s.Validate(in).Err(); err != nil {
		return Medication{}, err
	}

	now := s.now()
	m := Medication{
		ID:               uuid.NewString(),
		Name:             strings.TrimSpace(in.Name),
		DosageMg:         in.DosageMg,
		PrescribedPerDay: in.PrescribedPerDay,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return Medication{}, err
	}
	return m, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Medication, error) {
	if _, err := uuid.Parse(strings.TrimSpace(id)); err != nil {
		return Medication{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (s *Service) List(ctx context.Context) ([]Medication, error) {
	return s.repo.List(ctx)
}

// Update reemplaza todos los campos editables (semántica PUT).
func (s *Service) Update(ctx context.Context, id string, in Input) (Medication, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Medication{}, err
	}
	if err := s.Validate(in).Err(); err != nil {
		return Medication{}, err
	}

	current.Name = strings.TrimSpace(in.Name)
	current.DosageMg = in.DosageMg
	current.PrescribedPerDay = in.PrescribedPerDay
	current.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, current); err != nil {
		return Medication{}, err
	}
	return current, nil
}

// Delete borra el medicamento y, en cascada, sus registros de dosis y notas.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(strings.TrimSpace(id)); err != nil {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, strings.TrimSpace(id))
}

// Adherence es el porcentaje histórico de dosis tomadas sobre registradas.
func (s *Service) Adherence(ctx context.Context, m Medication) (float64, error) {
	logs, err := s.history.History(ctx, m.ID)
	if err != nil {
		return 0, fmt.Errorf("load dose history: %w", err)
	}
	return m.AdherenceRate(logs), nil
}

// ExpectedDoses devuelve el medicamento junto con las dosis esperadas para days días.
func (s *Service) ExpectedDoses(ctx context.Context, id string, days int) (Medication, int, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil {
		return Medication{}, 0, err
	}
	n, err := m.ExpectedDoses(days)
	if err != nil {
		return Medication{}, 0, err
	}
	return m, n, nil
}

func (s *Service) AdherenceOverPeriod(ctx context.Context, id string, start, end time.Time) (float64, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	logs, err := s.history.History(ctx, m.ID)
	if err != nil {
		return 0, fmt.Errorf("load dose history: %w", err)
	}
	return m.AdherenceRateOverPeriod(start, end, logs)
}

// DrugInfo consulta el formulario externo usando el nombre del medicamento.
func (s *Service) DrugInfo(ctx context.Context, id string) (druginfo.Info, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil {
		return druginfo.Info{}, err
	}
	if s.drugs == nil {
		return druginfo.Info{}, ErrDrugInfoNotConfigured
	}
	return s.drugs.Fetch(ctx, m.Name)
}
