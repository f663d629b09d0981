package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"medtracker/internal/domain/doselogs"
	"medtracker/internal/domain/medications"
)

type DoseLogsRepo struct {
	db *sql.DB
}

func NewDoseLogsRepo(db *sql.DB) *DoseLogsRepo {
	return &DoseLogsRepo{db: db}
}

func (r *DoseLogsRepo) Create(ctx context.Context, l doselogs.DoseLog) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO dose_logs (id, medication_id, taken_at, was_taken)
		VALUES ($1,$2,$3,$4)
	`,
		l.ID,
		l.MedicationID,
		l.TakenAt,
		l.WasTaken,
	)
	if isForeignKeyViolation(err) {
		return medications.ErrNotFound
	}
	return err
}

func (r *DoseLogsRepo) GetByID(ctx context.Context, id string) (doselogs.DoseLog, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return doselogs.DoseLog{}, doselogs.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, medication_id, taken_at, was_taken
		FROM dose_logs
		WHERE id = $1
	`, id)

	var l doselogs.DoseLog
	if err := row.Scan(&l.ID, &l.MedicationID, &l.TakenAt, &l.WasTaken); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return doselogs.DoseLog{}, doselogs.ErrNotFound
		}
		return doselogs.DoseLog{}, err
	}
	l.TakenAt = l.TakenAt.UTC()
	return l, nil
}

func (r *DoseLogsRepo) List(ctx context.Context, filter doselogs.ListFilter) ([]doselogs.DoseLog, error) {
	sb := strings.Builder{}
	sb.WriteString(`
		SELECT id, medication_id, taken_at, was_taken
		FROM dose_logs
		WHERE TRUE
	`)

	args := []any{}
	argN := 1

	if strings.TrimSpace(filter.MedicationID) != "" {
		sb.WriteString(fmt.Sprintf(" AND medication_id = $%d", argN))
		args = append(args, filter.MedicationID)
		argN++
	}
	if filter.From != nil {
		sb.WriteString(fmt.Sprintf(" AND taken_at >= $%d", argN))
		args = append(args, *filter.From)
		argN++
	}
	if filter.To != nil {
		sb.WriteString(fmt.Sprintf(" AND taken_at < $%d", argN))
		args = append(args, *filter.To)
		argN++
	}

	sb.WriteString(" ORDER BY taken_at ASC, id ASC")

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]doselogs.DoseLog, 0)
	for rows.Next() {
		var l doselogs.DoseLog
		if err := rows.Scan(&l.ID, &l.MedicationID, &l.TakenAt, &l.WasTaken); err != nil {
			return nil, err
		}
		l.TakenAt = l.TakenAt.UTC()
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *DoseLogsRepo) Update(ctx context.Context, l doselogs.DoseLog) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE dose_logs
		SET
			medication_id = $2,
			taken_at = $3,
			was_taken = $4
		WHERE id = $1
	`,
		l.ID,
		l.MedicationID,
		l.TakenAt,
		l.WasTaken,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return medications.ErrNotFound
		}
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return doselogs.ErrNotFound
	}
	return nil
}

func (r *DoseLogsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM dose_logs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return doselogs.ErrNotFound
	}
	return nil
}
