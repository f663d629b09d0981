package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"medtracker/internal/domain/medications"
	"medtracker/internal/domain/notes"
)

type NotesRepo struct {
	db *sql.DB
}

func NewNotesRepo(db *sql.DB) *NotesRepo {
	return &NotesRepo{db: db}
}

func (r *NotesRepo) Create(ctx context.Context, n notes.DoctorsNote) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO doctors_notes (id, medication_id, content, created_at)
		VALUES ($1,$2,$3,$4)
	`,
		n.ID,
		n.MedicationID,
		n.Content,
		n.CreatedAt,
	)
	if isForeignKeyViolation(err) {
		return medications.ErrNotFound
	}
	return err
}

func (r *NotesRepo) GetByID(ctx context.Context, id string) (notes.DoctorsNote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return notes.DoctorsNote{}, notes.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, medication_id, content, created_at
		FROM doctors_notes
		WHERE id = $1
	`, id)

	var n notes.DoctorsNote
	if err := row.Scan(&n.ID, &n.MedicationID, &n.Content, &n.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notes.DoctorsNote{}, notes.ErrNotFound
		}
		return notes.DoctorsNote{}, err
	}
	return n, nil
}

func (r *NotesRepo) List(ctx context.Context) ([]notes.DoctorsNote, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, medication_id, content, created_at
		FROM doctors_notes
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]notes.DoctorsNote, 0)
	for rows.Next() {
		var n notes.DoctorsNote
		if err := rows.Scan(&n.ID, &n.MedicationID, &n.Content, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *NotesRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM doctors_notes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return notes.ErrNotFound
	}
	return nil
}
