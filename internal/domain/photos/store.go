package photos

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"parkspot/internal/infra/dbx"
)

type Store interface {
	Create(ctx context.Context, p *Photo) error
	GetByID(ctx context.Context, id int64) (*Photo, error)
	ListForSubmission(ctx context.Context, submissionID int64) ([]Photo, error)
	SetApproved(ctx context.Context, id int64, approved bool) error
	Delete(ctx context.Context, id int64) error
}

type Repository struct {
	db dbx.Querier
}

func NewRepository(q dbx.Querier) *Repository {
	return &Repository{db: q}
}

func (r *Repository) Create(ctx context.Context, p *Photo) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	const q = `
		INSERT INTO photos (submission_id, url, uploader_id)
		VALUES ($1, $2, $3)
		RETURNING id, is_approved, created_at
	`

	err := r.db.QueryRow(ctx, q, p.SubmissionID, p.URL, p.UploaderID).
		Scan(&p.ID, &p.IsApproved, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("create photo: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Photo, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	const q = `
		SELECT id, submission_id, url, uploader_id, is_approved, created_at
		FROM photos
		WHERE id = $1
	`

	var p Photo
	err := r.db.QueryRow(ctx, q, id).
		Scan(&p.ID, &p.SubmissionID, &p.URL, &p.UploaderID, &p.IsApproved, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPhotoNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListForSubmission returns every photo of a submission, newest first.
// Visibility is the policy evaluator's call, per row, in the handler.
func (r *Repository) ListForSubmission(ctx context.Context, submissionID int64) ([]Photo, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	const q = `
		SELECT id, submission_id, url, uploader_id, is_approved, created_at
		FROM photos
		WHERE submission_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, q, submissionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Photo
	for rows.Next() {
		var p Photo
		if err := rows.Scan(&p.ID, &p.SubmissionID, &p.URL, &p.UploaderID, &p.IsApproved, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repository) SetApproved(ctx context.Context, id int64, approved bool) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `UPDATE photos SET is_approved = $1 WHERE id = $2`, approved, id)
	if err != nil {
		return fmt.Errorf("set photo approval: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPhotoNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM photos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPhotoNotFound
	}
	return nil
}
