package tags

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"parkspot/internal/domain/submissions"
	"parkspot/internal/infra/dbx"
)

type Store interface {
	Create(ctx context.Context, t *Tag) error
	ListForSubmission(ctx context.Context, submissionID int64) ([]Tag, error)
}

type Repository struct {
	db dbx.Querier
}

func NewRepository(q dbx.Querier) *Repository {
	return &Repository{db: q}
}

func (r *Repository) Create(ctx context.Context, t *Tag) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	const q = `
		INSERT INTO tags (submission_id, name)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, q, t.SubmissionID, t.Name).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return ErrDuplicateTag
			case "23503":
				return submissions.ErrSubmissionNotFound
			}
		}
		return fmt.Errorf("create tag: %w", err)
	}
	return nil
}

func (r *Repository) ListForSubmission(ctx context.Context, submissionID int64) ([]Tag, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	const q = `
		SELECT id, submission_id, name, created_at
		FROM tags
		WHERE submission_id = $1
		ORDER BY name ASC
	`

	rows, err := r.db.Query(ctx, q, submissionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Tag
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.SubmissionID, &t.Name, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
