package comments

import (
	"context"
	"fmt"

	"parkspot/internal/infra/dbx"
)

type Store interface {
	Create(ctx context.Context, c *Comment) error
	ListForSubmission(ctx context.Context, submissionID int64) ([]Comment, error)
	SetReported(ctx context.Context, id int64, reported bool) error
	Delete(ctx context.Context, id int64) error
}

type Repository struct {
	db dbx.Querier
}

func NewRepository(q dbx.Querier) *Repository {
	return &Repository{db: q}
}

func (r *Repository) Create(ctx context.Context, c *Comment) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	const q = `
		INSERT INTO comments (submission_id, author_id, body)
		VALUES ($1, $2, $3)
		RETURNING id, is_reported, created_at
	`

	err := r.db.QueryRow(ctx, q, c.SubmissionID, c.AuthorID, c.Body).
		Scan(&c.ID, &c.IsReported, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

func (r *Repository) ListForSubmission(ctx context.Context, submissionID int64) ([]Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	const q = `
		SELECT id, submission_id, author_id, body, is_reported, created_at
		FROM comments
		WHERE submission_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(ctx, q, submissionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.SubmissionID, &c.AuthorID, &c.Body, &c.IsReported, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repository) SetReported(ctx context.Context, id int64, reported bool) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `UPDATE comments SET is_reported = $1 WHERE id = $2`, reported, id)
	if err != nil {
		return fmt.Errorf("set comment reported: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCommentNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCommentNotFound
	}
	return nil
}
