package submissions

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"parkspot/internal/infra/dbx"
	"parkspot/internal/params"
)

type Store interface {
	Create(ctx context.Context, in *CreateSubmissionInput) (*Submission, error)
	GetByID(ctx context.Context, id int64) (*Submission, error)
	GetForUpdate(ctx context.Context, id int64) (*Submission, error)
	SetTally(ctx context.Context, id int64, upvotes, downvotes int, status Status) error
	List(ctx context.Context, f Filter, p params.Pagination) ([]Submission, int, error)
	Delete(ctx context.Context, id int64) error
}

type Repository struct {
	db dbx.Querier
}

func NewRepository(q dbx.Querier) *Repository {
	return &Repository{db: q}
}

const submissionColumns = `
	id, owner_id, name, description, latitude, longitude, address,
	status, upvotes, downvotes, created_at, updated_at`

func scanSubmission(row pgx.Row, s *Submission) error {
	return row.Scan(
		&s.ID,
		&s.OwnerID,
		&s.Name,
		&s.Description,
		&s.Latitude,
		&s.Longitude,
		&s.Address,
		&s.Status,
		&s.Upvotes,
		&s.Downvotes,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
}

func (r *Repository) Create(ctx context.Context, in *CreateSubmissionInput) (*Submission, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	const q = `
		INSERT INTO submissions (owner_id, name, description, latitude, longitude, address)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, status, upvotes, downvotes, created_at, updated_at
	`

	s := &Submission{
		OwnerID:     in.OwnerID,
		Name:        in.Name,
		Description: in.Description,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Address:     in.Address,
	}

	err := r.db.QueryRow(ctx, q,
		in.OwnerID,
		in.Name,
		in.Description,
		in.Latitude,
		in.Longitude,
		in.Address,
	).Scan(&s.ID, &s.Status, &s.Upvotes, &s.Downvotes, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create submission: %w", err)
	}

	return s, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Submission, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	q := `SELECT` + submissionColumns + ` FROM submissions WHERE id = $1`

	var s Submission
	if err := scanSubmission(r.db.QueryRow(ctx, q, id), &s); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	return &s, nil
}

// GetForUpdate locks the submission row for the rest of the transaction.
// The moderation unit of work takes this lock first so concurrent votes on
// the same submission serialize instead of racing on the tallies.
func (r *Repository) GetForUpdate(ctx context.Context, id int64) (*Submission, error) {
	q := `SELECT` + submissionColumns + ` FROM submissions WHERE id = $1 FOR UPDATE`

	var s Submission
	if err := scanSubmission(r.db.QueryRow(ctx, q, id), &s); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	return &s, nil
}

// SetTally writes the recomputed tallies and the status they imply in a
// single UPDATE, so a reader can never observe one without the other.
func (r *Repository) SetTally(ctx context.Context, id int64, upvotes, downvotes int, status Status) error {
	const q = `
		UPDATE submissions
		SET upvotes = $1, downvotes = $2, status = $3, updated_at = NOW()
		WHERE id = $4
	`

	tag, err := r.db.Exec(ctx, q, upvotes, downvotes, status, id)
	if err != nil {
		return fmt.Errorf("set tally: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSubmissionNotFound
	}
	return nil
}

// List returns a page of submissions, newest first, plus the total count.
// It does not apply visibility rules; every returned row still has to pass
// the policy evaluator for the caller.
func (r *Repository) List(ctx context.Context, f Filter, p params.Pagination) ([]Submission, int, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	q := `SELECT` + submissionColumns + `, COUNT(*) OVER() AS total
		FROM submissions`
	args := []any{}
	if f.Status != nil {
		q += ` WHERE status = $1`
		args = append(args, *f.Status)
	}
	q += fmt.Sprintf(` ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, p.Limit, p.Offset)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var (
		out   []Submission
		total int
	)
	for rows.Next() {
		var s Submission
		if err := rows.Scan(
			&s.ID,
			&s.OwnerID,
			&s.Name,
			&s.Description,
			&s.Latitude,
			&s.Longitude,
			&s.Address,
			&s.Status,
			&s.Upvotes,
			&s.Downvotes,
			&s.CreatedAt,
			&s.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, s)
	}
	return out, total, rows.Err()
}

// Delete removes a submission; votes, photos, comments and tags follow via
// the foreign keys.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM submissions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete submission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSubmissionNotFound
	}
	return nil
}
