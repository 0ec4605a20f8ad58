package votes

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"parkspot/internal/domain/submissions"
	"parkspot/internal/infra/dbx"
)

type Store interface {
	Cast(ctx context.Context, v *Vote) error
	TallyFor(ctx context.Context, submissionID int64) (Tally, error)
	GetForVoter(ctx context.Context, submissionID, voterID int64) (*Vote, error)
	ListByVoter(ctx context.Context, voterID int64) ([]Vote, error)
}

type Repository struct {
	db dbx.Querier
}

func NewRepository(q dbx.Querier) *Repository {
	return &Repository{db: q}
}

// Cast appends one vote to the ledger. The unique index on
// (submission_id, voter_id) makes the existence check and the insert one
// indivisible operation: of two racing duplicates exactly one lands, the
// other gets ErrDuplicateVote.
func (r *Repository) Cast(ctx context.Context, v *Vote) error {
	const q = `
		INSERT INTO votes (submission_id, voter_id, is_upvote)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, q, v.SubmissionID, v.VoterID, v.IsUpvote).
		Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return ErrDuplicateVote
		case isForeignKeyViolation(err):
			return submissions.ErrSubmissionNotFound
		}
		return fmt.Errorf("cast vote: %w", err)
	}
	return nil
}

// TallyFor recomputes both counts from the ledger. Run on the same
// transaction as Cast so the counts a caller observes can never lag an
// accepted vote.
func (r *Repository) TallyFor(ctx context.Context, submissionID int64) (Tally, error) {
	const q = `
		SELECT
			COUNT(*) FILTER (WHERE is_upvote),
			COUNT(*) FILTER (WHERE NOT is_upvote)
		FROM votes
		WHERE submission_id = $1
	`

	var t Tally
	if err := r.db.QueryRow(ctx, q, submissionID).Scan(&t.Upvotes, &t.Downvotes); err != nil {
		return Tally{}, fmt.Errorf("tally votes: %w", err)
	}
	return t, nil
}

func (r *Repository) GetForVoter(ctx context.Context, submissionID, voterID int64) (*Vote, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	const q = `
		SELECT id, submission_id, voter_id, is_upvote, created_at
		FROM votes
		WHERE submission_id = $1 AND voter_id = $2
	`

	var v Vote
	err := r.db.QueryRow(ctx, q, submissionID, voterID).
		Scan(&v.ID, &v.SubmissionID, &v.VoterID, &v.IsUpvote, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVoteNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *Repository) ListByVoter(ctx context.Context, voterID int64) ([]Vote, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	const q = `
		SELECT id, submission_id, voter_id, is_upvote, created_at
		FROM votes
		WHERE voter_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, q, voterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Vote
	for rows.Next() {
		var v Vote
		if err := rows.Scan(&v.ID, &v.SubmissionID, &v.VoterID, &v.IsUpvote, &v.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
