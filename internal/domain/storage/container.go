package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"parkspot/internal/domain/comments"
	"parkspot/internal/domain/photos"
	"parkspot/internal/domain/pushtokens"
	"parkspot/internal/domain/submissions"
	"parkspot/internal/domain/tags"
	"parkspot/internal/domain/votes"
)

type Container struct {
	pool        *pgxpool.Pool // kept so WithModerationTx can open transactions
	Submissions submissions.Store
	Votes       votes.Store
	Photos      photos.Store
	Comments    comments.Store
	Tags        tags.Store
	PushTokens  pushtokens.Store
}

func NewContainer(db *pgxpool.Pool) *Container {
	return &Container{
		pool:        db,
		Submissions: submissions.NewRepository(db),
		Votes:       votes.NewRepository(db),
		Photos:      photos.NewRepository(db),
		Comments:    comments.NewRepository(db),
		Tags:        tags.NewRepository(db),
		PushTokens:  pushtokens.NewRepository(db),
	}
}

// ModerationTx is a temporary, tx-scoped pair of repos for the vote unit of
// work: ledger insert, tally recompute and status write all commit or roll
// back together.
type ModerationTx struct {
	Submissions submissions.Store
	Votes       votes.Store
}

// WithModerationTx runs fn inside one transaction. Callers lock the
// submission row first (GetForUpdate) so concurrent votes on the same
// submission serialize; the unique index on votes settles same-voter races.
func (c *Container) WithModerationTx(ctx context.Context, fn func(m *ModerationTx) error) error {
	if c.pool == nil {
		return fmt.Errorf("storage container pool is nil")
	}

	tx, err := c.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback(ctx) // safe even if already committed
	}()

	m := &ModerationTx{
		Submissions: submissions.NewRepository(tx),
		Votes:       votes.NewRepository(tx),
	}

	if err := fn(m); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
