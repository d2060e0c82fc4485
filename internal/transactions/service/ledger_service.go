package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/safra-cheia/budget-backend/internal/money"
	projdomain "github.com/safra-cheia/budget-backend/internal/projects/domain"
	"github.com/safra-cheia/budget-backend/internal/transactions/domain"
)

// Store is the persistence contract for transactions. Delete returns the
// owning project's public id so spent can be recomputed afterwards.
type Store interface {
	Create(ctx context.Context, ownerID, projectID string, in domain.AddTransactionInput) (*domain.Transaction, error)
	ListForProject(ctx context.Context, ownerID, projectID string) ([]domain.Transaction, error)
	Update(ctx context.Context, ownerID, publicID string, in domain.UpdateTransactionInput) (*domain.Transaction, error)
	Delete(ctx context.Context, ownerID, publicID string) (projectID string, err error)
	SumForProject(ctx context.Context, projectID string) (money.Cents, error)
}

// SpentWriter stores a recomputed spent total on the owning project.
type SpentWriter interface {
	UpdateSpent(ctx context.Context, projectID string, spent money.Cents) error
}

// CacheInvalidator drops the owner's cached project list; spent changes on
// every ledger mutation, so the cached rows are stale the moment one lands.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, ownerID string)
}

// LedgerService owns a project's transaction history and the derived spent
// total. It is the only writer of spent: after every mutation it recomputes
// the sum from the stored rows and writes it back.
//
// The transaction write and the spent write are two sequential calls, not
// one storage transaction. A crash between them leaves spent stale until
// the next successful mutation recomputes it; that window is a documented
// limitation, and the nightly audit reports (never repairs) it.
type LedgerService struct {
	store Store
	spent SpentWriter
	cache CacheInvalidator
	log   *slog.Logger
	now   func() time.Time
}

func NewLedgerService(store Store, spent SpentWriter, cache CacheInvalidator, log *slog.Logger) *LedgerService {
	return &LedgerService{
		store: store,
		spent: spent,
		cache: cache,
		log:   log,
		now:   time.Now,
	}
}

// Add records a transaction against the project. A blank date defaults to
// today, matching the entry form's prefill.
func (s *LedgerService) Add(ctx context.Context, ownerID, projectID string, in domain.AddTransactionInput) (*domain.Transaction, error) {
	if in.TransactionDate == "" {
		in.TransactionDate = s.now().Format(projdomain.DateLayout)
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	t, err := s.store.Create(ctx, ownerID, projectID, in)
	if err != nil {
		return nil, err
	}
	if err := s.recompute(ctx, ownerID, projectID); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *LedgerService) Update(ctx context.Context, ownerID, publicID string, in domain.UpdateTransactionInput) (*domain.Transaction, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	t, err := s.store.Update(ctx, ownerID, publicID, in)
	if err != nil {
		return nil, err
	}
	if err := s.recompute(ctx, ownerID, t.ProjectID); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *LedgerService) Remove(ctx context.Context, ownerID, publicID string) error {
	projectID, err := s.store.Delete(ctx, ownerID, publicID)
	if err != nil {
		return err
	}
	return s.recompute(ctx, ownerID, projectID)
}

func (s *LedgerService) List(ctx context.Context, ownerID, projectID string) ([]domain.Transaction, error) {
	return s.store.ListForProject(ctx, ownerID, projectID)
}

// RecomputeSpent re-derives a project's spent total from its current rows
// and stores it. Idempotent: with no intervening mutation a second call
// writes the same value.
func (s *LedgerService) RecomputeSpent(ctx context.Context, projectID string) (money.Cents, error) {
	sum, err := s.store.SumForProject(ctx, projectID)
	if err != nil {
		return 0, err
	}
	if err := s.spent.UpdateSpent(ctx, projectID, sum); err != nil {
		return 0, err
	}
	return sum, nil
}

// recompute must observe the just-written row, so it runs on the same
// context, strictly after the ledger write returns.
func (s *LedgerService) recompute(ctx context.Context, ownerID, projectID string) error {
	sum, err := s.RecomputeSpent(ctx, projectID)
	if err != nil {
		return fmt.Errorf("recompute spent for %s: %w", projectID, err)
	}
	s.log.Debug("spent recomputed", "project_id", projectID, "spent_cents", int64(sum))
	s.cache.Invalidate(ctx, ownerID)
	return nil
}
