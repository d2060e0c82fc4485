package service

import (
	"context"

	"github.com/safra-cheia/budget-backend/internal/projects/domain"
)

// Store is the persistence contract for projects. Each call is atomic on
// its own row; there is no cross-call transaction.
type Store interface {
	Create(ctx context.Context, ownerID string, in domain.CreateProjectInput) (*domain.Project, error)
	List(ctx context.Context, ownerID string) ([]domain.Project, error)
	Get(ctx context.Context, ownerID, publicID string) (*domain.Project, error)
	Update(ctx context.Context, ownerID, publicID string, in domain.UpdateProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, ownerID, publicID string) (bool, error)
}

// ListCache caches the per-user project list. Implementations absorb their
// own failures; a broken cache behaves like an empty one.
type ListCache interface {
	Get(ctx context.Context, ownerID string) ([]domain.Project, bool)
	Set(ctx context.Context, ownerID string, projects []domain.Project)
	Invalidate(ctx context.Context, ownerID string)
}

// ProjectService validates project commands, keeps the list cache
// coherent, and computes the portfolio rollup.
type ProjectService struct {
	store Store
	cache ListCache
}

func NewProjectService(store Store, cache ListCache) *ProjectService {
	return &ProjectService{store: store, cache: cache}
}

func (s *ProjectService) Create(ctx context.Context, ownerID string, in domain.CreateProjectInput) (*domain.Project, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	p, err := s.store.Create(ctx, ownerID, in)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, ownerID)
	return p, nil
}

func (s *ProjectService) List(ctx context.Context, ownerID string) ([]domain.Project, error) {
	if projects, ok := s.cache.Get(ctx, ownerID); ok {
		return projects, nil
	}
	projects, err := s.store.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, ownerID, projects)
	return projects, nil
}

func (s *ProjectService) Get(ctx context.Context, ownerID, publicID string) (*domain.Project, error) {
	return s.store.Get(ctx, ownerID, publicID)
}

func (s *ProjectService) Update(ctx context.Context, ownerID, publicID string, in domain.UpdateProjectInput) (*domain.Project, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if in.Empty() {
		return s.store.Get(ctx, ownerID, publicID)
	}
	p, err := s.store.Update(ctx, ownerID, publicID, in)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, ownerID)
	return p, nil
}

func (s *ProjectService) Delete(ctx context.Context, ownerID, publicID string) (bool, error) {
	ok, err := s.store.Delete(ctx, ownerID, publicID)
	if err != nil {
		return false, err
	}
	if ok {
		s.cache.Invalidate(ctx, ownerID)
	}
	return ok, nil
}

// Summary recomputes the portfolio rollup from the current rows. Derived
// values never persist beyond one request.
func (s *ProjectService) Summary(ctx context.Context, ownerID string) (domain.PortfolioSummary, error) {
	projects, err := s.List(ctx, ownerID)
	if err != nil {
		return domain.PortfolioSummary{}, err
	}
	return domain.Summarize(projects), nil
}
