package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/safra-cheia/budget-backend/internal/apperr"
	"github.com/safra-cheia/budget-backend/internal/money"
	"github.com/safra-cheia/budget-backend/internal/projects/domain"
)

const projectColumns = `public_id, name, coalesce(url, ''), investment_goal_cents,
initial_budget_cents, spent_cents, progress, deadline, created_at, updated_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(ctx context.Context, ownerID string, in domain.CreateProjectInput) (*domain.Project, error) {
	for i := 0; i < 5; i++ {
		publicID, err := domain.NewPublicID("proj")
		if err != nil {
			return nil, err
		}

		const q = `
insert into projects (public_id, owner_id, name, url, investment_goal_cents,
                      initial_budget_cents, spent_cents, progress, deadline)
values ($1, $2::uuid, $3, nullif($4, ''), $5, $6, $7, $8, $9::date)
returning ` + projectColumns + `;`

		p, err := scanProject(r.db.QueryRow(ctx, q, publicID, ownerID, in.Name, in.URL,
			in.InvestmentGoal, in.InitialBudget, in.Spent, in.Progress, in.Deadline))
		if err == nil {
			return p, nil
		}

		// unique violation on public_id → retry
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			continue
		}
		return nil, apperr.Storage("create project", err)
	}

	return nil, apperr.Storage("create project", fmt.Errorf("failed to generate unique project id"))
}

// List returns all of the user's projects, newest first.
func (r *Repo) List(ctx context.Context, ownerID string) ([]domain.Project, error) {
	const q = `
select ` + projectColumns + `
from projects
where owner_id = $1::uuid
order by created_at desc;`

	rows, err := r.db.Query(ctx, q, ownerID)
	if err != nil {
		return nil, apperr.Storage("list projects", err)
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, apperr.Storage("list projects", err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage("list projects", err)
	}
	return out, nil
}

func (r *Repo) Get(ctx context.Context, ownerID, publicID string) (*domain.Project, error) {
	const q = `
select ` + projectColumns + `
from projects
where owner_id = $1::uuid and public_id = $2;`

	p, err := scanProject(r.db.QueryRow(ctx, q, ownerID, publicID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, apperr.Storage("get project", err)
	}
	return p, nil
}

// Update applies a partial update; nil fields keep their current value.
// Spent is not touched here: UpdateSpent is the ledger's dedicated path.
func (r *Repo) Update(ctx context.Context, ownerID, publicID string, in domain.UpdateProjectInput) (*domain.Project, error) {
	const q = `
update projects
set name                  = coalesce($3, name),
    url                   = coalesce($4, url),
    investment_goal_cents = coalesce($5, investment_goal_cents),
    initial_budget_cents  = coalesce($6, initial_budget_cents),
    progress              = coalesce($7, progress),
    deadline              = coalesce($8::date, deadline),
    updated_at            = now()
where owner_id = $1::uuid and public_id = $2
returning ` + projectColumns + `;`

	p, err := scanProject(r.db.QueryRow(ctx, q, ownerID, publicID,
		in.Name, in.URL, in.InvestmentGoal, in.InitialBudget, in.Progress, in.Deadline))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, apperr.Storage("update project", err)
	}
	return p, nil
}

// UpdateSpent stores the recomputed spent total for a project.
func (r *Repo) UpdateSpent(ctx context.Context, publicID string, spent money.Cents) error {
	const q = `
update projects
set spent_cents = $2, updated_at = now()
where public_id = $1;`

	ct, err := r.db.Exec(ctx, q, publicID, spent)
	if err != nil {
		return apperr.Storage("update spent", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a project. Its transactions go with it via the schema's
// ON DELETE CASCADE; the core never deletes them row by row.
func (r *Repo) Delete(ctx context.Context, ownerID, publicID string) (bool, error) {
	const q = `
delete from projects
where owner_id = $1::uuid and public_id = $2;`

	ct, err := r.db.Exec(ctx, q, ownerID, publicID)
	if err != nil {
		return false, apperr.Storage("delete project", err)
	}
	return ct.RowsAffected() > 0, nil
}

// SpentDrift is a project whose stored spent total disagrees with the sum
// of its transactions. Reported by the nightly audit, never repaired by it.
type SpentDrift struct {
	PublicID string
	Stored   money.Cents
	Ledger   money.Cents
}

func (r *Repo) ListSpentDrift(ctx context.Context) ([]SpentDrift, error) {
	const q = `
select p.public_id, p.spent_cents, coalesce(sum(t.amount_cents), 0)
from projects p
left join transactions t on t.project_id = p.id
group by p.id
having p.spent_cents <> coalesce(sum(t.amount_cents), 0);`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, apperr.Storage("list spent drift", err)
	}
	defer rows.Close()

	var out []SpentDrift
	for rows.Next() {
		var d SpentDrift
		if err := rows.Scan(&d.PublicID, &d.Stored, &d.Ledger); err != nil {
			return nil, apperr.Storage("list spent drift", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func scanProject(row pgx.Row) (*domain.Project, error) {
	var p domain.Project
	var deadline time.Time
	err := row.Scan(&p.PublicID, &p.Name, &p.URL, &p.InvestmentGoal,
		&p.InitialBudget, &p.Spent, &p.Progress, &deadline, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Deadline = deadline.Format(domain.DateLayout)
	return &p, nil
}
