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
	projdomain "github.com/safra-cheia/budget-backend/internal/projects/domain"
	"github.com/safra-cheia/budget-backend/internal/transactions/domain"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// Create inserts a transaction under the given project. The project lookup
// and the insert share one statement so a foreign project id simply yields
// no row.
func (r *Repo) Create(ctx context.Context, ownerID, projectID string, in domain.AddTransactionInput) (*domain.Transaction, error) {
	for i := 0; i < 5; i++ {
		publicID, err := projdomain.NewPublicID("txn")
		if err != nil {
			return nil, err
		}

		const q = `
insert into transactions (public_id, project_id, owner_id, description, amount_cents, transaction_date)
select $3, p.id, p.owner_id, $4, $5, $6::date
from projects p
where p.owner_id = $1::uuid and p.public_id = $2
returning public_id, $2::text, description, amount_cents, transaction_date, created_at, updated_at;`

		t, err := scanTransaction(r.db.QueryRow(ctx, q, ownerID, projectID, publicID,
			in.Description, in.Amount, in.TransactionDate))
		if err == nil {
			return t, nil
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, projdomain.ErrNotFound
		}

		// unique violation on public_id → retry
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			continue
		}
		return nil, apperr.Storage("create transaction", err)
	}

	return nil, apperr.Storage("create transaction", fmt.Errorf("failed to generate unique transaction id"))
}

// ListForProject returns a project's transactions, newest first by
// transaction date.
func (r *Repo) ListForProject(ctx context.Context, ownerID, projectID string) ([]domain.Transaction, error) {
	const q = `
select t.public_id, p.public_id, t.description, t.amount_cents, t.transaction_date, t.created_at, t.updated_at
from transactions t
join projects p on p.id = t.project_id
where t.owner_id = $1::uuid and p.public_id = $2
order by t.transaction_date desc, t.created_at desc;`

	rows, err := r.db.Query(ctx, q, ownerID, projectID)
	if err != nil {
		return nil, apperr.Storage("list transactions", err)
	}
	defer rows.Close()

	out := make([]domain.Transaction, 0, 16)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, apperr.Storage("list transactions", err)
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage("list transactions", err)
	}
	return out, nil
}

// Update applies a partial update; nil fields keep their current value.
func (r *Repo) Update(ctx context.Context, ownerID, publicID string, in domain.UpdateTransactionInput) (*domain.Transaction, error) {
	const q = `
update transactions t
set description      = coalesce($3, t.description),
    amount_cents     = coalesce($4, t.amount_cents),
    transaction_date = coalesce($5::date, t.transaction_date),
    updated_at       = now()
from projects p
where p.id = t.project_id and t.owner_id = $1::uuid and t.public_id = $2
returning t.public_id, p.public_id, t.description, t.amount_cents, t.transaction_date, t.created_at, t.updated_at;`

	t, err := scanTransaction(r.db.QueryRow(ctx, q, ownerID, publicID,
		in.Description, in.Amount, in.TransactionDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, apperr.Storage("update transaction", err)
	}
	return t, nil
}

// Delete removes a transaction and returns the public id of the project it
// belonged to, so the caller can recompute that project's spent total.
func (r *Repo) Delete(ctx context.Context, ownerID, publicID string) (string, error) {
	const q = `
delete from transactions t
using projects p
where p.id = t.project_id and t.owner_id = $1::uuid and t.public_id = $2
returning p.public_id;`

	var projectID string
	err := r.db.QueryRow(ctx, q, ownerID, publicID).Scan(&projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", apperr.Storage("delete transaction", err)
	}
	return projectID, nil
}

// SumForProject is the single source-of-truth recomputation rule: the sum
// of all amounts currently associated with the project. Idempotent.
func (r *Repo) SumForProject(ctx context.Context, projectID string) (money.Cents, error) {
	const q = `
select coalesce(sum(t.amount_cents), 0)
from transactions t
join projects p on p.id = t.project_id
where p.public_id = $1;`

	var sum money.Cents
	if err := r.db.QueryRow(ctx, q, projectID).Scan(&sum); err != nil {
		return 0, apperr.Storage("sum transactions", err)
	}
	return sum, nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var t domain.Transaction
	var date time.Time
	err := row.Scan(&t.PublicID, &t.ProjectID, &t.Description, &t.Amount,
		&date, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.TransactionDate = date.Format(projdomain.DateLayout)
	return &t, nil
}
