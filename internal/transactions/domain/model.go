package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/safra-cheia/budget-backend/internal/apperr"
	"github.com/safra-cheia/budget-backend/internal/money"
	projdomain "github.com/safra-cheia/budget-backend/internal/projects/domain"
)

var ErrNotFound = errors.New("transaction not found")

// Transaction is a dated monetary entry attributed to a project. The
// amount's sign is unconstrained; spending is positive by convention and
// corrections go negative.
type Transaction struct {
	PublicID        string      `json:"public_id"`
	ProjectID       string      `json:"project_id"`
	Description     string      `json:"description"`
	Amount          money.Cents `json:"amount_cents"`
	TransactionDate string      `json:"transaction_date"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

type AddTransactionInput struct {
	Description     string
	Amount          money.Cents
	TransactionDate string
}

func (in *AddTransactionInput) Validate() error {
	if strings.TrimSpace(in.Description) == "" {
		return apperr.Invalid("description", "description is required")
	}
	if in.TransactionDate == "" {
		return apperr.Invalid("transaction_date", "transaction date is required")
	}
	if _, err := time.Parse(projdomain.DateLayout, in.TransactionDate); err != nil {
		return apperr.Invalid("transaction_date", "must be a date in YYYY-MM-DD form")
	}
	return nil
}

type UpdateTransactionInput struct {
	Description     *string
	Amount          *money.Cents
	TransactionDate *string
}

func (in *UpdateTransactionInput) Validate() error {
	if in.Description != nil && strings.TrimSpace(*in.Description) == "" {
		return apperr.Invalid("description", "description must not be empty")
	}
	if in.TransactionDate != nil {
		if _, err := time.Parse(projdomain.DateLayout, *in.TransactionDate); err != nil {
			return apperr.Invalid("transaction_date", "must be a date in YYYY-MM-DD form")
		}
	}
	return nil
}
