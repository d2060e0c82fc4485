package domain

import (
	"strings"
	"time"

	"github.com/safra-cheia/budget-backend/internal/apperr"
	"github.com/safra-cheia/budget-backend/internal/money"
)

// CreateProjectInput carries the validated command for creating a project.
// Spent may be seeded at creation for projects imported with history.
type CreateProjectInput struct {
	Name           string
	URL            string
	InvestmentGoal money.Cents
	InitialBudget  money.Cents
	Spent          money.Cents
	Progress       int
	Deadline       string
}

// Validate checks required fields and value domains, failing on the first
// bad field.
func (in *CreateProjectInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return apperr.Invalid("name", "name is required")
	}
	if in.InvestmentGoal < 0 {
		return apperr.Invalid("investment_goal", "must not be negative")
	}
	if in.InitialBudget < 0 {
		return apperr.Invalid("initial_budget", "must not be negative")
	}
	if in.Spent < 0 {
		return apperr.Invalid("spent", "must not be negative")
	}
	if err := money.ValidatePercent(in.Progress); err != nil {
		return err
	}
	if _, err := time.Parse(DateLayout, in.Deadline); err != nil {
		return apperr.Invalid("deadline", "must be a date in YYYY-MM-DD form")
	}
	return nil
}

// UpdateProjectInput is a partial update; nil fields are left untouched.
// Spent is deliberately absent: only the transaction ledger writes it.
type UpdateProjectInput struct {
	Name           *string
	URL            *string
	InvestmentGoal *money.Cents
	InitialBudget  *money.Cents
	Progress       *int
	Deadline       *string
}

func (in *UpdateProjectInput) Validate() error {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return apperr.Invalid("name", "name must not be empty")
	}
	if in.InvestmentGoal != nil && *in.InvestmentGoal < 0 {
		return apperr.Invalid("investment_goal", "must not be negative")
	}
	if in.InitialBudget != nil && *in.InitialBudget < 0 {
		return apperr.Invalid("initial_budget", "must not be negative")
	}
	if in.Progress != nil {
		if err := money.ValidatePercent(*in.Progress); err != nil {
			return err
		}
	}
	if in.Deadline != nil {
		if _, err := time.Parse(DateLayout, *in.Deadline); err != nil {
			return apperr.Invalid("deadline", "must be a date in YYYY-MM-DD form")
		}
	}
	return nil
}

// Empty reports whether the update changes nothing.
func (in *UpdateProjectInput) Empty() bool {
	return in.Name == nil && in.URL == nil && in.InvestmentGoal == nil &&
		in.InitialBudget == nil && in.Progress == nil && in.Deadline == nil
}
