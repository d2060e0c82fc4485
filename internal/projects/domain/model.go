package domain

import (
	"time"

	"github.com/safra-cheia/budget-backend/internal/money"
)

// DateLayout is the calendar-date format used for deadlines and
// transaction dates. No time component is carried.
const DateLayout = "2006-01-02"

// Project is a tracked initiative with an operating budget, an investment
// goal, a deadline, and a progress percentage. It is storage-agnostic and
// shared across repository and HTTP layers.
//
// Spent is derived: it must equal the sum of the project's transaction
// amounts. It is stored redundantly for fast display, and the transaction
// ledger is its only writer.
type Project struct {
	PublicID       string      `json:"public_id"`
	Name           string      `json:"name"`
	URL            string      `json:"url,omitempty"`
	InvestmentGoal money.Cents `json:"investment_goal_cents"`
	InitialBudget  money.Cents `json:"initial_budget_cents"`
	Spent          money.Cents `json:"spent_cents"`
	Progress       int         `json:"progress"`
	Deadline       string      `json:"deadline"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// RemainingBudget is the operating budget left. Negative means over budget.
func (p *Project) RemainingBudget() money.Cents {
	return p.InitialBudget - p.Spent
}

func (p *Project) OverBudget() bool {
	return p.Spent > p.InitialBudget
}

// BudgetUtilization is the spent fraction of the initial budget. A zero
// budget yields 0 rather than an error: a fresh project with no budget and
// no spend is a valid state.
func (p *Project) BudgetUtilization() float64 {
	if p.InitialBudget == 0 {
		return 0
	}
	return float64(p.Spent) / float64(p.InitialBudget)
}

// GoalCompletion is the spent fraction of the investment goal, with the
// same zero-denominator policy as BudgetUtilization.
func (p *Project) GoalCompletion() float64 {
	if p.InvestmentGoal == 0 {
		return 0
	}
	return float64(p.Spent) / float64(p.InvestmentGoal)
}
