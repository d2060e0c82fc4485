package domain

import (
	"math"

	"github.com/safra-cheia/budget-backend/internal/money"
)

// PortfolioSummary is the rollup across all of a user's projects, feeding
// the dashboard stat cards.
type PortfolioSummary struct {
	Projects            int         `json:"projects"`
	TotalInvestmentGoal money.Cents `json:"total_investment_goal_cents"`
	TotalSpent          money.Cents `json:"total_spent_cents"`
	TotalInitialBudget  money.Cents `json:"total_initial_budget_cents"`
	TotalRemaining      money.Cents `json:"total_remaining_cents"`
	AverageProgress     int         `json:"average_progress"`
}

// Summarize computes the portfolio rollup. Pure: no I/O, no cached state.
// An empty portfolio sums to zero and averages to zero.
func Summarize(projects []Project) PortfolioSummary {
	s := PortfolioSummary{Projects: len(projects)}

	var progressSum int
	for i := range projects {
		p := &projects[i]
		s.TotalInvestmentGoal += p.InvestmentGoal
		s.TotalSpent += p.Spent
		s.TotalInitialBudget += p.InitialBudget
		progressSum += p.Progress
	}
	s.TotalRemaining = s.TotalInitialBudget - s.TotalSpent

	if len(projects) > 0 {
		s.AverageProgress = int(math.Round(float64(progressSum) / float64(len(projects))))
	}
	return s
}
