package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectDerivedFields(t *testing.T) {
	t.Run("within budget", func(t *testing.T) {
		p := Project{InitialBudget: 100000, Spent: 15000, InvestmentGoal: 200000}

		assert.Equal(t, int64(85000), int64(p.RemainingBudget()))
		assert.False(t, p.OverBudget())
		assert.InDelta(t, 0.15, p.BudgetUtilization(), 1e-9)
		assert.InDelta(t, 0.075, p.GoalCompletion(), 1e-9)
	})

	t.Run("over budget goes negative", func(t *testing.T) {
		p := Project{InitialBudget: 100000, Spent: 105000}

		assert.Equal(t, int64(-5000), int64(p.RemainingBudget()))
		assert.True(t, p.OverBudget())
	})

	t.Run("spending exactly the budget is not over budget", func(t *testing.T) {
		p := Project{InitialBudget: 100000, Spent: 100000}

		assert.Equal(t, int64(0), int64(p.RemainingBudget()))
		assert.False(t, p.OverBudget())
	})

	t.Run("zero denominators yield zero, not NaN", func(t *testing.T) {
		p := Project{InitialBudget: 0, InvestmentGoal: 0, Spent: 0}

		assert.Equal(t, 0.0, p.BudgetUtilization())
		assert.Equal(t, 0.0, p.GoalCompletion())
	})

	t.Run("zero budget with spend still yields zero utilization", func(t *testing.T) {
		p := Project{InitialBudget: 0, Spent: 5000}

		assert.Equal(t, 0.0, p.BudgetUtilization())
	})
}
