package http

import (
	"strings"

	"github.com/safra-cheia/budget-backend/internal/apperr"
	"github.com/safra-cheia/budget-backend/internal/money"
	"github.com/safra-cheia/budget-backend/internal/projects/domain"
)

// Amount fields arrive as decimal text the way the form submits them
// ("1234.56" or "1234,56"); parsing happens server side via money.ParseAmount.
type createReq struct {
	Name           string `json:"name"`
	URL            string `json:"url"`
	InvestmentGoal string `json:"investment_goal"`
	InitialBudget  string `json:"initial_budget"`
	Spent          string `json:"spent"`
	Progress       *int   `json:"progress"`
	Deadline       string `json:"deadline"`
}

func (r *createReq) toInput() (domain.CreateProjectInput, error) {
	var in domain.CreateProjectInput

	in.Name = strings.TrimSpace(r.Name)
	in.URL = strings.TrimSpace(r.URL)
	in.Deadline = strings.TrimSpace(r.Deadline)

	budget, err := parseAmountField(r.InitialBudget, "initial_budget")
	if err != nil {
		return in, err
	}
	in.InitialBudget = budget

	if r.InvestmentGoal != "" {
		goal, err := parseAmountField(r.InvestmentGoal, "investment_goal")
		if err != nil {
			return in, err
		}
		in.InvestmentGoal = goal
	}
	if r.Spent != "" {
		spent, err := parseAmountField(r.Spent, "spent")
		if err != nil {
			return in, err
		}
		in.Spent = spent
	}
	if r.Progress == nil {
		return in, apperr.Invalid("progress", "progress is required")
	}
	in.Progress = *r.Progress

	return in, nil
}

type updateReq struct {
	Name           *string `json:"name"`
	URL            *string `json:"url"`
	InvestmentGoal *string `json:"investment_goal"`
	InitialBudget  *string `json:"initial_budget"`
	Progress       *int    `json:"progress"`
	Deadline       *string `json:"deadline"`
}

func (r *updateReq) toInput() (domain.UpdateProjectInput, error) {
	var in domain.UpdateProjectInput

	in.Name = r.Name
	in.URL = r.URL
	in.Progress = r.Progress
	in.Deadline = r.Deadline

	if r.InvestmentGoal != nil {
		goal, err := parseAmountField(*r.InvestmentGoal, "investment_goal")
		if err != nil {
			return in, err
		}
		in.InvestmentGoal = &goal
	}
	if r.InitialBudget != nil {
		budget, err := parseAmountField(*r.InitialBudget, "initial_budget")
		if err != nil {
			return in, err
		}
		in.InitialBudget = &budget
	}

	return in, nil
}

func parseAmountField(s, field string) (money.Cents, error) {
	v, err := money.ParseAmount(s)
	if err != nil {
		if ve := apperr.AsValidation(err); ve != nil {
			return 0, apperr.Invalid(field, ve.Message)
		}
		return 0, err
	}
	return v, nil
}

// projectView decorates the stored row with its derived fields so the
// client renders without re-deriving.
type projectView struct {
	domain.Project
	RemainingBudget   money.Cents `json:"remaining_budget_cents"`
	OverBudget        bool        `json:"over_budget"`
	BudgetUtilization float64     `json:"budget_utilization"`
	GoalCompletion    float64     `json:"goal_completion"`
}

func newProjectView(p *domain.Project) projectView {
	return projectView{
		Project:           *p,
		RemainingBudget:   p.RemainingBudget(),
		OverBudget:        p.OverBudget(),
		BudgetUtilization: p.BudgetUtilization(),
		GoalCompletion:    p.GoalCompletion(),
	}
}

func newProjectViews(projects []domain.Project) []projectView {
	out := make([]projectView, 0, len(projects))
	for i := range projects {
		out = append(out, newProjectView(&projects[i]))
	}
	return out
}
