package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safra-cheia/budget-backend/internal/auth"
	"github.com/safra-cheia/budget-backend/internal/projects/domain"
	"github.com/safra-cheia/budget-backend/internal/projects/service"
)

type memStore struct {
	projects map[string]domain.Project
	nextID   int
}

func (m *memStore) Create(_ context.Context, _ string, in domain.CreateProjectInput) (*domain.Project, error) {
	m.nextID++
	p := domain.Project{
		PublicID:       "proj-00000-000" + string(rune('0'+m.nextID)),
		Name:           in.Name,
		URL:            in.URL,
		InvestmentGoal: in.InvestmentGoal,
		InitialBudget:  in.InitialBudget,
		Spent:          in.Spent,
		Progress:       in.Progress,
		Deadline:       in.Deadline,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	m.projects[p.PublicID] = p
	return &p, nil
}

func (m *memStore) List(context.Context, string) ([]domain.Project, error) {
	out := make([]domain.Project, 0, len(m.projects))
	for _, p := range m.projects {
		out = append(out, p)
	}
	return out, nil
}

func (m *memStore) Get(_ context.Context, _, publicID string) (*domain.Project, error) {
	p, ok := m.projects[publicID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (m *memStore) Update(_ context.Context, _, publicID string, in domain.UpdateProjectInput) (*domain.Project, error) {
	p, ok := m.projects[publicID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if in.Progress != nil {
		p.Progress = *in.Progress
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	m.projects[publicID] = p
	return &p, nil
}

func (m *memStore) Delete(_ context.Context, _, publicID string) (bool, error) {
	if _, ok := m.projects[publicID]; !ok {
		return false, nil
	}
	delete(m.projects, publicID)
	return true, nil
}

type noopCache struct{}

func (noopCache) Get(context.Context, string) ([]domain.Project, bool)  { return nil, false }
func (noopCache) Set(context.Context, string, []domain.Project)        {}
func (noopCache) Invalidate(context.Context, string)                   {}

func setupRouter(authenticated bool) (*gin.Engine, *memStore) {
	gin.SetMode(gin.TestMode)

	store := &memStore{projects: make(map[string]domain.Project)}
	handler := NewHandler(service.NewProjectService(store, noopCache{}))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if authenticated {
			c.Set(auth.CtxUserDBID, "user-1")
		}
		c.Next()
	})

	group := r.Group("/api/v1/projects")
	handler.Register(group)
	handler.RegisterPortfolio(r.Group("/api/v1/portfolio"))

	return r, store
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const validBody = `{
	"name": "Vineyard expansion",
	"investment_goal": "2000.00",
	"initial_budget": "1000.00",
	"spent": "0",
	"progress": 0,
	"deadline": "2025-12-31"
}`

func TestCreateProjectHandler(t *testing.T) {
	t.Run("creates and returns derived fields", func(t *testing.T) {
		r, _ := setupRouter(true)

		w := doJSON(t, r, http.MethodPost, "/api/v1/projects", validBody)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			OK      bool `json:"ok"`
			Project struct {
				PublicID        string `json:"public_id"`
				InitialBudget   int64  `json:"initial_budget_cents"`
				Remaining       int64  `json:"remaining_budget_cents"`
				OverBudget      bool   `json:"over_budget"`
			} `json:"project"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.OK)
		assert.NotEmpty(t, resp.Project.PublicID)
		assert.Equal(t, int64(100000), resp.Project.InitialBudget)
		assert.Equal(t, int64(100000), resp.Project.Remaining)
		assert.False(t, resp.Project.OverBudget)
	})

	t.Run("missing name is a field error", func(t *testing.T) {
		r, _ := setupRouter(true)

		body := strings.Replace(validBody, `"Vineyard expansion"`, `""`, 1)
		w := doJSON(t, r, http.MethodPost, "/api/v1/projects", body)
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "name", resp["field"])
	})

	t.Run("unparseable budget is a field error", func(t *testing.T) {
		r, _ := setupRouter(true)

		body := strings.Replace(validBody, `"1000.00"`, `"lots"`, 1)
		w := doJSON(t, r, http.MethodPost, "/api/v1/projects", body)
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "initial_budget", resp["field"])
	})

	t.Run("unauthenticated", func(t *testing.T) {
		r, _ := setupRouter(false)

		w := doJSON(t, r, http.MethodPost, "/api/v1/projects", validBody)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestGetProjectHandler(t *testing.T) {
	r, _ := setupRouter(true)

	t.Run("unknown id", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/v1/projects/proj-missing", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUpdateProjectHandler(t *testing.T) {
	r, store := setupRouter(true)

	w := doJSON(t, r, http.MethodPost, "/api/v1/projects", validBody)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Project struct {
			PublicID string `json:"public_id"`
		} `json:"project"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created.Project.PublicID

	t.Run("progress slider", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPatch, "/api/v1/projects/"+id, `{"progress": 75}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 75, store.projects[id].Progress)
	})

	t.Run("progress out of range", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPatch, "/api/v1/projects/"+id, `{"progress": 150}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, 75, store.projects[id].Progress)
	})
}

func TestDeleteProjectHandler(t *testing.T) {
	r, store := setupRouter(true)

	w := doJSON(t, r, http.MethodPost, "/api/v1/projects", validBody)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, store.projects, 1)

	var created struct {
		Project struct {
			PublicID string `json:"public_id"`
		} `json:"project"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, r, http.MethodDelete, "/api/v1/projects/"+created.Project.PublicID, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, store.projects)

	w = doJSON(t, r, http.MethodDelete, "/api/v1/projects/"+created.Project.PublicID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPortfolioSummaryHandler(t *testing.T) {
	r, _ := setupRouter(true)

	w := doJSON(t, r, http.MethodPost, "/api/v1/projects", validBody)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/portfolio/summary", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Summary struct {
			Projects       int   `json:"projects"`
			TotalRemaining int64 `json:"total_remaining_cents"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Summary.Projects)
	assert.Equal(t, int64(100000), resp.Summary.TotalRemaining)
}
