// Package audit runs the nightly spent-consistency check. A crash between
// a ledger write and the spent recompute can leave a project's stored
// spent total stale; the auditor surfaces such drift in the logs. It never
// writes: no background job mutates rows, and the next ledger mutation
// heals the total on its own.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/safra-cheia/budget-backend/internal/projects/repository"
)

type DriftLister interface {
	ListSpentDrift(ctx context.Context) ([]repository.SpentDrift, error)
}

type SpentAuditor struct {
	repo DriftLister
	log  *slog.Logger
	cron *cron.Cron
}

func NewSpentAuditor(repo DriftLister, log *slog.Logger) *SpentAuditor {
	return &SpentAuditor{repo: repo, log: log}
}

// Start schedules the audit nightly at 03:00. Returns after scheduling.
func (a *SpentAuditor) Start() error {
	c := cron.New(cron.WithSeconds())

	if _, err := c.AddFunc("0 0 3 * * *", a.Run); err != nil {
		return err
	}

	c.Start()
	a.cron = c
	a.log.Info("spent audit scheduled", "schedule", "nightly 03:00")
	return nil
}

func (a *SpentAuditor) Stop() {
	if a.cron != nil {
		a.cron.Stop()
	}
}

func (a *SpentAuditor) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	drifts, err := a.repo.ListSpentDrift(ctx)
	if err != nil {
		a.log.Error("spent audit failed", "err", err)
		return
	}

	for _, d := range drifts {
		a.log.Warn("spent drift detected",
			"project_id", d.PublicID,
			"stored_cents", int64(d.Stored),
			"ledger_cents", int64(d.Ledger),
		)
	}
	a.log.Info("spent audit finished", "projects_with_drift", len(drifts))
}
