package scheduler

import (
	"context"
	"fmt"

	"MarketPanel/internal/logger"
	"MarketPanel/internal/panel"
	"MarketPanel/internal/report"

	"github.com/robfig/cron/v3"
)

// Renderer renders one panel view.
type Renderer interface {
	Render(ctx context.Context) panel.View
}

// Scheduler re-renders the panel on a cron schedule so the cache is warm
// when the UI asks for it.
type Scheduler struct {
	Cron  *cron.Cron
	Panel Renderer
	Ctx   context.Context

	// OnRender receives every scheduled view. Defaults to logging the summary.
	OnRender func(panel.View)
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, p Renderer) *Scheduler {
	s := &Scheduler{
		Cron:  cron.New(cron.WithSeconds()),
		Panel: p,
		Ctx:   ctx,
	}
	s.OnRender = s.logView
	return s
}

// Register adds the refresh task.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	logger.WithComponent("scheduler").Info("scheduler started")
}

// Stop stops the cron scheduler and waits for a running task to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	logger.WithComponent("scheduler").Info("scheduler stopped")
}

// RunNow executes the refresh task immediately (RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	if s.Ctx.Err() != nil {
		return
	}
	s.OnRender(s.Panel.Render(s.Ctx))
}

func (s *Scheduler) logView(v panel.View) {
	log := logger.WithComponent("scheduler").WithField("status", v.Status)
	if v.Status == panel.StatusEmpty {
		log.Error(v.Message)
		return
	}
	log.WithField("label", v.Label).Info("\n" + report.FormatSummary(v))
}
