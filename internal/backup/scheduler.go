package backup

import (
	"fmt"
	"sync/atomic"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/laptopdoctor/shopdesk/internal/store"
	"github.com/laptopdoctor/shopdesk/pkg/types"
)

// Scheduler runs dumps on a cron cadence. Each firing opens its own database
// session so a dropped connection in the interactive session never takes the
// backup job down with it.
type Scheduler struct {
	cfg     types.Config
	log     *zap.Logger
	cron    *cron.Cron
	running atomic.Bool
}

// NewScheduler builds a scheduler over the connection settings in cfg.
func NewScheduler(cfg types.Config, log *zap.Logger) *Scheduler {
	return &Scheduler{
		cfg:  cfg,
		log:  log,
		cron: cron.New(),
	}
}

// Start registers the schedule and begins firing. The cron runner invokes
// the job on its own goroutine; an overlapping firing is skipped rather than
// stacked so a slow dump cannot pile up workers.
func (s *Scheduler) Start(sched Schedule) error {
	spec, err := sched.CronSpec()
	if err != nil {
		return fmt.Errorf("building cron spec: %w", err)
	}
	_, err = s.cron.AddFunc(spec, func() {
		if !s.running.CompareAndSwap(false, true) {
			s.log.Warn("backup still running, skipping this firing")
			return
		}
		defer s.running.Store(false)
		s.runOnce(sched.Directory)
	})
	if err != nil {
		return fmt.Errorf("registering backup job: %w", err)
	}
	s.cron.Start()
	s.log.Info("backup scheduler started",
		zap.String("interval", string(sched.Interval)),
		zap.String("spec", spec),
		zap.String("directory", sched.Directory))
	return nil
}

func (s *Scheduler) runOnce(dir string) {
	sess, err := store.Open(s.cfg)
	if err != nil {
		s.log.Error("opening database for backup", zap.Error(err))
		return
	}
	defer sess.Close()

	path, err := Dump(sess, dir)
	if err != nil {
		s.log.Error("writing backup", zap.Error(err))
		return
	}
	s.log.Info("backup written", zap.String("path", path))
}

// Stop halts the cron runner. A dump already in flight finishes.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
