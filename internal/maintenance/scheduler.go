package maintenance

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"

	"github.com/kayz/slidesmith/internal/compose"
	"github.com/kayz/slidesmith/internal/config"
	"github.com/kayz/slidesmith/internal/engine"
	"github.com/kayz/slidesmith/internal/logger"
)

// Scheduler runs background upkeep in serve mode: pruning old audit files and
// clearing the spec/template caches so edited assets are picked up.
type Scheduler struct {
	cron    *cron.Cron
	cfg     config.MaintenanceConfig
	eng     *engine.Engine
	auditor *compose.Auditor
}

// NewScheduler builds a scheduler; auditor may be nil.
func NewScheduler(cfg config.MaintenanceConfig, eng *engine.Engine, auditor *compose.Auditor) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		cfg:     cfg,
		eng:     eng,
		auditor: auditor,
	}
}

// normalizeCron prepends "0 " to standard 5-field cron expressions
// so they work with the 6-field (with seconds) parser.
func normalizeCron(schedule string) string {
	if len(strings.Fields(schedule)) == 5 {
		return "0 " + schedule
	}
	return schedule
}

// Start registers the configured jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	registered := 0

	if s.auditor != nil && s.cfg.AuditPruneSchedule != "" {
		_, err := s.cron.AddFunc(normalizeCron(s.cfg.AuditPruneSchedule), func() {
			if err := s.auditor.Prune(); err != nil {
				logger.Warn("audit prune failed: %v", err)
			}
		})
		if err != nil {
			return fmt.Errorf("schedule audit prune: %w", err)
		}
		registered++
	}

	if s.cfg.CacheClearSchedule != "" {
		_, err := s.cron.AddFunc(normalizeCron(s.cfg.CacheClearSchedule), func() {
			s.eng.ResetCaches()
			logger.Info("spec/template caches cleared")
		})
		if err != nil {
			return fmt.Errorf("schedule cache clear: %w", err)
		}
		registered++
	}

	s.cron.Start()
	logger.Info("maintenance scheduler started with %d jobs", registered)
	return nil
}

// Stop halts the cron loop; running jobs finish.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}
