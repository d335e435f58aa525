package maintenance

import (
	"testing"

	"github.com/kayz/slidesmith/internal/compose"
	"github.com/kayz/slidesmith/internal/config"
	"github.com/kayz/slidesmith/internal/engine"
	"github.com/kayz/slidesmith/internal/template"
	"github.com/kayz/slidesmith/internal/variant"
)

func TestNormalizeCron(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"0 3 * * *", "0 0 3 * * *"},
		{"0 0 3 * * *", "0 0 3 * * *"},
		{"@daily", "@daily"},
	}
	for _, tc := range tests {
		if got := normalizeCron(tc.in); got != tc.want {
			t.Errorf("normalizeCron(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSchedulerStartStop(t *testing.T) {
	eng := engine.New(variant.NewStore(t.TempDir()), template.NewStore(t.TempDir()),
		compose.NewComposer(nil), nil)
	auditor := compose.NewAuditor(config.AuditConfig{Enabled: true, Dir: t.TempDir(), RetentionDays: 1})

	s := NewScheduler(config.MaintenanceConfig{
		AuditPruneSchedule: "0 3 * * *",
		CacheClearSchedule: "0 0 * * * *",
	}, eng, auditor)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.Stop()
}

func TestSchedulerRejectsBadExpression(t *testing.T) {
	eng := engine.New(variant.NewStore(t.TempDir()), template.NewStore(t.TempDir()),
		compose.NewComposer(nil), nil)
	s := NewScheduler(config.MaintenanceConfig{CacheClearSchedule: "not a schedule"}, eng, nil)
	if err := s.Start(); err == nil {
		t.Fatal("expected error for invalid cron expression")
	}
}
