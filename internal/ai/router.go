package ai

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// ModelRouter tracks per-model health and picks a replacement when the
// current model keeps failing.
type ModelRouter struct {
	registry      *Registry
	currentModel  *ModelConfig
	failoverStats map[string]*ModelStats
	cooldowns     map[string]time.Time
	cooldownTime  time.Duration
	mu            sync.RWMutex
}

type ModelStats struct {
	successCount int
	failureCount int
	lastSuccess  time.Time
	lastFailure  time.Time
}

func NewModelRouter(registry *Registry, cooldownTime time.Duration) *ModelRouter {
	r := &ModelRouter{
		registry:      registry,
		failoverStats: make(map[string]*ModelStats),
		cooldowns:     make(map[string]time.Time),
		cooldownTime:  cooldownTime,
	}

	if defaultModel := registry.GetDefaultModel(); defaultModel != nil {
		r.currentModel = defaultModel
	}

	return r
}

func (r *ModelRouter) ListModels() []*ModelConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.registry.ListModels()
}

func (r *ModelRouter) GetCurrentModel() *ModelConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.currentModel
}

func (r *ModelRouter) SwitchToModel(name string, force bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	model, ok := r.registry.GetModel(name)
	if !ok {
		return fmt.Errorf("model not found: %s", name)
	}

	if !force && r.inCooldown(name) {
		return fmt.Errorf("model %s is in cooldown", name)
	}

	r.currentModel = model
	return nil
}

func (r *ModelRouter) RecordSuccess(model *ModelConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := r.statsFor(model.Name)
	stats.successCount++
	stats.lastSuccess = time.Now()
}

func (r *ModelRouter) RecordFailure(model *ModelConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := r.statsFor(model.Name)
	stats.failureCount++
	stats.lastFailure = time.Now()

	r.cooldowns[model.Name] = time.Now().Add(r.cooldownTime)
}

// Failover picks the healthiest model outside cooldown, preferring earlier
// registry order, then fewer recorded failures.
func (r *ModelRouter) Failover() (*ModelConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	allModels := r.registry.ListModels()
	if len(allModels) == 0 {
		return nil, fmt.Errorf("no models available")
	}

	type candidate struct {
		model       *ModelConfig
		order       int
		failureRank int
	}

	var candidates []candidate
	for i, m := range allModels {
		if r.inCooldown(m.Name) {
			continue
		}
		failureRank := 0
		if stats := r.failoverStats[m.Name]; stats != nil {
			failureRank = stats.failureCount
		}
		candidates = append(candidates, candidate{model: m, order: i, failureRank: failureRank})
	}

	if len(candidates) == 0 {
		return nil, fmt.Errorf("no available models for failover")
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.failureRank != b.failureRank {
			return a.failureRank < b.failureRank
		}
		return a.order < b.order
	})

	r.currentModel = candidates[0].model
	return r.currentModel, nil
}

func (r *ModelRouter) IsInCooldown(modelName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.inCooldown(modelName)
}

func (r *ModelRouter) inCooldown(modelName string) bool {
	cooldownUntil, ok := r.cooldowns[modelName]
	if !ok {
		return false
	}
	return time.Now().Before(cooldownUntil)
}

func (r *ModelRouter) statsFor(name string) *ModelStats {
	stats, ok := r.failoverStats[name]
	if !ok {
		stats = &ModelStats{}
		r.failoverStats[name] = stats
	}
	return stats
}
