// Package health provides liveness and readiness probes for a running
// simulation. The starstrike command serves them over HTTP while a long
// run is in progress.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"sort"
	"sync"
	"time"
)

// HealthCheck defines the interface for individual health checks.
type HealthCheck interface {
	// Name returns the unique name of this health check
	Name() string
	// Check performs the health check and returns an error if unhealthy
	Check(ctx context.Context) error
}

// HealthStatus represents the overall health status of the simulation.
type HealthStatus struct {
	Status string                     `json:"status"`
	Checks map[string]ComponentHealth `json:"checks"`
}

// ComponentHealth represents the health status of an individual component.
type ComponentHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthChecker manages and executes health checks.
type HealthChecker struct {
	checks map[string]HealthCheck
	mu     sync.RWMutex
}

// NewHealthChecker creates a new health checker instance.
func NewHealthChecker() *HealthChecker {
	return &HealthChecker{
		checks: make(map[string]HealthCheck),
	}
}

// AddCheck registers a health check, replacing any check with the same name.
func (hc *HealthChecker) AddCheck(check HealthCheck) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.checks[check.Name()] = check
}

// RemoveCheck removes a health check by name.
func (hc *HealthChecker) RemoveCheck(name string) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	delete(hc.checks, name)
}

// CheckHealth runs every registered check in name order. The overall status
// is "healthy" only if all checks pass; once ctx is done the remaining
// checks are reported unhealthy without running.
func (hc *HealthChecker) CheckHealth(ctx context.Context) HealthStatus {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	names := make([]string, 0, len(hc.checks))
	for name := range hc.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := HealthStatus{
		Status: "healthy",
		Checks: make(map[string]ComponentHealth, len(names)),
	}
	for _, name := range names {
		err := ctx.Err()
		if err == nil {
			err = hc.checks[name].Check(ctx)
		}
		if err != nil {
			status.Status = "unhealthy"
			status.Checks[name] = ComponentHealth{Status: "unhealthy", Message: err.Error()}
			continue
		}
		status.Checks[name] = ComponentHealth{Status: "healthy"}
	}

	return status
}

// LivenessHandler returns 200 OK while the process can serve requests.
func (hc *HealthChecker) LivenessHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "alive"})
}

// ReadinessHandler runs all checks and returns 200 OK when they pass or
// 503 Service Unavailable when any fails.
func (hc *HealthChecker) ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	health := hc.CheckHealth(ctx)

	w.Header().Set("Content-Type", "application/json")
	if health.Status == "healthy" {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(health)
}

// Handler serves /health and /ready
func (hc *HealthChecker) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", hc.LivenessHandler)
	mux.HandleFunc("/ready", hc.ReadinessHandler)
	return mux
}

// SimulationCheck fails when the game is not running or the tick loop has
// stalled for longer than maxStall.
type SimulationCheck struct {
	status   func() string
	lastTick func() time.Time
	maxStall time.Duration
	now      func() time.Time
}

// NewSimulationCheck creates a check over the game's status string and the
// wall-clock time of its last tick. A zero maxStall disables stall detection.
func NewSimulationCheck(status func() string, lastTick func() time.Time, maxStall time.Duration) *SimulationCheck {
	return &SimulationCheck{
		status:   status,
		lastTick: lastTick,
		maxStall: maxStall,
		now:      time.Now,
	}
}

// Name returns the name of this health check.
func (s *SimulationCheck) Name() string {
	return "simulation"
}

// Check verifies that the simulation is active and ticking.
func (s *SimulationCheck) Check(ctx context.Context) error {
	if status := s.status(); status != "active" {
		return fmt.Errorf("simulation is %s", status)
	}
	if s.maxStall <= 0 {
		return nil
	}
	if stalled := s.now().Sub(s.lastTick()); stalled > s.maxStall {
		return fmt.Errorf("no tick for %s (limit %s)", stalled.Round(time.Millisecond), s.maxStall)
	}
	return nil
}

// EntityBudgetCheck fails when the store holds more entities than limit,
// which points at bullets or dead enemies not being pruned.
type EntityBudgetCheck struct {
	limit int
	count func() int
}

// NewEntityBudgetCheck creates a check over the live entity count.
func NewEntityBudgetCheck(limit int, count func() int) *EntityBudgetCheck {
	return &EntityBudgetCheck{limit: limit, count: count}
}

// Name returns the name of this health check.
func (e *EntityBudgetCheck) Name() string {
	return "entities"
}

// Check verifies the entity count is within the budget.
func (e *EntityBudgetCheck) Check(ctx context.Context) error {
	if n := e.count(); n > e.limit {
		return fmt.Errorf("%d entities exceed budget %d", n, e.limit)
	}
	return nil
}

// MemoryHealthCheck implements HealthCheck for memory usage monitoring.
type MemoryHealthCheck struct {
	maxMemoryMB    int64
	getMemoryUsage func() int64
}

// NewMemoryHealthCheck creates a health check for memory usage. A nil
// getMemoryUsage reads the Go heap allocation.
func NewMemoryHealthCheck(maxMemoryMB int64, getMemoryUsage func() int64) *MemoryHealthCheck {
	if getMemoryUsage == nil {
		getMemoryUsage = HeapAllocMB
	}
	return &MemoryHealthCheck{
		maxMemoryMB:    maxMemoryMB,
		getMemoryUsage: getMemoryUsage,
	}
}

// HeapAllocMB returns the current heap allocation in megabytes
func HeapAllocMB() int64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return int64(m.Alloc / 1024 / 1024)
}

// Name returns the name of this health check.
func (m *MemoryHealthCheck) Name() string {
	return "memory"
}

// Check verifies that memory usage is within acceptable limits.
func (m *MemoryHealthCheck) Check(ctx context.Context) error {
	currentMB := m.getMemoryUsage()
	if currentMB > m.maxMemoryMB {
		return fmt.Errorf("memory usage %dMB exceeds limit %dMB", currentMB, m.maxMemoryMB)
	}
	return nil
}
