package service

import (
	"context"
	"time"
)

// Pinger is a dependency the readiness check probes.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ComponentStatus is the readiness of one dependency.
type ComponentStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// HealthService probes the database and cache for readiness.
type HealthService struct {
	components map[string]Pinger
	required   map[string]bool
	timeout    time.Duration
}

// NewHealthService builds a checker. The database is required; the cache is reported but optional.
func NewHealthService(db Pinger, cache Pinger) *HealthService {
	h := &HealthService{
		components: map[string]Pinger{},
		required:   map[string]bool{},
		timeout:    2 * time.Second,
	}
	if db != nil {
		h.components["database"] = db
		h.required["database"] = true
	}
	if cache != nil {
		h.components["cache"] = cache
	}
	return h
}

// Ready probes every component and reports false when a required one fails.
func (h *HealthService) Ready(ctx context.Context) (bool, map[string]ComponentStatus) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	ready := true
	out := make(map[string]ComponentStatus, len(h.components))
	for name, p := range h.components {
		if err := p.Ping(ctx); err != nil {
			out[name] = ComponentStatus{Status: "down", Error: err.Error()}
			if h.required[name] {
				ready = false
			}
			continue
		}
		out[name] = ComponentStatus{Status: "up"}
	}
	return ready, out
}
