// Package pipeline sequences the batch stages under a single-writer run lock.
package pipeline

import "context"

// Health summarizes the readiness of a pipeline stage.
type Health struct {
	Name   string
	Ready  bool
	Detail string
}

// Healthy constructs a ready Health record.
func Healthy(name string) Health {
	return Health{Name: name, Ready: true}
}

// Unhealthy constructs an unhealthy Health record with context detail.
func Unhealthy(name, detail string) Health {
	return Health{Name: name, Ready: false, Detail: detail}
}

// Stage describes the contract the runner needs from each pipeline stage.
type Stage interface {
	Name() string
	Prepare(ctx context.Context) error
	Execute(ctx context.Context) error
	HealthCheck(ctx context.Context) Health
}
