package main

import (
	"context"

	"scicalc/internal/coordinator"
	"scicalc/internal/observability"
)

// initMetrics initialises the metric provider and application-specific
// metric instruments. Add new domain InitMetrics calls here as the project grows.
func initMetrics(ctx context.Context) (func(context.Context) error, error) {
	shutdown, err := observability.InitMetrics(ctx)
	if err != nil {
		return nil, err
	}

	if err := coordinator.InitMetrics(); err != nil {
		return nil, err
	}

	return shutdown, nil
}
