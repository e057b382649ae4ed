package handler

import (
	"context"
	"time"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dtroode/scorepredictor-server/internal/logger"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health keeps the standard gRPC health service in step with the
// dependencies the API needs. Each dependency is published under its own
// service name; the empty name is SERVING only when all of them are.
type Health struct {
	server  *health.Server
	checks  map[string]Pinger
	timeout time.Duration
	logger  *logger.Logger
}

func NewHealth(checks map[string]Pinger, logger *logger.Logger) *Health {
	return &Health{
		server:  health.NewServer(),
		checks:  checks,
		timeout: 2 * time.Second,
		logger:  logger,
	}
}

// Server returns the service to register on a *grpc.Server.
func (h *Health) Server() healthpb.HealthServer {
	return h.server
}

// Check pings every dependency once and publishes the result. It reports
// whether everything is serving.
func (h *Health) Check(ctx context.Context) bool {
	healthy := true
	for name, p := range h.checks {
		status := healthpb.HealthCheckResponse_SERVING

		pingCtx, cancel := context.WithTimeout(ctx, h.timeout)
		err := p.Ping(pingCtx)
		cancel()

		if err != nil {
			h.logger.Warn("Health: dependency unavailable", "dependency", name, "error", err.Error())
			status = healthpb.HealthCheckResponse_NOT_SERVING
			healthy = false
		}
		h.server.SetServingStatus(name, status)
	}

	overall := healthpb.HealthCheckResponse_SERVING
	if !healthy {
		overall = healthpb.HealthCheckResponse_NOT_SERVING
	}
	h.server.SetServingStatus("", overall)
	return healthy
}

// Run checks immediately and then every interval until ctx is done.
func (h *Health) Run(ctx context.Context, interval time.Duration) {
	h.Check(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.Check(ctx)
		}
	}
}

// Shutdown marks every service NOT_SERVING so balancers drain the instance.
func (h *Health) Shutdown() {
	h.server.Shutdown()
}
