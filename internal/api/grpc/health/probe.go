// Package health reports the serving status of the service over the standard gRPC health protocol.
package health

import (
	"context"
	"time"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dtroode/otp-signup/internal/logger"
	"github.com/dtroode/otp-signup/internal/model"
)

// Service is the name registration status is reported under, next to the overall "" entry.
const Service = "signup.Registration"

const pingTimeout = 3 * time.Second

// Probe pings the user store periodically and mirrors the result into a health server.
type Probe struct {
	pinger   model.Pinger
	server   *health.Server
	interval time.Duration
	logger   *logger.Logger
}

func NewProbe(pinger model.Pinger, server *health.Server, interval time.Duration, logger *logger.Logger) *Probe {
	return &Probe{
		pinger:   pinger,
		server:   server,
		interval: interval,
		logger:   logger,
	}
}

// Run checks immediately and then on every tick until ctx is done.
// On return all services are marked NOT_SERVING.
func (p *Probe) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			p.server.Shutdown()
			return
		case <-ticker.C:
			p.Check(ctx)
		}
	}
}

// Check pings once and updates the status.
func (p *Probe) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := p.pinger.Ping(pingCtx); err != nil {
		p.logger.Warn("Health probe: store unreachable",
			"error", err.Error())
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	p.server.SetServingStatus("", status)
	p.server.SetServingStatus(Service, status)
	return status
}
