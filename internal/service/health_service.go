package service

import (
	"context"
	"sync"
	"time"

	"github.com/krish0326/i-backend/internal/domain"
	"github.com/krish0326/i-backend/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var healthTracer = otel.Tracer("service/health")

// HealthService checks all registered dependencies in parallel and
// aggregates the result for GET /healthz.
type HealthService struct {
	pingers map[string]port.Pinger
	timeout time.Duration
	logger  *zap.Logger
}

// NewHealthService creates a health service. pingers maps a dependency
// name to its ping implementation.
func NewHealthService(pingers map[string]port.Pinger, timeout time.Duration, logger *zap.Logger) *HealthService {
	return &HealthService{pingers: pingers, timeout: timeout, logger: logger}
}

// Check pings every dependency concurrently. The overall status is
// healthy when all pass, degraded when some fail, unhealthy when all fail.
func (s *HealthService) Check(ctx context.Context) *domain.HealthStatus {
	ctx, span := healthTracer.Start(ctx, "HealthService.Check")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var mu sync.Mutex
	services := make([]domain.ServiceHealth, 0, len(s.pingers))

	g, ctx := errgroup.WithContext(ctx)
	for name, pinger := range s.pingers {
		name, pinger := name, pinger
		g.Go(func() error {
			start := time.Now()
			err := pinger.Ping(ctx)
			sh := domain.ServiceHealth{
				Name:        name,
				Status:      "healthy",
				LatencyMs:   time.Since(start).Milliseconds(),
				LastChecked: time.Now().UTC().Format(time.RFC3339),
			}
			if err != nil {
				sh.Status = "unhealthy"
				s.logger.Warn("dependency ping failed", zap.String("dependency", name), zap.Error(err))
			}
			mu.Lock()
			services = append(services, sh)
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	healthy := 0
	for _, sh := range services {
		if sh.Status == "healthy" {
			healthy++
		}
	}
	status := "healthy"
	switch {
	case len(services) > 0 && healthy == 0:
		status = "unhealthy"
	case healthy < len(services):
		status = "degraded"
	}

	return &domain.HealthStatus{Status: status, Services: services}
}
