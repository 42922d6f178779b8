// Package health отдаёт стандартный gRPC health check (grpc.health.v1.Health)
// со статусом, который определяется доступностью базы данных.
package health

import (
	"context"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/magabrotheeeer/novelamania/internal/lib/sl"
)

// ServiceName имя сервиса в health check. Пустое имя означает сервер целиком.
const ServiceName = "novelamania"

// Pinger проверяет доступность зависимости.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server gRPC-сервер health check.
type Server struct {
	grpc     *grpc.Server
	health   *health.Server
	pinger   Pinger
	interval time.Duration
	log      *slog.Logger
}

// New создает Server. Статус перепроверяется каждые interval.
func New(pinger Pinger, interval time.Duration, log *slog.Logger) *Server {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	h := health.NewServer()
	g := grpc.NewServer()
	healthpb.RegisterHealthServer(g, h)
	h.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	h.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	return &Server{
		grpc:     g,
		health:   h,
		pinger:   pinger,
		interval: interval,
		log:      log,
	}
}

// Check один раз пингует зависимость и выставляет статус.
func (s *Server) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING
	if err := s.pinger.Ping(ctx); err != nil {
		s.log.Warn("health check failed", sl.Err(err))
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
	return status
}

// Serve обслуживает lis и обновляет статус до отмены ctx, затем останавливает сервер.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	go s.watch(ctx)
	go func() {
		<-ctx.Done()
		s.health.Shutdown()
		s.grpc.GracefulStop()
	}()
	if err := s.grpc.Serve(lis); err != nil && err != grpc.ErrServerStopped {
		return err
	}
	return nil
}

func (s *Server) watch(ctx context.Context) {
	s.Check(ctx)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Check(ctx)
		}
	}
}
