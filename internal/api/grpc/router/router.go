package router

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/dtroode/otp-signup/internal/api/grpc/middleware"
	"github.com/dtroode/otp-signup/internal/logger"
)

// Router builds the gRPC server exposing the health service.
type Router struct {
	health *health.Server
	logger *logger.Logger
}

// New creates new gRPC Router instance around a health server whose status is driven elsewhere.
func New(health *health.Server, logger *logger.Logger) *Router {
	return &Router{
		health: health,
		logger: logger,
	}
}

// Register creates the gRPC server with logging and panic recovery interceptors.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	recoverFrom := recovery.WithRecoveryHandlerContext(func(ctx context.Context, p any) error {
		r.logger.Error("gRPC handler panicked", "panic", p)
		return status.Error(codes.Internal, "internal server error")
	})

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			recovery.UnaryServerInterceptor(recoverFrom),
		),
		grpc.ChainStreamInterceptor(
			recovery.StreamServerInterceptor(recoverFrom),
		),
	)

	healthpb.RegisterHealthServer(s, r.health)
	reflection.Register(s)

	return s
}
