package router

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/dtroode/scorepredictor-server/internal/api/grpc/middleware"
	"github.com/dtroode/scorepredictor-server/internal/logger"
)

// Router assembles the operations gRPC server.
type Router struct {
	health healthpb.HealthServer
	logger *logger.Logger
}

func New(health healthpb.HealthServer, logger *logger.Logger) *Router {
	return &Router{health: health, logger: logger}
}

// Health probes arrive every few seconds and are not worth a log line.
func logSkip(_ context.Context, c interceptors.CallMeta) bool {
	return !strings.HasPrefix(c.FullMethod(), "/"+healthpb.Health_ServiceDesc.ServiceName+"/")
}

// Register builds the server with recovery and logging interceptors and
// registers the health and reflection services.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			middleware.NewRecovery(r.logger),
			selector.UnaryServerInterceptor(logging.HandleGRPC, selector.MatchFunc(logSkip)),
		),
	)

	healthpb.RegisterHealthServer(s, r.health)
	reflection.Register(s)

	return s
}
