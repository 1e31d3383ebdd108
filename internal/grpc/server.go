package grpc

import (
	"context"
	"fmt"
	"net"

	"github.com/LeDuoc95/BE-FEDUU/internal/logger"
	"github.com/LeDuoc95/BE-FEDUU/pkg/authsdk"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health entry reported for the marketplace API
const ServiceName = "course-market"

// Server wraps the gRPC server
type Server struct {
	grpcServer *grpc.Server
	listener   net.Listener
	health     *health.Server
}

// NewServer listens on port (0 picks a free one) and registers the health
// and reflection services. secret verifies bearer tokens in call metadata.
func NewServer(port int, secret string) (*Server, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("failed to listen on port %d: %w", port, err)
	}

	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(callerInterceptor(secret)))

	healthServer := health.NewServer()
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	return &Server{
		grpcServer: grpcServer,
		listener:   listener,
		health:     healthServer,
	}, nil
}

// Start marks the service healthy and serves (blocking)
func (s *Server) Start() error {
	s.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	return s.grpcServer.Serve(s.listener)
}

// Stop reports NOT_SERVING, then drains in-flight calls
func (s *Server) Stop() {
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
}

// GetAddr returns the server address
func (s *Server) GetAddr() string {
	return s.listener.Addr().String()
}

// callerInterceptor logs each unary call with the id of the bearer it carries
func callerInterceptor(secret string) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		user := authsdk.GetUserFromContext(ctx, secret)
		logger.L().Debug("grpc call",
			zap.String("method", info.FullMethod),
			zap.Uint("user_id", user.UserID),
		)
		return handler(ctx, req)
	}
}
