package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/LeDuoc95/BE-FEDUU/internal/logger"
	"github.com/LeDuoc95/BE-FEDUU/pkg/authsdk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
)

const testSecret = "grpc-test-secret"

func TestServer_Health(t *testing.T) {
	srv, err := NewServer(0, testSecret)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- srv.Start() }()

	conn, err := grpc.NewClient(srv.GetAddr(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	client := healthpb.NewHealthClient(conn)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.Eventually(t, func() bool {
		resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
		return err == nil && resp.GetStatus() == healthpb.HealthCheckResponse_SERVING
	}, 3*time.Second, 20*time.Millisecond)

	srv.Stop()
	assert.NoError(t, <-done)
}

func TestCallerInterceptor(t *testing.T) {
	token, err := authsdk.GenerateToken(authsdk.UserContext{UserID: 9, Username: "lan", Role: "lecturer"}, testSecret, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		md     metadata.MD
		wantID uint64
	}{
		{"no metadata", nil, 0},
		{"bearer token", metadata.Pairs("authorization", "Bearer "+token), 9},
		{"access token header", metadata.Pairs("x-access-token", token), 9},
		{"bad token", metadata.Pairs("authorization", "Bearer nope"), 0},
	}

	intercept := callerInterceptor(testSecret)
	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.DebugLevel)
			logger.Init(zap.New(core))
			t.Cleanup(func() { logger.Init(zap.NewNop()) })

			ctx := context.Background()
			if tt.md != nil {
				ctx = metadata.NewIncomingContext(ctx, tt.md)
			}

			called := false
			resp, err := intercept(ctx, "req", info, func(ctx context.Context, req any) (any, error) {
				called = true
				return req, nil
			})

			require.NoError(t, err)
			assert.True(t, called)
			assert.Equal(t, "req", resp)

			entries := logs.FilterMessage("grpc call").All()
			require.Len(t, entries, 1)
			fields := entries[0].ContextMap()
			assert.Equal(t, info.FullMethod, fields["method"])
			assert.Equal(t, tt.wantID, fields["user_id"])
		})
	}
}
