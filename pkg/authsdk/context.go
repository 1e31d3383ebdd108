package authsdk

import (
	"context"
	"strings"

	"google.golang.org/grpc/metadata"
)

// ExtractTokenFromContext reads the bearer token from gRPC metadata.
// Both "authorization: Bearer <t>" and "x-access-token: <t>" are accepted.
func ExtractTokenFromContext(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", ErrNoToken
	}

	if values := md.Get("authorization"); len(values) > 0 {
		return strings.TrimPrefix(values[0], "Bearer "), nil
	}

	if values := md.Get("x-access-token"); len(values) > 0 {
		return values[0], nil
	}

	return "", ErrNoToken
}

// GetUserFromContext returns the caller of a gRPC request, or an anonymous
// UserContext when no valid token is attached.
func GetUserFromContext(ctx context.Context, secret string) *UserContext {
	token, err := ExtractTokenFromContext(ctx)
	if err != nil {
		return &UserContext{}
	}

	user, err := ParseToken(token, secret)
	if err != nil {
		return &UserContext{}
	}

	return user
}
