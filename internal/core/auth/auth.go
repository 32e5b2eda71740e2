// Package auth provides optional API key authentication for gRPC services.
package auth

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// healthPrefix marks methods that stay reachable without a key.
const healthPrefix = "/grpc.health.v1.Health/"

// Authenticator checks the x-api-key metadata against a shared key.
// Only the SHA-256 digest of the key is held in memory.
type Authenticator struct {
	digest [sha256.Size]byte
}

// NewAuthenticator creates an authenticator for key. Returns nil for an empty
// key, which disables authentication.
func NewAuthenticator(key string) *Authenticator {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}
	return &Authenticator{digest: sha256.Sum256([]byte(key))}
}

// Authenticate validates a presented API key.
func (a *Authenticator) Authenticate(apiKey string) error {
	if apiKey == "" {
		return ErrMissingKey
	}
	presented := sha256.Sum256([]byte(apiKey))
	if subtle.ConstantTimeCompare(presented[:], a.digest[:]) != 1 {
		return ErrInvalidKey
	}
	return nil
}

// UnaryInterceptor returns gRPC interceptor that authenticates requests.
// Health checks are exempt so orchestrators can probe without credentials.
func (a *Authenticator) UnaryInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if strings.HasPrefix(info.FullMethod, healthPrefix) {
			return handler(ctx, req)
		}

		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing metadata")
		}

		var apiKey string
		if keys := md.Get("x-api-key"); len(keys) > 0 {
			apiKey = keys[0]
		}
		if err := a.Authenticate(apiKey); err != nil {
			return nil, status.Error(codes.Unauthenticated, err.Error())
		}
		return handler(ctx, req)
	}
}
