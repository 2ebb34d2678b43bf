// Package grpcauth provides gRPC server middleware that authenticates
// requests with authkit access tokens carried in incoming metadata.
package grpcauth

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dsmirnov/authkit"
)

// MetadataKey is the incoming-metadata key carrying the access token.
const MetadataKey = "access_token"

type ctxKey string

const userIDKey ctxKey = "userID"

// UserID extracts the authenticated user id placed in ctx by the
// interceptor. The second return is false for unauthenticated contexts.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

// Interceptor validates access tokens on unary calls.
type Interceptor struct {
	tokens *authkit.AccessTokenService
	public map[string]struct{}
}

// New builds an Interceptor. publicMethods lists full method names (e.g.
// "/auth.AuthService/Login") that skip authentication.
func New(tokens *authkit.AccessTokenService, publicMethods ...string) *Interceptor {
	public := make(map[string]struct{}, len(publicMethods))
	for _, m := range publicMethods {
		public[m] = struct{}{}
	}
	return &Interceptor{tokens: tokens, public: public}
}

// Unary returns a grpc.UnaryServerInterceptor that rejects calls without a
// valid access token and injects the token's user id into the handler
// context.
func (i *Interceptor) Unary() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {

		if _, ok := i.public[info.FullMethod]; ok {
			return handler(ctx, req)
		}

		var accessToken string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			values := md.Get(MetadataKey)
			if len(values) > 0 {
				accessToken = values[0]
			}
		}

		claims, err := i.tokens.Verify(accessToken)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, err.Error())
		}

		ctx = context.WithValue(ctx, userIDKey, claims.UserID)
		return handler(ctx, req)
	}
}
