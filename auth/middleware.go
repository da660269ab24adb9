package auth

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/canonical/ratings/apperr"
	"github.com/canonical/ratings/log"
)

// publicMethods is the exact allowlist of RPCs that proceed without a
// bearer token, per §4.6. Nothing else is inspected here — the
// middleware never reads message payloads, only the method name and
// the authorization header.
var publicMethods = map[string]struct{}{
	"/ratings.User/Authenticate": {},
}

const reflectionServicePrefix = "/grpc.reflection."

// UnaryServerInterceptor builds the gRPC unary interceptor that gates
// every non-public RPC behind a valid bearer token, attaching the
// decoded Claim to the request context on success.
func UnaryServerInterceptor(codec *Codec) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if isPublic(info.FullMethod) {
			return handler(ctx, req)
		}

		token, err := bearerToken(ctx)
		if err != nil {
			return nil, toStatus(err)
		}

		claim, err := codec.Verify(token)
		if err != nil {
			return nil, toStatus(err)
		}

		return handler(withClaim(ctx, claim), req)
	}
}

// toStatus translates an apperr.Error into the gRPC status a client
// actually sees. A raw *apperr.Error has no GRPCStatus method, so
// status.FromError would otherwise report every auth failure as
// codes.Unknown instead of codes.Unauthenticated.
func toStatus(err error) error {
	if err == nil {
		return nil
	}

	appErr, ok := apperr.As(err)
	if !ok {
		log.Error().Err(err).Msg("unclassified error reached the auth boundary")
		return status.Error(codes.Unknown, "internal error")
	}

	if appErr.Cause != nil {
		log.Error().Err(appErr.Cause).Str("kind", appErr.Kind.String()).Str("reason", appErr.Reason).Msg("authentication failed")
	}

	switch appErr.Kind {
	case apperr.InvalidArgument:
		return status.Error(codes.InvalidArgument, appErr.Reason)
	case apperr.Unauthenticated:
		return status.Error(codes.Unauthenticated, "unauthenticated")
	case apperr.NotFound:
		return status.Error(codes.NotFound, appErr.Reason)
	default:
		return status.Error(codes.Unknown, "internal error")
	}
}

func isPublic(fullMethod string) bool {
	if _, ok := publicMethods[fullMethod]; ok {
		return true
	}
	return strings.HasPrefix(fullMethod, reflectionServicePrefix)
}

func bearerToken(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", apperr.Unauthenticatedf("missing authorization header")
	}

	values := md.Get("authorization")
	if len(values) == 0 {
		return "", apperr.Unauthenticatedf("missing authorization header")
	}

	fields := strings.Fields(values[0])
	if len(fields) != 2 || !strings.EqualFold(fields[0], "bearer") {
		return "", apperr.Unauthenticatedf("malformed authorization header")
	}

	return fields[1], nil
}
