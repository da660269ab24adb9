package service

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/canonical/ratings/apperr"
	"github.com/canonical/ratings/log"
)

// toStatus translates an apperr.Error (or any error) into the gRPC
// status §7 maps it to. Cause details are logged, never sent to the
// client — only Reason crosses the wire for non-Internal kinds, and a
// fixed generic message is sent for Internal/Unauthenticated.
func toStatus(err error) error {
	if err == nil {
		return nil
	}

	appErr, ok := apperr.As(err)
	if !ok {
		log.Error().Err(err).Msg("unclassified error reached the service boundary")
		return status.Error(codes.Unknown, "internal error")
	}

	if appErr.Cause != nil {
		log.Error().Err(appErr.Cause).Str("kind", appErr.Kind.String()).Str("reason", appErr.Reason).Msg("request failed")
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
