package service

import (
	"time"

	"github.com/canonical/ratings/pb"
)

func toTimestamp(t time.Time) pb.Timestamp {
	return pb.Timestamp{Seconds: t.Unix(), Nanos: int32(t.Nanosecond())}
}
