package service

import (
	"context"

	"github.com/lintang-b-s/navtraffic/pkg/congestion"
	"github.com/lintang-b-s/navtraffic/pkg/datastructure"
	"github.com/lintang-b-s/navtraffic/pkg/slowtraffic"
)

type SessionStore interface {
	SaveSession(ctx context.Context, session datastructure.Session) error
	SaveSessions(ctx context.Context, sessions []datastructure.Session) error
	GetSession(ctx context.Context, id string) (datastructure.Session, error)
	DeleteSession(ctx context.Context, id string) error
}

type TrafficProcessor interface {
	Process(action congestion.TrafficUpdateAction) (datastructure.Route, bool, error)
}

type SlowTrafficFinder interface {
	FindSlowTrafficSegments(ctx context.Context, progress datastructure.RouteProgress,
		targetRanges []congestion.CongestionRange, opts ...slowtraffic.Option) ([]slowtraffic.SlowTrafficSegment, error)
	FindAndSummarizeSlowTrafficSegments(ctx context.Context, progress datastructure.RouteProgress,
		targetRanges []congestion.CongestionRange, opts ...slowtraffic.Option) ([]slowtraffic.SlowTrafficSegmentSummary, error)
}
