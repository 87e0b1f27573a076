package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/lintang-b-s/navtraffic/pkg/congestion"
	"github.com/lintang-b-s/navtraffic/pkg/datastructure"
	"github.com/lintang-b-s/navtraffic/pkg/ehorizon"
	"github.com/lintang-b-s/navtraffic/pkg/geo"
	"github.com/lintang-b-s/navtraffic/pkg/guidance"
	"github.com/lintang-b-s/navtraffic/pkg/kv"
	"github.com/lintang-b-s/navtraffic/pkg/routerefresh"
	"github.com/lintang-b-s/navtraffic/pkg/server"
	"github.com/lintang-b-s/navtraffic/pkg/slowtraffic"
	"github.com/lintang-b-s/navtraffic/pkg/snap"
	"go.uber.org/zap"
)

type ActionKind string

const (
	ActionIncrease ActionKind = "increase"
	ActionDecrease ActionKind = "decrease"
	ActionRestore  ActionKind = "restore"
)

type ActionRequest struct {
	Kind          ActionKind
	LegIndex      int
	GeometryIndex int
	SpeedKmh      float64
}

// LocateResult is a location snapped to a leg together with the progress it implies.
type LocateResult struct {
	snap.SnapResult
	LegIndex          int
	StepIndex         int
	IntersectionIndex int
}

type EHorizonResult struct {
	MostProbablePath []int64
	Current          *ehorizon.Edge
	PathAhead        *ehorizon.GraphPath
	// DistanceToMotorwayExit in meters, nil when the driver isn't heading to a motorway exit.
	DistanceToMotorwayExit *float64
}

type TrafficService struct {
	log             *zap.Logger
	store           SessionStore
	processor       TrafficProcessor
	finder          SlowTrafficFinder
	ranges          congestion.CongestionRangeGroup
	snapMaxDistance float64
	now             func() time.Time
	locks           *sessionLocks
}

func NewTrafficService(log *zap.Logger, store SessionStore, processor TrafficProcessor, finder SlowTrafficFinder,
	ranges congestion.CongestionRangeGroup, snapMaxDistance float64) *TrafficService {
	return &TrafficService{
		log:             log,
		store:           store,
		processor:       processor,
		finder:          finder,
		ranges:          ranges,
		snapMaxDistance: snapMaxDistance,
		now:             time.Now,
		locks:           newSessionLocks(),
	}
}

func (ts *TrafficService) newSession(route datastructure.Route) datastructure.Session {
	now := ts.now().UTC()
	id := uuid.NewString()
	if route.ID == "" {
		route.ID = id
	}
	return datastructure.Session{
		ID:        id,
		Route:     guidance.CompleteManeuvers(completeAnnotations(route)),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CreateSession stores route under a new session id.
func (ts *TrafficService) CreateSession(ctx context.Context, route datastructure.Route) (datastructure.Session, error) {
	if len(route.Legs) == 0 {
		return datastructure.Session{}, server.NewErrorf(server.ErrBadParamInput, "route has no legs")
	}
	session := ts.newSession(route)
	if err := ts.store.SaveSession(ctx, session); err != nil {
		ts.log.Error("save session failed", zap.String("session_id", session.ID), zap.Error(err))
		return datastructure.Session{}, server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}
	ts.log.Info("session created", zap.String("session_id", session.ID), zap.String("route_id", session.Route.ID),
		zap.Int("legs", len(session.Route.Legs)))
	return session, nil
}

// ImportSessions stores every route under a new session id in one batch.
func (ts *TrafficService) ImportSessions(ctx context.Context, routes []datastructure.Route) ([]datastructure.Session, error) {
	sessions := make([]datastructure.Session, 0, len(routes))
	for i, route := range routes {
		if len(route.Legs) == 0 {
			return nil, server.NewErrorf(server.ErrBadParamInput, "route %d has no legs", i)
		}
		sessions = append(sessions, ts.newSession(route))
	}
	if err := ts.store.SaveSessions(ctx, sessions); err != nil {
		ts.log.Error("save sessions failed", zap.Int("sessions", len(sessions)), zap.Error(err))
		return nil, server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}
	ts.log.Info("sessions imported", zap.Int("sessions", len(sessions)))
	return sessions, nil
}

func (ts *TrafficService) GetSession(ctx context.Context, id string) (datastructure.Session, error) {
	session, err := ts.store.GetSession(ctx, id)
	if errors.Is(err, kv.ErrNotFound) {
		return datastructure.Session{}, server.WrapErrorf(err, server.ErrNotFound, "session %s not found", id)
	}
	if err != nil {
		ts.log.Error("get session failed", zap.String("session_id", id), zap.Error(err))
		return datastructure.Session{}, server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}
	return session, nil
}

func (ts *TrafficService) DeleteSession(ctx context.Context, id string) error {
	defer ts.locks.lock(id)()

	if _, err := ts.GetSession(ctx, id); err != nil {
		return err
	}
	if err := ts.store.DeleteSession(ctx, id); err != nil {
		ts.log.Error("delete session failed", zap.String("session_id", id), zap.Error(err))
		return server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}
	return nil
}

func (ts *TrafficService) save(ctx context.Context, session datastructure.Session) (datastructure.Session, error) {
	session.UpdatedAt = ts.now().UTC()
	if err := ts.store.SaveSession(ctx, session); err != nil {
		ts.log.Error("save session failed", zap.String("session_id", session.ID), zap.Error(err))
		return datastructure.Session{}, server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}
	return session, nil
}

func progressError(err error) error {
	if errors.Is(err, datastructure.ErrLegIndexOutOfRange) || errors.Is(err, datastructure.ErrGeometryIndexOutOfRange) {
		return server.WrapErrorf(err, server.ErrBadParamInput, "invalid route position")
	}
	return server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
}

// ApplyAction runs one traffic update action against the stored route of the session.
// changed is false when the action left the route as is, the session is then not written.
// Actions and refreshes of one session run one at a time.
func (ts *TrafficService) ApplyAction(ctx context.Context, id string, req ActionRequest) (datastructure.Session, bool, error) {
	defer ts.locks.lock(id)()

	session, err := ts.GetSession(ctx, id)
	if err != nil {
		return datastructure.Session{}, false, err
	}

	action, err := ts.buildAction(session.Route, req)
	if err != nil {
		return datastructure.Session{}, false, err
	}
	if action == nil {
		return session, false, nil
	}

	route, changed, err := ts.processor.Process(action)
	if errors.Is(err, congestion.ErrOverrideNotRestorable) || errors.Is(err, congestion.ErrInvalidOverride) {
		return datastructure.Session{}, false, server.WrapErrorf(err, server.ErrConflict, "traffic override can't be restored")
	}
	if err != nil {
		return datastructure.Session{}, false, server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}
	if !changed {
		return session, false, nil
	}

	session.Route = route
	session, err = ts.save(ctx, session)
	if err != nil {
		return datastructure.Session{}, false, err
	}
	return session, true, nil
}

// buildAction returns a nil action when there is nothing to apply.
func (ts *TrafficService) buildAction(route datastructure.Route, req ActionRequest) (congestion.TrafficUpdateAction, error) {
	switch req.Kind {
	case ActionRestore:
		if route.OverriddenTraffic == nil {
			return nil, nil
		}
		return congestion.RestoreTraffic{Route: route, Override: *route.OverriddenTraffic}, nil
	case ActionIncrease, ActionDecrease:
	default:
		return nil, server.NewErrorf(server.ErrBadParamInput, "unknown action %q", req.Kind)
	}

	if req.SpeedKmh <= 0 || math.IsNaN(req.SpeedKmh) || math.IsInf(req.SpeedKmh, 0) {
		return nil, server.NewErrorf(server.ErrBadParamInput, "speed must be positive")
	}
	progress, err := datastructure.NewRouteLegProgress(route, req.LegIndex, req.GeometryIndex)
	if err != nil {
		return nil, progressError(err)
	}
	speed := congestion.FromKilometersPerHour(req.SpeedKmh)
	if req.Kind == ActionIncrease {
		return congestion.IncreaseTraffic{Route: route, LegProgress: progress, ObservedSpeed: speed}, nil
	}
	return congestion.DecreaseTraffic{ObservedSpeed: speed, LegProgress: progress, Route: route}, nil
}

// Locate snaps a location to the geometry of leg legIndex of the session route.
func (ts *TrafficService) Locate(ctx context.Context, id string, legIndex int, location datastructure.Coordinate) (LocateResult, error) {
	session, err := ts.GetSession(ctx, id)
	if err != nil {
		return LocateResult{}, err
	}
	leg, ok := session.Route.Leg(legIndex)
	if !ok {
		return LocateResult{}, server.NewErrorf(server.ErrBadParamInput, "leg index %d out of range", legIndex)
	}

	snapper, err := snap.NewRouteLegSnapper(leg)
	if errors.Is(err, snap.ErrEmptyGeometry) {
		return LocateResult{}, server.WrapErrorf(err, server.ErrBadParamInput, "leg %d has no geometry", legIndex)
	}
	if err != nil {
		return LocateResult{}, server.WrapErrorf(err, server.ErrBadParamInput, "leg %d geometry can't be decoded", legIndex)
	}

	snapped, err := snapper.Snap(location, ts.snapMaxDistance)
	if errors.Is(err, snap.ErrTooFar) {
		return LocateResult{}, server.WrapErrorf(err, server.ErrNotFound, "location is too far from leg %d", legIndex)
	}
	if err != nil {
		return LocateResult{}, server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}

	progress, err := datastructure.NewRouteLegProgress(session.Route, legIndex, snapped.GeometryIndex)
	if err != nil {
		return LocateResult{}, progressError(err)
	}
	return LocateResult{
		SnapResult:        snapped,
		LegIndex:          legIndex,
		StepIndex:         progress.CurrentStepProgress.StepIndex,
		IntersectionIndex: progress.CurrentStepProgress.IntersectionIndex,
	}, nil
}

// RefreshSession merges refreshed annotations into the session route, see routerefresh.RefreshRoute.
func (ts *TrafficService) RefreshSession(ctx context.Context, id string, refreshed []*datastructure.LegAnnotation,
	legIndex, legGeometryIndex int) (datastructure.Session, error) {
	defer ts.locks.lock(id)()

	session, err := ts.GetSession(ctx, id)
	if err != nil {
		return datastructure.Session{}, err
	}
	route, err := routerefresh.RefreshRoute(session.Route, refreshed, legIndex, legGeometryIndex)
	if err != nil {
		return datastructure.Session{}, progressError(err)
	}
	session.Route = route
	return ts.save(ctx, session)
}

// targetRanges defaults to every band above low.
func (ts *TrafficService) targetRanges(ranges []congestion.CongestionRange) []congestion.CongestionRange {
	if len(ranges) > 0 {
		return ranges
	}
	return []congestion.CongestionRange{ts.ranges.Moderate(), ts.ranges.Heavy(), ts.ranges.Severe()}
}

func (ts *TrafficService) routeProgress(ctx context.Context, id string, legIndex, geometryIndex int) (datastructure.RouteProgress, error) {
	session, err := ts.GetSession(ctx, id)
	if err != nil {
		return datastructure.RouteProgress{}, err
	}
	progress, err := datastructure.NewRouteProgress(session.Route, legIndex, geometryIndex)
	if err != nil {
		return datastructure.RouteProgress{}, progressError(err)
	}
	return progress, nil
}

func (ts *TrafficService) SlowSegments(ctx context.Context, id string, legIndex, geometryIndex int,
	ranges []congestion.CongestionRange, opts ...slowtraffic.Option) ([]slowtraffic.SlowTrafficSegment, error) {
	progress, err := ts.routeProgress(ctx, id, legIndex, geometryIndex)
	if err != nil {
		return nil, err
	}
	segments, err := ts.finder.FindSlowTrafficSegments(ctx, progress, ts.targetRanges(ranges), opts...)
	if err != nil {
		return nil, server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}
	return segments, nil
}

func (ts *TrafficService) SlowSegmentSummaries(ctx context.Context, id string, legIndex, geometryIndex int,
	ranges []congestion.CongestionRange, opts ...slowtraffic.Option) ([]slowtraffic.SlowTrafficSegmentSummary, error) {
	progress, err := ts.routeProgress(ctx, id, legIndex, geometryIndex)
	if err != nil {
		return nil, err
	}
	summaries, err := ts.finder.FindAndSummarizeSlowTrafficSegments(ctx, progress, ts.targetRanges(ranges), opts...)
	if err != nil {
		return nil, server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}
	return summaries, nil
}

// EHorizon evaluates a horizon tree reported for position.
func (ts *TrafficService) EHorizon(horizon ehorizon.Horizon, position ehorizon.GraphPosition) (EHorizonResult, error) {
	if horizon.Start == nil {
		return EHorizonResult{}, server.NewErrorf(server.ErrBadParamInput, "horizon has no start edge")
	}
	result := EHorizonResult{
		MostProbablePath: make([]int64, 0),
		Current:          horizon.Current(position),
	}
	for _, edge := range horizon.MostProbablePath() {
		result.MostProbablePath = append(result.MostProbablePath, edge.ID)
	}
	if path, ok := horizon.MostProbablePathFrom(position); ok {
		result.PathAhead = &path
	}
	if distance, ok := horizon.DistanceToMotorwayExit(position); ok {
		result.DistanceToMotorwayExit = &distance
	}
	return result, nil
}

// Overview is the leg geometry simplified for display, as a precision 5 polyline.
func (ts *TrafficService) Overview(leg datastructure.RouteLeg) (string, error) {
	path, err := leg.Coordinates()
	if err != nil {
		return "", server.WrapErrorf(err, server.ErrBadParamInput, "leg geometry can't be decoded")
	}
	return datastructure.EncodeCoordinates(geo.SimplifyPath(path, geo.OverviewToleranceMeters)), nil
}

// completeAnnotations fills the distance and freeflow speed lists of the annotated legs that
// miss them, from the leg geometry and the road class of the intersections.
func completeAnnotations(route datastructure.Route) datastructure.Route {
	for i, leg := range route.Legs {
		congestionNumeric := leg.CongestionNumeric()
		if congestionNumeric == nil {
			continue
		}
		annotation := *leg.Annotation
		touched := false
		if annotation.Distance == nil {
			path, err := leg.Coordinates()
			if err == nil && len(path) == len(congestionNumeric)+1 {
				annotation.Distance = geo.SegmentDistances(path)
				touched = true
			}
		}
		if annotation.FreeflowSpeed == nil {
			if speeds, ok := roadClassSpeeds(leg, len(congestionNumeric)); ok {
				annotation.FreeflowSpeed = speeds
				touched = true
			}
		}
		if touched {
			route = route.WithLegAnnotation(i, &annotation)
		}
	}
	return route
}

// roadClassSpeeds gives every segment the default speed of the road class of the last
// intersection at or before it. ok is false when no intersection carries a road class.
func roadClassSpeeds(leg datastructure.RouteLeg, segments int) ([]int, bool) {
	intersections := make([]datastructure.StepIntersection, 0)
	known := false
	for _, step := range leg.Steps {
		for _, in := range step.Intersections {
			intersections = append(intersections, in)
			known = known || in.RoadClass != ""
		}
	}
	if !known {
		return nil, false
	}

	speeds := make([]int, segments)
	roadClass := ""
	next := 0
	for i := range speeds {
		for next < len(intersections) && intersections[next].GeometryIndex <= i {
			if intersections[next].RoadClass != "" {
				roadClass = intersections[next].RoadClass
			}
			next++
		}
		speeds[i] = int(math.Round(datastructure.RoadClassFreeFlowSpeed(roadClass)))
	}
	return speeds, true
}
