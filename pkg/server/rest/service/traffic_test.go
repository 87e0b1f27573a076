package service

import (
	"context"
	"testing"

	"github.com/lintang-b-s/navtraffic/pkg/congestion"
	"github.com/lintang-b-s/navtraffic/pkg/datastructure"
	"github.com/lintang-b-s/navtraffic/pkg/ehorizon"
	"github.com/lintang-b-s/navtraffic/pkg/kv"
	"github.com/lintang-b-s/navtraffic/pkg/server"
	"github.com/lintang-b-s/navtraffic/pkg/slowtraffic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	segments   = 20
	segmentLon = 0.00315 // about 350 m on the equator
)

func ints(value, n int) []int {
	values := make([]int, n)
	for i := range values {
		values[i] = value
	}
	return values
}

func floats(value float64, n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = value
	}
	return values
}

func path(from, to int) []datastructure.Coordinate {
	coords := make([]datastructure.Coordinate, 0, to-from+1)
	for i := from; i <= to; i++ {
		coords = append(coords, datastructure.NewCoordinate(0, float64(i)*segmentLon))
	}
	return coords
}

func intersection(gi int) datastructure.StepIntersection {
	return datastructure.StepIntersection{
		Location:      datastructure.NewCoordinate(0, float64(gi)*segmentLon),
		GeometryIndex: gi,
		RoadClass:     datastructure.RoadClassMotorway,
	}
}

// testRoute is a straight motorway leg of 20 segments split in two steps at geometry index 10.
func testRoute(congestionNumeric []int, annotation *datastructure.LegAnnotation) datastructure.Route {
	if annotation == nil {
		annotation = &datastructure.LegAnnotation{
			Distance: floats(350, segments),
			Duration: floats(14, segments),
		}
	}
	annotation.CongestionNumeric = congestionNumeric
	leg := datastructure.RouteLeg{
		Distance:   7000,
		Duration:   280,
		Summary:    "Tol Trans Jawa",
		Annotation: annotation,
		Steps: []datastructure.LegStep{
			{
				Distance:      3500,
				Duration:      140,
				Geometry:      datastructure.EncodeCoordinates(path(0, 10)),
				Maneuver:      datastructure.StepManeuver{Type: datastructure.ManeuverDepart},
				Intersections: []datastructure.StepIntersection{intersection(0), intersection(1), intersection(2)},
			},
			{
				Distance:      3500,
				Duration:      140,
				Geometry:      datastructure.EncodeCoordinates(path(10, 20)),
				Maneuver:      datastructure.StepManeuver{Type: datastructure.ManeuverTurn},
				Intersections: []datastructure.StepIntersection{intersection(10), intersection(11)},
			},
		},
	}
	return datastructure.Route{Distance: 7000, Duration: 280, Legs: []datastructure.RouteLeg{leg}}
}

func newTestService(t *testing.T) *TrafficService {
	t.Helper()
	db, err := kv.OpenBadger("", true)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ranges := congestion.DefaultCongestionRangeGroup()
	processor := congestion.NewProcessor(ranges, congestion.DefaultHandlerOptions(), zap.NewNop())
	return NewTrafficService(zap.NewNop(), kv.NewSessionStore(db), processor, slowtraffic.NewFinder(), ranges, 50)
}

func assertCode(t *testing.T, code server.ErrorCode, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, server.CodeOf(err))
}

func TestCreateAndGetSession(t *testing.T) {
	ts := newTestService(t)
	ctx := context.Background()

	created, err := ts.CreateSession(ctx, testRoute(ints(90, segments), nil))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, created.ID, created.Route.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := ts.GetSession(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	require.NoError(t, ts.DeleteSession(ctx, created.ID))
	_, err = ts.GetSession(ctx, created.ID)
	assertCode(t, server.ErrNotFound, err)
	assertCode(t, server.ErrNotFound, ts.DeleteSession(ctx, created.ID))
}

func TestCreateSessionWithoutLegs(t *testing.T) {
	ts := newTestService(t)
	_, err := ts.CreateSession(context.Background(), datastructure.Route{})
	assertCode(t, server.ErrBadParamInput, err)
}

func TestCreateSessionCompletesAnnotations(t *testing.T) {
	ts := newTestService(t)
	route := testRoute(ints(90, segments), &datastructure.LegAnnotation{})

	session, err := ts.CreateSession(context.Background(), route)
	require.NoError(t, err)

	annotation := session.Route.Legs[0].Annotation
	require.Len(t, annotation.Distance, segments)
	for _, d := range annotation.Distance {
		assert.InDelta(t, 350.0, d, 1.0)
	}
	assert.Equal(t, ints(95, segments), annotation.FreeflowSpeed)
	assert.Nil(t, route.Legs[0].Annotation.Distance)

	steps := session.Route.Legs[0].Steps
	assert.Equal(t, "Head East", steps[0].Maneuver.Instruction)
	assert.Equal(t, datastructure.ModifierStraight, steps[1].Maneuver.Modifier)
	assert.Equal(t, "Continue", steps[1].Maneuver.Instruction)
}

func TestImportSessions(t *testing.T) {
	ts := newTestService(t)
	ctx := context.Background()

	sessions, err := ts.ImportSessions(ctx, []datastructure.Route{
		testRoute(ints(90, segments), nil),
		testRoute(ints(10, segments), nil),
	})
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.NotEqual(t, sessions[0].ID, sessions[1].ID)
	for _, want := range sessions {
		got, err := ts.GetSession(ctx, want.ID)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err = ts.ImportSessions(ctx, []datastructure.Route{testRoute(ints(90, segments), nil), {}})
	assertCode(t, server.ErrBadParamInput, err)
}

func TestApplyDecreaseThenRestore(t *testing.T) {
	ts := newTestService(t)
	ctx := context.Background()
	created, err := ts.CreateSession(ctx, testRoute(ints(90, segments), nil))
	require.NoError(t, err)

	decrease := ActionRequest{Kind: ActionDecrease, LegIndex: 0, GeometryIndex: 0, SpeedKmh: 80}
	session, changed, err := ts.ApplyAction(ctx, created.ID, decrease)
	require.NoError(t, err)
	require.True(t, changed)

	want := append(ints(59, 8), ints(90, segments-8)...)
	assert.Equal(t, want, session.Route.Legs[0].CongestionNumeric())
	require.NotNil(t, session.Route.OverriddenTraffic)
	assert.Equal(t, datastructure.NewCongestionNumericOverride(0, 0, 8, ints(90, 8)), *session.Route.OverriddenTraffic)

	stored, err := ts.GetSession(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, session, stored)

	_, changed, err = ts.ApplyAction(ctx, created.ID, decrease)
	require.NoError(t, err)
	assert.False(t, changed)

	session, changed, err = ts.ApplyAction(ctx, created.ID, ActionRequest{Kind: ActionRestore})
	require.NoError(t, err)
	require.True(t, changed)
	assert.Equal(t, ints(90, segments), session.Route.Legs[0].CongestionNumeric())
	assert.Nil(t, session.Route.OverriddenTraffic)

	_, changed, err = ts.ApplyAction(ctx, created.ID, ActionRequest{Kind: ActionRestore})
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestApplyIncreaseCannotBeRestored(t *testing.T) {
	ts := newTestService(t)
	ctx := context.Background()
	created, err := ts.CreateSession(ctx, testRoute(ints(10, segments), nil))
	require.NoError(t, err)

	session, changed, err := ts.ApplyAction(ctx, created.ID, ActionRequest{Kind: ActionIncrease, SpeedKmh: 80})
	require.NoError(t, err)
	require.True(t, changed)
	assert.Equal(t, 40, session.Route.Legs[0].CongestionNumeric()[0])
	require.NotNil(t, session.Route.OverriddenTraffic)
	assert.False(t, session.Route.OverriddenTraffic.Restorable())

	_, _, err = ts.ApplyAction(ctx, created.ID, ActionRequest{Kind: ActionRestore})
	assertCode(t, server.ErrConflict, err)
}

func TestApplyActionBadInput(t *testing.T) {
	ts := newTestService(t)
	ctx := context.Background()
	created, err := ts.CreateSession(ctx, testRoute(ints(90, segments), nil))
	require.NoError(t, err)

	cases := map[string]ActionRequest{
		"unknown kind":      {Kind: "accelerate", SpeedKmh: 80},
		"zero speed":        {Kind: ActionDecrease},
		"leg index":         {Kind: ActionDecrease, LegIndex: 1, SpeedKmh: 80},
		"geometry index":    {Kind: ActionIncrease, GeometryIndex: segments, SpeedKmh: 80},
		"negative geometry": {Kind: ActionIncrease, GeometryIndex: -1, SpeedKmh: 80},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := ts.ApplyAction(ctx, created.ID, req)
			assertCode(t, server.ErrBadParamInput, err)
		})
	}

	_, _, err = ts.ApplyAction(ctx, "missing", ActionRequest{Kind: ActionDecrease, SpeedKmh: 80})
	assertCode(t, server.ErrNotFound, err)
}

func TestLocate(t *testing.T) {
	ts := newTestService(t)
	ctx := context.Background()
	created, err := ts.CreateSession(ctx, testRoute(ints(90, segments), nil))
	require.NoError(t, err)

	result, err := ts.Locate(ctx, created.ID, 0, datastructure.NewCoordinate(0.0001, 3.5*segmentLon))
	require.NoError(t, err)
	assert.Equal(t, 3, result.GeometryIndex)
	assert.Equal(t, 0, result.StepIndex)
	assert.Equal(t, 2, result.IntersectionIndex)
	assert.InDelta(t, 11.1, result.DistanceMeters, 0.5)

	result, err = ts.Locate(ctx, created.ID, 0, datastructure.NewCoordinate(0, 12.5*segmentLon))
	require.NoError(t, err)
	assert.Equal(t, 12, result.GeometryIndex)
	assert.Equal(t, 1, result.StepIndex)
	assert.Equal(t, 1, result.IntersectionIndex)

	_, err = ts.Locate(ctx, created.ID, 0, datastructure.NewCoordinate(0.01, 3.5*segmentLon))
	assertCode(t, server.ErrNotFound, err)
	_, err = ts.Locate(ctx, created.ID, 2, datastructure.NewCoordinate(0, 0))
	assertCode(t, server.ErrBadParamInput, err)
}

func TestRefreshSession(t *testing.T) {
	ts := newTestService(t)
	ctx := context.Background()
	created, err := ts.CreateSession(ctx, testRoute(ints(90, segments), nil))
	require.NoError(t, err)

	refreshed := []*datastructure.LegAnnotation{{CongestionNumeric: ints(10, segments-5)}}
	session, err := ts.RefreshSession(ctx, created.ID, refreshed, 0, 5)
	require.NoError(t, err)
	assert.Equal(t, append(ints(90, 5), ints(10, segments-5)...), session.Route.Legs[0].CongestionNumeric())
	assert.Equal(t, floats(350, segments), session.Route.Legs[0].Annotation.Distance)

	stored, err := ts.GetSession(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, session.Route, stored.Route)

	_, err = ts.RefreshSession(ctx, created.ID, refreshed, 3, 0)
	assertCode(t, server.ErrBadParamInput, err)
}

func TestSlowSegments(t *testing.T) {
	ts := newTestService(t)
	ctx := context.Background()
	values := append(ints(10, 4), ints(90, 6)...)
	values = append(values, ints(50, 10)...)
	created, err := ts.CreateSession(ctx, testRoute(values, nil))
	require.NoError(t, err)

	found, err := ts.SlowSegments(ctx, created.ID, 0, 2, nil)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, slowtraffic.GeometryRange{From: 4, To: 9}, found[0].GeometryRange)
	assert.Equal(t, congestion.NewCongestionRange(80, 100), found[0].CongestionRange)
	assert.InDelta(t, 700.0, found[0].DistanceToSegmentMeters, 1e-9)
	assert.Equal(t, slowtraffic.GeometryRange{From: 10, To: 19}, found[1].GeometryRange)

	severe, err := ts.SlowSegments(ctx, created.ID, 0, 0, []congestion.CongestionRange{congestion.NewCongestionRange(80, 100)})
	require.NoError(t, err)
	require.Len(t, severe, 1)

	summaries, err := ts.SlowSegmentSummaries(ctx, created.ID, 0, 0, nil)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, slowtraffic.GeometryRange{From: 4, To: 19}, summaries[0].GeometryRange)
	assert.Len(t, summaries[0].Traits, 2)

	limited, err := ts.SlowSegments(ctx, created.ID, 0, 0, nil, slowtraffic.WithSegmentsLimit(1))
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	_, err = ts.SlowSegments(ctx, created.ID, 0, segments, nil)
	assertCode(t, server.ErrBadParamInput, err)
}

func TestEHorizon(t *testing.T) {
	ts := newTestService(t)
	motorway := func(length float64) *ehorizon.EdgeMetadata {
		return &ehorizon.EdgeMetadata{Length: length, Motorway: true}
	}
	exit := &ehorizon.Edge{ID: 3, Level: 0, Probability: 0.8, Metadata: &ehorizon.EdgeMetadata{Length: 50}}
	branch := &ehorizon.Edge{ID: 4, Level: 1, Probability: 0.2, Metadata: motorway(400)}
	second := &ehorizon.Edge{ID: 2, Level: 0, Probability: 1, Metadata: motorway(300), Out: []*ehorizon.Edge{branch, exit}}
	horizon := ehorizon.Horizon{Start: &ehorizon.Edge{ID: 1, Level: 0, Probability: 1, Metadata: motorway(200), Out: []*ehorizon.Edge{second}}}

	result, err := ts.EHorizon(horizon, ehorizon.GraphPosition{EdgeID: 1, PercentAlong: 0.5})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, result.MostProbablePath)
	require.NotNil(t, result.Current)
	assert.Equal(t, int64(1), result.Current.ID)
	require.NotNil(t, result.PathAhead)
	assert.Equal(t, []int64{1, 2, 3}, result.PathAhead.Edges)
	assert.InDelta(t, 450.0, result.PathAhead.Length, 1e-9)
	require.NotNil(t, result.DistanceToMotorwayExit)
	assert.InDelta(t, 400.0, *result.DistanceToMotorwayExit, 1e-9)

	off, err := ts.EHorizon(horizon, ehorizon.GraphPosition{EdgeID: 4})
	require.NoError(t, err)
	assert.Nil(t, off.PathAhead)
	assert.Nil(t, off.DistanceToMotorwayExit)

	_, err = ts.EHorizon(ehorizon.Horizon{}, ehorizon.GraphPosition{})
	assertCode(t, server.ErrBadParamInput, err)
}

func TestOverview(t *testing.T) {
	ts := newTestService(t)
	route := testRoute(ints(90, segments), nil)

	overview, err := ts.Overview(route.Legs[0])
	require.NoError(t, err)
	coords, err := datastructure.DecodeCoordinates(overview)
	require.NoError(t, err)
	require.Len(t, coords, 2)
	assert.Equal(t, datastructure.NewCoordinate(0, 0), coords[0])
	assert.InDelta(t, float64(segments)*segmentLon, coords[1].Lon, 1e-9)
}
