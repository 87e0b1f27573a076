package ehorizon_test

import (
	"testing"

	"github.com/lintang-b-s/navtraffic/pkg/ehorizon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func motorway(length float64) *ehorizon.EdgeMetadata {
	return &ehorizon.EdgeMetadata{Length: length, Motorway: true, RoadClass: ehorizon.RoadClassMotorway}
}

func primary(length float64) *ehorizon.EdgeMetadata {
	return &ehorizon.EdgeMetadata{Length: length, RoadClass: ehorizon.RoadClassPrimary}
}

func testHorizon() ehorizon.Horizon {
	// 1 - 2 - 4 - 6, with 3 branching off 2 and 5 off 4
	six := &ehorizon.Edge{ID: 6, Level: 0, Probability: 0.9, Metadata: primary(100)}
	five := &ehorizon.Edge{ID: 5, Level: 1, Probability: 0.1, Metadata: primary(50)}
	four := &ehorizon.Edge{ID: 4, Level: 0, Probability: 0.8, Out: []*ehorizon.Edge{five, six}, Metadata: motorway(300)}
	three := &ehorizon.Edge{ID: 3, Level: 1, Probability: 0.2, Metadata: primary(80)}
	two := &ehorizon.Edge{ID: 2, Level: 0, Probability: 0.8, Out: []*ehorizon.Edge{three, four}, Metadata: motorway(200)}
	one := &ehorizon.Edge{ID: 1, Level: 0, Probability: 1, Out: []*ehorizon.Edge{two}, Metadata: motorway(100)}
	return ehorizon.Horizon{Start: one}
}

func ids(edges []*ehorizon.Edge) []int64 {
	out := make([]int64, len(edges))
	for i, e := range edges {
		out[i] = e.ID
	}
	return out
}

func TestMostProbablePath(t *testing.T) {
	h := testHorizon()

	assert.Equal(t, []int64{1, 2, 4, 6}, ids(h.MostProbablePath()))
	assert.Empty(t, ehorizon.Horizon{}.MostProbablePath())
}

func TestCurrent(t *testing.T) {
	h := testHorizon()

	current := h.Current(ehorizon.GraphPosition{EdgeID: 5, PercentAlong: 0.5})
	require.NotNil(t, current)
	assert.Equal(t, int64(5), current.ID)
	assert.False(t, current.IsMpp())

	assert.Nil(t, h.Current(ehorizon.GraphPosition{EdgeID: 42}))
}

func TestEdges(t *testing.T) {
	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6}, ids(testHorizon().Edges()))
}

func TestMostProbablePathFrom(t *testing.T) {
	path, ok := testHorizon().MostProbablePathFrom(ehorizon.GraphPosition{EdgeID: 2, PercentAlong: 0.5})
	require.True(t, ok)

	assert.Equal(t, []int64{2, 4, 6}, path.Edges)
	assert.InDelta(t, 100.0+300.0+100.0, path.Length, 1e-9)
	assert.Equal(t, 0.5, path.PercentAlongBegin)

	_, ok = testHorizon().MostProbablePathFrom(ehorizon.GraphPosition{EdgeID: 3})
	assert.False(t, ok)
}

func TestDistanceToMotorwayExit(t *testing.T) {
	h := testHorizon()

	distance, ok := h.DistanceToMotorwayExit(ehorizon.GraphPosition{EdgeID: 1, PercentAlong: 0.25})
	require.True(t, ok)
	assert.InDelta(t, 75.0+200.0+300.0, distance, 1e-9)

	_, ok = h.DistanceToMotorwayExit(ehorizon.GraphPosition{EdgeID: 6})
	assert.False(t, ok)

	_, ok = h.DistanceToMotorwayExit(ehorizon.GraphPosition{EdgeID: 3})
	assert.False(t, ok)
}
