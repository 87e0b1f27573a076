package guidance

import (
	"testing"

	"github.com/lintang-b-s/navtraffic/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const delta = 0.001

func c(lat, lon float64) datastructure.Coordinate {
	return datastructure.NewCoordinate(lat, lon)
}

func TestTurnModifier(t *testing.T) {
	base := c(0, 0)
	west := c(0, -delta)

	cases := []struct {
		name string
		next datastructure.Coordinate
		want string
	}{
		{"straight", c(0, delta), datastructure.ModifierStraight},
		{"left", c(delta, 0), datastructure.ModifierLeft},
		{"right", c(-delta, 0), datastructure.ModifierRight},
		{"slight left", c(delta*0.5, delta), datastructure.ModifierSlightLeft},
		{"slight right", c(-delta*0.5, delta), datastructure.ModifierSlightRight},
		{"sharp left", c(delta, -delta*0.7), datastructure.ModifierSharpLeft},
		{"sharp right", c(-delta, -delta*0.7), datastructure.ModifierSharpRight},
		{"uturn", c(0, -2*delta), datastructure.ModifierUTurn},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TurnModifier(west, base, tc.next))
		})
	}
}

func TestBearingTo(t *testing.T) {
	assert.InDelta(t, 90, BearingTo(0, 0, 0, delta), 1e-6)
	assert.InDelta(t, 0, BearingTo(0, 0, delta, 0), 1e-6)
	assert.InDelta(t, -90, BearingTo(0, 0, 0, -delta), 1e-6)
	assert.Equal(t, "East", bearingToCompass(90))
	assert.Equal(t, "West", bearingToCompass(-90))
	assert.Equal(t, "North", bearingToCompass(350))
}

func lShapedRoute(secondStreet string) datastructure.Route {
	first := []datastructure.Coordinate{c(0, 0), c(0, delta)}
	second := []datastructure.Coordinate{c(0, delta), c(delta, delta)}
	return datastructure.Route{Legs: []datastructure.RouteLeg{{
		Steps: []datastructure.LegStep{
			{
				Name:          "Jalan Malioboro",
				Geometry:      datastructure.EncodeCoordinates(first),
				Maneuver:      datastructure.StepManeuver{Type: datastructure.ManeuverDepart},
				Intersections: []datastructure.StepIntersection{{GeometryIndex: 0}},
			},
			{
				Name:          secondStreet,
				Geometry:      datastructure.EncodeCoordinates(second),
				Maneuver:      datastructure.StepManeuver{Type: datastructure.ManeuverTurn},
				Intersections: []datastructure.StepIntersection{{GeometryIndex: 1}},
			},
			{
				Maneuver:      datastructure.StepManeuver{Type: datastructure.ManeuverArrive},
				Intersections: []datastructure.StepIntersection{{GeometryIndex: 2}},
			},
		},
	}}}
}

func TestCompleteManeuvers(t *testing.T) {
	route := lShapedRoute("Jalan Mataram")
	got := CompleteManeuvers(route)

	steps := got.Legs[0].Steps
	require.Len(t, steps, 3)
	assert.Equal(t, "", steps[0].Maneuver.Modifier)
	assert.Equal(t, "Head East toward Jalan Malioboro", steps[0].Maneuver.Instruction)
	assert.Equal(t, datastructure.ModifierLeft, steps[1].Maneuver.Modifier)
	assert.Equal(t, "Turn left onto Jalan Mataram", steps[1].Maneuver.Instruction)
	assert.Equal(t, "You have arrived at your destination", steps[2].Maneuver.Instruction)

	// input is not modified
	assert.Equal(t, "", route.Legs[0].Steps[1].Maneuver.Modifier)
	assert.Equal(t, "", route.Legs[0].Steps[1].Maneuver.Instruction)
}

func TestCompleteManeuversKeepsExistingValues(t *testing.T) {
	route := lShapedRoute("")
	route.Legs[0].Steps[1].Maneuver.Modifier = datastructure.ModifierSlightLeft
	route.Legs[0].Steps[0].Maneuver.Instruction = "Drive east"

	steps := CompleteManeuvers(route).Legs[0].Steps
	assert.Equal(t, "Drive east", steps[0].Maneuver.Instruction)
	assert.Equal(t, datastructure.ModifierSlightLeft, steps[1].Maneuver.Modifier)
	assert.Equal(t, "Turn slight left", steps[1].Maneuver.Instruction)
}

func TestCompleteManeuversSkipsBrokenGeometry(t *testing.T) {
	route := lShapedRoute("Jalan Mataram")
	route.Legs[0].Steps[0].Geometry = "\x01"

	steps := CompleteManeuvers(route).Legs[0].Steps
	assert.Equal(t, "", steps[0].Maneuver.Instruction)
	assert.Equal(t, "", steps[1].Maneuver.Modifier)
}

func TestDescribeFork(t *testing.T) {
	m := datastructure.StepManeuver{Type: datastructure.ManeuverFork, Modifier: datastructure.ModifierSlightRight}
	assert.Equal(t, "Keep right to continue on Tol Jagorawi", describe(m, "Tol Jagorawi", ""))
	assert.Equal(t, "Make U-turn", describe(datastructure.StepManeuver{Type: datastructure.ManeuverTurn, Modifier: datastructure.ModifierUTurn}, "", ""))
}
