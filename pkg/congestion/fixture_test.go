package congestion_test

import (
	"github.com/lintang-b-s/navtraffic/pkg/congestion"
	"github.com/lintang-b-s/navtraffic/pkg/datastructure"
)

var defaultRanges = congestion.DefaultCongestionRangeGroup()

type legFixture struct {
	geometryIndex int
	speedKmh      float64
	// previous step carries an on ramp maneuver
	onRampOnFirstStep bool
	// geometry index of an intersection with a slight right lane, -1 for none
	exitFromMotorwayIndex int
	// geometry index of a non motorway intersection, -1 for none
	nonMotorwayIndex          int
	upcomingFirstIntersection int
	override                  *datastructure.CongestionNumericOverride
}

func defaultFixture() legFixture {
	return legFixture{
		speedKmh:                  100,
		exitFromMotorwayIndex:     -1,
		nonMotorwayIndex:          -1,
		upcomingFirstIntersection: 100,
	}
}

func uniform(value, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = value
	}
	return out
}

func (f legFixture) build(congestionNumeric []int) (datastructure.Route, datastructure.RouteLegProgress) {
	distances := make([]float64, len(congestionNumeric))
	for i := range distances {
		distances[i] = 350
	}

	firstStep := datastructure.LegStep{}
	if f.onRampOnFirstStep {
		firstStep.Maneuver.Type = datastructure.ManeuverOnRamp
	}

	secondStep := datastructure.LegStep{
		Intersections: []datastructure.StepIntersection{
			{GeometryIndex: 3},
			{GeometryIndex: 4},
		},
	}
	if f.exitFromMotorwayIndex >= 0 {
		secondStep.Intersections = append(secondStep.Intersections, datastructure.StepIntersection{
			GeometryIndex: f.exitFromMotorwayIndex,
			Lanes: []datastructure.IntersectionLane{
				{Indications: []string{datastructure.ModifierSlightRight}},
			},
		})
	}
	if f.nonMotorwayIndex >= 0 {
		secondStep.Intersections = append(secondStep.Intersections, datastructure.StepIntersection{
			GeometryIndex: f.nonMotorwayIndex,
			RoadClass:     datastructure.RoadClassPrimary,
		})
	}

	leg := datastructure.RouteLeg{
		Annotation: &datastructure.LegAnnotation{
			Distance:          distances,
			CongestionNumeric: congestionNumeric,
		},
		Steps: []datastructure.LegStep{firstStep, secondStep},
	}
	route := datastructure.Route{
		ID:                "test-route",
		Legs:              []datastructure.RouteLeg{leg},
		OverriddenTraffic: f.override,
	}
	progress := datastructure.RouteLegProgress{
		LegIndex:      0,
		GeometryIndex: f.geometryIndex,
		RouteLeg:      leg,
		CurrentStepProgress: datastructure.RouteStepProgress{
			StepIndex:         1,
			IntersectionIndex: 0,
			Step:              secondStep,
		},
		UpcomingStep: &datastructure.LegStep{
			Intersections: []datastructure.StepIntersection{
				{GeometryIndex: f.upcomingFirstIntersection},
			},
		},
	}
	return route, progress
}

func (f legFixture) decrease(congestionNumeric []int) congestion.DecreaseTraffic {
	route, progress := f.build(congestionNumeric)
	return congestion.DecreaseTraffic{
		ObservedSpeed: congestion.FromKilometersPerHour(f.speedKmh),
		LegProgress:   progress,
		Route:         route,
	}
}

func (f legFixture) increase(congestionNumeric []int) congestion.IncreaseTraffic {
	route, progress := f.build(congestionNumeric)
	return congestion.IncreaseTraffic{
		Route:         route,
		LegProgress:   progress,
		ObservedSpeed: congestion.FromKilometersPerHour(f.speedKmh),
	}
}
