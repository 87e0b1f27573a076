package datastructure

import "errors"

var (
	ErrLegIndexOutOfRange      = errors.New("leg index out of range")
	ErrGeometryIndexOutOfRange = errors.New("geometry index out of range")
)

// RouteStepProgress is the position of the driver inside one step of a leg.
type RouteStepProgress struct {
	StepIndex         int
	IntersectionIndex int
	Step              LegStep
}

// RouteLegProgress is a read only snapshot of the driver position inside a leg.
type RouteLegProgress struct {
	LegIndex            int
	GeometryIndex       int
	RouteLeg            RouteLeg
	CurrentStepProgress RouteStepProgress
	UpcomingStep        *LegStep
}

type RouteProgress struct {
	Route              Route
	CurrentLegProgress RouteLegProgress
}

// NewRouteLegProgress builds the progress snapshot of a driver located at geometryIndex of
// leg legIndex. The current step is the last step whose first intersection is at or before
// geometryIndex, the current intersection is the last one of that step at or before it.
func NewRouteLegProgress(route Route, legIndex, geometryIndex int) (RouteLegProgress, error) {
	leg, ok := route.Leg(legIndex)
	if !ok {
		return RouteLegProgress{}, ErrLegIndexOutOfRange
	}
	if geometryIndex < 0 {
		return RouteLegProgress{}, ErrGeometryIndexOutOfRange
	}
	if congestion := leg.CongestionNumeric(); congestion != nil && geometryIndex >= len(congestion) {
		return RouteLegProgress{}, ErrGeometryIndexOutOfRange
	}

	stepIndex := 0
	for i, step := range leg.Steps {
		if len(step.Intersections) == 0 {
			continue
		}
		if step.Intersections[0].GeometryIndex > geometryIndex {
			break
		}
		stepIndex = i
	}

	progress := RouteLegProgress{
		LegIndex:      legIndex,
		GeometryIndex: geometryIndex,
		RouteLeg:      leg,
	}
	if len(leg.Steps) == 0 {
		return progress, nil
	}

	step := leg.Steps[stepIndex]
	intersectionIndex := 0
	for i, intersection := range step.Intersections {
		if intersection.GeometryIndex > geometryIndex {
			break
		}
		intersectionIndex = i
	}
	progress.CurrentStepProgress = RouteStepProgress{
		StepIndex:         stepIndex,
		IntersectionIndex: intersectionIndex,
		Step:              step,
	}
	if stepIndex+1 < len(leg.Steps) {
		upcoming := leg.Steps[stepIndex+1]
		progress.UpcomingStep = &upcoming
	}
	return progress, nil
}

// NewRouteProgress is NewRouteLegProgress bundled with its route.
func NewRouteProgress(route Route, legIndex, geometryIndex int) (RouteProgress, error) {
	legProgress, err := NewRouteLegProgress(route, legIndex, geometryIndex)
	if err != nil {
		return RouteProgress{}, err
	}
	return RouteProgress{Route: route, CurrentLegProgress: legProgress}, nil
}
