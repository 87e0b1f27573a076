package congestion

import (
	"github.com/lintang-b-s/navtraffic/pkg/datastructure"
)

// DecreaseHandler resets the congestion ahead of a driver who moves slower than free flow,
// so the local slowdown is not counted twice on top of the route congestion.
type DecreaseHandler struct {
	ranges CongestionRangeGroup
	opts   HandlerOptions
}

func NewDecreaseHandler(ranges CongestionRangeGroup, opts HandlerOptions) *DecreaseHandler {
	return &DecreaseHandler{ranges: ranges, opts: opts.withDefaults()}
}

// Handle rewrites the window starting at the current geometry index: severe values become
// the top of the moderate band, moderate and heavy values the floor of the low band.
// The returned bool is false when the route is left unchanged.
func (h *DecreaseHandler) Handle(action DecreaseTraffic) (datastructure.Route, bool, error) {
	route := action.Route
	progress := action.LegProgress

	leg, ok := resolveLeg(route, progress)
	if !ok {
		return route, false, nil
	}
	gi := leg.geometryIndex

	// already reset from here on
	if o := route.OverriddenTraffic; o != nil && o.LegIndex == leg.legIndex && o.StartIndex >= gi {
		return route, false, nil
	}
	if sev := h.ranges.Classify(leg.congestion[gi]); sev == Low || sev == Unknown {
		return route, false, nil
	}

	end := h.windowEnd(leg, progress, action.ObservedSpeed)
	length := end - gi
	if length <= 0 {
		return route, false, nil
	}

	values := copyInts(leg.congestion)
	for i := gi; i < end; i++ {
		switch h.ranges.Classify(values[i]) {
		case Severe:
			values[i] = h.ranges.Moderate().Last
		case Moderate, Heavy:
			values[i] = h.ranges.Low().First
		}
	}

	override := datastructure.NewCongestionNumericOverride(leg.legIndex, gi, length, copyInts(leg.congestion[gi:end]))
	updated := route.WithLegCongestionNumeric(leg.legIndex, values).WithOverriddenTraffic(&override)
	return updated, true, nil
}

// windowEnd is the exclusive end of the rewritten window.
func (h *DecreaseHandler) windowEnd(leg legState, progress datastructure.RouteLegProgress, speed MetersPerSecond) int {
	gi := leg.geometryIndex
	end := gi + segmentsWithinDistance(leg.distances, gi, len(leg.congestion), speed.DistanceIn(h.opts.LookaheadTime))

	// stop two intersections after an on ramp
	steps := progress.RouteLeg.Steps
	stepIndex := progress.CurrentStepProgress.StepIndex
	current := progress.CurrentStepProgress.Step
	if stepIndex >= 1 && stepIndex-1 < len(steps) && steps[stepIndex-1].Maneuver.Type == datastructure.ManeuverOnRamp &&
		len(current.Intersections) >= 2 {
		end = capEnd(end, gi, current.Intersections[1].GeometryIndex)
	}

	// stop before the exit from the motorway
	for _, intersection := range forwardIntersections(progress) {
		if intersection.GeometryIndex > gi && intersection.HasLaneIndication(datastructure.ModifierSlightRight) {
			end = capEnd(end, gi, intersection.GeometryIndex)
			break
		}
	}

	if progress.UpcomingStep != nil && len(progress.UpcomingStep.Intersections) > 0 {
		end = capEnd(end, gi, progress.UpcomingStep.Intersections[0].GeometryIndex)
	}
	return end
}
