package congestion

import (
	"github.com/lintang-b-s/navtraffic/pkg/datastructure"
)

// legState is the part of a leg the handlers read.
type legState struct {
	legIndex      int
	geometryIndex int
	congestion    []int
	distances     []float64
}

// resolveLeg reads the congestion of the leg from the route and the per segment distances
// from the progress snapshot. ok is false when the position or the annotations can't be used.
func resolveLeg(route datastructure.Route, progress datastructure.RouteLegProgress) (legState, bool) {
	leg, ok := route.Leg(progress.LegIndex)
	if !ok {
		return legState{}, false
	}
	congestion := leg.CongestionNumeric()
	if congestion == nil {
		return legState{}, false
	}
	gi := progress.GeometryIndex
	if gi < 0 || gi >= len(congestion) {
		return legState{}, false
	}
	distances := progress.RouteLeg.SegmentDistances()
	if distances == nil {
		distances = leg.SegmentDistances()
	}
	if len(distances) < len(congestion) {
		return legState{}, false
	}
	return legState{
		legIndex:      progress.LegIndex,
		geometryIndex: gi,
		congestion:    congestion,
		distances:     distances,
	}, true
}

// segmentsWithinDistance counts the segments starting at from that are entered before
// budget meters are covered.
func segmentsWithinDistance(distances []float64, from, to int, budget float64) int {
	count := 0
	covered := 0.0
	for i := from; i < to && i < len(distances); i++ {
		if covered >= budget {
			break
		}
		covered += distances[i]
		count++
	}
	return count
}

// forwardIntersections returns the intersections of the current step starting at the
// current intersection, followed by the intersections of the upcoming step.
func forwardIntersections(progress datastructure.RouteLegProgress) []datastructure.StepIntersection {
	current := progress.CurrentStepProgress.Step.Intersections
	from := progress.CurrentStepProgress.IntersectionIndex
	if from < 0 || from > len(current) {
		from = len(current)
	}
	out := make([]datastructure.StepIntersection, 0, len(current)-from)
	out = append(out, current[from:]...)
	if progress.UpcomingStep != nil {
		out = append(out, progress.UpcomingStep.Intersections...)
	}
	return out
}

// capEnd lowers end to index when index lies strictly inside (gi, end).
func capEnd(end, gi, index int) int {
	if index > gi && index < end {
		return index
	}
	return end
}

func copyInts(values []int) []int {
	out := make([]int, len(values))
	copy(out, values)
	return out
}
