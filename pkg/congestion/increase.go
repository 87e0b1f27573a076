package congestion

import (
	"github.com/lintang-b-s/navtraffic/pkg/datastructure"
)

// IncreaseHandler raises the congestion ahead of the driver by one band.
type IncreaseHandler struct {
	ranges CongestionRangeGroup
	opts   HandlerOptions
}

func NewIncreaseHandler(ranges CongestionRangeGroup, opts HandlerOptions) *IncreaseHandler {
	return &IncreaseHandler{ranges: ranges, opts: opts.withDefaults()}
}

// Handle scans at most IncreaseScanSegments segments from the current geometry index, stopping
// before the first intersection that leaves the motorway. Inside the scanned window the
// segments within the look-ahead distance are raised to the floor of the next band.
//
// The recorded override spans the scanned window even when fewer segments were rewritten,
// and carries no original values so it can't be restored.
func (h *IncreaseHandler) Handle(action IncreaseTraffic) (datastructure.Route, bool, error) {
	route := action.Route
	progress := action.LegProgress

	leg, ok := resolveLeg(route, progress)
	if !ok {
		return route, false, nil
	}
	gi := leg.geometryIndex

	end := h.scanEnd(leg, progress)
	window := end - gi
	if window <= 0 {
		return route, false, nil
	}

	rewritten := segmentsWithinDistance(leg.distances, gi, end, action.ObservedSpeed.DistanceIn(h.opts.LookaheadTime))
	values := copyInts(leg.congestion)
	for i := gi; i < gi+rewritten; i++ {
		sev := h.ranges.Classify(values[i])
		next := Next(sev)
		if next == sev {
			continue
		}
		r, _ := h.ranges.Range(next)
		values[i] = r.First
	}

	override := datastructure.NewCongestionNumericOverride(leg.legIndex, gi, window, nil)
	updated := route.WithLegCongestionNumeric(leg.legIndex, values).WithOverriddenTraffic(&override)
	return updated, true, nil
}

func (h *IncreaseHandler) scanEnd(leg legState, progress datastructure.RouteLegProgress) int {
	gi := leg.geometryIndex
	end := gi + h.opts.IncreaseScanSegments
	if end > len(leg.congestion) {
		end = len(leg.congestion)
	}
	for _, intersection := range forwardIntersections(progress) {
		if intersection.GeometryIndex <= gi {
			continue
		}
		if intersection.RoadClass != "" && intersection.RoadClass != datastructure.RoadClassMotorway {
			return capEnd(end, gi, intersection.GeometryIndex)
		}
	}
	return end
}
