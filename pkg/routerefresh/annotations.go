// Package routerefresh merges refreshed leg annotations into a route that is being navigated.
package routerefresh

import (
	"fmt"

	"github.com/lintang-b-s/navtraffic/pkg/datastructure"
	"github.com/lintang-b-s/navtraffic/pkg/util"
)

// RefreshedAnnotation merges the refreshed annotation of a leg into the old one.
// newAnnotation holds the values from legGeometryIndex on. Values before legGeometryIndex
// keep the old values, refreshed values past the end of the old list are dropped and a
// short refreshed list leaves the trailing old values in place.
//
// A list missing from the old annotation stays missing, as does a list shorter than
// legGeometryIndex.
func RefreshedAnnotation(oldAnnotation, newAnnotation *datastructure.LegAnnotation, legGeometryIndex int) *datastructure.LegAnnotation {
	if oldAnnotation == nil {
		return nil
	}
	if newAnnotation == nil {
		newAnnotation = &datastructure.LegAnnotation{}
	}
	return &datastructure.LegAnnotation{
		Distance:          mergeList(oldAnnotation.Distance, newAnnotation.Distance, legGeometryIndex),
		Duration:          mergeList(oldAnnotation.Duration, newAnnotation.Duration, legGeometryIndex),
		Speed:             mergeList(oldAnnotation.Speed, newAnnotation.Speed, legGeometryIndex),
		FreeflowSpeed:     mergeList(oldAnnotation.FreeflowSpeed, newAnnotation.FreeflowSpeed, legGeometryIndex),
		CurrentSpeed:      mergeList(oldAnnotation.CurrentSpeed, newAnnotation.CurrentSpeed, legGeometryIndex),
		Congestion:        mergeList(oldAnnotation.Congestion, newAnnotation.Congestion, legGeometryIndex),
		CongestionNumeric: mergeList(oldAnnotation.CongestionNumeric, newAnnotation.CongestionNumeric, legGeometryIndex),
	}
}

func mergeList[T any](oldList, newList []T, index int) []T {
	if oldList == nil || index < 0 || index > len(oldList) {
		return nil
	}
	return util.SpliceG(oldList, newList, index)
}

// RefreshRoute refreshes the annotations of the legs from currentLegIndex on.
// refreshed is indexed by leg, a missing entry keeps the old values of that leg. Only the
// current leg is refreshed from legGeometryIndex, the following legs are refreshed whole.
//
// Congestion values inside an active override window keep the overridden values. A restorable
// override records the refreshed values instead, so restoring it yields fresh data.
func RefreshRoute(route datastructure.Route, refreshed []*datastructure.LegAnnotation, currentLegIndex, legGeometryIndex int) (datastructure.Route, error) {
	if currentLegIndex < 0 || currentLegIndex >= len(route.Legs) {
		return route, fmt.Errorf("%w: %d", datastructure.ErrLegIndexOutOfRange, currentLegIndex)
	}
	if legGeometryIndex < 0 {
		return route, fmt.Errorf("%w: %d", datastructure.ErrGeometryIndexOutOfRange, legGeometryIndex)
	}

	override := route.OverriddenTraffic
	var updatedOverride *datastructure.CongestionNumericOverride
	if override != nil {
		o := *override
		o.OriginalValues = util.CopyG(override.OriginalValues)
		updatedOverride = &o
	}

	legs := make([]datastructure.RouteLeg, len(route.Legs))
	copy(legs, route.Legs)
	for i := currentLegIndex; i < len(legs); i++ {
		var newAnnotation *datastructure.LegAnnotation
		if i < len(refreshed) {
			newAnnotation = refreshed[i]
		}
		index := 0
		if i == currentLegIndex {
			index = legGeometryIndex
		}

		oldAnnotation := legs[i].Annotation
		merged := RefreshedAnnotation(oldAnnotation, newAnnotation, index)
		if merged != nil && updatedOverride != nil && updatedOverride.LegIndex == i {
			keepOverridden(merged, oldAnnotation, updatedOverride)
		}
		legs[i].Annotation = merged
		if merged != nil && merged.Duration != nil {
			legs[i].Duration = util.SumG(merged.Duration)
		}
	}

	route.Legs = legs
	route.Duration = 0
	for _, leg := range legs {
		route.Duration += leg.Duration
	}
	return route.WithOverriddenTraffic(updatedOverride), nil
}

// keepOverridden writes the old congestion back into the override window of merged and
// moves the refreshed values into the override.
func keepOverridden(merged, oldAnnotation *datastructure.LegAnnotation, override *datastructure.CongestionNumericOverride) {
	values := merged.CongestionNumeric
	old := oldAnnotation.CongestionNumeric
	if values == nil || override.StartIndex < 0 || override.EndIndex() > len(values) || override.EndIndex() > len(old) {
		return
	}
	if override.Restorable() && len(override.OriginalValues) == override.Length {
		copy(override.OriginalValues, values[override.StartIndex:override.EndIndex()])
	}
	values = util.CopyG(values)
	copy(values[override.StartIndex:override.EndIndex()], old[override.StartIndex:override.EndIndex()])
	merged.CongestionNumeric = values
}
