package geo

import (
	"github.com/lintang-b-s/navtraffic/pkg/datastructure"
)

// OverviewToleranceMeters is the simplification tolerance of route overviews.
const OverviewToleranceMeters = 7.0

// SimplifyPath runs Ramer-Douglas-Peucker over path. Points closer than toleranceMeters to
// the simplified line are dropped, the first and last points are always kept.
func SimplifyPath(path []datastructure.Coordinate, toleranceMeters float64) []datastructure.Coordinate {
	if len(path) < 3 {
		return path
	}
	keep := make([]bool, len(path))
	keep[0], keep[len(path)-1] = true, true
	markFarthest(path, 0, len(path)-1, toleranceMeters, keep)

	simplified := make([]datastructure.Coordinate, 0, len(path))
	for i, k := range keep {
		if k {
			simplified = append(simplified, path[i])
		}
	}
	return simplified
}

// markFarthest keeps the point of path(first, last) farthest from the first-last segment when
// it lies beyond tolerance, and recurses on both halves.
func markFarthest(path []datastructure.Coordinate, first, last int, tolerance float64, keep []bool) {
	if last-first < 2 {
		return
	}
	farthest, maxDist := -1, tolerance
	for i := first + 1; i < last; i++ {
		if d := PointLinePerpendicularDistance(path[first], path[last], path[i]); d > maxDist {
			farthest, maxDist = i, d
		}
	}
	if farthest < 0 {
		return
	}
	keep[farthest] = true
	markFarthest(path, first, farthest, tolerance, keep)
	markFarthest(path, farthest, last, tolerance, keep)
}
