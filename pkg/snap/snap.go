// Package snap maps a location onto the geometry of a route leg.
package snap

import (
	"errors"
	"fmt"
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/lintang-b-s/navtraffic/pkg/datastructure"
	"github.com/lintang-b-s/navtraffic/pkg/geo"
)

var (
	ErrEmptyGeometry = errors.New("leg geometry has less than 2 points")
	ErrTooFar        = errors.New("location too far from the leg")
)

const (
	// candidates checked with the exact distance
	nearestCandidates = 8
	boundsTolerance   = 1e-7
)

type legSegment struct {
	geometryIndex int
	from, to      datastructure.Coordinate
	bounds        rtreego.Rect
}

func (s *legSegment) Bounds() rtreego.Rect {
	return s.bounds
}

// LegSnapper indexes the segments of one leg geometry in an r-tree.
type LegSnapper struct {
	rtree    *rtreego.Rtree
	segments int
}

type SnapResult struct {
	GeometryIndex int                      `json:"geometry_index"`
	Projection    datastructure.Coordinate `json:"projection"`
	// DistanceMeters from the location to the leg
	DistanceMeters float64 `json:"distance_meters"`
}

func NewLegSnapper(path []datastructure.Coordinate) (*LegSnapper, error) {
	if len(path) < 2 {
		return nil, ErrEmptyGeometry
	}
	rt := rtreego.NewTree(2, 25, 50)
	for i := 0; i < len(path)-1; i++ {
		a, b := path[i], path[i+1]
		bounds, err := rtreego.NewRectFromPoints(
			rtreego.Point{math.Min(a.Lat, b.Lat) - boundsTolerance, math.Min(a.Lon, b.Lon) - boundsTolerance},
			rtreego.Point{math.Max(a.Lat, b.Lat) + boundsTolerance, math.Max(a.Lon, b.Lon) + boundsTolerance},
		)
		if err != nil {
			return nil, fmt.Errorf("segment %d bounds: %w", i, err)
		}
		rt.Insert(&legSegment{geometryIndex: i, from: a, to: b, bounds: bounds})
	}
	return &LegSnapper{rtree: rt, segments: len(path) - 1}, nil
}

// NewRouteLegSnapper indexes the geometry stitched from the step polylines of leg.
func NewRouteLegSnapper(leg datastructure.RouteLeg) (*LegSnapper, error) {
	path, err := leg.Coordinates()
	if err != nil {
		return nil, err
	}
	return NewLegSnapper(path)
}

func (ls *LegSnapper) Segments() int {
	return ls.segments
}

// Snap returns the leg segment nearest to p. maxDistance in meters, 0 disables the check.
func (ls *LegSnapper) Snap(p datastructure.Coordinate, maxDistance float64) (SnapResult, error) {
	candidates := ls.rtree.NearestNeighbors(nearestCandidates, rtreego.Point{p.Lat, p.Lon})

	best := SnapResult{GeometryIndex: -1, DistanceMeters: math.MaxFloat64}
	for _, c := range candidates {
		segment, ok := c.(*legSegment)
		if !ok || segment == nil {
			continue
		}
		dist := geo.PointLinePerpendicularDistance(segment.from, segment.to, p)
		if dist < best.DistanceMeters || (dist == best.DistanceMeters && segment.geometryIndex < best.GeometryIndex) {
			best = SnapResult{
				GeometryIndex:  segment.geometryIndex,
				Projection:     geo.ProjectPointToLineCoord(segment.from, segment.to, p),
				DistanceMeters: dist,
			}
		}
	}
	if best.GeometryIndex < 0 {
		return SnapResult{}, ErrEmptyGeometry
	}
	if maxDistance > 0 && best.DistanceMeters > maxDistance {
		return best, fmt.Errorf("%w: %.1f m", ErrTooFar, best.DistanceMeters)
	}
	return best, nil
}
