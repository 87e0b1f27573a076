package geo

import (
	"github.com/golang/geo/s2"
	"github.com/lintang-b-s/navtraffic/pkg/datastructure"
)

func toS2(c datastructure.Coordinate) s2.Point {
	return s2.PointFromLatLng(s2.LatLngFromDegrees(c.Lat, c.Lon))
}

func fromS2(p s2.Point) datastructure.Coordinate {
	ll := s2.LatLngFromPoint(p)
	return datastructure.NewCoordinate(ll.Lat.Degrees(), ll.Lng.Degrees())
}

// ProjectPointToLineCoord projects snap onto the segment a-b.
func ProjectPointToLineCoord(a, b, snap datastructure.Coordinate) datastructure.Coordinate {
	return fromS2(s2.Project(toS2(snap), toS2(a), toS2(b)))
}

// PointLinePerpendicularDistance returns the distance in meters from p to the segment a-b.
func PointLinePerpendicularDistance(a, b, p datastructure.Coordinate) float64 {
	return s2.DistanceFromSegment(toS2(p), toS2(a), toS2(b)).Radians() * earthRadiusM
}
