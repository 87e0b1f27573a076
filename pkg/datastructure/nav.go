package datastructure

import (
	"fmt"

	"github.com/twpayne/go-polyline"
)

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Lat: lat,
		Lon: lon,
	}
}

func NewCoordinates(lat, lon []float64) []Coordinate {
	coords := make([]Coordinate, len(lat))
	for i := range lat {
		coords[i] = NewCoordinate(lat[i], lon[i])
	}
	return coords
}

// EncodeCoordinates encodes path as a precision 5 polyline.
func EncodeCoordinates(path []Coordinate) string {
	coords := make([][]float64, 0, len(path))
	for _, p := range path {
		coords = append(coords, []float64{p.Lat, p.Lon})
	}
	return string(polyline.EncodeCoords(coords))
}

// DecodeCoordinates decodes a precision 5 polyline.
func DecodeCoordinates(encoded string) ([]Coordinate, error) {
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("decode polyline: %w", err)
	}
	path := make([]Coordinate, 0, len(coords))
	for _, c := range coords {
		path = append(path, NewCoordinate(c[0], c[1]))
	}
	return path, nil
}

// Coordinates stitches the step geometries of the leg into the leg geometry.
// Consecutive steps share their boundary point, which is kept once.
func (l RouteLeg) Coordinates() ([]Coordinate, error) {
	path := make([]Coordinate, 0)
	for i, step := range l.Steps {
		if step.Geometry == "" {
			continue
		}
		coords, err := DecodeCoordinates(step.Geometry)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		if len(path) > 0 && len(coords) > 0 && path[len(path)-1] == coords[0] {
			coords = coords[1:]
		}
		path = append(path, coords...)
	}
	return path, nil
}
