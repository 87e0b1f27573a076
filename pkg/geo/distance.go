package geo

import (
	"math"

	"github.com/lintang-b-s/navtraffic/pkg/datastructure"
)

const (
	earthRadiusKM = 6371.0
	earthRadiusM  = 6371007
)

func havFunction(angleRad float64) float64 {
	return (1 - math.Cos(angleRad)) / 2.0
}

func degreeToRadians(angle float64) float64 {
	return angle * (math.Pi / 180.0)
}

// CalculateHaversineDistance returns the great circle distance in km.
func CalculateHaversineDistance(latOne, longOne, latTwo, longTwo float64) float64 {
	latOne = degreeToRadians(latOne)
	longOne = degreeToRadians(longOne)
	latTwo = degreeToRadians(latTwo)
	longTwo = degreeToRadians(longTwo)

	a := havFunction(latOne-latTwo) + math.Cos(latOne)*math.Cos(latTwo)*havFunction(longOne-longTwo)
	c := 2.0 * math.Asin(math.Sqrt(a))
	return earthRadiusKM * c
}

// HaversineMeters returns the great circle distance between a and b in meters.
func HaversineMeters(a, b datastructure.Coordinate) float64 {
	return CalculateHaversineDistance(a.Lat, a.Lon, b.Lat, b.Lon) * 1000
}

// SegmentDistances returns the length in meters of every segment of path.
func SegmentDistances(path []datastructure.Coordinate) []float64 {
	if len(path) < 2 {
		return []float64{}
	}
	distances := make([]float64, len(path)-1)
	for i := 0; i < len(path)-1; i++ {
		distances[i] = HaversineMeters(path[i], path[i+1])
	}
	return distances
}
