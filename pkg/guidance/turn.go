package guidance

import (
	"math"

	"github.com/lintang-b-s/navtraffic/pkg/datastructure"
)

const (
	DEGREE_TO_RADIANS = 0.017453292519943295

	continueThreshold = 12.0  // degree
	slightThreshold   = 40.0  // degree
	turnThreshold     = 105.0 // degree
	uturnThreshold    = 170.0 // degree
)

// BearingTo returns the initial compass bearing in degrees (-180, 180] from lat1,lon1 to lat2,lon2.
func BearingTo(lat1, lon1, lat2, lon2 float64) float64 {
	phi1, phi2 := toRadians(lat1), toRadians(lat2)
	deltaLambda := toRadians(lon2 - lon1)
	y := math.Sin(deltaLambda) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(deltaLambda)
	return math.Atan2(y, x) / DEGREE_TO_RADIANS
}

func toRadians(degrees float64) float64 {
	return degrees * DEGREE_TO_RADIANS
}

func calcOrientation(from, to datastructure.Coordinate) float64 {
	return toRadians(BearingTo(from.Lat, from.Lon, to.Lat, to.Lon))
}

// alignOrientation shifts orientation by a full turn so that it lies within pi of baseOrientation.
func alignOrientation(baseOrientation, orientation float64) float64 {
	if baseOrientation >= 0 {
		if orientation < -math.Pi+baseOrientation {
			return orientation + 2*math.Pi
		}
		return orientation
	}
	if orientation > math.Pi+baseOrientation {
		return orientation - 2*math.Pi
	}
	return orientation
}

// turnDelta is the signed orientation change in radians when driving prev->base->next.
// Positive deltas turn right.
func turnDelta(prev, base, next datastructure.Coordinate) float64 {
	prevOrientation := calcOrientation(prev, base)
	orientation := alignOrientation(prevOrientation, calcOrientation(base, next))
	return orientation - prevOrientation
}

// TurnModifier classifies the turn made at base when coming from prev and leaving to next.
func TurnModifier(prev, base, next datastructure.Coordinate) string {
	delta := turnDelta(prev, base, next)
	deltaDegree := math.Abs(delta) / DEGREE_TO_RADIANS
	switch {
	case deltaDegree < continueThreshold:
		return datastructure.ModifierStraight
	case deltaDegree < slightThreshold:
		if delta < 0 {
			return datastructure.ModifierSlightLeft
		}
		return datastructure.ModifierSlightRight
	case deltaDegree < turnThreshold:
		if delta < 0 {
			return datastructure.ModifierLeft
		}
		return datastructure.ModifierRight
	case deltaDegree >= uturnThreshold:
		return datastructure.ModifierUTurn
	case delta < 0:
		return datastructure.ModifierSharpLeft
	default:
		return datastructure.ModifierSharpRight
	}
}

func bearingToCompass(bearing float64) string {
	if bearing < 0 {
		bearing += 360
	}
	switch {
	case bearing < 22.5:
		return "North"
	case bearing < 67.5:
		return "North East"
	case bearing < 112.5:
		return "East"
	case bearing < 157.5:
		return "South East"
	case bearing < 202.5:
		return "South"
	case bearing < 247.5:
		return "South West"
	case bearing < 292.5:
		return "West"
	case bearing < 337.5:
		return "North West"
	default:
		return "North"
	}
}
