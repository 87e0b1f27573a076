package congestion

import "time"

// MetersPerSecond is a speed in m/s.
type MetersPerSecond float64

func FromKilometersPerHour(kmh float64) MetersPerSecond {
	return MetersPerSecond(kmh / 3.6)
}

func (s MetersPerSecond) KilometersPerHour() float64 {
	return float64(s) * 3.6
}

// DistanceIn returns the meters covered at speed s during d.
func (s MetersPerSecond) DistanceIn(d time.Duration) float64 {
	return float64(s) * d.Seconds()
}
