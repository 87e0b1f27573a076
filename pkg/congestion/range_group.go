package congestion

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCongestionRange      = errors.New("invalid congestion range")
	ErrOverlappingCongestionRanges = errors.New("overlapping congestion ranges")
)

type Severity int

const (
	Unknown Severity = iota
	Low
	Moderate
	Heavy
	Severe
)

func (s Severity) String() string {
	switch s {
	case Low:
		return "low"
	case Moderate:
		return "moderate"
	case Heavy:
		return "heavy"
	case Severe:
		return "severe"
	default:
		return "unknown"
	}
}

// CongestionRange is an inclusive range of congestion_numeric values.
type CongestionRange struct {
	First int `json:"first" yaml:"first"`
	Last  int `json:"last" yaml:"last"`
}

func NewCongestionRange(first, last int) CongestionRange {
	return CongestionRange{First: first, Last: last}
}

func (r CongestionRange) Contains(value int) bool {
	return value >= r.First && value <= r.Last
}

func (r CongestionRange) Overlaps(other CongestionRange) bool {
	return r.First <= other.Last && other.First <= r.Last
}

func (r CongestionRange) Middle() int {
	return r.First + (r.Last-r.First)/2
}

func (r CongestionRange) String() string {
	return fmt.Sprintf("%d..%d", r.First, r.Last)
}

// CongestionRangeGroup splits congestion_numeric values into four severity bands.
type CongestionRangeGroup struct {
	low      CongestionRange
	moderate CongestionRange
	heavy    CongestionRange
	severe   CongestionRange
}

// NewCongestionRangeGroup validates the bands. Bands may leave gaps between them, values
// falling in a gap classify as Unknown.
func NewCongestionRangeGroup(low, moderate, heavy, severe CongestionRange) (CongestionRangeGroup, error) {
	ranges := []CongestionRange{low, moderate, heavy, severe}
	for i, r := range ranges {
		if r.First > r.Last {
			return CongestionRangeGroup{}, fmt.Errorf("%w: %s %s", ErrInvalidCongestionRange, Severity(i+1), r)
		}
	}
	for i := 0; i < len(ranges); i++ {
		for j := i + 1; j < len(ranges); j++ {
			if ranges[i].Overlaps(ranges[j]) {
				return CongestionRangeGroup{}, fmt.Errorf("%w: %s %s and %s %s", ErrOverlappingCongestionRanges,
					Severity(i+1), ranges[i], Severity(j+1), ranges[j])
			}
		}
	}
	return CongestionRangeGroup{
		low:      low,
		moderate: moderate,
		heavy:    heavy,
		severe:   severe,
	}, nil
}

// DefaultCongestionRangeGroup is 0..39 low, 40..59 moderate, 60..79 heavy, 80..100 severe.
func DefaultCongestionRangeGroup() CongestionRangeGroup {
	return CongestionRangeGroup{
		low:      NewCongestionRange(0, 39),
		moderate: NewCongestionRange(40, 59),
		heavy:    NewCongestionRange(60, 79),
		severe:   NewCongestionRange(80, 100),
	}
}

func (g CongestionRangeGroup) Low() CongestionRange      { return g.low }
func (g CongestionRangeGroup) Moderate() CongestionRange { return g.moderate }
func (g CongestionRangeGroup) Heavy() CongestionRange    { return g.heavy }
func (g CongestionRangeGroup) Severe() CongestionRange   { return g.severe }

// Classify returns the band of value, Unknown when no band contains it.
func (g CongestionRangeGroup) Classify(value int) Severity {
	switch {
	case g.low.Contains(value):
		return Low
	case g.moderate.Contains(value):
		return Moderate
	case g.heavy.Contains(value):
		return Heavy
	case g.severe.Contains(value):
		return Severe
	default:
		return Unknown
	}
}

// Range returns the band of severity. ok is false for Unknown.
func (g CongestionRangeGroup) Range(severity Severity) (CongestionRange, bool) {
	switch severity {
	case Low:
		return g.low, true
	case Moderate:
		return g.moderate, true
	case Heavy:
		return g.heavy, true
	case Severe:
		return g.severe, true
	default:
		return CongestionRange{}, false
	}
}

// Next returns the severity one band above. Severe and Unknown map to themselves.
func Next(severity Severity) Severity {
	switch severity {
	case Low, Moderate, Heavy:
		return severity + 1
	default:
		return severity
	}
}
