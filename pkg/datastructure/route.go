package datastructure

// CongestionNumericOverride is the bookkeeping of one rewritten window of a leg's
// congestion_numeric annotation.
//
// OriginalValues holds the values that were in [StartIndex, StartIndex+Length) before the
// rewrite. It is nil when the values were never captured, such an override cannot be restored.
type CongestionNumericOverride struct {
	LegIndex       int   `json:"leg_index"`
	StartIndex     int   `json:"start_index"`
	Length         int   `json:"length"`
	OriginalValues []int `json:"original_values"`
}

func NewCongestionNumericOverride(legIndex, startIndex, length int, originalValues []int) CongestionNumericOverride {
	return CongestionNumericOverride{
		LegIndex:       legIndex,
		StartIndex:     startIndex,
		Length:         length,
		OriginalValues: originalValues,
	}
}

// Restorable reports whether the override carries the values needed to undo it.
func (o CongestionNumericOverride) Restorable() bool {
	return o.OriginalValues != nil
}

// EndIndex is the first index after the override window.
func (o CongestionNumericOverride) EndIndex() int {
	return o.StartIndex + o.Length
}

func (o CongestionNumericOverride) Contains(legIndex, geometryIndex int) bool {
	return o.LegIndex == legIndex && geometryIndex >= o.StartIndex && geometryIndex < o.EndIndex()
}

type Route struct {
	ID                string                     `json:"id"`
	Distance          float64                    `json:"distance"`
	Duration          float64                    `json:"duration"`
	Legs              []RouteLeg                 `json:"legs"`
	OverriddenTraffic *CongestionNumericOverride `json:"overridden_traffic,omitempty"`
}

type RouteLeg struct {
	Distance   float64        `json:"distance"`
	Duration   float64        `json:"duration"`
	Summary    string         `json:"summary"`
	Annotation *LegAnnotation `json:"annotation,omitempty"`
	Steps      []LegStep      `json:"steps"`
}

// LegAnnotation holds per-segment annotation lists. Every list is parallel to the leg
// geometry segments; a nil list means the annotation was not requested.
type LegAnnotation struct {
	Distance          []float64 `json:"distance,omitempty"`
	Duration          []float64 `json:"duration,omitempty"`
	Speed             []float64 `json:"speed,omitempty"`
	FreeflowSpeed     []int     `json:"freeflow_speed,omitempty"` // km/h
	CurrentSpeed      []int     `json:"current_speed,omitempty"`  // km/h
	Congestion        []string  `json:"congestion,omitempty"`
	CongestionNumeric []int     `json:"congestion_numeric,omitempty"`
}

type LegStep struct {
	Distance      float64            `json:"distance"`
	Duration      float64            `json:"duration"`
	Name          string             `json:"name"`
	Geometry      string             `json:"geometry"` // polyline, precision 5
	Maneuver      StepManeuver       `json:"maneuver"`
	Intersections []StepIntersection `json:"intersections"`
}

type StepManeuver struct {
	Type        string     `json:"type"`
	Modifier    string     `json:"modifier,omitempty"`
	Location    Coordinate `json:"location"`
	Instruction string     `json:"instruction,omitempty"`
}

type StepIntersection struct {
	Location Coordinate `json:"location"`
	// GeometryIndex is relative to the leg geometry.
	GeometryIndex int                `json:"geometry_index"`
	RoadClass     string             `json:"road_class,omitempty"`
	Lanes         []IntersectionLane `json:"lanes,omitempty"`
}

type IntersectionLane struct {
	Valid       bool     `json:"valid"`
	Active      bool     `json:"active"`
	Indications []string `json:"indications"`
}

func (i StepIntersection) HasLaneIndication(indication string) bool {
	for _, lane := range i.Lanes {
		for _, ind := range lane.Indications {
			if ind == indication {
				return true
			}
		}
	}
	return false
}

// Leg returns the leg at legIndex.
func (r Route) Leg(legIndex int) (RouteLeg, bool) {
	if legIndex < 0 || legIndex >= len(r.Legs) {
		return RouteLeg{}, false
	}
	return r.Legs[legIndex], true
}

// CongestionNumeric returns the congestion_numeric annotation of the leg, nil if absent.
func (l RouteLeg) CongestionNumeric() []int {
	if l.Annotation == nil {
		return nil
	}
	return l.Annotation.CongestionNumeric
}

// SegmentDistances returns the distance annotation of the leg, nil if absent.
func (l RouteLeg) SegmentDistances() []float64 {
	if l.Annotation == nil {
		return nil
	}
	return l.Annotation.Distance
}

// WithLegAnnotation returns a copy of the route whose leg legIndex carries annotation.
// Legs other than legIndex are shared with the receiver.
func (r Route) WithLegAnnotation(legIndex int, annotation *LegAnnotation) Route {
	if legIndex < 0 || legIndex >= len(r.Legs) {
		return r
	}
	legs := make([]RouteLeg, len(r.Legs))
	copy(legs, r.Legs)
	legs[legIndex].Annotation = annotation
	r.Legs = legs
	return r
}

// WithLegCongestionNumeric returns a copy of the route with the congestion_numeric
// annotation of leg legIndex replaced by values. The other annotation lists are shared.
func (r Route) WithLegCongestionNumeric(legIndex int, values []int) Route {
	leg, ok := r.Leg(legIndex)
	if !ok {
		return r
	}
	var annotation LegAnnotation
	if leg.Annotation != nil {
		annotation = *leg.Annotation
	}
	annotation.CongestionNumeric = values
	return r.WithLegAnnotation(legIndex, &annotation)
}

// WithOverriddenTraffic returns a copy of the route with the override record replaced.
// A nil override clears it.
func (r Route) WithOverriddenTraffic(override *CongestionNumericOverride) Route {
	if override == nil {
		r.OverriddenTraffic = nil
		return r
	}
	o := *override
	r.OverriddenTraffic = &o
	return r
}
