package kv

import (
	"time"

	"github.com/lintang-b-s/navtraffic/pkg/datastructure"
)

// stored* mirror the route model without pointers. The Has* flags keep a missing value
// apart from an empty one.

type storedSession struct {
	ID        string
	Route     storedRoute
	CreatedAt int64
	UpdatedAt int64
}

type storedRoute struct {
	ID          string
	Distance    float64
	Duration    float64
	Legs        []storedLeg
	HasOverride bool
	Override    storedOverride
}

type storedOverride struct {
	LegIndex          int
	StartIndex        int
	Length            int
	HasOriginalValues bool
	OriginalValues    []int
}

type storedLeg struct {
	Distance      float64
	Duration      float64
	Summary       string
	HasAnnotation bool
	Annotation    storedAnnotation
	Steps         []storedStep
}

// annotation list presence bits
const (
	hasDistance uint8 = 1 << iota
	hasDuration
	hasSpeed
	hasFreeflowSpeed
	hasCurrentSpeed
	hasCongestion
	hasCongestionNumeric
)

type storedAnnotation struct {
	Present           uint8
	Distance          []float64
	Duration          []float64
	Speed             []float64
	FreeflowSpeed     []int
	CurrentSpeed      []int
	Congestion        []string
	CongestionNumeric []int
}

type storedStep struct {
	Distance      float64
	Duration      float64
	Name          string
	Geometry      string
	ManeuverType  string
	Modifier      string
	Instruction   string
	ManeuverLat   float64
	ManeuverLon   float64
	Intersections []storedIntersection
}

type storedIntersection struct {
	Lat           float64
	Lon           float64
	GeometryIndex int
	RoadClass     string
	Lanes         []storedLane
}

type storedLane struct {
	Valid       bool
	Active      bool
	Indications []string
}

func toStoredSession(s datastructure.Session) storedSession {
	return storedSession{
		ID:        s.ID,
		Route:     toStoredRoute(s.Route),
		CreatedAt: s.CreatedAt.UnixNano(),
		UpdatedAt: s.UpdatedAt.UnixNano(),
	}
}

func (s storedSession) toSession() datastructure.Session {
	return datastructure.Session{
		ID:        s.ID,
		Route:     s.Route.toRoute(),
		CreatedAt: time.Unix(0, s.CreatedAt).UTC(),
		UpdatedAt: time.Unix(0, s.UpdatedAt).UTC(),
	}
}

func toStoredRoute(r datastructure.Route) storedRoute {
	stored := storedRoute{
		ID:       r.ID,
		Distance: r.Distance,
		Duration: r.Duration,
		Legs:     make([]storedLeg, 0, len(r.Legs)),
	}
	for _, leg := range r.Legs {
		stored.Legs = append(stored.Legs, toStoredLeg(leg))
	}
	if o := r.OverriddenTraffic; o != nil {
		stored.HasOverride = true
		stored.Override = storedOverride{
			LegIndex:          o.LegIndex,
			StartIndex:        o.StartIndex,
			Length:            o.Length,
			HasOriginalValues: o.OriginalValues != nil,
			OriginalValues:    o.OriginalValues,
		}
	}
	return stored
}

func (r storedRoute) toRoute() datastructure.Route {
	route := datastructure.Route{
		ID:       r.ID,
		Distance: r.Distance,
		Duration: r.Duration,
		Legs:     make([]datastructure.RouteLeg, 0, len(r.Legs)),
	}
	for _, leg := range r.Legs {
		route.Legs = append(route.Legs, leg.toLeg())
	}
	if r.HasOverride {
		o := datastructure.NewCongestionNumericOverride(r.Override.LegIndex, r.Override.StartIndex, r.Override.Length, nil)
		if r.Override.HasOriginalValues {
			o.OriginalValues = present(r.Override.OriginalValues)
		}
		route.OverriddenTraffic = &o
	}
	return route
}

func toStoredLeg(l datastructure.RouteLeg) storedLeg {
	stored := storedLeg{
		Distance: l.Distance,
		Duration: l.Duration,
		Summary:  l.Summary,
		Steps:    make([]storedStep, 0, len(l.Steps)),
	}
	if a := l.Annotation; a != nil {
		stored.HasAnnotation = true
		stored.Annotation = storedAnnotation{
			Distance:          a.Distance,
			Duration:          a.Duration,
			Speed:             a.Speed,
			FreeflowSpeed:     a.FreeflowSpeed,
			CurrentSpeed:      a.CurrentSpeed,
			Congestion:        a.Congestion,
			CongestionNumeric: a.CongestionNumeric,
		}
		stored.Annotation.Present = presence(a)
	}
	for _, step := range l.Steps {
		stored.Steps = append(stored.Steps, toStoredStep(step))
	}
	return stored
}

func presence(a *datastructure.LegAnnotation) uint8 {
	var bits uint8
	if a.Distance != nil {
		bits |= hasDistance
	}
	if a.Duration != nil {
		bits |= hasDuration
	}
	if a.Speed != nil {
		bits |= hasSpeed
	}
	if a.FreeflowSpeed != nil {
		bits |= hasFreeflowSpeed
	}
	if a.CurrentSpeed != nil {
		bits |= hasCurrentSpeed
	}
	if a.Congestion != nil {
		bits |= hasCongestion
	}
	if a.CongestionNumeric != nil {
		bits |= hasCongestionNumeric
	}
	return bits
}

func (l storedLeg) toLeg() datastructure.RouteLeg {
	leg := datastructure.RouteLeg{
		Distance: l.Distance,
		Duration: l.Duration,
		Summary:  l.Summary,
		Steps:    make([]datastructure.LegStep, 0, len(l.Steps)),
	}
	if l.HasAnnotation {
		a := l.Annotation
		annotation := &datastructure.LegAnnotation{}
		if a.Present&hasDistance != 0 {
			annotation.Distance = present(a.Distance)
		}
		if a.Present&hasDuration != 0 {
			annotation.Duration = present(a.Duration)
		}
		if a.Present&hasSpeed != 0 {
			annotation.Speed = present(a.Speed)
		}
		if a.Present&hasFreeflowSpeed != 0 {
			annotation.FreeflowSpeed = present(a.FreeflowSpeed)
		}
		if a.Present&hasCurrentSpeed != 0 {
			annotation.CurrentSpeed = present(a.CurrentSpeed)
		}
		if a.Present&hasCongestion != 0 {
			annotation.Congestion = present(a.Congestion)
		}
		if a.Present&hasCongestionNumeric != 0 {
			annotation.CongestionNumeric = present(a.CongestionNumeric)
		}
		leg.Annotation = annotation
	}
	for _, step := range l.Steps {
		leg.Steps = append(leg.Steps, step.toStep())
	}
	return leg
}

// present turns a decoded nil list into an empty one.
func present[T any](values []T) []T {
	if values == nil {
		return []T{}
	}
	return values
}

func toStoredStep(s datastructure.LegStep) storedStep {
	stored := storedStep{
		Distance:      s.Distance,
		Duration:      s.Duration,
		Name:          s.Name,
		Geometry:      s.Geometry,
		ManeuverType:  s.Maneuver.Type,
		Modifier:      s.Maneuver.Modifier,
		Instruction:   s.Maneuver.Instruction,
		ManeuverLat:   s.Maneuver.Location.Lat,
		ManeuverLon:   s.Maneuver.Location.Lon,
		Intersections: make([]storedIntersection, 0, len(s.Intersections)),
	}
	for _, in := range s.Intersections {
		si := storedIntersection{
			Lat:           in.Location.Lat,
			Lon:           in.Location.Lon,
			GeometryIndex: in.GeometryIndex,
			RoadClass:     in.RoadClass,
		}
		for _, lane := range in.Lanes {
			si.Lanes = append(si.Lanes, storedLane{Valid: lane.Valid, Active: lane.Active, Indications: lane.Indications})
		}
		stored.Intersections = append(stored.Intersections, si)
	}
	return stored
}

func (s storedStep) toStep() datastructure.LegStep {
	step := datastructure.LegStep{
		Distance: s.Distance,
		Duration: s.Duration,
		Name:     s.Name,
		Geometry: s.Geometry,
		Maneuver: datastructure.StepManeuver{
			Type:        s.ManeuverType,
			Modifier:    s.Modifier,
			Instruction: s.Instruction,
			Location:    datastructure.NewCoordinate(s.ManeuverLat, s.ManeuverLon),
		},
		Intersections: make([]datastructure.StepIntersection, 0, len(s.Intersections)),
	}
	for _, si := range s.Intersections {
		in := datastructure.StepIntersection{
			Location:      datastructure.NewCoordinate(si.Lat, si.Lon),
			GeometryIndex: si.GeometryIndex,
			RoadClass:     si.RoadClass,
		}
		for _, lane := range si.Lanes {
			in.Lanes = append(in.Lanes, datastructure.IntersectionLane{
				Valid:       lane.Valid,
				Active:      lane.Active,
				Indications: present(lane.Indications),
			})
		}
		step.Intersections = append(step.Intersections, in)
	}
	return step
}
