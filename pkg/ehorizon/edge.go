// Package ehorizon models the electronic horizon: the tree of road graph edges the driver may
// take ahead of the current position, each with the probability of being taken.
package ehorizon

// Edge is a node of the horizon tree. Level 0 edges form the most probable path.
type Edge struct {
	ID          int64         `json:"id"`
	Level       int           `json:"level"`
	Probability float64       `json:"probability"`
	Out         []*Edge       `json:"out"`
	Metadata    *EdgeMetadata `json:"metadata,omitempty"`
}

// IsMpp reports whether the edge is on the most probable path.
func (e *Edge) IsMpp() bool {
	return e.Level == 0
}

// MppChild returns the outgoing edge continuing the most probable path, nil at the end of it.
func (e *Edge) MppChild() *Edge {
	for _, out := range e.Out {
		if out.IsMpp() {
			return out
		}
	}
	return nil
}

// Length is the metadata length in meters, 0 when the metadata is unknown.
func (e *Edge) Length() float64 {
	if e.Metadata == nil {
		return 0
	}
	return e.Metadata.Length
}

const (
	RoadClassMotorway     = "motorway"
	RoadClassTrunk        = "trunk"
	RoadClassPrimary      = "primary"
	RoadClassSecondary    = "secondary"
	RoadClassTertiary     = "tertiary"
	RoadClassUnclassified = "unclassified"
	RoadClassResidential  = "residential"
	RoadClassServiceOther = "service_other"
)

const (
	SurfacePavedSmooth = "paved_smooth"
	SurfacePaved       = "paved"
	SurfacePavedRough  = "paved_rough"
	SurfaceCompacted   = "compacted"
	SurfaceDirt        = "dirt"
	SurfaceGravel      = "gravel"
	SurfacePath        = "path"
	SurfaceImpassable  = "impassable"
)

type RoadName struct {
	Text     string `json:"text"`
	Language string `json:"language,omitempty"`
}

// EdgeMetadata describes the road of an edge. Speeds are in m/s, heading in degrees.
type EdgeMetadata struct {
	Heading            float64    `json:"heading"`
	Length             float64    `json:"length"`
	RoadClass          string     `json:"road_class"`
	SpeedLimit         *float64   `json:"speed_limit,omitempty"`
	Speed              float64    `json:"speed"`
	Ramp               bool       `json:"ramp"`
	Motorway           bool       `json:"motorway"`
	Bridge             bool       `json:"bridge"`
	Tunnel             bool       `json:"tunnel"`
	Toll               bool       `json:"toll"`
	Names              []RoadName `json:"names,omitempty"`
	LaneCount          *int       `json:"lane_count,omitempty"`
	MeanElevation      *float64   `json:"mean_elevation,omitempty"`
	Curvature          int        `json:"curvature"`
	CountryCodeIso3    string     `json:"country_code_iso3,omitempty"`
	CountryCodeIso2    string     `json:"country_code_iso2,omitempty"`
	StateCode          string     `json:"state_code,omitempty"`
	IsRightHandTraffic bool       `json:"is_right_hand_traffic"`
	IsOneway           bool       `json:"is_oneway"`
	Surface            string     `json:"surface,omitempty"`
	IsUrban            bool       `json:"is_urban"`
}
