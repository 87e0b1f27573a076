package ehorizon

type ResultType string

const (
	ResultInitial      ResultType = "INITIAL"
	ResultUpdate       ResultType = "UPDATE"
	ResultNotAvailable ResultType = "NOT_AVAILABLE"
)

// GraphPosition is a point on an edge, PercentAlong in [0, 1].
type GraphPosition struct {
	EdgeID       int64   `json:"edge_id"`
	PercentAlong float64 `json:"percent_along"`
}

// GraphPath is a path over consecutive edges.
type GraphPath struct {
	Edges             []int64 `json:"edges"`
	PercentAlongBegin float64 `json:"percent_along_begin"`
	PercentAlongEnd   float64 `json:"percent_along_end"`
	Length            float64 `json:"length"`
}

// Position is the horizon reported for one driver location.
type Position struct {
	GraphPosition GraphPosition `json:"position"`
	Tree          Horizon       `json:"tree"`
	ResultType    ResultType    `json:"type"`
}

type Horizon struct {
	Start *Edge `json:"start"`
}

// MostProbablePath follows the level 0 edges from the start edge.
func (h Horizon) MostProbablePath() []*Edge {
	return mpp(h.Start, nil)
}

func mpp(edge *Edge, path []*Edge) []*Edge {
	if edge == nil {
		return path
	}
	path = append(path, edge)
	return mpp(edge.MppChild(), path)
}

// Current returns the edge of position, nil when the horizon doesn't contain it.
func (h Horizon) Current(position GraphPosition) *Edge {
	return find(h.Start, position.EdgeID)
}

func find(edge *Edge, id int64) *Edge {
	if edge == nil {
		return nil
	}
	if edge.ID == id {
		return edge
	}
	for _, out := range edge.Out {
		if found := find(out, id); found != nil {
			return found
		}
	}
	return nil
}

// Edges returns every edge of the tree in pre-order.
func (h Horizon) Edges() []*Edge {
	edges := make([]*Edge, 0)
	var walk func(*Edge)
	walk = func(e *Edge) {
		if e == nil {
			return
		}
		edges = append(edges, e)
		for _, out := range e.Out {
			walk(out)
		}
	}
	walk(h.Start)
	return edges
}

// MostProbablePathFrom returns the part of the most probable path starting at position.
// ok is false when position isn't on the most probable path.
func (h Horizon) MostProbablePathFrom(position GraphPosition) (GraphPath, bool) {
	path := h.MostProbablePath()
	for i, edge := range path {
		if edge.ID != position.EdgeID {
			continue
		}
		rest := path[i:]
		gp := GraphPath{
			Edges:             make([]int64, 0, len(rest)),
			PercentAlongBegin: position.PercentAlong,
			PercentAlongEnd:   1,
		}
		for j, e := range rest {
			gp.Edges = append(gp.Edges, e.ID)
			if j == 0 {
				gp.Length += (1 - position.PercentAlong) * e.Length()
				continue
			}
			gp.Length += e.Length()
		}
		return gp, true
	}
	return GraphPath{}, false
}

// DistanceToMotorwayExit returns the distance in meters from position to the first edge of the
// most probable path that isn't a motorway. ok is false when the driver isn't on a motorway of
// the most probable path or the horizon ends before the exit.
func (h Horizon) DistanceToMotorwayExit(position GraphPosition) (float64, bool) {
	path := h.MostProbablePath()
	for i, edge := range path {
		if edge.ID != position.EdgeID {
			continue
		}
		if edge.Metadata == nil || !edge.Metadata.Motorway {
			return 0, false
		}
		distance := (1 - position.PercentAlong) * edge.Length()
		for _, next := range path[i+1:] {
			if next.Metadata == nil {
				return 0, false
			}
			if !next.Metadata.Motorway {
				return distance, true
			}
			distance += next.Length()
		}
		return 0, false
	}
	return 0, false
}
