package congestion

import (
	"errors"
	"fmt"

	"github.com/lintang-b-s/navtraffic/pkg/datastructure"
)

var (
	ErrOverrideNotRestorable = errors.New("override has no original values")
	ErrInvalidOverride       = errors.New("override does not match the route")
)

// RestoreHandler splices the original values of an override back into the route.
type RestoreHandler struct{}

func NewRestoreHandler() *RestoreHandler {
	return &RestoreHandler{}
}

// Handle returns the route with the override window restored and the override cleared.
func (h *RestoreHandler) Handle(action RestoreTraffic) (datastructure.Route, bool, error) {
	route := action.Route
	o := action.Override
	if !o.Restorable() {
		return route, false, ErrOverrideNotRestorable
	}
	if len(o.OriginalValues) != o.Length {
		return route, false, fmt.Errorf("%w: %d original values for length %d", ErrInvalidOverride, len(o.OriginalValues), o.Length)
	}
	leg, ok := route.Leg(o.LegIndex)
	if !ok {
		return route, false, fmt.Errorf("%w: leg %d", ErrInvalidOverride, o.LegIndex)
	}
	congestion := leg.CongestionNumeric()
	if congestion == nil {
		return route, false, fmt.Errorf("%w: leg %d has no congestion", ErrInvalidOverride, o.LegIndex)
	}
	if o.StartIndex < 0 || o.EndIndex() > len(congestion) {
		return route, false, fmt.Errorf("%w: window [%d, %d) on %d segments", ErrInvalidOverride,
			o.StartIndex, o.EndIndex(), len(congestion))
	}

	values := copyInts(congestion)
	copy(values[o.StartIndex:o.EndIndex()], o.OriginalValues)
	return route.WithLegCongestionNumeric(o.LegIndex, values).WithOverriddenTraffic(nil), true, nil
}
