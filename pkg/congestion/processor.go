package congestion

import (
	"errors"
	"fmt"

	"github.com/lintang-b-s/navtraffic/pkg/datastructure"
	"go.uber.org/zap"
)

var ErrUnsupportedAction = errors.New("unsupported traffic update action")

// Processor dispatches a TrafficUpdateAction to its handler.
type Processor struct {
	decrease *DecreaseHandler
	increase *IncreaseHandler
	restore  *RestoreHandler
	log      *zap.Logger
}

func NewProcessor(ranges CongestionRangeGroup, opts HandlerOptions, log *zap.Logger) *Processor {
	return &Processor{
		decrease: NewDecreaseHandler(ranges, opts),
		increase: NewIncreaseHandler(ranges, opts),
		restore:  NewRestoreHandler(),
		log:      log,
	}
}

// Process returns the updated route. changed is false when the action left the route as is.
func (p *Processor) Process(action TrafficUpdateAction) (route datastructure.Route, changed bool, err error) {
	switch a := action.(type) {
	case DecreaseTraffic:
		route, changed, err = p.decrease.Handle(a)
		p.logResult("decrease", a.LegProgress.LegIndex, a.LegProgress.GeometryIndex, route, changed, err,
			zap.Float64("speed_kmh", a.ObservedSpeed.KilometersPerHour()))
	case IncreaseTraffic:
		route, changed, err = p.increase.Handle(a)
		p.logResult("increase", a.LegProgress.LegIndex, a.LegProgress.GeometryIndex, route, changed, err,
			zap.Float64("speed_kmh", a.ObservedSpeed.KilometersPerHour()))
	case RestoreTraffic:
		route, changed, err = p.restore.Handle(a)
		p.logResult("restore", a.Override.LegIndex, a.Override.StartIndex, route, changed, err)
	default:
		return datastructure.Route{}, false, fmt.Errorf("%w: %T", ErrUnsupportedAction, action)
	}
	return route, changed, err
}

func (p *Processor) logResult(kind string, legIndex, geometryIndex int, route datastructure.Route, changed bool,
	err error, fields ...zap.Field) {
	fields = append(fields,
		zap.String("action", kind),
		zap.String("route_id", route.ID),
		zap.Int("leg_index", legIndex),
		zap.Int("geometry_index", geometryIndex),
	)
	if err != nil {
		p.log.Warn("traffic update action failed", append(fields, zap.Error(err))...)
		return
	}
	if !changed {
		p.log.Debug("traffic update action left route unchanged", fields...)
		return
	}
	if o := route.OverriddenTraffic; o != nil {
		fields = append(fields, zap.Int("override_start", o.StartIndex), zap.Int("override_length", o.Length))
	}
	p.log.Info("traffic update action applied", fields...)
}
