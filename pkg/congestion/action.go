package congestion

import "github.com/lintang-b-s/navtraffic/pkg/datastructure"

// TrafficUpdateAction is one of IncreaseTraffic, DecreaseTraffic or RestoreTraffic.
type TrafficUpdateAction interface {
	trafficUpdateAction()
}

// IncreaseTraffic raises the congestion ahead of the driver by one band.
type IncreaseTraffic struct {
	Route         datastructure.Route
	LegProgress   datastructure.RouteLegProgress
	ObservedSpeed MetersPerSecond
}

// DecreaseTraffic lowers the congestion ahead of a driver moving slower than free flow.
type DecreaseTraffic struct {
	ObservedSpeed MetersPerSecond
	LegProgress   datastructure.RouteLegProgress
	Route         datastructure.Route
}

// RestoreTraffic puts back the values replaced by a previous DecreaseTraffic.
type RestoreTraffic struct {
	Route    datastructure.Route
	Override datastructure.CongestionNumericOverride
}

func (IncreaseTraffic) trafficUpdateAction() {}
func (DecreaseTraffic) trafficUpdateAction() {}
func (RestoreTraffic) trafficUpdateAction()  {}
