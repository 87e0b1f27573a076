package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/lintang-b-s/navtraffic/pkg/config"
	"github.com/lintang-b-s/navtraffic/pkg/congestion"
	"github.com/lintang-b-s/navtraffic/pkg/datastructure"
	"github.com/lintang-b-s/navtraffic/pkg/kv"
	"github.com/lintang-b-s/navtraffic/pkg/logger"
	"github.com/lintang-b-s/navtraffic/pkg/server/rest/service"
	"github.com/lintang-b-s/navtraffic/pkg/slowtraffic"
	"go.uber.org/zap"
)

var (
	routeFile   = flag.String("route", "route.json", "route json file")
	actionsFile = flag.String("actions", "actions.json", "json list of traffic update actions")
	configFile  = flag.String("config", "", "yaml config file, defaults are used when empty")
	debug       = flag.Bool("debug", false, "log every action")
)

type replayAction struct {
	Action        string  `json:"action"`
	LegIndex      int     `json:"leg_index"`
	GeometryIndex int     `json:"geometry_index"`
	SpeedKmh      float64 `json:"speed_kmh"`
}

type replayStep struct {
	Step              int                                      `json:"step"`
	Action            replayAction                             `json:"action"`
	Changed           bool                                     `json:"changed"`
	Error             string                                   `json:"error,omitempty"`
	CongestionNumeric [][]int                                  `json:"congestion_numeric"`
	Override          *datastructure.CongestionNumericOverride `json:"override,omitempty"`
}

// replay reads a route and a list of actions, applies them in order on an in-memory session
// and writes one json line per action to out.
func main() {
	flag.Parse()

	log := zap.NewNop()
	if *debug {
		var err error
		log, err = logger.New(true)
		if err != nil {
			fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
			os.Exit(1)
		}
		defer log.Sync()
	}

	if err := run(context.Background(), log, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		os.Exit(1)
	}
}

func readJSON(path string, v interface{}) error {
	bb, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(bb, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func run(ctx context.Context, log *zap.Logger, out io.Writer) error {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return err
	}
	ranges, err := cfg.Congestion.RangeGroup()
	if err != nil {
		return err
	}

	var route datastructure.Route
	if err := readJSON(*routeFile, &route); err != nil {
		return err
	}
	var actions []replayAction
	if err := readJSON(*actionsFile, &actions); err != nil {
		return err
	}

	db, err := kv.OpenBadger("", true)
	if err != nil {
		return err
	}
	store := kv.NewSessionStore(db)
	defer store.Close()

	svc := service.NewTrafficService(log, store,
		congestion.NewProcessor(ranges, cfg.Congestion.HandlerOptions(), log),
		slowtraffic.NewFinder(cfg.SlowTraffic.Options()...), ranges, cfg.Snap.MaxDistanceMeters)

	session, err := svc.CreateSession(ctx, route)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	for i, a := range actions {
		step := replayStep{Step: i, Action: a}
		updated, changed, err := svc.ApplyAction(ctx, session.ID, service.ActionRequest{
			Kind:          service.ActionKind(a.Action),
			LegIndex:      a.LegIndex,
			GeometryIndex: a.GeometryIndex,
			SpeedKmh:      a.SpeedKmh,
		})
		if err != nil {
			step.Error = err.Error()
		} else {
			session = updated
			step.Changed = changed
		}
		for _, leg := range session.Route.Legs {
			step.CongestionNumeric = append(step.CongestionNumeric, leg.CongestionNumeric())
		}
		step.Override = session.Route.OverriddenTraffic
		if err := enc.Encode(step); err != nil {
			return err
		}
	}
	return nil
}
