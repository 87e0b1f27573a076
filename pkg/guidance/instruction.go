package guidance

import (
	"fmt"
	"strings"

	"github.com/lintang-b-s/navtraffic/pkg/datastructure"
)

// CompleteManeuvers fills the maneuver modifiers and instructions the route's steps miss.
// Modifiers come from the bearing change at the first intersection of the step, instructions
// from the maneuver and the step name. Steps that already carry a value are kept as is, and
// legs whose geometry does not decode are skipped. route is left untouched.
func CompleteManeuvers(route datastructure.Route) datastructure.Route {
	legs := make([]datastructure.RouteLeg, len(route.Legs))
	copy(legs, route.Legs)
	for i, leg := range legs {
		path, err := leg.Coordinates()
		if err != nil {
			continue
		}
		steps := make([]datastructure.LegStep, len(leg.Steps))
		copy(steps, leg.Steps)
		for j := range steps {
			completeStep(&steps[j], path)
		}
		legs[i].Steps = steps
	}
	route.Legs = legs
	return route
}

func completeStep(step *datastructure.LegStep, path []datastructure.Coordinate) {
	gi, ok := stepGeometryIndex(*step)
	if !ok {
		return
	}
	maneuver := &step.Maneuver
	if maneuver.Modifier == "" && hasTurn(maneuver.Type) && gi > 0 && gi+1 < len(path) {
		maneuver.Modifier = TurnModifier(path[gi-1], path[gi], path[gi+1])
	}
	if maneuver.Instruction != "" {
		return
	}
	var heading string
	if gi+1 < len(path) {
		heading = bearingToCompass(BearingTo(path[gi].Lat, path[gi].Lon, path[gi+1].Lat, path[gi+1].Lon))
	}
	maneuver.Instruction = describe(*maneuver, step.Name, heading)
}

func stepGeometryIndex(step datastructure.LegStep) (int, bool) {
	if len(step.Intersections) == 0 {
		return 0, false
	}
	return step.Intersections[0].GeometryIndex, true
}

func hasTurn(maneuverType string) bool {
	switch maneuverType {
	case datastructure.ManeuverDepart, datastructure.ManeuverArrive, datastructure.ManeuverNotification:
		return false
	}
	return true
}

func describe(maneuver datastructure.StepManeuver, streetName, heading string) string {
	switch maneuver.Type {
	case datastructure.ManeuverDepart:
		if heading == "" {
			return withStreet("Head", "toward", streetName)
		}
		return withStreet(fmt.Sprintf("Head %s", heading), "toward", streetName)
	case datastructure.ManeuverArrive:
		return "You have arrived at your destination"
	case datastructure.ManeuverRoundabout:
		return withStreet("Enter the roundabout", "and exit onto", streetName)
	case datastructure.ManeuverExitRoundabout:
		return withStreet("Exit the roundabout", "onto", streetName)
	case datastructure.ManeuverMerge:
		return withStreet("Merge", "onto", streetName)
	case datastructure.ManeuverOnRamp:
		return withStreet("Take the ramp", "onto", streetName)
	case datastructure.ManeuverOffRamp:
		return withStreet("Take the exit", "toward", streetName)
	}

	switch maneuver.Modifier {
	case datastructure.ModifierStraight, "":
		return withStreet("Continue", "onto", streetName)
	case datastructure.ModifierUTurn:
		return withStreet("Make U-turn", "onto", streetName)
	case datastructure.ModifierSlightLeft, datastructure.ModifierSlightRight:
		if maneuver.Type == datastructure.ManeuverFork {
			side := strings.TrimPrefix(maneuver.Modifier, "slight ")
			return withStreet(fmt.Sprintf("Keep %s", side), "to continue on", streetName)
		}
	}
	return withStreet(fmt.Sprintf("Turn %s", maneuver.Modifier), "onto", streetName)
}

func withStreet(description, preposition, streetName string) string {
	if strings.TrimSpace(streetName) == "" {
		return description
	}
	return fmt.Sprintf("%s %s %s", description, preposition, streetName)
}
