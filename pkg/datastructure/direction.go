package datastructure

// maneuver types
const (
	ManeuverDepart         = "depart"
	ManeuverArrive         = "arrive"
	ManeuverTurn           = "turn"
	ManeuverContinue       = "continue"
	ManeuverNewName        = "new name"
	ManeuverMerge          = "merge"
	ManeuverOnRamp         = "on ramp"
	ManeuverOffRamp        = "off ramp"
	ManeuverFork           = "fork"
	ManeuverEndOfRoad      = "end of road"
	ManeuverRoundabout     = "roundabout"
	ManeuverExitRoundabout = "exit roundabout"
	ManeuverNotification   = "notification"
)

// maneuver modifiers, also used as lane indications
const (
	ModifierUTurn       = "uturn"
	ModifierSharpRight  = "sharp right"
	ModifierRight       = "right"
	ModifierSlightRight = "slight right"
	ModifierStraight    = "straight"
	ModifierSlightLeft  = "slight left"
	ModifierLeft        = "left"
	ModifierSharpLeft   = "sharp left"
)
