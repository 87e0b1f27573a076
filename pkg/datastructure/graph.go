package datastructure

const (
	RoadClassMotorway     = "motorway"
	RoadClassTrunk        = "trunk"
	RoadClassPrimary      = "primary"
	RoadClassSecondary    = "secondary"
	RoadClassTertiary     = "tertiary"
	RoadClassUnclassified = "unclassified"
	RoadClassResidential  = "residential"
	RoadClassService      = "service"
	RoadClassLivingStreet = "living_street"
)

// RoadClassFreeFlowSpeed returns the default free flow speed in km/h of a road class.
func RoadClassFreeFlowSpeed(roadClass string) float64 {
	switch roadClass {
	case "motorway":
		return 95
	case "trunk":
		return 85
	case "primary":
		return 75
	case "secondary":
		return 65
	case "tertiary":
		return 50
	case "unclassified":
		return 50
	case "residential":
		return 30
	case "service":
		return 20
	case "motorway_link":
		return 90
	case "trunk_link":
		return 80
	case "primary_link":
		return 70
	case "secondary_link":
		return 60
	case "tertiary_link":
		return 50
	case "living_street":
		return 20
	default:
		return 40
	}
}
