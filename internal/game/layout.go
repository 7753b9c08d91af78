package game

import "airport_director/internal/models"

// The airport layout is a fixed set of coordinates and waypoint routes; there
// is no pathfinding. Units are abstract map units, the single runway runs
// west-east along y=300.

type rect struct {
	minX, minY, maxX, maxY float64
}

func (r rect) contains(x, y float64) bool {
	return x >= r.minX && x <= r.maxX && y >= r.minY && y <= r.maxY
}

var runwayBox = rect{minX: 110, minY: 288, maxX: 690, maxY: 312}

const (
	// Aircraft on approach inside this distance of the threshold count as
	// "on final" for go-around and hold-short conflict checks.
	finalApproachDist = 200.0

	thresholdX = 120.0
	thresholdY = 300.0
)

// gateOrder is the canonical claim order. gate_4 exists only once the
// terminal-expansion upgrade is unlocked.
var gateOrder = []string{"gate_1", "gate_2", "gate_3", "gate_4"}

var gatePos = map[string]models.Waypoint{
	"gate_1": {X: 320, Y: 160, Heading: 0, FixedHeading: true},
	"gate_2": {X: 400, Y: 160, Heading: 0, FixedHeading: true},
	"gate_3": {X: 480, Y: 160, Heading: 0, FixedHeading: true},
	"gate_4": {X: 560, Y: 160, Heading: 0, FixedHeading: true},
}

// spawnPoint is where arriving aircraft enter the map.
var spawnPoint = models.Waypoint{X: -300, Y: 480}

func approachRoute() []models.Waypoint {
	return []models.Waypoint{
		{X: -80, Y: 360},
		{X: thresholdX, Y: thresholdY},
	}
}

// landingRoute runs the rollout from the threshold to the runway exit.
func landingRoute() []models.Waypoint {
	return []models.Waypoint{{X: 620, Y: 300}}
}

// taxiInRoute leads from the runway exit to a gate.
func taxiInRoute(gate string) []models.Waypoint {
	g := gatePos[gate]
	return []models.Waypoint{
		{X: 620, Y: 220, Heading: 270, FixedHeading: true},
		{X: g.X, Y: 220, Heading: 0, FixedHeading: true},
		g,
	}
}

// taxiOutRoute leads from a gate to the hold-short point at the threshold.
func taxiOutRoute(gate string) []models.Waypoint {
	g := gatePos[gate]
	return []models.Waypoint{
		{X: g.X, Y: 220, Heading: 270, FixedHeading: true},
		{X: 170, Y: 220, Heading: 180, FixedHeading: true},
		// Hold-short point sits just outside the runway box so a holding
		// aircraft does not itself read as runway occupancy.
		{X: 152, Y: 280, Heading: 90, FixedHeading: true},
	}
}

func takeoffRoute() []models.Waypoint {
	return []models.Waypoint{
		{X: 680, Y: 300},
		{X: 920, Y: 230},
	}
}

// goAroundRoute is the fixed detour loop: climb out over the field, swing
// north, and rejoin the approach corridor from the west.
func goAroundRoute() []models.Waypoint {
	return []models.Waypoint{
		{X: 700, Y: 200},
		{X: 250, Y: 90},
		{X: -150, Y: 300},
	}
}
