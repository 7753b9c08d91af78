package game

import (
	"fmt"
	"math"
	"math/rand"

	"airport_director/internal/models"
)

const (
	parkDwellTicks = 300
	holdShortTicks = 5
)

// baseSpeed is map units per tick on the ground; smaller equipment
// maneuvers faster.
func baseSpeed(cat models.FlightCategory) float64 {
	switch cat {
	case models.CategoryWidebody:
		return 2.2
	case models.CategoryNarrowbody:
		return 2.6
	default:
		return 3.0
	}
}

func stateMultiplier(st models.AircraftStatus) float64 {
	switch st {
	case models.StatusTaxiIn, models.StatusTaxiOut:
		return 0.5
	case models.StatusTakeoff, models.StatusLanding:
		return 1.5
	default:
		return 1.0
	}
}

// headingOf converts a travel vector to a compass heading on the north-up
// map (0 = up the screen).
func headingOf(dx, dy float64) float64 {
	h := math.Atan2(dx, -dy) * 180 / math.Pi
	if h < 0 {
		h += 360
	}
	return h
}

// moveAircraft advances the aircraft one step toward the head of its
// waypoint queue. Within one step of the waypoint it snaps to it exactly and
// pops the queue. Heading always reflects the travel vector, except at
// waypoints that pin a fixed heading for taxi corners and gate parking.
func moveAircraft(ac *models.Aircraft) {
	if ac.Status.Stationary() || len(ac.Waypoints) == 0 {
		return
	}
	speed := baseSpeed(ac.Category) * stateMultiplier(ac.Status)
	wp := ac.Waypoints[0]
	dx, dy := wp.X-ac.X, wp.Y-ac.Y
	dist := math.Hypot(dx, dy)
	if dist > 0 {
		ac.Heading = headingOf(dx, dy)
	}
	if dist <= speed {
		ac.X, ac.Y = wp.X, wp.Y
		ac.Waypoints = ac.Waypoints[1:]
		if wp.FixedHeading {
			ac.Heading = wp.Heading
		}
		return
	}
	ac.X += dx / dist * speed
	ac.Y += dy / dist * speed
}

// newAircraftLocked materializes an aircraft for a spawning flight at the
// approach entry point. Passenger count and the revenue realized on departure
// are fixed at spawn time.
func (e *Engine) newAircraftLocked(f models.ScheduledFlight) models.Aircraft {
	e.nextAircraftSeq++
	pax := passengersFor(e.rng, f.Category)
	return models.Aircraft{
		ID:         fmt.Sprintf("ac_%04d", e.nextAircraftSeq),
		FlightID:   f.ID,
		Airline:    f.Airline,
		Number:     f.Number,
		Category:   f.Category,
		Status:     models.StatusApproach,
		X:          spawnPoint.X,
		Y:          spawnPoint.Y,
		Waypoints:  approachRoute(),
		Passengers: pax,
		Revenue:    revenueFor(f.Category, pax),
	}
}

func passengersFor(rng *rand.Rand, cat models.FlightCategory) int {
	switch cat {
	case models.CategoryWidebody:
		return 220 + rng.Intn(81)
	case models.CategoryNarrowbody:
		return 120 + rng.Intn(61)
	default:
		return 40 + rng.Intn(31)
	}
}

func revenueFor(cat models.FlightCategory, pax int) float64 {
	perSeat := 28.0
	switch cat {
	case models.CategoryNarrowbody:
		perSeat = 35.0
	case models.CategoryWidebody:
		perSeat = 42.0
	}
	return perSeat * float64(pax)
}

// advanceAircraftLocked runs one tick of the per-aircraft state machine.
// Aircraft are processed in stable slice order; gm reflects mid-tick gate
// claims made by aircraft processed earlier in the same pass.
func (e *Engine) advanceAircraftLocked(ac *models.Aircraft, gm *gateMap) {
	switch ac.Status {
	case models.StatusApproach:
		if distToThreshold(ac.X, ac.Y) < finalApproachDist && runwayOccupied(e.state.Aircraft, ac.ID) {
			ac.Status = models.StatusGoAround
			ac.Waypoints = goAroundRoute()
			e.tickEvents = append(e.tickEvents, econEvent{kind: evGoAround})
			e.logf("%s going around, runway occupied", ac.Label())
			return
		}
		moveAircraft(ac)
		if len(ac.Waypoints) == 0 {
			ac.Status = models.StatusLanding
			ac.Waypoints = landingRoute()
		}

	case models.StatusGoAround:
		moveAircraft(ac)
		if len(ac.Waypoints) == 0 {
			ac.Status = models.StatusApproach
			ac.Waypoints = approachRoute()
		}

	case models.StatusLanding:
		moveAircraft(ac)
		if len(ac.Waypoints) == 0 {
			ac.Status = models.StatusTaxiIn
			e.setFlightStatusLocked(ac.FlightID, models.FlightLanded)
		}

	case models.StatusTaxiIn:
		if ac.Gate == "" {
			gate, ok := gm.freeGate()
			if !ok {
				ac.Status = models.StatusWaitingForGate
				ac.WaitStart = e.state.Tick
				e.setFlightStatusLocked(ac.FlightID, models.FlightDelayed)
				e.logf("%s holding on taxiway, no gate free", ac.Label())
				return
			}
			ac.Gate = gate
			gm.claim(gate, ac.ID)
			ac.Waypoints = taxiInRoute(gate)
		}
		moveAircraft(ac)
		if len(ac.Waypoints) == 0 {
			ac.Status = models.StatusParked
			ac.TimerTicks = parkDwellTicks
		}

	case models.StatusWaitingForGate:
		// Gates go to the longest-standing waiter first.
		if !e.firstWaiterLocked(ac) {
			return
		}
		if gate, ok := gm.freeGate(); ok {
			ac.Gate = gate
			gm.claim(gate, ac.ID)
			ac.Status = models.StatusTaxiIn
			ac.Waypoints = taxiInRoute(gate)
			ac.WaitStart = 0
		}

	case models.StatusParked:
		ac.TimerTicks--
		if ac.TimerTicks <= 0 {
			gate := ac.Gate
			ac.Status = models.StatusTaxiOut
			ac.Waypoints = taxiOutRoute(gate)
			ac.Gate = ""
			ac.TimerTicks = 0
		}

	case models.StatusTaxiOut:
		moveAircraft(ac)
		if len(ac.Waypoints) == 0 {
			ac.Status = models.StatusHoldShort
			ac.TimerTicks = holdShortTicks
		}

	case models.StatusHoldShort:
		if ac.TimerTicks > 0 {
			ac.TimerTicks--
			return
		}
		if runwayOccupied(e.state.Aircraft, ac.ID) || finalApproachConflict(e.state.Aircraft, ac.ID) {
			return
		}
		ac.Status = models.StatusTakeoff
		ac.Waypoints = takeoffRoute()

	case models.StatusTakeoff:
		moveAircraft(ac)
		if len(ac.Waypoints) == 0 {
			ac.Status = models.StatusDeparted
			e.setFlightStatusLocked(ac.FlightID, models.FlightDeparted)
			e.tickEvents = append(e.tickEvents, econEvent{kind: evDeparture, amount: ac.Revenue})
			e.logf("%s departed, %d pax", ac.Label(), ac.Passengers)
		}
	}
}

// firstWaiterLocked reports whether ac precedes every other waiting aircraft,
// ordered by wait-start tick then id.
func (e *Engine) firstWaiterLocked(ac *models.Aircraft) bool {
	for i := range e.state.Aircraft {
		o := &e.state.Aircraft[i]
		if o.ID == ac.ID || o.Status != models.StatusWaitingForGate {
			continue
		}
		if o.WaitStart < ac.WaitStart || (o.WaitStart == ac.WaitStart && o.ID < ac.ID) {
			return false
		}
	}
	return true
}
