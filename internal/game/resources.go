package game

import (
	"math"

	"airport_director/internal/models"
)

// gateMap is the per-tick gate occupancy snapshot: gate id -> occupying
// aircraft id ("" when free). It is derived from aircraft state at the start
// of each tick and never mutated independently, except that claims made while
// advancing aircraft within the same tick are written back immediately so a
// later aircraft cannot double-claim. Releases (an aircraft vacating a gate)
// only become visible on the next tick's rebuild.
type gateMap struct {
	occ   map[string]string
	count int
}

// buildGateMap scans the active aircraft and rebuilds the snapshot from
// scratch. Aircraft in TaxiIn, Parked or WaitingForGate with a target gate
// hold exactly that slot.
func buildGateMap(aircraft []models.Aircraft, gateCount int) *gateMap {
	gm := &gateMap{occ: make(map[string]string, gateCount), count: gateCount}
	for _, id := range gateOrder[:gateCount] {
		gm.occ[id] = ""
	}
	for _, ac := range aircraft {
		if ac.Gate == "" {
			continue
		}
		switch ac.Status {
		case models.StatusTaxiIn, models.StatusParked, models.StatusWaitingForGate:
			gm.occ[ac.Gate] = ac.ID
		}
	}
	return gm
}

// freeGate returns the first unclaimed gate id in canonical order.
func (gm *gateMap) freeGate() (string, bool) {
	for _, id := range gateOrder[:gm.count] {
		if gm.occ[id] == "" {
			return id, true
		}
	}
	return "", false
}

// claim records a mid-tick gate assignment.
func (gm *gateMap) claim(gate, aircraftID string) {
	gm.occ[gate] = aircraftID
}

func (gm *gateMap) snapshot() map[string]string {
	out := make(map[string]string, len(gm.occ))
	for k, v := range gm.occ {
		out[k] = v
	}
	return out
}

// runwayOccupied reports whether any aircraft other than except holds the
// runway: status Takeoff or Landing, or physically inside the runway box.
func runwayOccupied(aircraft []models.Aircraft, except string) bool {
	for _, ac := range aircraft {
		if ac.ID == except {
			continue
		}
		if ac.Status == models.StatusTakeoff || ac.Status == models.StatusLanding {
			return true
		}
		if runwayBox.contains(ac.X, ac.Y) && !ac.Status.Stationary() {
			return true
		}
	}
	return false
}

// finalApproachConflict reports whether any aircraft on approach is close
// enough to the threshold that a departure cannot be released.
func finalApproachConflict(aircraft []models.Aircraft, except string) bool {
	for _, ac := range aircraft {
		if ac.ID == except || ac.Status != models.StatusApproach {
			continue
		}
		if distToThreshold(ac.X, ac.Y) < finalApproachDist {
			return true
		}
	}
	return false
}

func distToThreshold(x, y float64) float64 {
	return math.Hypot(x-thresholdX, y-thresholdY)
}
