package game

import (
	"testing"

	"airport_director/internal/models"
)

// stepAircraft runs one state-machine pass the way AdvanceTick does, without
// the clock, scheduler and economy stages around it.
func stepAircraft(e *Engine) {
	gm := buildGateMap(e.state.Aircraft, e.state.GateCount())
	for i := range e.state.Aircraft {
		e.advanceAircraftLocked(&e.state.Aircraft[i], gm)
	}
	e.state.Gates = gm.snapshot()
}

func newTestEngine(t *testing.T, seed int64) *Engine {
	t.Helper()
	return NewEngine(Options{Seed: seed})
}

func TestMoveAircraftHeadingAndStep(t *testing.T) {
	ac := models.Aircraft{
		Category:  models.CategoryRegional,
		Status:    models.StatusApproach,
		Waypoints: []models.Waypoint{{X: 0, Y: -100}},
	}
	moveAircraft(&ac)
	if ac.Heading != 0 {
		t.Fatalf("northbound heading = %f, want 0", ac.Heading)
	}
	if ac.Y != -3 || ac.X != 0 {
		t.Fatalf("position after one step = (%f, %f), want (0, -3)", ac.X, ac.Y)
	}
}

func TestMoveAircraftSnapsToWaypoint(t *testing.T) {
	ac := models.Aircraft{
		Category:  models.CategoryRegional,
		Status:    models.StatusApproach,
		Waypoints: []models.Waypoint{{X: 2, Y: 0}},
	}
	moveAircraft(&ac)
	if ac.X != 2 || ac.Y != 0 {
		t.Fatalf("expected snap to (2, 0), got (%f, %f)", ac.X, ac.Y)
	}
	if len(ac.Waypoints) != 0 {
		t.Fatalf("waypoint not consumed")
	}
	if ac.Heading != 90 {
		t.Fatalf("eastbound heading = %f, want 90", ac.Heading)
	}
}

func TestMoveAircraftFixedHeadingOverride(t *testing.T) {
	ac := models.Aircraft{
		Category:  models.CategoryRegional,
		Status:    models.StatusTaxiIn,
		Waypoints: []models.Waypoint{{X: 1, Y: 0, Heading: 270, FixedHeading: true}},
	}
	moveAircraft(&ac)
	if ac.Heading != 270 {
		t.Fatalf("fixed heading not applied: got %f", ac.Heading)
	}
}

func TestMoveAircraftStationaryStatusesHold(t *testing.T) {
	ac := models.Aircraft{
		Category:  models.CategoryRegional,
		Status:    models.StatusParked,
		X:         10, Y: 20,
		Waypoints: []models.Waypoint{{X: 100, Y: 100}},
	}
	moveAircraft(&ac)
	if ac.X != 10 || ac.Y != 20 {
		t.Fatalf("parked aircraft moved to (%f, %f)", ac.X, ac.Y)
	}
}

func TestTaxiInClaimsNextFreeGate(t *testing.T) {
	e := newTestEngine(t, 1)
	e.state.Aircraft = []models.Aircraft{
		{ID: "p1", Status: models.StatusParked, Gate: "gate_1", TimerTicks: 999},
		{ID: "p2", Status: models.StatusParked, Gate: "gate_2", TimerTicks: 999},
		{ID: "in", Status: models.StatusTaxiIn, Category: models.CategoryRegional, X: 620, Y: 300},
	}
	stepAircraft(e)

	in := &e.state.Aircraft[2]
	if in.Gate != "gate_3" {
		t.Fatalf("taxiing aircraft claimed %q, want gate_3", in.Gate)
	}
	if len(in.Waypoints) == 0 {
		t.Fatalf("taxi route not assigned")
	}
	if e.state.Gates["gate_3"] != "in" {
		t.Fatalf("gate snapshot missing claim: %v", e.state.Gates)
	}
}

func TestTwoArrivalsOneGateResolveDeterministically(t *testing.T) {
	e := newTestEngine(t, 1)
	e.state.Aircraft = []models.Aircraft{
		{ID: "p1", Status: models.StatusParked, Gate: "gate_1", TimerTicks: 999},
		{ID: "p2", Status: models.StatusParked, Gate: "gate_2", TimerTicks: 999},
		{ID: "a", Status: models.StatusTaxiIn, Category: models.CategoryRegional, X: 620, Y: 300},
		{ID: "b", Status: models.StatusTaxiIn, Category: models.CategoryRegional, X: 620, Y: 300},
	}
	stepAircraft(e)

	a, b := &e.state.Aircraft[2], &e.state.Aircraft[3]
	if a.Gate != "gate_3" || a.Status != models.StatusTaxiIn {
		t.Fatalf("first arrival: gate %q status %s", a.Gate, a.Status)
	}
	if b.Status != models.StatusWaitingForGate || b.Gate != "" {
		t.Fatalf("second arrival should wait, got gate %q status %s", b.Gate, b.Status)
	}
}

func TestWaiterAcquiresGateOnTickAfterRelease(t *testing.T) {
	e := newTestEngine(t, 1)
	e.state.Tick = 100
	e.state.Aircraft = []models.Aircraft{
		{ID: "w", Status: models.StatusWaitingForGate, Category: models.CategoryRegional, WaitStart: 90},
		{ID: "p1", Status: models.StatusParked, Gate: "gate_1", TimerTicks: 1},
		{ID: "p2", Status: models.StatusParked, Gate: "gate_2", TimerTicks: 999},
		{ID: "p3", Status: models.StatusParked, Gate: "gate_3", TimerTicks: 999},
	}

	// Tick 1: p1's dwell expires and it vacates gate_1, but the release is not
	// visible to the waiter until the snapshot is rebuilt.
	stepAircraft(e)
	w := &e.state.Aircraft[0]
	if w.Status != models.StatusWaitingForGate {
		t.Fatalf("waiter acquired a gate in the same tick as the release")
	}
	if e.state.Aircraft[1].Status != models.StatusTaxiOut {
		t.Fatalf("p1 did not begin taxi out: %s", e.state.Aircraft[1].Status)
	}

	// Tick 2: rebuilt snapshot shows gate_1 free.
	stepAircraft(e)
	if w.Status != models.StatusTaxiIn || w.Gate != "gate_1" {
		t.Fatalf("waiter after release: gate %q status %s", w.Gate, w.Status)
	}
	if w.WaitStart != 0 {
		t.Fatalf("wait marker not cleared")
	}
}

func TestWaiterPriorityByWaitStart(t *testing.T) {
	e := newTestEngine(t, 1)
	e.state.Aircraft = []models.Aircraft{
		// Listed out of priority order on purpose.
		{ID: "late", Status: models.StatusWaitingForGate, WaitStart: 10},
		{ID: "early", Status: models.StatusWaitingForGate, WaitStart: 5},
		{ID: "p2", Status: models.StatusParked, Gate: "gate_2", TimerTicks: 999},
		{ID: "p3", Status: models.StatusParked, Gate: "gate_3", TimerTicks: 999},
	}
	stepAircraft(e)

	if e.state.Aircraft[1].Gate != "gate_1" {
		t.Fatalf("longest-standing waiter passed over: %v", e.state.Aircraft)
	}
	if e.state.Aircraft[0].Status != models.StatusWaitingForGate {
		t.Fatalf("newer waiter should keep waiting")
	}
}

func TestApproachGoesAroundWhenRunwayOccupied(t *testing.T) {
	e := newTestEngine(t, 1)
	e.state.Aircraft = []models.Aircraft{
		{ID: "short_final", Status: models.StatusApproach, Category: models.CategoryRegional, X: 30, Y: 330,
			Waypoints: []models.Waypoint{{X: thresholdX, Y: thresholdY}}},
		{ID: "roller", Status: models.StatusLanding, Category: models.CategoryRegional, X: 300, Y: 300,
			Waypoints: landingRoute()},
	}
	stepAircraft(e)

	sf := &e.state.Aircraft[0]
	if sf.Status != models.StatusGoAround {
		t.Fatalf("expected go-around, got %s", sf.Status)
	}
	if len(sf.Waypoints) != len(goAroundRoute()) {
		t.Fatalf("go-around route not assigned")
	}
	found := false
	for _, ev := range e.tickEvents {
		if ev.kind == evGoAround {
			found = true
		}
	}
	if !found {
		t.Fatalf("go-around economy event not emitted")
	}
}

func TestHoldShortWaitsForFinalTraffic(t *testing.T) {
	// Arrival on short final: departure holds.
	e := newTestEngine(t, 1)
	e.state.Aircraft = []models.Aircraft{
		{ID: "dep", Status: models.StatusHoldShort, Category: models.CategoryRegional, X: 152, Y: 280},
		{ID: "arr", Status: models.StatusApproach, Category: models.CategoryRegional, X: 30, Y: 330,
			Waypoints: []models.Waypoint{{X: thresholdX, Y: thresholdY}}},
	}
	gm := buildGateMap(e.state.Aircraft, e.state.GateCount())
	e.advanceAircraftLocked(&e.state.Aircraft[0], gm)
	if e.state.Aircraft[0].Status != models.StatusHoldShort {
		t.Fatalf("expected hold with traffic on final, got %s", e.state.Aircraft[0].Status)
	}

	// Arrival still far out: departure released.
	e2 := newTestEngine(t, 1)
	e2.state.Aircraft = []models.Aircraft{
		{ID: "dep", Status: models.StatusHoldShort, Category: models.CategoryRegional, X: 152, Y: 280},
		{ID: "arr", Status: models.StatusApproach, Category: models.CategoryRegional, X: -300, Y: 480,
			Waypoints: approachRoute()},
	}
	gm2 := buildGateMap(e2.state.Aircraft, e2.state.GateCount())
	e2.advanceAircraftLocked(&e2.state.Aircraft[0], gm2)
	if e2.state.Aircraft[0].Status != models.StatusTakeoff {
		t.Fatalf("expected release with no final traffic, got %s", e2.state.Aircraft[0].Status)
	}
}

func TestFullArrivalDepartureLifecycle(t *testing.T) {
	e := newTestEngine(t, 5)
	flight := models.ScheduledFlight{
		ID: "flt_00001", Airline: "ACA", Number: "123",
		Category: models.CategoryRegional, Status: models.FlightOnTime,
	}
	e.state.Schedule = []models.ScheduledFlight{flight}
	e.state.Aircraft = []models.Aircraft{e.newAircraftLocked(flight)}
	revenue := e.state.Aircraft[0].Revenue

	seen := map[models.AircraftStatus]bool{}
	departed := false
	for i := 0; i < 3000; i++ {
		stepAircraft(e)
		st := e.state.Aircraft[0].Status
		seen[st] = true
		if st == models.StatusDeparted {
			departed = true
			break
		}
	}
	if !departed {
		t.Fatalf("aircraft never departed; statuses seen: %v", seen)
	}

	for _, want := range []models.AircraftStatus{
		models.StatusLanding, models.StatusTaxiIn, models.StatusParked,
		models.StatusTaxiOut, models.StatusHoldShort, models.StatusTakeoff,
	} {
		if !seen[want] {
			t.Fatalf("lifecycle skipped %s; seen: %v", want, seen)
		}
	}
	if seen[models.StatusWaitingForGate] || seen[models.StatusGoAround] {
		t.Fatalf("unexpected detour on an empty field: %v", seen)
	}

	if e.state.Schedule[0].Status != models.FlightDeparted {
		t.Fatalf("flight status = %s, want departed", e.state.Schedule[0].Status)
	}
	var dep *econEvent
	for i := range e.tickEvents {
		if e.tickEvents[i].kind == evDeparture {
			dep = &e.tickEvents[i]
		}
	}
	if dep == nil || dep.amount != revenue {
		t.Fatalf("departure revenue event missing or wrong: %+v", dep)
	}
}

func TestPassengersAndRevenueByCategory(t *testing.T) {
	e := newTestEngine(t, 11)
	for i := 0; i < 50; i++ {
		pax := passengersFor(e.rng, models.CategoryWidebody)
		if pax < 220 || pax > 300 {
			t.Fatalf("widebody pax %d out of range", pax)
		}
		pax = passengersFor(e.rng, models.CategoryRegional)
		if pax < 40 || pax > 70 {
			t.Fatalf("regional pax %d out of range", pax)
		}
	}
	if got := revenueFor(models.CategoryWidebody, 100); got != 4200 {
		t.Fatalf("widebody revenue = %f, want 4200", got)
	}
	if got := revenueFor(models.CategoryRegional, 100); got != 2800 {
		t.Fatalf("regional revenue = %f, want 2800", got)
	}
}
