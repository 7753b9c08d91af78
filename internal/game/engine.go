package game

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/brunoga/deep"

	"airport_director/internal/feed"
	"airport_director/internal/models"
	"airport_director/pkg/logger"
)

const (
	logFeedCapacity = 50

	// Admission control: an arriving flight is diverted instead of spawned
	// when the ground side is already backed up.
	admissionWaitingMax   = 2
	admissionHoldShortMax = 3
)

// TickObserver receives a state snapshot after each committed tick. Calls are
// fire-and-forget; the tick loop never waits on the observer.
type TickObserver interface {
	ObserveTick(st models.GameState)
}

type Options struct {
	Seed               int64
	TickInterval       time.Duration
	StartingBalance    float64
	StartingDemand     int
	StartingReputation int
	Logger             *logger.Logger
}

// Engine owns the simulation state and logic. State is guarded by mu and
// mutated only inside AdvanceTick and the command methods; everything handed
// out is a deep copy.
type Engine struct {
	mu    sync.Mutex
	state models.GameState
	rng   *rand.Rand
	lg    *logger.Logger
	feed  *feed.Ring

	deltas     []EconDelta
	tickEvents []econEvent

	nextFlightSeq   int
	nextAircraftSeq int

	tickInterval time.Duration
	ticker       *time.Ticker
	ctx          context.Context
	cancel       context.CancelFunc

	observer TickObserver
}

func NewEngine(opts Options) *Engine {
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second
	}
	if opts.StartingBalance == 0 {
		opts.StartingBalance = 200000
	}
	if opts.StartingDemand == 0 {
		opts.StartingDemand = 40
	}
	if opts.StartingReputation == 0 {
		opts.StartingReputation = 80
	}
	lg := opts.Logger
	if lg == nil {
		lg = logger.Discard()
	}

	e := &Engine{
		rng:          rand.New(rand.NewSource(opts.Seed)),
		lg:           lg,
		feed:         feed.NewRing(logFeedCapacity),
		tickInterval: opts.TickInterval,
	}
	e.state = models.GameState{
		Date: DateFromTick(0),
		Economy: models.Economy{
			Balance:    opts.StartingBalance,
			Tourism:    10,
			Industry:   10,
			Demand:     opts.StartingDemand,
			Reputation: opts.StartingReputation,
		},
		Upgrades: defaultUpgrades(),
		Speed:    1,
	}
	e.state.Economy.Clamp()
	e.state.Gates = buildGateMap(nil, e.state.GateCount()).snapshot()
	return e
}

// SetObserver wires the post-tick observer (the advisor service).
func (e *Engine) SetObserver(obs TickObserver) {
	e.mu.Lock()
	e.observer = obs
	e.mu.Unlock()
}

// Snapshot returns a deep copy of the full game state.
func (e *Engine) Snapshot() models.GameState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return deep.MustCopy(e.state)
}

// LogFeed returns the activity log, newest first.
func (e *Engine) LogFeed() []models.LogEntry {
	return e.feed.Newest()
}

// Announce writes an externally sourced message to the activity log.
func (e *Engine) Announce(msg string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.logf("%s", msg)
}

func (e *Engine) logf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	e.feed.Push(models.LogEntry{Tick: e.state.Tick, Message: msg})
	e.lg.Info(msg, "tick", e.state.Tick)
}

// AdvanceTick runs one simulation step. Order matters: clock, schedule
// top-up, spawn admission, gate snapshot, aircraft pass, economy, cleanup.
func (e *Engine) AdvanceTick() {
	e.mu.Lock()

	e.state.Tick++
	e.state.Date = DateFromTick(e.state.Tick)
	e.tickEvents = e.tickEvents[:0]

	e.topUpScheduleLocked()
	e.spawnArrivalsLocked()

	gm := buildGateMap(e.state.Aircraft, e.state.GateCount())
	for i := range e.state.Aircraft {
		e.advanceAircraftLocked(&e.state.Aircraft[i], gm)
	}
	e.state.Gates = gm.snapshot()

	for _, ev := range e.tickEvents {
		e.applyEconEventLocked(ev)
	}
	queued := e.deltas
	e.deltas = nil
	for _, d := range queued {
		e.applyDeltaLocked(d)
	}

	e.dropDepartedLocked()
	e.pruneScheduleLocked()

	if e.state.Tick%growthIntervalTicks == 0 {
		e.organicGrowthLocked()
	}

	var snap models.GameState
	obs := e.observer
	if obs != nil {
		snap = deep.MustCopy(e.state)
	}
	e.mu.Unlock()

	if obs != nil {
		go obs.ObserveTick(snap)
	}
}

func (e *Engine) topUpScheduleLocked() {
	if pendingCount(e.state.Schedule) >= scheduleLowWater && e.state.Tick%scheduleInterval != 0 {
		return
	}
	batch := generateFlights(e.rng, e.state.Tick, e.state.Economy.Demand, e.state.GateCount(), e.state.Schedule, e.nextFlightIDLocked)
	if len(batch) == 0 {
		return
	}
	e.state.Schedule = append(e.state.Schedule, batch...)
	e.logf("scheduled %d new arrivals", len(batch))
}

func (e *Engine) nextFlightIDLocked() string {
	e.nextFlightSeq++
	return fmt.Sprintf("flt_%05d", e.nextFlightSeq)
}

// spawnArrivalsLocked admits or diverts every flight whose time has come.
func (e *Engine) spawnArrivalsLocked() {
	waiting, holding := 0, 0
	for _, ac := range e.state.Aircraft {
		switch ac.Status {
		case models.StatusWaitingForGate:
			waiting++
		case models.StatusHoldShort:
			holding++
		}
	}
	for i := range e.state.Schedule {
		f := &e.state.Schedule[i]
		if f.Status != models.FlightScheduled || f.ArrivalTick > e.state.Tick {
			continue
		}
		if waiting >= admissionWaitingMax || holding >= admissionHoldShortMax {
			f.Status = models.FlightDiverted
			e.tickEvents = append(e.tickEvents, econEvent{kind: evDiversion})
			e.logf("%s%s diverted, field congested", f.Airline, f.Number)
			continue
		}
		f.Status = models.FlightOnTime
		ac := e.newAircraftLocked(*f)
		e.state.Aircraft = append(e.state.Aircraft, ac)
		e.logf("%s inbound", ac.Label())
	}
}

func (e *Engine) setFlightStatusLocked(flightID string, st models.FlightStatus) {
	for i := range e.state.Schedule {
		f := &e.state.Schedule[i]
		if f.ID == flightID {
			if !f.Status.Terminal() {
				f.Status = st
			}
			return
		}
	}
}

func (e *Engine) dropDepartedLocked() {
	kept := e.state.Aircraft[:0]
	for _, ac := range e.state.Aircraft {
		if ac.Status != models.StatusDeparted {
			kept = append(kept, ac)
		}
	}
	e.state.Aircraft = kept
}

// pruneScheduleLocked trims terminal flights older than a day so the table
// stays bounded.
func (e *Engine) pruneScheduleLocked() {
	kept := e.state.Schedule[:0]
	for _, f := range e.state.Schedule {
		if f.Status.Terminal() && f.ArrivalTick < e.state.Tick-TicksPerDay {
			continue
		}
		kept = append(kept, f)
	}
	e.state.Schedule = kept
}

// ---- loop control ----

// StartSim starts (or restarts) the ticker loop at the given speed.
func (e *Engine) StartSim(speed int) {
	if speed < 1 {
		speed = 1
	}
	if speed > 4 {
		speed = 4
	}
	e.mu.Lock()
	e.state.Speed = speed
	e.state.Paused = false
	interval := e.tickInterval / time.Duration(speed)
	e.mu.Unlock()

	if e.ticker == nil {
		e.ticker = time.NewTicker(interval)
	} else {
		e.ticker.Reset(interval)
	}
	if e.cancel != nil {
		e.cancel()
	}
	e.ctx, e.cancel = context.WithCancel(context.Background())

	go func(ctx context.Context) {
		for {
			select {
			case <-ctx.Done():
				return
			case <-e.ticker.C:
				if !e.paused() {
					e.AdvanceTick()
				}
			}
		}
	}(e.ctx)
}

// StopSim halts the ticker loop entirely.
func (e *Engine) StopSim() {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	if e.ticker != nil {
		e.ticker.Stop()
		e.ticker = nil
	}
}

// TogglePause flips the paused flag and returns the new value. The ticker
// keeps running; paused ticks are simply skipped.
func (e *Engine) TogglePause() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Paused = !e.state.Paused
	return e.state.Paused
}

func (e *Engine) paused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Paused
}

// SetSpeed updates the tick rate, clamped to 1..4.
func (e *Engine) SetSpeed(speed int) {
	if speed < 1 {
		speed = 1
	}
	if speed > 4 {
		speed = 4
	}
	e.mu.Lock()
	e.state.Speed = speed
	running := e.ticker != nil
	e.mu.Unlock()
	if running {
		e.ticker.Reset(e.tickInterval / time.Duration(speed))
	}
}

// ToggleAutoAdvisor flips the auto-advisor flag and returns the new value.
func (e *Engine) ToggleAutoAdvisor() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.AutoAdvisor = !e.state.AutoAdvisor
	return e.state.AutoAdvisor
}

// SelectAircraft marks an aircraft as selected for the presentation layer;
// an empty id clears the selection.
func (e *Engine) SelectAircraft(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if id == "" {
		e.state.Selected = ""
		return nil
	}
	for _, ac := range e.state.Aircraft {
		if ac.ID == id {
			e.state.Selected = id
			return nil
		}
	}
	return fmt.Errorf("unknown aircraft %q", id)
}
