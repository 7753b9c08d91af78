package models

// FlightCategory sizes an aircraft; it drives passenger counts, revenue and
// ground speed.
type FlightCategory string

const (
	CategoryRegional   FlightCategory = "regional"
	CategoryNarrowbody FlightCategory = "narrowbody"
	CategoryWidebody   FlightCategory = "widebody"
)

type FlightStatus string

const (
	FlightScheduled FlightStatus = "scheduled"
	FlightOnTime    FlightStatus = "on_time"
	FlightDelayed   FlightStatus = "delayed"
	FlightLanded    FlightStatus = "landed"
	FlightDeparted  FlightStatus = "departed"
	FlightCancelled FlightStatus = "cancelled"
	FlightDiverted  FlightStatus = "diverted"
)

// Terminal reports whether a flight can no longer change.
func (s FlightStatus) Terminal() bool {
	return s == FlightDeparted || s == FlightDiverted || s == FlightCancelled
}

type ScheduledFlight struct {
	ID          string         `json:"id"`
	Airline     string         `json:"airline"`
	Number      string         `json:"number"`
	Category    FlightCategory `json:"category"`
	ArrivalTick int            `json:"arrival_tick"`
	Status      FlightStatus   `json:"status"`
}

type AircraftStatus string

const (
	StatusApproach       AircraftStatus = "approach"
	StatusGoAround       AircraftStatus = "go_around"
	StatusLanding        AircraftStatus = "landing"
	StatusTaxiIn         AircraftStatus = "taxi_in"
	StatusWaitingForGate AircraftStatus = "waiting_for_gate"
	StatusParked         AircraftStatus = "parked"
	StatusTaxiOut        AircraftStatus = "taxi_out"
	StatusHoldShort      AircraftStatus = "hold_short"
	StatusTakeoff        AircraftStatus = "takeoff"
	StatusDeparted       AircraftStatus = "departed"
)

// Stationary reports whether an aircraft in this status does not move.
func (s AircraftStatus) Stationary() bool {
	return s == StatusParked || s == StatusWaitingForGate || s == StatusHoldShort
}

// Waypoint is one step of a fixed route. When FixedHeading is set the
// aircraft snaps to Heading on arrival instead of keeping its travel heading
// (taxi corners, gate parking).
type Waypoint struct {
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Heading      float64 `json:"heading,omitempty"`
	FixedHeading bool    `json:"fixed_heading,omitempty"`
}

type Aircraft struct {
	ID         string         `json:"id"`
	FlightID   string         `json:"flight_id"`
	Airline    string         `json:"airline"`
	Number     string         `json:"number"`
	Category   FlightCategory `json:"category"`
	Status     AircraftStatus `json:"status"`
	X          float64        `json:"x"`
	Y          float64        `json:"y"`
	Heading    float64        `json:"heading"`
	Waypoints  []Waypoint     `json:"waypoints,omitempty"`
	Gate       string         `json:"gate,omitempty"`
	Passengers int            `json:"passengers"`
	Revenue    float64        `json:"revenue"`
	TimerTicks int            `json:"timer_ticks,omitempty"`
	// WaitStart is the tick the aircraft entered WaitingForGate; gates are
	// granted to waiters in ascending WaitStart order.
	WaitStart int `json:"wait_start,omitempty"`
}

// Label is the short text the presentation layer draws next to a blip.
func (a Aircraft) Label() string {
	return a.Airline + a.Number
}

type Date struct {
	Year   int `json:"year"`
	Month  int `json:"month"`
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// EffectKind tags a declarative one-shot effect carried by upgrades and
// external event descriptors.
type EffectKind string

const (
	EffectNone       EffectKind = "none"
	EffectMoney      EffectKind = "money"
	EffectDemand     EffectKind = "demand"
	EffectTourism    EffectKind = "tourism"
	EffectIndustry   EffectKind = "industry"
	EffectReputation EffectKind = "reputation"
	EffectGates      EffectKind = "gates"
)

type Upgrade struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Cost     float64    `json:"cost"`
	Effect   EffectKind `json:"effect"`
	Value    float64    `json:"value"`
	Unlocked bool       `json:"unlocked"`
}

type Economy struct {
	Balance    float64 `json:"balance"`
	Tourism    int     `json:"tourism"`
	Industry   int     `json:"industry"`
	Demand     int     `json:"demand"`
	Reputation int     `json:"reputation"`
}

const (
	DemandMin     = 10
	DemandMax     = 200
	ReputationMin = 0
	ReputationMax = 100
)

// Clamp forces the bounded counters back into their declared ranges. Called
// after every mutation, not just at read time.
func (ec *Economy) Clamp() {
	if ec.Demand < DemandMin {
		ec.Demand = DemandMin
	}
	if ec.Demand > DemandMax {
		ec.Demand = DemandMax
	}
	if ec.Reputation < ReputationMin {
		ec.Reputation = ReputationMin
	}
	if ec.Reputation > ReputationMax {
		ec.Reputation = ReputationMax
	}
	if ec.Tourism < 0 {
		ec.Tourism = 0
	}
	if ec.Industry < 0 {
		ec.Industry = 0
	}
}

type LogEntry struct {
	Tick    int    `json:"tick"`
	Message string `json:"message"`
}

// GameState is the aggregate simulation state. It is owned exclusively by the
// game engine and replaced as a whole each tick; consumers only ever see deep
// copies.
type GameState struct {
	Tick        int               `json:"tick"`
	Date        Date              `json:"date"`
	Economy     Economy           `json:"economy"`
	Schedule    []ScheduledFlight `json:"schedule"`
	Aircraft    []Aircraft        `json:"aircraft"`
	Upgrades    []Upgrade         `json:"upgrades"`
	Gates       map[string]string `json:"gates"`
	Paused      bool              `json:"paused"`
	Speed       int               `json:"speed"`
	AutoAdvisor bool              `json:"auto_advisor"`
	Selected    string            `json:"selected_aircraft,omitempty"`
}

// GateCount returns the unlocked gate capacity.
func (st *GameState) GateCount() int {
	n := 3
	for _, up := range st.Upgrades {
		if up.Effect == EffectGates && up.Unlocked {
			n += int(up.Value)
		}
	}
	return n
}
