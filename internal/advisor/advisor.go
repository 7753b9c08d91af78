// Package advisor is the boundary to the optional strategy/negotiation/event
// generator. Every query type has a deterministic offline fallback, so the
// simulation behaves identically whether a generator is wired, slow, or
// absent. Results only ever reach the economy as queued deltas consumed at
// the next tick.
package advisor

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"airport_director/internal/game"
	"airport_director/internal/models"
	"airport_director/pkg/logger"
)

type Decision struct {
	Accepted bool   `json:"accepted"`
	Message  string `json:"message"`
}

// Event is an optional happening suggested by the generator (or fallback).
type Event struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	EffectType  models.EffectKind `json:"effect_type"`
	EffectValue float64           `json:"effect_value"`
}

// Generator is the external text/decision service. Implementations may be
// slow or flaky; the Service treats any error or malformed answer as absence.
type Generator interface {
	Tip(ctx context.Context, st models.GameState) (string, error)
	Negotiate(ctx context.Context, st models.GameState, offer float64) (Decision, error)
	RandomEvent(ctx context.Context, st models.GameState) (*Event, error)
}

// Sink is the slice of the game engine the advisor is allowed to touch.
type Sink interface {
	QueueDelta(d game.EconDelta)
	Announce(msg string)
}

const (
	negotiateLow  = 10000.0
	negotiateHigh = 50000.0

	queryTimeout = 3 * time.Second
)

var fallbackTips = []string{
	"Keep reputation above 75 to grow demand every day.",
	"A second look at the schedule beats a second runway you don't have.",
	"Diversions cost money and reputation; buy gates before you need them.",
	"Tourism campaigns pay off fastest when demand is capped by season.",
	"Watch the hold-short line; departures stuck there back up arrivals.",
	"Widebody flights only show up once demand is high enough to fill them.",
}

var fallbackEvents = []Event{
	{Title: "Travel blog feature", Description: "A viral post praises the terminal.", EffectType: models.EffectTourism, EffectValue: 5},
	{Title: "Charter windfall", Description: "A sports charter pays premium handling fees.", EffectType: models.EffectMoney, EffectValue: 15000},
	{Title: "Conference season", Description: "A regional trade fair books en masse.", EffectType: models.EffectDemand, EffectValue: 10},
	{Title: "Baggage belt outage", Description: "Overtime crews and refunds.", EffectType: models.EffectMoney, EffectValue: -5000},
}

// Service wraps a Generator (possibly nil) with fallbacks, rate limits and a
// small tip cache. It implements game.TickObserver.
type Service struct {
	gen  Generator
	sink Sink
	lg   *logger.Logger

	mu     sync.Mutex
	rng    *rand.Rand
	tipIdx int

	tipLimiter   *rate.Limiter
	eventLimiter *rate.Limiter
	tipCache     *lru.Cache[string, string]
}

// New builds the advisor service. gen may be nil to run fully offline.
func New(gen Generator, sink Sink, lg *logger.Logger, seed int64) *Service {
	if lg == nil {
		lg = logger.Discard()
	}
	cache, _ := lru.New[string, string](32)
	return &Service{
		gen:          gen,
		sink:         sink,
		lg:           lg,
		rng:          rand.New(rand.NewSource(seed)),
		tipLimiter:   rate.NewLimiter(rate.Every(2*time.Minute), 1),
		eventLimiter: rate.NewLimiter(rate.Every(5*time.Minute), 1),
		tipCache:     cache,
	}
}

// Tip returns a short strategic hint for the given state.
func (s *Service) Tip(ctx context.Context, st models.GameState) string {
	key := stateDigest(st)
	if tip, ok := s.tipCache.Get(key); ok {
		return tip
	}
	if s.gen != nil {
		cctx, cancel := context.WithTimeout(ctx, queryTimeout)
		defer cancel()
		if tip, err := s.gen.Tip(cctx, st); err == nil && tip != "" {
			s.tipCache.Add(key, tip)
			return tip
		} else if err != nil {
			s.lg.Warn("advisor tip failed, using fallback", "err", err)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tip := fallbackTips[s.tipIdx%len(fallbackTips)]
	s.tipIdx++
	return tip
}

// Negotiate decides on a numeric offer. The fallback policy is a linear
// acceptance ramp between the two thresholds with random variance on top:
// never below negotiateLow, always above negotiateHigh. An accepted offer is
// queued as a money delta for the next tick.
func (s *Service) Negotiate(ctx context.Context, st models.GameState, offer float64) Decision {
	d, ok := s.generatorNegotiate(ctx, st, offer)
	if !ok {
		d = s.fallbackNegotiate(offer)
	}
	if d.Accepted {
		s.sink.QueueDelta(game.EconDelta{
			Effect: models.EffectMoney,
			Value:  offer,
			Source: "negotiation",
		})
	}
	return d
}

func (s *Service) generatorNegotiate(ctx context.Context, st models.GameState, offer float64) (Decision, bool) {
	if s.gen == nil {
		return Decision{}, false
	}
	cctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	d, err := s.gen.Negotiate(cctx, st, offer)
	if err != nil {
		s.lg.Warn("negotiation generator failed, using fallback", "err", err)
		return Decision{}, false
	}
	if d.Message == "" {
		return Decision{}, false
	}
	return d, true
}

func (s *Service) fallbackNegotiate(offer float64) Decision {
	p := AcceptProbability(offer)
	if p > 0 && p < 1 {
		s.mu.Lock()
		p += (s.rng.Float64()*2 - 1) * 0.1
		s.mu.Unlock()
		if p < 0 {
			p = 0
		}
		if p > 1 {
			p = 1
		}
	}
	s.mu.Lock()
	roll := s.rng.Float64()
	s.mu.Unlock()
	if roll < p {
		return Decision{Accepted: true, Message: "Deal. The partner signs at that figure."}
	}
	return Decision{Accepted: false, Message: "The partner walks away from that offer."}
}

// AcceptProbability is the deterministic core of the fallback negotiation
// policy, before variance.
func AcceptProbability(offer float64) float64 {
	switch {
	case offer < negotiateLow:
		return 0
	case offer >= negotiateHigh:
		return 1
	default:
		return (offer - negotiateLow) / (negotiateHigh - negotiateLow)
	}
}

// ObserveTick implements game.TickObserver. It is invoked in its own
// goroutine after each committed tick; rate limiters keep generator traffic
// and event frequency bounded.
func (s *Service) ObserveTick(st models.GameState) {
	ctx := context.Background()
	if st.AutoAdvisor && s.tipLimiter.Allow() {
		s.sink.Announce("advisor: " + s.Tip(ctx, st))
	}
	if s.eventLimiter.Allow() {
		if ev := s.rollEvent(ctx, st); ev != nil {
			if ev.EffectType != models.EffectNone && ev.EffectValue != 0 {
				s.sink.QueueDelta(game.EconDelta{
					Effect: ev.EffectType,
					Value:  ev.EffectValue,
					Source: ev.Title,
				})
			}
			s.sink.Announce(ev.Title + ": " + ev.Description)
		}
	}
}

// rollEvent asks the generator for an event, falling back to a coin flip
// between nothing and a fixed pool pick.
func (s *Service) rollEvent(ctx context.Context, st models.GameState) *Event {
	if s.gen != nil {
		cctx, cancel := context.WithTimeout(ctx, queryTimeout)
		defer cancel()
		ev, err := s.gen.RandomEvent(cctx, st)
		if err == nil && validEvent(ev) {
			return ev
		}
		if err != nil {
			s.lg.Warn("event generator failed, using fallback", "err", err)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rng.Intn(2) == 0 {
		return nil
	}
	ev := fallbackEvents[s.rng.Intn(len(fallbackEvents))]
	return &ev
}

// validEvent screens malformed generator output.
func validEvent(ev *Event) bool {
	if ev == nil || ev.Title == "" {
		return false
	}
	switch ev.EffectType {
	case models.EffectTourism, models.EffectMoney, models.EffectDemand, models.EffectNone:
		return true
	}
	return false
}

// stateDigest reduces a snapshot to the coarse features a tip depends on.
func stateDigest(st models.GameState) string {
	return fmt.Sprintf("d%d-r%d-a%d-b%d",
		st.Economy.Demand, st.Economy.Reputation, len(st.Aircraft), int(st.Economy.Balance)/10000)
}
