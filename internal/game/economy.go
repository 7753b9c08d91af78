package game

import (
	"fmt"
	"strings"

	"airport_director/internal/models"
)

const (
	diversionPenalty    = 8000.0
	diversionRepPenalty = 5
	goAroundRepPenalty  = 2

	campaignCost  = 20000.0
	campaignBoost = 5

	growthIntervalTicks = TicksPerDay
)

type econEventKind string

const (
	evDeparture econEventKind = "departure"
	evDiversion econEventKind = "diversion"
	evGoAround  econEventKind = "go_around"
)

// econEvent is a discrete lifecycle side effect collected while advancing
// aircraft; the batch is applied to the economy at the end of the tick.
type econEvent struct {
	kind   econEventKind
	amount float64
}

// EconDelta is an externally sourced adjustment (advisor events, negotiation
// payouts). Deltas are queued and consumed at the next tick's economy step so
// asynchronous completions never mutate state mid-tick.
type EconDelta struct {
	Effect models.EffectKind
	Value  float64
	Source string
}

func (e *Engine) applyEconEventLocked(ev econEvent) {
	ec := &e.state.Economy
	switch ev.kind {
	case evDeparture:
		ec.Balance += ev.amount
	case evDiversion:
		ec.Balance -= diversionPenalty
		ec.Reputation -= diversionRepPenalty
	case evGoAround:
		ec.Reputation -= goAroundRepPenalty
	}
	ec.Clamp()
}

func (e *Engine) applyDeltaLocked(d EconDelta) {
	ec := &e.state.Economy
	switch d.Effect {
	case models.EffectMoney:
		ec.Balance += d.Value
	case models.EffectDemand:
		ec.Demand += int(d.Value)
	case models.EffectTourism:
		ec.Tourism += int(d.Value)
	case models.EffectIndustry:
		ec.Industry += int(d.Value)
	case models.EffectReputation:
		ec.Reputation += int(d.Value)
	default:
		return
	}
	ec.Clamp()
	if d.Source != "" {
		e.logf("%s: %s %+d", d.Source, d.Effect, int(d.Value))
	}
}

// QueueDelta enqueues an external economy adjustment for the next tick.
func (e *Engine) QueueDelta(d EconDelta) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.deltas = append(e.deltas, d)
}

// organicGrowthLocked nudges demand on a fixed daily cadence: reputation
// thresholds set the direction, each unlocked upgrade adds a point.
func (e *Engine) organicGrowthLocked() {
	rep := e.state.Economy.Reputation
	delta := 0
	switch {
	case rep >= 75:
		delta = 4
	case rep >= 50:
		delta = 2
	case rep < 30:
		delta = -3
	}
	for _, up := range e.state.Upgrades {
		if up.Unlocked {
			delta++
		}
	}
	e.state.Economy.Demand += delta
	e.state.Economy.Clamp()
}

// defaultUpgrades is the declarative purchase catalog. Effects are tagged
// variants interpreted by applyUpgradeEffectLocked, applied exactly once.
func defaultUpgrades() []models.Upgrade {
	return []models.Upgrade{
		{ID: "radar_system", Name: "Approach Radar", Cost: 450000, Effect: models.EffectDemand, Value: 25},
		{ID: "terminal_expansion", Name: "Terminal Expansion", Cost: 800000, Effect: models.EffectGates, Value: 1},
		{ID: "duty_free_mall", Name: "Duty-Free Mall", Cost: 300000, Effect: models.EffectTourism, Value: 15},
		{ID: "cargo_hub", Name: "Cargo Hub", Cost: 600000, Effect: models.EffectIndustry, Value: 20},
	}
}

// PurchaseUpgrade debits the cost and applies the upgrade's one-time effect.
// Already-unlocked or unaffordable purchases leave state unchanged.
func (e *Engine) PurchaseUpgrade(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.state.Upgrades {
		up := &e.state.Upgrades[i]
		if up.ID != id {
			continue
		}
		if up.Unlocked {
			return fmt.Errorf("upgrade %s already unlocked", id)
		}
		if e.state.Economy.Balance < up.Cost {
			return fmt.Errorf("insufficient balance for %s", id)
		}
		e.state.Economy.Balance -= up.Cost
		up.Unlocked = true
		e.applyUpgradeEffectLocked(*up)
		e.state.Economy.Clamp()
		e.logf("purchased %s", up.Name)
		return nil
	}
	return fmt.Errorf("unknown upgrade %q", id)
}

func (e *Engine) applyUpgradeEffectLocked(up models.Upgrade) {
	ec := &e.state.Economy
	switch up.Effect {
	case models.EffectDemand:
		ec.Demand += int(up.Value)
	case models.EffectTourism:
		ec.Tourism += int(up.Value)
	case models.EffectIndustry:
		ec.Industry += int(up.Value)
	case models.EffectReputation:
		ec.Reputation += int(up.Value)
	case models.EffectMoney:
		ec.Balance += up.Value
	case models.EffectGates:
		// Capacity is derived from the unlocked flag; nothing to mutate here.
	}
}

// RunCampaign spends a fixed budget on a tourism or industry push, lifting
// the matching score and demand.
func (e *Engine) RunCampaign(kind string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.Economy.Balance < campaignCost {
		return fmt.Errorf("insufficient balance for campaign")
	}
	ec := &e.state.Economy
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "tourism":
		ec.Tourism += campaignBoost
	case "industry":
		ec.Industry += campaignBoost
	default:
		return fmt.Errorf("unknown campaign kind %q", kind)
	}
	ec.Balance -= campaignCost
	ec.Demand += campaignBoost
	ec.Clamp()
	e.logf("%s campaign launched", kind)
	return nil
}
