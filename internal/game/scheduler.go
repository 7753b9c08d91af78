package game

import (
	"math"
	"math/rand"
	"sort"

	"airport_director/internal/models"
)

const (
	// gateWindowTicks is the width of the gate occupancy window presumed for
	// every scheduled flight, starting at its arrival tick.
	gateWindowTicks = 450

	scheduleMinAhead = 60  // 1 hour
	scheduleMaxAhead = 420 // 7 hours
	slotRetryBudget  = 15

	scheduleLowWater = 3
	scheduleInterval = 360
)

var airlineCodes = []string{"ACA", "DAL", "UAL", "AAL", "SWA", "BAW", "AFR", "KLM", "JAL", "DLH"}

type interval struct {
	start, end int
}

// maxOverlap runs a sweep-line over the interval boundary events and returns
// the maximum concurrency. On equal ticks end events are processed before
// start events, so an interval ending exactly when another begins does not
// count as overlapping.
func maxOverlap(intervals []interval) int {
	type boundary struct {
		tick  int
		delta int
	}
	events := make([]boundary, 0, 2*len(intervals))
	for _, iv := range intervals {
		events = append(events, boundary{iv.start, +1}, boundary{iv.end, -1})
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].delta < events[j].delta
	})
	best, cur := 0, 0
	for _, ev := range events {
		cur += ev.delta
		if cur > best {
			best = cur
		}
	}
	return best
}

// committedIntervals collects the gate occupancy windows of flights that still
// hold a claim on future gate time.
func committedIntervals(pending []models.ScheduledFlight) []interval {
	var out []interval
	for _, f := range pending {
		if f.Status == models.FlightScheduled || f.Status == models.FlightOnTime || f.Status == models.FlightDelayed {
			out = append(out, interval{f.ArrivalTick, f.ArrivalTick + gateWindowTicks})
		}
	}
	return out
}

// generateFlights produces a new batch of future flights sized by seasonal
// effective demand. Each candidate gets up to slotRetryBudget random slots;
// a slot is accepted only if adding its window never pushes concurrent gate
// occupancy above gateCount. Candidates that never fit are dropped for this
// batch. The result is sorted by arrival tick.
func generateFlights(rng *rand.Rand, now, baseDemand, gateCount int, pending []models.ScheduledFlight, nextID func() string) []models.ScheduledFlight {
	effective := int(math.Floor(float64(baseDemand) * SeasonalityFactor(MonthFromTick(now))))
	target := int(math.Ceil(float64(effective) / 12.0))
	if target < 1 {
		target = 1
	}

	committed := committedIntervals(pending)
	var batch []models.ScheduledFlight
	for i := 0; i < target; i++ {
		placed := -1
		for try := 0; try < slotRetryBudget; try++ {
			arrival := now + scheduleMinAhead + rng.Intn(scheduleMaxAhead-scheduleMinAhead+1)
			cand := interval{arrival, arrival + gateWindowTicks}
			if maxOverlap(append(append([]interval{}, committed...), cand)) <= gateCount {
				placed = arrival
				committed = append(committed, cand)
				break
			}
		}
		if placed < 0 {
			continue
		}
		airline := airlineCodes[rng.Intn(len(airlineCodes))]
		batch = append(batch, models.ScheduledFlight{
			ID:          nextID(),
			Airline:     airline,
			Number:      flightNumber(rng),
			Category:    categoryFor(rng, effective),
			ArrivalTick: placed,
			Status:      models.FlightScheduled,
		})
	}
	sort.Slice(batch, func(i, j int) bool { return batch[i].ArrivalTick < batch[j].ArrivalTick })
	return batch
}

func flightNumber(rng *rand.Rand) string {
	n := 100 + rng.Intn(900)
	return string([]byte{byte('0' + n/100), byte('0' + n/10%10), byte('0' + n%10)})
}

// categoryFor picks an aircraft category; higher effective demand unlocks
// narrowbody and widebody equipment with increasing probability.
func categoryFor(rng *rand.Rand, effective int) models.FlightCategory {
	switch {
	case effective >= 120:
		r := rng.Float64()
		if r < 0.25 {
			return models.CategoryWidebody
		} else if r < 0.70 {
			return models.CategoryNarrowbody
		}
		return models.CategoryRegional
	case effective >= 60:
		if rng.Float64() < 0.40 {
			return models.CategoryNarrowbody
		}
		return models.CategoryRegional
	default:
		return models.CategoryRegional
	}
}

// pendingCount counts flights still waiting to arrive.
func pendingCount(schedule []models.ScheduledFlight) int {
	n := 0
	for _, f := range schedule {
		if f.Status == models.FlightScheduled {
			n++
		}
	}
	return n
}
