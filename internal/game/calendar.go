package game

import (
	"math"

	"airport_director/internal/models"
)

// The simulated calendar is not a real calendar: days are exactly 1440 ticks
// (minutes), months exactly 30 days, years exactly 12 months. It exists only
// so seasonality math has a month index to work with.
const (
	TicksPerDay   = 1440
	DaysPerMonth  = 30
	TicksPerMonth = TicksPerDay * DaysPerMonth
	TicksPerYear  = TicksPerMonth * 12

	epochYear = 2024
	// The game opens mid-year, at the start of month 6.
	epochOffsetTicks = 6 * TicksPerMonth
)

// DateFromTick maps the tick counter to a calendar date.
func DateFromTick(tick int) models.Date {
	t := tick + epochOffsetTicks
	return models.Date{
		Year:   epochYear + t/TicksPerYear,
		Month:  (t % TicksPerYear) / TicksPerMonth,
		Day:    1 + (t%TicksPerMonth)/TicksPerDay,
		Hour:   (t % TicksPerDay) / 60,
		Minute: t % 60,
	}
}

// MonthFromTick is DateFromTick reduced to the month index 0..11.
func MonthFromTick(tick int) int {
	return ((tick + epochOffsetTicks) % TicksPerYear) / TicksPerMonth
}

// SeasonalityFactor scales schedule density by month: a sinusoid peaking at
// month 6 (summer) and bottoming out at month 0, amplitude ±30% around 1.0.
// Live scheduling and long-range projections must both use this exact curve.
func SeasonalityFactor(month int) float64 {
	return 1.0 + 0.3*math.Sin(2*math.Pi*float64(month-3)/12.0)
}
