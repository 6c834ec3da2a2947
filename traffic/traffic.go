package traffic

import (
	"math/rand"
	"time"

	"github.com/leandertoney/tastelanc/config"
)

const (
	noiseMin  = 0.7
	noiseSpan = 0.6

	// Most synthetic activity lands between 10:00 and 22:00.
	peakHourProb = 0.8
	peakStart    = 10
	peakHours    = 13

	gaussSpread = 0.45
	expoCap     = 8.0
	expoMinMean = 0.1
)

// Day is one calendar day of the backfill window, carrying the modifiers
// shared by every restaurant on that day.
type Day struct {
	Date   time.Time
	Growth float64
	Noise  float64
}

// Window enumerates the days days strictly before anchor, oldest first.
// Growth ramps so the app appears to have been gaining traction across the
// window; noise is drawn once per day so whole days run hot or cold.
func Window(rng *rand.Rand, anchor time.Time, days int) []Day {
	out := make([]Day, 0, days)
	for i := 0; i < days; i++ {
		d := anchor.UTC().AddDate(0, 0, i-days)
		out = append(out, Day{
			Date:   time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC),
			Growth: Growth(i, days),
			Noise:  noiseMin + rng.Float64()*noiseSpan,
		})
	}
	return out
}

// Growth ramps linearly from 0.5 on the oldest day to 1.0 on the newest,
// so the window opens at exactly half the closing traffic level.
func Growth(i, n int) float64 {
	if n <= 1 {
		return 1.0
	}
	return 0.5 + 0.5*float64(i)/float64(n-1)
}

// WeekendFactor returns boost on Friday through Sunday, 1.0 otherwise.
// Restaurant traffic peaks around the weekend, starting Friday.
func WeekendFactor(date time.Time, boost float64) float64 {
	switch date.Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		return boost
	}
	return 1.0
}

// Expected is the mean event count for one restaurant on this day.
func (d Day) Expected(weight, base, weekendBoost float64) float64 {
	return weight * base * WeekendFactor(d.Date, weekendBoost) * d.Growth * d.Noise
}

// Count samples an event count around mean using the configured strategy.
// Gauss gives smooth volumes for view-scale means; expo gives the long-idle,
// short-burst shape that suits click-scale means, capped to keep a single
// restaurant-day from dominating.
func Count(rng *rand.Rand, mean float64, sampler string) int {
	switch sampler {
	case config.SamplerExpo:
		if mean < expoMinMean {
			mean = expoMinMean
		}
		v := mean * rng.ExpFloat64()
		if v > expoCap {
			v = expoCap
		}
		return int(v)
	default:
		v := rng.NormFloat64()*(gaussSpread*mean) + mean
		if v < 0 {
			return 0
		}
		return int(v)
	}
}

// TimeInDay places a timestamp within date's calendar day, biased toward
// waking hours.
func TimeInDay(rng *rand.Rand, date time.Time) time.Time {
	var hour int
	if rng.Float64() < peakHourProb {
		hour = peakStart + rng.Intn(peakHours)
	} else {
		hour = rng.Intn(24)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, rng.Intn(60), rng.Intn(60), 0, time.UTC)
}
