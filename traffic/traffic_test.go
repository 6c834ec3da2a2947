package traffic

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leandertoney/tastelanc/config"
)

func TestGrowthRampsFromHalfToFull(t *testing.T) {
	assert.Equal(t, 0.5, Growth(0, 30))
	assert.Equal(t, 1.0, Growth(29, 30))
	assert.Equal(t, 0.75, Growth(15, 31))

	// Degenerate windows never scale down.
	assert.Equal(t, 1.0, Growth(0, 1))
	assert.Equal(t, 1.0, Growth(0, 0))

	prev := 0.0
	for i := 0; i < 90; i++ {
		g := Growth(i, 90)
		assert.GreaterOrEqual(t, g, prev)
		prev = g
	}
}

func TestWeekendFactorFridayThroughSunday(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 8, d, 0, 0, 0, 0, time.UTC)
	}

	assert.Equal(t, 1.0, WeekendFactor(day(20), 1.4)) // Thursday
	assert.Equal(t, 1.4, WeekendFactor(day(21), 1.4)) // Friday
	assert.Equal(t, 1.4, WeekendFactor(day(22), 1.4)) // Saturday
	assert.Equal(t, 1.4, WeekendFactor(day(23), 1.4)) // Sunday
	assert.Equal(t, 1.0, WeekendFactor(day(24), 1.4)) // Monday
	assert.Equal(t, 1.0, WeekendFactor(day(25), 1.4)) // Tuesday
}

func TestWindowEndsJustBeforeAnchor(t *testing.T) {
	anchor := time.Date(2026, 8, 25, 14, 30, 0, 0, time.UTC)
	days := Window(rand.New(rand.NewSource(1)), anchor, 7)
	require.Len(t, days, 7)

	assert.Equal(t, time.Date(2026, 8, 18, 0, 0, 0, 0, time.UTC), days[0].Date)
	assert.Equal(t, time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), days[6].Date)
	assert.Equal(t, 0.5, days[0].Growth)
	assert.Equal(t, 1.0, days[6].Growth)

	for _, d := range days {
		assert.Equal(t, time.UTC, d.Date.Location())
		assert.Zero(t, d.Date.Hour())
		assert.GreaterOrEqual(t, d.Noise, 0.7)
		assert.Less(t, d.Noise, 1.3)
	}
}

func TestWindowDeterministic(t *testing.T) {
	anchor := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	first := Window(rand.New(rand.NewSource(5)), anchor, 30)
	second := Window(rand.New(rand.NewSource(5)), anchor, 30)
	assert.Equal(t, first, second)

	// Different days run at visibly different noise levels.
	distinct := map[float64]bool{}
	for _, d := range first {
		distinct[d.Noise] = true
	}
	assert.Greater(t, len(distinct), 1)
}

func TestExpectedAppliesAllModifiers(t *testing.T) {
	friday := Day{Date: time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC), Growth: 0.75, Noise: 1.0}
	monday := Day{Date: time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), Growth: 0.75, Noise: 1.0}

	assert.InDelta(t, 0.8*8.0*1.4*0.75, friday.Expected(0.8, 8.0, 1.4), 1e-9)
	assert.InDelta(t, 0.8*8.0*0.75, monday.Expected(0.8, 8.0, 1.4), 1e-9)

	noisy := Day{Date: monday.Date, Growth: 1.0, Noise: 0.7}
	assert.InDelta(t, 1.2*0.7, noisy.Expected(1.0, 1.2, 1.3), 1e-9)
}

func TestCountGaussCentersOnMean(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	total := 0
	for i := 0; i < 20000; i++ {
		c := Count(rng, 8.0, config.SamplerGauss)
		require.GreaterOrEqual(t, c, 0)
		total += c
	}

	// Truncation pulls the average a little under the mean.
	avg := float64(total) / 20000
	assert.Greater(t, avg, 7.0)
	assert.Less(t, avg, 8.5)
}

func TestCountGaussZeroMean(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		assert.Zero(t, Count(rng, 0, config.SamplerGauss))
	}
}

func TestCountExpoCapped(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	sawCap := false
	for i := 0; i < 1000; i++ {
		c := Count(rng, 50.0, config.SamplerExpo)
		require.GreaterOrEqual(t, c, 0)
		require.LessOrEqual(t, c, 8)
		if c == 8 {
			sawCap = true
		}
	}
	assert.True(t, sawCap)
}

func TestCountExpoTinyMeanStaysQuiet(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	total := 0
	for i := 0; i < 1000; i++ {
		total += Count(rng, 0, config.SamplerExpo)
	}
	assert.Less(t, float64(total)/1000, 0.5)
}

func TestTimeInDayBiasedTowardWakingHours(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	date := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)

	peak := 0
	for i := 0; i < 20000; i++ {
		ts := TimeInDay(rng, date)
		require.Equal(t, date.Year(), ts.Year())
		require.Equal(t, date.Month(), ts.Month())
		require.Equal(t, date.Day(), ts.Day())
		require.Equal(t, time.UTC, ts.Location())
		require.GreaterOrEqual(t, ts.Hour(), 0)
		require.Less(t, ts.Hour(), 24)

		if ts.Hour() >= 10 && ts.Hour() <= 22 {
			peak++
		}
	}

	// 80% explicit bias plus the slice of uniform draws landing there.
	assert.Greater(t, float64(peak)/20000, 0.85)
}
