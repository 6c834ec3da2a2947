package popularity

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leandertoney/tastelanc/models"
)

func rating(v float64) *float64 { return &v }

// anchor always outscores everything: its raw weight is at least 9.0 while
// a bare restaurant can never exceed 3.0 plus a rating term.
func anchor() models.Restaurant {
	return models.Restaurant{
		ID:            "anchor",
		Name:          "Anchor",
		AverageRating: rating(5.0),
		TierID:        models.PremiumTierID,
		HasHappyHour:  true,
		HasMenu:       true,
		HasEvents:     true,
		HasSpecials:   true,
	}
}

func TestWeightsNormalizedToUnitMax(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	restaurants := []models.Restaurant{
		anchor(),
		{ID: "plain", Name: "Plain"},
		{ID: "rated", Name: "Rated", AverageRating: rating(4.2)},
		{ID: "hh", Name: "HH", HasHappyHour: true},
	}

	weights := Weights(rng, restaurants)
	require.Len(t, weights, len(restaurants))

	max := 0.0
	for id, w := range weights {
		assert.Greater(t, w, 0.0, "weight for %s", id)
		assert.LessOrEqual(t, w, 1.0, "weight for %s", id)
		if w > max {
			max = w
		}
	}
	assert.Equal(t, 1.0, max)
	assert.Equal(t, 1.0, weights["anchor"])
}

func TestContentAlwaysBeatsBare(t *testing.T) {
	for seed := int64(0); seed < 100; seed++ {
		rng := rand.New(rand.NewSource(seed))
		weights := Weights(rng, []models.Restaurant{
			anchor(),
			{ID: "bare", Name: "Bare", AverageRating: rating(2.0)},
		})
		require.Greater(t, weights["anchor"], weights["bare"], "seed %d", seed)
	}
}

func TestZeroRatingMeansUnrated(t *testing.T) {
	// Identical draw sequences, so the only difference is the rating term.
	probeWeight := func(seed int64, r *float64) float64 {
		rng := rand.New(rand.NewSource(seed))
		weights := Weights(rng, []models.Restaurant{
			anchor(),
			{ID: "probe", Name: "Probe", AverageRating: r},
		})
		return weights["probe"]
	}

	for seed := int64(0); seed < 20; seed++ {
		nilW := probeWeight(seed, nil)
		zeroW := probeWeight(seed, rating(0))
		ratedW := probeWeight(seed, rating(4.0))

		assert.Equal(t, nilW, zeroW, "seed %d", seed)
		assert.Greater(t, ratedW, nilW, "seed %d", seed)
	}
}

func TestFloorKeepsTerribleRestaurantsVisible(t *testing.T) {
	// A 0.2-rated restaurant would go negative on bad base draws without
	// the floor. Raw weights never exceed 11, so the floored weight can
	// never normalize below 0.5/11.
	for seed := int64(0); seed < 300; seed++ {
		rng := rand.New(rand.NewSource(seed))
		weights := Weights(rng, []models.Restaurant{
			anchor(),
			{ID: "awful", Name: "Awful", AverageRating: rating(0.2)},
		})
		require.GreaterOrEqual(t, weights["awful"], 0.04, "seed %d", seed)
	}
}

func TestWeightsDeterministic(t *testing.T) {
	restaurants := []models.Restaurant{
		anchor(),
		{ID: "a", Name: "A", HasMenu: true},
		{ID: "b", Name: "B", AverageRating: rating(3.8), HasEvents: true},
	}

	first := Weights(rand.New(rand.NewSource(7)), restaurants)
	second := Weights(rand.New(rand.NewSource(7)), restaurants)
	assert.Equal(t, first, second)
}

func TestWeightsEmptyBatch(t *testing.T) {
	weights := Weights(rand.New(rand.NewSource(1)), nil)
	assert.Empty(t, weights)
}
