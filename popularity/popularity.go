package popularity

import (
	"math/rand"

	"github.com/leandertoney/tastelanc/models"
)

// Bonus points layered on top of the random base weight. Restaurants with
// more content to discover earn proportionally more synthetic traffic.
const (
	bonusHappyHour = 1.5
	bonusMenu      = 1.0
	bonusEvents    = 2.0
	bonusSpecials  = 1.0
	bonusPremium   = 1.5

	ratingPivot = 3.0
	ratingScale = 0.5

	floorWeight = 0.5
)

// Weights assigns every restaurant a popularity weight in (0, 1], keyed by
// restaurant ID. The most attractive restaurant in the batch always lands
// at exactly 1.0; a rating of 0 means unrated and earns no rating term.
func Weights(rng *rand.Rand, restaurants []models.Restaurant) map[string]float64 {
	weights := make(map[string]float64, len(restaurants))

	max := 0.0
	for _, r := range restaurants {
		w := 1.0 + rng.Float64()*2.0

		if r.HasHappyHour {
			w += bonusHappyHour
		}
		if r.HasMenu {
			w += bonusMenu
		}
		if r.HasEvents {
			w += bonusEvents
		}
		if r.HasSpecials {
			w += bonusSpecials
		}
		if r.AverageRating != nil && *r.AverageRating > 0 {
			w += (*r.AverageRating - ratingPivot) * ratingScale
		}
		if r.TierID == models.PremiumTierID {
			w += bonusPremium
		}

		if w < floorWeight {
			w = floorWeight
		}
		weights[r.ID] = w
		if w > max {
			max = w
		}
	}

	for id, w := range weights {
		weights[id] = w / max
	}
	return weights
}
