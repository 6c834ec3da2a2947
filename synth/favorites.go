package synth

import (
	"sort"
	"time"

	"github.com/leandertoney/tastelanc/models"
)

type favoriteKey struct {
	userID       string
	restaurantID string
}

// Favorites walks the user pool rather than the day window. Each user
// favorites a random number of restaurants drawn from an oversized random
// candidate pool that is then tightened toward popular entries, so popular
// restaurants collect more favorites without a strict weighted draw.
// A (user, restaurant) pair is never emitted twice.
func (s *Synthesizer) Favorites(anchor time.Time) []models.Favorite {
	favorites := make([]models.Favorite, 0)
	seen := make(map[favoriteKey]bool)

	for _, uid := range s.snap.UserIDs {
		target := s.between(s.profile.FavoritesMin, s.profile.FavoritesMax)

		candidates := s.sampleIDs(2 * target)
		sort.SliceStable(candidates, func(i, j int) bool {
			return s.weights[candidates[i]] > s.weights[candidates[j]]
		})
		if len(candidates) > target {
			candidates = candidates[:target]
		}

		for _, rid := range candidates {
			key := favoriteKey{userID: uid, restaurantID: rid}
			if seen[key] {
				continue
			}
			seen[key] = true

			daysAgo := s.between(1, s.profile.FavoritesWindowDays)
			favorites = append(favorites, models.Favorite{
				UserID:       uid,
				RestaurantID: rid,
				CreatedAt: anchor.UTC().Add(-(time.Duration(daysAgo)*24*time.Hour +
					time.Duration(s.rng.Intn(24))*time.Hour +
					time.Duration(s.rng.Intn(60))*time.Minute)),
			})
		}
	}
	return favorites
}
