package synth

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/leandertoney/tastelanc/config"
	"github.com/leandertoney/tastelanc/models"
	"github.com/leandertoney/tastelanc/popularity"
)

// Synthesizer produces the four synthetic event kinds from one entity
// snapshot. All randomness flows through the injected source, so two
// synthesizers built from the same seed and snapshot emit identical events.
type Synthesizer struct {
	rng     *rand.Rand
	profile config.Profile
	snap    models.Snapshot
	ids     []string
	weights map[string]float64
}

// New scores the snapshot and returns a ready synthesizer.
func New(rng *rand.Rand, profile config.Profile, snap models.Snapshot) *Synthesizer {
	ids := make([]string, len(snap.Restaurants))
	for i, r := range snap.Restaurants {
		ids[i] = r.ID
	}
	return &Synthesizer{
		rng:     rng,
		profile: profile,
		snap:    snap,
		ids:     ids,
		weights: popularity.Weights(rng, snap.Restaurants),
	}
}

// Weights exposes the popularity scores, keyed by restaurant ID.
func (s *Synthesizer) Weights() map[string]float64 {
	return s.weights
}

// visitor picks a real user or mints a fresh anonymous device token. Tokens
// are unique per call so they never trip visitor-level store constraints.
func (s *Synthesizer) visitor() string {
	if s.rng.Float64() < s.profile.RealUserProb && len(s.snap.UserIDs) > 0 {
		return s.snap.UserIDs[s.rng.Intn(len(s.snap.UserIDs))]
	}
	u, _ := uuid.NewRandomFromReader(s.rng)
	return fmt.Sprintf("anon-%x", u[0:6])
}

// between draws an integer in [min, max].
func (s *Synthesizer) between(min, max int) int {
	return min + s.rng.Intn(max-min+1)
}

// sampleIDs picks up to k distinct restaurant IDs in random order.
func (s *Synthesizer) sampleIDs(k int) []string {
	ids := make([]string, len(s.ids))
	copy(ids, s.ids)
	if k > len(ids) {
		k = len(ids)
	}
	for i := 0; i < k; i++ {
		j := i + s.rng.Intn(len(ids)-i)
		ids[i], ids[j] = ids[j], ids[i]
	}
	return ids[:k]
}

// clickTypes is the categorical distribution of tapped actions. Directions,
// calls and website visits dominate; social actions trail.
var clickTypes = []struct {
	name   string
	weight int
}{
	{"phone", 25},
	{"website", 20},
	{"directions", 25},
	{"share", 5},
	{"favorite", 8},
	{"happy_hour", 7},
	{"event", 5},
	{"menu", 5},
}

func (s *Synthesizer) clickType() string {
	total := 0
	for _, ct := range clickTypes {
		total += ct.weight
	}
	n := s.rng.Intn(total)
	for _, ct := range clickTypes {
		n -= ct.weight
		if n < 0 {
			return ct.name
		}
	}
	return clickTypes[len(clickTypes)-1].name
}
