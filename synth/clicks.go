package synth

import (
	"github.com/leandertoney/tastelanc/models"
	"github.com/leandertoney/tastelanc/traffic"
)

// Clicks synthesizes action taps across the window. Click volume runs at a
// small fraction of view volume, reflecting the app's view-to-click
// conversion.
func (s *Synthesizer) Clicks(days []traffic.Day) []models.Click {
	clicks := make([]models.Click, 0)

	for _, day := range days {
		for _, r := range s.snap.Restaurants {
			mean := day.Expected(s.weights[r.ID], s.profile.BaseClickRate, s.profile.WeekendClickBoost)
			count := traffic.Count(s.rng, mean, s.profile.Sampler)

			for i := 0; i < count; i++ {
				clicks = append(clicks, models.Click{
					ClickType:    s.clickType(),
					RestaurantID: r.ID,
					VisitorID:    s.visitor(),
					ClickedAt:    traffic.TimeInDay(s.rng, day.Date),
				})
			}
		}
	}
	return clicks
}
