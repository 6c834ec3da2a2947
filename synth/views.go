package synth

import (
	"fmt"

	"github.com/leandertoney/tastelanc/models"
	"github.com/leandertoney/tastelanc/traffic"
)

// Views synthesizes detail-page views for every restaurant across the
// window. A view can pull correlated tab views behind it when the
// restaurant has that content, modeling one session touching several tabs.
func (s *Synthesizer) Views(days []traffic.Day) []models.PageView {
	views := make([]models.PageView, 0)

	for _, day := range days {
		for _, r := range s.snap.Restaurants {
			mean := day.Expected(s.weights[r.ID], s.profile.BaseViewRate, s.profile.WeekendViewBoost)
			count := traffic.Count(s.rng, mean, s.profile.Sampler)

			for i := 0; i < count; i++ {
				base := models.PageView{
					PageType:     "restaurant",
					PagePath:     fmt.Sprintf("/mobile/restaurantdetail/%s", r.ID),
					RestaurantID: r.ID,
					VisitorID:    s.visitor(),
					UserAgent:    models.MobileUserAgent,
					ViewedAt:     traffic.TimeInDay(s.rng, day.Date),
				}
				views = append(views, base)

				if r.HasHappyHour && s.rng.Float64() < s.profile.TabHappyHourProb {
					views = append(views, tabOf(base, "happy_hour", fmt.Sprintf("/mobile/restauranthappyhours/%s", r.ID)))
				}
				if r.HasMenu && s.rng.Float64() < s.profile.TabMenuProb {
					views = append(views, tabOf(base, "menu", fmt.Sprintf("/mobile/restaurantmenu/%s", r.ID)))
				}
				if r.HasEvents && s.rng.Float64() < s.profile.TabEventsProb {
					views = append(views, tabOf(base, "events", fmt.Sprintf("/mobile/restaurantevents/%s", r.ID)))
				}
			}
		}
	}
	return views
}

// tabOf derives a tab view from its base view, keeping the visitor and
// timestamp so the pair reads as one session.
func tabOf(base models.PageView, pageType, pagePath string) models.PageView {
	return models.PageView{
		PageType:     pageType,
		PagePath:     pagePath,
		RestaurantID: base.RestaurantID,
		VisitorID:    base.VisitorID,
		UserAgent:    base.UserAgent,
		ViewedAt:     base.ViewedAt,
	}
}
