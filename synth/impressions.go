package synth

import (
	"log"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/leandertoney/tastelanc/models"
)

// sections the home screen rotates through every half hour.
var sections = []string{
	"featured", "happy_hours", "other_places", "entertainment", "events",
	"search", "category", "specials_view_all", "happy_hours_view_all",
}

type impressionKey struct {
	restaurantID string
	section      string
	visitor      string
	epoch        int64
}

// Impressions simulates the home screen rotation over the trailing days up
// to and including the anchor day: 30-minute epochs from 08:00 to midnight,
// each section showing a random slice of restaurants to a few viewers. A
// colliding (restaurant, section, visitor, epoch) draw is skipped, not
// retried. The result is randomly downsampled when it outgrows the cap.
func (s *Synthesizer) Impressions(anchor time.Time, days int) []models.SectionImpression {
	impressions := make([]models.SectionImpression, 0)
	seen := make(map[impressionKey]bool)

	for offset := 0; offset < days; offset++ {
		d := anchor.UTC().AddDate(0, 0, offset-(days-1))

		for hour := 8; hour < 24; hour++ {
			for half := 0; half < 2; half++ {
				epochTime := time.Date(d.Year(), d.Month(), d.Day(), hour, half*30, 0, 0, time.UTC)
				epochSeed := epochTime.Unix() / 1800

				for _, section := range sections {
					shown := s.sampleIDs(s.between(s.profile.ImpressionShownMin, s.profile.ImpressionShownMax))

					for position, rid := range shown {
						viewers := s.between(s.profile.ImpressionViewersMin, s.profile.ImpressionViewersMax)

						for v := 0; v < viewers; v++ {
							visitor := s.visitor()
							key := impressionKey{restaurantID: rid, section: section, visitor: visitor, epoch: epochSeed}
							if seen[key] {
								continue
							}
							seen[key] = true

							impressions = append(impressions, models.SectionImpression{
								RestaurantID:  rid,
								SectionName:   section,
								PositionIndex: position,
								VisitorID:     visitor,
								EpochSeed:     epochSeed,
								ImpressedAt: time.Date(d.Year(), d.Month(), d.Day(), hour,
									half*30+s.rng.Intn(30), s.rng.Intn(60), 0, time.UTC),
							})
						}
					}
				}
			}
		}

		log.Printf("  📅 Day %d/%d: %s impressions so far", offset+1, days, humanize.Comma(int64(len(impressions))))
	}

	if len(impressions) > s.profile.ImpressionCap {
		log.Printf("  ⚠️  Sampling down from %s to %s impressions",
			humanize.Comma(int64(len(impressions))), humanize.Comma(int64(s.profile.ImpressionCap)))
		for i := 0; i < s.profile.ImpressionCap; i++ {
			j := i + s.rng.Intn(len(impressions)-i)
			impressions[i], impressions[j] = impressions[j], impressions[i]
		}
		impressions = impressions[:s.profile.ImpressionCap]
	}
	return impressions
}
