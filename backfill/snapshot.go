package backfill

import (
	"context"
	"fmt"
	"log"

	"github.com/leandertoney/tastelanc/models"
	"github.com/leandertoney/tastelanc/store"
)

const (
	restaurantLimit = 500
	userPoolSize    = 50
)

// contentRef is one row of a content table; only the owner matters here.
type contentRef struct {
	RestaurantID string `json:"restaurant_id"`
}

// LoadSnapshot pulls the active restaurant corpus, resolves each
// restaurant's content flags by membership in the content tables, and loads
// the registered user pool. The generators cannot make anything meaningful
// from an empty corpus or an empty user pool, so those abort the run here
// rather than producing an empty-looking success later.
func LoadSnapshot(ctx context.Context, st store.Store) (models.Snapshot, error) {
	var snap models.Snapshot

	log.Println("📊 Fetching restaurants...")
	err := st.Select(ctx, store.Query{
		Collection: models.CollectionRestaurants,
		Columns:    []string{"id", "name", "average_rating", "tier_id"},
		ActiveOnly: true,
		Limit:      restaurantLimit,
	}, &snap.Restaurants)
	if err != nil {
		return snap, fmt.Errorf("failed to load restaurants: %w", err)
	}
	if len(snap.Restaurants) == 0 {
		return snap, fmt.Errorf("no active restaurants in the store")
	}
	log.Printf("  ✅ %d active restaurants", len(snap.Restaurants))

	byID := make(map[string]*models.Restaurant, len(snap.Restaurants))
	for i := range snap.Restaurants {
		byID[snap.Restaurants[i].ID] = &snap.Restaurants[i]
	}

	content := []struct {
		collection string
		mark       func(*models.Restaurant)
	}{
		{models.CollectionHappyHours, func(r *models.Restaurant) { r.HasHappyHour = true }},
		{models.CollectionMenus, func(r *models.Restaurant) { r.HasMenu = true }},
		{models.CollectionEvents, func(r *models.Restaurant) { r.HasEvents = true }},
		{models.CollectionSpecials, func(r *models.Restaurant) { r.HasSpecials = true }},
	}
	for _, c := range content {
		var refs []contentRef
		err := st.Select(ctx, store.Query{
			Collection: c.collection,
			Columns:    []string{"restaurant_id"},
			ActiveOnly: true,
		}, &refs)
		if err != nil {
			return snap, fmt.Errorf("failed to load %s: %w", c.collection, err)
		}

		marked := 0
		for _, ref := range refs {
			if r, ok := byID[ref.RestaurantID]; ok {
				c.mark(r)
				marked++
			}
		}
		log.Printf("  ✅ %s: %d restaurants", c.collection, marked)
	}

	log.Println("👥 Fetching users...")
	snap.UserIDs, err = st.UserIDs(ctx, userPoolSize)
	if err != nil {
		return snap, fmt.Errorf("failed to load users: %w", err)
	}
	if len(snap.UserIDs) == 0 {
		return snap, fmt.Errorf("no registered users in the store")
	}
	log.Printf("  ✅ %d users", len(snap.UserIDs))

	return snap, nil
}
