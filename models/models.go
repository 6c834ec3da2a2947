package models

import "time"

// Collections in the TasteLanc store that the backfill reads from.
const (
	CollectionRestaurants = "restaurants"
	CollectionHappyHours  = "happy_hours"
	CollectionMenus       = "menus"
	CollectionEvents      = "events"
	CollectionSpecials    = "specials"
)

// Collections the backfill writes to.
const (
	CollectionPageViews   = "analytics_page_views"
	CollectionClicks      = "analytics_clicks"
	CollectionFavorites   = "favorites"
	CollectionImpressions = "section_impressions"
)

// PremiumTierID marks restaurants on the paid placement tier.
const PremiumTierID = "00000000-0000-0000-0000-000000000002"

// MobileUserAgent is the user agent recorded on synthesized page views.
const MobileUserAgent = "TasteLanc-Mobile/ios"

// Restaurant is one row of the active restaurant corpus. The content flags
// are not stored columns; they are resolved at load time by membership in
// the happy hour, menu, event and special tables.
type Restaurant struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	AverageRating *float64 `json:"average_rating"`
	TierID        string   `json:"tier_id"`

	HasHappyHour bool `json:"-" gorm:"-"`
	HasMenu      bool `json:"-" gorm:"-"`
	HasEvents    bool `json:"-" gorm:"-"`
	HasSpecials  bool `json:"-" gorm:"-"`
}

// Snapshot is the immutable input corpus for one backfill run.
type Snapshot struct {
	Restaurants []Restaurant
	UserIDs     []string
}

// PageView is a synthetic restaurant detail-page view. Tab views emitted for
// the same session share the visitor and timestamp of their base view.
type PageView struct {
	PageType     string    `json:"page_type"`
	PagePath     string    `json:"page_path"`
	RestaurantID string    `json:"restaurant_id"`
	VisitorID    string    `json:"visitor_id"`
	UserAgent    string    `json:"user_agent"`
	ViewedAt     time.Time `json:"viewed_at"`
}

// Click is a synthetic tap on one of the restaurant card actions.
type Click struct {
	ClickType    string    `json:"click_type"`
	RestaurantID string    `json:"restaurant_id"`
	VisitorID    string    `json:"visitor_id"`
	ClickedAt    time.Time `json:"clicked_at"`
}

// Favorite pairs a user with a restaurant. The store keeps at most one row
// per pair, so the generator must never emit the same pair twice.
type Favorite struct {
	UserID       string    `json:"user_id" gorm:"index:idx_favorites_pair,unique"`
	RestaurantID string    `json:"restaurant_id" gorm:"index:idx_favorites_pair,unique"`
	CreatedAt    time.Time `json:"created_at"`
}

// SectionImpression records a restaurant being shown to a visitor in a home
// screen section during one 30-minute rotation epoch. The store keeps at
// most one row per (restaurant, section, visitor, epoch).
type SectionImpression struct {
	RestaurantID  string    `json:"restaurant_id" gorm:"index:idx_impressions_dedup,unique"`
	SectionName   string    `json:"section_name" gorm:"index:idx_impressions_dedup,unique"`
	PositionIndex int       `json:"position_index"`
	VisitorID     string    `json:"visitor_id" gorm:"index:idx_impressions_dedup,unique"`
	EpochSeed     int64     `json:"epoch_seed" gorm:"index:idx_impressions_dedup,unique"`
	ImpressedAt   time.Time `json:"impressed_at"`
}
