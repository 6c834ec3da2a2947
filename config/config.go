package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Store drivers.
const (
	DriverREST     = "rest"
	DriverPostgres = "postgres"
)

// Count sampling strategies for daily event volumes.
const (
	SamplerGauss = "gauss"
	SamplerExpo  = "expo"
)

// Config carries the store credentials for one run. Values come from the
// environment, never from source.
type Config struct {
	SupabaseURL string
	ServiceKey  string
	DatabaseDSN string
}

// FromEnv reads store credentials from SUPABASE_URL, SUPABASE_SERVICE_KEY
// and DATABASE_URL.
func FromEnv() Config {
	return Config{
		SupabaseURL: strings.TrimRight(strings.TrimSpace(os.Getenv("SUPABASE_URL")), "/"),
		ServiceKey:  strings.TrimSpace(os.Getenv("SUPABASE_SERVICE_KEY")),
		DatabaseDSN: strings.TrimSpace(os.Getenv("DATABASE_URL")),
	}
}

// Validate checks that the credentials required by the chosen driver are set.
func (c Config) Validate(driver string) error {
	switch driver {
	case DriverREST:
		if c.SupabaseURL == "" {
			return fmt.Errorf("SUPABASE_URL is not set")
		}
		if c.ServiceKey == "" {
			return fmt.Errorf("SUPABASE_SERVICE_KEY is not set")
		}
	case DriverPostgres:
		if c.DatabaseDSN == "" {
			return fmt.Errorf("DATABASE_URL is not set")
		}
	default:
		return fmt.Errorf("unknown driver %q (want %s or %s)", driver, DriverREST, DriverPostgres)
	}
	return nil
}

// Profile holds the generator tuning knobs. Zero values are never used
// directly; start from DefaultProfile and override from YAML.
type Profile struct {
	RealUserProb float64 `yaml:"real_user_prob"`

	BaseViewRate  float64 `yaml:"base_view_rate"`
	BaseClickRate float64 `yaml:"base_click_rate"`

	WeekendViewBoost  float64 `yaml:"weekend_view_boost"`
	WeekendClickBoost float64 `yaml:"weekend_click_boost"`

	Sampler string `yaml:"sampler"`

	TabHappyHourProb float64 `yaml:"tab_happy_hour_prob"`
	TabMenuProb      float64 `yaml:"tab_menu_prob"`
	TabEventsProb    float64 `yaml:"tab_events_prob"`

	FavoritesMin        int `yaml:"favorites_min"`
	FavoritesMax        int `yaml:"favorites_max"`
	FavoritesWindowDays int `yaml:"favorites_window_days"`

	ImpressionShownMin   int `yaml:"impression_shown_min"`
	ImpressionShownMax   int `yaml:"impression_shown_max"`
	ImpressionViewersMin int `yaml:"impression_viewers_min"`
	ImpressionViewersMax int `yaml:"impression_viewers_max"`
	ImpressionCap        int `yaml:"impression_cap"`
}

// DefaultProfile returns the production tuning used by the nightly seed runs.
func DefaultProfile() Profile {
	return Profile{
		RealUserProb:         0.35,
		BaseViewRate:         8.0,
		BaseClickRate:        1.2,
		WeekendViewBoost:     1.4,
		WeekendClickBoost:    1.3,
		Sampler:              SamplerGauss,
		TabHappyHourProb:     0.35,
		TabMenuProb:          0.50,
		TabEventsProb:        0.25,
		FavoritesMin:         8,
		FavoritesMax:         30,
		FavoritesWindowDays:  45,
		ImpressionShownMin:   15,
		ImpressionShownMax:   40,
		ImpressionViewersMin: 1,
		ImpressionViewersMax: 4,
		ImpressionCap:        200000,
	}
}

// LoadProfile reads a YAML profile over the defaults. Unknown fields are
// rejected so typos fail loudly instead of silently keeping a default.
func LoadProfile(path string) (Profile, error) {
	p := DefaultProfile()

	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("failed to read profile: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&p); err != nil {
		return p, fmt.Errorf("failed to parse profile: %w", err)
	}

	if err := p.Validate(); err != nil {
		return p, fmt.Errorf("invalid profile: %w", err)
	}
	return p, nil
}

// Validate rejects profiles that would make the generators misbehave.
func (p Profile) Validate() error {
	for _, pr := range []struct {
		name  string
		value float64
	}{
		{"real_user_prob", p.RealUserProb},
		{"tab_happy_hour_prob", p.TabHappyHourProb},
		{"tab_menu_prob", p.TabMenuProb},
		{"tab_events_prob", p.TabEventsProb},
	} {
		if pr.value < 0 || pr.value > 1 {
			return fmt.Errorf("%s must be in [0,1], got %v", pr.name, pr.value)
		}
	}

	if p.BaseViewRate <= 0 || p.BaseClickRate <= 0 {
		return fmt.Errorf("base rates must be positive")
	}
	if p.WeekendViewBoost < 1 || p.WeekendClickBoost < 1 {
		return fmt.Errorf("weekend boosts must be >= 1")
	}
	if p.Sampler != SamplerGauss && p.Sampler != SamplerExpo {
		return fmt.Errorf("unknown sampler %q (want %s or %s)", p.Sampler, SamplerGauss, SamplerExpo)
	}

	for _, r := range []struct {
		name     string
		min, max int
	}{
		{"favorites", p.FavoritesMin, p.FavoritesMax},
		{"impression_shown", p.ImpressionShownMin, p.ImpressionShownMax},
		{"impression_viewers", p.ImpressionViewersMin, p.ImpressionViewersMax},
	} {
		if r.min < 1 {
			return fmt.Errorf("%s_min must be >= 1, got %d", r.name, r.min)
		}
		if r.max < r.min {
			return fmt.Errorf("%s_max must be >= %s_min, got %d < %d", r.name, r.name, r.max, r.min)
		}
	}

	if p.FavoritesWindowDays < 1 {
		return fmt.Errorf("favorites_window_days must be >= 1, got %d", p.FavoritesWindowDays)
	}
	if p.ImpressionCap < 1 {
		return fmt.Errorf("impression_cap must be >= 1, got %d", p.ImpressionCap)
	}
	return nil
}
