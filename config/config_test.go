package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://example.supabase.co/ ")
	t.Setenv("SUPABASE_SERVICE_KEY", " service-key ")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/app")

	cfg := FromEnv()
	assert.Equal(t, "https://example.supabase.co", cfg.SupabaseURL)
	assert.Equal(t, "service-key", cfg.ServiceKey)
	assert.Equal(t, "postgres://u:p@localhost:5432/app", cfg.DatabaseDSN)
}

func TestConfigValidate(t *testing.T) {
	full := Config{
		SupabaseURL: "https://example.supabase.co",
		ServiceKey:  "key",
		DatabaseDSN: "postgres://u:p@localhost/app",
	}

	require.NoError(t, full.Validate(DriverREST))
	require.NoError(t, full.Validate(DriverPostgres))

	err := Config{ServiceKey: "key"}.Validate(DriverREST)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUPABASE_URL")

	err = Config{SupabaseURL: "https://example.supabase.co"}.Validate(DriverREST)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUPABASE_SERVICE_KEY")

	err = Config{}.Validate(DriverPostgres)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")

	err = full.Validate("sqlite")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown driver")
}

func TestDefaultProfileIsValid(t *testing.T) {
	require.NoError(t, DefaultProfile().Validate())
}

func TestLoadProfileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	body := "real_user_prob: 0.5\nsampler: expo\nimpression_viewers_max: 6\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	p, err := LoadProfile(path)
	require.NoError(t, err)

	assert.Equal(t, 0.5, p.RealUserProb)
	assert.Equal(t, SamplerExpo, p.Sampler)
	assert.Equal(t, 6, p.ImpressionViewersMax)

	// Untouched knobs keep their defaults.
	assert.Equal(t, 8.0, p.BaseViewRate)
	assert.Equal(t, 15, p.ImpressionShownMin)
}

func TestLoadProfileRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("real_user_probb: 0.5\n"), 0644))

	_, err := LoadProfile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse profile")
}

func TestLoadProfileMissingFile(t *testing.T) {
	_, err := LoadProfile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read profile")
}

func TestProfileValidateRejectsBadKnobs(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Profile)
		message string
	}{
		{"prob above one", func(p *Profile) { p.RealUserProb = 1.2 }, "real_user_prob"},
		{"negative tab prob", func(p *Profile) { p.TabMenuProb = -0.1 }, "tab_menu_prob"},
		{"zero view rate", func(p *Profile) { p.BaseViewRate = 0 }, "base rates"},
		{"weekend damping", func(p *Profile) { p.WeekendClickBoost = 0.9 }, "weekend boosts"},
		{"bad sampler", func(p *Profile) { p.Sampler = "poisson" }, "unknown sampler"},
		{"inverted favorites range", func(p *Profile) { p.FavoritesMax = 4 }, "favorites_max"},
		{"zero viewers", func(p *Profile) { p.ImpressionViewersMin = 0 }, "impression_viewers_min"},
		{"inverted shown range", func(p *Profile) { p.ImpressionShownMax = 10 }, "impression_shown_max"},
		{"zero window", func(p *Profile) { p.FavoritesWindowDays = 0 }, "favorites_window_days"},
		{"zero cap", func(p *Profile) { p.ImpressionCap = 0 }, "impression_cap"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultProfile()
			tc.mutate(&p)
			err := p.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}
