package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SUPABASE_URL", "https://project.supabase.co")
	t.Setenv("SUPABASE_SECRET_KEY", "service-role-key")
}

func TestLoadRequiresSupabaseSettings(t *testing.T) {
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_SECRET_KEY", "")

	_, err := LoadWithOptions(LoadOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUPABASE_URL")

	t.Setenv("SUPABASE_URL", "https://project.supabase.co")
	_, err = LoadWithOptions(LoadOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUPABASE_SECRET_KEY")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadWithOptions(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "pro", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, VERSION, cfg.Version)
	assert.Equal(t, "ses", cfg.Email.Provider)
	assert.Equal(t, "manager@borls.com", cfg.Email.FromEmail)
	assert.Equal(t, "apex-collection-tracking", cfg.Email.SESConfigurationSet)
	assert.Equal(t, "https://api.brevo.com/v3/smtp/email", cfg.Email.BrevoAPIURL)
	assert.Equal(t, "us-east-1", cfg.Email.AWSRegion)
	assert.Equal(t, "apex-collection-wakeup", cfg.Scheduler.ScheduleName)
	assert.Equal(t, int64(3*1024*1024), cfg.Attachment.MaxBytes)
	assert.Equal(t, 10, cfg.Attachment.MaxCount)
	assert.False(t, cfg.IsDev())
}

func TestLoadTrimsSupabaseURLSlash(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SUPABASE_URL", "https://project.supabase.co/")

	cfg, err := LoadWithOptions(LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "https://project.supabase.co", cfg.Supabase.URL)
}

func TestLoadBrevoRequiresAPIKey(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("EMAIL_PROVIDER", "Brevo")

	_, err := LoadWithOptions(LoadOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BREVO_API_KEY")

	t.Setenv("BREVO_API_KEY", "xkeysib-test")
	cfg, err := LoadWithOptions(LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "brevo", cfg.Email.Provider, "provider name is normalized to lower case")
}

func TestIsDev(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", "dev")

	cfg, err := LoadWithOptions(LoadOptions{})
	require.NoError(t, err)
	assert.True(t, cfg.IsDev())
}
