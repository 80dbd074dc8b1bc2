package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("TOKEN_TTL_HOURS", "")
	t.Setenv("UPLOAD_MAX_MB", "")
	t.Setenv("PRIORITY_CATEGORIES", "")
	t.Setenv("STORAGE_DRIVER", "")

	cfg := Load()

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, int64(10<<20), cfg.UploadMaxBytes)
	assert.Equal(t, "local", cfg.StorageDriver)
	assert.Equal(t, []string{"Işık Kulesi", "Teleskopik Direk"}, cfg.PriorityCategories)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("TOKEN_TTL_HOURS", "2")
	t.Setenv("UPLOAD_MAX_MB", "3")
	t.Setenv("PRIORITY_CATEGORIES", " Pumps , ,Valves ")
	t.Setenv("STORAGE_DRIVER", "Cloudinary")
	t.Setenv("ADMIN_EMAIL", "Admin@Example.com")

	cfg := Load()

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, int64(3<<20), cfg.UploadMaxBytes)
	assert.Equal(t, []string{"Pumps", "Valves"}, cfg.PriorityCategories)
	assert.Equal(t, "cloudinary", cfg.StorageDriver)
	assert.Equal(t, "admin@example.com", cfg.Admin.Email)
}

func TestInvalidNumbersFallBack(t *testing.T) {
	t.Setenv("SMTP_PORT", "abc")
	t.Setenv("TOKEN_TTL_HOURS", "-4")

	cfg := Load()

	assert.Equal(t, 587, cfg.Mail.Port)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
}

func TestMailEnabled(t *testing.T) {
	assert.False(t, MailConfig{}.Enabled())
	assert.False(t, MailConfig{Host: "smtp.example.com"}.Enabled())
	assert.True(t, MailConfig{Host: "smtp.example.com", Recipient: "sales@example.com"}.Enabled())
}
