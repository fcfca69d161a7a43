package service

import (
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/borls/collection-email-worker/config"
	"github.com/borls/collection-email-worker/internal/domain/mocks"
	"github.com/borls/collection-email-worker/pkg/logger"
)

func TestNewEmailProvider(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	sesClient := mocks.NewMockSESClient(ctrl)
	log := logger.NewTestLogger(t)

	t.Run("brevo", func(t *testing.T) {
		cfg := &config.Config{Email: config.EmailConfig{
			Provider:    "brevo",
			BrevoAPIURL: "https://api.brevo.com/v3/smtp/email",
			BrevoAPIKey: "xkeysib-test",
		}}
		provider := NewEmailProvider(cfg, http.DefaultClient, sesClient, log)
		assert.Equal(t, "brevo", provider.ProviderName())
	})

	t.Run("ses", func(t *testing.T) {
		cfg := &config.Config{Email: config.EmailConfig{Provider: "ses"}}
		provider := NewEmailProvider(cfg, http.DefaultClient, sesClient, log)
		assert.Equal(t, "ses", provider.ProviderName())
	})

	t.Run("unknown falls back to ses", func(t *testing.T) {
		cfg := &config.Config{Email: config.EmailConfig{Provider: "sendgrid"}}
		provider := NewEmailProvider(cfg, http.DefaultClient, sesClient, log)
		assert.Equal(t, "ses", provider.ProviderName())
	})
}
