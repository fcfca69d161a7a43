package service

import (
	"github.com/borls/collection-email-worker/config"
	"github.com/borls/collection-email-worker/internal/domain"
	"github.com/borls/collection-email-worker/pkg/logger"
)

// NewEmailProvider selects the delivery adapter from configuration:
// "brevo" for the JSON API, anything else falls back to SES.
func NewEmailProvider(cfg *config.Config, httpClient domain.HTTPClient, sesClient domain.SESClient, log logger.Logger) domain.EmailProvider {
	switch cfg.Email.Provider {
	case "brevo":
		log.Info("Using Brevo email provider")
		return NewBrevoProvider(httpClient, cfg.Email.BrevoAPIURL, cfg.Email.BrevoAPIKey, log)
	default:
		log.Info("Using AWS SES email provider")
		return NewSESProvider(sesClient, cfg.Email.SESConfigurationSet, log)
	}
}
