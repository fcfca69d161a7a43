// The event handler receives SES delivery notifications via SNS and
// reconciles them onto recipients: bounces, complaints, deliveries and
// opens move the recipient status and are recorded as events.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/borls/collection-email-worker/config"
	"github.com/borls/collection-email-worker/internal/repository/supabase"
	"github.com/borls/collection-email-worker/internal/service"
	"github.com/borls/collection-email-worker/pkg/logger"
)

type handler struct {
	processor *service.DeliveryEventProcessor
}

func newHandler() (*handler, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.NewLogger(cfg.LogLevel)
	store := supabase.NewClient(http.DefaultClient, cfg.Supabase.URL, cfg.Supabase.SecretKey, log)

	return &handler{
		processor: service.NewDeliveryEventProcessor(store, log),
	}, nil
}

func (h *handler) Handle(ctx context.Context, event events.SNSEvent) (*service.DeliveryEventResult, error) {
	return h.processor.HandleSNSEvent(ctx, event), nil
}

func main() {
	h, err := newHandler()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize event handler: %v\n", err)
		os.Exit(1)
	}
	lambda.Start(h.Handle)
}
