package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const VERSION = "1.4"

// Config holds the full worker configuration, resolved from the environment.
type Config struct {
	Environment string
	LogLevel    string
	Version     string

	Supabase   SupabaseConfig
	Queue      QueueConfig
	Scheduler  SchedulerConfig
	Email      EmailConfig
	Attachment AttachmentConfig
}

// SupabaseConfig addresses the PostgREST store.
type SupabaseConfig struct {
	URL       string
	SecretKey string
}

// QueueConfig addresses the batch message queue.
type QueueConfig struct {
	BatchQueueURL string
}

// SchedulerConfig addresses the wake-up timer.
type SchedulerConfig struct {
	WorkerARN    string
	ScheduleName string
	RoleARN      string
}

// EmailConfig selects and configures the email provider.
type EmailConfig struct {
	Provider            string // "ses" or "brevo"
	FromEmail           string
	SESConfigurationSet string
	TrackingURL         string
	BrevoAPIKey         string
	BrevoAPIURL         string
	AWSRegion           string
}

// AttachmentConfig caps what the worker is willing to hold in memory.
type AttachmentConfig struct {
	MaxBytes int64 // per file
	MaxCount int
}

// IsDev reports whether the worker runs with dev throttling enabled.
func (c *Config) IsDev() bool {
	return c.Environment == "dev"
}

// LoadOptions contains options for loading configuration
type LoadOptions struct {
	EnvFile string // Optional environment file to load (e.g., ".env", ".env.test")
}

// Load loads the configuration with default options
func Load() (*Config, error) {
	// Try to load .env file but don't require it
	return LoadWithOptions(LoadOptions{EnvFile: ".env"})
}

// LoadWithOptions loads the configuration with the specified options
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	v := viper.New()

	v.SetDefault("APP_ENV", "pro")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("VERSION", VERSION)

	v.SetDefault("EMAIL_PROVIDER", "ses")
	v.SetDefault("FROM_EMAIL", "manager@borls.com")
	v.SetDefault("SES_CONFIGURATION_SET", "apex-collection-tracking")
	v.SetDefault("TRACKING_URL", "https://apex.borls.com")
	v.SetDefault("BREVO_SMTP_API_URL", "https://api.brevo.com/v3/smtp/email")
	v.SetDefault("AWS_REGION", "us-east-1")

	v.SetDefault("EVENTBRIDGE_RULE_NAME", "apex-collection-wakeup")

	v.SetDefault("ATTACHMENT_MAX_BYTES", 3*1024*1024)
	v.SetDefault("ATTACHMENT_MAX_COUNT", 10)

	// Load environment file if specified
	if opts.EnvFile != "" {
		v.SetConfigName(opts.EnvFile)
		v.SetConfigType("env")

		currentPath, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("error getting current directory: %w", err)
		}

		v.AddConfigPath(currentPath)

		if err := v.ReadInConfig(); err != nil {
			// It's okay if the env file doesn't exist
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading env file: %w", err)
			}
		}
	}

	v.AutomaticEnv()

	supabaseURL := strings.TrimSuffix(v.GetString("SUPABASE_URL"), "/")
	if supabaseURL == "" {
		return nil, fmt.Errorf("SUPABASE_URL is required")
	}
	supabaseKey := v.GetString("SUPABASE_SECRET_KEY")
	if supabaseKey == "" {
		return nil, fmt.Errorf("SUPABASE_SECRET_KEY is required")
	}

	provider := strings.ToLower(v.GetString("EMAIL_PROVIDER"))
	if provider == "brevo" && v.GetString("BREVO_API_KEY") == "" {
		return nil, fmt.Errorf("BREVO_API_KEY is required when EMAIL_PROVIDER is brevo")
	}

	return &Config{
		Environment: v.GetString("APP_ENV"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		Version:     v.GetString("VERSION"),
		Supabase: SupabaseConfig{
			URL:       supabaseURL,
			SecretKey: supabaseKey,
		},
		Queue: QueueConfig{
			BatchQueueURL: v.GetString("SQS_BATCH_QUEUE_URL"),
		},
		Scheduler: SchedulerConfig{
			WorkerARN:    v.GetString("LAMBDA_EMAIL_WORKER_ARN"),
			ScheduleName: v.GetString("EVENTBRIDGE_RULE_NAME"),
			RoleARN:      v.GetString("EVENTBRIDGE_SCHEDULER_ROLE_ARN"),
		},
		Email: EmailConfig{
			Provider:            provider,
			FromEmail:           v.GetString("FROM_EMAIL"),
			SESConfigurationSet: v.GetString("SES_CONFIGURATION_SET"),
			TrackingURL:         v.GetString("TRACKING_URL"),
			BrevoAPIKey:         v.GetString("BREVO_API_KEY"),
			BrevoAPIURL:         v.GetString("BREVO_SMTP_API_URL"),
			AWSRegion:           v.GetString("AWS_REGION"),
		},
		Attachment: AttachmentConfig{
			MaxBytes: v.GetInt64("ATTACHMENT_MAX_BYTES"),
			MaxCount: v.GetInt("ATTACHMENT_MAX_COUNT"),
		},
	}, nil
}
