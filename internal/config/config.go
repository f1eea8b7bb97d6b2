package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"paytrace"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Path string `envconfig:"DB_PATH" default:"paytrace.db"`
	}

	Docs struct {
		// Backend selects where uploaded source documents are archived:
		// "fs" (default) or "gcs".
		Backend string `envconfig:"DOCSTORE_BACKEND" default:"fs"`
		Root    string `envconfig:"DOCSTORE_ROOT" default:"documents"`
		Bucket  string `envconfig:"DOCSTORE_BUCKET"`
	}

	Mail struct {
		Domain    string `envconfig:"MAILGUN_DOMAIN"`
		APIKey    string `envconfig:"MAILGUN_API_KEY"`
		Sender    string `envconfig:"MAIL_SENDER"`
		Recipient string `envconfig:"MAIL_RECIPIENT"`
	}
}

// MailConfigured reports whether all fields needed to send report mail are set.
func (c *Config) MailConfigured() bool {
	return c.Mail.Domain != "" && c.Mail.APIKey != "" && c.Mail.Sender != "" && c.Mail.Recipient != ""
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
