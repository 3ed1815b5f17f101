// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the service needs: listen address, the two
// secrets, and the coordinates of both external systems. Values are read
// once at startup and read-only afterwards.
type Config struct {
	Addr          string `env:"SKATETRACK_ADDR"            envDefault:":8080"`
	PublicBaseURL string `env:"SKATETRACK_PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`

	// AdminAPIKey gates the provisioning and link-generation endpoints.
	AdminAPIKey string `env:"SKATETRACK_ADMIN_API_KEY"`
	// TokenSecret signs capability tokens; rotating it invalidates every
	// outstanding tracking link.
	TokenSecret string        `env:"SKATETRACK_TOKEN_SECRET"`
	TokenTTL    time.Duration `env:"SKATETRACK_TOKEN_TTL" envDefault:"2160h"`

	// UpstreamTimeout bounds each external call. There are no retries; a
	// failed call fails the request.
	UpstreamTimeout time.Duration `env:"SKATETRACK_UPSTREAM_TIMEOUT" envDefault:"10s"`

	ShopifyStoreURL    string `env:"SHOPIFY_STORE_URL"`
	ShopifyAccessToken string `env:"SHOPIFY_ADMIN_TOKEN"`

	NotionAPIKey     string `env:"NOTION_API_KEY"`
	NotionDatabaseID string `env:"NOTION_DATABASE_ID"`
}

// Load parses the environment and checks that every required value is set.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}

	var missing []string
	for name, value := range map[string]string{
		"SKATETRACK_ADMIN_API_KEY": cfg.AdminAPIKey,
		"SKATETRACK_TOKEN_SECRET":  cfg.TokenSecret,
		"SHOPIFY_STORE_URL":        cfg.ShopifyStoreURL,
		"SHOPIFY_ADMIN_TOKEN":      cfg.ShopifyAccessToken,
		"NOTION_API_KEY":           cfg.NotionAPIKey,
		"NOTION_DATABASE_ID":       cfg.NotionDatabaseID,
	} {
		if value == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}
