package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/kmarsden/skatetrack/internal/api"
	"github.com/kmarsden/skatetrack/internal/config"
	"github.com/kmarsden/skatetrack/internal/metrics"
	"github.com/kmarsden/skatetrack/internal/notion"
	"github.com/kmarsden/skatetrack/internal/shopify"
)

func main() {
	// A local .env is a convenience for development; absence is fine.
	_ = godotenv.Load()

	addr := flag.String("addr", "", "listen address (overrides SKATETRACK_ADDR)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	// One bounded client shared by both upstreams. No retries anywhere: a
	// failed external call fails the request.
	httpClient := &http.Client{Timeout: cfg.UpstreamTimeout}

	shopifyClient := &shopify.Client{
		BaseURL:     cfg.ShopifyStoreURL,
		AccessToken: cfg.ShopifyAccessToken,
		HTTP:        httpClient,
	}
	notionClient := &notion.Client{
		APIKey:     cfg.NotionAPIKey,
		DatabaseID: cfg.NotionDatabaseID,
		HTTP:       httpClient,
	}

	metrics.Register()

	router := api.NewRouter(cfg, shopifyClient, notionClient)
	handler := api.LoggingMiddleware(api.MetricsMiddleware(router))

	fmt.Printf("Server listening on %s\n", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
