package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kmarsden/skatetrack/internal/config"
	"github.com/kmarsden/skatetrack/internal/notion"
	"github.com/kmarsden/skatetrack/internal/shopify"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(cfg config.Config, shopifyClient *shopify.Client, notionClient *notion.Client) http.Handler {
	mux := http.NewServeMux()

	adminHandler := &AdminHandler{
		AdminKey:      cfg.AdminAPIKey,
		TokenSecret:   cfg.TokenSecret,
		TokenTTL:      cfg.TokenTTL,
		PublicBaseURL: cfg.PublicBaseURL,
		Notion:        notionClient,
	}
	trackHandler := &TrackHandler{
		TokenSecret: cfg.TokenSecret,
		Shopify:     shopifyClient,
		Notion:      notionClient,
	}

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]string{"message": "ok"})
	})

	// Admin endpoints; the shared admin key travels in the request body.
	mux.HandleFunc("POST /api/generate-link", adminHandler.GenerateLink)
	mux.HandleFunc("POST /api/create-notion-record", adminHandler.CreateRecord)

	// Customer-facing, capability token in the query string.
	mux.HandleFunc("GET /api/track", trackHandler.Track)

	mux.Handle("GET /metrics", promhttp.Handler())

	return mux
}
