package api

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kmarsden/skatetrack/internal/metrics"
	"github.com/kmarsden/skatetrack/internal/model"
	"github.com/kmarsden/skatetrack/internal/notion"
	"github.com/kmarsden/skatetrack/internal/token"
	"github.com/kmarsden/skatetrack/internal/track"
)

// startingStatusLabel is the label new status records begin with, for both
// product types.
const startingStatusLabel = "Placed"

// AdminHandler handles the admin-key-gated endpoints: link generation and
// status record provisioning.
type AdminHandler struct {
	AdminKey      string
	TokenSecret   string
	TokenTTL      time.Duration
	PublicBaseURL string
	Notion        *notion.Client
}

type generateLinkRequest struct {
	OrderNumber string `json:"orderNumber"`
	APIKey      string `json:"apiKey"`
}

type generateLinkResponse struct {
	TrackingURL string `json:"trackingUrl"`
	Token       string `json:"token"`
}

type createRecordRequest struct {
	OrderNumber    string `json:"orderNumber"`
	APIKey         string `json:"apiKey"`
	CustomerName   string `json:"customerName"`
	CustomerEmail  string `json:"customerEmail"`
	LineItemTitles string `json:"lineItemTitles"`
}

type createRecordResponse struct {
	Created  bool   `json:"created"`
	RecordID string `json:"recordId"`
}

// checkAdminKey compares the caller's key with the shared admin key in
// constant time. The key is a coarse capability, not per-caller auth.
func (h *AdminHandler) checkAdminKey(key string) bool {
	if h.AdminKey == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(h.AdminKey)) == 1
}

// GenerateLink handles POST /api/generate-link.
func (h *AdminHandler) GenerateLink(w http.ResponseWriter, r *http.Request) {
	var req generateLinkRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !h.checkAdminKey(req.APIKey) {
		jsonError(w, http.StatusUnauthorized, "invalid api key")
		return
	}
	if req.OrderNumber == "" {
		jsonError(w, http.StatusBadRequest, "order number required")
		return
	}

	tok, err := token.Issue(h.TokenSecret, req.OrderNumber, h.TokenTTL)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	metrics.LinksIssuedTotal.Inc()
	slog.Info("tracking link issued", "order", req.OrderNumber, "ttl", h.TokenTTL)
	jsonResponse(w, http.StatusOK, generateLinkResponse{
		TrackingURL: fmt.Sprintf("%s/track?token=%s", h.PublicBaseURL, url.QueryEscape(tok)),
		Token:       tok,
	})
}

// CreateRecord handles POST /api/create-notion-record. Provisioning is
// idempotent: when a status record already exists for the order number
// (under either key convention) nothing is written.
func (h *AdminHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req createRecordRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !h.checkAdminKey(req.APIKey) {
		jsonError(w, http.StatusUnauthorized, "invalid api key")
		return
	}
	if req.OrderNumber == "" {
		jsonError(w, http.StatusBadRequest, "order number required")
		return
	}

	existing, err := h.Notion.QueryStatusRecords(r.Context(), req.OrderNumber)
	if err != nil {
		metrics.UpstreamFailuresTotal.WithLabelValues("notion").Inc()
		slog.Error("status record lookup failed", "order", req.OrderNumber, "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if len(existing) > 0 {
		jsonResponse(w, http.StatusOK, createRecordResponse{Created: false, RecordID: existing[0].ID})
		return
	}

	bootModel, bladeModel := track.InferModels(strings.Split(req.LineItemTitles, ","))
	now := time.Now()
	rec := model.StatusRecord{
		OrderNumber:  req.OrderNumber,
		CustomerName: req.CustomerName,
		Contact:      req.CustomerEmail,
		BootModel:    bootModel,
		BladeModel:   bladeModel,
		BootStatus:   startingStatusLabel,
		BladeStatus:  startingStatusLabel,
		LastReviewed: &now,
	}

	id, err := h.Notion.CreateStatusRecord(r.Context(), rec)
	if err != nil {
		metrics.UpstreamFailuresTotal.WithLabelValues("notion").Inc()
		slog.Error("status record creation failed", "order", req.OrderNumber, "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}

	metrics.RecordsProvisionedTotal.Inc()
	slog.Info("status record created", "order", req.OrderNumber, "record", id)
	jsonResponse(w, http.StatusCreated, createRecordResponse{Created: true, RecordID: id})
}
