package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/kmarsden/skatetrack/internal/config"
	"github.com/kmarsden/skatetrack/internal/model"
	"github.com/kmarsden/skatetrack/internal/notion"
	"github.com/kmarsden/skatetrack/internal/shopify"
	"github.com/kmarsden/skatetrack/internal/token"
)

const (
	testAdminKey    = "test-admin-key"
	testTokenSecret = "test-token-secret"
)

const testOrderJSON = `{
	"orders": [
		{
			"name": "#1042",
			"email": "jo@example.com",
			"created_at": "2026-08-12T10:30:00Z",
			"customer": {"first_name": "Jo", "last_name": "Marsh"},
			"line_items": [
				{"id": 11, "title": "Edea Ice Fly Boots", "variant_title": "255", "quantity": 1},
				{"id": 12, "title": "Wilson Gold Seal", "variant_title": "10\"", "quantity": 1}
			]
		}
	]
}`

const testStatusPageJSON = `{
	"id": "page-123",
	"properties": {
		"Order Number": {"type": "rich_text", "rich_text": [{"plain_text": "#1042"}]},
		"Boot Status": {"type": "select", "select": {"name": "On the way"}},
		"Blade Status": {"type": "select", "select": {"name": "Collected"}}
	}
}`

// setupServer starts the API in front of fake Shopify and Notion backends.
func setupServer(t *testing.T, shopifyHandler, notionHandler http.HandlerFunc) *httptest.Server {
	t.Helper()

	shopifySrv := httptest.NewServer(shopifyHandler)
	t.Cleanup(shopifySrv.Close)
	notionSrv := httptest.NewServer(notionHandler)
	t.Cleanup(notionSrv.Close)

	cfg := config.Config{
		PublicBaseURL: "https://track.example.com",
		AdminAPIKey:   testAdminKey,
		TokenSecret:   testTokenSecret,
		TokenTTL:      time.Hour,
	}
	router := NewRouter(cfg,
		&shopify.Client{BaseURL: shopifySrv.URL},
		&notion.Client{BaseURL: notionSrv.URL, DatabaseID: "db-1"},
	)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func serveJSON(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, _ := json.Marshal(body)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func TestHealth(t *testing.T) {
	server := setupServer(t, serveJSON(`{"orders": []}`), serveJSON(`{"results": []}`))

	resp, err := http.Get(server.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET /api/health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

func TestGenerateLink(t *testing.T) {
	server := setupServer(t, serveJSON(`{"orders": []}`), serveJSON(`{"results": []}`))

	resp := postJSON(t, server.URL+"/api/generate-link", map[string]string{
		"orderNumber": "1042",
		"apiKey":      testAdminKey,
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if cc := resp.Header.Get("Cache-Control"); cc != "no-store" {
		t.Errorf("Cache-Control = %q, want no-store", cc)
	}

	var body struct {
		TrackingURL string `json:"trackingUrl"`
		Token       string `json:"token"`
	}
	json.NewDecoder(resp.Body).Decode(&body)

	if !strings.HasPrefix(body.TrackingURL, "https://track.example.com/track?token=") {
		t.Errorf("trackingUrl = %q", body.TrackingURL)
	}
	subject, err := token.Validate(testTokenSecret, body.Token)
	if err != nil || subject != "1042" {
		t.Errorf("issued token: subject=%q err=%v", subject, err)
	}
}

func TestGenerateLinkRejections(t *testing.T) {
	server := setupServer(t, serveJSON(`{"orders": []}`), serveJSON(`{"results": []}`))

	resp := postJSON(t, server.URL+"/api/generate-link", map[string]string{
		"orderNumber": "1042",
		"apiKey":      "wrong-key",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad api key, got %d", resp.StatusCode)
	}

	resp = postJSON(t, server.URL+"/api/generate-link", map[string]string{
		"apiKey": testAdminKey,
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for missing order number, got %d", resp.StatusCode)
	}
}

func trackURL(t *testing.T, server *httptest.Server, orderNumber string) string {
	t.Helper()
	tok, err := token.Issue(testTokenSecret, orderNumber, time.Hour)
	if err != nil {
		t.Fatalf("issuing test token: %v", err)
	}
	return server.URL + "/api/track?token=" + url.QueryEscape(tok)
}

func TestTrack(t *testing.T) {
	server := setupServer(t,
		serveJSON(testOrderJSON),
		serveJSON(`{"results": [`+testStatusPageJSON+`]}`),
	)

	resp, err := http.Get(trackURL(t, server, "1042"))
	if err != nil {
		t.Fatalf("GET /api/track: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		OrderNumber  string                `json:"orderNumber"`
		CustomerName string                `json:"customerName"`
		OrderDate    string                `json:"orderDate"`
		Items        []model.TrackableItem `json:"items"`
	}
	json.NewDecoder(resp.Body).Decode(&body)

	if body.OrderNumber != "1042" {
		t.Errorf("orderNumber = %q", body.OrderNumber)
	}
	if body.CustomerName != "Jo Marsh" {
		t.Errorf("customerName = %q", body.CustomerName)
	}
	if body.OrderDate != "12 August 2026" {
		t.Errorf("orderDate = %q", body.OrderDate)
	}
	if len(body.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(body.Items))
	}
	if body.Items[0].Type != "boot" || body.Items[0].Status != model.StatusOnTheWay {
		t.Errorf("item 0 = %+v", body.Items[0])
	}
	if body.Items[1].Type != "blade" || body.Items[1].Status != model.StatusCollected {
		t.Errorf("item 1 = %+v", body.Items[1])
	}
}

func TestTrackTokenRejections(t *testing.T) {
	server := setupServer(t, serveJSON(testOrderJSON), serveJSON(`{"results": []}`))

	resp, _ := http.Get(server.URL + "/api/track")
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for missing token, got %d", resp.StatusCode)
	}

	resp, _ = http.Get(server.URL + "/api/track?token=garbage")
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for invalid token, got %d", resp.StatusCode)
	}

	expired, _ := token.Issue(testTokenSecret, "1042", -time.Minute)
	resp, _ = http.Get(server.URL + "/api/track?token=" + url.QueryEscape(expired))
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for expired token, got %d", resp.StatusCode)
	}
}

func TestTrackNotFound(t *testing.T) {
	// No matching order.
	server := setupServer(t,
		serveJSON(`{"orders": []}`),
		serveJSON(`{"results": [`+testStatusPageJSON+`]}`),
	)
	resp, _ := http.Get(trackURL(t, server, "1042"))
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for missing order, got %d", resp.StatusCode)
	}

	// Order exists, no status record.
	server = setupServer(t, serveJSON(testOrderJSON), serveJSON(`{"results": []}`))
	resp, _ = http.Get(trackURL(t, server, "1042"))
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for missing status record, got %d", resp.StatusCode)
	}
}

func TestTrackUpstreamFailure(t *testing.T) {
	failing := func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}
	server := setupServer(t, failing, serveJSON(`{"results": []}`))

	resp, err := http.Get(trackURL(t, server, "1042"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected 500 for upstream failure, got %d", resp.StatusCode)
	}
}

// notionFake is a stateful document-database backend: queries return the
// stored pages, creating a page stores one.
type notionFake struct {
	pages   []string
	creates int
}

func (f *notionFake) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.HasSuffix(r.URL.Path, "/query") {
			w.Write([]byte(`{"results": [` + strings.Join(f.pages, ",") + `]}`))
			return
		}
		f.creates++
		f.pages = append(f.pages, testStatusPageJSON)
		w.Write([]byte(`{"id": "page-123"}`))
	}
}

func TestCreateRecordIdempotent(t *testing.T) {
	fake := &notionFake{}
	server := setupServer(t, serveJSON(testOrderJSON), fake.handler())

	reqBody := map[string]string{
		"orderNumber":    "1042",
		"apiKey":         testAdminKey,
		"customerName":   "Jo Marsh",
		"customerEmail":  "jo@example.com",
		"lineItemTitles": "Edea Ice Fly Boots, Wilson Gold Seal",
	}

	resp := postJSON(t, server.URL+"/api/create-notion-record", reqBody)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var created struct {
		Created  bool   `json:"created"`
		RecordID string `json:"recordId"`
	}
	json.NewDecoder(resp.Body).Decode(&created)
	if !created.Created || created.RecordID != "page-123" {
		t.Errorf("first call = %+v", created)
	}

	resp = postJSON(t, server.URL+"/api/create-notion-record", reqBody)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for existing record, got %d", resp.StatusCode)
	}
	json.NewDecoder(resp.Body).Decode(&created)
	if created.Created {
		t.Error("second call should report created=false")
	}
	if fake.creates != 1 {
		t.Errorf("expected exactly 1 record created, got %d", fake.creates)
	}
}

func TestCreateRecordRejections(t *testing.T) {
	fake := &notionFake{}
	server := setupServer(t, serveJSON(testOrderJSON), fake.handler())

	resp := postJSON(t, server.URL+"/api/create-notion-record", map[string]string{
		"orderNumber": "1042",
		"apiKey":      "wrong-key",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad api key, got %d", resp.StatusCode)
	}

	resp = postJSON(t, server.URL+"/api/create-notion-record", map[string]string{
		"apiKey": testAdminKey,
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for missing order number, got %d", resp.StatusCode)
	}
	if fake.creates != 0 {
		t.Errorf("rejected requests must not create records, got %d", fake.creates)
	}
}
