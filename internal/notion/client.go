// Package notion is the adapter for the document database holding per-order
// fulfillment status records. It reads records by order number and creates
// new ones when an admin provisions an order.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/kmarsden/skatetrack/internal/model"
)

const (
	// DefaultBaseURL is the public API origin.
	DefaultBaseURL = "https://api.notion.com"

	notionVersion = "2022-06-28"
)

// Client talks to one status database.
type Client struct {
	// BaseURL is the API origin; empty means DefaultBaseURL.
	BaseURL string
	// APIKey is the integration secret.
	APIKey string
	// DatabaseID identifies the status database.
	DatabaseID string
	// HTTP is the client used for requests; nil falls back to
	// http.DefaultClient.
	HTTP *http.Client
}

type queryRequest struct {
	Filter queryFilter `json:"filter"`
}

type queryFilter struct {
	Property string     `json:"property"`
	RichText equalsText `json:"rich_text"`
}

type equalsText struct {
	Equals string `json:"equals"`
}

type queryResponse struct {
	Results []page `json:"results"`
}

type createPageRequest struct {
	Parent     pageParent          `json:"parent"`
	Properties map[string]property `json:"properties"`
}

type pageParent struct {
	DatabaseID string `json:"database_id"`
}

type createPageResponse struct {
	ID string `json:"id"`
}

// QueryStatusRecords returns the status records whose order-number property
// equals orderNumber. Two key conventions coexist in the database, with and
// without a "#" prefix; when the plain form finds nothing the query is
// retried once with the prefixed variant. Callers use only the first record.
func (c *Client) QueryStatusRecords(ctx context.Context, orderNumber string) ([]model.StatusRecord, error) {
	records, err := c.queryOnce(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 && !strings.HasPrefix(orderNumber, "#") {
		return c.queryOnce(ctx, "#"+orderNumber)
	}
	return records, nil
}

func (c *Client) queryOnce(ctx context.Context, orderNumber string) ([]model.StatusRecord, error) {
	reqBody := queryRequest{
		Filter: queryFilter{
			Property: propOrderNumber,
			RichText: equalsText{Equals: orderNumber},
		},
	}

	endpoint := fmt.Sprintf("%s/v1/databases/%s/query", c.baseURL(), c.DatabaseID)
	var respBody queryResponse
	if err := c.post(ctx, endpoint, reqBody, &respBody); err != nil {
		return nil, fmt.Errorf("querying status records for %s: %w", orderNumber, err)
	}

	records := make([]model.StatusRecord, 0, len(respBody.Results))
	for _, p := range respBody.Results {
		records = append(records, toStatusRecord(p))
	}
	return records, nil
}

// CreateStatusRecord inserts a new status record page and returns its id.
func (c *Client) CreateStatusRecord(ctx context.Context, rec model.StatusRecord) (string, error) {
	reqBody := createPageRequest{
		Parent:     pageParent{DatabaseID: c.DatabaseID},
		Properties: recordProperties(rec),
	}

	endpoint := c.baseURL() + "/v1/pages"
	var respBody createPageResponse
	if err := c.post(ctx, endpoint, reqBody, &respBody); err != nil {
		return "", fmt.Errorf("creating status record for %s: %w", rec.OrderNumber, err)
	}
	return respBody.ID, nil
}

func (c *Client) post(ctx context.Context, endpoint string, reqBody, respBody any) error {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Notion-Version", notionVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *Client) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return DefaultBaseURL
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}
