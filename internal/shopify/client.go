// Package shopify is a read-only adapter for the commerce platform's Admin
// REST API. It fetches orders by their human-readable order number.
package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kmarsden/skatetrack/internal/model"
)

const apiVersion = "2024-07"

// Client talks to one shop's Admin API.
type Client struct {
	// BaseURL is the shop origin, e.g. "https://example.myshopify.com".
	BaseURL string
	// AccessToken is the Admin API access token.
	AccessToken string
	// HTTP is the client used for requests. Callers set a bounded timeout;
	// a nil client falls back to http.DefaultClient.
	HTTP *http.Client
}

// Wire shapes for the orders endpoint. Only the fields this service reads.
type ordersResponse struct {
	Orders []order `json:"orders"`
}

type order struct {
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	CreatedAt time.Time  `json:"created_at"`
	Customer  customer   `json:"customer"`
	LineItems []lineItem `json:"line_items"`
}

type customer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type lineItem struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	VariantTitle string     `json:"variant_title"`
	Quantity     int        `json:"quantity"`
	SKU          string     `json:"sku"`
	Properties   []property `json:"properties"`
}

type property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// FetchOrder fetches the order with the given order number. Shopify order
// names carry a "#" prefix, which is added when the caller's number lacks
// one. Returns (nil, nil) when no order matches.
func (c *Client) FetchOrder(ctx context.Context, orderNumber string) (*model.OrderRecord, error) {
	name := orderNumber
	if !strings.HasPrefix(name, "#") {
		name = "#" + name
	}

	query := url.Values{
		"name":   {name},
		"status": {"any"},
	}
	endpoint := fmt.Sprintf("%s/admin/api/%s/orders.json?%s", c.BaseURL, apiVersion, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building order request: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", c.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching order %s: %w", orderNumber, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching order %s: unexpected status %d", orderNumber, resp.StatusCode)
	}

	var body ordersResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding orders response: %w", err)
	}
	if len(body.Orders) == 0 {
		return nil, nil
	}

	return toOrderRecord(orderNumber, body.Orders[0]), nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

func toOrderRecord(orderNumber string, o order) *model.OrderRecord {
	rec := &model.OrderRecord{
		Number:       orderNumber,
		CustomerName: strings.TrimSpace(o.Customer.FirstName + " " + o.Customer.LastName),
		Email:        o.Email,
		CreatedAt:    o.CreatedAt,
		LineItems:    make([]model.LineItem, 0, len(o.LineItems)),
	}
	for _, li := range o.LineItems {
		item := model.LineItem{
			ID:       li.ID,
			Title:    li.Title,
			Variant:  li.VariantTitle,
			Quantity: li.Quantity,
			SKU:      li.SKU,
		}
		for _, p := range li.Properties {
			item.Properties = append(item.Properties, model.LineItemProperty{Name: p.Name, Value: p.Value})
		}
		rec.LineItems = append(rec.LineItems, item)
	}
	return rec
}
