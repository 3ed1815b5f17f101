package model

import "time"

// OrderRecord is an order as fetched from the commerce platform.
// It is never persisted; every track request refetches it.
type OrderRecord struct {
	Number       string     `json:"number"`
	CustomerName string     `json:"customer_name"`
	Email        string     `json:"email,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	LineItems    []LineItem `json:"line_items"`
}

// LineItem is a single ordered product line.
type LineItem struct {
	ID         int64              `json:"id"`
	Title      string             `json:"title"`
	Variant    string             `json:"variant,omitempty"`
	Quantity   int                `json:"quantity"`
	SKU        string             `json:"sku,omitempty"`
	Properties []LineItemProperty `json:"properties,omitempty"`
}

// LineItemProperty is a free-form name/value pair attached to a line item
// (fitting notes, customization options and similar).
type LineItemProperty struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
