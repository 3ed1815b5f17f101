package model

import "time"

// StatusRecord is a fulfillment status entry from the document database,
// keyed (best-effort one-to-one) by order number. When multiple records
// share an order number only the first is used.
type StatusRecord struct {
	ID           string     `json:"id"`
	OrderNumber  string     `json:"order_number"`
	CustomerName string     `json:"customer_name,omitempty"`
	Contact      string     `json:"contact,omitempty"`
	BootModel    string     `json:"boot_model,omitempty"`
	BladeModel   string     `json:"blade_model,omitempty"`
	Size         string     `json:"size,omitempty"`
	Status       string     `json:"status,omitempty"`
	BootStatus   string     `json:"boot_status,omitempty"`
	BladeStatus  string     `json:"blade_status,omitempty"`
	BootNotes    string     `json:"boot_notes,omitempty"`
	BladeNotes   string     `json:"blade_notes,omitempty"`
	Supplier     string     `json:"supplier,omitempty"`
	BootArrival  *time.Time `json:"boot_arrival,omitempty"`
	BladeArrival *time.Time `json:"blade_arrival,omitempty"`
	LastReviewed *time.Time `json:"last_reviewed,omitempty"`
}

// Canonical status keys. Display labels from the document database are
// normalized into this closed set; anything unrecognized becomes StatusPlaced.
const (
	StatusPlaced     = "placed"
	StatusNotInUK    = "not-in-uk"
	StatusOnTheWay   = "on-the-way"
	StatusReadyToTry = "ready-to-try"
	StatusCollected  = "collected"
)

// Product types.
const (
	ProductBoot  = "boot"
	ProductBlade = "blade"
)
