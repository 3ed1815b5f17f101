package model

// TrackableItem is the per-request join of one order line item with the
// order's status record. Built fresh for every track request, never stored.
type TrackableItem struct {
	ID              string `json:"id"`
	Type            string `json:"type"`
	Model           string `json:"model"`
	Size            string `json:"size,omitempty"`
	Status          string `json:"status"`
	Supplier        string `json:"supplier,omitempty"`
	Notes           string `json:"notes,omitempty"`
	ExpectedArrival string `json:"expected_arrival,omitempty"`
	LastReviewed    string `json:"last_reviewed"`
}
