// Package track joins commerce line items with a document-database status
// record into the per-item view shown to the customer.
package track

import (
	"fmt"
	"time"

	"github.com/kmarsden/skatetrack/internal/model"
)

// displayDateFormat renders dates as e.g. "2 January 2026".
const displayDateFormat = "2 January 2006"

// Reconcile joins an order's line items with its status record. Each line
// item whose title classifies as boot-like or blade-like produces one
// TrackableItem, in source order; unclassified titles are skipped. An item
// is emitted even when the record carries no status for its product type
// (the status then normalizes to "placed") so that nothing a customer paid
// for disappears from the tracking view. An empty result is valid.
func Reconcile(order *model.OrderRecord, status *model.StatusRecord) []model.TrackableItem {
	reviewed := formatDate(status.LastReviewed, time.Now())

	items := make([]model.TrackableItem, 0, len(order.LineItems))
	for _, line := range order.LineItems {
		switch {
		case IsBootLike(line.Title):
			items = append(items, model.TrackableItem{
				ID:              fmt.Sprintf("%s-%d", model.ProductBoot, line.ID),
				Type:            model.ProductBoot,
				Model:           fallback(status.BootModel, line.Title),
				Size:            fallback(status.Size, line.Variant),
				Status:          Normalize(status.BootStatus),
				Supplier:        status.Supplier,
				Notes:           status.BootNotes,
				ExpectedArrival: arrivalDate(status.BootArrival),
				LastReviewed:    reviewed,
			})
		case IsBladeLike(line.Title):
			items = append(items, model.TrackableItem{
				ID:              fmt.Sprintf("%s-%d", model.ProductBlade, line.ID),
				Type:            model.ProductBlade,
				Model:           fallback(status.BladeModel, line.Title),
				Size:            line.Variant,
				Status:          Normalize(status.BladeStatus),
				Supplier:        status.Supplier,
				Notes:           status.BladeNotes,
				ExpectedArrival: arrivalDate(status.BladeArrival),
				LastReviewed:    reviewed,
			})
		}
	}
	return items
}

func fallback(preferred, alternative string) string {
	if preferred != "" {
		return preferred
	}
	return alternative
}

func formatDate(t *time.Time, def time.Time) string {
	if t == nil || t.IsZero() {
		return def.Format(displayDateFormat)
	}
	return t.Format(displayDateFormat)
}

func arrivalDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(displayDateFormat)
}
