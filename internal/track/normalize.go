package track

import (
	"log/slog"
	"strings"

	"github.com/kmarsden/skatetrack/internal/model"
)

// statusLabels maps the document database's display labels to canonical
// status keys.
var statusLabels = map[string]string{
	"Placed":       model.StatusPlaced,
	"Not in UK":    model.StatusNotInUK,
	"On the way":   model.StatusOnTheWay,
	"Ready to try": model.StatusReadyToTry,
	"Collected":    model.StatusCollected,
}

// Normalize maps a raw status label to a canonical status key. Unrecognized
// or empty labels fall back to "placed" rather than failing: a customer
// should always see some status, even if the record holds a label this
// service does not know. The fallback is logged so it is not invisible.
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)

	if key, ok := statusLabels[trimmed]; ok {
		return key
	}
	for label, key := range statusLabels {
		if strings.EqualFold(label, trimmed) {
			return key
		}
	}

	slog.Warn("unrecognized status label, defaulting", "raw", raw, "default", model.StatusPlaced)
	return model.StatusPlaced
}
