package api

import (
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/kmarsden/skatetrack/internal/metrics"
	"github.com/kmarsden/skatetrack/internal/model"
	"github.com/kmarsden/skatetrack/internal/notion"
	"github.com/kmarsden/skatetrack/internal/shopify"
	"github.com/kmarsden/skatetrack/internal/token"
	"github.com/kmarsden/skatetrack/internal/track"
)

// TrackHandler handles the customer-facing track endpoint.
type TrackHandler struct {
	TokenSecret string
	Shopify     *shopify.Client
	Notion      *notion.Client
}

type trackResponse struct {
	OrderNumber  string                `json:"orderNumber"`
	CustomerName string                `json:"customerName"`
	OrderDate    string                `json:"orderDate"`
	Items        []model.TrackableItem `json:"items"`
}

// Track handles GET /api/track. The capability token in the query string is
// the only credential; its subject names the order to show.
func (h *TrackHandler) Track(w http.ResponseWriter, r *http.Request) {
	metrics.TrackRequestsTotal.Inc()

	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		jsonError(w, http.StatusBadRequest, "missing token")
		return
	}

	orderNumber, err := token.Validate(h.TokenSecret, tokenStr)
	if err != nil {
		metrics.TokenValidationFailuresTotal.Inc()
		jsonError(w, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	// Both upstreams are fetched concurrently and awaited jointly; either
	// failure aborts the request with no partial result.
	var (
		order    *model.OrderRecord
		statuses []model.StatusRecord
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		order, err = h.Shopify.FetchOrder(ctx, orderNumber)
		if err != nil {
			metrics.UpstreamFailuresTotal.WithLabelValues("shopify").Inc()
			slog.Error("order fetch failed", "order", orderNumber, "error", err)
		}
		return err
	})
	g.Go(func() error {
		var err error
		statuses, err = h.Notion.QueryStatusRecords(ctx, orderNumber)
		if err != nil {
			metrics.UpstreamFailuresTotal.WithLabelValues("notion").Inc()
			slog.Error("status record fetch failed", "order", orderNumber, "error", err)
		}
		return err
	})
	if err := g.Wait(); err != nil {
		// Which system failed stays in logs and metrics; the response is a
		// generic failure either way.
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if order == nil {
		jsonError(w, http.StatusNotFound, "order not found")
		return
	}
	if len(statuses) == 0 {
		jsonError(w, http.StatusNotFound, "status record not found")
		return
	}

	items := track.Reconcile(order, &statuses[0])
	jsonResponse(w, http.StatusOK, trackResponse{
		OrderNumber:  orderNumber,
		CustomerName: order.CustomerName,
		OrderDate:    order.CreatedAt.Format("2 January 2006"),
		Items:        items,
	})
}
