package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/logging"
	"storefront/internal/mykafka"
	"storefront/internal/transport"
)

type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event interface{}) error
}

type NotifyHTTP struct {
	Producer EventPublisher
}

// Notify queues a bulk customer notification and returns immediately. The
// worker picks the message up from kafka; the request path never waits for
// delivery.
func (h *NotifyHTTP) Notify(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "notify")

	var req transport.NotifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Message == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "message is required")
	}

	if err := h.Producer.PublishEvent(ctx, mykafka.TopicNotificationEvents, "notify", req); err != nil {
		l.Error("notify_publish_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	l.Info("notify_queued")
	return c.JSON(http.StatusAccepted, echo.Map{"status": "queued"})
}
