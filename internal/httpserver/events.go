package httpserver

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/logging"
	instancemw "github.com/Skotchmaster/storefront/internal/middleware/instance"
)

// publish emits ev keyed by the instance id. A failed publish is logged and
// never fails the request.
func publish(c echo.Context, pub events.Publisher, topic string, ev events.Event) {
	if pub == nil {
		return
	}
	ctx := c.Request().Context()
	id := instancemw.InstanceID(c).String()
	ev.InstanceID = id
	if ev.UserID == "" {
		if inst := instancemw.FromContext(c); inst != nil {
			if u, ok := inst.Session.User(); ok {
				ev.UserID = u.ID
			}
		}
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	if err := pub.Publish(ctx, topic, id, ev); err != nil {
		logging.FromContext(ctx).Warn("publish_event_failed", "topic", topic, "type", ev.Type, "error", err)
	}
}
