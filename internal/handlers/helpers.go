package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wicaksana/tokokasir/internal/events"
	"github.com/wicaksana/tokokasir/internal/logging"
	"github.com/wicaksana/tokokasir/internal/pos/menu"
)

// publish sends a domain event, logging instead of failing the request
// when the broker is unavailable. A nil producer disables publishing.
func publish(c echo.Context, p *events.Producer, topic, key string, event map[string]any) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "topic", topic, "error", err)
	}
}

// currentUserID reads the id set by the auth middleware.
func currentUserID(c echo.Context) uint {
	id, _ := c.Get("userID").(uint)
	return id
}

func currentRole(c echo.Context) menu.Role {
	s, _ := c.Get("role").(string)
	r, err := menu.ParseRole(s)
	if err != nil {
		return menu.Kasir
	}
	return r
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
