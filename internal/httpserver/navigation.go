package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	instancemw "github.com/Skotchmaster/storefront/internal/middleware/instance"
	"github.com/Skotchmaster/storefront/internal/navigation"
)

type NavigationHTTP struct{}

func navStatus(err error) int {
	if errors.Is(err, navigation.ErrUnavailable) {
		return http.StatusForbidden
	}
	return http.StatusBadRequest
}

func (h *NavigationHTTP) GetState(c echo.Context) error {
	return c.JSON(http.StatusOK, instancemw.FromContext(c).Nav.State())
}

func (h *NavigationHTTP) Navigate(c echo.Context) error {
	return h.route(c, "navigate", (*navigation.Navigator).Navigate)
}

func (h *NavigationHTTP) Replace(c echo.Context) error {
	return h.route(c, "replace", (*navigation.Navigator).Replace)
}

func (h *NavigationHTTP) route(c echo.Context, op string, fn func(*navigation.Navigator, navigation.Route) (navigation.State, error)) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "navigation."+op)
	nav := instancemw.FromContext(c).Nav

	var r navigation.Route
	if err := c.Bind(&r); err != nil {
		l.Warn(op+"_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	st, err := fn(nav, r)
	if err != nil {
		code := navStatus(err)
		l.Warn(op+"_error", "status", code, "screen", r.Screen, "error", err)
		return echo.NewHTTPError(code, err.Error())
	}
	return c.JSON(http.StatusOK, st)
}

// Back pops one route. At the root it is a no-op and popped is false.
func (h *NavigationHTTP) Back(c echo.Context) error {
	st, popped := instancemw.FromContext(c).Nav.Back()
	return c.JSON(http.StatusOK, echo.Map{
		"popped": popped,
		"state":  st,
	})
}

func (h *NavigationHTTP) SelectTab(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "navigation.tab")
	nav := instancemw.FromContext(c).Nav

	var req struct {
		Tab navigation.Tab `json:"tab"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("tab_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	st, err := nav.SelectTab(req.Tab)
	if err != nil {
		code := navStatus(err)
		l.Warn("tab_error", "status", code, "tab", req.Tab, "error", err)
		return echo.NewHTTPError(code, err.Error())
	}
	return c.JSON(http.StatusOK, st)
}
