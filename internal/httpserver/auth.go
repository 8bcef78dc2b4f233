package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/app"
	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/logging"
	instancemw "github.com/Skotchmaster/storefront/internal/middleware/instance"
	"github.com/Skotchmaster/storefront/internal/session"
)

type AuthHTTP struct {
	Events events.Publisher
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")
	inst := instancemw.FromContext(c)

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := inst.Login(ctx, req.Email, req.Password); err != nil {
		switch {
		case errors.Is(err, app.ErrAlreadyAuthenticated):
			l.Warn("login_failed", "status", 409, "error", err)
			return echo.NewHTTPError(http.StatusConflict, "already logged in")
		case errors.Is(err, session.ErrValidation):
			l.Warn("login_failed", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, session.Reason(err))
		case errors.Is(err, session.ErrInvalidCredentials):
			l.Warn("login_failed", "status", 401, "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid email or password")
		default:
			l.Error("login_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot log in")
		}
	}

	user, _ := inst.Session.User()
	publish(c, h.Events, events.TopicSession, events.Event{Type: "login"})
	l.Info("login_successful", "user_id", user.ID)
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")
	inst := instancemw.FromContext(c)

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := session.ValidateRegistration(req.Name, req.Email, req.Password, req.ConfirmPassword); err != nil {
		l.Warn("register_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, session.Reason(err))
	}

	if err := inst.Register(ctx, req.Name, req.Email, req.Password); err != nil {
		switch {
		case errors.Is(err, app.ErrAlreadyAuthenticated):
			l.Warn("register_failed", "status", 409, "error", err)
			return echo.NewHTTPError(http.StatusConflict, "already logged in")
		case errors.Is(err, session.ErrValidation):
			l.Warn("register_failed", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, session.Reason(err))
		case errors.Is(err, session.ErrConflict):
			l.Warn("register_failed", "status", 409, "error", err)
			return echo.NewHTTPError(http.StatusConflict, "account already exists")
		default:
			l.Error("register_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot register")
		}
	}

	user, _ := inst.Session.User()
	publish(c, h.Events, events.TopicSession, events.Event{Type: "register"})
	l.Info("register_successful", "user_id", user.ID)
	return c.JSON(http.StatusCreated, user)
}

// LogOut ends the session and empties the cart. Logging out twice is fine.
func (h *AuthHTTP) LogOut(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "auth_logout")
	inst := instancemw.FromContext(c)

	user, was := inst.Session.User()
	inst.Logout()
	if was {
		publish(c, h.Events, events.TopicSession, events.Event{Type: "logout", UserID: user.ID})
	}

	l.Info("successful_logout")
	return c.JSON(http.StatusOK, echo.Map{
		"message": "logged out",
	})
}

func (h *AuthHTTP) Me(c echo.Context) error {
	inst := instancemw.FromContext(c)
	user, ok := inst.Session.User()
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not logged in")
	}
	return c.JSON(http.StatusOK, user)
}
