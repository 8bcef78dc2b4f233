package instancemw

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/app"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/tokens"
)

const (
	CookieName = "storefrontSession"
	contextKey = "instance"
)

// Middleware binds every request to one app.Instance, identified by a signed
// token in the session cookie. Unknown, expired or tampered tokens start a
// fresh instance.
type Middleware struct {
	Registry *app.Registry
	Secret   []byte
	TTL      time.Duration
	Secure   bool
}

func New(r *app.Registry, secret []byte, ttl time.Duration, secure bool) *Middleware {
	return &Middleware{Registry: r, Secret: secret, TTL: ttl, Secure: secure}
}

func (m *Middleware) Attach(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		l := logging.FromContext(req.Context())

		inst, ok := m.resolve(c)
		if !ok {
			inst = m.Registry.Create()
			tok, exp, err := tokens.CreateInstanceToken(inst.ID, m.Secret, m.TTL)
			if err != nil {
				m.Registry.Remove(inst.ID)
				l.Error("instance_token_failed", "status", 500, "error", err)
				return echo.NewHTTPError(http.StatusInternalServerError, "cannot start session")
			}
			c.SetCookie(tokens.CreateCookie(CookieName, tok, "/", exp, m.Secure))
			l.Info("instance_created", "instance_id", inst.ID.String())
		}

		l = l.With("instance_id", inst.ID.String())
		c.SetRequest(req.WithContext(logging.IntoContext(req.Context(), l)))
		c.Set(contextKey, inst)
		return next(c)
	}
}

func (m *Middleware) resolve(c echo.Context) (*app.Instance, bool) {
	ck, err := c.Cookie(CookieName)
	if err != nil || ck.Value == "" {
		return nil, false
	}
	claims, err := tokens.InstanceClaimsFromToken(ck.Value, m.Secret)
	if err != nil {
		logging.FromContext(c.Request().Context()).Debug("instance_token_rejected", "error", err)
		return nil, false
	}
	id, err := claims.InstanceID()
	if err != nil {
		return nil, false
	}
	return m.Registry.Get(id)
}

// RequireAuth rejects requests whose instance has no signed-in user.
func (m *Middleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		inst := FromContext(c)
		if inst == nil || !inst.Session.IsAuthenticated() {
			return echo.NewHTTPError(http.StatusUnauthorized, "login required")
		}
		return next(c)
	}
}

func FromContext(c echo.Context) *app.Instance {
	inst, _ := c.Get(contextKey).(*app.Instance)
	return inst
}

// InstanceID is a convenience for log lines and events.
func InstanceID(c echo.Context) uuid.UUID {
	if inst := FromContext(c); inst != nil {
		return inst.ID
	}
	return uuid.Nil
}
