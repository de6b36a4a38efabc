package middleware

import (
	"github.com/OFFIS-RIT/peoplegraph/pkg/query"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/labstack/echo/v4"
)

type AppUser struct {
	UserID      string
	Role        string
	Permissions []string
}

// App carries the process-wide collaborators every handler needs.
//
// Key is nil when no JWKS endpoint is configured. With neither Key nor
// MasterAPIKey set, authentication is disabled and every request runs with
// all permissions.
type App struct {
	Engine       *query.Engine
	Key          *keyfunc.Keyfunc
	MasterAPIKey string
}

// AuthDisabled reports whether no authentication method is configured.
func (a *App) AuthDisabled() bool {
	return a.Key == nil && a.MasterAPIKey == ""
}

type AppContext struct {
	echo.Context
	App  *App
	User *AppUser
}

func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, app, nil}
			return next(cc)
		}
	}
}
