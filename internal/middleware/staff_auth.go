package middleware

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/bcrypt"
)

const StaffKeyHeader = "X-Staff-Key"

// StaffAuth guards status-changing routes with a shared staff key checked
// against a bcrypt hash. An empty hash leaves the routes open.
func StaffAuth(keyHash string) echo.MiddlewareFunc {
	if keyHash == "" {
		log.Printf("[Auth] STAFF_KEY_HASH not set, staff routes are unauthenticated")
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	hash := []byte(keyHash)

	return echoMw.KeyAuthWithConfig(echoMw.KeyAuthConfig{
		KeyLookup: "header:" + StaffKeyHeader,
		Validator: func(key string, c echo.Context) (bool, error) {
			return bcrypt.CompareHashAndPassword(hash, []byte(key)) == nil, nil
		},
		ErrorHandler: func(err error, c echo.Context) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "staff key required")
		},
	})
}
