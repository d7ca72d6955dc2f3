package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"serein/internal/service"
)

// IdentityKey is the echo context key under which the JWT middleware stores
// the authenticated identity.
const IdentityKey = "identity"

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

// IDs are serialized as strings: snowflake IDs overflow the safe integer
// range of JavaScript clients.
func idToString(id int64) string {
	return strconv.FormatInt(id, 10)
}

func currentIdentity(c echo.Context) (service.Identity, bool) {
	ident, ok := c.Get(IdentityKey).(service.Identity)
	return ident, ok
}
