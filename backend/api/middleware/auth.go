package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"files-manager/backend/common"
	"files-manager/backend/service"
)

const userIDKey = "userID"

// TokenAuth rejects requests without a live X-Token session. A cache outage
// also rejects: an unreachable session store never authenticates anyone.
func TokenAuth(gate *service.AuthGate) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := gate.UserForToken(c.Request.Context(), c.GetHeader("X-Token"))
		if err != nil {
			if !errors.Is(err, service.ErrUnauthorized) {
				common.SysError("resolve token: " + err.Error())
			}
			common.RespError(c, http.StatusUnauthorized, "Unauthorized")
			c.Abort()
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// OptionalTokenAuth sets the caller identity when a valid token is present
// and lets the request through either way. Used by the public content
// endpoint.
func OptionalTokenAuth(gate *service.AuthGate) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := c.GetHeader("X-Token"); token != "" {
			if userID, err := gate.UserForToken(c.Request.Context(), token); err == nil {
				c.Set(userIDKey, userID)
			}
		}
		c.Next()
	}
}

// UserID reads the authenticated identity set by the auth middleware.
func UserID(c *gin.Context) (uint64, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	userID, ok := v.(uint64)
	return userID, ok
}
