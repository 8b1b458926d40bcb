package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"files-manager/backend/common"
	"files-manager/backend/service"
)

// GetConnect exchanges a Basic-style Authorization header for a session
// token.
func (h *Handler) GetConnect(c *gin.Context) {
	token, err := h.gate.Login(c.Request.Context(), c.GetHeader("Authorization"))
	if errors.Is(err, service.ErrUnauthorized) {
		common.RespError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if err != nil {
		h.internalError(c, "login", err)
		return
	}
	common.RespJSON(c, http.StatusOK, gin.H{"token": token})
}

// GetDisconnect revokes the session named by X-Token.
func (h *Handler) GetDisconnect(c *gin.Context) {
	err := h.gate.Logout(c.Request.Context(), c.GetHeader("X-Token"))
	if errors.Is(err, service.ErrUnauthorized) {
		common.RespError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if err != nil {
		h.internalError(c, "logout", err)
		return
	}
	c.Status(http.StatusNoContent)
}
