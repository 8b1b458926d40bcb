package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"files-manager/backend/common"
	"files-manager/backend/model"
)

// GetStatus reports liveness of the backing stores.
func (h *Handler) GetStatus(c *gin.Context) {
	ctx := c.Request.Context()
	common.RespJSON(c, http.StatusOK, gin.H{
		"redis": common.RedisAlive(ctx),
		"db":    model.DBAlive(ctx),
	})
}

// GetStats reports catalog counts.
func (h *Handler) GetStats(c *gin.Context) {
	users, err := model.CountUsers()
	if err != nil {
		h.internalError(c, "count users", err)
		return
	}
	files, err := model.CountFiles()
	if err != nil {
		h.internalError(c, "count files", err)
		return
	}
	common.RespJSON(c, http.StatusOK, gin.H{"users": users, "files": files})
}

func (h *Handler) internalError(c *gin.Context, op string, err error) {
	common.SysError(op + ": " + err.Error())
	common.RespError(c, http.StatusInternalServerError, "Internal server error")
}
