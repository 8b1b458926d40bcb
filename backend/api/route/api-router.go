package route

import (
	"github.com/gin-gonic/gin"

	"files-manager/backend/api/handler"
	"files-manager/backend/api/middleware"
	"files-manager/backend/service"
)

// SetRouter mounts the API at the engine root.
func SetRouter(r *gin.Engine, h *handler.Handler, gate *service.AuthGate) {
	r.Use(middleware.CORS())
	r.Use(middleware.DecodeGzipBody())

	r.GET("/status", h.GetStatus)
	r.GET("/stats", h.GetStats)
	r.POST("/users", h.PostNew)
	r.GET("/connect", h.GetConnect)
	r.GET("/disconnect", h.GetDisconnect)
	r.GET("/files/:id/data", middleware.OptionalTokenAuth(gate), h.GetFileData)

	authed := r.Group("", middleware.TokenAuth(gate))
	{
		authed.GET("/users/me", h.GetMe)
		authed.POST("/files", h.PostUpload)
		authed.GET("/files", h.GetIndex)
		authed.GET("/files/:id", h.GetShow)
		authed.PUT("/files/:id/publish", h.PutPublish)
		authed.PUT("/files/:id/unpublish", h.PutUnpublish)
	}
}
