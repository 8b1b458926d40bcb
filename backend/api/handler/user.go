package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"files-manager/backend/api/middleware"
	"files-manager/backend/common"
	"files-manager/backend/model"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PostNew registers an account.
func (h *Handler) PostNew(c *gin.Context) {
	var req registerRequest
	_ = c.ShouldBindJSON(&req)
	if req.Email == "" {
		common.RespError(c, http.StatusBadRequest, "Missing email")
		return
	}
	if req.Password == "" {
		common.RespError(c, http.StatusBadRequest, "Missing password")
		return
	}
	user, err := model.InsertUser(req.Email, common.HashPassword(req.Password))
	if errors.Is(err, model.ErrEmailTaken) {
		common.RespError(c, http.StatusBadRequest, "Already exist")
		return
	}
	if err != nil {
		h.internalError(c, "insert user", err)
		return
	}
	common.RespJSON(c, http.StatusCreated, user)
}

// GetMe returns the authenticated account.
func (h *Handler) GetMe(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	user, err := model.GetUserByID(userID)
	if err != nil {
		h.internalError(c, "get user", err)
		return
	}
	if user == nil {
		// The session outlived the account it points at.
		common.RespError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	common.RespJSON(c, http.StatusOK, user)
}
