package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"files-manager/backend/api/middleware"
	"files-manager/backend/common"
	"files-manager/backend/model"
	"files-manager/backend/service"
)

// PostUpload creates a folder or stores a file/image.
func (h *Handler) PostUpload(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	var req service.UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespError(c, http.StatusBadRequest, "Invalid request")
		return
	}
	entry, err := h.files.Upload(c.Request.Context(), userID, &req)
	if err != nil {
		h.fileError(c, "upload", err)
		return
	}
	common.RespJSON(c, http.StatusCreated, entry)
}

// GetShow returns one owned entry.
func (h *Handler) GetShow(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	fileID, err := model.ParseID(c.Param("id"))
	if err != nil {
		common.RespError(c, http.StatusNotFound, "Not found")
		return
	}
	entry, err := h.files.Show(userID, fileID)
	if err != nil {
		h.fileError(c, "show", err)
		return
	}
	common.RespJSON(c, http.StatusOK, entry)
}

// GetIndex lists one page of owned entries under a parent. A parent that
// parses to nothing yields an empty page, same as a page past the end.
func (h *Handler) GetIndex(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	parentID, err := model.ParseID(c.DefaultQuery("parentId", "0"))
	if err != nil {
		common.RespJSON(c, http.StatusOK, []*model.File{})
		return
	}
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil {
		page = 0
	}
	entries, err := h.files.Index(userID, parentID, page)
	if err != nil {
		h.fileError(c, "index", err)
		return
	}
	common.RespJSON(c, http.StatusOK, entries)
}

// PutPublish makes an owned entry public.
func (h *Handler) PutPublish(c *gin.Context) {
	h.setPublic(c, true)
}

// PutUnpublish makes an owned entry private.
func (h *Handler) PutUnpublish(c *gin.Context) {
	h.setPublic(c, false)
}

func (h *Handler) setPublic(c *gin.Context, public bool) {
	userID, _ := middleware.UserID(c)
	fileID, err := model.ParseID(c.Param("id"))
	if err != nil {
		common.RespError(c, http.StatusNotFound, "Not found")
		return
	}
	entry, err := h.files.SetPublic(userID, fileID, public)
	if err != nil {
		h.fileError(c, "set visibility", err)
		return
	}
	common.RespJSON(c, http.StatusOK, entry)
}

// GetFileData streams the raw content of an entry. Works without a token for
// public entries.
func (h *Handler) GetFileData(c *gin.Context) {
	fileID, err := model.ParseID(c.Param("id"))
	if err != nil {
		common.RespError(c, http.StatusNotFound, "Not found")
		return
	}
	userID, authed := middleware.UserID(c)
	data, ctype, err := h.files.GetContent(fileID, userID, authed)
	if err != nil {
		h.fileError(c, "get content", err)
		return
	}
	c.Data(http.StatusOK, ctype, data)
}

// fileError maps service outcomes onto the wire: validation reasons are 400,
// not-found is the uniform 404, everything else is an unexpected fault.
func (h *Handler) fileError(c *gin.Context, op string, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		common.RespError(c, http.StatusBadRequest, ve.Reason)
	case errors.Is(err, service.ErrNotFound):
		common.RespError(c, http.StatusNotFound, "Not found")
	default:
		h.internalError(c, op, err)
	}
}
