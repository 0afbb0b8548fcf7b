package handlers

import (
	"io"
	"net/http"
	"strings"

	"flynext/services/storage"
	"flynext/utils"

	"github.com/gin-gonic/gin"
)

// maxUploadSize bounds a single uploaded file.
const maxUploadSize = 10 << 20

type UploadHandler struct {
	Storage storage.StorageService
}

// UploadFileHandler handles POST /api/upload (multipart: file, upload-type, hotel-id, room-id).
func (h *UploadHandler) UploadFileHandler(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "No file provided", "")
		return
	}
	if fh.Size > maxUploadSize {
		utils.JSONError(c, http.StatusRequestEntityTooLarge, "File too large", "")
		return
	}
	f, err := fh.Open()
	if err != nil {
		fail(c, utils.Internal("failed to open upload", err))
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxUploadSize+1))
	if err != nil {
		fail(c, utils.Internal("failed to read upload", err))
		return
	}

	res, err := h.Storage.Upload(c.Request.Context(), storage.UploadRequest{
		UserID:     currentUserID(c),
		UploadType: c.PostForm("upload-type"),
		HotelID:    c.PostForm("hotel-id"),
		RoomID:     c.PostForm("room-id"),
		FileName:   fh.Filename,
		Data:       data,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ServeFileHandler handles GET /api/upload/*path.
func (h *UploadHandler) ServeFileHandler(c *gin.Context) {
	full, contentType, err := h.Storage.Resolve(strings.TrimPrefix(c.Param("path"), "/"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Header("Content-Type", contentType)
	c.File(full)
}
