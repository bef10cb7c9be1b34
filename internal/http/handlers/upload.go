package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/productflow-backend/internal/http/response"
	"github.com/yungbote/productflow-backend/internal/pkg/logger"
	"github.com/yungbote/productflow-backend/internal/platform/filestore"
)

const maxPhotoBytes = 10 << 20

type UploadHandler struct {
	log   *logger.Logger
	files filestore.Store
}

func NewUploadHandler(log *logger.Logger, files filestore.Store) *UploadHandler {
	return &UploadHandler{
		log:   log.With("handler", "UploadHandler"),
		files: files,
	}
}

// POST /api/uploads/photo
// The returned temporary path is what product create/update accept as photo.
func (h *UploadHandler) UploadPhoto(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPhotoBytes+(1<<20))
	fh, err := c.FormFile("file")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "missing_file", err)
		return
	}
	if fh.Size > maxPhotoBytes {
		response.RespondError(c, http.StatusRequestEntityTooLarge, "file_too_large", errors.New("file too large"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "unreadable_file", err)
		return
	}
	defer f.Close()

	rel, err := h.files.SaveTemporary(fh.Filename, f)
	if err != nil {
		h.log.Error("Save upload failed", "filename", fh.Filename, "error", err)
		response.RespondError(c, http.StatusInternalServerError, "upload_failed", errors.New("could not store upload"))
		return
	}
	response.RespondCreated(c, gin.H{"path": rel})
}
