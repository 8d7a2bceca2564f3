package server

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

const maxUploadBytes = 10 << 20

// uploadImage pushes an admin-supplied image to the hosting provider and
// returns its public URL.
func (s *Server) uploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		AbortWithError(c, newValidationError("file", "required", "file is required"))
		return
	}
	if file.Size > maxUploadBytes {
		AbortWithError(c, newValidationError("file", "too_large", "file exceeds the upload limit"))
		return
	}

	src, err := file.Open()
	if err != nil {
		AbortWithError(c, err)
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxUploadBytes))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	url, err := s.images.Upload(c.Request.Context(), data, file.Filename)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
