package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// multipartOverhead is the allowance for form boundaries and extra fields on
// top of the file size ceiling.
const multipartOverhead = 1 << 20

// formFile caps the request body before gin parses the multipart form, then
// returns the "file" field. It answers 400 and returns false on failure.
func formFile(c *gin.Context, maxFileBytes int64) (*multipart.FileHeader, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxFileBytes+multipartOverhead)

	file, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File too large"})
			return nil, false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return nil, false
	}
	return file, true
}

// UploadFile handles POST /api/upload
// It accepts images only and returns the public URL.
func (h *Handlers) UploadFile(c *gin.Context) {
	// 1. Get the file from the request
	file, ok := formFile(c, h.Uploads.MaxImageBytes)
	if !ok {
		return
	}

	// 2. Validate and store it
	saved, err := h.Uploads.Save(file, false)
	if err != nil {
		h.respondError(c, err)
		return
	}

	// 3. Return the public URL
	c.JSON(http.StatusOK, gin.H{
		"url":      saved.URL,
		"filename": saved.Filename,
	})
}

// ServeUpload handles GET /uploads/*path
// http.ServeFile answers Range requests with 206 for video seeking.
func (h *Handlers) ServeUpload(c *gin.Context) {
	path, ok := h.Uploads.Resolve(c.Param("path"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	// Uploaded SVGs must not run script on the API origin
	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("Content-Security-Policy", "default-src 'none'; style-src 'unsafe-inline'; sandbox")
	c.Header("Accept-Ranges", "bytes")
	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	c.File(path)
}
