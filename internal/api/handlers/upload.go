package handlers

import (
	"errors"
	"log"
	"net/http"
	"os"

	"studytoolsai/internal/extract"
	"studytoolsai/internal/models"
	"studytoolsai/internal/upload"

	"github.com/gin-gonic/gin"
)

// HandleUpload accepts a single multipart file, extracts its text, and
// returns the normalized content. The stored temp file is removed before the
// response goes out, on success and failure alike.
func (h *Handler) HandleUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "no file uploaded")
		return
	}
	log.Printf("INFO: Processing upload: %s (%d bytes, %s)", fileHeader.Filename, fileHeader.Size, upload.MediaTypeFor(fileHeader))

	uploaded, err := h.Store.Save(fileHeader)
	if err != nil {
		switch {
		case errors.Is(err, upload.ErrFileTooLarge),
			errors.Is(err, upload.ErrMediaTypeNotAllowed),
			errors.Is(err, upload.ErrEmptyFile):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			log.Printf("ERROR: Failed to store upload %s: %v", fileHeader.Filename, err)
			respondError(c, http.StatusInternalServerError, "failed to store uploaded file")
		}
		return
	}

	content, err := h.Extractor.Extract(c.Request.Context(), uploaded)
	if err != nil {
		log.Printf("ERROR: Extraction failed for %s: %v", uploaded.OriginalName, err)
		if errors.Is(err, extract.ErrUnsupportedMediaType) {
			// The extractor never took ownership of the file, so dispose of it
			// here. The allow-list makes this path unreachable in practice.
			if rmErr := os.Remove(uploaded.TempPath); rmErr != nil && !os.IsNotExist(rmErr) {
				log.Printf("WARN: Failed to remove rejected upload %s: %v", uploaded.TempPath, rmErr)
			}
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	log.Printf("INFO: Extracted %d characters from %s", len(content), uploaded.OriginalName)
	respondData(c, models.UploadData{
		Filename:      uploaded.OriginalName,
		FileType:      uploaded.MediaType,
		Content:       content,
		ContentLength: len(content),
	})
}
