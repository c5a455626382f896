package handlers

import (
	"log"
	"net/http"

	"studytoolsai/internal/models"

	"github.com/gin-gonic/gin"
)

// HandleTutorChat answers one tutoring exchange. The server keeps no
// conversation state; the client sends the history it wants considered.
func (h *Handler) HandleTutorChat(c *gin.Context) {
	var req models.TutorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Message == "" {
		respondError(c, http.StatusBadRequest, "message is required")
		return
	}

	reply, err := h.AI.TutorReply(c.Request.Context(), req)
	if err != nil {
		log.Printf("ERROR: Tutor reply failed: %v", err)
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondData(c, gin.H{"reply": reply})
}
