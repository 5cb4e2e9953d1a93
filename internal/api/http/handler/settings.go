package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/driftpoint/beaconhub/internal/api/http/dto"
	"github.com/driftpoint/beaconhub/internal/settings"
	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	store *settings.Store
}

func NewSettingsHandler(store *settings.Store) *SettingsHandler {
	return &SettingsHandler{store: store}
}

// Get serves the full document to unauthenticated clients.
func (h *SettingsHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Get())
}

// Update applies a key-preserving merge and persists the snapshot. A failed
// write is reported to the caller but the in-memory update is kept.
func (h *SettingsHandler) Update(c *gin.Context) {
	var req settings.Incoming
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no_config"})
		return
	}

	doc, err := h.store.Update(req)
	if err != nil {
		if errors.Is(err, settings.ErrNoSections) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no_config"})
			return
		}
		slog.Error("Failed to save settings snapshot", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save_failed"})
		return
	}

	c.JSON(http.StatusOK, dto.UpdateSettingsResponse{OK: true, Config: doc})
}
