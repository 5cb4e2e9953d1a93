package handler

import (
	"net/http"

	"github.com/driftpoint/beaconhub/internal/api/http/dto"
	"github.com/driftpoint/beaconhub/internal/directive"
	"github.com/gin-gonic/gin"
)

type KillHandler struct {
	store *directive.Store
}

func NewKillHandler(store *directive.Store) *KillHandler {
	return &KillHandler{store: store}
}

// Get is the client poll endpoint, open by design.
func (h *KillHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Get())
}

// Set replaces the directive. kill_all must be exactly the boolean true;
// failing that, kill_clients must be an array, of which only string elements
// are kept. Anything else leaves the directive untouched.
func (h *KillHandler) Set(c *gin.Context) {
	var req dto.SetKillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}

	message, _ := req.Message.(string)

	if killAll, ok := req.KillAll.(bool); ok && killAll {
		d := h.store.SetBroadcast(message)
		c.JSON(http.StatusOK, dto.KillResponse{OK: true, Directive: d})
		return
	}

	if list, ok := req.KillClients.([]interface{}); ok {
		ids := make([]string, 0, len(list))
		for _, v := range list {
			if id, ok := v.(string); ok {
				ids = append(ids, id)
			}
		}
		d := h.store.SetTargeted(ids, message)
		c.JSON(http.StatusOK, dto.KillResponse{OK: true, Directive: d})
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
}

// Clear resets the directive to inactive regardless of prior state.
func (h *KillHandler) Clear(c *gin.Context) {
	d := h.store.Clear()
	c.JSON(http.StatusOK, dto.KillResponse{OK: true, Directive: d})
}
