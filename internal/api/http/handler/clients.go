package handler

import (
	"net/http"
	"time"

	"github.com/driftpoint/beaconhub/internal/api/http/dto"
	"github.com/driftpoint/beaconhub/internal/registry"
	"github.com/driftpoint/beaconhub/internal/telemetry"
	"github.com/gin-gonic/gin"
)

type ClientsHandler struct {
	registry *registry.Registry
}

func NewClientsHandler(reg *registry.Registry) *ClientsHandler {
	return &ClientsHandler{registry: reg}
}

// Heartbeat is open to unauthenticated clients; it upserts the caller's
// roster entry wholesale.
func (h *ClientsHandler) Heartbeat(c *gin.Context) {
	var req dto.HeartbeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if req.ClientID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "client_id required"})
		return
	}

	h.registry.Heartbeat(req.ClientID, req.Status, parseTimestamp(req.Ts))
	telemetry.KnownClients.Set(float64(h.registry.Len()))

	c.JSON(http.StatusOK, dto.HeartbeatResponse{OK: true})
}

// List returns the full roster with derived liveness, operator-only.
func (h *ClientsHandler) List(c *gin.Context) {
	clients, serverTime := h.registry.List()

	resp := dto.ListClientsResponse{
		Clients:    make([]dto.ClientResponse, len(clients)),
		ServerTime: serverTime,
	}
	for i, cl := range clients {
		resp.Clients[i] = dto.ClientResponse{
			ClientID: cl.ID,
			Status:   cl.Status,
			LastSeen: cl.LastSeen,
			Active:   cl.Active,
		}
	}

	c.JSON(http.StatusOK, resp)
}

// parseTimestamp accepts an RFC 3339 string or an epoch number (seconds, or
// milliseconds when the magnitude gives it away). Anything else yields the
// zero time, which the registry replaces with server time.
func parseTimestamp(v interface{}) time.Time {
	switch ts := v.(type) {
	case string:
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			return t
		}
	case float64:
		if ts <= 0 {
			return time.Time{}
		}
		if ts >= 1e12 {
			return time.UnixMilli(int64(ts))
		}
		return time.Unix(int64(ts), 0)
	}
	return time.Time{}
}
