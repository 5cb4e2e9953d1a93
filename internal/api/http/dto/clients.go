package dto

import "time"

type HeartbeatRequest struct {
	ClientID string `json:"client_id"`
	Status   string `json:"status"`
	// Ts is either an RFC 3339 string or an epoch seconds/milliseconds
	// number; anything else falls back to server time.
	Ts interface{} `json:"ts"`
}

type HeartbeatResponse struct {
	OK bool `json:"ok"`
}

type ClientResponse struct {
	ClientID string    `json:"client_id"`
	Status   string    `json:"status"`
	LastSeen time.Time `json:"last_seen"`
	Active   bool      `json:"active"`
}

type ListClientsResponse struct {
	Clients    []ClientResponse `json:"clients"`
	ServerTime time.Time        `json:"server_time"`
}
