package dto

import "github.com/driftpoint/beaconhub/internal/directive"

// SetKillRequest keeps the payload untyped: kill_all must be exactly the
// JSON boolean true, and kill_clients must be an array, for the request to
// be accepted. The handler owns that validation.
type SetKillRequest struct {
	KillAll     interface{} `json:"kill_all"`
	KillClients interface{} `json:"kill_clients"`
	Message     interface{} `json:"message"`
}

type KillResponse struct {
	OK        bool                `json:"ok"`
	Directive directive.Directive `json:"killDirective"`
}
