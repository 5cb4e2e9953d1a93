package http

import (
	"github.com/driftpoint/beaconhub/internal/auth"
	"github.com/driftpoint/beaconhub/internal/directive"
	"github.com/driftpoint/beaconhub/internal/registry"
	"github.com/driftpoint/beaconhub/internal/settings"
)

type Config struct {
	Port uint
}

// Services are the owned stores handed to every handler. Each one is a
// single process-wide instance; handlers never reach for ambient state.
type Services struct {
	Auth      *auth.Service
	JWTSecret string
	Registry  *registry.Registry
	Directive *directive.Store
	Settings  *settings.Store
}
