package registry

import (
	"sort"
	"sync"
	"time"
)

// ActiveWindow is how recently a client must have heartbeated to count as
// active. The boundary is inclusive: exactly ActiveWindow ago is still active.
const ActiveWindow = 120 * time.Second

type Client struct {
	ID       string
	Status   string
	LastSeen time.Time
}

// ClientStatus is a Client annotated with the liveness derived at read time.
type ClientStatus struct {
	Client
	Active bool
}

// Registry is the process-lifetime roster of heartbeating clients. Entries
// are never evicted; for a small fleet the unbounded growth is an accepted
// limitation, not a leak to fix.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]Client
	now     func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[string]Client),
		now:     time.Now,
	}
}

// Heartbeat upserts the record for id. The previous record is replaced
// wholesale: last write wins for both status and timestamp. A zero ts means
// "now".
func (r *Registry) Heartbeat(id, status string, ts time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ts.IsZero() {
		ts = r.now()
	}
	r.clients[id] = Client{
		ID:       id,
		Status:   status,
		LastSeen: ts,
	}
}

// List returns every known client ordered by ID ascending, each annotated
// with its liveness, plus the server time the liveness was derived from.
func (r *Registry) List() ([]ClientStatus, time.Time) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	now := r.now()
	result := make([]ClientStatus, 0, len(r.clients))
	for _, c := range r.clients {
		result = append(result, ClientStatus{
			Client: c,
			Active: now.Sub(c.LastSeen) <= ActiveWindow,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, now
}

// Len reports the number of known clients, active or not.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}
