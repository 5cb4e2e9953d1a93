package directive

import "sync"

// Directive is the single global kill instruction polled by clients. Exactly
// one of broadcast (KillAll) or a targeted client list is in effect; setting
// one discards the other.
type Directive struct {
	KillAll     bool     `json:"kill_all"`
	KillClients []string `json:"kill_clients"`
	Message     string   `json:"message"`
}

// Matches reports whether the directive addresses the given client.
func (d Directive) Matches(clientID string) bool {
	if d.KillAll {
		return true
	}
	for _, id := range d.KillClients {
		if id == clientID {
			return true
		}
	}
	return false
}

// Store holds the one process-wide directive. Every write replaces the value
// wholesale; there is no history.
type Store struct {
	mu      sync.RWMutex
	current Directive
}

func NewStore() *Store {
	return &Store{current: inactive()}
}

func inactive() Directive {
	return Directive{KillClients: []string{}}
}

// Get returns the current directive. KillClients is never nil so the wire
// form is always a JSON array.
func (s *Store) Get() Directive {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// SetBroadcast replaces the directive with a broadcast kill.
func (s *Store) SetBroadcast(message string) Directive {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = Directive{KillAll: true, KillClients: []string{}, Message: message}
	return s.snapshot()
}

// SetTargeted replaces the directive with a kill addressed to the given
// clients only.
func (s *Store) SetTargeted(clientIDs []string, message string) Directive {
	if clientIDs == nil {
		clientIDs = []string{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = Directive{KillClients: clientIDs, Message: message}
	return s.snapshot()
}

// Clear unconditionally resets the directive to inactive.
func (s *Store) Clear() Directive {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = inactive()
	return s.snapshot()
}

func (s *Store) snapshot() Directive {
	d := s.current
	d.KillClients = append([]string{}, d.KillClients...)
	return d
}
