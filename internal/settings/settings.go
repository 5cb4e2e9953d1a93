package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

var ErrNoSections = errors.New("no recognized settings section")

// Document is the two-section key/value settings blob served to clients.
// Section key sets are fixed at process start: runtime updates may overwrite
// values for known keys but never add or remove keys.
type Document struct {
	Offsets map[string]string `json:"offsets"`
	Bones   map[string]string `json:"bones"`
}

// Incoming is an untyped update payload. Values are kept as interface{} so
// non-string entries can be dropped silently instead of failing the decode.
type Incoming struct {
	Offsets map[string]interface{} `json:"offsets"`
	Bones   map[string]interface{} `json:"bones"`
}

// Defaults is the compiled-in settings document. A snapshot on disk can
// override these values at startup but cannot introduce new keys.
func Defaults() Document {
	return Document{
		Offsets: map[string]string{
			"Base":         "0x0",
			"Anchor":       "0x10",
			"FrameOrigin":  "0x20",
			"ViewOrigin":   "0x30",
			"WorldScale":   "0x40",
			"UpdateStride": "0x50",
		},
		Bones: map[string]string{
			"Root":      "0x0",
			"Head":      "0x8",
			"Spine":     "0x10",
			"Hip":       "0x18",
			"LeftHand":  "0x20",
			"RightHand": "0x28",
		},
	}
}

// Store owns the settings document and its durable JSON snapshot.
type Store struct {
	mu   sync.RWMutex
	doc  Document
	path string
}

func NewStore(path string) *Store {
	return &Store{doc: Defaults(), path: path}
}

// Load overlays the on-disk snapshot onto the defaults. Absence of the file
// is not an error; the snapshot only contributes string values for keys the
// defaults already know.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read settings snapshot: %w", err)
	}

	var disk Incoming
	if err := json.Unmarshal(data, &disk); err != nil {
		return fmt.Errorf("parse settings snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	mergeSection(s.doc.Offsets, disk.Offsets)
	mergeSection(s.doc.Bones, disk.Bones)
	slog.Info("Loaded settings snapshot", "path", s.path)
	return nil
}

// Get returns a copy of the current document.
func (s *Store) Get() Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.copy()
}

// Update merges the incoming payload into the document and persists the
// result. The merge is key-preserving and silently lenient: only string
// values for keys already present in a section are applied. When the write
// fails the in-memory update stays in place and the error is returned; memory
// and disk then diverge until a later update succeeds.
func (s *Store) Update(in Incoming) (Document, error) {
	if in.Offsets == nil && in.Bones == nil {
		return Document{}, ErrNoSections
	}

	s.mu.Lock()
	mergeSection(s.doc.Offsets, in.Offsets)
	mergeSection(s.doc.Bones, in.Bones)
	merged := s.doc.copy()
	s.mu.Unlock()

	if err := s.save(merged); err != nil {
		return Document{}, fmt.Errorf("persist settings: %w", err)
	}
	return merged, nil
}

func (s *Store) save(doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

func mergeSection(current map[string]string, incoming map[string]interface{}) {
	for key, value := range incoming {
		if _, known := current[key]; !known {
			continue
		}
		str, ok := value.(string)
		if !ok {
			continue
		}
		current[key] = str
	}
}

func (d Document) copy() Document {
	out := Document{
		Offsets: make(map[string]string, len(d.Offsets)),
		Bones:   make(map[string]string, len(d.Bones)),
	}
	for k, v := range d.Offsets {
		out.Offsets[k] = v
	}
	for k, v := range d.Bones {
		out.Bones[k] = v
	}
	return out
}
