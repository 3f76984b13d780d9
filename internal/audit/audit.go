package audit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Resource is the panel object a mutation touched. CircuitID is the owning
// circuit, equal to ID for circuit-level actions.
type Resource struct {
	Type      string
	ID        string
	CircuitID string
}

// Entry records one successful panel mutation.
type Entry struct {
	ID        string
	Action    string
	Actor     string
	Role      string
	Resource  Resource
	Origin    Origin
	Metadata  json.RawMessage
	Digest    string
	CreatedAt time.Time
}

// Logger writes audit entries.
type Logger interface {
	Log(ctx context.Context, entry Entry) error
}

// NewEntry builds an entry for action on resource, encoding meta as its metadata.
func NewEntry(action string, resource Resource, meta map[string]any) (Entry, error) {
	entry := Entry{Action: action, Resource: resource}
	if len(meta) > 0 {
		payload, err := json.Marshal(meta)
		if err != nil {
			return Entry{}, err
		}
		entry.Metadata = payload
	}
	return entry, nil
}

// complete fills the id, timestamp and digest when they are unset.
func (e *Entry) complete(now time.Time) {
	if e.ID == "" {
		e.ID = "audit-" + uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now.UTC()
	}
	if e.Digest == "" {
		e.Digest = DigestJSON(e.Metadata)
	}
}

// DigestJSON computes a SHA256 hex digest for metadata payloads.
func DigestJSON(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
