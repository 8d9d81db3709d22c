package listener

import (
	"sync"

	"github.com/google/uuid"
)

// Recipient is an addressable actor that can receive envelopes.
type Recipient interface {
	// ID returns the recipient's unique identifier.
	ID() uuid.UUID

	// Handler returns the value whose methods handle events.
	// Capabilities test it to decide whether the recipient is interested.
	Handler() any

	// Tell enqueues an envelope without waiting for it to be processed.
	Tell(env Envelope) error
}

// Registry resolves the recipients currently registered for a capability.
// Implementations must be safe for concurrent use.
type Registry interface {
	Lookup(c Capability) ([]Recipient, error)
}

// Registrar adds and removes recipients.
type Registrar interface {
	Register(r Recipient) error
	Unregister(id uuid.UUID) bool
}

// MemoryRegistry is an in-process Registry.
// The zero value is not usable, create one with NewMemoryRegistry.
type MemoryRegistry struct {
	mu         sync.RWMutex
	recipients []Recipient
	index      map[uuid.UUID]int
}

// NewMemoryRegistry creates an empty registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		index: make(map[uuid.UUID]int),
	}
}

// Register adds a recipient. It receives every event sent to a capability its handler supports.
func (r *MemoryRegistry) Register(rc Recipient) error {
	if rc == nil {
		return ErrNilRecipient
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := rc.ID()
	if _, exists := r.index[id]; exists {
		return ErrAlreadyRegistered
	}

	r.index[id] = len(r.recipients)
	r.recipients = append(r.recipients, rc)
	return nil
}

// Unregister removes the recipient with the given ID.
// Returns false if no such recipient was registered.
func (r *MemoryRegistry) Unregister(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, exists := r.index[id]
	if !exists {
		return false
	}

	r.recipients = append(r.recipients[:i], r.recipients[i+1:]...)
	delete(r.index, id)
	for j := i; j < len(r.recipients); j++ {
		r.index[r.recipients[j].ID()] = j
	}
	return true
}

// Lookup returns a snapshot of the recipients supporting c.
// The snapshot is safe to iterate while other goroutines register or unregister.
func (r *MemoryRegistry) Lookup(c Capability) ([]Recipient, error) {
	if c.IsZero() {
		return nil, ErrUnknownCapability
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Recipient
	for _, rc := range r.recipients {
		if c.Supports(rc.Handler()) {
			out = append(out, rc)
		}
	}
	return out, nil
}

// Len returns the number of registered recipients.
func (r *MemoryRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.recipients)
}
