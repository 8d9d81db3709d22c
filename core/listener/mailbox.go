package listener

import "sync"

// mailbox is a FIFO queue of envelopes owned by one actor.
// push never blocks; with capacity 0 the queue is unbounded.
type mailbox struct {
	mu       sync.Mutex
	queue    []Envelope
	capacity int
	closed   bool
	ready    chan struct{}
}

func newMailbox(capacity int) *mailbox {
	if capacity < 0 {
		capacity = 0
	}
	return &mailbox{
		capacity: capacity,
		ready:    make(chan struct{}, 1),
	}
}

func (m *mailbox) push(env Envelope) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrMailboxClosed
	}
	if m.capacity > 0 && len(m.queue) >= m.capacity {
		m.mu.Unlock()
		return ErrMailboxFull
	}
	m.queue = append(m.queue, env)
	m.mu.Unlock()

	m.notify()
	return nil
}

// drain removes and returns every queued envelope in arrival order.
func (m *mailbox) drain() ([]Envelope, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	batch := m.queue
	m.queue = nil
	return batch, m.closed
}

// close stops accepting envelopes. Already queued envelopes stay drainable.
func (m *mailbox) close() bool {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return false
	}
	m.closed = true
	m.mu.Unlock()

	m.notify()
	return true
}

func (m *mailbox) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

func (m *mailbox) notify() {
	select {
	case m.ready <- struct{}{}:
	default:
	}
}
