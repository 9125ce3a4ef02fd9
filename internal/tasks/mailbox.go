package tasks

import "sync"

// mailbox is an unbounded FIFO between the engine goroutine and its consumer.
//
// Put never blocks. pump forwards queued updates in order and closes the consumer channel once
// the mailbox is closed and drained.
type mailbox struct {
	mu     sync.Mutex
	queue  []StatusUpdate
	closed bool
	ready  chan struct{}
}

func newMailbox() *mailbox {
	return &mailbox{ready: make(chan struct{}, 1)}
}

// Put enqueues u. Updates put after Close are dropped.
func (m *mailbox) Put(u StatusUpdate) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.queue = append(m.queue, u)
	m.mu.Unlock()
	m.notify()
}

func (m *mailbox) Close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	m.notify()
}

func (m *mailbox) notify() {
	select {
	case m.ready <- struct{}{}:
	default:
	}
}

func (m *mailbox) pump(out chan<- StatusUpdate) {
	defer close(out)
	for {
		m.mu.Lock()
		if len(m.queue) == 0 {
			closed := m.closed
			m.mu.Unlock()
			if closed {
				return
			}
			<-m.ready
			continue
		}
		u := m.queue[0]
		m.queue[0] = StatusUpdate{}
		m.queue = m.queue[1:]
		m.mu.Unlock()

		out <- u
	}
}
