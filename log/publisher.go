package log

import (
	"bytes"
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"
)

const defaultBufferSize = 64

// Publisher is an [io.Writer] that turns handler output into plain status
// lines and fans them out to subscribers.
//
// Each non-blank line written is stripped of ANSI styling and surrounding
// space. Delivery never blocks: when a subscriber falls behind, its oldest
// undelivered line is dropped. The last line is kept for [Publisher.Latest],
// so a view created after logging started can show it straight away.
// Safe for concurrent use.
//
// Create instances with [NewPublisher].
type Publisher struct {
	subs    map[*Subscription]struct{}
	latest  string
	bufSize int
	mu      sync.Mutex
	closed  bool
}

// PublisherOption configures a [Publisher].
type PublisherOption func(*Publisher)

// WithBufferSize sets how many lines a subscriber may fall behind.
// Values less than 1 are clamped to 1.
func WithBufferSize(n int) PublisherOption {
	return func(p *Publisher) {
		p.bufSize = max(n, 1)
	}
}

// NewPublisher creates a [Publisher]. The default buffer size is 64.
func NewPublisher(opts ...PublisherOption) *Publisher {
	p := &Publisher{
		subs:    map[*Subscription]struct{}{},
		bufSize: defaultBufferSize,
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Write publishes every non-blank line of b. It always returns len(b), nil,
// also after [Publisher.Close].
func (p *Publisher) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return len(b), nil
	}

	for line := range bytes.Lines(b) {
		text := strings.TrimSpace(ansi.Strip(string(line)))
		if text == "" {
			continue
		}

		p.latest = text

		for sub := range p.subs {
			sub.push(text)
		}
	}

	return len(b), nil
}

// Latest returns the most recent line, or "" if nothing was published.
func (p *Publisher) Latest() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.latest
}

// Subscribe registers a new [Subscription]. On a closed Publisher the
// subscription's channel is already closed.
func (p *Publisher) Subscribe() *Subscription {
	p.mu.Lock()
	defer p.mu.Unlock()

	sub := &Subscription{
		pub: p,
		ch:  make(chan string, p.bufSize),
	}

	if p.closed {
		close(sub.ch)

		return sub
	}

	p.subs[sub] = struct{}{}

	return sub
}

// Close closes every subscription channel. Later writes are discarded.
// Idempotent.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}

	p.closed = true

	for sub := range p.subs {
		close(sub.ch)
	}

	clear(p.subs)

	return nil
}

// Subscription receives status lines from a [Publisher].
type Subscription struct {
	pub *Publisher
	ch  chan string
}

// C returns the channel that delivers lines. It is closed when either the
// subscription or its publisher is closed.
func (s *Subscription) C() <-chan string {
	return s.ch
}

// Close stops delivery and closes the channel. Idempotent.
func (s *Subscription) Close() {
	p := s.pub

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.subs[s]; !ok {
		return
	}

	delete(p.subs, s)
	close(s.ch)
}

// push delivers line, dropping the oldest buffered line when full. The
// publisher lock is held, so nothing else sends on ch.
func (s *Subscription) push(line string) {
	select {
	case s.ch <- line:
		return
	default:
	}

	select {
	case <-s.ch:
	default:
	}

	s.ch <- line
}
