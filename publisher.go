package palette

import (
	"fmt"
	"sync"
	"time"
)

// Publisher fans out committed state transitions to an ordered list of
// subscribers. Subscribers added or removed during an in-progress Notify may
// or may not be included in that same pass; cross-pass consistency only.
type Publisher struct {
	mu          sync.Mutex
	getState    func() State
	logger      NotifyLogger
	subscribers []*Subscriber
}

// NewPublisher constructs a Publisher bound to a live state accessor.
func NewPublisher(getState func() State, logger NotifyLogger) *Publisher {
	if logger == nil {
		logger = noopNotifyLogger{}
	}
	return &Publisher{
		getState: getState,
		logger:   logger,
	}
}

// Subscribe appends a subscriber for the selector/callback pair and returns
// it so the caller can later unsubscribe by identity.
func (p *Publisher) Subscribe(selector Selector, onChange func(any)) *Subscriber {
	sub := &Subscriber{
		selector: selector,
		onChange: onChange,
		getState: p.getState,
		logger:   p.logger,
		last:     uninitialized{},
	}
	p.mu.Lock()
	p.subscribers = append(p.subscribers, sub)
	p.mu.Unlock()
	return sub
}

// Unsubscribe removes sub by identity. It is a no-op when sub is absent or
// the list is empty; repeated calls are safe.
func (p *Publisher) Unsubscribe(sub *Subscriber) {
	if sub == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, candidate := range p.subscribers {
		if candidate == sub {
			p.subscribers = append(p.subscribers[:i], p.subscribers[i+1:]...)
			return
		}
	}
}

// Notify collects every subscriber in registration order. It must run exactly
// once per committed transition, after the snapshot is visible through the
// state accessor.
func (p *Publisher) Notify() {
	p.mu.Lock()
	subs := make([]*Subscriber, len(p.subscribers))
	copy(subs, p.subscribers)
	p.mu.Unlock()

	for _, sub := range subs {
		sub.collect()
	}
}

// Subscriber pairs a selector with a callback and remembers the last derived
// value so the callback only fires on structural change.
type Subscriber struct {
	selector Selector
	onChange func(any)
	getState func() State
	logger   NotifyLogger
	last     any
}

// collect recomputes the derived value and invokes the callback when it
// differs from the last observed one. Selector errors and callback panics are
// logged and contained; sibling subscribers are unaffected.
func (s *Subscriber) collect() {
	start := time.Now()
	var err error
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("palette: subscriber panic: %v", recovered)
		}
		if err != nil {
			s.logger.LogNotify(NotifyLogEvent{
				Selector: selectorLabel(s.selector),
				Duration: time.Since(start),
				Err:      err,
			})
		}
	}()

	if s.selector == nil {
		return
	}
	var next any
	next, err = s.selector.Select(s.getState())
	if err != nil {
		return
	}
	if deepEqual(next, s.last) {
		return
	}
	s.last = next
	if s.onChange != nil {
		s.onChange(next)
	}
}
