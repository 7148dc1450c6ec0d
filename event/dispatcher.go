package event

import "strings"

// Matcher reports whether a subscription wants events for tag.
type Matcher func(tag string) bool

// Handler receives a dispatched payload.
type Handler[T any] func(evt T)

type subscription[T any] struct {
	id      string
	match   Matcher
	handler Handler[T]
	removed bool
}

// Dispatcher is a predicate-matched publish/subscribe registry.
//
// Dispatch fans out to every subscription whose matcher accepts the tag, in
// registration order. Handlers run synchronously and are not isolated from
// each other. The registry is single threaded; handlers may subscribe or
// unsubscribe while a dispatch is in flight.
type Dispatcher[T any] struct {
	subs []*subscription[T]
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher[T any]() *Dispatcher[T] {
	return &Dispatcher[T]{}
}

// Subscribe registers handler for every tag accepted by match. A nil match
// accepts only tags equal to id. Ids need not be unique.
func (d *Dispatcher[T]) Subscribe(id string, match Matcher, handler Handler[T]) {
	if d == nil {
		return
	}
	if match == nil {
		match = Exact(id)
	}
	d.subs = append(d.subs, &subscription[T]{id: id, match: match, handler: handler})
}

// Unsubscribe removes every subscription registered under id. Unknown ids are
// ignored.
func (d *Dispatcher[T]) Unsubscribe(id string) {
	if d == nil || len(d.subs) == 0 {
		return
	}
	kept := make([]*subscription[T], 0, len(d.subs))
	for _, s := range d.subs {
		if s.id == id {
			// an in-flight Dispatch still holds s in its snapshot
			s.removed = true
			continue
		}
		kept = append(kept, s)
	}
	d.subs = kept
}

// Dispatch invokes every matching handler with evt and returns how many ran.
// Subscriptions added during the call first fire on the next Dispatch;
// subscriptions removed during the call stop firing immediately.
func (d *Dispatcher[T]) Dispatch(tag string, evt T) int {
	if d == nil || len(d.subs) == 0 {
		return 0
	}
	snapshot := make([]*subscription[T], len(d.subs))
	copy(snapshot, d.subs)

	invoked := 0
	for _, s := range snapshot {
		if s.removed || s.handler == nil {
			continue
		}
		if !s.match(tag) {
			continue
		}
		s.handler(evt)
		invoked++
	}
	return invoked
}

// Len returns the number of live subscriptions.
func (d *Dispatcher[T]) Len() int {
	if d == nil {
		return 0
	}
	return len(d.subs)
}

// Has reports whether at least one subscription is registered under id.
func (d *Dispatcher[T]) Has(id string) bool {
	if d == nil {
		return false
	}
	for _, s := range d.subs {
		if s.id == id {
			return true
		}
	}
	return false
}

// Exact matches a single tag.
func Exact(tag string) Matcher {
	return func(t string) bool { return t == tag }
}

// Prefix matches tags starting with prefix, e.g. every "Checkpoint<n>".
func Prefix(prefix string) Matcher {
	return func(t string) bool { return strings.HasPrefix(t, prefix) }
}

// Contains matches tags containing sub anywhere.
func Contains(sub string) Matcher {
	return func(t string) bool { return strings.Contains(t, sub) }
}
