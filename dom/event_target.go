package dom

import (
	"reflect"

	"github.com/llj1985/servo/webidl"
)

// ListenerPhase is the affinity a listener was registered with.
type ListenerPhase uint8

const (
	Bubbling ListenerPhase = iota
	Capturing
)

// https://dom.spec.whatwg.org/#interface-eventtarget
type EventTarget interface {
	// ListenersFor returns the registrations for eventType with the given
	// affinity, in registration order.
	ListenersFor(eventType webidl.DOMString, phase ListenerPhase) []*Registration
	// ListenersAt returns every registration for eventType regardless of
	// affinity, in registration order.
	ListenersAt(eventType webidl.DOMString) []*Registration
}

// TreeParticipant is an EventTarget with a position in a node tree.
type TreeParticipant interface {
	EventTarget
	// Ancestors returns the structural ancestors, nearest parent first.
	Ancestors() []EventTarget
}

// https://dom.spec.whatwg.org/#dictdef-addeventlisteneroptions
type AddEventListenerOptions struct {
	Capture bool
	Once    bool
	Passive bool
}

// Registration is one entry of a target's listener list.
// https://dom.spec.whatwg.org/#concept-event-listener
type Registration struct {
	Listener EventListener
	Capture  bool
	Once     bool
	Passive  bool

	eventType webidl.DOMString
	owner     *EventListeners
	removed   bool
}

func (r *Registration) Phase() ListenerPhase {
	if r.Capture {
		return Capturing
	}
	return Bubbling
}

func (r *Registration) Removed() bool { return r.removed }

// Remove unregisters r from the target it was added to.
func (r *Registration) Remove() {
	if r.owner != nil {
		r.owner.remove(r)
	}
}

// EventListeners is the listener registry of an event target. The zero
// value is ready to use; embed it to make a type an EventTarget.
type EventListeners struct {
	handlers map[webidl.DOMString][]*Registration
}

// NewEventTarget returns a target that does not participate in any tree.
func NewEventTarget() *EventListeners {
	return &EventListeners{}
}

// https://dom.spec.whatwg.org/#dom-eventtarget-addeventlistener
func (t *EventListeners) AddEventListener(eventType webidl.DOMString, l EventListener, opts AddEventListenerOptions) *Registration {
	if l == nil {
		return nil
	}
	for _, r := range t.handlers[eventType] {
		if r.Capture == opts.Capture && sameListener(r.Listener, l) {
			return r
		}
	}
	if t.handlers == nil {
		t.handlers = make(map[webidl.DOMString][]*Registration)
	}

	r := &Registration{
		Listener:  l,
		Capture:   opts.Capture,
		Once:      opts.Once,
		Passive:   opts.Passive,
		eventType: eventType,
		owner:     t,
	}
	t.handlers[eventType] = append(t.handlers[eventType], r)
	return r
}

// https://dom.spec.whatwg.org/#dom-eventtarget-removeeventlistener
// Listeners whose dynamic type is not comparable, such as bare funcs, can
// only be removed through their Registration.
func (t *EventListeners) RemoveEventListener(eventType webidl.DOMString, l EventListener, capture bool) {
	for _, r := range t.handlers[eventType] {
		if r.Capture == capture && sameListener(r.Listener, l) {
			t.remove(r)
			return
		}
	}
}

func (t *EventListeners) HasListeners(eventType webidl.DOMString) bool {
	return len(t.handlers[eventType]) > 0
}

func (t *EventListeners) ListenersFor(eventType webidl.DOMString, phase ListenerPhase) []*Registration {
	var out []*Registration
	for _, r := range t.handlers[eventType] {
		if r.Phase() == phase {
			out = append(out, r)
		}
	}
	return out
}

func (t *EventListeners) ListenersAt(eventType webidl.DOMString) []*Registration {
	list := t.handlers[eventType]
	if len(list) == 0 {
		return nil
	}
	out := make([]*Registration, len(list))
	copy(out, list)
	return out
}

func (t *EventListeners) remove(r *Registration) {
	r.removed = true
	list := t.handlers[r.eventType]
	for i := range list {
		if list[i] == r {
			t.handlers[r.eventType] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(t.handlers[r.eventType]) == 0 {
		delete(t.handlers, r.eventType)
	}
}

func sameListener(a, b EventListener) bool {
	if a == nil || b == nil {
		return false
	}
	// Comparable inspects the dynamic value, so a struct whose interface
	// field holds a func is rejected here instead of panicking below.
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() || !va.Comparable() || !vb.Comparable() {
		return false
	}
	return a == b
}

// isNilTarget reports whether t is nil or a typed nil pointer.
func isNilTarget(t EventTarget) bool {
	if t == nil {
		return true
	}
	v := reflect.ValueOf(t)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}
