package dom

import "github.com/llj1985/servo/webidl"

type EventPhase uint16

const (
	PhaseNone EventPhase = iota
	PhaseCapturing
	PhaseAtTarget
	PhaseBubbling
)

func (p EventPhase) String() string {
	switch p {
	case PhaseCapturing:
		return "capturing"
	case PhaseAtTarget:
		return "at-target"
	case PhaseBubbling:
		return "bubbling"
	default:
		return "none"
	}
}

// https://dom.spec.whatwg.org/#dictdef-eventinit
type EventInit struct {
	Bubbles    bool
	Cancelable bool
}

// https://dom.spec.whatwg.org/#interface-event
type Event struct {
	eventType     webidl.DOMString
	target        EventTarget
	currentTarget EventTarget
	eventPhase    EventPhase
	bubbles       bool
	cancelable    bool
	isTrusted     bool
	timeStamp     webidl.DOMHighResTimeStamp

	stopPropagation   bool
	stopImmediate     bool
	canceled          bool
	dispatching       bool
	inPassiveListener bool
}

func NewEvent(eventType webidl.DOMString, init EventInit) *Event {
	return &Event{
		eventType:  eventType,
		bubbles:    init.Bubbles,
		cancelable: init.Cancelable,
		timeStamp:  webidl.Now(),
	}
}

// NewTrustedEvent creates an event that reports IsTrusted, as events fired
// by the engine itself do.
func NewTrustedEvent(eventType webidl.DOMString, init EventInit) *Event {
	e := NewEvent(eventType, init)
	e.isTrusted = true
	return e
}

func (e *Event) Type() webidl.DOMString                { return e.eventType }
func (e *Event) Target() EventTarget                   { return e.target }
func (e *Event) CurrentTarget() EventTarget            { return e.currentTarget }
func (e *Event) EventPhase() EventPhase                { return e.eventPhase }
func (e *Event) Bubbles() bool                         { return e.bubbles }
func (e *Event) Cancelable() bool                      { return e.cancelable }
func (e *Event) DefaultPrevented() bool                { return e.canceled }
func (e *Event) IsTrusted() bool                       { return e.isTrusted }
func (e *Event) TimeStamp() webidl.DOMHighResTimeStamp { return e.timeStamp }

// Dispatching reports whether the event is currently inside a dispatch call.
func (e *Event) Dispatching() bool { return e.dispatching }

// PropagationStopped reports whether a listener has stopped propagation,
// including through StopImmediatePropagation.
func (e *Event) PropagationStopped() bool { return e.stopPropagation }

func (e *Event) StopPropagation() {
	e.stopPropagation = true
}

func (e *Event) StopImmediatePropagation() {
	e.stopPropagation = true
	e.stopImmediate = true
}

// https://dom.spec.whatwg.org/#set-the-canceled-flag
func (e *Event) PreventDefault() {
	if e.cancelable && !e.inPassiveListener {
		e.canceled = true
	}
}

// https://dom.spec.whatwg.org/#dom-event-cancelbubble
func (e *Event) CancelBubble() bool { return e.stopPropagation }

func (e *Event) SetCancelBubble(v bool) {
	if v {
		e.stopPropagation = true
	}
}

// https://dom.spec.whatwg.org/#dom-event-returnvalue
func (e *Event) ReturnValue() bool { return !e.canceled }

func (e *Event) SetReturnValue(v bool) {
	if !v {
		e.PreventDefault()
	}
}

// https://dom.spec.whatwg.org/#dom-event-initevent
func (e *Event) InitEvent(eventType webidl.DOMString, bubbles, cancelable bool) {
	if e.dispatching {
		return
	}
	e.eventType = eventType
	e.bubbles = bubbles
	e.cancelable = cancelable
	e.target = nil
	e.stopPropagation = false
	e.stopImmediate = false
	e.canceled = false
	e.isTrusted = false
}
