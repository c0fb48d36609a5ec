package dom

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// https://dom.spec.whatwg.org/#callbackdef-eventlistener
type EventListener interface {
	HandleEvent(e *Event) error
}

// ListenerFunc adapts a function that can fail into an EventListener.
type ListenerFunc func(e *Event) error

func (f ListenerFunc) HandleEvent(e *Event) error { return f(e) }

// https://html.spec.whatwg.org/#eventhandler
type EventHandler func(e *Event)

func (f EventHandler) HandleEvent(e *Event) error {
	f(e)
	return nil
}

// ErrorReporter receives errors returned or panicked by listeners. The
// dispatch continues after a report.
type ErrorReporter interface {
	ReportError(e *Event, err error)
}

type logReporter struct {
	log logrus.FieldLogger
}

func (r *logReporter) ReportError(e *Event, err error) {
	r.log.WithFields(logrus.Fields{
		"event": e.Type(),
		"phase": e.EventPhase(),
	}).WithError(err).Error("uncaught exception in event listener")
}

type discardReporter struct{}

func (discardReporter) ReportError(*Event, error) {}

// callListener runs one listener, turning a panic into an error. Assertion
// failures from nested dispatches keep unwinding.
func callListener(l EventListener, e *Event) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if ae, ok := r.(*AssertionError); ok {
			panic(ae)
		}
		if perr, ok := r.(error); ok {
			err = errors.Wrap(perr, "listener panicked")
			return
		}
		err = errors.Errorf("listener panicked: %v", r)
	}()
	return l.HandleEvent(e)
}
