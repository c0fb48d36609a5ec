package dom

import "github.com/sirupsen/logrus"

// Dispatcher runs the event dispatch algorithm.
// https://dom.spec.whatwg.org/#concept-event-dispatch
type Dispatcher struct {
	log      logrus.FieldLogger
	reporter ErrorReporter
	trace    *bool
	cfg      *Config
}

type Option func(*Dispatcher)

func WithLogger(log logrus.FieldLogger) Option {
	return func(d *Dispatcher) {
		d.log = log
	}
}

// WithReporter replaces the sink for listener errors. The default sink logs
// them at error level.
func WithReporter(r ErrorReporter) Option {
	return func(d *Dispatcher) {
		d.reporter = r
	}
}

// WithTrace logs every phase transition at debug level.
func WithTrace(trace bool) Option {
	return func(d *Dispatcher) {
		d.trace = &trace
	}
}

// WithConfig supplies defaults for whatever the other options leave unset,
// regardless of the order options are given in. The configured log level
// applies only when no logger is passed with WithLogger.
func WithConfig(cfg Config) Option {
	return func(d *Dispatcher) {
		d.cfg = &cfg
	}
}

func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{}
	for _, opt := range opts {
		opt(d)
	}
	if d.cfg != nil {
		d.applyConfig(*d.cfg)
	}
	if d.log == nil {
		d.log = logrus.StandardLogger()
	}
	if d.reporter == nil {
		d.reporter = &logReporter{log: d.log}
	}
	return d
}

func (d *Dispatcher) applyConfig(cfg Config) {
	if d.trace == nil {
		trace := cfg.TraceDispatch
		d.trace = &trace
	}
	if d.reporter == nil && !cfg.ReportListenerErrors {
		d.reporter = discardReporter{}
	}
	if d.log == nil {
		log, err := cfg.NewLogger()
		if err != nil {
			logrus.WithError(err).Warn("ignoring configured log level")
			return
		}
		d.log = log
	}
}

var defaultDispatcher = NewDispatcher()

// DispatchEvent dispatches event at target with the default dispatcher.
func DispatchEvent(target, pseudoTarget EventTarget, event *Event) bool {
	return defaultDispatcher.Dispatch(target, pseudoTarget, event)
}

// Dispatch delivers event to the listeners of target and its ancestors and
// reports whether the default action should proceed. When pseudoTarget is
// non-nil the event is addressed to it while propagation still follows
// target's position in the tree.
func (d *Dispatcher) Dispatch(target, pseudoTarget EventTarget, event *Event) bool {
	invariant(!isNilTarget(target), "dispatch without a target")
	invariant(!event.dispatching, "event %q is already being dispatched", event.eventType)

	if !isNilTarget(pseudoTarget) {
		event.target = pseudoTarget
	} else {
		event.target = target
	}
	event.dispatching = true

	roots := NewRootCollection()
	defer func() {
		roots.Release()
		event.dispatching = false
		event.eventPhase = PhaseNone
		event.currentTarget = nil
		event.inPassiveListener = false
	}()

	var chain []*Root
	if node, ok := target.(TreeParticipant); ok {
		for _, ancestor := range node.Ancestors() {
			chain = append(chain, roots.Root(ancestor))
		}
	}

	event.eventPhase = PhaseCapturing
	d.tracePhase(event, len(chain))
	for i := len(chain) - 1; i >= 0; i-- {
		cur := chain[i].Target()
		if d.invokeAt(cur, event, cur.ListenersFor(event.eventType, Capturing)) {
			break
		}
	}

	if !event.stopPropagation {
		event.eventPhase = PhaseAtTarget
		d.tracePhase(event, len(chain))
		d.invokeAt(target, event, target.ListenersAt(event.eventType))
	}

	if event.bubbles && !event.stopPropagation {
		event.eventPhase = PhaseBubbling
		d.tracePhase(event, len(chain))
		for _, root := range chain {
			cur := root.Target()
			if d.invokeAt(cur, event, cur.ListenersFor(event.eventType, Bubbling)) {
				break
			}
		}
	}

	return !event.canceled
}

// invokeAt runs listeners with cur as the current target and reports
// whether propagation has been stopped.
func (d *Dispatcher) invokeAt(cur EventTarget, event *Event, listeners []*Registration) bool {
	event.currentTarget = cur
	for _, r := range listeners {
		if r.removed {
			continue
		}
		if r.Once {
			r.Remove()
		}
		d.invoke(r, event)
		if event.stopImmediate {
			break
		}
	}
	return event.stopPropagation
}

func (d *Dispatcher) invoke(r *Registration, event *Event) {
	event.inPassiveListener = r.Passive
	err := callListener(r.Listener, event)
	event.inPassiveListener = false
	if err != nil {
		d.reporter.ReportError(event, err)
	}
}

func (d *Dispatcher) tracePhase(event *Event, chainLen int) {
	if d.trace == nil || !*d.trace {
		return
	}
	d.log.WithFields(logrus.Fields{
		"event": event.eventType,
		"phase": event.eventPhase,
		"chain": chainLen,
	}).Debug("dispatch phase")
}
