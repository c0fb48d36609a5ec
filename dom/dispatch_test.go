package dom

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type trace []string

func (tr *trace) handler(label string, also ...func(e *Event)) EventHandler {
	return func(e *Event) {
		*tr = append(*tr, label)
		for _, f := range also {
			f(e)
		}
	}
}

// buildTree returns #document > html > body > div.
func buildTree(t *testing.T) (doc, html, body, div *Node) {
	t.Helper()
	doc, err := NewDOMImplementation().CreateHTMLDocument(nil)
	require.NoError(t, err)
	div, err = doc.CreateElement("div")
	require.NoError(t, err)
	require.NoError(t, doc.Body().AppendChild(div))
	return doc, doc.DocumentElement(), doc.Body(), div
}

func quietDispatcher() *Dispatcher {
	return NewDispatcher(WithReporter(discardReporter{}))
}

var (
	capture = AddEventListenerOptions{Capture: true}
	bubble  = AddEventListenerOptions{}
)

func TestDispatchWithoutAncestorsOrListeners(t *testing.T) {
	d := quietDispatcher()

	for name, target := range map[string]EventTarget{
		"standalone target": NewEventTarget(),
		"detached node":     newElementNode(nil, HTMLNamespace, "", "div"),
	} {
		t.Run(name, func(t *testing.T) {
			e := NewEvent("ping", EventInit{Bubbles: true, Cancelable: true})
			assert.True(t, d.Dispatch(target, nil, e))
			assert.Equal(t, PhaseNone, e.EventPhase())
			assert.Nil(t, e.CurrentTarget())
			assert.False(t, e.Dispatching())
			assert.Equal(t, target, e.Target())
		})
	}
}

func TestDispatchCapturingListenerPreventsDefault(t *testing.T) {
	doc, err := NewDOMImplementation().CreateHTMLDocument(nil)
	require.NoError(t, err)
	a, err := doc.CreateElement("section")
	require.NoError(t, err)
	target, err := doc.CreateElement("p")
	require.NoError(t, err)
	require.NoError(t, a.AppendChild(target))

	var (
		seenCurrent EventTarget
		seenPhase   EventPhase
	)
	a.AddEventListener("submit", EventHandler(func(e *Event) {
		seenCurrent = e.CurrentTarget()
		seenPhase = e.EventPhase()
		e.PreventDefault()
	}), capture)

	e := NewEvent("submit", EventInit{Bubbles: true, Cancelable: true})
	assert.False(t, quietDispatcher().Dispatch(target, nil, e))
	assert.Same(t, a, seenCurrent)
	assert.Equal(t, PhaseCapturing, seenPhase)
	assert.True(t, e.DefaultPrevented())
	assert.Equal(t, PhaseNone, e.EventPhase())
}

func TestDispatchNonBubblingEventSkipsBubbleListeners(t *testing.T) {
	_, html, body, div := buildTree(t)
	var tr trace
	html.AddEventListener("focus", tr.handler("html-capture"), capture)
	body.AddEventListener("focus", tr.handler("body-bubble"), bubble)
	div.AddEventListener("focus", tr.handler("div"), bubble)

	assert.True(t, quietDispatcher().Dispatch(div, nil, NewEvent("focus", EventInit{})))
	assert.Equal(t, trace{"html-capture", "div"}, tr)
}

func TestDispatchStopImmediatePropagationAtTarget(t *testing.T) {
	_, _, body, div := buildTree(t)
	var tr trace
	div.AddEventListener("click", tr.handler("L1", (*Event).StopImmediatePropagation), bubble)
	div.AddEventListener("click", tr.handler("L2"), bubble)
	body.AddEventListener("click", tr.handler("body-bubble"), bubble)

	e := NewEvent("click", EventInit{Bubbles: true})
	assert.True(t, quietDispatcher().Dispatch(div, nil, e))
	assert.Equal(t, trace{"L1"}, tr)
	assert.True(t, e.PropagationStopped())
}

func TestDispatchStopPropagationDuringBubbling(t *testing.T) {
	_, html, body, div := buildTree(t)
	var tr trace
	body.AddEventListener("click", tr.handler("A", (*Event).StopPropagation), bubble)
	body.AddEventListener("click", tr.handler("A2"), bubble)
	html.AddEventListener("click", tr.handler("B"), bubble)

	e := NewEvent("click", EventInit{Bubbles: true, Cancelable: true})
	assert.True(t, quietDispatcher().Dispatch(div, nil, e))
	assert.Equal(t, trace{"A", "A2"}, tr)

	div.AddEventListener("click", EventHandler((*Event).PreventDefault), bubble)
	tr = nil
	assert.False(t, quietDispatcher().Dispatch(div, nil, NewEvent("click", EventInit{Bubbles: true, Cancelable: true})))
	assert.Equal(t, trace{"A", "A2"}, tr)
}

func TestDispatchPhaseOrder(t *testing.T) {
	doc, html, body, div := buildTree(t)
	var tr trace
	for _, n := range []struct {
		name string
		node *Node
	}{{"doc", doc}, {"html", html}, {"body", body}} {
		n.node.AddEventListener("click", tr.handler(n.name+"-capture"), capture)
		n.node.AddEventListener("click", tr.handler(n.name+"-bubble"), bubble)
	}
	div.AddEventListener("click", tr.handler("div-bubble"), bubble)
	div.AddEventListener("click", tr.handler("div-capture"), capture)

	assert.True(t, quietDispatcher().Dispatch(div, nil, NewEvent("click", EventInit{Bubbles: true})))
	assert.Equal(t, trace{
		"doc-capture", "html-capture", "body-capture",
		"div-bubble", "div-capture",
		"body-bubble", "html-bubble", "doc-bubble",
	}, tr)
}

func TestDispatchObservedStatePerPhase(t *testing.T) {
	_, html, _, div := buildTree(t)
	type seen struct {
		phase   EventPhase
		current EventTarget
	}
	var got []seen
	record := EventHandler(func(e *Event) {
		assert.True(t, e.Dispatching())
		assert.Same(t, div, e.Target())
		got = append(got, seen{e.EventPhase(), e.CurrentTarget()})
	})
	html.AddEventListener("input", record, capture)
	div.AddEventListener("input", record, bubble)
	html.AddEventListener("input", record, bubble)

	quietDispatcher().Dispatch(div, nil, NewEvent("input", EventInit{Bubbles: true}))
	assert.Equal(t, []seen{
		{PhaseCapturing, html},
		{PhaseAtTarget, div},
		{PhaseBubbling, html},
	}, got)
}

func TestDispatchStopPropagationDuringCapture(t *testing.T) {
	tests := []struct {
		name     string
		stop     func(e *Event)
		expected trace
	}{
		{"stopPropagation", (*Event).StopPropagation, trace{"html-1", "html-2"}},
		{"stopImmediatePropagation", (*Event).StopImmediatePropagation, trace{"html-1"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, html, body, div := buildTree(t)
			var tr trace
			html.AddEventListener("click", tr.handler("html-1", test.stop), capture)
			html.AddEventListener("click", tr.handler("html-2"), capture)
			body.AddEventListener("click", tr.handler("body-capture"), capture)
			div.AddEventListener("click", tr.handler("div"), bubble)
			body.AddEventListener("click", tr.handler("body-bubble"), bubble)

			assert.True(t, quietDispatcher().Dispatch(div, nil, NewEvent("click", EventInit{Bubbles: true})))
			assert.Equal(t, test.expected, tr)
		})
	}
}

func TestDispatchReturnValue(t *testing.T) {
	tests := []struct {
		name       string
		cancelable bool
		passive    bool
		expected   bool
	}{
		{"cancelable", true, false, false},
		{"not cancelable", false, false, true},
		{"passive listener", true, true, true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, _, body, div := buildTree(t)
			body.AddEventListener("wheel", EventHandler((*Event).PreventDefault),
				AddEventListenerOptions{Passive: test.passive})

			e := NewEvent("wheel", EventInit{Bubbles: true, Cancelable: test.cancelable})
			assert.Equal(t, test.expected, quietDispatcher().Dispatch(div, nil, e))
			assert.Equal(t, !test.expected, e.DefaultPrevented())
			assert.Equal(t, test.expected, e.ReturnValue())
		})
	}
}

func TestDispatchSameEventReentrantPanics(t *testing.T) {
	_, _, body, div := buildTree(t)
	d := quietDispatcher()
	e := NewEvent("click", EventInit{Bubbles: true})
	div.AddEventListener("click", EventHandler(func(e *Event) {
		d.Dispatch(body, nil, e)
	}), bubble)

	assert.PanicsWithError(t, `dom: assertion failed: event "click" is already being dispatched`, func() {
		d.Dispatch(div, nil, e)
	})
	assert.False(t, e.Dispatching())
	assert.Equal(t, PhaseNone, e.EventPhase())
	assert.Nil(t, e.CurrentTarget())
}

func TestDispatchAlreadyDispatchingPanics(t *testing.T) {
	e := NewEvent("click", EventInit{})
	e.dispatching = true
	assert.Panics(t, func() {
		quietDispatcher().Dispatch(NewEventTarget(), nil, e)
	})
}

func TestDispatchNilTargetPanics(t *testing.T) {
	for name, target := range map[string]EventTarget{
		"nil interface": nil,
		"nil node":      (*Node)(nil),
		"nil registry":  (*EventListeners)(nil),
	} {
		t.Run(name, func(t *testing.T) {
			e := NewEvent("click", EventInit{Bubbles: true})
			assert.PanicsWithError(t, "dom: assertion failed: dispatch without a target", func() {
				quietDispatcher().Dispatch(target, nil, e)
			})
			assert.False(t, e.Dispatching())
		})
	}
}

func TestDispatchNilPseudoTargetIsIgnored(t *testing.T) {
	_, _, _, div := buildTree(t)
	e := NewEvent("click", EventInit{})
	quietDispatcher().Dispatch(div, (*Node)(nil), e)
	assert.Same(t, div, e.Target())
}

func TestNilNodeHasNoAncestors(t *testing.T) {
	var n *Node
	assert.Empty(t, n.Ancestors())
}

func TestDispatchDifferentEventReentrant(t *testing.T) {
	_, _, body, div := buildTree(t)
	var tr trace
	d := quietDispatcher()
	body.AddEventListener("focus", tr.handler("body-focus", (*Event).PreventDefault), bubble)
	div.AddEventListener("click", tr.handler("div-click", func(*Event) {
		inner := NewEvent("focus", EventInit{Cancelable: true})
		assert.False(t, d.Dispatch(body, nil, inner))
	}), bubble)
	body.AddEventListener("click", tr.handler("body-click"), bubble)

	assert.True(t, d.Dispatch(div, nil, NewEvent("click", EventInit{Bubbles: true})))
	assert.Equal(t, trace{"div-click", "body-focus", "body-click"}, tr)
}

type retainedTarget struct {
	EventListeners
	name   string
	parent *retainedTarget
	log    *[]string
}

func (r *retainedTarget) Ancestors() []EventTarget {
	var out []EventTarget
	for p := r.parent; p != nil; p = p.parent {
		out = append(out, p)
	}
	return out
}

func (r *retainedTarget) Retain()  { *r.log = append(*r.log, "retain "+r.name) }
func (r *retainedTarget) Release() { *r.log = append(*r.log, "release "+r.name) }

func retainedChain(log *[]string, names ...string) []*retainedTarget {
	var chain []*retainedTarget
	var parent *retainedTarget
	for _, name := range names {
		rt := &retainedTarget{name: name, parent: parent, log: log}
		chain = append(chain, rt)
		parent = rt
	}
	return chain
}

func TestDispatchReleasesRootsInReverseOrder(t *testing.T) {
	var log []string
	chain := retainedChain(&log, "root", "mid", "near", "leaf")
	leaf := chain[3]

	var duringDispatch []string
	chain[0].AddEventListener("tap", EventHandler(func(*Event) {
		duringDispatch = append([]string(nil), log...)
	}), capture)

	assert.True(t, quietDispatcher().Dispatch(leaf, nil, NewEvent("tap", EventInit{Bubbles: true})))
	assert.Equal(t, []string{"retain near", "retain mid", "retain root"}, duringDispatch)
	assert.Equal(t, []string{
		"retain near", "retain mid", "retain root",
		"release root", "release mid", "release near",
	}, log)
}

func TestDispatchReleasesRootsWhenPanicking(t *testing.T) {
	var log []string
	chain := retainedChain(&log, "root", "leaf")
	e := NewEvent("tap", EventInit{})
	d := quietDispatcher()
	chain[1].AddEventListener("tap", EventHandler(func(e *Event) {
		d.Dispatch(chain[0], nil, e)
	}), bubble)

	assert.Panics(t, func() { d.Dispatch(chain[1], nil, e) })
	assert.Equal(t, []string{"retain root", "release root"}, log)
}

func TestDispatchPseudoTarget(t *testing.T) {
	_, _, body, div := buildTree(t)
	pseudo := NewEventTarget()
	var tr trace
	pseudo.AddEventListener("load", tr.handler("pseudo"), bubble)
	body.AddEventListener("load", tr.handler("body", func(e *Event) {
		assert.Same(t, pseudo, e.Target())
		assert.Same(t, body, e.CurrentTarget())
	}), capture)
	div.AddEventListener("load", tr.handler("div", func(e *Event) {
		assert.Same(t, pseudo, e.Target())
		assert.Same(t, div, e.CurrentTarget())
	}), bubble)

	e := NewEvent("load", EventInit{})
	assert.True(t, quietDispatcher().Dispatch(div, pseudo, e))
	assert.Equal(t, trace{"body", "div"}, tr)
	assert.Same(t, pseudo, e.Target())
}

func TestDispatchReportsListenerErrors(t *testing.T) {
	_, _, _, div := buildTree(t)
	logger, hook := logtest.NewNullLogger()
	d := NewDispatcher(WithLogger(logger))
	var tr trace

	div.AddEventListener("click", ListenerFunc(func(*Event) error {
		return errors.New("boom")
	}), bubble)
	div.AddEventListener("click", EventHandler(func(*Event) {
		panic("kaboom")
	}), bubble)
	div.AddEventListener("click", tr.handler("after"), bubble)

	assert.True(t, d.Dispatch(div, nil, NewEvent("click", EventInit{})))
	assert.Equal(t, trace{"after"}, tr)
	require.Len(t, hook.Entries, 2)
	for i, msg := range []string{"boom", "kaboom"} {
		entry := hook.Entries[i]
		assert.Equal(t, logrus.ErrorLevel, entry.Level)
		assert.Equal(t, PhaseAtTarget, entry.Data["phase"])
		assert.Contains(t, entry.Data[logrus.ErrorKey].(error).Error(), msg)
	}
}

func TestDispatchWithConfig(t *testing.T) {
	_, _, _, div := buildTree(t)
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	cfg := Config{LogLevel: "debug", TraceDispatch: true}
	d := NewDispatcher(WithLogger(logger), WithConfig(cfg))

	div.AddEventListener("click", ListenerFunc(func(*Event) error {
		return errors.New("silenced")
	}), bubble)
	d.Dispatch(div, nil, NewEvent("click", EventInit{Bubbles: true}))

	var phases []interface{}
	for _, entry := range hook.Entries {
		assert.Equal(t, logrus.DebugLevel, entry.Level)
		phases = append(phases, entry.Data["phase"])
	}
	assert.Equal(t, []interface{}{PhaseCapturing, PhaseAtTarget, PhaseBubbling}, phases)
}

type recordingReporter struct {
	errs []error
}

func (r *recordingReporter) ReportError(_ *Event, err error) {
	r.errs = append(r.errs, err)
}

func TestWithConfigKeepsExplicitOptions(t *testing.T) {
	cfg := Config{LogLevel: "info", TraceDispatch: true}
	for name, order := range map[string]func(r ErrorReporter) []Option{
		"config first": func(r ErrorReporter) []Option {
			return []Option{WithConfig(cfg), WithReporter(r), WithTrace(false)}
		},
		"config last": func(r ErrorReporter) []Option {
			return []Option{WithReporter(r), WithTrace(false), WithConfig(cfg)}
		},
	} {
		t.Run(name, func(t *testing.T) {
			_, _, _, div := buildTree(t)
			r := &recordingReporter{}
			d := NewDispatcher(order(r)...)
			require.NotNil(t, d.trace)
			assert.False(t, *d.trace)

			div.AddEventListener("click", ListenerFunc(func(*Event) error {
				return errors.New("kept")
			}), bubble)
			d.Dispatch(div, nil, NewEvent("click", EventInit{}))
			require.Len(t, r.errs, 1)
			assert.EqualError(t, r.errs[0], "kept")
		})
	}
}

func TestWithConfigLogLevel(t *testing.T) {
	d := NewDispatcher(WithConfig(Config{LogLevel: "warn", ReportListenerErrors: true}))
	log, ok := d.log.(*logrus.Logger)
	require.True(t, ok)
	assert.Equal(t, logrus.WarnLevel, log.GetLevel())
	assert.NotSame(t, logrus.StandardLogger(), log)

	explicit, _ := logtest.NewNullLogger()
	d = NewDispatcher(WithConfig(Config{LogLevel: "warn"}), WithLogger(explicit))
	assert.Same(t, explicit, d.log)
}

func TestDispatchChainIsSnapshot(t *testing.T) {
	_, html, body, div := buildTree(t)
	var tr trace
	body.AddEventListener("click", EventHandler(func(*Event) {
		require.NoError(t, body.RemoveChild(div))
	}), capture)
	div.AddEventListener("click", tr.handler("div"), bubble)
	body.AddEventListener("click", tr.handler("body"), bubble)
	html.AddEventListener("click", tr.handler("html"), bubble)

	quietDispatcher().Dispatch(div, nil, NewEvent("click", EventInit{Bubbles: true}))
	assert.Equal(t, trace{"div", "body", "html"}, tr)
	assert.Nil(t, div.ParentNode)
}

func TestDispatchListenerListMutation(t *testing.T) {
	_, html, body, div := buildTree(t)
	var tr trace
	added := false

	html.AddEventListener("click", tr.handler("html-capture", func(*Event) {
		body.AddEventListener("click", tr.handler("late-body"), bubble)
	}), capture)

	var second *Registration
	div.AddEventListener("click", tr.handler("first", func(*Event) {
		second.Remove()
		if !added {
			added = true
			div.AddEventListener("click", tr.handler("added-at-target"), bubble)
		}
	}), bubble)
	second = div.AddEventListener("click", tr.handler("second"), bubble)

	quietDispatcher().Dispatch(div, nil, NewEvent("click", EventInit{Bubbles: true}))
	assert.Equal(t, trace{"html-capture", "first", "late-body"}, tr)
	assert.True(t, second.Removed())

	tr = nil
	quietDispatcher().Dispatch(div, nil, NewEvent("click", EventInit{Bubbles: false}))
	assert.Equal(t, trace{"html-capture", "first", "added-at-target"}, tr)
}

func TestDispatchOnceListener(t *testing.T) {
	_, _, _, div := buildTree(t)
	var tr trace
	div.AddEventListener("click", tr.handler("once"), AddEventListenerOptions{Once: true})

	quietDispatcher().Dispatch(div, nil, NewEvent("click", EventInit{}))
	quietDispatcher().Dispatch(div, nil, NewEvent("click", EventInit{}))
	assert.Equal(t, trace{"once"}, tr)
	assert.False(t, div.HasListeners("click"))
}

func TestDispatchEventFromNode(t *testing.T) {
	_, _, body, div := buildTree(t)
	var tr trace
	body.AddEventListener("change", tr.handler("body"), bubble)

	e := NewEvent("change", EventInit{Bubbles: true})
	assert.True(t, div.DispatchEvent(e))
	assert.Equal(t, trace{"body"}, tr)

	e.InitEvent("change", false, false)
	tr = nil
	assert.True(t, div.DispatchEvent(e))
	assert.Empty(t, tr)
}
