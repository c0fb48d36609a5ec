// Package script hosts JavaScript event listeners on a goja runtime.
package script

import (
	"github.com/dop251/goja"
	"github.com/pkg/errors"

	"github.com/llj1985/servo/dom"
)

// Listener is a JavaScript function registered as an event listener.
// Exceptions thrown by the function are returned from HandleEvent.
type Listener struct {
	vm *goja.Runtime
	fn goja.Callable
}

func NewListener(vm *goja.Runtime, fn goja.Callable) *Listener {
	return &Listener{vm: vm, fn: fn}
}

// Compile evaluates src, which must produce a function, and wraps the
// result as a listener.
func Compile(vm *goja.Runtime, src string) (*Listener, error) {
	v, err := vm.RunString(src)
	if err != nil {
		return nil, errors.Wrap(err, "compile listener")
	}
	fn, ok := goja.AssertFunction(v)
	if !ok {
		return nil, errors.Errorf("compile listener: %s is not a function", v.String())
	}
	return NewListener(vm, fn), nil
}

func (l *Listener) HandleEvent(e *dom.Event) error {
	if _, err := l.fn(goja.Undefined(), l.wrapEvent(e)); err != nil {
		return errors.Wrapf(err, "script listener for %q", e.Type())
	}
	return nil
}

// wrapEvent exposes the event to script. The flag accessors read the live
// record so a listener sees changes made by earlier listeners.
func (l *Listener) wrapEvent(e *dom.Event) *goja.Object {
	obj := l.vm.NewObject()
	obj.Set("type", string(e.Type()))
	obj.Set("bubbles", e.Bubbles())
	obj.Set("cancelable", e.Cancelable())
	obj.Set("isTrusted", e.IsTrusted())
	obj.Set("timeStamp", float64(e.TimeStamp()))
	obj.Set("eventPhase", int(e.EventPhase()))
	obj.Set("target", l.wrapTarget(e.Target()))
	obj.Set("currentTarget", l.wrapTarget(e.CurrentTarget()))

	obj.DefineAccessorProperty("defaultPrevented",
		l.vm.ToValue(func() bool { return e.DefaultPrevented() }), nil,
		goja.FLAG_TRUE, goja.FLAG_TRUE)
	obj.DefineAccessorProperty("cancelBubble",
		l.vm.ToValue(func() bool { return e.CancelBubble() }),
		l.vm.ToValue(func(v bool) { e.SetCancelBubble(v) }),
		goja.FLAG_TRUE, goja.FLAG_TRUE)

	obj.Set("stopPropagation", func() { e.StopPropagation() })
	obj.Set("stopImmediatePropagation", func() { e.StopImmediatePropagation() })
	obj.Set("preventDefault", func() { e.PreventDefault() })
	return obj
}

func (l *Listener) wrapTarget(t dom.EventTarget) goja.Value {
	n, ok := t.(*dom.Node)
	if !ok || n == nil {
		return goja.Null()
	}
	obj := l.vm.NewObject()
	obj.Set("nodeName", n.NodeName)
	obj.Set("nodeType", int(n.NodeType))
	return obj
}
