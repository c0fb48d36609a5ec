package dom

import (
	"fmt"

	"github.com/pkg/errors"
)

// AssertionError is the panic value raised when an engine invariant is
// broken by the caller. It is never recovered by listener invocation.
type AssertionError struct {
	msg string
}

func (e *AssertionError) Error() string {
	return "dom: assertion failed: " + e.msg
}

func invariant(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(&AssertionError{msg: fmt.Sprintf(format, args...)})
	}
}

type ExceptionName string

// https://webidl.spec.whatwg.org/#idl-DOMException-error-names
const (
	HierarchyRequestError ExceptionName = "HierarchyRequestError"
	NotFoundError         ExceptionName = "NotFoundError"
	InvalidCharacterError ExceptionName = "InvalidCharacterError"
	NamespaceError        ExceptionName = "NamespaceError"
)

// https://webidl.spec.whatwg.org/#idl-DOMException
type DOMException struct {
	Name    ExceptionName
	Message string
}

func (e *DOMException) Error() string {
	if e.Message == "" {
		return string(e.Name)
	}
	return string(e.Name) + ": " + e.Message
}

func newDOMException(name ExceptionName, format string, args ...interface{}) error {
	return errors.WithStack(&DOMException{Name: name, Message: fmt.Sprintf(format, args...)})
}

// IsDOMException reports whether the root cause of err is a DOMException
// with the given name.
func IsDOMException(err error, name ExceptionName) bool {
	if err == nil {
		return false
	}
	e, ok := errors.Cause(err).(*DOMException)
	return ok && e.Name == name
}
