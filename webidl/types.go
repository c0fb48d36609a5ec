package webidl

import "time"

// https://heycam.github.io/webidl/#idl-DOMString
type DOMString string

// https://heycam.github.io/webidl/#idl-USVString
type USVString string

// https://w3c.github.io/hr-time/#dom-domhighrestimestamp
type DOMHighResTimeStamp float64

// Now returns the current time as milliseconds since the Unix epoch.
func Now() DOMHighResTimeStamp {
	return DOMHighResTimeStamp(time.Now().UnixNano()) / DOMHighResTimeStamp(time.Millisecond)
}
