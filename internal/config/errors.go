package config

import "fmt"

// Error reports a missing or invalid configuration field. It is fatal and
// raised before any provider call is made.
type Error struct {
	Field string
	Msg   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Msg)
}

func errRequired(field string) *Error {
	return &Error{Field: field, Msg: "required field is missing"}
}
