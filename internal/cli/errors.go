package cli

import "fmt"

type invalidValueError struct {
	name     string
	value    string
	expected string
}

func (e invalidValueError) Error() string {
	return fmt.Sprintf("invalid %s: %q (expected %s)", e.name, e.value, e.expected)
}

func invalidValue(name, value, expected string) error {
	return invalidValueError{name: name, value: value, expected: expected}
}
