package config

import "fmt"

// ErrInvalidArgument reports one run parameter that failed validation.
type ErrInvalidArgument struct {
	Name    string      // parameter key, e.g. "max_scale"
	Value   interface{} // the value that was provided
	Message string      // why it is invalid (optional)
}

func (err *ErrInvalidArgument) Error() string {
	if err.Message == "" {
		return fmt.Sprintf("value %v is invalid for %q", err.Value, err.Name)
	}
	return fmt.Sprintf("value %v is invalid for %q; %s", err.Value, err.Name, err.Message)
}
