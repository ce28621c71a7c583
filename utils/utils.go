package utils

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
)

// Ternary evaluates a condition and returns a or b.
func Ternary(cond bool, a, b any) any {
	if cond {
		return a
	}
	return b
}

// Unmarshal serializes and deserializes any from into any object.
// Used to convert between config representations without hand-written copies.
func Unmarshal(from, object any) error {
	reformatted := reformatInnerMaps(from)
	b, err := json.Marshal(reformatted)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, object)
}

// reformatInnerMaps converts map[any]any into map[string]any recursively so
// that goccy/go-json can marshal arbitrary decoded structures.
func reformatInnerMaps(valueI any) any {
	switch value := valueI.(type) {
	case []any:
		for i, subValue := range value {
			value[i] = reformatInnerMaps(subValue)
		}
		return value
	case map[any]any:
		newMap := make(map[string]any, len(value))
		for k, subValue := range value {
			newMap[k.(string)] = reformatInnerMaps(subValue)
		}
		return newMap
	case map[string]any:
		for k, subValue := range value {
			value[k] = reformatInnerMaps(subValue)
		}
		return value
	default:
		return valueI
	}
}

// ErrExecSequential executes a list of functions sequentially, accumulating
// errors if any occur.
func ErrExecSequential(functions ...func() error) error {
	var multErr error
	for _, one := range functions {
		if err := one(); err != nil {
			multErr = multierror.Append(multErr, err)
		}
	}
	return multErr
}

// ErrExecFormat formats the error returned from a function according to the
// provided format string.
func ErrExecFormat(format string, function func() error) func() error {
	return func() error {
		if err := function(); err != nil {
			return fmt.Errorf(format, err)
		}
		return nil
	}
}

func IsValidSubcommand(available []*cobra.Command, sub string) bool {
	for _, command := range available {
		if command.Use == sub {
			return true
		}
	}
	return false
}
