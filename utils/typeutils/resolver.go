package typeutils

import (
	"sort"

	"github.com/lakesync/lakesync/types"
)

// Fields maps column names to their resolved data types across a batch.
type Fields map[string]types.DataType

// Resolve infers a column type for every key seen across the given objects.
// Conflicting occurrences widen: integer+number -> number, anything else -> string;
// nulls defer to whatever non-null type shows up.
func Resolve(objects ...types.Record) Fields {
	fields := Fields{}

	for _, object := range objects {
		for k, v := range object {
			detected := TypeFromValue(v)
			existing, found := fields[k]
			if !found {
				fields[k] = detected
				continue
			}
			fields[k] = merge(existing, detected)
		}
	}

	// columns that were null in every record still need a physical type
	for k, t := range fields {
		if t == types.NULL || t == types.UNKNOWN {
			fields[k] = types.STRING
		}
	}

	return fields
}

func merge(a, b types.DataType) types.DataType {
	if a == b {
		return a
	}
	if a == types.NULL || a == types.UNKNOWN {
		return b
	}
	if b == types.NULL || b == types.UNKNOWN {
		return a
	}
	if (a == types.INT64 && b == types.FLOAT64) || (a == types.FLOAT64 && b == types.INT64) {
		return types.FLOAT64
	}
	return types.STRING
}

// SortedKeys returns the column names in deterministic order.
func (f Fields) SortedKeys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
