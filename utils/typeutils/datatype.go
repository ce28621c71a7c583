package typeutils

import (
	"reflect"
	"time"

	"github.com/goccy/go-json"

	"github.com/lakesync/lakesync/types"
)

func TypeFromValue(v any) types.DataType {
	if v == nil {
		return types.NULL
	}

	switch val := v.(type) {
	case bool:
		return types.BOOL
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return types.INT64
	case float32, float64:
		return types.FLOAT64
	case string:
		return types.STRING
	case []byte:
		return types.STRING
	case time.Time:
		return types.TIMESTAMP
	case []any:
		return types.ARRAY
	case map[string]any:
		return types.OBJECT
	case json.Number:
		if _, err := val.Int64(); err == nil {
			return types.INT64
		}
		return types.FLOAT64
	}

	return typeFromValueReflect(v)
}

// typeFromValueReflect handles pointers and named types
func typeFromValueReflect(v any) types.DataType {
	valType := reflect.TypeOf(v)
	if valType == nil {
		return types.NULL
	}

	if valType.Kind() == reflect.Pointer {
		val := reflect.ValueOf(v)
		if val.IsNil() {
			return types.NULL
		}
		return TypeFromValue(val.Elem().Interface())
	}

	switch valType.Kind() {
	case reflect.Bool:
		return types.BOOL
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return types.INT64
	case reflect.Float32, reflect.Float64:
		return types.FLOAT64
	case reflect.String:
		return types.STRING
	case reflect.Slice, reflect.Array:
		return types.ARRAY
	case reflect.Map, reflect.Struct:
		return types.OBJECT
	default:
		return types.UNKNOWN
	}
}
