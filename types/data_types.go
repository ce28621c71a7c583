package types

import (
	"fmt"

	"github.com/goccy/go-json"
)

type DataType string

const (
	NULL      DataType = "null"
	INT64     DataType = "integer"
	FLOAT64   DataType = "number"
	STRING    DataType = "string"
	BOOL      DataType = "boolean"
	OBJECT    DataType = "object"
	ARRAY     DataType = "array"
	UNKNOWN   DataType = "unknown"
	TIMESTAMP DataType = "timestamp"
)

type Record map[string]any

func (r Record) GetStringifiedJSONValue(key string) (string, error) {
	value := r[key]
	switch value.(type) {
	case struct{}, map[string]interface{}, []interface{}:
		s, err := json.Marshal(value)
		return string(s), err
	default:
		return fmt.Sprintf("%v", r[key]), nil
	}
}
