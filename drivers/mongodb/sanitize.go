package driver

import (
	"fmt"
	"math"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// filterMongoObject rewrites BSON-specific values into plain Go values so the
// document survives columnar conversion. Nested documents and arrays are
// handled recursively.
func filterMongoObject(doc bson.M) {
	for key, value := range doc {
		doc[key] = filterMongoValue(value)
	}
}

func filterMongoValue(value any) any {
	switch value := value.(type) {
	case primitive.Timestamp:
		return value.T
	case primitive.DateTime:
		return value.Time()
	case primitive.Null:
		return nil
	case primitive.Binary:
		return fmt.Sprintf("%x", value.Data)
	case primitive.Decimal128:
		return value.String()
	case primitive.ObjectID:
		return value.Hex()
	case float64:
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return nil
		}
		return value
	case bson.M:
		filterMongoObject(value)
		return map[string]any(value)
	case bson.D:
		asMap := value.Map()
		filterMongoObject(asMap)
		return map[string]any(asMap)
	case bson.A:
		converted := make([]any, len(value))
		for i, item := range value {
			converted[i] = filterMongoValue(item)
		}
		return converted
	default:
		return value
	}
}
