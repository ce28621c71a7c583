package iceberg

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/iceberg-go"
)

// icebergSchema derives the table schema for creation from the batch's arrow
// schema. All columns are optional; the source has no nullability contract.
func icebergSchema(schema *arrow.Schema) *iceberg.Schema {
	fields := make([]iceberg.NestedField, 0, schema.NumFields())
	for i, field := range schema.Fields() {
		fields = append(fields, iceberg.NestedField{
			ID:       i + 1,
			Name:     field.Name,
			Type:     icebergType(field.Type),
			Required: false,
		})
	}
	return iceberg.NewSchema(0, fields...)
}

func icebergType(dataType arrow.DataType) iceberg.Type {
	switch dataType.ID() {
	case arrow.BOOL:
		return iceberg.PrimitiveTypes.Bool
	case arrow.INT64:
		return iceberg.PrimitiveTypes.Int64
	case arrow.FLOAT64:
		return iceberg.PrimitiveTypes.Float64
	case arrow.TIMESTAMP:
		return iceberg.PrimitiveTypes.TimestampTz
	default:
		return iceberg.PrimitiveTypes.String
	}
}
