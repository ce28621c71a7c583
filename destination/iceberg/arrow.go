package iceberg

import (
	"fmt"
	"strconv"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/goccy/go-json"

	"github.com/lakesync/lakesync/types"
	"github.com/lakesync/lakesync/utils/typeutils"
)

// RecordsToArrow converts one batch of records into an arrow table. The
// schema is inferred from the batch itself with deterministic column order;
// a key missing from a record becomes a null cell.
func RecordsToArrow(records []types.Record) (arrow.Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("cannot build a columnar table from an empty batch")
	}

	fields := typeutils.Resolve(records...)
	schema := arrowSchema(fields)

	builder := array.NewRecordBuilder(memory.NewGoAllocator(), schema)
	defer builder.Release()

	for _, record := range records {
		for i, field := range schema.Fields() {
			value, found := record[field.Name]
			if !found || value == nil {
				builder.Field(i).AppendNull()
				continue
			}
			if err := appendValue(builder.Field(i), field, record, value); err != nil {
				return nil, err
			}
		}
	}

	arrowRecord := builder.NewRecord()
	defer arrowRecord.Release()

	return array.NewTableFromRecords(schema, []arrow.Record{arrowRecord}), nil
}

func arrowSchema(fields typeutils.Fields) *arrow.Schema {
	arrowFields := make([]arrow.Field, 0, len(fields))
	for _, name := range fields.SortedKeys() {
		arrowFields = append(arrowFields, arrow.Field{
			Name:     name,
			Type:     arrowType(fields[name]),
			Nullable: true,
		})
	}
	return arrow.NewSchema(arrowFields, nil)
}

func arrowType(dataType types.DataType) arrow.DataType {
	switch dataType {
	case types.BOOL:
		return arrow.FixedWidthTypes.Boolean
	case types.INT64:
		return arrow.PrimitiveTypes.Int64
	case types.FLOAT64:
		return arrow.PrimitiveTypes.Float64
	case types.TIMESTAMP:
		return &arrow.TimestampType{Unit: arrow.Microsecond, TimeZone: "UTC"}
	default:
		// strings, objects and arrays land as (JSON) strings
		return arrow.BinaryTypes.String
	}
}

func appendValue(fieldBuilder array.Builder, field arrow.Field, record types.Record, value any) error {
	switch builder := fieldBuilder.(type) {
	case *array.BooleanBuilder:
		parsed, ok := toBool(value)
		if !ok {
			builder.AppendNull()
			return nil
		}
		builder.Append(parsed)
	case *array.Int64Builder:
		parsed, ok := toInt64(value)
		if !ok {
			builder.AppendNull()
			return nil
		}
		builder.Append(parsed)
	case *array.Float64Builder:
		parsed, ok := toFloat64(value)
		if !ok {
			builder.AppendNull()
			return nil
		}
		builder.Append(parsed)
	case *array.TimestampBuilder:
		parsed, ok := toTime(value)
		if !ok {
			builder.AppendNull()
			return nil
		}
		builder.Append(arrow.Timestamp(parsed.UTC().UnixMicro()))
	case *array.StringBuilder:
		stringified, err := record.GetStringifiedJSONValue(field.Name)
		if err != nil {
			return fmt.Errorf("failed to stringify column %q: %s", field.Name, err)
		}
		builder.Append(stringified)
	default:
		return fmt.Errorf("unhandled arrow builder for column %q", field.Name)
	}
	return nil
}

func toBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b, true
		}
	}
	return false, false
}

func toInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		if v > 9223372036854775807 {
			return 0, false
		}
		return int64(v), true
	case float32:
		return int64(v), true
	case float64:
		return int64(v), true
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, true
		}
	case string:
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i, true
		}
	}
	return 0, false
}

func toFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f, true
		}
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

func toTime(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
