package typeutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lakesync/lakesync/types"
)

func TestTypeFromValue(t *testing.T) {
	tests := []struct {
		value    any
		expected types.DataType
	}{
		{nil, types.NULL},
		{true, types.BOOL},
		{int32(7), types.INT64},
		{int64(7), types.INT64},
		{uint8(7), types.INT64},
		{3.14, types.FLOAT64},
		{"hello", types.STRING},
		{[]byte("raw"), types.STRING},
		{time.Now(), types.TIMESTAMP},
		{[]any{1, 2}, types.ARRAY},
		{map[string]any{"a": 1}, types.OBJECT},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, TypeFromValue(tt.value), "value %v", tt.value)
	}
}

func TestResolveWidening(t *testing.T) {
	fields := Resolve(
		types.Record{"count": int64(1), "name": "a", "score": int64(10)},
		types.Record{"count": 2.5, "name": "b", "score": true},
		types.Record{"count": int64(3), "flag": nil},
	)

	assert.Equal(t, types.FLOAT64, fields["count"], "integer+number widens to number")
	assert.Equal(t, types.STRING, fields["name"])
	assert.Equal(t, types.STRING, fields["score"], "conflicting types widen to string")
	assert.Equal(t, types.STRING, fields["flag"], "all-null columns get a physical string type")
}

func TestResolveNullDefersToConcrete(t *testing.T) {
	fields := Resolve(
		types.Record{"when": nil},
		types.Record{"when": time.Now()},
	)
	assert.Equal(t, types.TIMESTAMP, fields["when"])
}

func TestSortedKeysDeterministic(t *testing.T) {
	fields := Fields{"b": types.STRING, "a": types.INT64, "c": types.BOOL}
	assert.Equal(t, []string{"a", "b", "c"}, fields.SortedKeys())
}
