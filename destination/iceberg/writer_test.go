package iceberg

import (
	"context"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	icebergo "github.com/apache/iceberg-go"
	"github.com/apache/iceberg-go/catalog"
	"github.com/apache/iceberg-go/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakesync/lakesync/types"
)

// stubCatalog records catalog interactions instead of talking to a metastore.
type stubCatalog struct {
	namespaceExists bool
	tableExists     bool

	createdNamespaces []table.Identifier
	createdTables     []table.Identifier
	droppedTables     []table.Identifier
	loadedTables      []table.Identifier
	calls             int
}

func (s *stubCatalog) CheckNamespaceExists(_ context.Context, _ table.Identifier) (bool, error) {
	s.calls++
	return s.namespaceExists, nil
}

func (s *stubCatalog) CreateNamespace(_ context.Context, namespace table.Identifier, _ icebergo.Properties) error {
	s.calls++
	s.createdNamespaces = append(s.createdNamespaces, namespace)
	return nil
}

func (s *stubCatalog) CheckTableExists(_ context.Context, _ table.Identifier) (bool, error) {
	s.calls++
	return s.tableExists, nil
}

func (s *stubCatalog) LoadTable(_ context.Context, identifier table.Identifier, _ icebergo.Properties) (*table.Table, error) {
	s.calls++
	s.loadedTables = append(s.loadedTables, identifier)
	return &table.Table{}, nil
}

func (s *stubCatalog) CreateTable(_ context.Context, identifier table.Identifier, _ *icebergo.Schema, _ ...catalog.CreateTableOpt) (*table.Table, error) {
	s.calls++
	s.createdTables = append(s.createdTables, identifier)
	return &table.Table{}, nil
}

func (s *stubCatalog) DropTable(_ context.Context, identifier table.Identifier) error {
	s.calls++
	s.droppedTables = append(s.droppedTables, identifier)
	return nil
}

func stubAppend(t *testing.T) *int {
	t.Helper()
	appends := 0
	original := appendToTable
	appendToTable = func(_ context.Context, iceTable *table.Table, _ arrow.Table, _ int64, _ icebergo.Properties) (*table.Table, error) {
		appends++
		return iceTable, nil
	}
	t.Cleanup(func() { appendToTable = original })
	return &appends
}

func newTestWriter(cat *stubCatalog) *Writer {
	return &Writer{
		conn:     testConnection(types.S3),
		catalog:  cat,
		writerID: "test0000",
	}
}

func nonEmptyTable(t *testing.T) arrow.Table {
	t.Helper()
	data, err := RecordsToArrow([]types.Record{
		{"_id": "a1", "count": int64(1)},
		{"_id": "a2", "count": int64(2)},
	})
	require.NoError(t, err)
	t.Cleanup(data.Release)
	return data
}

func TestWriteAppendHappyPath(t *testing.T) {
	appends := stubAppend(t)
	cat := &stubCatalog{namespaceExists: true, tableExists: true}
	writer := newTestWriter(cat)

	err := writer.Write(context.Background(), nonEmptyTable(t), "analytics.users", types.Append)
	require.NoError(t, err)

	assert.Equal(t, 1, *appends, "exactly one append per write")
	assert.Equal(t, []table.Identifier{{"analytics", "users"}}, cat.loadedTables)
	assert.Empty(t, cat.createdTables)
	assert.Empty(t, cat.droppedTables)
}

func TestWriteCreatesMissingNamespaceAndTable(t *testing.T) {
	appends := stubAppend(t)
	cat := &stubCatalog{}
	writer := newTestWriter(cat)

	err := writer.Write(context.Background(), nonEmptyTable(t), "analytics.users", types.Append)
	require.NoError(t, err)

	assert.Equal(t, []table.Identifier{{"analytics"}}, cat.createdNamespaces)
	assert.Equal(t, []table.Identifier{{"analytics", "users"}}, cat.createdTables)
	assert.Equal(t, 1, *appends)
}

func TestWriteOverwriteDropsExistingTable(t *testing.T) {
	appends := stubAppend(t)
	cat := &stubCatalog{namespaceExists: true, tableExists: true}
	writer := newTestWriter(cat)

	err := writer.Write(context.Background(), nonEmptyTable(t), "analytics.users", types.Overwrite)
	require.NoError(t, err)

	assert.Equal(t, []table.Identifier{{"analytics", "users"}}, cat.droppedTables)
	assert.Equal(t, 1, *appends)
}

func TestWriteRejectsUnsupportedMode(t *testing.T) {
	appends := stubAppend(t)
	cat := &stubCatalog{}
	writer := newTestWriter(cat)

	err := writer.Write(context.Background(), nonEmptyTable(t), "analytics.users", types.WriteMode("upsert"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported write mode")
	assert.Equal(t, 0, cat.calls, "no catalog interaction on invalid mode")
	assert.Equal(t, 0, *appends)
}

func TestWriteRejectsEmptyTable(t *testing.T) {
	appends := stubAppend(t)
	cat := &stubCatalog{}
	writer := newTestWriter(cat)

	err := writer.Write(context.Background(), nil, "analytics.users", types.Append)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "columnar")
	assert.Equal(t, 0, cat.calls, "no catalog interaction on empty input")
	assert.Equal(t, 0, *appends)
}

func TestWriteRejectsBadDestination(t *testing.T) {
	stubAppend(t)
	cat := &stubCatalog{}
	writer := newTestWriter(cat)

	for _, destination := range []string{"users", "", ".users", "analytics."} {
		err := writer.Write(context.Background(), nonEmptyTable(t), destination, types.Append)
		require.Error(t, err, "destination %q should be rejected", destination)
	}
	assert.Equal(t, 0, cat.calls)
}

func TestIdentifierFrom(t *testing.T) {
	ident, err := identifierFrom("analytics.users")
	require.NoError(t, err)
	assert.Equal(t, table.Identifier{"analytics", "users"}, ident)

	ident, err = identifierFrom("org.analytics.users")
	require.NoError(t, err)
	assert.Equal(t, table.Identifier{"org", "analytics", "users"}, ident)
}
