package report

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/filemeta/pkg/filemeta"
)

func TestJSONSink_Write(t *testing.T) {
	var buf bytes.Buffer
	id := uuid.MustParse("6f1c2a9e-8d5b-4a44-9a41-0c1b7c1d2e3f")
	sink := NewJSONSink(&buf)
	sink.now = func() time.Time { return testModified }

	tbl, err := NewTable(filemeta.LayoutAmounts, sampleRecords(), WithRoot("/data"), WithScanID(id))
	require.NoError(t, err)
	require.NoError(t, sink.Write(context.Background(), tbl))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, id.String(), doc["scan_id"])
	assert.Equal(t, "/data", doc["root"])
	assert.Equal(t, "amounts", doc["layout"])
	assert.Equal(t, "2024-03-02 09:00:00", doc["generated_at"])

	files, ok := doc["files"].([]any)
	require.True(t, ok)
	require.Len(t, files, 5)

	first := files[1].(map[string]any)
	assert.Equal(t, "invoice_100_50.txt", first["name"])
	assert.Equal(t, "100.5", first["amount"])
	assert.Equal(t, "DKK", first["currency"])
	assert.Equal(t, float64(2), first["size_bytes"])

	last := files[4].(map[string]any)
	assert.NotContains(t, last, "amount")
	assert.NotContains(t, last, "currency")
}

func TestJSONSink_BasicLayoutOmitsAmounts(t *testing.T) {
	var buf bytes.Buffer
	tbl, err := NewTable(filemeta.LayoutBasic, sampleRecords())
	require.NoError(t, err)
	require.NoError(t, NewJSONSink(&buf).Write(context.Background(), tbl))

	assert.NotContains(t, buf.String(), `"amount"`)
	assert.NotContains(t, buf.String(), `"sha256"`)
}

func TestJSONSink_EmptyFilesIsArray(t *testing.T) {
	var buf bytes.Buffer
	tbl, err := NewTable(filemeta.LayoutBasic, nil)
	require.NoError(t, err)
	require.NoError(t, NewJSONSink(&buf).Write(context.Background(), tbl))

	assert.Contains(t, buf.String(), `"files": []`)
}
