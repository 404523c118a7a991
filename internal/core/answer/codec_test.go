package answer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	var doc Document
	require.NoError(t, Decode([]byte(`{"entries": [1, 2.50, "x"], "rollback": []}`+"\n"), &doc))
	assert.Equal(t, []any{json.Number("1"), json.Number("2.50"), "x"}, doc.Entries)

	var v any
	assert.Error(t, Decode([]byte(`1 2`), &v), "trailing value")
	assert.Error(t, Decode([]byte(`{`), &v), "truncated")
	assert.Error(t, Decode(nil, &v), "empty input")
}

func TestCheckEncodable(t *testing.T) {
	assert.NoError(t, checkEncodable(map[string]any{"k": []any{1, "a"}}))
	assert.NoError(t, checkEncodable(nil))
	assert.Error(t, checkEncodable(func() {}))
}
