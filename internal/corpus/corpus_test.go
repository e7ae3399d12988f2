package corpus_test

import (
	"strings"
	"testing"

	"github.com/jacobduba/sd18-isu/internal/corpus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	input := `{"repository_name":"r1","func_name":"add","whole_func_string":"def add(a,b): return a+b","func_documentation_string":"Add two numbers.","language":"python"}
{"id":42,"func_name":"sub","whole_func_string":"def sub(a,b): return a-b"}
`
	records, err := corpus.Read(strings.NewReader(input), 0)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, int64(0), records[0].ID)
	assert.Equal(t, "r1", records[0].RepositoryName)
	assert.Equal(t, "Add two numbers.", records[0].FuncDocString)

	// explicit id wins over position
	assert.Equal(t, int64(42), records[1].ID)
	// missing fields default, never fail ingestion
	assert.Equal(t, "", records[1].FuncDocString)
	assert.Nil(t, records[1].FuncCodeTokens)
}

func TestRead_SkipsMalformedLines(t *testing.T) {
	input := `{"func_name":"ok"}
not json at all
{"func_name":"also ok"}
`
	records, err := corpus.Read(strings.NewReader(input), 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "ok", records[0].FuncName)
	assert.Equal(t, "also ok", records[1].FuncName)
}

func TestRead_Limit(t *testing.T) {
	input := strings.Repeat(`{"func_name":"f"}`+"\n", 10)
	records, err := corpus.Read(strings.NewReader(input), 3)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestRead_DedupesIDs(t *testing.T) {
	input := `{"id":1,"func_name":"a"}
{"func_name":"b"}
{"func_name":"c"}
{"id":1,"func_name":"dup"}
`
	records, err := corpus.Read(strings.NewReader(input), 0)
	require.NoError(t, err)
	require.Len(t, records, 3)

	// positional ids never collide with explicit ones
	assert.Equal(t, int64(1), records[0].ID)
	assert.Equal(t, int64(0), records[1].ID)
	assert.Equal(t, int64(2), records[2].ID)

	seen := map[int64]bool{}
	for _, r := range records {
		assert.False(t, seen[r.ID], "duplicate id %d survived load", r.ID)
		seen[r.ID] = true
	}
}
