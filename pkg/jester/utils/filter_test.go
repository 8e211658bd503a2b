package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringFilter(t *testing.T) {
	f := NewStringFilterFromSlice(nil)
	assert.True(t, f.Match("sync"))

	f.SetStrict()
	assert.False(t, f.Match("sync"))

	f = NewStringFilterFromSlice([]string{"async"})
	assert.True(t, f.Match("async"))
	assert.False(t, f.Match("sync"))
}

func TestPathFilter(t *testing.T) {
	f := NewPathFilterFromSlice(nil, true)
	assert.True(t, f.Empty())
	assert.True(t, f.Match("suite/context"))

	f = NewPathFilterFromSlice([]string{"/suite/"}, true)
	assert.False(t, f.Empty())
	assert.True(t, f.Match("suite"))
	assert.True(t, f.Match("suite/context"))
	assert.False(t, f.Match("suite2/context"))
	assert.False(t, f.Match("other"))

	f = NewPathFilterFromSlice([]string{"suite/context"}, true)
	assert.True(t, f.Match("suite/context"))
	assert.False(t, f.Match("suite"))
	assert.False(t, f.Match("suite/context2"))

	f = NewPathFilterFromSlice([]string{"suite"}, false)
	assert.True(t, f.Match("suite"))
	assert.False(t, f.Match("suite/context"))
}

func TestPathIsBase(t *testing.T) {
	assert.True(t, pathIsBase("suite", "suite/context"))
	assert.True(t, pathIsBase("suite/context", "suite/context"))
	assert.False(t, pathIsBase("suite/context", "suite"))
	assert.False(t, pathIsBase("suite", "suite2/context"))
}

func TestPathTree(t *testing.T) {
	tree := NewPathTree()
	tree.Add("suite/context")
	tree.AddSegments("suite", "other/with/slashes", "test")

	assert.True(t, tree.Contains("suite"))
	assert.True(t, tree.Contains("suite/context"))
	assert.False(t, tree.Contains("suite/missing"))

	data, err := json.Marshal(tree)
	require.NoError(t, err)
	assert.JSONEq(t, `{"suite":{"context":{},"other/with/slashes":{"test":{}}}}`, string(data))
}
