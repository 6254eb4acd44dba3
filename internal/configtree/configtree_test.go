package configtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name     string
		base     Tree
		overlays []Tree
		expected Tree
	}{
		{
			name:     "nested mappings merge key-wise",
			base:     Tree{"a": Tree{"x": 1}},
			overlays: []Tree{{"a": Tree{"y": 2}}},
			expected: Tree{"a": Tree{"x": 1, "y": 2}},
		},
		{
			name:     "last writer wins on leaves",
			base:     Tree{"a": 1},
			overlays: []Tree{{"a": 2}},
			expected: Tree{"a": 2},
		},
		{
			name:     "plain maps are treated as mappings",
			base:     Tree{"a": map[string]any{"x": 1}},
			overlays: []Tree{{"a": map[string]any{"y": 2}}},
			expected: Tree{"a": Tree{"x": 1, "y": 2}},
		},
		{
			name:     "mapping replaces scalar",
			base:     Tree{"a": 1},
			overlays: []Tree{{"a": Tree{"x": 1}}},
			expected: Tree{"a": Tree{"x": 1}},
		},
		{
			name:     "scalar replaces mapping",
			base:     Tree{"a": Tree{"x": 1}},
			overlays: []Tree{{"a": "flat"}},
			expected: Tree{"a": "flat"},
		},
		{
			name:     "lists are leaves",
			base:     Tree{"a": []any{1, 2}},
			overlays: []Tree{{"a": []any{3}}},
			expected: Tree{"a": []any{3}},
		},
		{
			name:     "nil base",
			base:     nil,
			overlays: []Tree{{"a": 1}},
			expected: Tree{"a": 1},
		},
		{
			name:     "several overlays apply in order",
			base:     Tree{},
			overlays: []Tree{{"a": Tree{"x": 1}}, {"a": Tree{"x": 2, "y": 3}}, {"b": true}},
			expected: Tree{"a": Tree{"x": 2, "y": 3}, "b": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Merge(tt.base, tt.overlays...))
		})
	}
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	base := Tree{"a": Tree{"x": 1}}
	overlay := Tree{"a": Tree{"y": 2}, "l": []any{Tree{"k": 1}}}

	merged := Merge(base, overlay)
	merged["a"].(Tree)["x"] = 99
	merged["l"].([]any)[0].(Tree)["k"] = 99

	assert.Equal(t, Tree{"a": Tree{"x": 1}}, base)
	assert.Equal(t, 1, overlay["l"].([]any)[0].(Tree)["k"])
}

func TestSetAndLookup(t *testing.T) {
	tr := Set(Tree{"a": Tree{"keep": true}}, []string{"a", "b", "c"}, "v")

	v, ok := Lookup(tr, "a", "b", "c")
	require.True(t, ok)
	assert.Equal(t, "v", v)

	keep, ok := Lookup(tr, "a", "keep")
	require.True(t, ok)
	assert.Equal(t, true, keep)

	_, ok = Lookup(tr, "a", "missing")
	assert.False(t, ok)

	_, ok = Lookup(tr, "a", "keep", "deeper")
	assert.False(t, ok)
}

func TestSetMergesMappings(t *testing.T) {
	base := Tree{"CfgPatches": Tree{"core": Tree{"author": "me", "units": []any{"u"}}}}

	tr := Set(base, []string{"CfgPatches", "core"}, Tree{"units": []any{}, "weapons": []any{}})
	assert.Equal(t, Tree{"author": "me", "units": []any{}, "weapons": []any{}}, tr["CfgPatches"].(Tree)["core"])

	tr = Set(base, []string{"CfgPatches", "core"}, "flat")
	assert.Equal(t, "flat", tr["CfgPatches"].(Tree)["core"])

	assert.Equal(t, "me", base["CfgPatches"].(Tree)["core"].(Tree)["author"])
}

func TestKeysSorted(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Keys(Tree{"c": 1, "a": 2, "b": 3}))
}

func TestPlain(t *testing.T) {
	p := Plain(Tree{"a": Tree{"b": []any{Tree{"c": 1}}}})

	inner, ok := p["a"].(map[string]any)
	require.True(t, ok)
	list := inner["b"].([]any)
	_, ok = list[0].(map[string]any)
	assert.True(t, ok)
}
