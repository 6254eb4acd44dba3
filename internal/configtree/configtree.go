// Package configtree provides operations over nested configuration mappings.
//
// A Tree is the in-memory form of a module config fragment: string keys mapping
// to scalars, lists, or further Trees. All operations return new values and never
// mutate their inputs.
package configtree

import (
	"sort"
)

// Tree is a nested configuration mapping.
type Tree map[string]any

// Merge returns a new Tree holding base overlaid with each overlay in order.
// Nested mappings merge key-wise; on any other conflict the later value wins.
func Merge(base Tree, overlays ...Tree) Tree {
	out := Clone(base)
	if out == nil {
		out = Tree{}
	}
	for _, o := range overlays {
		out = mergeInto(out, o)
	}
	return out
}

// mergeInto merges src into dst, which must be owned by the caller.
func mergeInto(dst, src Tree) Tree {
	for k, v := range src {
		srcMap, srcIsMap := AsTree(v)
		if !srcIsMap {
			dst[k] = cloneValue(v)
			continue
		}
		dstMap, dstIsMap := AsTree(dst[k])
		if !dstIsMap {
			dst[k] = Clone(srcMap)
			continue
		}
		// dstMap is already owned by dst: it was cloned on the way in.
		dst[k] = mergeInto(dstMap, srcMap)
	}
	return dst
}

// Clone returns a deep copy of t.
func Clone(t Tree) Tree {
	if t == nil {
		return nil
	}
	out := make(Tree, len(t))
	for k, v := range t {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	if m, ok := AsTree(v); ok {
		return Clone(m)
	}
	if l, ok := v.([]any); ok {
		out := make([]any, len(l))
		for i, item := range l {
			out[i] = cloneValue(item)
		}
		return out
	}
	return v
}

// AsTree reports whether v is a mapping and returns it as a Tree.
func AsTree(v any) (Tree, bool) {
	switch m := v.(type) {
	case Tree:
		return m, true
	case map[string]any:
		return Tree(m), true
	default:
		return nil, false
	}
}

// Keys returns the keys of t in sorted order.
func Keys(t Tree) []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set returns a copy of t with value merged in at the given key path,
// creating intermediate mappings as needed. A mapping value merges key-wise
// into an existing mapping at the path; any other value replaces what is
// there, as does a mapping over a non-mapping.
func Set(t Tree, path []string, value any) Tree {
	if len(path) == 0 {
		return Clone(t)
	}
	nested := value
	for i := len(path) - 1; i > 0; i-- {
		nested = Tree{path[i]: nested}
	}
	return Merge(t, Tree{path[0]: nested})
}

// Lookup returns the value stored at the given key path.
func Lookup(t Tree, path ...string) (any, bool) {
	var cur any = t
	for _, p := range path {
		m, ok := AsTree(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Plain converts t into plain map[string]any values recursively, suitable for
// encoders that do not know about Tree.
func Plain(t Tree) map[string]any {
	if t == nil {
		return nil
	}
	out := make(map[string]any, len(t))
	for k, v := range t {
		out[k] = plainValue(v)
	}
	return out
}

func plainValue(v any) any {
	if m, ok := AsTree(v); ok {
		return Plain(m)
	}
	if l, ok := v.([]any); ok {
		out := make([]any, len(l))
		for i, item := range l {
			out[i] = plainValue(item)
		}
		return out
	}
	return v
}
