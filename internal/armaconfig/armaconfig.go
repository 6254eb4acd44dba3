// Package armaconfig encodes configuration trees in the class-based config
// text format read by the game engine.
//
// Mappings become classes, lists become array properties, and scalars become
// plain properties. Keys are emitted in sorted order so output is stable.
package armaconfig

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sigmundklaa/sqfpack/internal/configtree"
)

const indentUnit = "    "

// UnsupportedValueError reports a value that has no config text form.
type UnsupportedValueError struct {
	Path  string
	Value any
}

func (e *UnsupportedValueError) Error() string {
	return fmt.Sprintf("unsupported config value at %s: %T", e.Path, e.Value)
}

// Encode renders t as config text.
func Encode(t configtree.Tree) ([]byte, error) {
	var b strings.Builder
	b.WriteString("// Generated by sqfpack. Do not edit.\n")
	if err := writeBody(&b, t, 0, ""); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

func writeBody(b *strings.Builder, t configtree.Tree, depth int, path string) error {
	indent := strings.Repeat(indentUnit, depth)
	for _, k := range configtree.Keys(t) {
		v := t[k]
		keyPath := k
		if path != "" {
			keyPath = path + "." + k
		}

		if sub, ok := configtree.AsTree(v); ok {
			if len(sub) == 0 {
				fmt.Fprintf(b, "%sclass %s {};\n", indent, k)
				continue
			}
			fmt.Fprintf(b, "%sclass %s {\n", indent, k)
			if err := writeBody(b, sub, depth+1, keyPath); err != nil {
				return err
			}
			fmt.Fprintf(b, "%s};\n", indent)
			continue
		}

		if list, ok := v.([]any); ok {
			s, err := array(list, keyPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(b, "%s%s[] = %s;\n", indent, k, s)
			continue
		}

		s, err := scalar(v, keyPath)
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "%s%s = %s;\n", indent, k, s)
	}
	return nil
}

func array(list []any, path string) (string, error) {
	parts := make([]string, 0, len(list))
	for i, item := range list {
		itemPath := path + "[" + strconv.Itoa(i) + "]"
		if nested, ok := item.([]any); ok {
			s, err := array(nested, itemPath)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
			continue
		}
		s, err := scalar(item, itemPath)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return "{" + strings.Join(parts, ", ") + "}", nil
}

func scalar(v any, path string) (string, error) {
	switch x := v.(type) {
	case string:
		return Quote(x), nil
	case bool:
		if x {
			return "1", nil
		}
		return "0", nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case uint64:
		return strconv.FormatUint(x, 10), nil
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1e15 {
			return strconv.FormatInt(int64(x), 10), nil
		}
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	case nil:
		return `""`, nil
	}
	return "", &UnsupportedValueError{Path: path, Value: v}
}

// Quote returns s as a config string literal. Embedded quotes are doubled.
func Quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
