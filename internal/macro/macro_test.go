package macro

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgs(t *testing.T) {
	assert.Nil(t, Args(0))
	assert.Equal(t, []string{"ARG_1", "ARG_2"}, Args(2))
}

func TestDefine(t *testing.T) {
	tests := []struct {
		name     string
		macro    Macro
		expected string
	}{
		{
			name:     "object-like",
			macro:    Macro{Name: "VERSION", Value: "3"},
			expected: "#define VERSION 3",
		},
		{
			name:     "function-like",
			macro:    Macro{Name: "CORE", Args: Args(1), Value: "x_core_fnc_##ARG_1"},
			expected: "#define CORE(ARG_1) x_core_fnc_##ARG_1",
		},
		{
			name:     "flag without value",
			macro:    Macro{Name: "DEBUG"},
			expected: "#define DEBUG",
		},
		{
			name:     "multi-line value",
			macro:    Macro{Name: "BLOCK", Value: "a\nb"},
			expected: "#define BLOCK a \\\nb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.macro.Define())
		})
	}
}

func TestTableSetOverwritesValue(t *testing.T) {
	table := NewTable()
	table.Set(Macro{Name: "A", Value: "1"})
	table.Set(Macro{Name: "B", Value: "2"})
	table.Set(Macro{Name: "A", Value: "3"})

	assert.Equal(t, 2, table.Len())
	m, ok := table.Get("A")
	require.True(t, ok)
	assert.Equal(t, "3", m.Value)
}

func TestSeededTable(t *testing.T) {
	table := NewSeededTable("x_core")

	tag, ok := table.Get(TagMacro)
	require.True(t, ok)
	assert.Equal(t, "x_core", tag.Value)

	for _, m := range Base() {
		_, ok := table.Get(m.Name)
		assert.True(t, ok, "base macro %s missing", m.Name)
	}

	assert.False(t, table.Empty())
	assert.Equal(t, 0, table.Declared())

	table.Set(Macro{Name: "EXTRA"})
	assert.Equal(t, 1, table.Declared())
}

func TestRender(t *testing.T) {
	table := NewTable()
	table.Set(Macro{Name: "CORE", Args: Args(1), Value: "x_core_fnc_##ARG_1"})

	out := table.Render()

	assert.True(t, strings.HasPrefix(out, "// Generated by sqfpack"))
	assert.Contains(t, out, "#ifdef CORE\n#undef CORE\n#endif\n")
	assert.Contains(t, out, "#define CORE(ARG_1) x_core_fnc_##ARG_1\n")
}
