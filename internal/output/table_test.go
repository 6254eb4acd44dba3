package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable(t *testing.T) {
	tbl := NewTable("MODULE", "REFERENCE").
		Row("x_core", "/lib").
		Row("x_core_lib", "../util")

	assert.Equal(t, 2, tbl.Len())
	s := tbl.String()
	assert.Contains(t, s, "MODULE")
	assert.Contains(t, s, "x_core_lib")
	assert.Contains(t, s, "../util")
}
