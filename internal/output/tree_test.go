package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTree(t *testing.T) {
	root := &TreeNode{
		Name: "project",
		Children: []*TreeNode{
			{Name: "core", Description: "addon", Children: []*TreeNode{
				{Name: "util/"},
			}},
			{Name: "demo", Description: "unit"},
		},
	}

	out := RenderTree(root)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[0], "project")
	assert.Contains(t, lines[1], "core")
	assert.Contains(t, lines[1], "addon")
	assert.Contains(t, lines[2], "util/")
	assert.Contains(t, lines[3], "demo")
	assert.True(t, strings.Index(lines[2], "util/") > strings.Index(lines[1], "core"))
}

func TestRenderTreeNil(t *testing.T) {
	assert.Equal(t, "", RenderTree(nil))
}
