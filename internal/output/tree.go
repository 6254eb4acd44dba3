package output

import (
	"strings"
)

const (
	treeEdge  = "├── "
	treeLast  = "└── "
	treeVert  = "│   "
	treeSpace = "    "

	// descriptionColumn is the column descriptions are aligned to.
	descriptionColumn = 36
)

// TreeNode is one node of a rendered tree. Children render in slice order.
type TreeNode struct {
	Name        string
	Description string
	Children    []*TreeNode
}

// RenderTree renders root and its descendants with box-drawing connectors and
// descriptions aligned to a fixed column.
func RenderTree(root *TreeNode) string {
	if root == nil {
		return ""
	}
	var sb strings.Builder
	renderNode(&sb, root, "", true, true)
	return sb.String()
}

func renderNode(sb *strings.Builder, node *TreeNode, prefix string, isRoot, isLast bool) {
	var line string
	if isRoot {
		line = node.Name
	} else {
		connector := treeEdge
		if isLast {
			connector = treeLast
		}
		line = prefix + connector + node.Name
	}

	width := len([]rune(line))
	if isRoot {
		line = StyleBold.Render(line)
	}
	if node.Description != "" {
		padding := descriptionColumn - width
		if padding < 2 {
			padding = 2
		}
		line += strings.Repeat(" ", padding) + StyleDim.Render(node.Description)
	}
	sb.WriteString(line)
	sb.WriteString("\n")

	for i, child := range node.Children {
		childPrefix := ""
		if !isRoot {
			if isLast {
				childPrefix = prefix + treeSpace
			} else {
				childPrefix = prefix + treeVert
			}
		}
		renderNode(sb, child, childPrefix, false, i == len(node.Children)-1)
	}
}
