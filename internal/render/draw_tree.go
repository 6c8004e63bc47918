package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/h0rv/stepdiff/internal/tree"
)

// treeWidth is the fixed sidebar width for the file explorer column.
const treeWidth = 32

// drawTree renders the file explorer sidebar: indented directory/file rows
// with per-file +insertions/-deletions counts, a divider, and a
// highlighted cursor row.
func drawTree(a *AppState, x, y, height int) {
	screen := a.Screen
	nodes := a.TreeNodes
	a.TreeState.ClampScroll(nodes, height)
	a.TreeState.EnsureCursorVisible(nodes, height)
	cursorNode := a.TreeState.CursorNodeIndex(nodes)

	row := y
	for i := a.TreeState.Scroll; i < len(nodes) && row < y+height; i++ {
		drawTreeNode(a, screen, x, row, treeWidth-1, nodes[i], i == cursorNode)
		row++
	}
	for ; row < y+height; row++ {
		clearRow(screen, x, row, x+treeWidth-1, a.Theme.Default)
	}
	for row := y; row < y+height; row++ {
		screen.SetContent(x+treeWidth-1, row, '│', nil, a.Theme.Dim)
	}
}

func drawTreeNode(a *AppState, screen tcell.Screen, x, y, rightEdge int, n tree.Node, isCursor bool) {
	style := a.Theme.Default
	if isCursor {
		style = style.Reverse(true)
	}
	col := x + n.Depth*2
	if n.IsDir {
		col = drawPlainText(screen, col, y, n.Display, a.Theme.Dim, rightEdge)
	} else {
		col = drawPlainText(screen, col, y, n.Display, style, rightEdge)
		if n.Added > 0 || n.Removed > 0 {
			stat := fmt.Sprintf(" +%d -%d", n.Added, n.Removed)
			col = drawPlainText(screen, col, y, stat, a.Theme.Dim, rightEdge)
		}
	}
	clearRow(screen, col, y, rightEdge, style)
}
