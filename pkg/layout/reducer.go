package layout

import "tmux-session-manager/pkg/sessionmodel"

// ReduceWindow turns a parsed layout tree back into the flex_direction and
// panes a YAML config would need to reproduce the live window's shape.
// Pane ids are not preserved: a YAML document never names a live tmux pane,
// it only describes the shape that produces one the next time it starts.
//
// Grounded on original_source/src/app/config.rs::Pane::from_tokens and
// Window::from_tokens.
func ReduceWindow(root *LayoutNode) (sessionmodel.FlexDirection, []sessionmodel.Pane) {
	direction := sessionmodel.Row
	if root.Orientation != "" {
		direction = root.Orientation
	}
	if root.IsLeaf() {
		return direction, []sessionmodel.Pane{{Flex: 1, Path: "."}}
	}
	return direction, reducePanes(root.Children, direction)
}

// reducePanes converts one container's children into Panes with normalized
// flex weights. The dimension read off each sibling depends on the parent's
// orientation (Row reads height, Column reads width - see engine.go), is
// rounded up to the next multiple of 3 to absorb divider-accounting noise,
// then normalized by two rounds of GCD reduction and floored at 1.
func reducePanes(nodes []*LayoutNode, parentOrientation sessionmodel.FlexDirection) []sessionmodel.Pane {
	if len(nodes) == 0 {
		return nil
	}

	dims := make([]int, len(nodes))
	for i, n := range nodes {
		dims[i] = dimensionFor(n, parentOrientation)
	}

	rounded := make([]int, len(dims))
	for i, d := range dims {
		rounded[i] = roundToMultipleOf3(d)
	}
	g := gcdAll(rounded)

	flexValues := make([]int, len(dims))
	for i, r := range rounded {
		flexValues[i] = r / g
	}
	g2 := gcdAll(flexValues)

	panes := make([]sessionmodel.Pane, len(nodes))
	for i, n := range nodes {
		flex := flexValues[i] / g2
		if flex < 1 {
			flex = 1
		}
		childDir := sessionmodel.Row
		if n.Orientation != "" {
			childDir = n.Orientation
		}
		panes[i] = sessionmodel.Pane{
			Flex:          flex,
			Path:          ".",
			FlexDirection: childDir,
			Panes:         reducePanes(n.Children, childDir),
		}
	}
	return panes
}

func dimensionFor(n *LayoutNode, orientation sessionmodel.FlexDirection) int {
	if orientation == sessionmodel.Column {
		return n.Width
	}
	return n.Height
}

// roundToMultipleOf3 rounds n up to the next multiple of 3, leaving exact
// multiples unchanged - the same asymmetric rounding original_source uses,
// not true nearest-multiple rounding.
func roundToMultipleOf3(n int) int {
	r := n % 3
	if r == 0 {
		return n
	}
	return n + (3 - r)
}

func gcdAll(nums []int) int {
	allZero := true
	for _, n := range nums {
		if n != 0 {
			allZero = false
			break
		}
	}
	if len(nums) == 0 || allZero {
		return 1
	}
	acc := 0
	for _, n := range nums {
		acc = gcdTwo(acc, n)
	}
	if acc == 0 {
		return 1
	}
	return acc
}

func gcdTwo(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
