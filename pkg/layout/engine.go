// Package layout implements the forward LayoutEngine (pane tree -> tmux
// layout string + command sequence) and its inverse (LayoutParser +
// FlexReducer).
//
// Grounded on original_source/src/rmux/mod.rs::generate_layout_string for
// the geometry recursion and command-emission ordering, and on spec.md
// §4.3 for the serialization/checksum rules. See DESIGN.md for a note on
// the flex_direction <-> bracket/brace mapping, which is not what the
// English words "row"/"column" suggest at first glance but is exactly what
// the worked checksum fixtures in spec.md §8 require.
package layout

import (
	"fmt"
	"strings"

	"tmux-session-manager/pkg/errs"
	"tmux-session-manager/pkg/sessionmodel"
	"tmux-session-manager/pkg/tmux"
)

// QueueEntry is one deferred (pane_id, command) pair. tmux.Backend.Start
// drains these only after every window's final select-layout has run
// (spec.md §5 ordering guarantee 2).
type QueueEntry struct {
	PaneID  string
	Command string
}

// Result is the outcome of building one window's pane tree.
type Result struct {
	// Layout is the final "<checksum>,<body>" layout string.
	Layout string
	// Queue holds every pane's registered commands, in pane-creation order
	// and, within a pane, in declaration order.
	Queue []QueueEntry
}

// Engine walks a pane tree, computes geometry, and drives a tmux.Client
// through the required split/select-layout sequence.
type Engine struct {
	Client *tmux.Client
}

func NewEngine(c *tmux.Client) *Engine {
	return &Engine{Client: c}
}

// BuildWindow realizes panes inside an already-created window and returns
// the final layout string plus the deferred command queue.
func (e *Engine) BuildWindow(windowID, windowPath string, panes []sessionmodel.Pane, dims tmux.Dimensions, orientation sessionmodel.FlexDirection) (Result, error) {
	var queue []QueueEntry
	body, err := e.layoutChildren(windowID, panes, orientation, dims.Width, dims.Height, 0, 0, 0, windowPath, true, &queue)
	if err != nil {
		return Result{}, err
	}
	return Result{Layout: layoutChecksum(body), Queue: queue}, nil
}

func layoutChecksum(body string) string {
	return WithChecksum(body)
}

// layoutChildren computes geometry for one container's children (a
// window's top-level panes, or a Pane's nested sub-panes), issues the
// required multiplexer commands as it goes, and returns the serialized
// body fragment for this container.
//
// isRoot is true only for the window's own top-level pane list; it
// suppresses the "single-child container collapses to a bare WxH,0,0"
// rule (spec.md §4.3) for that one case, so a window with exactly one leaf
// pane still reports that leaf's real pane id (see DESIGN.md).
func (e *Engine) layoutChildren(
	windowID string,
	children []sessionmodel.Pane,
	orientation sessionmodel.FlexDirection,
	w, h, x, y int,
	depth int,
	parentPath string,
	isRoot bool,
	queue *[]QueueEntry,
) (string, error) {
	k := len(children)
	shares, origins, err := computeShares(children, orientation, w, h, depth)
	if err != nil {
		return "", err
	}

	fragments := make([]string, k)
	for i, child := range children {
		pw, ph := w, h
		cx, cy := x, y
		if orientation == sessionmodel.Column {
			pw = shares[i]
			cx = origins[i]
		} else {
			ph = shares[i]
			cy = origins[i]
		}

		path := sessionmodel.ResolvePath(child.Path, parentPath)

		var paneID string
		var err error
		if i == 0 {
			paneID, err = e.Client.CurrentPane(windowID)
		} else {
			paneID, err = e.Client.SplitWindow(windowID, path)
		}
		if err != nil {
			return "", err
		}
		if err := e.Client.SelectLayout(windowID, "tiled"); err != nil {
			return "", err
		}

		if child.IsLeaf() {
			fragments[i] = fmt.Sprintf("%dx%d,%d,%d,%s", pw, ph, cx, cy, strings.TrimPrefix(paneID, "%"))
		} else {
			sub, err := e.layoutChildren(windowID, child.Panes, child.EffectiveFlexDirection(), pw, ph, cx, cy, depth+1, path, false, queue)
			if err != nil {
				return "", err
			}
			fragments[i] = sub
		}

		for _, cmd := range child.Commands {
			*queue = append(*queue, QueueEntry{PaneID: paneID, Command: cmd})
		}
	}

	if isRoot && k == 1 {
		return fragments[0], nil
	}
	if k > 1 {
		open, close := containerDelims(orientation)
		return fmt.Sprintf("%dx%d,%d,%d%s%s%s", w, h, x, y, open, strings.Join(fragments, ","), close), nil
	}
	return fmt.Sprintf("%dx%d,0,0", w, h), nil
}

// containerDelims returns the bracket pair tmux expects for a container of
// the given orientation: Row containers partition height and are wrapped in
// "[...]"; Column containers partition width and are wrapped in "{...}".
func containerDelims(orientation sessionmodel.FlexDirection) (open, close string) {
	if orientation == sessionmodel.Column {
		return "{", "}"
	}
	return "[", "]"
}

// computeShares implements spec.md §4.3's geometry recursion: Row
// containers partition height (children share width, stack along y);
// Column containers partition width (children share height, sit side by
// side along x). The last child absorbs rounding slack; every other
// non-first-of-a-nested-container child has its floor share reduced by the
// number of dividers already consumed in this container, matching
// original_source/src/rmux/mod.rs exactly.
func computeShares(children []sessionmodel.Pane, orientation sessionmodel.FlexDirection, w, h, depth int) (shares, origins []int, err error) {
	k := len(children)
	extent := h
	if orientation == sessionmodel.Column {
		extent = w
	}

	total := 0
	for _, c := range children {
		total += c.EffectiveFlex()
	}
	if total == 0 {
		total = 1
	}

	shares = make([]int, k)
	origins = make([]int, k)
	pos := 0
	dividers := 0
	for i, c := range children {
		origins[i] = pos
		if i == k-1 {
			share := extent - pos
			if share < 0 {
				return nil, nil, &errs.GeometryUnderflow{Container: string(orientation), Extent: extent, Consumed: pos}
			}
			shares[i] = share
		} else {
			subtract := depth > 0 || i > 0
			share := extent * c.EffectiveFlex() / total
			if subtract {
				share -= dividers
			}
			shares[i] = share
		}
		if depth > 0 || i > 0 {
			dividers++
		}
		pos += shares[i] + 1
	}
	return shares, origins, nil
}
