// Package zellij implements mux.Capability against the zellij terminal
// multiplexer: a KDL layout is written to a temp file and zellij is told to
// attach to a new session created from it.
//
// Grounded on original_source/src/driver/zellij/mux.rs, whose start/stop
// shape (including the "/tmp/<name>.kdl then attach" sequence, and stop /
// list_sessions / get_session being unimplemented) this package follows
// directly; zellij's own KDL writer (Session::as_kdl) isn't in the
// retrieved sources, so the emission below is written fresh against
// sessionmodel's tree instead of translated from Rust.
package zellij

import (
	"fmt"
	"strings"

	"tmux-session-manager/pkg/sessionmodel"
)

// RenderKDL renders a Session as a zellij layout document.
func RenderKDL(session *sessionmodel.Session) string {
	var b strings.Builder
	b.WriteString("layout {\n")
	for _, w := range session.Windows {
		writeTab(&b, 1, w)
	}
	b.WriteString("}\n")
	return b.String()
}

func writeTab(b *strings.Builder, indent int, w sessionmodel.Window) {
	pad := strings.Repeat("    ", indent)
	fmt.Fprintf(b, "%stab name=%q cwd=%q {\n", pad, w.Name, w.Path)
	for _, p := range w.Panes {
		writePane(b, indent+1, p, w.EffectiveFlexDirection())
	}
	fmt.Fprintf(b, "%s}\n", pad)
}

func writePane(b *strings.Builder, indent int, p sessionmodel.Pane, orientation sessionmodel.FlexDirection) {
	pad := strings.Repeat("    ", indent)
	if p.IsLeaf() {
		attrs := fmt.Sprintf("cwd=%q", p.Path)
		if len(p.Commands) > 0 {
			attrs += fmt.Sprintf(" command=\"sh\" args=\"-c;%s\"", strings.Join(p.Commands, " && "))
		}
		fmt.Fprintf(b, "%spane %s\n", pad, attrs)
		return
	}

	fmt.Fprintf(b, "%spane split_direction=%q cwd=%q {\n", pad, splitDirection(orientation), p.Path)
	for _, child := range p.Panes {
		writePane(b, indent+1, child, p.EffectiveFlexDirection())
	}
	fmt.Fprintf(b, "%s}\n", pad)
}

// splitDirection maps our Row/Column (height-partition/width-partition, see
// pkg/layout) onto zellij's own vocabulary: Row stacks children with a
// horizontal divider line between them; Column sits them side by side with
// a vertical divider line.
func splitDirection(orientation sessionmodel.FlexDirection) string {
	if orientation == sessionmodel.Column {
		return "vertical"
	}
	return "horizontal"
}
