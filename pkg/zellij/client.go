package zellij

import (
	"fmt"
	"os"
	"strings"

	"tmux-session-manager/pkg/errs"
	"tmux-session-manager/pkg/mux"
	"tmux-session-manager/pkg/sessionmodel"
	"tmux-session-manager/pkg/sink"
)

// Backend implements mux.Capability against the zellij CLI. Stop,
// ListSessions and GetSession surface mux.ErrNotImplemented, matching
// original_source's driver (stop/list_sessions/get_session are
// all `todo!()` there).
type Backend struct {
	Bin string
	S   sink.Sink
}

var _ mux.Capability = (*Backend)(nil)

func New(s sink.Sink) *Backend {
	return &Backend{Bin: "zellij", S: s}
}

func (b *Backend) bin() string {
	if b.Bin == "" {
		return "zellij"
	}
	return b.Bin
}

func (b *Backend) argv(args ...string) []string {
	return append([]string{b.bin()}, args...)
}

func (b *Backend) sessionExists(name string) bool {
	out, err := b.S.RunCapture(b.argv("list-sessions", "-s"))
	if err != nil {
		return false
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == name {
			return true
		}
	}
	return false
}

// Start writes the session's KDL layout to /tmp/<name>.kdl and attaches
// zellij to a new session created from it. If the session already exists,
// nothing is written and it attaches only when attach is set.
func (b *Backend) Start(session *sessionmodel.Session, attach bool) error {
	if b.sessionExists(session.Name) {
		if attach {
			return b.Switch(session.Name)
		}
		return nil
	}

	path := fmt.Sprintf("/tmp/%s.kdl", session.Name)
	if err := os.WriteFile(path, []byte(RenderKDL(session)), 0o644); err != nil {
		return &errs.IOError{Op: "write zellij layout", Err: err}
	}

	return b.S.Run(b.argv("--layout", path, "attach", "-c", session.Name))
}

func (b *Backend) Stop(name string) error {
	return &mux.ErrNotImplemented{Backend: "zellij", Verb: "stop"}
}

func (b *Backend) Switch(name string) error {
	return b.S.Run(b.argv("attach", name))
}

func (b *Backend) ListSessions() ([]string, error) {
	return nil, &mux.ErrNotImplemented{Backend: "zellij", Verb: "list_sessions"}
}

func (b *Backend) GetSession(name string) (*sessionmodel.Session, error) {
	return nil, &mux.ErrNotImplemented{Backend: "zellij", Verb: "get_session"}
}
