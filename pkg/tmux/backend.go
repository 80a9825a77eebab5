package tmux

import (
	"fmt"
	"strings"

	"tmux-session-manager/pkg/errs"
	"tmux-session-manager/pkg/layout"
	"tmux-session-manager/pkg/mux"
	"tmux-session-manager/pkg/sessionmodel"
	"tmux-session-manager/pkg/sink"
)

// Backend implements mux.Capability against tmux: it drives a Client and a
// layout.Engine through the exact sequence original_source/src/rmux/mod.rs's
// start_session/stop_session test fixtures pin down.
type Backend struct {
	Client *Client
	Engine *layout.Engine
}

var _ mux.Capability = (*Backend)(nil)

// NewBackend builds a Backend over a fresh Client/Engine pair backed by s.
func NewBackend(s sink.Sink) *Backend {
	c := NewClient(s)
	return &Backend{Client: c, Engine: layout.NewEngine(c)}
}

// Start realizes a session: create it if absent, build every window's pane
// tree, then attach/switch and flush deferred pane commands, exactly in
// that order (spec.md §5).
func (b *Backend) Start(session *sessionmodel.Session, attach bool) error {
	if b.Client.SessionExists(session.Name) {
		if attach {
			return b.attachOrSwitch(session.Name)
		}
		return nil
	}

	inside := b.Client.InsideSession()
	dims, err := b.Client.WindowDimensions()
	if err != nil {
		return err
	}

	if err := b.Client.CreateSession(session.Name, session.Path, session.Env); err != nil {
		return err
	}

	var queue []layout.QueueEntry
	for i, window := range session.Windows {
		windowPath := sessionmodel.ResolvePath(window.Path, session.Path)

		windowID, err := b.Client.NewWindow(session.Name, window.Name, windowPath)
		if err != nil {
			if rbErr := b.rollback(session.Name); rbErr != nil {
				return fmt.Errorf("start failed (%w); rollback also failed: %v", err, rbErr)
			}
			return err
		}
		for _, cmd := range window.Commands {
			queue = append(queue, layout.QueueEntry{PaneID: windowID, Command: cmd})
		}

		if i == 0 {
			bootstrap := NewTarget(session.Name).WithWindow("1")
			if err := b.Client.KillWindow(bootstrap.String()); err != nil {
				return err
			}
			if err := b.Client.MoveWindows(session.Name); err != nil {
				return err
			}
		}

		result, err := b.Engine.BuildWindow(windowID, windowPath, window.Panes, dims, window.EffectiveFlexDirection())
		if err != nil {
			if rbErr := b.rollback(session.Name); rbErr != nil {
				return fmt.Errorf("start failed (%w); rollback also failed: %v", err, rbErr)
			}
			return err
		}
		if err := b.Client.SelectLayout(windowID, result.Layout); err != nil {
			return err
		}
		queue = append(queue, result.Queue...)
	}

	if attach {
		if err := b.attachOrSwitchInside(session.Name, inside); err != nil {
			return err
		}
	}

	for _, cmd := range session.Startup {
		queue = append(queue, layout.QueueEntry{PaneID: session.Name, Command: cmd})
	}
	for _, entry := range queue {
		if err := b.Client.SendKeys(entry.PaneID, entry.Command); err != nil {
			return err
		}
	}
	return nil
}

// rollback kills a partially created session (start failed mid-build); it
// never runs shutdown commands, only stop().
func (b *Backend) rollback(name string) error {
	return b.Client.KillSession(name)
}

func (b *Backend) attachOrSwitch(name string) error {
	return b.attachOrSwitchInside(name, b.Client.InsideSession())
}

func (b *Backend) attachOrSwitchInside(name string, inside bool) error {
	if inside {
		return b.Client.SwitchClient(name)
	}
	return b.Client.Attach(name)
}

// Stop kills the named session.
func (b *Backend) Stop(name string) error {
	_, _ = b.Client.DisplayMessage("#{session_base_path}")
	return b.Client.KillSession(name)
}

// Send delivers one command to a pane or session target via send-keys. It
// satisfies the orchestrator's optional shutdown-command seam.
func (b *Backend) Send(target, command string) error {
	return b.Client.SendKeys(target, command)
}

func (b *Backend) Switch(name string) error {
	return b.attachOrSwitch(name)
}

func (b *Backend) ListSessions() ([]string, error) {
	return b.Client.ListSessions()
}

// GetSession inspects a live session and rebuilds a Session document from
// it, via LayoutParser + FlexReducer. Pane ids and live env are not
// recoverable from tmux's layout string, so the result only has shape, not
// identity - exactly what a YAML document needs to reproduce it.
func (b *Backend) GetSession(name string) (*sessionmodel.Session, error) {
	lines, err := b.Client.ListWindows(name)
	if err != nil {
		return nil, err
	}

	sess := &sessionmodel.Session{Name: name, Path: "."}
	for _, line := range lines {
		parts := strings.SplitN(line, " ", 2)
		if len(parts) != 2 {
			continue
		}
		windowID, windowName := parts[0], parts[1]

		raw, err := b.Client.WindowLayout(windowID)
		if err != nil {
			return nil, err
		}
		root, err := layout.Parse(raw)
		if err != nil {
			return nil, err
		}
		direction, panes := layout.ReduceWindow(root)
		sess.Windows = append(sess.Windows, sessionmodel.Window{
			Name:          windowName,
			FlexDirection: direction,
			Panes:         panes,
		})
	}
	return sess, nil
}

// CurrentSessionName resolves the session attached to the calling
// client, for verbs (yaml) that operate on "the current session" rather
// than a named one. It only makes sense when already inside tmux.
func (b *Backend) CurrentSessionName() (string, error) {
	if !b.Client.InsideSession() {
		return "", &errs.NotInsideSession{}
	}
	return b.Client.DisplayMessage("#S")
}
