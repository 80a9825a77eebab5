// Package tmux wraps tmux's CLI verbs behind typed Go methods. It produces
// well-formed argument vectors and parses the replies; it never builds a
// shell string (see pkg/sink).
//
// Grounded on the teacher's pkg/manager/tmuxwrap.go Tmux wrapper and on
// original_source/src/rmux/mod.rs, whose test suite fixes the exact argv
// shape of every verb below.
package tmux

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"tmux-session-manager/pkg/errs"
	"tmux-session-manager/pkg/sink"
)

// Client is a typed facade over the tmux CLI.
type Client struct {
	// Bin is the tmux executable. Defaults to "tmux" when empty.
	Bin string
	S   sink.Sink
}

// NewClient returns a Client backed by the given Sink.
func NewClient(s sink.Sink) *Client {
	return &Client{Bin: "tmux", S: s}
}

func (c *Client) bin() string {
	if c.Bin == "" {
		return "tmux"
	}
	return c.Bin
}

func (c *Client) argv(args ...string) []string {
	return append([]string{c.bin()}, args...)
}

// SessionExists runs `has-session -t <name>`; true iff exit 0.
func (c *Client) SessionExists(name string) bool {
	return c.S.Run(c.argv("has-session", "-t", name)) == nil
}

// InsideSession is true iff the TMUX environment variable is non-empty.
func (c *Client) InsideSession() bool {
	return strings.TrimSpace(os.Getenv("TMUX")) != ""
}

// Dimensions is a window's geometry in character cells.
type Dimensions struct {
	Width  int
	Height int
}

// WindowDimensions parses the reply of
// `display-message -p "width: #{window_width}\nheight: #{window_height}"`.
func (c *Client) WindowDimensions() (Dimensions, error) {
	out, err := c.S.RunCapture(c.argv("display-message", "-p", "width: #{window_width}\nheight: #{window_height}"))
	if err != nil {
		return Dimensions{}, fmt.Errorf("query window dimensions: %w", err)
	}

	var d Dimensions
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "width:"):
			d.Width, _ = strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "width:")))
		case strings.HasPrefix(line, "height:"):
			d.Height, _ = strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "height:")))
		}
	}
	return d, nil
}

// CreateSession runs `new-session -d -s <name> -c <path>` followed by one
// `set-environment` invocation per env entry.
func (c *Client) CreateSession(name, path string, env map[string]string) error {
	if err := c.S.Run(c.argv("new-session", "-d", "-s", name, "-c", path)); err != nil {
		return fmt.Errorf("create session %q: %w", name, err)
	}
	for _, k := range sortedKeys(env) {
		if err := c.S.Run(c.argv("set-environment", "-t", name, k, env[k])); err != nil {
			return fmt.Errorf("set-environment %s for session %q: %w", k, name, err)
		}
	}
	return nil
}

// NewWindow runs `new-window -Pd -t <session> -n <name> -c <path> -F "#{window_id}"`
// and returns the printed window id (e.g. "@3").
func (c *Client) NewWindow(session, name, path string) (string, error) {
	out, err := c.S.RunCapture(c.argv("new-window", "-Pd", "-t", session, "-n", name, "-c", path, "-F", "#{window_id}"))
	if err != nil {
		return "", fmt.Errorf("new-window %q: %w", name, err)
	}
	return strings.TrimSpace(out), nil
}

// SplitWindow runs `split-window -t <window_id> -c <path> -P -F "#{pane_id}"`
// and returns the printed pane id (e.g. "%7").
func (c *Client) SplitWindow(windowID, path string) (string, error) {
	out, err := c.S.RunCapture(c.argv("split-window", "-t", windowID, "-c", path, "-P", "-F", "#{pane_id}"))
	if err != nil {
		return "", fmt.Errorf("split-window in %q: %w", windowID, err)
	}
	return strings.TrimSpace(out), nil
}

// CurrentPane runs `display-message -t <window_id> -p "#P"`.
func (c *Client) CurrentPane(windowID string) (string, error) {
	out, err := c.S.RunCapture(c.argv("display-message", "-t", windowID, "-p", "#P"))
	if err != nil {
		return "", fmt.Errorf("current pane of %q: %w", windowID, err)
	}
	return strings.TrimSpace(out), nil
}

// SelectLayout runs `select-layout -t <window_id> <layout_string>`.
func (c *Client) SelectLayout(windowID, layout string) error {
	if err := c.S.Run(c.argv("select-layout", "-t", windowID, layout)); err != nil {
		return fmt.Errorf("select-layout on %q: %w", windowID, err)
	}
	return nil
}

// SendKeys runs `send-keys -t <pane_id> '<cmd>' C-m`.
func (c *Client) SendKeys(paneID, command string) error {
	if err := c.S.Run(c.argv("send-keys", "-t", paneID, command, "C-m")); err != nil {
		return fmt.Errorf("send-keys to %q: %w", paneID, err)
	}
	return nil
}

// Attach runs `attach-session -t <name>`.
func (c *Client) Attach(name string) error {
	if err := c.S.Run(c.argv("attach-session", "-t", name)); err != nil {
		return fmt.Errorf("attach session %q: %w", name, err)
	}
	return nil
}

// SwitchClient runs `switch-client -t <name>`.
func (c *Client) SwitchClient(name string) error {
	if err := c.S.Run(c.argv("switch-client", "-t", name)); err != nil {
		return fmt.Errorf("switch-client to %q: %w", name, err)
	}
	return nil
}

// KillSession runs `kill-session -t <name>`.
func (c *Client) KillSession(name string) error {
	if err := c.S.Run(c.argv("kill-session", "-t", name)); err != nil {
		return &errs.SessionNotFound{Name: name}
	}
	return nil
}

// KillWindow runs `kill-window -t <target>`.
func (c *Client) KillWindow(target string) error {
	if err := c.S.Run(c.argv("kill-window", "-t", target)); err != nil {
		return fmt.Errorf("kill-window %q: %w", target, err)
	}
	return nil
}

// MoveWindows runs `move-window -r -s <session> -t <session>`, renumbering
// every remaining window (used after killing tmux's bootstrap window 1).
func (c *Client) MoveWindows(session string) error {
	if err := c.S.Run(c.argv("move-window", "-r", "-s", session, "-t", session)); err != nil {
		return fmt.Errorf("move-window in %q: %w", session, err)
	}
	return nil
}

// ListSessions runs `list-sessions -F "#{session_name}"`.
func (c *Client) ListSessions() ([]string, error) {
	out, err := c.S.RunCapture(c.argv("list-sessions", "-F", "#{session_name}"))
	if err != nil {
		// tmux exits non-zero with no server running; that's an empty list, not an error.
		return nil, nil
	}
	var names []string
	for _, l := range strings.Split(out, "\n") {
		l = strings.TrimSpace(l)
		if l != "" {
			names = append(names, l)
		}
	}
	return names, nil
}

// DisplayMessage runs `display-message -p <format>` and returns the reply.
func (c *Client) DisplayMessage(format string) (string, error) {
	out, err := c.S.RunCapture(c.argv("display-message", "-p", format))
	if err != nil {
		return "", fmt.Errorf("display-message %q: %w", format, err)
	}
	return strings.TrimSpace(out), nil
}

// ListWindows returns the raw "#{window_id} #{window_name}" lines for a
// session, used by the yaml/inspect path.
func (c *Client) ListWindows(session string) ([]string, error) {
	out, err := c.S.RunCapture(c.argv("list-windows", "-t", session, "-F", "#{window_id} #{window_name}"))
	if err != nil {
		return nil, fmt.Errorf("list-windows in %q: %w", session, err)
	}
	var lines []string
	for _, l := range strings.Split(out, "\n") {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines, nil
}

// WindowLayout returns the raw window_layout string for a window, used by
// the inverse (yaml) operation.
func (c *Client) WindowLayout(windowID string) (string, error) {
	out, err := c.S.RunCapture(c.argv("display-message", "-t", windowID, "-p", "#{window_layout}"))
	if err != nil {
		return "", fmt.Errorf("window_layout of %q: %w", windowID, err)
	}
	return strings.TrimSpace(out), nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
