package tmux

import (
	"strings"
	"testing"

	"tmux-session-manager/pkg/sessionmodel"
	"tmux-session-manager/pkg/sink"
)

// S6 - startup side effects. A window-level command and a pane's commands
// must land, in that order, only after the window's final select-layout.
func TestBackendStartCommandOrdering(t *testing.T) {
	s := &sink.RecordingSink{
		Fail: map[string]error{
			"tmux\x00has-session\x00-t\x00demo": errFail,
		},
		Scripted: map[string]string{
			"tmux\x00display-message\x00-p\x00width: #{window_width}\nheight: #{window_height}": "width: 80\nheight: 24",
			"tmux\x00new-window\x00-Pd\x00-t\x00demo\x00-n\x00main\x00-c\x00.\x00-F\x00#{window_id}": "@1",
			"tmux\x00display-message\x00-t\x00@1\x00-p\x00#P":                                       "%5",
		},
	}
	b := NewBackend(s)

	sess := &sessionmodel.Session{
		Name: "demo",
		Path: ".",
		Windows: []sessionmodel.Window{
			{
				Name:     "main",
				Commands: []string{"echo window"},
				Panes: []sessionmodel.Pane{
					{Flex: 1, Path: ".", Commands: []string{"clear", "echo hi"}},
				},
			},
		},
	}

	if err := b.Start(sess, false); err != nil {
		t.Fatalf("Start: %v", err)
	}

	var lastSelectLayoutReal, firstSendKeys, splitIdx int = -1, -1, -1
	for i, call := range s.Calls {
		if call[1] == "select-layout" && call[len(call)-1] != "tiled" {
			lastSelectLayoutReal = i
		}
		if call[1] == "send-keys" && firstSendKeys == -1 {
			firstSendKeys = i
		}
		if call[1] == "split-window" && splitIdx == -1 {
			splitIdx = i
		}
	}
	if splitIdx != -1 {
		t.Fatalf("expected no split-window for a single-pane window, got one at %d", splitIdx)
	}
	if lastSelectLayoutReal == -1 {
		t.Fatal("no final select-layout call recorded")
	}
	if firstSendKeys == -1 {
		t.Fatal("no send-keys call recorded")
	}
	if firstSendKeys < lastSelectLayoutReal {
		t.Errorf("send-keys at %d fired before final select-layout at %d", firstSendKeys, lastSelectLayoutReal)
	}

	var sendKeys [][]string
	for _, call := range s.Calls {
		if call[1] == "send-keys" {
			sendKeys = append(sendKeys, call)
		}
	}
	if len(sendKeys) != 3 {
		t.Fatalf("send-keys calls = %d, want 3", len(sendKeys))
	}
	if sendKeys[0][3] != "@1" || sendKeys[0][4] != "echo window" {
		t.Errorf("sendKeys[0] = %v, want window-level command first", sendKeys[0])
	}
	if sendKeys[1][3] != "%5" || sendKeys[1][4] != "clear" {
		t.Errorf("sendKeys[1] = %v, want pane command 'clear'", sendKeys[1])
	}
	if sendKeys[2][3] != "%5" || sendKeys[2][4] != "echo hi" {
		t.Errorf("sendKeys[2] = %v, want pane command 'echo hi'", sendKeys[2])
	}

	finalLayout := s.Calls[lastSelectLayoutReal][len(s.Calls[lastSelectLayoutReal])-1]
	if !strings.HasPrefix(finalLayout, "b262,80x24,0,0,5") {
		t.Errorf("final layout = %q, want prefix b262,80x24,0,0,5", finalLayout)
	}
}

// CurrentSessionName resolves via display-message -p "#S" when called from
// inside a client, and refuses outside of one rather than guessing.
func TestBackendCurrentSessionName(t *testing.T) {
	s := &sink.RecordingSink{
		Scripted: map[string]string{
			"tmux\x00display-message\x00-p\x00#S": "demo",
		},
	}
	b := NewBackend(s)

	t.Setenv("TMUX", "/tmp/tmux-1000/default,1234,0")
	name, err := b.CurrentSessionName()
	if err != nil {
		t.Fatalf("CurrentSessionName: %v", err)
	}
	if name != "demo" {
		t.Errorf("name = %q, want %q", name, "demo")
	}
}

func TestBackendCurrentSessionNameOutsideClient(t *testing.T) {
	s := &sink.RecordingSink{}
	b := NewBackend(s)

	t.Setenv("TMUX", "")
	if _, err := b.CurrentSessionName(); err == nil {
		t.Fatal("expected an error resolving the current session outside tmux")
	}
}

// Starting against an already-existing session is a no-op unless attach is
// requested (spec.md §7: SessionAlreadyExists is informational, not fatal).
func TestBackendStartExistingSessionNoop(t *testing.T) {
	s := &sink.RecordingSink{}
	b := NewBackend(s)
	sess := &sessionmodel.Session{
		Name: "demo",
		Path: ".",
		Windows: []sessionmodel.Window{
			{Name: "main", Panes: []sessionmodel.Pane{{Flex: 1, Path: "."}}},
		},
	}
	if err := b.Start(sess, false); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if len(s.Calls) != 1 {
		t.Fatalf("calls = %d, want 1 (just has-session)", len(s.Calls))
	}
}
