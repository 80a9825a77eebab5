package tmux

import (
	"reflect"
	"testing"

	"tmux-session-manager/pkg/sink"
)

func TestClientArgvShapes(t *testing.T) {
	s := &sink.RecordingSink{}
	c := NewClient(s)

	_ = c.SessionExists("demo")
	_, _ = c.NewWindow("demo", "win", "/tmp")
	_, _ = c.SplitWindow("@1", "/tmp")
	_, _ = c.CurrentPane("@1")
	_ = c.SelectLayout("@1", "abcd,80x24,0,0,5")
	_ = c.SendKeys("%5", "echo hi")
	_ = c.KillWindow("demo:1")
	_ = c.MoveWindows("demo")

	want := [][]string{
		{"tmux", "has-session", "-t", "demo"},
		{"tmux", "new-window", "-Pd", "-t", "demo", "-n", "win", "-c", "/tmp", "-F", "#{window_id}"},
		{"tmux", "split-window", "-t", "@1", "-c", "/tmp", "-P", "-F", "#{pane_id}"},
		{"tmux", "display-message", "-t", "@1", "-p", "#P"},
		{"tmux", "select-layout", "-t", "@1", "abcd,80x24,0,0,5"},
		{"tmux", "send-keys", "-t", "%5", "echo hi", "C-m"},
		{"tmux", "kill-window", "-t", "demo:1"},
		{"tmux", "move-window", "-r", "-s", "demo", "-t", "demo"},
	}
	if !reflect.DeepEqual(s.Argv(), want) {
		t.Errorf("argv =\n%v\nwant\n%v", s.Argv(), want)
	}
}

func TestClientSessionExistsFalseOnFailure(t *testing.T) {
	s := &sink.RecordingSink{Fail: map[string]error{
		"tmux\x00has-session\x00-t\x00demo": errFail,
	}}
	c := NewClient(s)
	if c.SessionExists("demo") {
		t.Error("SessionExists = true, want false")
	}
}

func TestClientWindowDimensionsParsesReply(t *testing.T) {
	key := "tmux\x00display-message\x00-p\x00width: #{window_width}\nheight: #{window_height}"
	s := &sink.RecordingSink{Scripted: map[string]string{key: "width: 80\nheight: 24"}}
	c := NewClient(s)

	d, err := c.WindowDimensions()
	if err != nil {
		t.Fatalf("WindowDimensions: %v", err)
	}
	if d.Width != 80 || d.Height != 24 {
		t.Errorf("Dimensions = %+v, want {80 24}", d)
	}
}

func TestTargetString(t *testing.T) {
	cases := []struct {
		t    Target
		want string
	}{
		{NewTarget("demo"), "demo"},
		{NewTarget("demo").WithWindow("1"), "demo:1"},
		{NewTarget("demo").WithWindow("1").WithPane("2"), "demo:1.2"},
		{NewTarget("my session"), "my session"},
	}
	for _, c := range cases {
		if got := c.t.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}

var errFail = &fakeErr{"boom"}

type fakeErr struct{ msg string }

func (e *fakeErr) Error() string { return e.msg }
