package zellij

import (
	"os"
	"testing"

	"tmux-session-manager/pkg/sessionmodel"
	"tmux-session-manager/pkg/sink"
)

func TestBackendStartWritesLayoutAndAttaches(t *testing.T) {
	s := &sink.RecordingSink{}
	b := New(s)
	session := &sessionmodel.Session{
		Name: "zdemo",
		Path: ".",
		Windows: []sessionmodel.Window{
			{Name: "main", Panes: []sessionmodel.Pane{{Flex: 1, Path: "."}}},
		},
	}
	defer os.Remove("/tmp/zdemo.kdl")

	if err := b.Start(session, false); err != nil {
		t.Fatalf("Start: %v", err)
	}

	data, err := os.ReadFile("/tmp/zdemo.kdl")
	if err != nil {
		t.Fatalf("layout file not written: %v", err)
	}
	if len(data) == 0 {
		t.Error("layout file is empty")
	}

	want := []string{"zellij", "--layout", "/tmp/zdemo.kdl", "attach", "-c", "zdemo"}
	if len(s.Calls) != 2 {
		t.Fatalf("calls = %d, want 2 (session-exists check, then attach)", len(s.Calls))
	}
	got := s.Calls[1]
	for i, part := range want {
		if got[i] != part {
			t.Errorf("argv[%d] = %q, want %q", i, got[i], part)
		}
	}
}

func TestBackendUnimplementedVerbs(t *testing.T) {
	b := New(&sink.RecordingSink{})
	if _, err := b.ListSessions(); err == nil {
		t.Error("ListSessions should surface ErrNotImplemented")
	}
	if err := b.Stop("x"); err == nil {
		t.Error("Stop should surface ErrNotImplemented")
	}
	if _, err := b.GetSession("x"); err == nil {
		t.Error("GetSession should surface ErrNotImplemented")
	}
}
