package sink

import (
	"testing"

	"tmux-session-manager/pkg/errs"
)

func TestExecSinkRunCaptureTrimsTrailingNewline(t *testing.T) {
	s := &ExecSink{}
	out, err := s.RunCapture([]string{"printf", "hello\n"})
	if err != nil {
		t.Fatalf("RunCapture: %v", err)
	}
	if out != "hello" {
		t.Errorf("out = %q, want %q", out, "hello")
	}
}

func TestExecSinkRunNonZeroExit(t *testing.T) {
	s := &ExecSink{}
	err := s.Run([]string{"sh", "-c", "exit 3"})
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}
	var cmdErr *errs.MultiplexerCommandFailed
	if !asMultiplexerCommandFailed(err, &cmdErr) {
		t.Fatalf("error is not *errs.MultiplexerCommandFailed: %v", err)
	}
	if cmdErr.Code != 3 {
		t.Errorf("Code = %d, want 3", cmdErr.Code)
	}
}

func asMultiplexerCommandFailed(err error, target **errs.MultiplexerCommandFailed) bool {
	e, ok := err.(*errs.MultiplexerCommandFailed)
	if ok {
		*target = e
	}
	return ok
}

func TestExecSinkRunEmptyArgv(t *testing.T) {
	s := &ExecSink{}
	if err := s.Run(nil); err == nil {
		t.Fatal("expected error for empty argv")
	}
}
