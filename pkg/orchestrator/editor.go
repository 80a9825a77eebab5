package orchestrator

import (
	"os"
	"os/exec"
)

// EditorLauncher opens a file in the user's editor. It is a distinct seam
// from sink.Sink: an editor invocation needs the real terminal's stdio
// wired through, which a Sink (built for capturing/discarding output) does
// not model, but it still needs to be fakeable in tests.
type EditorLauncher interface {
	Launch(editorCmd, path string) error
}

// execEditor shells out to the real editor with stdio passthrough, the
// same real-terminal-takeover shape as new_config/edit_config's final
// command in original_source/src/rmux/mod.rs.
type execEditor struct{}

// NewEditorLauncher returns the real, subprocess-backed EditorLauncher.
func NewEditorLauncher() EditorLauncher {
	return execEditor{}
}

func (execEditor) Launch(editorCmd, path string) error {
	cmd := exec.Command(editorCmd, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
