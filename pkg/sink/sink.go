// Package sink abstracts execution of external shell invocations so the
// rest of the orchestrator never has to know whether it is talking to a
// real subprocess or a scripted recorder.
//
// Arguments are always passed as a vector, never shell-joined, eliminating
// quoting ambiguity (the source this was modeled on shell-joins everything;
// this rewrite does not, per the project's explicit design note).
package sink

// Sink runs an external command given as an argv vector.
type Sink interface {
	// Run executes argv[0] with argv[1:], discarding stdout/stderr on
	// success. Returns an error (typically *errs.MultiplexerCommandFailed)
	// on non-zero exit.
	Run(argv []string) error

	// RunCapture executes argv and returns stdout trimmed of trailing
	// newlines. Stderr is folded into the returned error on failure.
	RunCapture(argv []string) (string, error)
}
