package sink

import "strings"

// RecordingSink is an in-memory Sink for tests. It records every argv it
// was called with, in order, and returns scripted stdout looked up by exact
// argv match; RunCapture falls back to the next entry of NextIDs, then to
// an empty string.
type RecordingSink struct {
	Calls [][]string

	// Scripted maps a joined-argv key (strings.Join(argv, "\x00")) to the
	// stdout RunCapture should return for that exact call.
	Scripted map[string]string

	// NextIDs is consumed in order for calls whose scripted output isn't
	// present; useful for auto-incrementing ids like "#{window_id}"/
	// "#{pane_id}" replies without hand-scripting every call.
	NextIDs []string
	idPos   int

	// Fail, if set, is returned by every subsequent Run/RunCapture call
	// whose joined argv matches a key in it.
	Fail map[string]error
}

// Run records argv and honors Fail/Scripted, but never consumes NextIDs:
// Run is for side-effecting verbs (select-layout, send-keys, kill-window,
// ...) whose stdout nobody reads, and the common one - select-layout tiled
// after every pane in the engine's command sequence - must not desync the
// id assignment RunCapture callers (split-window, current-pane) are
// relying on.
func (s *RecordingSink) Run(argv []string) error {
	_, err := s.record(argv)
	return err
}

func (s *RecordingSink) RunCapture(argv []string) (string, error) {
	out, err := s.record(argv)
	if err != nil {
		return out, err
	}
	if out == "" && s.idPos < len(s.NextIDs) {
		out = s.NextIDs[s.idPos]
		s.idPos++
	}
	return out, nil
}

func (s *RecordingSink) record(argv []string) (string, error) {
	cp := append([]string(nil), argv...)
	s.Calls = append(s.Calls, cp)

	key := strings.Join(argv, "\x00")
	if s.Fail != nil {
		if err, ok := s.Fail[key]; ok {
			return "", err
		}
	}
	if s.Scripted != nil {
		if out, ok := s.Scripted[key]; ok {
			return out, nil
		}
	}
	return "", nil
}

// Argv returns a copy of the recorded argv sequence.
func (s *RecordingSink) Argv() [][]string {
	out := make([][]string, len(s.Calls))
	copy(out, s.Calls)
	return out
}
