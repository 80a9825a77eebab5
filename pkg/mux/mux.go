// Package mux defines the narrow capability set shared by the tmux and
// zellij backends, so the orchestrator can dispatch to either without
// knowing which one it's talking to.
package mux

import "tmux-session-manager/pkg/sessionmodel"

// Capability is implemented once per backend (tmux, zellij). Verbs a
// backend cannot support surface ErrNotImplemented rather than silently
// succeeding.
type Capability interface {
	Start(session *sessionmodel.Session, attach bool) error
	Stop(name string) error
	Switch(name string) error
	ListSessions() ([]string, error)
	GetSession(name string) (*sessionmodel.Session, error)
}

// ErrNotImplemented is returned by backend verbs that are explicitly out of
// scope for that backend (see SPEC_FULL.md §8, zellij stop/list/get).
type ErrNotImplemented struct {
	Backend string
	Verb    string
}

func (e *ErrNotImplemented) Error() string {
	return e.Backend + ": " + e.Verb + " is not implemented"
}
