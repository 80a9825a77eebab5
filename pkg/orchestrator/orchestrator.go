// Package orchestrator binds the CLI verbs (new/edit/delete/list/start/
// stop/yaml) to a config directory on disk and a pkg/mux.Capability
// backend. It never talks to tmux or zellij directly - that's the
// backend's job - and never parses flags - that's cmd/tmux-session-manager's
// job.
//
// Grounded on original_source/src/rmux/mod.rs::Rmux, whose new_config/
// edit_config/delete_config/start_session/stop_session/list_config methods
// this package's methods mirror one-for-one.
package orchestrator

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"tmux-session-manager/pkg/config"
	"tmux-session-manager/pkg/errs"
	"tmux-session-manager/pkg/mux"
	"tmux-session-manager/pkg/sessionmodel"
)

// Orchestrator is the backend-agnostic glue between CLI verbs and a
// concrete mux.Capability implementation.
type Orchestrator struct {
	ConfigDir   string
	EditorCmd   string
	BackendName string
	Backend     mux.Capability
	Editor      EditorLauncher
	Stdin       io.Reader
	Stdout      io.Writer
}

// New builds an Orchestrator from a resolved Config and an already-selected
// backend (the caller picks tmux.NewBackend or zellij.New per cfg.Backend).
func New(cfg config.Config, backend mux.Capability) *Orchestrator {
	return &Orchestrator{
		ConfigDir:   cfg.ConfigDir,
		EditorCmd:   cfg.EditorCmd,
		BackendName: cfg.Backend,
		Backend:     backend,
		Editor:      NewEditorLauncher(),
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
	}
}

func (o *Orchestrator) configPath(name string) string {
	return filepath.Join(o.ConfigDir, name+".yaml")
}

const localConfigName = ".tmux-session-manager.yaml"

// NewConfig creates a session config: either copied from an existing one
// (copy != ""), or rendered from the baked-in template, in either the
// config directory (named) or the current directory (pwd), then opens it
// in $EDITOR - mirroring Rmux::new_config exactly, including editor
// invocation as the final, always-run step.
func (o *Orchestrator) NewConfig(name, copy string, pwd bool) error {
	var dest string
	if pwd {
		dest = localConfigName
	} else {
		if err := os.MkdirAll(o.ConfigDir, 0o755); err != nil {
			return &errs.IOError{Op: "mkdir config dir", Err: err}
		}
		dest = o.configPath(name)
	}

	if copy != "" {
		src := o.configPath(copy)
		data, err := os.ReadFile(src)
		if err != nil {
			return &errs.ConfigNotFound{Path: src}
		}
		if err := os.WriteFile(dest, data, 0o644); err != nil {
			return &errs.IOError{Op: "copy config", Err: err}
		}
	} else {
		body := strings.ReplaceAll(configTemplate, "{name}", name)
		if err := os.WriteFile(dest, []byte(body), 0o644); err != nil {
			return &errs.IOError{Op: "write config template", Err: err}
		}
	}

	return o.Editor.Launch(o.EditorCmd, dest)
}

// EditConfig opens an existing named config in $EDITOR.
func (o *Orchestrator) EditConfig(name string) error {
	path := o.configPath(name)
	if _, err := os.Stat(path); err != nil {
		return &errs.ConfigNotFound{Path: path}
	}
	return o.Editor.Launch(o.EditorCmd, path)
}

// DeleteConfig removes a named config, prompting for confirmation unless
// force is set.
func (o *Orchestrator) DeleteConfig(name string, force bool) error {
	path := o.configPath(name)
	if !force {
		fmt.Fprintf(o.Stdout, "Are you sure you want to delete %s? [y/N]\n", name)
		reader := bufio.NewReader(o.Stdin)
		line, _ := reader.ReadString('\n')
		if strings.TrimSpace(line) != "y" {
			fmt.Fprintln(o.Stdout, "Aborting.")
			return nil
		}
	}
	if err := os.Remove(path); err != nil {
		return &errs.ConfigNotFound{Path: path}
	}
	return nil
}

// ListConfigs returns the stems of every ".yaml" file in the config dir,
// sorted.
func (o *Orchestrator) ListConfigs() ([]string, error) {
	entries, err := os.ReadDir(o.ConfigDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &errs.IOError{Op: "read config dir", Err: err}
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names, nil
}

// loadSession resolves and parses a session document: a named config from
// the config dir, or the local config in cwd when name is empty.
func (o *Orchestrator) loadSession(name string) (*sessionmodel.Session, error) {
	path := localConfigName
	if name != "" {
		path = o.configPath(name)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errs.ConfigNotFound{Path: path}
	}
	return sessionmodel.Load(data)
}

// Start loads the named (or local) config and realizes it via the active
// backend.
func (o *Orchestrator) Start(name string, attach bool) error {
	session, err := o.loadSession(name)
	if err != nil {
		return err
	}
	return o.Backend.Start(session, attach)
}

// Stop sends a session's shutdown commands (best-effort, if its config is
// still resolvable) and then tears it down via the active backend. The
// backend's own Stop never runs shutdown commands itself - Capability.Stop
// only receives a name, not a Session - so this is the one place they run.
func (o *Orchestrator) Stop(name string) error {
	if sender, ok := o.Backend.(shutdownSender); ok {
		if session, err := o.loadSession(name); err == nil {
			for _, cmd := range session.Shutdown {
				_ = sender.Send(name, cmd)
			}
		}
	}
	return o.Backend.Stop(name)
}

// shutdownSender is implemented by backends that can deliver a one-off
// command to a running session (tmux, via send-keys). Backends without a
// live command channel (zellij) simply skip shutdown commands.
type shutdownSender interface {
	Send(target, command string) error
}

// Switch attaches/switches the client to an already-running session.
func (o *Orchestrator) Switch(name string) error {
	return o.Backend.Switch(name)
}

// ListSessions lists the live sessions known to the active backend.
func (o *Orchestrator) ListSessions() ([]string, error) {
	return o.Backend.ListSessions()
}

// currentSessionNamer is implemented by backends that can resolve "the
// session the calling client is attached to" (tmux, via display-message).
// Backends without that notion (zellij) don't implement it, and yaml with
// no name surfaces mux.ErrNotImplemented on them.
type currentSessionNamer interface {
	CurrentSessionName() (string, error)
}

// YAML reconstructs a live session's YAML document via the active
// backend's inverse operation. An empty name resolves to the backend's
// current session rather than requiring one to be named.
func (o *Orchestrator) YAML(name string) (string, error) {
	if name == "" {
		namer, ok := o.Backend.(currentSessionNamer)
		if !ok {
			return "", &mux.ErrNotImplemented{Backend: o.BackendName, Verb: "yaml (current session)"}
		}
		resolved, err := namer.CurrentSessionName()
		if err != nil {
			return "", err
		}
		name = resolved
	}

	session, err := o.Backend.GetSession(name)
	if err != nil {
		return "", err
	}
	data, err := session.Marshal()
	if err != nil {
		return "", err
	}
	return string(data), nil
}
