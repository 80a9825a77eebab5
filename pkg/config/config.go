// Package config resolves runtime configuration from (in priority order)
// CLI flags, environment variables, then defaults - the same precedence and
// env-var-overlay shape as the teacher's pkg/config/config.go, trimmed to
// what a session orchestrator actually needs: where config documents live,
// which editor to shell out to, and which multiplexer backend to drive.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// EnvKeys names the environment variables Resolve consults.
type EnvKeys struct {
	ConfigDir string
	EditorCmd string
	Backend   string
	Debug     string
}

// DefaultEnvKeys returns the canonical env variable names.
func DefaultEnvKeys() EnvKeys {
	return EnvKeys{
		ConfigDir: "TMUX_SESSION_MANAGER_CONFIG_DIR",
		EditorCmd: "TMUX_SESSION_MANAGER_EDITOR",
		Backend:   "TMUX_SESSION_MANAGER_BACKEND",
		Debug:     "TMUX_SESSION_MANAGER_DEBUG",
	}
}

// Config is the resolved runtime configuration.
type Config struct {
	// ConfigDir holds one YAML document per known session name.
	ConfigDir string
	// EditorCmd is executed directly (no shell, inheriting stdio) with the
	// config path as its one argument, by the new and edit verbs.
	EditorCmd string
	// Backend selects which mux.Capability implementation to drive: "tmux" or "zellij".
	Backend string
	Debug   bool
}

// Resolve builds a Config from defaults overlaid with environment variables.
// The cmd layer overrides individual fields afterward from CLI flags, which
// take highest priority.
func Resolve() Config {
	return ResolveWithEnv(DefaultEnvKeys())
}

func ResolveWithEnv(keys EnvKeys) Config {
	cfg := defaultConfig()

	if v := strings.TrimSpace(os.Getenv(keys.ConfigDir)); v != "" {
		cfg.ConfigDir = ExpandHome(v)
	}
	if v := strings.TrimSpace(os.Getenv(keys.EditorCmd)); v != "" {
		cfg.EditorCmd = v
	}
	if v := strings.TrimSpace(os.Getenv(keys.Backend)); v != "" {
		cfg.Backend = v
	}
	if v := strings.TrimSpace(os.Getenv(keys.Debug)); v != "" {
		cfg.Debug = parseBool(v, cfg.Debug)
	}

	return cfg
}

func defaultConfig() Config {
	home, _ := os.UserHomeDir()
	if home == "" {
		home = os.Getenv("HOME")
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vim"
	}

	return Config{
		ConfigDir: filepath.Join(home, ".config", "tmux-session-manager"),
		EditorCmd: editor,
		Backend:   "tmux",
		Debug:     false,
	}
}

// ExpandHome expands a leading "~" or "~/..." against $HOME.
func ExpandHome(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = os.Getenv("HOME")
	}
	if p == "~" {
		if home != "" {
			return home
		}
		return p
	}
	if strings.HasPrefix(p, "~/") && home != "" {
		return filepath.Join(home, p[2:])
	}
	return p
}

func parseBool(v string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}
