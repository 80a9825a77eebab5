// Package sessionmodel defines Session/Window/Pane and their strict YAML
// (de)serialization.
//
// Grounded on the teacher's pkg/spec/spec.go for load/validate structure and
// on original_source/src/app/config.rs for the exact field set and
// defaults (flex=1, path=".", flex_direction=row, startup alias commands).
package sessionmodel

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"tmux-session-manager/pkg/errs"
)

// FlexDirection controls how a container's children partition its extent.
type FlexDirection string

const (
	Row    FlexDirection = "row"
	Column FlexDirection = "column"
)

// Session is the root document.
type Session struct {
	Name     string            `yaml:"name"`
	Path     string            `yaml:"path,omitempty"`
	Env      map[string]string `yaml:"env,omitempty"`
	Startup  []string          `yaml:"startup,omitempty"`
	Shutdown []string          `yaml:"shutdown,omitempty"`
	Windows  []Window          `yaml:"windows"`
}

// Window is an ordered, non-empty list of top-level Panes plus window-level
// commands.
type Window struct {
	Name          string        `yaml:"name"`
	Path          string        `yaml:"path,omitempty"`
	FlexDirection FlexDirection `yaml:"flex_direction,omitempty"`
	Panes         []Pane        `yaml:"panes"`
	Commands      []string      `yaml:"commands,omitempty"`
}

// Pane is the recursive node: either an internal container (Panes non-nil)
// or a leaf (Panes nil), never both semantically - a leaf simply has no
// children.
type Pane struct {
	Flex          int               `yaml:"flex,omitempty"`
	Path          string            `yaml:"path,omitempty"`
	Style         string            `yaml:"style,omitempty"`
	Commands      []string          `yaml:"commands,omitempty"`
	Env           map[string]string `yaml:"env,omitempty"`
	FlexDirection FlexDirection     `yaml:"flex_direction,omitempty"`
	Panes         []Pane            `yaml:"panes,omitempty"`
}

// IsLeaf reports whether this pane hosts a real terminal cell (no children).
func (p Pane) IsLeaf() bool {
	return len(p.Panes) == 0
}

// EffectiveFlex returns p.Flex with the invariant "0 is treated as 1"
// applied (spec.md §3 invariant 5).
func (p Pane) EffectiveFlex() int {
	if p.Flex <= 0 {
		return 1
	}
	return p.Flex
}

// EffectiveFlexDirection returns the pane's flex_direction with the default
// (row) applied.
func (p Pane) EffectiveFlexDirection() FlexDirection {
	if p.FlexDirection == "" {
		return Row
	}
	return p.FlexDirection
}

// EffectiveFlexDirection for a Window, same default as Pane.
func (w Window) EffectiveFlexDirection() FlexDirection {
	if w.FlexDirection == "" {
		return Row
	}
	return w.FlexDirection
}

// rawDoc/rawWindow/rawPane mirror the YAML shape so Load can both accept
// the "commands" alias for Session's startup list and, with KnownFields,
// reject unknown keys at every level.
type rawDoc struct {
	Name     string            `yaml:"name"`
	Path     string            `yaml:"path"`
	Env      map[string]string `yaml:"env"`
	Startup  []string          `yaml:"startup"`
	Commands []string          `yaml:"commands"`
	Shutdown []string          `yaml:"shutdown"`
	Windows  []rawWindow       `yaml:"windows"`
}

type rawWindow struct {
	Name          string    `yaml:"name"`
	Path          string    `yaml:"path"`
	FlexDirection string    `yaml:"flex_direction"`
	Panes         []rawPane `yaml:"panes"`
	Commands      []string  `yaml:"commands"`
}

type rawPane struct {
	Flex          int               `yaml:"flex"`
	Path          string            `yaml:"path"`
	Style         string            `yaml:"style"`
	Commands      []string          `yaml:"commands"`
	Env           map[string]string `yaml:"env"`
	FlexDirection string            `yaml:"flex_direction"`
	Panes         []rawPane         `yaml:"panes"`
}

// Load parses and validates a session document from YAML bytes, rejecting
// unknown keys at every level.
func Load(data []byte) (*Session, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var raw rawDoc
	if err := dec.Decode(&raw); err != nil {
		return nil, &errs.ConfigInvalid{Reasons: []string{err.Error()}}
	}

	sess := fromRawDoc(raw)
	if err := sess.Validate(); err != nil {
		return nil, err
	}
	return sess, nil
}

func fromRawDoc(raw rawDoc) *Session {
	path := raw.Path
	if path == "" {
		path = "."
	}
	startup := raw.Startup
	if len(startup) == 0 {
		startup = raw.Commands
	}

	windows := make([]Window, 0, len(raw.Windows))
	for _, rw := range raw.Windows {
		windows = append(windows, Window{
			Name:          rw.Name,
			Path:          rw.Path,
			FlexDirection: FlexDirection(rw.FlexDirection),
			Panes:         fromRawPanes(rw.Panes),
			Commands:      rw.Commands,
		})
	}

	return &Session{
		Name:     raw.Name,
		Path:     path,
		Env:      raw.Env,
		Startup:  startup,
		Shutdown: raw.Shutdown,
		Windows:  windows,
	}
}

func fromRawPanes(raws []rawPane) []Pane {
	if len(raws) == 0 {
		return nil
	}
	panes := make([]Pane, 0, len(raws))
	for _, rp := range raws {
		path := rp.Path
		if path == "" {
			path = "."
		}
		panes = append(panes, Pane{
			Flex:          rp.Flex,
			Path:          path,
			Style:         rp.Style,
			Commands:      rp.Commands,
			Env:           rp.Env,
			FlexDirection: FlexDirection(rp.FlexDirection),
			Panes:         fromRawPanes(rp.Panes),
		})
	}
	return panes
}

// Validate performs structural validation, aggregating every problem found
// (spec.md §7: "validation errors are aggregated ... before any side
// effects").
func (s *Session) Validate() error {
	var reasons []string

	if strings.TrimSpace(s.Name) == "" {
		reasons = append(reasons, "session.name is required")
	}
	if s.Path == "" {
		s.Path = "."
	}
	if len(s.Windows) == 0 {
		reasons = append(reasons, "session must define at least one window")
	}

	for i := range s.Windows {
		w := &s.Windows[i]
		if strings.TrimSpace(w.Name) == "" {
			reasons = append(reasons, fmt.Sprintf("windows[%d].name is required", i))
		}
		if len(w.Panes) == 0 {
			reasons = append(reasons, fmt.Sprintf("windows[%d](%s) must define at least one pane", i, w.Name))
		}
		switch w.FlexDirection {
		case "", Row, Column:
		default:
			reasons = append(reasons, fmt.Sprintf("windows[%d](%s).flex_direction must be row or column", i, w.Name))
		}
		validatePanes(w.Panes, fmt.Sprintf("windows[%d](%s)", i, w.Name), &reasons)
	}

	if len(reasons) > 0 {
		return &errs.ConfigInvalid{Reasons: reasons}
	}
	return nil
}

func validatePanes(panes []Pane, path string, reasons *[]string) {
	for i := range panes {
		p := &panes[i]
		loc := fmt.Sprintf("%s.panes[%d]", path, i)
		if p.Flex < 0 {
			*reasons = append(*reasons, fmt.Sprintf("%s.flex must be >= 0", loc))
		}
		switch p.FlexDirection {
		case "", Row, Column:
		default:
			*reasons = append(*reasons, fmt.Sprintf("%s.flex_direction must be row or column", loc))
		}
		if len(p.Panes) > 0 {
			validatePanes(p.Panes, loc, reasons)
		}
	}
}

// Marshal serializes a Session back to YAML, in the same field order/shape
// Load accepts.
func (s *Session) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ResolvePath applies spec.md §4.3's path-resolution rule: absolute/"~" is
// left untouched; "." or empty inherits the enclosing path; anything else
// is joined onto the enclosing path.
func ResolvePath(path, enclosing string) string {
	switch {
	case path == "":
		return enclosing
	case strings.HasPrefix(path, "/"), strings.HasPrefix(path, "~"):
		return path
	case path == ".":
		return enclosing
	default:
		return strings.TrimRight(enclosing, "/") + "/" + path
	}
}
