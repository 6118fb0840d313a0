// Package sim replays scripted UI events against a layout controller on a
// virtual clock. It backs `console simulate` and doubles as a harness for
// reproducing layout bugs without a terminal.
package sim

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Op string

const (
	OpInit          Op = "init"
	OpReload        Op = "reload"
	OpResize        Op = "resize"
	OpToggleDesktop Op = "toggle-desktop"
	OpToggleMobile  Op = "toggle-mobile"
	OpCloseMobile   Op = "close-mobile"
	OpOutside       Op = "outside"
	OpNavigate      Op = "navigate"
	OpAdvance       Op = "advance"
)

// Script is a scripted session.
//
//	persisted: collapsed
//	steps:
//	  - init: 1200
//	  - toggle-desktop
//	  - resize: 500
//	  - toggle-mobile
//	  - outside: {insideSidebar: false, onToggle: false}
//	  - navigate
//	  - advance: 150ms
//	  - reload: 500
type Script struct {
	// Persisted seeds the preference store before the first step. Empty leaves it untouched.
	Persisted string `yaml:"persisted"`
	Steps     []Step `yaml:"steps"`
}

// Step is one event. Only the fields relevant to Op are set.
type Step struct {
	Op Op

	Width         float64
	Duration      time.Duration
	InsideSidebar bool
	OnToggle      bool
}

func (s Step) String() string {
	switch s.Op {
	case OpInit, OpReload, OpResize:
		return fmt.Sprintf("%s %s", s.Op, strconv.FormatFloat(s.Width, 'f', -1, 64))
	case OpAdvance:
		return fmt.Sprintf("%s %s", s.Op, s.Duration)
	case OpOutside:
		return fmt.Sprintf("%s insideSidebar=%t onToggle=%t", s.Op, s.InsideSidebar, s.OnToggle)
	default:
		return string(s.Op)
	}
}

type outsideArgs struct {
	InsideSidebar bool `yaml:"insideSidebar"`
	OnToggle      bool `yaml:"onToggle"`
}

// UnmarshalYAML accepts either a bare op ("navigate") or a single-key map
// from op to its argument ("resize: 500").
func (s *Step) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		op := Op(strings.TrimSpace(n.Value))
		switch op {
		case OpToggleDesktop, OpToggleMobile, OpCloseMobile, OpNavigate, OpOutside:
			*s = Step{Op: op}
			return nil
		default:
			return fmt.Errorf("line %d: step %q needs an argument or is unknown", n.Line, n.Value)
		}

	case yaml.MappingNode:
		if len(n.Content) != 2 {
			return fmt.Errorf("line %d: a step must have exactly one key", n.Line)
		}
		op := Op(strings.TrimSpace(n.Content[0].Value))
		arg := n.Content[1]
		st := Step{Op: op}
		switch op {
		case OpInit, OpReload, OpResize:
			if err := arg.Decode(&st.Width); err != nil {
				return fmt.Errorf("line %d: %s width: %w", arg.Line, op, err)
			}
			if st.Width < 0 {
				return fmt.Errorf("line %d: %s width must be non-negative", arg.Line, op)
			}
		case OpAdvance:
			var raw string
			if err := arg.Decode(&raw); err != nil {
				return fmt.Errorf("line %d: advance: %w", arg.Line, err)
			}
			d, err := time.ParseDuration(strings.TrimSpace(raw))
			if err != nil {
				return fmt.Errorf("line %d: advance: %w", arg.Line, err)
			}
			if d < 0 {
				return fmt.Errorf("line %d: advance must be non-negative", arg.Line)
			}
			st.Duration = d
		case OpOutside:
			var a outsideArgs
			if err := arg.Decode(&a); err != nil {
				return fmt.Errorf("line %d: outside: %w", arg.Line, err)
			}
			st.InsideSidebar = a.InsideSidebar
			st.OnToggle = a.OnToggle
		case OpToggleDesktop, OpToggleMobile, OpCloseMobile, OpNavigate:
			// Argument ignored.
		default:
			return fmt.Errorf("line %d: unknown step %q", n.Content[0].Line, op)
		}
		*s = st
		return nil

	default:
		return fmt.Errorf("line %d: unsupported step syntax", n.Line)
	}
}

// Parse decodes a script and checks that it starts with init.
func Parse(r io.Reader) (*Script, error) {
	var sc Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty script")
		}
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("script has no steps")
	}
	if sc.Steps[0].Op != OpInit {
		return nil, fmt.Errorf("script must start with init (got %s)", sc.Steps[0].Op)
	}
	for i, st := range sc.Steps[1:] {
		if st.Op == OpInit {
			return nil, fmt.Errorf("step %d: init may only appear first; use reload", i+2)
		}
	}
	return &sc, nil
}
