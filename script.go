package marquee

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in a script.
type scriptStep struct {
	Action string `json:"action"`
	Text   string `json:"text,omitempty"`
	Ticks  int    `json:"ticks,omitempty"`
	Label  string `json:"label,omitempty"`
}

// scriptFile is the top-level JSON structure for a script.
type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Script sequences text commits across ticks for automated runs. Actions
// are "commit" (text), "wait" (ticks) and "dump" (logs the lit set under
// label).
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON script.
func LoadScript(jsonData []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(jsonData, &f); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range f.Steps {
		switch st.Action {
		case "commit", "wait", "dump":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: f.Steps}, nil
}

// Done reports whether every step has run.
func (s *Script) Done() bool {
	return s.done
}

// Step runs the script for one tick against m. Call it before m.Update.
func (s *Script) Step(m *Marquee) {
	s.step(m)
}

func (s *Script) step(m *Marquee) {
	if s.done {
		return
	}
	if s.waitCount > 0 {
		s.waitCount--
		return
	}
	// Run instant actions until one consumes the tick.
	for s.cursor < len(s.steps) {
		st := s.steps[s.cursor]
		s.cursor++
		switch st.Action {
		case "commit":
			m.Commit(st.Text)
		case "dump":
			Logger().Info("marquee: lit dump", "label", st.Label, "tick", m.frame.Tick, "lit", m.frame.Lit.Len(), "grid", "\n"+m.frame.Lit.String())
		case "wait":
			if st.Ticks > 1 {
				s.waitCount = st.Ticks - 1 // this tick counts as one
			}
			return
		}
	}
	if s.waitCount == 0 {
		s.done = true
	}
}
