package core

import (
	"fmt"
	"sort"
)

// Action represents a semantic environment action, abstracted from the
// integer codes a driver sends.
type Action int

const (
	ActionNone      Action = iota
	ActionLeft             // shift the piece one column left
	ActionRight            // shift the piece one column right
	ActionRotateCW         // quarter turn clockwise
	ActionRotateCCW        // quarter turn counter-clockwise
	ActionSoftDrop         // move the piece one row down
	ActionHardDrop         // drop and lock the piece
)

var actionNames = map[Action]string{
	ActionNone:      "none",
	ActionLeft:      "left",
	ActionRight:     "right",
	ActionRotateCW:  "rotate_cw",
	ActionRotateCCW: "rotate_ccw",
	ActionSoftDrop:  "soft_drop",
	ActionHardDrop:  "hard_drop",
}

// String returns the configuration name of the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ParseAction converts a configuration name into an Action.
func ParseAction(name string) (Action, bool) {
	for a, n := range actionNames {
		if n == name {
			return a, true
		}
	}
	return ActionNone, false
}

// ActionMap translates driver codes into actions. Codes without an entry
// resolve to ActionNone.
type ActionMap struct {
	actions map[int]Action
}

// NewActionMap builds a map from code -> action name pairs.
func NewActionMap(names map[int]string) (ActionMap, error) {
	m := ActionMap{actions: make(map[int]Action, len(names))}
	for code, name := range names {
		a, ok := ParseAction(name)
		if !ok {
			return ActionMap{}, fmt.Errorf("core: unknown action %q for code %d", name, code)
		}
		m.actions[code] = a
	}
	return m, nil
}

// Lookup returns the action for a code and whether the code is mapped.
func (m ActionMap) Lookup(code int) (Action, bool) {
	a, ok := m.actions[code]
	if !ok {
		return ActionNone, false
	}
	return a, true
}

// Codes returns the mapped codes in ascending order.
func (m ActionMap) Codes() []int {
	codes := make([]int, 0, len(m.actions))
	for code := range m.actions {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	return codes
}

// Len returns the number of mapped codes.
func (m ActionMap) Len() int {
	return len(m.actions)
}
