// Package avatar turns short natural-language commands into avatar actions and
// computes the procedural pose for an action at a point in time.
package avatar

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownAction is returned by ParseAction for names outside the action set.
var ErrUnknownAction = errors.New("unknown avatar action")

// Action is the discrete animation state of the avatar.
type Action string

// The closed set of actions.
const (
	ActionIdle   Action = "idle"
	ActionWalk   Action = "walk"
	ActionWave   Action = "wave"
	ActionPoint  Action = "point"
	ActionSafety Action = "safety"
)

var actions = [...]Action{ActionIdle, ActionWalk, ActionWave, ActionPoint, ActionSafety}

// Actions lists every action in a stable order.
func Actions() []Action {
	return slices.Clone(actions[:])
}

// Valid reports whether a belongs to the action set.
func (a Action) Valid() bool {
	return slices.Contains(actions[:], a)
}

func (a Action) String() string { return string(a) }

// ParseAction parses an action name, ignoring case and surrounding space.
func ParseAction(s string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	if !a.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
	return a, nil
}
