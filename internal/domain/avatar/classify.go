package avatar

import "strings"

// rule maps any of its keywords to an action. Rules are tested in order.
type rule struct {
	keywords []string
	action   Action
}

var rules = [...]rule{
	{keywords: []string{"walk"}, action: ActionWalk},
	{keywords: []string{"wave", "hello"}, action: ActionWave},
	{keywords: []string{"point"}, action: ActionPoint},
	{keywords: []string{"safety"}, action: ActionSafety},
}

var explanations = map[Action]string{
	ActionWalk:   "🤖 AI: Avatar walks to destination. Pathfinding calculated, walking animation activated.",
	ActionWave:   "🤖 AI: Avatar waves in greeting. Social intent detected, waving animation triggered.",
	ActionPoint:  "🤖 AI: Avatar points at target. Direction determined, pointing animation played.",
	ActionSafety: "🤖 AI: Avatar demonstrates safety posture. Training-appropriate animation selected.",
	ActionIdle:   "🤖 AI: Command understood. Avatar in ready position.",
}

var pipelineSteps = [...]string{"Text", "Intent", "Animation", "3D Playback"}

// PipelineSteps returns the simulated stages a command passes through.
func PipelineSteps() []string {
	out := make([]string, len(pipelineSteps))
	copy(out, pipelineSteps[:])
	return out
}

// Classify resolves a command to an action and its explanation. Precedence is
// walk > wave/hello > point > safety > idle.
func Classify(input string) (Action, string) {
	text := strings.ToLower(input)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(text, kw) {
				return r.action, explanations[r.action]
			}
		}
	}
	return ActionIdle, explanations[ActionIdle]
}

// Explain returns the explanation Classify reports for a.
func Explain(a Action) string {
	return explanations[a]
}

// IsBlank reports whether input should be treated as no submission.
func IsBlank(input string) bool {
	return strings.TrimSpace(input) == ""
}
