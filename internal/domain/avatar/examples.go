package avatar

// Example is a canned command offered as a one-click shortcut.
type Example struct {
	Name    string `json:"name"`
	Command string `json:"command"`
	Label   string `json:"label"`
	Action  Action `json:"action"`
}

var examples = [...]Example{
	{Name: "walk", Command: "walk to table", Label: "🚶 Walk to table", Action: ActionWalk},
	{Name: "wave", Command: "wave hello", Label: "👋 Wave hello", Action: ActionWave},
	{Name: "point", Command: "point at screen", Label: "👉 Point at screen", Action: ActionPoint},
}

// QuickExamples returns the canned commands in display order.
func QuickExamples() []Example {
	out := make([]Example, len(examples))
	copy(out, examples[:])
	return out
}

// LookupExample finds a quick example by name.
func LookupExample(name string) (Example, bool) {
	for _, e := range examples {
		if e.Name == name {
			return e, true
		}
	}
	return Example{}, false
}
