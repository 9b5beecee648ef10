package avatar

import (
	"math"

	"github.com/okian/nexera/internal/domain/types"
)

// Baseline arm angle around Z; left is +restArmZ, right is -restArmZ.
const restArmZ = 0.3

// Sample is the pose for one frame: two arm rotations and a body offset.
type Sample struct {
	LeftArm  types.Euler `json:"left_arm"`
	RightArm types.Euler `json:"right_arm"`
	Body     types.Vec3  `json:"body"`
}

// Rest returns the baseline pose shared by every action.
func Rest() Sample {
	return Sample{
		LeftArm:  types.Euler{Z: restArmZ},
		RightArm: types.Euler{Z: -restArmZ},
	}
}

// Every oscillation in Pose repeats after this many seconds.
const posePeriod = 2 * math.Pi

// Pose computes the full pose for action at t seconds. Each call is
// independent of previous calls. Negative, NaN and infinite t are treated
// as 0.
func Pose(action Action, t float64) Sample {
	if t < 0 || math.IsNaN(t) || math.IsInf(t, 0) {
		t = 0
	}
	if t >= posePeriod {
		t = math.Mod(t, posePeriod)
	}
	s := Rest()
	switch action {
	case ActionWalk:
		s.LeftArm.Z = restArmZ + 0.3*math.Sin(5*t)
		s.RightArm.Z = -restArmZ + 0.3*math.Sin(5*t+math.Pi)
		s.Body.X = math.Sin(t) * 0.5
	case ActionWave:
		s.RightArm.Z = -restArmZ + 0.5*math.Sin(3*t)
	case ActionPoint:
		s.RightArm.Z = -0.8
		s.RightArm.Y = 0.3
	case ActionSafety:
		s.LeftArm.X = -0.5
		s.RightArm.X = -0.5
	}
	return s
}

// Frame pairs a pose with the time it was sampled at.
type Frame struct {
	T    float64 `json:"t"`
	Pose Sample  `json:"pose"`
}

// Track samples Pose n times starting at from, step seconds apart. n <= 0
// yields an empty track.
func Track(action Action, from, step float64, n int) []Frame {
	if n <= 0 {
		return []Frame{}
	}
	frames := make([]Frame, n)
	for i := range frames {
		t := from + float64(i)*step
		frames[i] = Frame{T: t, Pose: Pose(action, t)}
	}
	return frames
}
