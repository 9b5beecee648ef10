package scene

import "github.com/okian/nexera/internal/domain/types"

// LightKind distinguishes light sources.
type LightKind string

// Light kinds used by the viewer.
const (
	LightAmbient     LightKind = "ambient"
	LightDirectional LightKind = "directional"
)

// Camera is a perspective camera; FOV is vertical, in degrees.
type Camera struct {
	Position types.Vec3 `json:"position"`
	FOV      float64    `json:"fov"`
}

// Light is a scene light. Position is ignored for ambient lights.
type Light struct {
	Kind      LightKind  `json:"kind"`
	Position  types.Vec3 `json:"position,omitempty"`
	Intensity float64    `json:"intensity"`
}

// Grid is a floor helper grid.
type Grid struct {
	Size      float64 `json:"size"`
	Divisions int     `json:"divisions"`
}

// Viewer is the fixed camera, lighting and controls setup shared by both pages.
type Viewer struct {
	Camera   Camera  `json:"camera"`
	Lights   []Light `json:"lights"`
	Grid     *Grid   `json:"grid,omitempty"`
	Controls string  `json:"controls"`
}

// NewViewer returns the viewer setup. The asset page shows a helper grid, the
// avatar page a room instead.
func NewViewer(withGrid bool) Viewer {
	v := Viewer{
		Camera: Camera{Position: types.Vec3{X: 5, Y: 3, Z: 5}, FOV: 50},
		Lights: []Light{
			{Kind: LightAmbient, Intensity: 0.6},
			{Kind: LightDirectional, Position: types.Vec3{X: 5, Y: 5, Z: 5}, Intensity: 1},
		},
		Controls: "orbit",
	}
	if withGrid {
		v.Grid = &Grid{Size: 10, Divisions: 10}
	}
	return v
}
