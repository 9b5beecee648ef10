// Package scene describes what the external renderer draws: primitive groups
// for resolved assets, the avatar rig and the fixed viewer setup. Values here
// are plain data; the renderer owns meshes, materials and the draw loop.
package scene

import (
	"math"

	"github.com/okian/nexera/internal/domain/asset"
	"github.com/okian/nexera/internal/domain/types"
)

// Kind is a primitive geometry understood by the renderer.
type Kind string

// Supported geometries. Args follow the renderer's constructor order:
// box (w, h, d), sphere (r, wSeg, hSeg, phiStart, phiLen, thetaStart, thetaLen),
// cylinder (rTop, rBottom, h, radialSeg).
const (
	KindBox      Kind = "box"
	KindSphere   Kind = "sphere"
	KindCylinder Kind = "cylinder"
)

// Material is a standard lit material.
type Material struct {
	Color     types.RGB `json:"color"`
	Metalness float64   `json:"metalness,omitempty"`
	Wireframe bool      `json:"wireframe,omitempty"`
}

// Primitive is one mesh.
type Primitive struct {
	Kind     Kind       `json:"kind"`
	Args     []float64  `json:"args"`
	Position types.Vec3 `json:"position"`
	Material Material   `json:"material"`
}

// Group is a uniformly scaled set of primitives.
type Group struct {
	Name       string      `json:"name"`
	Scale      float64     `json:"scale"`
	Primitives []Primitive `json:"primitives"`
}

var extinguisherHead = types.MustHex("#1F2937")

// ForAsset returns the primitive group for a resolved asset entry, scaled and
// colored per the entry. Unknown models render as a wireframe cube.
func ForAsset(e asset.Entry) Group {
	g := Group{Name: string(e.Model), Scale: e.Scale}
	switch e.Model {
	case asset.ModelHardHat:
		g.Primitives = []Primitive{
			{
				Kind:     KindSphere,
				Args:     []float64{1, 32, 32, 0, 2 * math.Pi, 0, math.Pi / 2},
				Material: Material{Color: e.Color, Metalness: 0.3},
			},
			{
				Kind:     KindCylinder,
				Args:     []float64{1.3, 1.3, 0.1, 32},
				Position: types.Vec3{Y: -0.4},
				Material: Material{Color: e.Color},
			},
		}
	case asset.ModelExtinguisher:
		g.Primitives = []Primitive{
			{
				Kind:     KindCylinder,
				Args:     []float64{0.3, 0.3, 2, 16},
				Position: types.Vec3{Y: 1},
				Material: Material{Color: e.Color},
			},
			{
				Kind:     KindBox,
				Args:     []float64{0.6, 0.4, 0.6},
				Position: types.Vec3{Y: 2.1},
				Material: Material{Color: extinguisherHead},
			},
		}
	case asset.ModelVest:
		g.Primitives = []Primitive{
			{Kind: KindBox, Args: []float64{1.5, 2, 0.1}, Material: Material{Color: e.Color}},
		}
	default:
		g.Name = string(asset.ModelCustom)
		g.Primitives = []Primitive{
			{Kind: KindBox, Args: []float64{1, 1, 1}, Material: Material{Color: e.Color, Wireframe: true}},
		}
	}
	return g
}
