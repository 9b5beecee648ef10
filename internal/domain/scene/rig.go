package scene

import (
	"github.com/okian/nexera/internal/domain/avatar"
	"github.com/okian/nexera/internal/domain/types"
)

// Node names the renderer binds pose transforms to.
const (
	NodeBody     = "body"
	NodeHead     = "head"
	NodeLeftArm  = "leftArm"
	NodeRightArm = "rightArm"
	NodeLeftLeg  = "leftLeg"
	NodeRightLeg = "rightLeg"
)

// Node is a named primitive with its own rotation.
type Node struct {
	Name      string      `json:"name"`
	Primitive Primitive   `json:"primitive"`
	Rotation  types.Euler `json:"rotation"`
}

// Rig is the avatar: a group offset by Position containing its nodes.
type Rig struct {
	Position types.Vec3 `json:"position"`
	Nodes    []Node     `json:"nodes"`
}

var (
	torsoColor = types.MustHex("#4F46E5")
	headColor  = types.MustHex("#FBBF24")
	armColor   = types.MustHex("#6366F1")
	legColor   = types.MustHex("#374151")
)

func limb(pos types.Vec3, c types.RGB) Primitive {
	return Primitive{Kind: KindBox, Args: []float64{0.2, 1, 0.2}, Position: pos, Material: Material{Color: c}}
}

// AvatarRig returns the avatar in its rest pose.
func AvatarRig() Rig {
	r := Rig{Nodes: []Node{
		{Name: NodeBody, Primitive: Primitive{Kind: KindBox, Args: []float64{1, 2, 0.5}, Position: types.Vec3{Y: 1}, Material: Material{Color: torsoColor}}},
		{Name: NodeHead, Primitive: Primitive{Kind: KindSphere, Args: []float64{0.5, 16, 16}, Position: types.Vec3{Y: 2.5}, Material: Material{Color: headColor}}},
		{Name: NodeLeftArm, Primitive: limb(types.Vec3{X: -0.8, Y: 1.5}, armColor)},
		{Name: NodeRightArm, Primitive: limb(types.Vec3{X: 0.8, Y: 1.5}, armColor)},
		{Name: NodeLeftLeg, Primitive: limb(types.Vec3{X: -0.2}, legColor)},
		{Name: NodeRightLeg, Primitive: limb(types.Vec3{X: 0.2}, legColor)},
	}}
	return Apply(r, avatar.Rest())
}

// Apply returns a copy of r with the sample's arm rotations and body offset.
func Apply(r Rig, s avatar.Sample) Rig {
	out := Rig{Position: s.Body, Nodes: make([]Node, len(r.Nodes))}
	copy(out.Nodes, r.Nodes)
	for i := range out.Nodes {
		switch out.Nodes[i].Name {
		case NodeLeftArm:
			out.Nodes[i].Rotation = s.LeftArm
		case NodeRightArm:
			out.Nodes[i].Rotation = s.RightArm
		}
	}
	return out
}

// TrainingRoom returns the static props around the avatar.
func TrainingRoom() Group {
	return Group{
		Name:  "room",
		Scale: 1,
		Primitives: []Primitive{
			{Kind: KindBox, Args: []float64{10, 0.1, 10}, Position: types.Vec3{Y: -1}, Material: Material{Color: types.MustHex("#4B5563")}},
			{Kind: KindBox, Args: []float64{2, 0.5, 1}, Position: types.Vec3{X: 3}, Material: Material{Color: types.MustHex("#8B5A2B")}},
			{Kind: KindCylinder, Args: []float64{0.3, 0.3, 1, 8}, Position: types.Vec3{X: -2, Y: 0.5, Z: 2}, Material: Material{Color: types.MustHex("#DC2626")}},
		},
	}
}
