// Package asset resolves free-text descriptions of training objects to a fixed
// catalog of 3D primitive groups.
package asset

import (
	"fmt"
	"strings"

	"github.com/okian/nexera/internal/domain/types"
)

// Model identifies which primitive group the renderer draws for an entry.
type Model string

// Known models. ModelCustom is the wireframe placeholder for unmatched input.
const (
	ModelHardHat      Model = "hardhat"
	ModelExtinguisher Model = "extinguisher"
	ModelVest         Model = "vest"
	ModelCustom       Model = "custom"
)

// CustomKey is the key reported for synthesized entries.
const CustomKey = "custom"

const (
	customColor    = "#3B82F6"
	customScale    = 1.0
	customTemplate = `AI would generate a 3D model for "%s". In production, this would use Stable Diffusion 3D or retrieve from Sketchfab API.`
)

// Entry is one resolved asset. Catalog entries are immutable.
type Entry struct {
	Key     string    `json:"key"`
	Model   Model     `json:"model"`
	Color   types.RGB `json:"color"`
	Scale   float64   `json:"scale"`
	Summary string    `json:"summary"`
}

// IsCustom reports whether the entry was synthesized by the fallback.
func (e Entry) IsCustom() bool { return e.Model == ModelCustom }

// catalog is scanned in declaration order; the first keyword contained in the
// lowercased input wins.
var catalog = [...]Entry{
	{
		Key:     "hard hat",
		Model:   ModelHardHat,
		Color:   types.MustHex("#FFD700"),
		Scale:   1.2,
		Summary: "Hard hats are Class E electrical hazard rated PPE. They must be ANSI/ISEA Z89.1 certified and replaced after any significant impact.",
	},
	{
		Key:     "fire extinguisher",
		Model:   ModelExtinguisher,
		Color:   types.MustHex("#DC2626"),
		Scale:   1.0,
		Summary: "ABC dry chemical extinguisher rated for ordinary combustibles, flammable liquids, and electrical fires. Follow PASS protocol.",
	},
	{
		Key:     "safety vest",
		Model:   ModelVest,
		Color:   types.MustHex("#F59E0B"),
		Scale:   1.0,
		Summary: "High-visibility ANSI Class 2 vest for daytime use. Required within 10 feet of moving vehicles.",
	},
}

var pipelineSteps = []string{
	"Text → OpenAI GPT-4 (object identification)",
	"Asset search in vector database",
	"GLB retrieval/conversion",
	"Auto-scale and center",
	"Material application",
	"WebGL rendering",
}

// PipelineSteps returns the simulated processing stages reported when an
// asset resolves.
func PipelineSteps() []string {
	out := make([]string, len(pipelineSteps))
	copy(out, pipelineSteps)
	return out
}

// Classify maps input to a catalog entry, or to a synthesized custom entry
// whose summary quotes input verbatim. It is total and has no side effects.
func Classify(input string) Entry {
	lower := strings.ToLower(input)
	for _, e := range catalog {
		if strings.Contains(lower, e.Key) {
			return e
		}
	}
	return Entry{
		Key:     CustomKey,
		Model:   ModelCustom,
		Color:   types.MustHex(customColor),
		Scale:   customScale,
		Summary: fmt.Sprintf(customTemplate, input),
	}
}

// IsBlank reports whether input should be treated as no submission.
func IsBlank(input string) bool {
	return strings.TrimSpace(input) == ""
}

// Catalog returns the keyword table in match order.
func Catalog() []Entry {
	out := make([]Entry, len(catalog))
	copy(out, catalog[:])
	return out
}
