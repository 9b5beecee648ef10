package asset_test

import (
	"strings"
	"testing"

	"github.com/okian/nexera/internal/domain/asset"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClassify(t *testing.T) {
	Convey("Given the asset classifier", t, func() {
		Convey("When the input mentions a hard hat in any case", func() {
			for _, in := range []string{"hard hat", "I need a HARD HAT please", "Hard Hat for site visitors"} {
				e := asset.Classify(in)

				So(e.Model, ShouldEqual, asset.ModelHardHat)
				So(e.Key, ShouldEqual, "hard hat")
				So(e.Color.Hex(), ShouldEqual, "#FFD700")
				So(e.Scale, ShouldEqual, 1.2)
			}
		})

		Convey("When the input mentions a fire extinguisher", func() {
			e := asset.Classify("show me a Fire Extinguisher")

			Convey("Then the extinguisher entry should be returned", func() {
				So(e.Model, ShouldEqual, asset.ModelExtinguisher)
				So(e.Color.Hex(), ShouldEqual, "#DC2626")
				So(e.Scale, ShouldEqual, 1.0)
				So(e.Summary, ShouldContainSubstring, "PASS protocol")
			})
		})

		Convey("When the input mentions a safety vest", func() {
			e := asset.Classify("safety vest")

			Convey("Then the vest entry should be returned", func() {
				So(e.Model, ShouldEqual, asset.ModelVest)
				So(e.Color.Hex(), ShouldEqual, "#F59E0B")
			})
		})

		Convey("When several keywords appear", func() {
			e := asset.Classify("replace the fire extinguisher and hard hat")

			Convey("Then the earliest table entry wins regardless of text position", func() {
				So(e.Model, ShouldEqual, asset.ModelHardHat)
			})

			Convey("And vest loses to extinguisher", func() {
				So(asset.Classify("safety vest near the fire extinguisher").Model, ShouldEqual, asset.ModelExtinguisher)
			})
		})

		Convey("When nothing matches", func() {
			in := "A Forklift With Orange Lights"
			e := asset.Classify(in)

			Convey("Then a custom entry echoes the original text unmodified", func() {
				So(e.IsCustom(), ShouldBeTrue)
				So(e.Key, ShouldEqual, asset.CustomKey)
				So(e.Color.Hex(), ShouldEqual, "#3B82F6")
				So(e.Scale, ShouldEqual, 1.0)
				So(e.Summary, ShouldContainSubstring, `"`+in+`"`)
			})
		})

		Convey("When the input is empty", func() {
			e := asset.Classify("")

			Convey("Then the classifier is still total", func() {
				So(e.IsCustom(), ShouldBeTrue)
				So(e.Summary, ShouldContainSubstring, `""`)
			})
		})

		Convey("When the same input is classified twice", func() {
			in := "hard hat"
			So(asset.Classify(in), ShouldResemble, asset.Classify(in))
		})
	})
}

func TestCatalog(t *testing.T) {
	Convey("Given the catalog", t, func() {
		c := asset.Catalog()

		Convey("Then it should list entries in match order", func() {
			So(len(c), ShouldEqual, 3)
			So(c[0].Key, ShouldEqual, "hard hat")
			So(c[1].Key, ShouldEqual, "fire extinguisher")
			So(c[2].Key, ShouldEqual, "safety vest")
		})

		Convey("Then mutating the copy should not affect classification", func() {
			c[0].Key = "zzz"
			c[0].Scale = 9
			e := asset.Classify("hard hat")
			So(e.Scale, ShouldEqual, 1.2)
		})
	})
}

func TestIsBlank(t *testing.T) {
	Convey("Given candidate submissions", t, func() {
		So(asset.IsBlank(""), ShouldBeTrue)
		So(asset.IsBlank("  \t\n"), ShouldBeTrue)
		So(asset.IsBlank(" hard hat "), ShouldBeFalse)
	})
}

func TestPipelineSteps(t *testing.T) {
	Convey("Given the simulated pipeline", t, func() {
		steps := asset.PipelineSteps()
		So(len(steps), ShouldEqual, 6)
		So(strings.HasPrefix(steps[0], "Text"), ShouldBeTrue)

		steps[0] = "changed"
		So(asset.PipelineSteps()[0], ShouldNotEqual, "changed")
	})
}
