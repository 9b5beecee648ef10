package types_test

import (
	"encoding/json"
	"errors"
	"testing"

	types "github.com/okian/nexera/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseHex(t *testing.T) {
	Convey("Given hex color strings", t, func() {
		Convey("When parsing an upper-case color with a leading hash", func() {
			c, err := types.ParseHex("#FFD700")

			Convey("Then every channel should be decoded", func() {
				So(err, ShouldBeNil)
				So(c, ShouldResemble, types.RGB{R: 0xFF, G: 0xD7, B: 0x00})
			})
		})

		Convey("When parsing a lower-case color without a hash", func() {
			c, err := types.ParseHex("dc2626")

			Convey("Then it should round-trip to the canonical form", func() {
				So(err, ShouldBeNil)
				So(c.Hex(), ShouldEqual, "#DC2626")
			})
		})

		Convey("When parsing malformed input", func() {
			for _, in := range []string{"", "#FFF", "#GGGGGG", "#1234567"} {
				_, err := types.ParseHex(in)
				So(errors.Is(err, types.ErrInvalidColor), ShouldBeTrue)
			}
		})

		Convey("When MustHex receives malformed input", func() {
			So(func() { types.MustHex("nope") }, ShouldPanic)
		})
	})
}

func TestRGBJSON(t *testing.T) {
	Convey("Given a color embedded in a struct", t, func() {
		type payload struct {
			Color types.RGB `json:"color"`
		}
		in := payload{Color: types.MustHex("#3B82F6")}

		Convey("When encoding to JSON", func() {
			b, err := json.Marshal(in)

			Convey("Then the color should be a hex string", func() {
				So(err, ShouldBeNil)
				So(string(b), ShouldEqual, `{"color":"#3B82F6"}`)
			})

			Convey("And decoding should restore the value", func() {
				var out payload
				So(json.Unmarshal(b, &out), ShouldBeNil)
				So(out, ShouldResemble, in)
			})
		})

		Convey("When decoding a non-string color", func() {
			var out payload
			err := json.Unmarshal([]byte(`{"color":12}`), &out)
			So(err, ShouldNotBeNil)
		})
	})
}
