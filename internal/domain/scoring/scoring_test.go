package scoring_test

import (
	"testing"

	"github.com/pizzapunten/pizzapunten/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTruthy(t *testing.T) {
	Convey("Given raw flag values", t, func() {
		Convey("Then the fixed token set should be truthy", func() {
			for _, v := range []string{"1", "ja", "true", "y", "yes"} {
				So(scoring.Truthy(v), ShouldBeTrue)
			}
		})

		Convey("Then matching should ignore case and whitespace", func() {
			So(scoring.Truthy(" JA "), ShouldBeTrue)
			So(scoring.Truthy("Yes"), ShouldBeTrue)
			So(scoring.Truthy("\tTRUE\n"), ShouldBeTrue)
		})

		Convey("Then anything else should be falsy", func() {
			for _, v := range []string{"", "nee", "no", "0", "0.5", "jaa", "x"} {
				So(scoring.Truthy(v), ShouldBeFalse)
			}
		})
	})
}

func TestPoints(t *testing.T) {
	Convey("Given the points rule", t, func() {
		Convey("When the row is a plain presence", func() {
			So(scoring.Points("ja", "nee", "nee"), ShouldEqual, 1.0)
		})

		Convey("When the row is a presence with a win", func() {
			So(scoring.Points("ja", "ja", "nee"), ShouldEqual, 2.0)
		})

		Convey("When the row is an absence", func() {
			So(scoring.Points("nee", "nee", "nee"), ShouldEqual, 0.0)
			So(scoring.Points("", "", ""), ShouldEqual, 0.0)
		})

		Convey("When the winner flag is set without presence", func() {
			// A win cannot be earned in absentia.
			So(scoring.Points("nee", "ja", "nee"), ShouldEqual, 0.0)
		})

		Convey("When the row is marked injured", func() {
			So(scoring.Points("nee", "nee", "1"), ShouldEqual, 0.5)
			So(scoring.Points("nee", "nee", "ja"), ShouldEqual, 0.5)
			So(scoring.Points("nee", "nee", "0.5"), ShouldEqual, 0.5)

			Convey("Then injury should beat presence and winner", func() {
				So(scoring.Points("ja", "ja", "1"), ShouldEqual, 0.5)
				So(scoring.Points("ja", "ja", " 0.5 "), ShouldEqual, 0.5)
			})
		})
	})
}

func TestInjured(t *testing.T) {
	Convey("Given raw injury values", t, func() {
		So(scoring.Injured("ja"), ShouldBeTrue)
		So(scoring.Injured("0.5"), ShouldBeTrue)
		So(scoring.Injured(" 0.5 "), ShouldBeTrue)
		So(scoring.Injured("nee"), ShouldBeFalse)
		So(scoring.Injured(""), ShouldBeFalse)
		So(scoring.Injured("0.25"), ShouldBeFalse)
	})
}
