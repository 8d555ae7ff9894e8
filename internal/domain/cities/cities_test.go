package cities

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDirectory(t *testing.T) {
	Convey("Given the default directory", t, func() {
		d := NewDirectory(nil)

		Convey("It knows the five built-in cities", func() {
			So(d.Len(), ShouldEqual, 5)
			So(d.Names(), ShouldResemble, []string{"boston", "dallas", "miami", "newyork", "seattle"})
		})

		Convey("Lookups ignore case", func() {
			info, ok := d.Lookup("BoStOn")
			So(ok, ShouldBeTrue)
			So(info, ShouldEqual, "Boston is a city that experiences all four seasons.")
		})

		Convey("Unknown cities fall back", func() {
			_, ok := d.Lookup("Atlanta")
			So(ok, ShouldBeFalse)
			So(d.Describe("Atlanta"), ShouldEqual, Unknown)
		})
	})

	Convey("Given a custom facts table", t, func() {
		facts := map[string]string{"Lisbon": "Lisbon sits on seven hills."}
		d := NewDirectory(facts)

		Convey("Keys are normalised to lower case", func() {
			So(d.Describe("lisbon"), ShouldEqual, "Lisbon sits on seven hills.")
		})

		Convey("Mutating the source map does not leak in", func() {
			facts["porto"] = "Porto has a famous bridge."
			So(d.Describe("porto"), ShouldEqual, Unknown)
		})
	})
}
