package sheet

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSortedRaceKeys(t *testing.T) {
	Convey("Given race keys mixed with keys that do not parse", t, func() {
		keys := map[string]int{
			"10A": 0, "zz": 0, "2B": 0, "1A": 0, "B": 0, "2A": 0, "9": 0, "1B": 0,
		}

		Convey("When they are sorted", func() {
			got := sortedRaceKeys(keys)

			Convey("Then races come first in race order and the rest by string", func() {
				So(got, ShouldResemble, []string{"1A", "2A", "10A", "1B", "2B", "9", "B", "zz"})
			})
		})

		Convey("When compared pairwise", func() {
			Convey("Then the ordering is antisymmetric", func() {
				all := []string{"10A", "zz", "2B", "1A", "B", "2A", "9", "1B", " 1A"}
				for _, a := range all {
					for _, b := range all {
						So(compareRaceKeys(a, b), ShouldEqual, -compareRaceKeys(b, a))
					}
				}
			})
		})
	})
}
