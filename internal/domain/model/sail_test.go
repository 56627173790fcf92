package model_test

import (
	"errors"
	"math"
	"slices"
	"testing"

	model "github.com/okian/regatta/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseSail(t *testing.T) {
	Convey("Given sail strings", t, func() {
		Convey("When the sail is purely numeric", func() {
			s := model.ParseSail("205")

			Convey("Then the number is parsed with its width", func() {
				n, ok := s.Number()
				So(ok, ShouldBeTrue)
				So(n, ShouldEqual, 205)
				So(s.Width(), ShouldEqual, 3)
				So(s.Prefix(), ShouldEqual, "")
				So(s.Suffix(), ShouldEqual, "")
				So(s.String(), ShouldEqual, "205")
			})
		})

		Convey("When the sail has a prefix and suffix", func() {
			s := model.ParseSail("US-012b")

			Convey("Then the digit run is split out", func() {
				n, _ := s.Number()
				So(s.Prefix(), ShouldEqual, "US-")
				So(n, ShouldEqual, 12)
				So(s.Width(), ShouldEqual, 3)
				So(s.Suffix(), ShouldEqual, "b")
				So(s.String(), ShouldEqual, "US-012b")
			})
		})

		Convey("When digits appear left of the rightmost digit run", func() {
			s := model.ParseSail("4b21")

			Convey("Then they stay in the prefix", func() {
				n, _ := s.Number()
				So(s.Prefix(), ShouldEqual, "4b")
				So(n, ShouldEqual, 21)
				So(s.Suffix(), ShouldEqual, "")
				So(s.String(), ShouldEqual, "4b21")
			})
		})

		Convey("When an earlier digit run is separated by a suffix", func() {
			s := model.ParseSail("1-05x")

			Convey("Then only the rightmost run is numeric", func() {
				n, _ := s.Number()
				So(s.Prefix(), ShouldEqual, "1-")
				So(n, ShouldEqual, 5)
				So(s.Width(), ShouldEqual, 2)
				So(s.Suffix(), ShouldEqual, "x")
			})
		})

		Convey("When the sail has no digits", func() {
			s := model.ParseSail("Red")

			Convey("Then it is non-numerical", func() {
				So(s.Numeric(), ShouldBeFalse)
				So(s.Suffix(), ShouldEqual, "Red")
				So(s.String(), ShouldEqual, "Red")
			})
		})

		Convey("When the sail is empty", func() {
			s := model.ParseSail("")

			Convey("Then it is non-numerical and empty", func() {
				So(s.Numeric(), ShouldBeFalse)
				So(s.String(), ShouldEqual, "")
			})
		})

		Convey("When the digit run overflows an int", func() {
			s := model.ParseSail("A99999999999999999999999")

			Convey("Then the sail is treated as non-numerical", func() {
				So(s.Numeric(), ShouldBeFalse)
				So(s.String(), ShouldEqual, "A99999999999999999999999")
			})
		})

		Convey("When reparsing canonical output", func() {
			inputs := []string{"1", "007", "A1", "12-b", "4b21", "x9y8z", "Blue", "0", "-3-"}

			Convey("Then the decomposition is stable", func() {
				for _, in := range inputs {
					first := model.ParseSail(in)
					second := model.ParseSail(first.String())
					So(second.String(), ShouldEqual, first.String())
					So(second.Prefix(), ShouldEqual, first.Prefix())
					So(second.Suffix(), ShouldEqual, first.Suffix())
					So(second.Width(), ShouldEqual, first.Width())
				}
			})
		})
	})
}

func TestSailAdd(t *testing.T) {
	Convey("Given a numeric sail", t, func() {
		s := model.ParseSail("A07")

		Convey("When adding to it", func() {
			err := s.Add(3)

			Convey("Then the padding is preserved", func() {
				So(err, ShouldBeNil)
				So(s.String(), ShouldEqual, "A10")
			})
		})

		Convey("When the number grows past the width", func() {
			err := s.Add(100)

			Convey("Then the width acts as a minimum", func() {
				So(err, ShouldBeNil)
				So(s.String(), ShouldEqual, "A107")
			})
		})

		Convey("When the result would be negative", func() {
			err := s.Add(-8)

			Convey("Then it fails and leaves the sail alone", func() {
				So(errors.Is(err, model.ErrNegativeSail), ShouldBeTrue)
				So(s.String(), ShouldEqual, "A07")
			})
		})

		Convey("When the result would overflow", func() {
			err := s.Add(math.MaxInt)

			Convey("Then it fails and leaves the sail alone", func() {
				So(errors.Is(err, model.ErrSailOverflow), ShouldBeTrue)
				So(s.String(), ShouldEqual, "A07")
			})
		})

		Convey("When adding the largest step that still fits", func() {
			err := s.Add(math.MaxInt - 7)

			Convey("Then it succeeds", func() {
				So(err, ShouldBeNil)
				n, ok := s.Number()
				So(ok, ShouldBeTrue)
				So(n, ShouldEqual, math.MaxInt)
			})
		})

		Convey("When using Plus", func() {
			next, err := s.Plus(1)

			Convey("Then the original is untouched", func() {
				So(err, ShouldBeNil)
				So(next.String(), ShouldEqual, "A08")
				So(s.String(), ShouldEqual, "A07")
			})
		})
	})

	Convey("Given a non-numerical sail", t, func() {
		s := model.ParseSail("Green")

		Convey("When adding to it", func() {
			err := s.Add(1)

			Convey("Then it fails", func() {
				So(errors.Is(err, model.ErrNonNumericSail), ShouldBeTrue)
				So(s.String(), ShouldEqual, "Green")
			})
		})
	})
}

func TestCompareSails(t *testing.T) {
	Convey("Given several sails", t, func() {
		sails := []model.Sail{
			model.ParseSail("10"),
			model.ParseSail("9"),
			model.ParseSail("A1"),
			model.ParseSail("09"),
		}

		Convey("When sorting them", func() {
			slices.SortFunc(sails, model.CompareSails)

			Convey("Then the order is lexicographic on the canonical form", func() {
				got := make([]string, len(sails))
				for i, s := range sails {
					got[i] = s.String()
				}
				So(got, ShouldResemble, []string{"09", "10", "9", "A1"})
			})
		})

		Convey("Then equal canonical forms compare equal", func() {
			So(model.CompareSails(model.ParseSail("A1"), model.ParseSail("A1")), ShouldEqual, 0)
			So(model.ParseSail("A1").Equal(model.ParseSail("A1")), ShouldBeTrue)
			So(model.ParseSail("A1").Equal(model.ParseSail("A01")), ShouldBeFalse)
		})
	})
}
