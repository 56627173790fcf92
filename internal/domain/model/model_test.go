package model_test

import (
	"errors"
	"slices"
	"testing"
	"time"

	model "github.com/okian/regatta/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDivision(t *testing.T) {
	Convey("Given divisions", t, func() {
		Convey("Then they render as letters", func() {
			So(model.DivisionA.String(), ShouldEqual, "A")
			So(model.Division(25).String(), ShouldEqual, "Z")
			So(model.Division(26).Valid(), ShouldBeFalse)
		})

		Convey("When parsing", func() {
			d, err := model.ParseDivision("c")
			So(err, ShouldBeNil)
			So(d, ShouldEqual, model.DivisionC)

			_, err = model.ParseDivision("AA")
			So(errors.Is(err, model.ErrInvalidDivision), ShouldBeTrue)
		})

		Convey("When listing the first n", func() {
			divs, err := model.Divisions(3)
			So(err, ShouldBeNil)
			So(divs, ShouldResemble, []model.Division{model.DivisionA, model.DivisionB, model.DivisionC})

			_, err = model.Divisions(0)
			So(errors.Is(err, model.ErrInvalidDivisionCount), ShouldBeTrue)
			_, err = model.Divisions(27)
			So(errors.Is(err, model.ErrInvalidDivisionCount), ShouldBeTrue)
		})
	})
}

func TestRace(t *testing.T) {
	Convey("Given races", t, func() {
		Convey("When building one", func() {
			r, err := model.NewRace(model.DivisionB, 3)
			So(err, ShouldBeNil)
			So(r.String(), ShouldEqual, "3B")

			_, err = model.NewRace(model.DivisionA, 0)
			So(errors.Is(err, model.ErrInvalidRace), ShouldBeTrue)
		})

		Convey("When parsing", func() {
			r, err := model.ParseRace("12C")
			So(err, ShouldBeNil)
			So(r, ShouldResemble, model.Race{Division: model.DivisionC, Number: 12})

			for _, bad := range []string{"", "A", "3", "0A", "xB"} {
				_, err := model.ParseRace(bad)
				So(err, ShouldNotBeNil)
			}
		})

		Convey("When sorting", func() {
			races := []model.Race{
				{Division: model.DivisionB, Number: 1},
				{Division: model.DivisionA, Number: 2},
				{Division: model.DivisionA, Number: 1},
			}
			slices.SortFunc(races, model.CompareRaces)

			Convey("Then division comes first, then number", func() {
				So(races[0].String(), ShouldEqual, "1A")
				So(races[1].String(), ShouldEqual, "2A")
				So(races[2].String(), ShouldEqual, "1B")
			})
		})
	})
}

func TestTeam(t *testing.T) {
	Convey("Given team construction", t, func() {
		Convey("When the long name has surrounding space", func() {
			team, err := model.NewTeam("  Tufts ", "1", "TUF")

			Convey("Then it is trimmed", func() {
				So(err, ShouldBeNil)
				So(team.LongName, ShouldEqual, "Tufts")
				So(team.String(), ShouldEqual, "Tufts 1")
			})
		})

		Convey("When the long name is empty or blank", func() {
			_, err1 := model.NewTeam("", "1", "X")
			_, err2 := model.NewTeam(" \t ", "1", "X")

			Convey("Then construction fails", func() {
				So(errors.Is(err1, model.ErrEmptyTeamName), ShouldBeTrue)
				So(errors.Is(err2, model.ErrEmptyTeamName), ShouldBeTrue)
			})
		})

		Convey("When comparing teams", func() {
			a, _ := model.NewTeam("Navy", "1", "NAV")
			b, _ := model.NewTeam("Navy", "2", "NAV")
			c, _ := model.NewTeam("Navy", "1", "OTHER")

			Convey("Then identity ignores affiliation", func() {
				So(model.CompareTeams(a, b), ShouldBeLessThan, 0)
				So(model.CompareTeams(a, c), ShouldEqual, 0)
				So(a.Key(), ShouldResemble, c.Key())
			})
		})
	})
}

func TestFinishAdjustments(t *testing.T) {
	Convey("Given a finish", t, func() {
		race := model.Race{Division: model.DivisionA, Number: 1}
		team, _ := model.NewTeam("Yale", "", "YAL")
		f := model.NewFinish(race, team, time.Unix(100, 0))

		Convey("When it has no adjustment", func() {
			Convey("Then the text is the score when positive", func() {
				So(f.Text(), ShouldEqual, "")
				f.Score = 3
				So(f.Text(), ShouldEqual, "3")
			})

			Convey("Then neither variant is present", func() {
				_, okP := f.Penalty()
				_, okB := f.Breakdown()
				So(okP, ShouldBeFalse)
				So(okB, ShouldBeFalse)
			})
		})

		Convey("When a penalty is set", func() {
			p, err := model.NewPenalty(model.PenaltyDSQ, "hit mark")
			So(err, ShouldBeNil)
			f.SetPenalty(p)
			f.Score = 4

			Convey("Then only the penalty accessor returns it", func() {
				got, ok := f.Penalty()
				So(ok, ShouldBeTrue)
				So(got.Comments(), ShouldEqual, "hit mark")
				_, ok = f.Breakdown()
				So(ok, ShouldBeFalse)
				So(f.Text(), ShouldEqual, "DSQ")
			})

			Convey("And a breakdown replaces it", func() {
				b, err := model.NewBreakdown(model.BreakdownBKD, "broken rudder", 2)
				So(err, ShouldBeNil)
				f.SetBreakdown(b)

				_, okP := f.Penalty()
				got, okB := f.Breakdown()
				So(okP, ShouldBeFalse)
				So(okB, ShouldBeTrue)
				So(got.Handicap, ShouldEqual, 2)
				So(f.Text(), ShouldEqual, "BKD")
			})

			Convey("And clearing removes it", func() {
				f.ClearAdjustment()
				So(f.Adjustment(), ShouldBeNil)
				So(f.Text(), ShouldEqual, "4")
			})
		})

		Convey("When building invalid adjustments", func() {
			_, err := model.NewPenalty("XYZ", "")
			So(errors.Is(err, model.ErrInvalidPenalty), ShouldBeTrue)
			_, err = model.NewBreakdown(model.BreakdownRDG, "", -1)
			So(errors.Is(err, model.ErrNegativeHandicap), ShouldBeTrue)
			_, err = model.NewBreakdown("DSQ", "", 0)
			So(errors.Is(err, model.ErrInvalidBreakdown), ShouldBeTrue)
		})

		Convey("When parsing codes", func() {
			p, err := model.ParsePenaltyType("ocs")
			So(err, ShouldBeNil)
			So(p, ShouldEqual, model.PenaltyOCS)
			b, err := model.ParseBreakdownType(" rdg ")
			So(err, ShouldBeNil)
			So(b, ShouldEqual, model.BreakdownRDG)
			tp, err := model.ParseTeamPenaltyType("gdq")
			So(err, ShouldBeNil)
			So(tp, ShouldEqual, model.TeamPenaltyGDQ)
		})
	})
}

func TestFinishOrdering(t *testing.T) {
	Convey("Given finishes in one race", t, func() {
		race := model.Race{Division: model.DivisionA, Number: 1}
		a, _ := model.NewTeam("Alpha", "", "")
		b, _ := model.NewTeam("Bravo", "", "")
		fa := model.NewFinish(race, a, time.Unix(200, 0))
		fb := model.NewFinish(race, b, time.Unix(100, 0))

		Convey("Then identity order follows the team", func() {
			So(model.CompareFinishes(fa, fb), ShouldBeLessThan, 0)
			other := model.NewFinish(race, a, time.Unix(999, 0))
			So(model.CompareFinishes(fa, other), ShouldEqual, 0)
		})

		Convey("Then place order follows the timestamp", func() {
			So(model.CompareByPlace(fb, fa), ShouldBeLessThan, 0)
		})
	})
}

func TestParseRole(t *testing.T) {
	Convey("Given role strings", t, func() {
		for _, s := range []string{"Skip", "skipper", "SKIPPER"} {
			r, err := model.ParseRole(s)
			So(err, ShouldBeNil)
			So(r, ShouldEqual, model.Skipper)
		}
		for _, s := range []string{"Crew", "crew"} {
			r, err := model.ParseRole(s)
			So(err, ShouldBeNil)
			So(r, ShouldEqual, model.Crew)
		}
		_, err := model.ParseRole("helm")
		So(errors.Is(err, model.ErrInvalidRole), ShouldBeTrue)
	})
}
