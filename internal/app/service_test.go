package service_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/regatta/internal/adapters/members"
	service "github.com/okian/regatta/internal/app"
	"github.com/okian/regatta/internal/config"
	"github.com/okian/regatta/internal/domain/model"
	"github.com/okian/regatta/internal/domain/regatta"
	"github.com/okian/regatta/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

const springSheet = `
name: Spring Dinghy
divisions: 2
races: 2
teams:
  - {name: Navy, short: NAV, affiliation: NAVY}
  - {name: Yale, short: YAL, affiliation: YALE}
  - {name: Brown, short: BRN, affiliation: BRWN}
rotation:
  1A: {Navy: "1", Yale: "2", Brown: "3"}
  1B: {Navy: "4", Yale: "5", Brown: "3"}
  2A: {Navy: "1", Yale: "1", Brown: "3"}
finishes:
  1A: [Yale, Navy, Brown]
  1B: [Yale, {team: Brown, penalty: OCS}, Navy]
`

// memStore is an in-memory members.Store.
type memStore map[string][]model.Member

func (m memStore) Load(_ context.Context, aff string) ([]model.Member, error) {
	list, ok := m[aff]
	if !ok {
		return nil, members.ErrNotFound
	}
	return list, nil
}

func (m memStore) Save(_ context.Context, aff string, list []model.Member) error {
	m[aff] = list
	return nil
}

func (m memStore) Affiliations(context.Context) ([]string, error) {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out, nil
}

func writeSheet(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sheet.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestService_Score(t *testing.T) {
	Convey("Given a service and an imported sheet", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithMembersStore(memStore{}))
		reg, err := svc.Open(ctx, writeSheet(t, springSheet))
		So(err, ShouldBeNil)

		Convey("When the regatta is scored", func() {
			entries, err := svc.Score(ctx, reg)

			Convey("Then the standings sum both races", func() {
				So(err, ShouldBeNil)
				So(entries, ShouldHaveLength, 3)
				So(entries[0].Team.LongName, ShouldEqual, "Yale")
				So(entries[0].Total, ShouldEqual, 2)
				So(entries[1].Team.LongName, ShouldEqual, "Navy")
				So(entries[1].Total, ShouldEqual, 4)
				So(entries[2].Team.LongName, ShouldEqual, "Brown")
				So(entries[2].Total, ShouldEqual, 7)
			})

			Convey("Then scoring again changes nothing", func() {
				again, err := svc.Score(ctx, reg)
				So(err, ShouldBeNil)
				So(again, ShouldResemble, entries)
			})
		})

		Convey("When a finish is missing from a scored race", func() {
			So(reg.AddTeam(model.Team{LongName: "Tufts"}), ShouldBeNil)
			_, err := svc.Score(ctx, reg)

			Convey("Then scoring fails", func() {
				So(errors.Is(err, regatta.ErrMissingFinish), ShouldBeTrue)
			})
		})

		Convey("Then the rules are described", func() {
			So(svc.Rules(), ShouldNotBeEmpty)
		})
	})

	Convey("Given a sheet that does not exist", t, func() {
		svc := service.New()
		_, err := svc.Open(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))

		Convey("Then opening fails", func() {
			So(err, ShouldNotBeNil)
		})
	})
}

func TestService_Check(t *testing.T) {
	Convey("Given a sheet with a bad rotation", t, func() {
		ctx := context.Background()
		var buf bytes.Buffer
		So(logger.InitWriter(&buf), ShouldBeNil)
		path := writeSheet(t, springSheet)

		Convey("When checked division by division", func() {
			svc := service.New(service.WithLogger(logger.Get()))
			reg, err := svc.Open(ctx, path)
			So(err, ShouldBeNil)
			bad := svc.Check(ctx, reg)

			Convey("Then only the race with a shared sail is bad", func() {
				So(bad, ShouldResemble, []model.Race{{Division: model.DivisionA, Number: 2}})
				So(buf.String(), ShouldContainSubstring, "inconsistent rotation")
				So(buf.String(), ShouldContainSubstring, "race=2A")
			})
		})

		Convey("When checked as a combined start", func() {
			cfg := config.New()
			cfg.Combined = true
			svc := service.New(service.WithConfig(cfg))
			reg, err := svc.Open(ctx, path)
			So(err, ShouldBeNil)
			bad := svc.Check(ctx, reg)

			Convey("Then shared sails and missing races fail both divisions", func() {
				So(bad, ShouldResemble, []model.Race{
					{Division: model.DivisionA, Number: 1},
					{Division: model.DivisionA, Number: 2},
					{Division: model.DivisionB, Number: 1},
					{Division: model.DivisionB, Number: 2},
				})
			})
		})

		Convey("When the regatta has no rotation", func() {
			svc := service.New()
			reg := regatta.New("Bare")

			Convey("Then nothing is reported", func() {
				So(svc.Check(ctx, reg), ShouldBeEmpty)
			})
		})
	})
}

func TestService_Roster(t *testing.T) {
	Convey("Given a store with two of three affiliations", t, func() {
		ctx := context.Background()
		store := memStore{
			"NAVY": {{Sailor: model.Sailor{ID: "n1", Name: "Ann", Year: 2026}}},
			"YALE": {
				{Sailor: model.Sailor{ID: "y1", Name: "Bob", Year: 2025}},
				{Sailor: model.Sailor{ID: "y2", Name: "Cat", Year: 2027}, IsNew: true},
			},
		}
		svc := service.New(service.WithMembersStore(store))
		reg, err := svc.Open(ctx, writeSheet(t, springSheet))
		So(err, ShouldBeNil)

		Convey("When the roster is loaded", func() {
			n, err := svc.Roster(ctx, reg)

			Convey("Then the known members are available for RP", func() {
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 3)
				So(reg.Roster(), ShouldHaveLength, 3)
				So(reg.Roster()[0].Name, ShouldEqual, "Ann")
			})
		})

		Convey("Then the store is reachable through the service", func() {
			affs, err := svc.Affiliations(ctx)
			So(err, ShouldBeNil)
			So(affs, ShouldHaveLength, 2)
			list, err := svc.Members(ctx, "YALE")
			So(err, ShouldBeNil)
			So(list[1].IsNew, ShouldBeTrue)
		})
	})
}

func TestService_AddMember(t *testing.T) {
	Convey("Given a file-backed service", t, func() {
		ctx := context.Background()
		cfg := config.New()
		cfg.MembersDir = t.TempDir()
		svc := service.New(service.WithConfig(cfg))
		ann := model.Member{Sailor: model.Sailor{ID: "n1", Name: "Ann", Year: 2026}}

		Convey("When a member is added to a new affiliation", func() {
			So(svc.AddMember(ctx, "NAVY", ann), ShouldBeNil)

			Convey("Then the affiliation file exists", func() {
				list, err := svc.Members(ctx, "NAVY")
				So(err, ShouldBeNil)
				So(list, ShouldResemble, []model.Member{ann})
			})

			Convey("Then adding the same ID replaces the record", func() {
				ann.Year = 2027
				So(svc.AddMember(ctx, "NAVY", ann), ShouldBeNil)
				list, err := svc.Members(ctx, "NAVY")
				So(err, ShouldBeNil)
				So(list, ShouldHaveLength, 1)
				So(list[0].Year, ShouldEqual, 2027)
			})
		})
	})
}
