package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/urfave/cli/v2"
)

const sheetYAML = `
name: Harbor Cup
divisions: 1
races: 2
teams:
  - {name: Navy, affiliation: NAVY}
  - {name: Yale, affiliation: YALE}
rotation:
  1A: {Navy: "1", Yale: "2"}
  2A: {Navy: "1", Yale: "1"}
finishes:
  1A: [Navy, Yale]
  2A: [Navy, Yale]
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := newApp(&out, &errOut).Run(append([]string{"regatta"}, args...))
	return out.String(), err
}

// clearConfigEnv unsets REGATTA_CONFIG for the test and restores it after.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	t.Setenv("REGATTA_CONFIG", "")
	_ = os.Unsetenv("REGATTA_CONFIG")
}

func TestCLI(t *testing.T) {
	Convey("Given a sheet and an empty members directory", t, func() {
		dir := t.TempDir()
		sheet := filepath.Join(dir, "harbor.yaml")
		So(os.WriteFile(sheet, []byte(sheetYAML), 0o600), ShouldBeNil)
		members := filepath.Join(dir, "members")
		promFile := filepath.Join(dir, "regatta.prom")

		Convey("When scoring", func() {
			out, err := run(t, "--members-dir", members, "--metrics-file", promFile, "score", "--sheet", sheet)

			Convey("Then the standings are printed", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "Harbor Cup")
				So(out, ShouldContainSubstring, "Navy")
				So(out, ShouldContainSubstring, "RANK")
			})

			Convey("Then metrics are written", func() {
				data, err := os.ReadFile(promFile)
				So(err, ShouldBeNil)
				So(string(data), ShouldContainSubstring, "regatta_scoring_races_scored_total")
			})
		})

		Convey("When checking the rotation", func() {
			out, err := run(t, "--members-dir", members, "check", "--sheet", sheet)

			Convey("Then the duplicate sail is reported without failing", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "inconsistent races: 2A")
			})
		})

		Convey("When checking strictly", func() {
			_, err := run(t, "--members-dir", members, "check", "--strict", "--sheet", sheet)

			Convey("Then the command exits with the rotation code", func() {
				var exit cli.ExitCoder
				So(errors.As(err, &exit), ShouldBeTrue)
				So(exit.ExitCode(), ShouldEqual, exitRotation)
			})
		})

		Convey("When adding and listing members", func() {
			_, err := run(t, "--members-dir", members, "members", "add", "--new", "NAVY", "n1", "Ann Lee", "2026")
			So(err, ShouldBeNil)
			all, err := run(t, "--members-dir", members, "members", "list")
			So(err, ShouldBeNil)
			navy, err := run(t, "--members-dir", members, "members", "list", "NAVY")
			So(err, ShouldBeNil)

			Convey("Then the store reflects the addition", func() {
				So(all, ShouldContainSubstring, "NAVY")
				So(navy, ShouldContainSubstring, "Ann Lee")
				So(navy, ShouldContainSubstring, "true")
			})

			Convey("Then scoring with the roster counts the sailor", func() {
				out, err := run(t, "--members-dir", members, "score", "--roster", "--sheet", sheet)
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "1 sailors on roster")
			})
		})

		Convey("When one run passes a config file and the next does not", func() {
			clearConfigEnv(t)
			cfgFile := filepath.Join(dir, "regatta.yaml")
			So(os.WriteFile(cfgFile, []byte("members_dir: "+members+"\n"), 0o600), ShouldBeNil)
			_, err := run(t, "--config", cfgFile, "members", "add", "YALE", "y1", "Bo Park", "2025")
			So(err, ShouldBeNil)
			out, err := run(t, "members", "list")

			Convey("Then the second run does not inherit the file", func() {
				So(err, ShouldBeNil)
				So(os.Getenv("REGATTA_CONFIG"), ShouldBeEmpty)
				So(out, ShouldNotContainSubstring, "YALE")
			})
		})

				Convey("When adding a member with a bad year", func() {
			_, err := run(t, "--members-dir", members, "members", "add", "NAVY", "n1", "Ann", "soon")

			Convey("Then it fails", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
