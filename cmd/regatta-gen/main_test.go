package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/regatta/internal/adapters/sheet"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenerate(t *testing.T) {
	Convey("Given the generator command", t, func() {
		var out, errOut bytes.Buffer
		app := newApp(&out, &errOut)

		Convey("When writing a small sheet to stdout", func() {
			err := app.Run([]string{"regatta-gen", "--teams", "4", "--races", "3", "--divisions", "1"})

			Convey("Then the output decodes as a sheet", func() {
				So(err, ShouldBeNil)
				doc, err := sheet.Decode(strings.NewReader(out.String()))
				So(err, ShouldBeNil)
				So(doc.Teams, ShouldHaveLength, 4)
				So(doc.Finishes, ShouldHaveLength, 3)
			})
		})

		Convey("When writing to files", func() {
			dir := t.TempDir()
			path := filepath.Join(dir, "sample.yaml")
			err := app.Run([]string{"regatta-gen", "-o", path, "--members-dir", filepath.Join(dir, "members"), "--sailors", "2"})

			Convey("Then the sheet and member files exist", func() {
				So(err, ShouldBeNil)
				_, statErr := os.Stat(path)
				So(statErr, ShouldBeNil)
				_, statErr = os.Stat(filepath.Join(dir, "members", "MIT"))
				So(statErr, ShouldBeNil)
				So(errOut.String(), ShouldContainSubstring, "wrote 24 members")
			})
		})

		Convey("When the config is invalid", func() {
			err := app.Run([]string{"regatta-gen", "--teams", "0"})

			Convey("Then the command fails", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
