package config_test

import (
	"errors"
	"testing"

	"github.com/okian/regatta/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.MembersDir, convey.ShouldEqual, "members")
			convey.So(cfg.MetricsEnabled, convey.ShouldBeTrue)
			convey.So(cfg.Combined, convey.ShouldBeFalse)
			convey.So(cfg.DefaultDivisions, convey.ShouldEqual, 2)
			convey.So(cfg.DefaultRaces, convey.ShouldEqual, 18)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with one bad field", t, func() {
		cases := map[string]func(*config.Config){
			"log level": func(c *config.Config) { c.LogLevel = "loud" },
			"members":   func(c *config.Config) { c.MembersDir = "" },
			"no div":    func(c *config.Config) { c.DefaultDivisions = 0 },
			"too many":  func(c *config.Config) { c.DefaultDivisions = 27 },
			"no races":  func(c *config.Config) { c.DefaultRaces = 0 },
		}
		for name, mutate := range cases {
			cfg := config.New()
			mutate(cfg)

			convey.Convey("Then "+name+" is rejected", func() {
				convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		}

		convey.Convey("Then the log level is case-insensitive", func() {
			cfg := config.New()
			cfg.LogLevel = "DEBUG"
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
