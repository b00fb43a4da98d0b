package qgrover

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/pflag"
)

func TestConfig(t *testing.T) {
	Convey("Given the default config", t, func() {
		cfg := NewConfig()

		Convey("It runs 100 shots into a histogram", func() {
			So(cfg.Shots, ShouldEqual, DefaultShots)
			So(cfg.Output, ShouldEqual, OutputHistogram)
			So(cfg.Validate(), ShouldBeNil)
		})

		Convey("Zero shots is invalid", func() {
			cfg.Shots = 0
			So(errors.Is(cfg.Validate(), ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("Unknown outputs are invalid", func() {
			cfg.Output = "png"
			So(errors.Is(cfg.Validate(), ErrInvalidConfig), ShouldBeTrue)
		})
	})

	Convey("Given parsed flags", t, func() {
		fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
		Flags(fs)

		Convey("Flags override defaults", func() {
			So(fs.Parse([]string{"--shots", "250", "--seed", "9", "--output", "QASM"}), ShouldBeNil)

			cfg, err := LoadConfig(fs)
			So(err, ShouldBeNil)
			So(cfg.Shots, ShouldEqual, 250)
			So(cfg.Seed, ShouldEqual, uint64(9))
			So(cfg.Output, ShouldEqual, OutputQASM)
		})

		Convey("A config file is read when named", func() {
			path := filepath.Join(t.TempDir(), "qgrover.yaml")
			So(os.WriteFile(path, []byte("shots: 12\noutput: memory\n"), 0o600), ShouldBeNil)
			So(fs.Parse([]string{"--config", path}), ShouldBeNil)

			cfg, err := LoadConfig(fs)
			So(err, ShouldBeNil)
			So(cfg.Shots, ShouldEqual, 12)
			So(cfg.Output, ShouldEqual, OutputMemory)
		})

		Convey("Invalid values are rejected", func() {
			So(fs.Parse([]string{"--shots=-1"}), ShouldBeNil)

			_, err := LoadConfig(fs)
			So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)
		})
	})

	Convey("Given no flags at all", t, func() {
		Convey("LoadConfig falls back to defaults", func() {
			cfg, err := LoadConfig(nil)
			So(err, ShouldBeNil)
			So(cfg.Shots, ShouldEqual, DefaultShots)
		})
	})
}
