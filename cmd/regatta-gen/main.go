// Command regatta-gen writes a random but valid regatta sheet and, when asked,
// the membership files of its schools.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/okian/regatta/internal/adapters/members"
	"github.com/okian/regatta/internal/adapters/sheet"
	"github.com/okian/regatta/internal/sample"
	"github.com/okian/regatta/pkg/logger"
)

const (
	outputFlag     = "output"
	membersFlag    = "members-dir"
	stdoutCLIName  = "-"
	defaultOutMode = 0o644
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(out, errOut io.Writer) *cli.App {
	cfg := sample.DefaultConfig()
	var output, membersDir string
	var verbose bool

	return &cli.App{
		Name:      "regatta-gen",
		Usage:     "Generate a sample regatta sheet",
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: outputFlag, Aliases: []string{"o"}, Value: stdoutCLIName, Usage: `sheet path or "-" for stdout`, Destination: &output},
			&cli.StringFlag{Name: membersFlag, Usage: "also write membership files here", Destination: &membersDir},
			&cli.StringFlag{Name: "name", Value: cfg.Name, Usage: "regatta name", Destination: &cfg.Name},
			&cli.IntFlag{Name: "divisions", Value: cfg.Divisions, Usage: "number of divisions", Destination: &cfg.Divisions},
			&cli.IntFlag{Name: "races", Value: cfg.Races, Usage: "races per division", Destination: &cfg.Races},
			&cli.IntFlag{Name: "teams", Value: cfg.Teams, Usage: "number of teams", Destination: &cfg.Teams},
			&cli.IntFlag{Name: "sailors", Value: cfg.SailorsPerTeam, Usage: "members per team", Destination: &cfg.SailorsPerTeam},
			&cli.Float64Flag{Name: "penalty-rate", Value: cfg.PenaltyRate, Usage: "chance a finish is penalized", Destination: &cfg.PenaltyRate},
			&cli.BoolFlag{Name: "combined", Usage: "give every division distinct sails", Destination: &cfg.Combined},
			&cli.Uint64Flag{Name: "seed", Value: cfg.Seed, Usage: "random seed", Destination: &cfg.Seed},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log progress to stderr", Destination: &verbose},
		},
		Action: func(c *cli.Context) error {
			log := logger.Nop()
			if verbose {
				if err := logger.InitWriter(c.App.ErrWriter); err != nil {
					return err
				}
				log = logger.Get().Named("regatta-gen")
			}

			gen, err := sample.New(cfg, sample.WithLogger(log))
			if err != nil {
				return err
			}
			doc, err := gen.Sheet()
			if err != nil {
				return err
			}
			if err := writeSheet(c.App.Writer, output, doc); err != nil {
				return err
			}
			if membersDir == "" {
				return nil
			}
			n, err := gen.SaveMembers(c.Context, members.NewFileStore(membersDir, members.WithLogger(log)))
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.ErrWriter, "wrote %d members to %s\n", n, membersDir)
			return nil
		},
	}
}

func writeSheet(stdout io.Writer, output string, doc *sheet.Sheet) error {
	if output == stdoutCLIName {
		return sheet.Encode(stdout, doc)
	}
	f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, defaultOutMode)
	if err != nil {
		return err
	}
	if err := sheet.Encode(f, doc); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
