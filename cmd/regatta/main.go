// Command regatta scores regatta sheets, checks their sail rotations and
// maintains the membership store.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	service "github.com/okian/regatta/internal/app"
	"github.com/okian/regatta/internal/config"
	"github.com/okian/regatta/internal/domain/model"
	"github.com/okian/regatta/pkg/logger"
	"github.com/okian/regatta/pkg/metrics"
)

const (
	configFlag      = "config"
	logLevelFlag    = "log-level"
	metricsFileFlag = "metrics-file"
	membersDirFlag  = "members-dir"
	sheetFlag       = "sheet"
	rosterFlag      = "roster"
	combinedFlag    = "combined"
	strictFlag      = "strict"
	newFlag         = "new"

	exitRotation = 3
)

var build string
var semanticVersion = "v0.1.0-dev" + build

func main() {
	err := newApp(os.Stdout, os.Stderr).Run(os.Args)
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, err)
	var exit cli.ExitCoder
	if errors.As(err, &exit) {
		os.Exit(exit.ExitCode())
	}
	os.Exit(1)
}

// runner carries state from the global Before hook to the commands.
type runner struct {
	cfg *config.Config
	log logger.Logger
}

func (r *runner) service(opts ...service.Option) *service.Service {
	base := []service.Option{service.WithConfig(r.cfg), service.WithLogger(r.log)}
	return service.New(append(base, opts...)...)
}

func newApp(out, errOut io.Writer) *cli.App {
	r := &runner{}
	sheet := &cli.StringFlag{
		Name:     sheetFlag,
		Aliases:  []string{"s"},
		Usage:    "path to the regatta sheet (YAML)",
		Required: true,
	}

	return &cli.App{
		Name:      "regatta",
		Usage:     "Score sailing regattas and check sail rotations",
		Version:   semanticVersion,
		Writer:    out,
		ErrWriter: errOut,

		// main maps exit codes; commands never exit the process themselves.
		ExitErrHandler: func(*cli.Context, error) {},

		Flags: []cli.Flag{
			&cli.StringFlag{Name: configFlag, Aliases: []string{"c"}, Usage: "YAML config file", EnvVars: []string{config.EnvFile}},
			&cli.StringFlag{Name: logLevelFlag, Usage: "debug, info, warn or error"},
			&cli.StringFlag{Name: metricsFileFlag, Usage: "write Prometheus metrics to this textfile on exit"},
			&cli.StringFlag{Name: membersDirFlag, Usage: "membership store directory"},
		},
		Before: func(c *cli.Context) error {
			if err := logger.InitWriter(c.App.ErrWriter); err != nil {
				return err
			}
			cfg, err := config.LoadFile(c.Context, c.String(configFlag))
			if err != nil {
				return err
			}
			if c.IsSet(logLevelFlag) {
				cfg.LogLevel = c.String(logLevelFlag)
			}
			if c.IsSet(metricsFileFlag) {
				cfg.MetricsFile = c.String(metricsFileFlag)
			}
			if c.IsSet(membersDirFlag) {
				cfg.MembersDir = c.String(membersDirFlag)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := logger.SetLevelString(cfg.LogLevel); err != nil {
				return err
			}
			r.cfg, r.log = cfg, logger.Get()
			return nil
		},
		After: func(c *cli.Context) error {
			if r.cfg == nil || r.cfg.MetricsFile == "" {
				return nil
			}
			return metrics.WriteTextfile(r.cfg.MetricsFile)
		},
		Commands: []*cli.Command{
			{
				Name:  "score",
				Usage: "score a regatta sheet and print the standings",
				Flags: []cli.Flag{
					sheet,
					&cli.BoolFlag{Name: rosterFlag, Usage: "load team members from the membership store"},
				},
				Action: r.score,
			},
			{
				Name:  "check",
				Usage: "report races with an inconsistent sail rotation",
				Flags: []cli.Flag{
					sheet,
					&cli.BoolFlag{Name: combinedFlag, Usage: "divisions start together and share sails"},
					&cli.BoolFlag{Name: strictFlag, Usage: "exit non-zero when a race is inconsistent"},
				},
				Action: r.check,
			},
			{
				Name:  "members",
				Usage: "inspect and edit the membership store",
				Subcommands: []*cli.Command{
					{
						Name:      "list",
						Usage:     "list affiliations, or the members of one",
						ArgsUsage: "[AFFILIATION]",
						Action:    r.listMembers,
					},
					{
						Name:      "add",
						Usage:     "add or replace a member",
						ArgsUsage: "AFFILIATION ID NAME YEAR",
						Flags: []cli.Flag{
							&cli.BoolFlag{Name: newFlag, Usage: "mark the member as new"},
						},
						Action: r.addMember,
					},
				},
			},
		},
	}
}

func (r *runner) score(c *cli.Context) error {
	svc := r.service()
	reg, err := svc.Open(c.Context, c.String(sheetFlag))
	if err != nil {
		return err
	}
	if c.Bool(rosterFlag) {
		if _, err := svc.Roster(c.Context, reg); err != nil {
			return err
		}
	}
	entries, err := svc.Score(c.Context, reg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\n\n", reg.Name())
	fmt.Fprintln(w, "RANK\tTEAM\tTOTAL")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%d\n", e.Rank, e.Team, e.Total)
	}
	if c.Bool(rosterFlag) {
		fmt.Fprintf(w, "\n%d sailors on roster\n", len(reg.Roster()))
	}
	fmt.Fprintf(w, "\n%s\n", svc.Rules())
	return w.Flush()
}

func (r *runner) check(c *cli.Context) error {
	var opts []service.Option
	if c.IsSet(combinedFlag) {
		opts = append(opts, service.WithCombined(c.Bool(combinedFlag)))
	}
	svc := r.service(opts...)
	reg, err := svc.Open(c.Context, c.String(sheetFlag))
	if err != nil {
		return err
	}
	bad := svc.Check(c.Context, reg)
	if len(bad) == 0 {
		fmt.Fprintln(c.App.Writer, "rotation ok")
		return nil
	}
	names := make([]string, len(bad))
	for i, race := range bad {
		names[i] = race.String()
	}
	fmt.Fprintf(c.App.Writer, "inconsistent races: %s\n", strings.Join(names, " "))
	if c.Bool(strictFlag) {
		return cli.Exit(fmt.Sprintf("%d inconsistent races", len(bad)), exitRotation)
	}
	return nil
}

func (r *runner) listMembers(c *cli.Context) error {
	svc := r.service()
	w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	if aff := c.Args().First(); aff != "" {
		list, err := svc.Members(c.Context, aff)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "ID\tNAME\tYEAR\tNEW")
		for _, m := range list {
			fmt.Fprintf(w, "%s\t%s\t%d\t%t\n", m.ID, m.Name, m.Year, m.IsNew)
		}
		return w.Flush()
	}

	affs, err := svc.Affiliations(c.Context)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "AFFILIATION\tMEMBERS")
	for _, aff := range affs {
		list, err := svc.Members(c.Context, aff)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\n", aff, len(list))
	}
	return w.Flush()
}

func (r *runner) addMember(c *cli.Context) error {
	const nargs = 4
	if c.NArg() != nargs {
		return cli.Exit("usage: members add AFFILIATION ID NAME YEAR", 2)
	}
	args := c.Args().Slice()
	year, err := strconv.Atoi(args[3])
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid year %q", args[3]), 2)
	}
	m := model.Member{
		Sailor: model.Sailor{ID: args[1], Name: args[2], Year: year},
		IsNew:  c.Bool(newFlag),
	}
	return r.service().AddMember(c.Context, args[0], m)
}
