package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/answer/internal/commands/doctor"
	"github.com/hay-kot/answer/internal/core/answer"
	"github.com/hay-kot/answer/internal/printer"
)

type DoctorCmd struct {
	flags  *Flags
	format string
	fix    bool
}

func NewDoctorCmd(flags *Flags) *DoctorCmd {
	return &DoctorCmd{flags: flags}
}

func (cmd *DoctorCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "doctor",
		Usage:       "Run health checks on your answer setup",
		UsageText:   "answer doctor [options]",
		Description: "Runs diagnostic checks on the configuration and every answer file in the answers directory.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
			&cli.BoolFlag{
				Name:        "fix",
				Usage:       "delete temp files left by interrupted saves",
				Destination: &cmd.fix,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *DoctorCmd) run(ctx context.Context, c *cli.Command) error {
	checks := []doctor.Check{
		doctor.NewConfigCheck(cmd.flags.Config, cmd.flags.ConfigPath),
	}

	if cmd.flags.Config != nil {
		dir, err := answer.ResolveDir(cmd.flags.Config.StoreOptions())
		if err != nil {
			return fmt.Errorf("resolve answers directory: %w", err)
		}
		checks = append(checks, doctor.NewAnswersCheck(cmd.flags.Backend, dir, cmd.fix))
	}

	results := doctor.RunAll(ctx, checks)

	if cmd.format == "json" {
		return cmd.outputJSON(c, results)
	}

	return cmd.outputText(ctx, results)
}

func (cmd *DoctorCmd) outputJSON(c *cli.Command, results []doctor.Result) error {
	totals := doctor.Summarize(results)

	out := struct {
		Healthy bool            `json:"healthy"`
		Summary doctor.Totals   `json:"summary"`
		Checks  []doctor.Result `json:"checks"`
	}{
		Healthy: totals.Healthy(),
		Summary: totals,
		Checks:  results,
	}

	enc := json.NewEncoder(c.Root().Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func (cmd *DoctorCmd) outputText(ctx context.Context, results []doctor.Result) error {
	p := printer.Ctx(ctx)

	for _, result := range results {
		p.Section(result.Name)

		for _, item := range result.Items {
			switch item.Status {
			case doctor.StatusPass:
				p.CheckItem(item.Label, item.Detail)
			case doctor.StatusWarn:
				p.WarnItem(item.Label, item.Detail)
			case doctor.StatusFail:
				p.FailItem(item.Label, item.Detail)
			}
		}

		p.Printf("")
	}

	totals := doctor.Summarize(results)
	p.Printf("Summary: %d passed, %d warnings, %d failed", totals.Passed, totals.Warned, totals.Failed)

	if totals.Fixable > 0 {
		p.Infof("Run 'answer doctor --fix' to repair %d issue(s)", totals.Fixable)
	}

	if !totals.Healthy() {
		return cli.Exit("", 1)
	}

	return nil
}
