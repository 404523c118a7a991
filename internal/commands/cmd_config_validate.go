package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/answer/internal/core/answer"
	"github.com/hay-kot/answer/internal/core/config"
	"github.com/hay-kot/answer/internal/printer"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:      "validate",
				Usage:     "Validate configuration file",
				UsageText: "answer config validate [options]",
				Description: `Validates the configuration file: the answers directory, history
settings and question definitions. Exits with status 1 on errors; warnings
alone do not fail.`,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

// validationReport is the outcome of validating the loaded config.
type validationReport struct {
	Config   string                     `json:"config"`
	Cwd      string                     `json:"cwd"`
	Valid    bool                       `json:"valid"`
	Errors   []validationIssue          `json:"errors,omitempty"`
	Warnings []config.ValidationWarning `json:"warnings,omitempty"`
}

type validationIssue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.flags.Config == nil {
		return fmt.Errorf("configuration not loaded")
	}

	report := cmd.validate()

	if cmd.format == "json" {
		enc := json.NewEncoder(c.Root().Writer)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		cmd.print(printer.Ctx(ctx), report)
	}

	if !report.Valid {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *ConfigValidateCmd) validate() validationReport {
	cfg := cmd.flags.Config

	report := validationReport{
		Config:   cmd.flags.ConfigPath,
		Cwd:      cfg.Cwd,
		Warnings: cfg.Warnings(),
	}
	if dir, err := answer.ResolveDir(cfg.StoreOptions()); err == nil {
		report.Cwd = dir
	}

	for _, fe := range fieldErrors(cfg.ValidateDeep(cmd.flags.ConfigPath)) {
		report.Errors = append(report.Errors, validationIssue{Field: fe.Field, Message: fe.Err.Error()})
	}
	report.Valid = len(report.Errors) == 0

	return report
}

// fieldErrors flattens a validation error into criterio field errors.
func fieldErrors(err error) criterio.FieldErrors {
	if err == nil {
		return nil
	}
	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) {
		return fieldErrs
	}
	return criterio.FieldErrors{{Err: err}}
}

func (cmd *ConfigValidateCmd) print(p *printer.Printer, r validationReport) {
	p.Section("Configuration")
	p.CheckItem("file", r.Config)
	p.CheckItem("answers", r.Cwd)

	for _, e := range r.Errors {
		label := e.Field
		if label == "" {
			label = "config"
		}
		p.FailItem(label, e.Message)
	}

	for _, w := range r.Warnings {
		label := w.Category
		if w.Item != "" {
			label = w.Item
		}
		p.WarnItem(label, w.Message)
	}

	p.Printf("")
	switch {
	case !r.Valid:
		p.Errorf("%d error(s), %d warning(s)", len(r.Errors), len(r.Warnings))
	case len(r.Warnings) > 0:
		p.Successf("Configuration is valid (%d warning(s))", len(r.Warnings))
	default:
		p.Successf("Configuration is valid")
	}
}
