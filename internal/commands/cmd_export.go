package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/answer/internal/printer"
	"github.com/hay-kot/answer/internal/prompt"
	"github.com/hay-kot/answer/pkg/tmpl"
)

type ExportCmd struct {
	flags *Flags

	// Command-specific flags
	template string
	strict   bool
}

// NewExportCmd creates a new export command
func NewExportCmd(flags *Flags) *ExportCmd {
	return &ExportCmd{flags: flags}
}

// Register adds the export command to the application
func (cmd *ExportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "export",
		Usage:     "Print answers as shell assignments",
		UsageText: "answer export <name>... [options]",
		Description: `Prints the current answer of each name as a shell variable assignment.

The default template is:
  {{ .Var }}={{ .Value | shq }}

Template fields: .Name, .Var (upper-case shell name), .Value.
Template functions: shq (shell quote), upper, var.

Answers that are not stored are skipped unless --strict is set.

Example:
  eval "$(answer export lang region)"
  answer export lang --template 'export {{ .Var }}={{ .Value | shq }}'`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "template",
				Aliases:     []string{"t"},
				Usage:       "Go template rendered per answer",
				Value:       tmpl.DefaultExport,
				Destination: &cmd.template,
			},
			&cli.BoolFlag{
				Name:        "strict",
				Usage:       "fail when an answer is not stored",
				Destination: &cmd.strict,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ExportCmd) run(ctx context.Context, c *cli.Command) error {
	names := c.Args().Slice()
	if len(names) == 0 {
		return fmt.Errorf("at least one answer name required\n\nUsage: %s", c.UsageText)
	}

	var lines []string
	for _, name := range names {
		store, err := cmd.flags.Open(ctx, name)
		if err != nil {
			return err
		}

		v, ok := store.Get()
		if !ok {
			if cmd.strict {
				return fmt.Errorf("no answer stored for %q", name)
			}
			printer.Ctx(ctx).Warnf("Skipping %s: no answer stored", name)
			continue
		}

		line, err := tmpl.Render(cmd.template, tmpl.Export{
			Name:  name,
			Var:   tmpl.VarName(name),
			Value: prompt.FormatValue(v),
		})
		if err != nil {
			return fmt.Errorf("render %s: %w", name, err)
		}
		lines = append(lines, line)
	}

	if len(lines) == 0 {
		return nil
	}

	_, err := fmt.Fprintln(c.Root().Writer, strings.Join(lines, "\n"))
	return err
}
