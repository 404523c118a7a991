package commands

import (
	"context"
	"encoding/json"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/answer/internal/printer"
	"github.com/hay-kot/answer/internal/prompt"
	"github.com/hay-kot/answer/internal/styles"
)

type ListCmd struct {
	flags *Flags

	// Command-specific flags
	format   string
	rollback bool
}

// NewListCmd creates a new list command
func NewListCmd(flags *Flags) *ListCmd {
	return &ListCmd{flags: flags}
}

// Register adds the list command to the application
func (cmd *ListCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List the answer history",
		UsageText: "answer list <name> [options]",
		Description: `Lists every stored answer for <name>, oldest first. The last entry is
the current answer.

Use --rollback to also show values removed by undo, backup or del that
'answer redo' can restore.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
			&cli.BoolFlag{
				Name:        "rollback",
				Aliases:     []string{"r"},
				Usage:       "include the rollback stack",
				Destination: &cmd.rollback,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ListCmd) run(ctx context.Context, c *cli.Command) error {
	name, err := nameArg(c)
	if err != nil {
		return err
	}

	store, err := cmd.flags.Open(ctx, name)
	if err != nil {
		return err
	}

	if cmd.format == "json" {
		out := map[string]any{"entries": store.List()}
		if cmd.rollback {
			out["rollback"] = store.Rollback()
		}
		enc := json.NewEncoder(c.Root().Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	p := printer.New(c.Root().Writer)
	entries := store.List()
	if len(entries) == 0 {
		printer.Ctx(ctx).Infof("No answers stored for %s", name)
	}

	for i, v := range entries {
		text := prompt.FormatValue(v)
		if i == len(entries)-1 {
			text = styles.CurrentStyle.Render(text)
		}
		p.Item(i, text)
	}

	if cmd.rollback && len(store.Rollback()) > 0 {
		p.Printf("")
		p.Printf("rollback")
		for i, v := range store.Rollback() {
			p.Item(i, styles.MutedStyle.Render(prompt.FormatValue(v)))
		}
	}

	return nil
}
