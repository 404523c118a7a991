package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/answer/internal/printer"
)

type DelCmd struct {
	flags *Flags

	// destroy flag
	history bool
}

// NewDelCmd creates the del and destroy commands
func NewDelCmd(flags *Flags) *DelCmd {
	return &DelCmd{flags: flags}
}

// Register adds the del and destroy commands to the application
func (cmd *DelCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands,
		&cli.Command{
			Name:      "del",
			Usage:     "Delete the answer file",
			UsageText: "answer del <name>",
			Description: `Deletes the answer file for <name>.

The answers are copied onto the in-memory rollback stack first, which only
matters to callers embedding the store; from the CLI the file is gone.`,
			Action: cmd.runDel,
		},
		&cli.Command{
			Name:      "destroy",
			Usage:     "Delete the answer file and all history",
			UsageText: "answer destroy <name> [options]",
			Description: `Clears every answer and the rollback stack and deletes the file.
This cannot be undone.`,
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:        "history",
					Usage:       "also delete recorded snapshots",
					Destination: &cmd.history,
				},
			},
			Action: cmd.runDestroy,
		},
	)

	return app
}

func (cmd *DelCmd) runDel(ctx context.Context, c *cli.Command) error {
	name, err := nameArg(c)
	if err != nil {
		return err
	}

	store, err := cmd.flags.Open(ctx, name)
	if err != nil {
		return err
	}

	if err := store.Del(); err != nil {
		return err
	}

	printer.Ctx(ctx).Successf("Deleted %s", store.Path())
	return nil
}

func (cmd *DelCmd) runDestroy(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	name, err := nameArg(c)
	if err != nil {
		return err
	}

	store, err := cmd.flags.Open(ctx, name)
	if err != nil {
		return err
	}

	if err := store.Destroy(); err != nil {
		return err
	}

	if cmd.history {
		hist, err := cmd.flags.History(name)
		if err != nil {
			return err
		}

		snaps, err := hist.List(ctx)
		if err != nil {
			return fmt.Errorf("list snapshots: %w", err)
		}
		for _, snap := range snaps {
			if err := hist.Discard(ctx, snap.ID); err != nil {
				p.Warnf("Failed to discard snapshot %s: %v", snap.ID, err)
			}
		}
		p.Infof("Discarded %d snapshot(s)", len(snaps))
	}

	p.Successf("Destroyed %s", name)
	return nil
}
