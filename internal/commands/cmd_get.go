package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/answer/internal/printer"
)

type GetCmd struct {
	flags *Flags
}

// NewGetCmd creates the get and prev commands
func NewGetCmd(flags *Flags) *GetCmd {
	return &GetCmd{flags: flags}
}

// Register adds the get and prev commands to the application
func (cmd *GetCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands,
		&cli.Command{
			Name:      "get",
			Usage:     "Print the current answer",
			UsageText: "answer get <name>",
			Description: `Prints the most recent answer for <name>.

Strings are printed as-is, other values as JSON. Exits with status 1 when
no answer is stored.`,
			Action: cmd.runGet,
		},
		&cli.Command{
			Name:      "prev",
			Usage:     "Print an earlier answer",
			UsageText: "answer prev <name> [n]",
			Description: `Prints the answer n steps before the current one.

'answer prev <name> 0' is the same as 'answer get <name>'.`,
			Action: cmd.runPrev,
		},
	)

	return app
}

func (cmd *GetCmd) runGet(ctx context.Context, c *cli.Command) error {
	return cmd.print(ctx, c, 0)
}

func (cmd *GetCmd) runPrev(ctx context.Context, c *cli.Command) error {
	n := 0
	if c.Args().Len() > 1 {
		var err error
		n, err = strconv.Atoi(c.Args().Get(1))
		if err != nil {
			return fmt.Errorf("invalid step %q: %w", c.Args().Get(1), err)
		}
	}
	return cmd.print(ctx, c, n)
}

func (cmd *GetCmd) print(ctx context.Context, c *cli.Command, n int) error {
	name, err := nameArg(c)
	if err != nil {
		return err
	}

	store, err := cmd.flags.Open(ctx, name)
	if err != nil {
		return err
	}

	v, ok := store.Prev(n)
	if !ok {
		printer.Ctx(ctx).Warnf("No answer stored for %s", name)
		return cli.Exit("", 1)
	}

	return printer.New(c.Root().Writer).Value(v)
}
