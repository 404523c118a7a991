package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

type SetCmd struct {
	flags *Flags
	stdin *os.File
}

// NewSetCmd creates a new set command
func NewSetCmd(flags *Flags) *SetCmd {
	return &SetCmd{flags: flags, stdin: os.Stdin}
}

// Register adds the set command to the application
func (cmd *SetCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "set",
		Usage:     "Record a new answer",
		UsageText: "answer set <name> [value...]",
		Description: `Appends a value to the answer history of <name>.

Values that parse as JSON are stored as JSON; anything else is stored as a
string. Without a value argument the value is read from stdin.

Example:
  answer set lang en
  answer set ports '[80, 443]'
  echo '{"name": "x"}' | answer set project`,
		Action: cmd.run,
	})

	return app
}

func (cmd *SetCmd) run(ctx context.Context, c *cli.Command) error {
	name, err := nameArg(c)
	if err != nil {
		return err
	}

	raw, err := cmd.readValue(c)
	if err != nil {
		return err
	}

	store, err := cmd.flags.Open(ctx, name)
	if err != nil {
		return err
	}

	return saveAnswer(ctx, store, raw)
}

func (cmd *SetCmd) readValue(c *cli.Command) (string, error) {
	args := c.Args().Slice()
	if len(args) > 1 {
		return strings.Join(args[1:], " "), nil
	}

	if term.IsTerminal(int(cmd.stdin.Fd())) {
		return "", fmt.Errorf("no value provided (stdin is a terminal); pass a value or pipe it in")
	}

	data, err := io.ReadAll(cmd.stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}
