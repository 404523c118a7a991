package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/answer/internal/core/answer"
	"github.com/hay-kot/answer/internal/printer"
	"github.com/hay-kot/answer/internal/prompt"
)

type AskCmd struct {
	flags *Flags

	// Command-specific flags
	question string
	force    bool
}

// NewAskCmd creates a new ask command
func NewAskCmd(flags *Flags) *AskCmd {
	return &AskCmd{flags: flags}
}

// Register adds the ask command to the application
func (cmd *AskCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ask",
		Usage:     "Ask a question once and remember the answer",
		UsageText: "answer ask <name> [options]",
		Description: `Prompts for the answer to <name> unless one is already stored.

The stored answer is printed when present. Use --force to ask again; the
previous answer stays in the history and can be restored with 'answer undo'.

Questions can be configured per name in the config file:

  questions:
    lang:
      message: Which language?
      default: en
      options: [en, fr, de]`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "question",
				Aliases:     []string{"q"},
				Usage:       "question to show (overrides config)",
				Destination: &cmd.question,
			},
			&cli.BoolFlag{
				Name:        "force",
				Aliases:     []string{"f"},
				Usage:       "ask even if an answer is stored",
				Destination: &cmd.force,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *AskCmd) run(ctx context.Context, c *cli.Command) error {
	name, err := nameArg(c)
	if err != nil {
		return err
	}

	store, err := cmd.flags.Open(ctx, name)
	if err != nil {
		return err
	}

	current, ok := store.Get()
	if ok && !cmd.force {
		return printer.New(c.Root().Writer).Value(current)
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("cannot prompt for %q: stdin is not a terminal; use 'answer set' instead", name)
	}

	q := cmd.flags.Config.Question(name)
	if cmd.question != "" {
		q.Message = cmd.question
	}

	raw, err := prompt.Ask(q, current)
	if err != nil {
		return fmt.Errorf("prompt: %w", err)
	}

	return saveAnswer(ctx, store, raw)
}

// saveAnswer stores raw input the same way for ask and set: JSON when it
// parses, otherwise the string itself.
func saveAnswer(ctx context.Context, store *answer.Store, raw string) error {
	value := prompt.ParseValue(raw)
	if err := store.Set(value); err != nil {
		return err
	}

	printer.Ctx(ctx).Successf("Saved %s = %s", store.Name(), prompt.FormatValue(value))
	return nil
}
