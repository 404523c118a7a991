package commands

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/answer/internal/printer"
	"github.com/hay-kot/answer/internal/prompt"
)

type HistoryCmd struct {
	flags *Flags

	// Command-specific flags
	discard string
}

// NewHistoryCmd creates a new history command
func NewHistoryCmd(flags *Flags) *HistoryCmd {
	return &HistoryCmd{flags: flags}
}

// Register adds the history command to the application
func (cmd *HistoryCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "history",
		Usage:     "View or manage answer snapshots",
		UsageText: "answer history <name> [n] [options]",
		Description: `Lists timestamped snapshots recorded for <name>, oldest first.

Snapshots are recorded on every set when history.enabled is true in the
config file. Only the newest history.keep snapshots are retained.
Pass n to show only the newest n snapshots.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "discard",
				Usage:       "remove the snapshot with this ID",
				Destination: &cmd.discard,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *HistoryCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	name, err := nameArg(c)
	if err != nil {
		return err
	}

	hist, err := cmd.flags.History(name)
	if err != nil {
		return err
	}

	if cmd.discard != "" {
		if err := hist.Discard(ctx, cmd.discard); err != nil {
			return fmt.Errorf("discard snapshot: %w", err)
		}
		p.Successf("Discarded snapshot %s", cmd.discard)
		return nil
	}

	n := 0
	if c.Args().Len() > 1 {
		n, err = strconv.Atoi(c.Args().Get(1))
		if err != nil {
			return fmt.Errorf("invalid count %q: %w", c.Args().Get(1), err)
		}
	}

	snaps, err := hist.Prev(ctx, n)
	if err != nil {
		return fmt.Errorf("list snapshots: %w", err)
	}

	if len(snaps) == 0 {
		if !cmd.flags.Config.History.Enabled {
			p.Infof("History is disabled; set history.enabled in %s", cmd.flags.ConfigPath)
		} else {
			p.Infof("No snapshots for %s", name)
		}
		return nil
	}

	w := tabwriter.NewWriter(c.Root().Writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tTIME\tVALUE")

	for _, s := range snaps {
		value := truncate(prompt.FormatValue(s.Value), 50)

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n",
			s.ID,
			s.Created.Local().Format("2006-01-02 15:04:05"),
			value,
		)
	}

	return w.Flush()
}

// truncate shortens s to at most n runes, ending in "..." when cut.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
