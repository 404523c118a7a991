package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/answer/internal/core/answer"
	"github.com/hay-kot/answer/internal/printer"
	"github.com/hay-kot/answer/internal/prompt"
)

type UndoCmd struct {
	flags *Flags
}

// NewUndoCmd creates the undo, redo, erase and backup commands
func NewUndoCmd(flags *Flags) *UndoCmd {
	return &UndoCmd{flags: flags}
}

// Register adds the history editing commands to the application
func (cmd *UndoCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands,
		&cli.Command{
			Name:        "undo",
			Usage:       "Roll back to the previous answer",
			UsageText:   "answer undo <name>",
			Description: "Moves the current answer onto the rollback stack. 'answer redo' restores it.",
			Action:      cmd.runUndo,
		},
		&cli.Command{
			Name:        "redo",
			Usage:       "Restore the last undone answer",
			UsageText:   "answer redo <name>",
			Description: "Moves the most recently undone value back onto the answer history.",
			Action:      cmd.runRedo,
		},
		&cli.Command{
			Name:        "erase",
			Usage:       "Permanently remove the current answer",
			UsageText:   "answer erase <name>",
			Description: "Removes the current answer without keeping it for redo.",
			Action:      cmd.runErase,
		},
		&cli.Command{
			Name:        "backup",
			Usage:       "Copy the answer history onto the rollback stack",
			UsageText:   "answer backup <name>",
			Description: "Appends every stored answer to the rollback stack and saves. The history itself is unchanged.",
			Action:      cmd.runBackup,
		},
	)

	return app
}

func (cmd *UndoCmd) runUndo(ctx context.Context, c *cli.Command) error {
	return cmd.apply(ctx, c, func(s *answer.Store) error {
		if s.Len() == 0 {
			printer.Ctx(ctx).Infof("Nothing to undo")
			return nil
		}
		if err := s.Undo(); err != nil {
			return err
		}
		cmd.reportCurrent(ctx, s)
		return nil
	})
}

func (cmd *UndoCmd) runRedo(ctx context.Context, c *cli.Command) error {
	return cmd.apply(ctx, c, func(s *answer.Store) error {
		if len(s.Rollback()) == 0 {
			printer.Ctx(ctx).Infof("Nothing to redo")
			return nil
		}
		if err := s.Redo(); err != nil {
			return err
		}
		cmd.reportCurrent(ctx, s)
		return nil
	})
}

func (cmd *UndoCmd) runErase(ctx context.Context, c *cli.Command) error {
	return cmd.apply(ctx, c, func(s *answer.Store) error {
		if err := s.Erase(); err != nil {
			return err
		}
		cmd.reportCurrent(ctx, s)
		return nil
	})
}

func (cmd *UndoCmd) runBackup(ctx context.Context, c *cli.Command) error {
	return cmd.apply(ctx, c, func(s *answer.Store) error {
		s.Backup()
		if err := s.Save(); err != nil {
			return err
		}
		printer.Ctx(ctx).Successf("Backed up %d answer(s) of %s", s.Len(), s.Name())
		return nil
	})
}

func (cmd *UndoCmd) apply(ctx context.Context, c *cli.Command, fn func(*answer.Store) error) error {
	name, err := nameArg(c)
	if err != nil {
		return err
	}

	store, err := cmd.flags.Open(ctx, name)
	if err != nil {
		return err
	}

	return fn(store)
}

func (cmd *UndoCmd) reportCurrent(ctx context.Context, s *answer.Store) {
	p := printer.Ctx(ctx)
	if v, ok := s.Get(); ok {
		p.Successf("%s = %s", s.Name(), prompt.FormatValue(v))
		return
	}
	p.Successf("%s has no answer", s.Name())
}
