package cli

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/imgrid/imgrid/pkg/compose"
	"github.com/imgrid/imgrid/pkg/errors"
)

// runCompose is the root command body. It resolves configuration, builds
// the session, and dispatches to batch or interactive mode.
func (c *CLI) runCompose(ctx context.Context, paths []string, f composeFlags, fs *pflag.FlagSet) error {
	cfg, err := c.loadConfig(f)
	if err != nil {
		return err
	}
	if !c.levelSet {
		level, err := cfg.LogLevel()
		if err != nil {
			return err
		}
		c.Logger.SetLevel(level)
	}

	opts, err := buildOptions(cfg, f, fs)
	if err != nil {
		return err
	}
	opts.Logger = c.Logger

	sess, err := compose.New(paths, opts)
	if err != nil {
		return err
	}

	if f.batch {
		return c.runBatch(ctx, sess)
	}
	return c.runInteractive(ctx, sess)
}

// runBatch reads the inputs, writes the composite, and exits. Preset
// crops from -k flags are already applied to the session, so a recorded
// command line reproduces its editing session exactly.
func (c *CLI) runBatch(ctx context.Context, sess *compose.Session) error {
	prog := newProgress(c.Logger)

	if err := sess.Load(ctx); err != nil {
		return err
	}
	if err := sess.Write(ctx); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Composed %d images", len(sess.Images())))

	plan := sess.Plan()
	printSuccess("Wrote composite")
	printFile(sess.OutputPath())
	printStats(len(sess.Images()), plan.Cols, plan.Rows, plan.UsedWidth, plan.UsedHeight)
	return nil
}

// runInteractive opens the full-screen editor and reports the session
// result after the terminal is restored.
func (c *CLI) runInteractive(ctx context.Context, sess *compose.Session) error {
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Reading %d images...", len(sess.Images())))
	spinner.Start()
	err := sess.Load(ctx)
	spinner.Stop()
	if err != nil {
		return err
	}

	// The alternate screen owns the terminal; route log lines nowhere
	// until the editor exits.
	c.Logger.SetOutput(io.Discard)
	defer c.Logger.SetOutput(c.logOutput)

	p := tea.NewProgram(newComposerModel(sess), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "interactive editor failed")
	}

	m, ok := final.(composerModel)
	if !ok {
		return errors.New(errors.ErrCodeInternal, "editor returned unexpected model %T", final)
	}
	if m.fatal != nil {
		return m.fatal
	}

	if m.wrote {
		printSuccess("Wrote composite")
		printFile(sess.OutputPath())
	}
	plan := sess.Plan()
	printStats(len(sess.Images()), plan.Cols, plan.Rows, plan.UsedWidth, plan.UsedHeight)
	printNextStep("Recreate with", sess.Command())
	return nil
}
