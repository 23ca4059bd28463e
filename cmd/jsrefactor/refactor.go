package main

import (
	"fmt"
	"maps"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/bethropolis/jsrefactor/internal/buffer"
	"github.com/bethropolis/jsrefactor/internal/clipboard"
	"github.com/bethropolis/jsrefactor/internal/config"
	"github.com/bethropolis/jsrefactor/internal/host"
	"github.com/bethropolis/jsrefactor/internal/logger"
	"github.com/bethropolis/jsrefactor/plugins/autosave"
	"github.com/bethropolis/jsrefactor/plugins/refactoring"
)

var (
	errorColor  = color.New(color.FgRed, color.Bold)
	cursorColor = color.New(color.FgCyan)
)

// newClipboard is replaced in tests.
var newClipboard = func() *clipboard.Manager { return clipboard.NewManager(true) }

type refactorOptions struct {
	offset    int
	at        string
	selection string
	write     bool
	clipboard bool
}

func newRefactorCmd(flags *config.Flags, use, command, short string) *cobra.Command {
	opts := &refactorOptions{}
	cmd := &cobra.Command{
		Use:   use + " [flags] [FILE]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRefactor(cmd, flags, opts, command, args)
		},
	}
	cmd.Flags().IntVar(&opts.offset, "offset", 0, "cursor byte offset")
	cmd.Flags().StringVar(&opts.at, "at", "", "cursor position as LINE:COL (1-based)")
	cmd.Flags().StringVar(&opts.selection, "select", "", "selection as START:END byte offsets")
	cmd.Flags().BoolVar(&opts.write, "write", false, "save the result back to FILE")
	cmd.Flags().BoolVar(&opts.clipboard, "clipboard", false, "read the source from the clipboard when FILE is omitted and copy the result to it")
	cmd.MarkFlagsMutuallyExclusive("offset", "at", "select")
	return cmd
}

func runRefactor(cmd *cobra.Command, flags *config.Flags, opts *refactorOptions, command string, args []string) error {
	if len(args) == 0 && !opts.clipboard {
		return fmt.Errorf("a FILE or --clipboard is required")
	}
	if len(args) == 0 && opts.write {
		return fmt.Errorf("--write needs a FILE")
	}

	cfg, engine, closeLog, err := setup(flags)
	if err != nil {
		return err
	}
	defer closeLog()

	clip := newClipboard()
	ed, err := openEditor(cfg, clip, opts, args)
	if err != nil {
		return err
	}
	defer ed.Close()
	if err := ed.LoadPlugins(refactoring.New(engine), autosave.New()); err != nil {
		return err
	}

	sel, err := resolveSelection(ed.GetBuffer(), opts.offset, opts.at, opts.selection)
	if err != nil {
		return err
	}
	ed.SetSelection(sel)

	if err := ed.ExecuteCommand(cmd.Context(), command); err != nil {
		return err
	}
	if msg, ok := ed.InlineMessage(); ok {
		errorColor.Fprintf(cmd.ErrOrStderr(), "%s:%d:%d: %s\n",
			displayName(ed.FilePath()), msg.Position.Line+1, msg.Position.Col+1, msg.Text)
		return errRejected
	}

	result := ed.Bytes()
	if opts.clipboard {
		if err := clip.Write(string(result)); err != nil {
			return fmt.Errorf("writing clipboard: %w", err)
		}
	}
	if !opts.write {
		if _, err := cmd.OutOrStdout().Write(result); err != nil {
			return err
		}
	}

	pos := ed.CursorPosition()
	cursorColor.Fprintf(cmd.ErrOrStderr(), "cursor %d:%d\n", pos.Line+1, pos.Col+1)
	logger.Infof("%s applied to %s", command, displayName(ed.FilePath()))
	return nil
}

func openEditor(cfg *config.Config, clip *clipboard.Manager, opts *refactorOptions, args []string) (*host.Editor, error) {
	plugins := maps.Clone(cfg.Plugins)
	if plugins == nil {
		plugins = make(map[string]map[string]any)
	}
	if opts.write {
		autosaveCfg := maps.Clone(plugins["autosave"])
		if autosaveCfg == nil {
			autosaveCfg = make(map[string]any)
		}
		autosaveCfg["enabled"] = true
		plugins["autosave"] = autosaveCfg
	}
	hostOpts := []host.Option{
		host.WithPluginConfig(plugins),
		host.WithMaxHistory(cfg.Refactor.MaxHistory),
		host.WithClipboard(clip),
	}

	if len(args) == 1 {
		return host.Open(args[0], hostOpts...)
	}
	text, err := clip.Read()
	if err != nil {
		return nil, fmt.Errorf("reading clipboard: %w", err)
	}
	if text == "" {
		return nil, fmt.Errorf("the clipboard is empty")
	}
	return host.New(buffer.New([]byte(text)), hostOpts...), nil
}

func displayName(path string) string {
	if path == "" {
		return "<clipboard>"
	}
	return path
}
