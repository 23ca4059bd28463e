package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bethropolis/jsrefactor/internal/config"
	"github.com/bethropolis/jsrefactor/internal/logger"
	"github.com/bethropolis/jsrefactor/internal/messages"
	"github.com/bethropolis/jsrefactor/internal/refactor"
	"github.com/bethropolis/jsrefactor/internal/template"
)

// errRejected reports a refactoring the engine refused; the reason has
// already been printed.
var errRejected = errors.New("refactoring rejected")

// subcommands maps CLI names onto engine command IDs.
var subcommands = []struct {
	use     string
	command string
	short   string
}{
	{"wrap-try-catch", refactor.CommandWrapInTryCatch, "Wrap the selected statements in a try/catch block"},
	{"wrap-condition", refactor.CommandWrapInCondition, "Wrap the selected statements in an if block"},
	{"to-arrow", refactor.CommandConvertToArrowFunction, "Convert the function expression at the cursor to an arrow function"},
	{"getters-setters", refactor.CommandCreateGettersAndSetters, "Add a getter and setter for the property at the cursor"},
}

func newRootCmd() *cobra.Command {
	flags := &config.Flags{}
	root := &cobra.Command{
		Use:           config.AppName,
		Short:         "Structural refactorings for JavaScript source",
		Long:          "Apply one refactoring to a JavaScript file or the clipboard and print the result.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags.Define(root)

	for _, sc := range subcommands {
		root.AddCommand(newRefactorCmd(flags, sc.use, sc.command, sc.short))
	}
	root.AddCommand(newTemplatesCmd(flags))
	return root
}

// setup loads the configuration and the logger, then builds the engine.
// The returned func closes the log file.
func setup(flags *config.Flags) (*config.Config, *refactor.Engine, func(), error) {
	cfg, err := config.Load(flags.ConfigFilePath, flags)
	if err != nil {
		return nil, nil, nil, err
	}

	out, closeLog, err := openLog(cfg.Logger.LogFilePath)
	if err != nil {
		return nil, nil, nil, err
	}
	logger.Init(cfg.Logger, out)
	logger.Debugf("Log level set to: %s", cfg.Logger.LogLevel)

	reg, err := loadTemplates(cfg.Refactor.Templates)
	if err != nil {
		closeLog()
		return nil, nil, nil, err
	}
	msgs, err := messages.New(cfg.Refactor.Locale)
	if err != nil {
		closeLog()
		return nil, nil, nil, err
	}
	engine, err := refactor.New(reg, msgs, refactor.WithReindent(cfg.Refactor.Reindent))
	if err != nil {
		closeLog()
		return nil, nil, nil, err
	}
	return cfg, engine, closeLog, nil
}

func loadTemplates(path string) (*template.Registry, error) {
	if path == "" {
		return template.Default()
	}
	logger.Infof("Loading templates from %s", path)
	return template.Load(path)
}

// openLog opens the log destination: "-" is stderr, empty is
// jsrefactor.log in the temp directory.
func openLog(path string) (io.Writer, func(), error) {
	switch path {
	case "-":
		return os.Stderr, func() {}, nil
	case "":
		path = filepath.Join(os.TempDir(), config.DefaultLogFileName)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file '%s': %w", path, err)
	}
	return f, func() { f.Close() }, nil
}
