package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alexisbeaulieu97/widgetry/internal/config"
	"github.com/alexisbeaulieu97/widgetry/internal/logger"
)

// appContext bundles what every command resolves from the persistent flags.
type appContext struct {
	cfg      *config.Config
	log      *logger.Logger
	closeLog func() error
}

// newAppContext loads the widget config and builds the logger. Logs go to
// --log-file when set and to fallback otherwise.
func newAppContext(flags *rootFlags, fallback io.Writer) (*appContext, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, newCommandError("load config", flags.configPath, err, "Run 'widgetry config validate <path>' for details.")
	}

	opts := cfg.Logging.LoggerOptions()
	if flags.logLevel != "" {
		opts.Level = flags.logLevel
	}
	if flags.verbose {
		opts.Level = "debug"
	}
	opts.Writer = fallback

	app := &appContext{cfg: cfg, closeLog: func() error { return nil }}
	if flags.logFile != "" {
		file, err := os.OpenFile(flags.logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, newCommandError("open log file", flags.logFile, err, "Check the directory exists and is writable.")
		}
		opts.Writer = file
		app.closeLog = file.Close
	}

	log, err := logger.New(opts)
	if err != nil {
		_ = app.closeLog()
		return nil, newCommandError("create logger", fmt.Sprintf("level %q", opts.Level), err, "Use one of trace, debug, info, warn, error or disabled.")
	}
	app.log = log
	return app, nil
}
