package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/widgetry/internal/config"
	apperrors "github.com/alexisbeaulieu97/widgetry/pkg/errors"
)

func newConfigCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect widget configuration files",
	}

	cmd.AddCommand(newConfigValidateCmd())
	cmd.AddCommand(newConfigDefaultsCmd())
	cmd.AddCommand(newConfigShowCmd(flags))

	return cmd
}

func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <path>",
		Short: "Parse and validate a config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.ParseConfig(args[0]); err != nil {
				return newCommandError("validate config", args[0], err, validationSuggestion(err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid\n", args[0])
			return nil
		},
	}
}

func validationSuggestion(err error) string {
	var parseErr *apperrors.ParseError
	var validationErr *apperrors.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return fmt.Sprintf("Fix the %q field.", validationErr.Field)
	case errors.As(err, &parseErr) && parseErr.Line > 0:
		return fmt.Sprintf("Check the syntax near line %d.", parseErr.Line)
	default:
		return "Use a .yaml, .yml or .toml file that exists."
	}
}

func newConfigDefaultsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Print the built-in defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printConfig(cmd, config.Default(), format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(config.FormatYAML), "Output format (yaml, toml)")

	return cmd
}

func newConfigShowCmd(flags *rootFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective config after merging --config over the defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = app.closeLog() }()
			return printConfig(cmd, app.cfg, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(config.FormatYAML), "Output format (yaml, toml)")

	return cmd
}

func printConfig(cmd *cobra.Command, cfg *config.Config, format string) error {
	data, err := config.Marshal(cfg, config.Format(format))
	if err != nil {
		return newCommandError("print config", "encoding", err, "Use --format yaml or --format toml.")
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
