package main

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/widgetry/internal/tui"
)

func newPlaygroundCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "playground",
		Short: "Launch the interactive widget playground",
		Long: `Launch a terminal playground that drives a tooltip, a hover card, a dropdown
menu, a command palette, a collapsible panel and a scroll area with the mouse
and keyboard.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlayground(cmd, flags)
		},
	}

	return cmd
}

func runPlayground(cmd *cobra.Command, flags *rootFlags) error {
	// The alternate screen owns the terminal, so logs only go to --log-file.
	app, err := newAppContext(flags, io.Discard)
	if err != nil {
		return err
	}
	defer func() { _ = app.closeLog() }()

	log := app.log.Component("command.playground")
	log.Info("launching playground")

	model := tui.NewModel(tui.Options{Config: app.cfg, Logger: app.log})
	defer model.Close()

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := p.Run(); err != nil {
		log.Error(err, "playground execution failed")
		return fmt.Errorf("failed to run playground: %w", err)
	}

	log.Info("playground closed")
	return nil
}
