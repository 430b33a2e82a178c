package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gravitrone/shearch/internal/cmd"
	"github.com/gravitrone/shearch/internal/handoff"
	"github.com/gravitrone/shearch/internal/ui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Force truecolor so hex colors render correctly
	// Must be set before any lipgloss style initialization
	os.Setenv("COLORTERM", "truecolor")
}

func newRootCmd() *cobra.Command {
	flags := &cmd.Flags{}
	root := &cobra.Command{
		Use:   "shearch [tag]...",
		Short: "Find shell commands by tag and edit them in place",
		Long: "shearch searches a catalog of shell commands by tag. Pick one, tab into it to\n" +
			"fill in its arguments, and press enter to print, run or copy it.",
		RunE: func(c *cobra.Command, args []string) error {
			return runTUI(c.Context(), flags, strings.Join(args, " "))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags.Bind(root)

	root.AddCommand(cmd.QueryCmd(flags))
	root.AddCommand(cmd.TagsCmd(flags))
	root.AddCommand(cmd.ExpandCmd(flags))
	root.AddCommand(cmd.ConfigCmd())
	return root
}

func runTUI(ctx context.Context, flags *cmd.Flags, query string) error {
	if !terminalAttached() {
		return errors.New("no terminal: use 'shearch query' outside an interactive shell")
	}

	s, err := flags.Open()
	if err != nil {
		return err
	}
	defer s.Close()

	app := ui.NewApp(ui.Options{
		Index:          s.Index,
		Resolver:       s.Resolver(),
		Reload:         s.Reload,
		Logger:         s.Logger,
		MaxResults:     s.Config.MaxResults,
		ResolveTimeout: s.Config.ResolveTimeout,
		Query:          query,
	})

	// The UI draws on stderr so stdout carries only the chosen command.
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithOutput(os.Stderr))

	watchCtx, stopWatch := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		err := s.Watch(watchCtx, func() { p.Send(ui.CatalogChangedMsg{}) })
		if err != nil {
			s.Logger.Warn("catalog watcher stopped", zap.Error(err))
		}
	}()

	model, err := p.Run()
	stopWatch()
	wg.Wait()
	if err != nil {
		return fmt.Errorf("tui error: %w", err)
	}

	final, ok := model.(ui.App)
	if !ok {
		return nil
	}
	command, chosen := final.Result()
	if !chosen {
		return nil
	}
	return handoff.New(s.Config.Mode, s.Config.Shell, s.Logger).Deliver(ctx, command)
}

// terminalAttached reports whether the UI has a terminal to draw on.
var terminalAttached = func() bool {
	return isInteractiveTerminal(os.Stdin) && isInteractiveTerminal(os.Stderr)
}

func isInteractiveTerminal(file *os.File) bool {
	if file == nil {
		return false
	}
	info, err := file.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
