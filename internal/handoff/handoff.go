// Package handoff delivers the committed command text to its destination.
package handoff

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"

	"github.com/gravitrone/shearch/internal/config"
)

// ErrEmptyCommand is returned when there is nothing to deliver.
var ErrEmptyCommand = errors.New("empty command")

// Handoff prints, runs or copies a command.
type Handoff struct {
	Mode   string
	Shell  string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *zap.Logger

	copyText func(string) error
}

// New returns a Handoff wired to the process stdio and system clipboard.
func New(mode, shell string, logger *zap.Logger) *Handoff {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handoff{
		Mode:     mode,
		Shell:    shell,
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Logger:   logger,
		copyText: clipboard.WriteAll,
	}
}

// Deliver hands command off according to Mode.
func (h *Handoff) Deliver(ctx context.Context, command string) error {
	if strings.TrimSpace(command) == "" {
		return ErrEmptyCommand
	}
	h.Logger.Info("deliver command", zap.String("mode", h.Mode), zap.String("command", command))

	switch h.Mode {
	case config.ModePrint, "":
		_, err := fmt.Fprintln(h.Stdout, command)
		return err
	case config.ModeExec:
		return h.run(ctx, command)
	case config.ModeClipboard:
		if err := h.copyText(command); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		_, err := fmt.Fprintf(h.Stderr, "copied: %s\n", command)
		return err
	default:
		return fmt.Errorf("unknown hand-off mode %q", h.Mode)
	}
}

func (h *Handoff) run(ctx context.Context, command string) error {
	shell := h.Shell
	if shell == "" {
		shell = "sh"
	}
	cmd := exec.CommandContext(ctx, shell, "-c", command)
	cmd.Stdin = h.Stdin
	cmd.Stdout = h.Stdout
	cmd.Stderr = h.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("run command: %w", err)
	}
	return nil
}
