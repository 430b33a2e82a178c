package buffer

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"
)

// shellWaitDelay bounds how long a killed shell may hold its output pipes.
const shellWaitDelay = 250 * time.Millisecond

var placeholderPattern = regexp.MustCompile(`%[sc]`)

// Resolver computes the value of a %c argument.
type Resolver interface {
	Resolve(ctx context.Context, command string) (string, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(ctx context.Context, command string) (string, error)

func (f ResolverFunc) Resolve(ctx context.Context, command string) (string, error) {
	return f(ctx, command)
}

// ShellResolver runs the argument through a shell and returns its trimmed
// standard output.
type ShellResolver struct {
	// Shell defaults to sh.
	Shell string
	Dir   string
}

func (s ShellResolver) Resolve(ctx context.Context, command string) (string, error) {
	shell := s.Shell
	if shell == "" {
		shell = "sh"
	}
	cmd := exec.CommandContext(ctx, shell, "-c", command)
	cmd.Dir = s.Dir
	cmd.WaitDelay = shellWaitDelay
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", fmt.Errorf("run %q: %w", command, ctxErr)
	}
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("run %q: %w: %s", command, err, msg)
		}
		return "", fmt.Errorf("run %q: %w", command, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// FormatCommand expands mask with args. %s consumes the next arg verbatim;
// %c consumes the next arg as a command for r and uses its output. It returns
// the expanded text and the argument values in placeholder order.
func FormatCommand(ctx context.Context, mask string, args []string, r Resolver) (string, []string, error) {
	locs := placeholderPattern.FindAllStringIndex(mask, -1)
	if len(locs) != len(args) {
		return "", nil, &MalformedTemplateError{Mask: mask, Placeholders: len(locs), Args: len(args)}
	}

	var sb strings.Builder
	values := make([]string, 0, len(args))
	last := 0
	for i, loc := range locs {
		sb.WriteString(mask[last:loc[0]])
		value := args[i]
		if mask[loc[0]+1] == 'c' {
			if r == nil {
				return "", nil, fmt.Errorf("argument %d: %w", i+1, ErrNoResolver)
			}
			out, err := r.Resolve(ctx, args[i])
			if err != nil {
				return "", nil, fmt.Errorf("resolve %%c argument %d: %w", i+1, err)
			}
			value = strings.TrimSpace(out)
		}
		sb.WriteString(value)
		values = append(values, value)
		last = loc[1]
	}
	sb.WriteString(mask[last:])
	return sb.String(), values, nil
}

// FromTemplate expands mask and returns a buffer tracking the expanded
// argument values.
func FromTemplate(ctx context.Context, mask string, args []string, r Resolver, opts ...Option) (*Buffer, error) {
	text, values, err := FormatCommand(ctx, mask, args, r)
	if err != nil {
		return nil, err
	}
	return New(text, values, opts...), nil
}
