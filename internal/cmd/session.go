// Package cmd holds the shearch subcommands and the setup they share with the
// interactive root command.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gravitrone/shearch/internal/buffer"
	"github.com/gravitrone/shearch/internal/catalog"
	"github.com/gravitrone/shearch/internal/config"
	"github.com/gravitrone/shearch/internal/index"
	"github.com/gravitrone/shearch/internal/logging"
)

// Flags are the persistent flags shared by every command. Set values win
// over the config file.
type Flags struct {
	Catalogs []string
	Strict   bool
	Watch    bool
	Mode     string
	LogFile  string
	Verbose  bool
}

// Bind registers the flags on c as persistent flags.
func (f *Flags) Bind(c *cobra.Command) {
	pf := c.PersistentFlags()
	pf.StringArrayVarP(&f.Catalogs, "catalog", "c", nil, "catalog file (.json, .yaml); repeatable")
	pf.BoolVar(&f.Strict, "strict", false, "fail when two catalogs define the same command")
	pf.BoolVar(&f.Watch, "watch", false, "reload catalogs when they change on disk")
	pf.StringVar(&f.Mode, "mode", "", "what to do with the chosen command: print, exec or clipboard")
	pf.StringVar(&f.LogFile, "log-file", "", "write logs to this file")
	pf.BoolVarP(&f.Verbose, "verbose", "v", false, "debug logging")
}

// Session is the loaded configuration, logger and index for one run.
type Session struct {
	Config *config.Config
	Logger *zap.Logger
	Index  *index.Index
	Paths  []string
}

// Open loads the config, applies flag overrides, and builds the index. A
// missing config file means defaults.
func (f *Flags) Open() (*Session, error) {
	cfg, err := config.Load()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = config.Default()
	}
	if len(f.Catalogs) > 0 {
		cfg.Catalogs = f.Catalogs
	}
	if f.Strict {
		cfg.Strict = true
	}
	if f.Watch {
		cfg.Watch = true
	}
	if f.Mode != "" {
		cfg.Mode = f.Mode
	}
	if f.LogFile != "" {
		cfg.LogFile = f.LogFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.LogFile, cfg.LogLevel, f.Verbose)
	if err != nil {
		return nil, err
	}

	s := &Session{Config: cfg, Logger: logger, Paths: cfg.CatalogPaths()}
	ix, err := s.Reload()
	if err != nil {
		s.Close()
		return nil, err
	}
	s.Index = ix
	return s, nil
}

// Reload reads the catalogs again and returns a fresh index.
func (s *Session) Reload() (*index.Index, error) {
	records, err := catalog.LoadAll(s.Logger, s.Paths...)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	var opts []index.Option
	if s.Config.Strict {
		opts = append(opts, index.WithStrict())
	}
	ix, err := index.Build(records, opts...)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}
	s.Logger.Info("index built",
		zap.Int("records", ix.Len()),
		zap.Strings("catalogs", s.Paths),
	)
	return ix, nil
}

// Resolver returns the resolver for computed template arguments. Each run is
// bounded by the configured resolve timeout.
func (s *Session) Resolver() buffer.Resolver {
	shell := buffer.ShellResolver{Shell: s.Config.Shell}
	timeout := s.Config.ResolveTimeout
	if timeout <= 0 {
		return shell
	}
	return buffer.ResolverFunc(func(ctx context.Context, command string) (string, error) {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return shell.Resolve(ctx, command)
	})
}

// Watch blocks until ctx is done, calling onChange whenever a catalog file
// changes. It returns immediately when watching is disabled or there is
// nothing on disk to watch.
func (s *Session) Watch(ctx context.Context, onChange func()) error {
	if !s.Config.Watch || len(s.Paths) == 0 {
		return nil
	}
	return catalog.Watch(ctx, s.Logger, s.Paths, onChange)
}

// Close flushes the logger.
func (s *Session) Close() {
	_ = s.Logger.Sync()
}
