package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/shearch/internal/config"
)

const testCatalog = `items:
  - command: git status
    description: Returns git status.
    tags: [git, status]
  - command: hg status
    description: Returns hg status.
    tags: [hg, mercurial, status]
  - command: git remote add origin url
    tags: [git, remote]
    template:
      mask: git remote add %s %s
      args: [upstream, url]
  - command: echo today
    tags: [echo]
    template:
      mask: echo %c
      args: [printf today]
  - command: kill pid
    tags: [kill]
    template:
      mask: kill %s %s
      args: [pid]
`

func setHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	return dir
}

func writeCatalog(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func run(t *testing.T, c *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	c.SetOut(&stdout)
	c.SetErr(&stderr)
	c.SetArgs(args)
	err := c.Execute()
	return stdout.String(), stderr.String(), err
}

func lines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestQueryCmdPrintsMatches(t *testing.T) {
	home := setHome(t)
	flags := &Flags{Catalogs: []string{writeCatalog(t, home, "cat.yaml", testCatalog)}}

	out, _, err := run(t, QueryCmd(flags), "status")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"git status", "hg status"}, lines(out))

	out, _, err = run(t, QueryCmd(flags), "git,status")
	require.NoError(t, err)
	assert.Equal(t, []string{"git status"}, lines(out))
}

func TestQueryCmdLongFormat(t *testing.T) {
	home := setHome(t)
	flags := &Flags{Catalogs: []string{writeCatalog(t, home, "cat.yaml", testCatalog)}}

	out, _, err := run(t, QueryCmd(flags), "--long", "hg")
	require.NoError(t, err)
	assert.Equal(t, "hg status\tReturns hg status.\thg,mercurial,status\n", out)
}

func TestQueryCmdNoMatchesPrintsNothing(t *testing.T) {
	home := setHome(t)
	flags := &Flags{Catalogs: []string{writeCatalog(t, home, "cat.yaml", testCatalog)}}

	out, _, err := run(t, QueryCmd(flags), "svn")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestQueryCmdRequiresTags(t *testing.T) {
	setHome(t)
	_, _, err := run(t, QueryCmd(&Flags{}))
	assert.Error(t, err)
}

func TestQueryCmdUsesBuiltinCatalogByDefault(t *testing.T) {
	setHome(t)

	out, _, err := run(t, QueryCmd(&Flags{}), "mercurial")
	require.NoError(t, err)
	assert.Equal(t, []string{"hg status"}, lines(out))
}

func TestTagsCmdListsCounts(t *testing.T) {
	home := setHome(t)
	flags := &Flags{Catalogs: []string{writeCatalog(t, home, "cat.yaml", testCatalog)}}

	out, _, err := run(t, TagsCmd(flags))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"echo\t1",
		"git\t2",
		"hg\t1",
		"kill\t1",
		"mercurial\t1",
		"remote\t1",
		"status\t2",
	}, lines(out))
}

func TestExpandCmdFillsTemplates(t *testing.T) {
	home := setHome(t)
	flags := &Flags{Catalogs: []string{writeCatalog(t, home, "cat.yaml", testCatalog)}}

	out, _, err := run(t, ExpandCmd(flags), "remote")
	require.NoError(t, err)
	assert.Equal(t, "git remote add upstream url\n", out)

	out, _, err = run(t, ExpandCmd(flags), "echo")
	require.NoError(t, err)
	assert.Equal(t, "echo today\n", out)
}

func TestExpandCmdWarnsOnMalformedTemplate(t *testing.T) {
	home := setHome(t)
	flags := &Flags{Catalogs: []string{writeCatalog(t, home, "cat.yaml", testCatalog)}}

	out, stderr, err := run(t, ExpandCmd(flags), "kill")
	require.NoError(t, err)
	assert.Equal(t, "kill pid\n", out)
	assert.Contains(t, stderr, "warning: kill pid")
}

func TestStrictFlagRejectsCrossCatalogDuplicates(t *testing.T) {
	home := setHome(t)
	a := writeCatalog(t, home, "a.yaml", testCatalog)
	b := writeCatalog(t, home, "b.json", `{"item":[{"command":"git status","description":"again","tag":["git"]}]}`)

	_, _, err := run(t, QueryCmd(&Flags{Catalogs: []string{a, b}}), "git")
	require.NoError(t, err)

	_, _, err = run(t, QueryCmd(&Flags{Catalogs: []string{a, b}, Strict: true}), "git")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "build index")
}

func TestOpenFailsWhenNoCatalogLoads(t *testing.T) {
	home := setHome(t)
	flags := &Flags{Catalogs: []string{filepath.Join(home, "missing.yaml")}}

	_, err := flags.Open()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load catalog")
}

func TestOpenAppliesFlagOverrides(t *testing.T) {
	home := setHome(t)
	cfg := config.Default()
	cfg.Mode = config.ModeExec
	cfg.Catalogs = []string{"~/cat.yaml"}
	require.NoError(t, cfg.Save())
	writeCatalog(t, home, "cat.yaml", testCatalog)

	s, err := (&Flags{}).Open()
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, config.ModeExec, s.Config.Mode)
	assert.Equal(t, []string{filepath.Join(home, "cat.yaml")}, s.Paths)
	assert.Equal(t, 5, s.Index.Len())

	s2, err := (&Flags{Mode: config.ModeClipboard, LogFile: filepath.Join(home, "log.json"), Verbose: true}).Open()
	require.NoError(t, err)
	defer s2.Close()
	assert.Equal(t, config.ModeClipboard, s2.Config.Mode)
	assert.True(t, s2.Logger.Core().Enabled(-1))
}

func TestOpenRejectsUnknownMode(t *testing.T) {
	setHome(t)
	_, err := (&Flags{Mode: "teleport"}).Open()
	assert.Error(t, err)
}

func TestConfigInitWritesDefaults(t *testing.T) {
	setHome(t)

	out, _, err := run(t, ConfigCmd(), "init")
	require.NoError(t, err)
	assert.Contains(t, out, config.Path())

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.ModePrint, cfg.Mode)
	assert.Equal(t, config.Default().MaxResults, cfg.MaxResults)
	assert.Equal(t, 2*time.Second, cfg.ResolveTimeout)

	_, _, err = run(t, ConfigCmd(), "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = run(t, ConfigCmd(), "init", "--force")
	assert.NoError(t, err)
}

func TestSessionResolverStopsAtResolveTimeout(t *testing.T) {
	s := &Session{Config: &config.Config{ResolveTimeout: 50 * time.Millisecond}}

	start := time.Now()
	_, err := s.Resolver().Resolve(context.Background(), "sleep 5")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)

	out, err := s.Resolver().Resolve(context.Background(), "echo ok")
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
}

func TestConfigPathPrintsLocation(t *testing.T) {
	home := setHome(t)
	out, _, err := run(t, ConfigCmd(), "path")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".shearch", "config")+"\n", out)
}

func TestUnknownSubcommandErrors(t *testing.T) {
	_, _, err := run(t, ConfigCmd(), "nope")
	assert.Error(t, err)
}
