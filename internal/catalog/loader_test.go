package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const legacyJSON = `{
  "item": [
    {"command": "git status", "description": "Returns git status.", "tag": ["git", "status"]},
    {"command": "hg status", "description": "Returns hg status.", "tag": ["hg", "mercurial", "status"]},
    {"command": "git remote add origin url", "description": "Add remote.", "tag": ["git", "remote"],
     "nix_edit": "git remote add %s %s", "nix_args": ["origin", "url"]}
  ]
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestParseJSONLegacyLayout(t *testing.T) {
	recs, err := ParseJSON([]byte(legacyJSON), "example.json")
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, "git status", recs[0].Text)
	assert.Equal(t, []string{"git", "status"}, recs[0].Tags)
	assert.Nil(t, recs[0].Template)
	assert.Equal(t, "example.json", recs[0].Source)

	require.NotNil(t, recs[2].Template)
	assert.Equal(t, "git remote add %s %s", recs[2].Template.Mask)
	assert.Equal(t, []string{"origin", "url"}, recs[2].Template.Args)
}

func TestParseYAMLWithTemplate(t *testing.T) {
	data := `items:
  - command: kill -9 pid
    description: Kill.
    tags: [process, kill, " ", kill]
    template:
      mask: kill -9 %s
      args: [pid]
`
	recs, err := ParseYAML([]byte(data), "cat.yaml")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, []string{"process", "kill"}, recs[0].Tags)
	require.NotNil(t, recs[0].Template)
	assert.Equal(t, []string{"pid"}, recs[0].Template.Args)
}

func TestParseRejectsItemWithoutCommand(t *testing.T) {
	_, err := ParseYAML([]byte("items:\n  - description: nothing\n"), "bad.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command")
}

func TestParseJSONInvalid(t *testing.T) {
	_, err := ParseJSON([]byte("{"), "broken.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.json")
}

func TestLoadFileUnsupportedExtension(t *testing.T) {
	path := writeFile(t, t.TempDir(), "cat.toml", "")
	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported extension")
}

func TestLoadAllSkipsBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.json", legacyJSON)
	bad := writeFile(t, dir, "bad.yaml", "items: [")

	recs, err := LoadAll(zap.NewNop(), good, bad)
	require.NoError(t, err)
	assert.Len(t, recs, 3)
}

func TestLoadAllFailsWhenNothingLoads(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadAll(nil, filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadAllFallsBackToDefault(t *testing.T) {
	recs, err := LoadAll(nil)
	require.NoError(t, err)
	assert.NotEmpty(t, recs)
	for _, r := range recs {
		assert.Equal(t, DefaultSource, r.Source)
	}
}

func TestIDIsContentHash(t *testing.T) {
	a := Record{Text: "git status", Description: "one"}
	b := Record{Text: "git status", Description: "two", Source: "other"}
	assert.Equal(t, a.ID(), b.ID())
	assert.NotEqual(t, a.ID(), IDOf("hg status"))
	assert.Len(t, a.ID().String(), 16)
}

func TestRecordHasTag(t *testing.T) {
	r := Record{Tags: []string{"git", "status"}}
	assert.True(t, r.HasTag("git"))
	assert.False(t, r.HasTag("hg"))
}
