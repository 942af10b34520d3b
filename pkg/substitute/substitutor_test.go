package substitute

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	srcPath    = "/config/dev.json"
	dstPath    = "/config/prod.json"
	targetPath = "/work/app.config"
)

func newTestSubstitutor(t *testing.T) (*Substitutor, afero.Fs, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.TraceLevel)
	fs := afero.NewMemMapFs()
	return New(fs, logrus.NewEntry(logger)), fs, hook
}

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
}

func readFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(data)
}

func warnings(hook *test.Hook) []*logrus.Entry {
	var entries []*logrus.Entry
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			entries = append(entries, e)
		}
	}
	return entries
}

func TestSwap(t *testing.T) {
	s, fs, _ := newTestSubstitutor(t)
	writeFile(t, fs, srcPath, `{"AUTH0_KEYWORD_REPLACE_MAPPINGS": {"A": "foo"}}`)
	writeFile(t, fs, dstPath, `{"AUTH0_KEYWORD_REPLACE_MAPPINGS": {"A": "bar"}}`)
	writeFile(t, fs, targetPath, "use foo here")

	result, err := s.Swap(context.Background(), SwapOptions{Source: srcPath, Destination: dstPath, Target: targetPath})
	require.NoError(t, err)
	assert.Equal(t, "use bar here", readFile(t, fs, targetPath))
	assert.True(t, result.Changed)
	assert.True(t, result.Written)
	assert.Equal(t, 1, result.Replaced())
	assert.Empty(t, result.Backup)
}

func TestSwap_SkipsMissingKeys(t *testing.T) {
	s, fs, hook := newTestSubstitutor(t)
	writeFile(t, fs, srcPath, `{"AUTH0_KEYWORD_REPLACE_MAPPINGS": {"DOMAIN": "dev.auth0.com", "ONLY_SRC": "dev-only"}}`)
	writeFile(t, fs, dstPath, `{"AUTH0_KEYWORD_REPLACE_MAPPINGS": {"DOMAIN": "prod.auth0.com", "ONLY_DST": "prod-only"}}`)
	writeFile(t, fs, targetPath, "domain=dev.auth0.com\nother=dev-only\nmore=prod-only\n")

	result, err := s.Swap(context.Background(), SwapOptions{Source: srcPath, Destination: dstPath, Target: targetPath})
	require.NoError(t, err)
	assert.Equal(t, "domain=prod.auth0.com\nother=dev-only\nmore=prod-only\n", readFile(t, fs, targetPath))
	assert.Equal(t, []Skip{{Key: "ONLY_DST", Reason: SkipNoSource}}, result.Skipped)

	warns := warnings(hook)
	require.Len(t, warns, 1)
	assert.Equal(t, "ONLY_DST", warns[0].Data["key"])
}

func TestSwap_NoOccurrenceLeavesBytes(t *testing.T) {
	s, fs, _ := newTestSubstitutor(t)
	writeFile(t, fs, srcPath, `{"AUTH0_KEYWORD_REPLACE_MAPPINGS": {"A": "foo"}}`)
	writeFile(t, fs, dstPath, `{"AUTH0_KEYWORD_REPLACE_MAPPINGS": {"A": "bar"}}`)
	writeFile(t, fs, targetPath, "line one\r\nline two\n")

	result, err := s.Swap(context.Background(), SwapOptions{Source: srcPath, Destination: dstPath, Target: targetPath})
	require.NoError(t, err)
	assert.False(t, result.Changed)
	assert.True(t, result.Written)
	assert.Equal(t, "line one\r\nline two\n", readFile(t, fs, targetPath))
}

func TestSwap_Idempotent(t *testing.T) {
	s, fs, _ := newTestSubstitutor(t)
	writeFile(t, fs, srcPath, `{"AUTH0_KEYWORD_REPLACE_MAPPINGS": {"DOMAIN": "dev.auth0.com", "CLIENT": "dev-client"}}`)
	writeFile(t, fs, dstPath, `{"AUTH0_KEYWORD_REPLACE_MAPPINGS": {"DOMAIN": "prod.auth0.com", "CLIENT": "prod-client"}}`)
	writeFile(t, fs, targetPath, "dev.auth0.com dev-client dev.auth0.com")

	opts := SwapOptions{Source: srcPath, Destination: dstPath, Target: targetPath}
	_, err := s.Swap(context.Background(), opts)
	require.NoError(t, err)
	once := readFile(t, fs, targetPath)

	_, err = s.Swap(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, once, readFile(t, fs, targetPath))
	assert.Equal(t, "prod.auth0.com prod-client prod.auth0.com", once)
}

func TestSwap_MissingFile(t *testing.T) {
	s, fs, _ := newTestSubstitutor(t)
	writeFile(t, fs, srcPath, `{"AUTH0_KEYWORD_REPLACE_MAPPINGS": {"A": "foo"}}`)
	writeFile(t, fs, targetPath, "use foo here")

	_, err := s.Swap(context.Background(), SwapOptions{Source: srcPath, Destination: dstPath, Target: targetPath})
	require.Error(t, err)
	assert.True(t, IsMissingFile(err))
	assert.Contains(t, err.Error(), dstPath)
	assert.Equal(t, "use foo here", readFile(t, fs, targetPath))
}

func TestSwap_DirectoryIsMissingFile(t *testing.T) {
	s, fs, _ := newTestSubstitutor(t)
	writeFile(t, fs, srcPath, `{}`)
	writeFile(t, fs, dstPath, `{}`)
	require.NoError(t, fs.MkdirAll("/work/dir", 0755))

	_, err := s.Swap(context.Background(), SwapOptions{Source: srcPath, Destination: dstPath, Target: "/work/dir"})
	assert.True(t, IsMissingFile(err))
}

func TestSwap_MalformedLeavesTarget(t *testing.T) {
	s, fs, _ := newTestSubstitutor(t)
	writeFile(t, fs, srcPath, `{"AUTH0_KEYWORD_REPLACE_MAPPINGS": {"A": "foo"}}`)
	writeFile(t, fs, dstPath, `{"AUTH0_KEYWORD_REPLACE_MAPPINGS": {"A": "bar"`)
	writeFile(t, fs, targetPath, "use foo here")

	_, err := s.Swap(context.Background(), SwapOptions{Source: srcPath, Destination: dstPath, Target: targetPath})
	require.Error(t, err)
	assert.True(t, IsMalformed(err))
	assert.Equal(t, "use foo here", readFile(t, fs, targetPath))

	diags := Diagnose(err)
	require.Len(t, diags, 1)
	assert.Equal(t, "invalid JSON format", diags[0].Summary)
	assert.Equal(t, dstPath, diags[0].Source)
}

func TestSwap_Canceled(t *testing.T) {
	s, fs, _ := newTestSubstitutor(t)
	writeFile(t, fs, srcPath, `{"AUTH0_KEYWORD_REPLACE_MAPPINGS": {"A": "foo"}}`)
	writeFile(t, fs, dstPath, `{"AUTH0_KEYWORD_REPLACE_MAPPINGS": {"A": "bar"}}`)
	writeFile(t, fs, targetPath, "use foo here")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result, err := s.Swap(ctx, SwapOptions{Source: srcPath, Destination: dstPath, Target: targetPath})
	require.Error(t, err)
	assert.False(t, result.Written)
	assert.Equal(t, "use foo here", readFile(t, fs, targetPath))
	assert.Equal(t, "interrupted", Diagnose(err)[0].Summary)
}

func TestRestore(t *testing.T) {
	s, fs, _ := newTestSubstitutor(t)
	writeFile(t, fs, srcPath, `{"AUTH0_KEYWORD_REPLACE_MAPPINGS": {"DOMAIN": "dev.auth0.com", "CLIENT": "dev-client"}}`)
	before := "domain: dev.auth0.com\nclient: dev-client\n"
	writeFile(t, fs, targetPath, before)

	result, err := s.Restore(context.Background(), RestoreOptions{Mapping: srcPath, Target: targetPath})
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.True(t, result.Written)
	assert.Equal(t, targetPath+".bak", result.Backup)
	assert.Equal(t, before, readFile(t, fs, targetPath+".bak"))
	assert.Equal(t, "domain: DOMAIN\nclient: CLIENT\n", readFile(t, fs, targetPath))
}

func TestRestore_DuplicateValues(t *testing.T) {
	s, fs, _ := newTestSubstitutor(t)
	writeFile(t, fs, srcPath, `{"AUTH0_KEYWORD_REPLACE_MAPPINGS": {"A": "foo", "B": "foo"}}`)
	writeFile(t, fs, targetPath, "foo")

	_, err := s.Restore(context.Background(), RestoreOptions{Mapping: srcPath, Target: targetPath})
	require.NoError(t, err)
	assert.Equal(t, "B", readFile(t, fs, targetPath))
}

func TestRestore_DryRun(t *testing.T) {
	s, fs, hook := newTestSubstitutor(t)
	writeFile(t, fs, srcPath, `{"AUTH0_KEYWORD_REPLACE_MAPPINGS": {"DOMAIN": "dev.auth0.com"}}`)
	writeFile(t, fs, targetPath, "domain: dev.auth0.com")

	result, err := s.Restore(context.Background(), RestoreOptions{Mapping: srcPath, Target: targetPath, DryRun: true})
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.False(t, result.Written)
	assert.Empty(t, result.Backup)
	assert.Equal(t, "domain: dev.auth0.com", readFile(t, fs, targetPath))

	exists, err := afero.Exists(fs, targetPath+".bak")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, "dry-run mode enabled, no changes were saved", hook.LastEntry().Message)
}

func TestRestore_NoMatch(t *testing.T) {
	s, fs, hook := newTestSubstitutor(t)
	writeFile(t, fs, srcPath, `{"AUTH0_KEYWORD_REPLACE_MAPPINGS": {"DOMAIN": "dev.auth0.com"}}`)
	writeFile(t, fs, targetPath, "nothing to restore")

	result, err := s.Restore(context.Background(), RestoreOptions{Mapping: srcPath, Target: targetPath})
	require.NoError(t, err)
	assert.False(t, result.Changed)
	assert.False(t, result.Written)

	exists, err := afero.Exists(fs, targetPath+".bak")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, "no replacements were necessary", hook.LastEntry().Message)
}

func TestRestore_MissingTarget(t *testing.T) {
	s, fs, _ := newTestSubstitutor(t)
	writeFile(t, fs, srcPath, `{"AUTH0_KEYWORD_REPLACE_MAPPINGS": {"DOMAIN": "dev.auth0.com"}}`)

	_, err := s.Restore(context.Background(), RestoreOptions{Mapping: srcPath, Target: targetPath})
	require.Error(t, err)
	assert.True(t, IsMissingFile(err))

	diags := Diagnose(err)
	assert.Equal(t, "file not found", diags[0].Summary)
	assert.Equal(t, targetPath, diags[0].Source)
}

func TestRestore_MalformedLeavesTarget(t *testing.T) {
	s, fs, _ := newTestSubstitutor(t)
	writeFile(t, fs, srcPath, `not json`)
	writeFile(t, fs, targetPath, "domain: dev.auth0.com")

	_, err := s.Restore(context.Background(), RestoreOptions{Mapping: srcPath, Target: targetPath})
	require.Error(t, err)
	assert.True(t, IsMalformed(err))
	assert.Equal(t, "domain: dev.auth0.com", readFile(t, fs, targetPath))

	exists, _ := afero.Exists(fs, targetPath+".bak")
	assert.False(t, exists)
}

func TestWrite_PreservesMode(t *testing.T) {
	logger, _ := test.NewNullLogger()
	fs := afero.NewOsFs()
	dir := t.TempDir()
	src := dir + "/src.json"
	dst := dir + "/dst.json"
	target := dir + "/run.sh"
	require.NoError(t, afero.WriteFile(fs, src, []byte(`{"AUTH0_KEYWORD_REPLACE_MAPPINGS": {"A": "foo"}}`), 0644))
	require.NoError(t, afero.WriteFile(fs, dst, []byte(`{"AUTH0_KEYWORD_REPLACE_MAPPINGS": {"A": "bar"}}`), 0644))
	require.NoError(t, afero.WriteFile(fs, target, []byte("echo foo"), 0755))
	require.NoError(t, fs.Chmod(target, 0755))

	s := New(fs, logrus.NewEntry(logger))
	_, err := s.Swap(context.Background(), SwapOptions{Source: src, Destination: dst, Target: target})
	require.NoError(t, err)

	info, err := fs.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, "-rwxr-xr-x", info.Mode().String())

	entries, err := afero.ReadDir(fs, dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3, "no temporary file should be left behind")
}

func TestSwap_WritesThroughSymlink(t *testing.T) {
	logger, _ := test.NewNullLogger()
	fs := afero.NewOsFs()
	dir := t.TempDir()
	src := filepath.Join(dir, "src.json")
	dst := filepath.Join(dir, "dst.json")
	realPath := filepath.Join(dir, "real.html")
	link := filepath.Join(dir, "link.html")
	require.NoError(t, afero.WriteFile(fs, src, []byte(`{"AUTH0_KEYWORD_REPLACE_MAPPINGS": {"A": "foo"}}`), 0644))
	require.NoError(t, afero.WriteFile(fs, dst, []byte(`{"AUTH0_KEYWORD_REPLACE_MAPPINGS": {"A": "bar"}}`), 0644))
	require.NoError(t, afero.WriteFile(fs, realPath, []byte("use foo here"), 0644))
	require.NoError(t, os.Symlink("real.html", link))

	s := New(fs, logrus.NewEntry(logger))
	_, err := s.Swap(context.Background(), SwapOptions{Source: src, Destination: dst, Target: link})
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, realPath)
	require.NoError(t, err)
	assert.Equal(t, "use bar here", string(data))

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink, "link.html should still be a symbolic link")
}

func TestSwap_InvalidUTF8PassesThrough(t *testing.T) {
	s, fs, _ := newTestSubstitutor(t)
	writeFile(t, fs, srcPath, `{"AUTH0_KEYWORD_REPLACE_MAPPINGS": {"A": "foo"}}`)
	writeFile(t, fs, dstPath, `{"AUTH0_KEYWORD_REPLACE_MAPPINGS": {"A": "bar"}}`)
	writeFile(t, fs, targetPath, "\xff\xfe foo \x80\r\n")

	result, err := s.Swap(context.Background(), SwapOptions{Source: srcPath, Destination: dstPath, Target: targetPath})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Replaced())
	assert.Equal(t, "\xff\xfe bar \x80\r\n", readFile(t, fs, targetPath))
}
