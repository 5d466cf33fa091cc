package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/tidefind/internal/types"
)

type result struct {
	code   int
	stdout string
	stderr string
}

// runWith runs the command against stdin with an isolated config path.
func runWith(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "missing.toml")
	var out, errOut bytes.Buffer
	code := run(context.Background(), append([]string{"-config", cfgPath}, args...), strings.NewReader(stdin), &out, &errOut)
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func TestListMatches(t *testing.T) {
	res := runWith(t, "one cat\ntwo cats\n", "cat")
	assert.Equal(t, exitOK, res.code, res.stderr)
	assert.Equal(t, "1:5: \"cat\"\n2:5: \"cat\"\n2 matches\n", res.stdout)
}

func TestListCaptureGroups(t *testing.T) {
	res := runWith(t, "user@host", "-regex", `(\w+)@(\w+)(x)?`)
	assert.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "\t$1 1:1: \"user\"\n")
	assert.Contains(t, res.stdout, "\t$2 1:6: \"host\"\n")
	assert.Contains(t, res.stdout, "\t$3 unmatched\n")
	assert.True(t, strings.HasSuffix(res.stdout, "1 match\n"))
}

func TestNoMatchExitCode(t *testing.T) {
	res := runWith(t, "abc", "zzz")
	assert.Equal(t, exitNoMatch, res.code)
	assert.Equal(t, "0 matches\n", res.stdout)
}

func TestErrors(t *testing.T) {
	res := runWith(t, "abc", "-regex", "(")
	assert.Equal(t, exitError, res.code)
	assert.NotEmpty(t, res.stderr)

	res = runWith(t, "abc", "-e", "")
	assert.Equal(t, exitError, res.code)
	assert.Contains(t, res.stderr, "Input text to find.")

	res = runWith(t, "abc")
	assert.Equal(t, exitError, res.code, "missing pattern")

	res = runWith(t, "abc", "-w", "-r", "x", "a")
	assert.Equal(t, exitError, res.code, "-w needs a file")

	res = runWith(t, "abc", "-in-selection", "a")
	assert.Equal(t, exitError, res.code, "-in-selection needs -select")

	res = runWith(t, "abc", "-select", "2:5", "a")
	assert.Equal(t, exitError, res.code)
}

func TestFindNextAndPrevious(t *testing.T) {
	res := runWith(t, "ab ab ab", "-next", "-at", "4", "ab")
	assert.Equal(t, exitOK, res.code, res.stderr)
	assert.Equal(t, "1:7: \"ab\" [6:2] 3 matches in total\n", res.stdout)

	res = runWith(t, "ab ab ab", "-prev", "-at", "3", "ab")
	assert.Equal(t, exitOK, res.code, res.stderr)
	assert.True(t, strings.HasPrefix(res.stdout, "1:1: \"ab\" [0:2]"))

	res = runWith(t, "ab ab ab", "-next", "-at", "8", "ab")
	assert.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "[0:2] (wrapped)")

	res = runWith(t, "ab ab ab", "-next", "-at", "8", "-wrap=false", "ab")
	assert.Equal(t, exitNoMatch, res.code)
	assert.Equal(t, "no match (3 in total)\n", res.stdout)
}

func TestReplaceAllToStdout(t *testing.T) {
	res := runWith(t, "user@host", "-regex", "-r", "$2:$1", `(\w+)@(\w+)`)
	assert.Equal(t, exitOK, res.code, res.stderr)
	assert.Equal(t, "host:user", res.stdout)
	assert.Contains(t, res.stderr, "replaced 1 match")
}

func TestReplaceAllInSelection(t *testing.T) {
	res := runWith(t, "aaaa aaaa", "-select", "0:4,5:4", "-in-selection", "-r", "bb", "a")
	assert.Equal(t, exitOK, res.code, res.stderr)
	assert.Equal(t, "bbbbbbbb bbbbbbbb", res.stdout)
}

func TestReplaceOne(t *testing.T) {
	res := runWith(t, "cat cat", "-select", "0:3", "-one", "-r", "dog", "cat")
	assert.Equal(t, exitOK, res.code, res.stderr)
	assert.Equal(t, "dog cat", res.stdout)
}

func TestReplaceDiffPlain(t *testing.T) {
	res := runWith(t, "hello world", "-diff", "-r", "ZZ", "world")
	assert.Equal(t, exitOK, res.code, res.stderr)
	assert.Equal(t, "hello [-world-]{+ZZ+}\n", res.stdout)
}

func TestReplaceWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("foo bar foo\n"), 0o644))

	res := runWith(t, "", "-w", "-r", "baz", "foo", path)
	assert.Equal(t, exitOK, res.code, res.stderr)
	assert.Empty(t, res.stdout)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "baz bar baz\n", string(data))
}

func TestReplaceCopiesResult(t *testing.T) {
	var copied string
	orig := copyToClipboard
	copyToClipboard = func(text string) error {
		copied = text
		return nil
	}
	defer func() { copyToClipboard = orig }()

	res := runWith(t, "a-b", "-copy", "-r", "+", "-")
	assert.Equal(t, exitOK, res.code, res.stderr)
	assert.Equal(t, "a+b", copied)
	assert.Empty(t, res.stdout)
}

func TestReplaceCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out, errOut bytes.Buffer
	cfgPath := filepath.Join(t.TempDir(), "missing.toml")
	code := run(ctx, []string{"-config", cfgPath, "-r", "b", "a"}, strings.NewReader("aaa"), &out, &errOut)
	assert.Equal(t, exitError, code)
	assert.Contains(t, errOut.String(), "interrupted")
}

func TestVersion(t *testing.T) {
	res := runWith(t, "", "-version")
	assert.Equal(t, exitOK, res.code)
	assert.Contains(t, res.stdout, version)
}

func TestParseSelection(t *testing.T) {
	got, err := parseSelection("5:2, 0:3", 10)
	require.NoError(t, err)
	assert.Equal(t, []types.Range{{Location: 0, Length: 3}, {Location: 5, Length: 2}}, got)

	got, err = parseSelection("4", 10)
	require.NoError(t, err)
	assert.Equal(t, []types.Range{{Location: 4}}, got)

	got, err = parseSelection("", 10)
	require.NoError(t, err)
	assert.Nil(t, got)

	for _, bad := range []string{"x:1", "1:y", "-1:2", "9:2", "0:4,2:2"} {
		_, err := parseSelection(bad, 10)
		assert.Error(t, err, bad)
	}
}
