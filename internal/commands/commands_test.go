package commands

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/tidefind/internal/config"
)

func TestParseSubstitute(t *testing.T) {
	tests := []struct {
		input   string
		want    Substitute
		wantErr bool
	}{
		{input: "/a/b/", want: Substitute{Pattern: "a", Replacement: "b"}},
		{input: "/a/b", want: Substitute{Pattern: "a", Replacement: "b"}},
		{input: "/(\\w+)@(\\w+)/$2:$1/gi", want: Substitute{Pattern: `(\w+)@(\w+)`, Replacement: "$2:$1", Global: true, IgnoreCase: true}},
		{input: "/a\\/b/c\\/d/g", want: Substitute{Pattern: "a/b", Replacement: "c/d", Global: true}},
		{input: "/x/\\n/", want: Substitute{Pattern: "x", Replacement: `\n`}},
		{input: "/a/", want: Substitute{Pattern: "a"}},
		{input: "a/b/", wantErr: true},
		{input: "//b/", wantErr: true},
		{input: "/a", wantErr: true},
		{input: "/a/b/c/d", wantErr: true},
		{input: "/a/b/z", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSubstitute(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetOption(t *testing.T) {
	var c config.FindConfig
	require.NoError(t, SetOption(&c, "icase"))
	require.NoError(t, SetOption(&c, "word"))
	require.NoError(t, SetOption(&c, "noword"))
	assert.True(t, c.IgnoreCase)
	assert.False(t, c.FullWord)
	assert.Equal(t, []string{"icase"}, OptionNames(c))
	assert.Error(t, SetOption(&c, "bogus"))
}

type fakeAPI struct {
	settings    config.FindConfig
	findString  string
	replacement string
	calls       []string
	message     string
}

func (f *fakeAPI) FindSettings() config.FindConfig     { return f.settings }
func (f *fakeAPI) SetFindSettings(s config.FindConfig) { f.settings = s }
func (f *fakeAPI) SetFindString(s string)              { f.findString = s }
func (f *fakeAPI) SetReplacement(s string)             { f.replacement = s }
func (f *fakeAPI) FindNext(forward bool)               { f.calls = append(f.calls, "find") }
func (f *fakeAPI) ReplaceAll()                         { f.calls = append(f.calls, "replaceAll") }
func (f *fakeAPI) Save(path string) error {
	f.calls = append(f.calls, "save:"+path)
	return nil
}
func (f *fakeAPI) Quit(force bool) error {
	if force {
		f.calls = append(f.calls, "quit!")
	} else {
		f.calls = append(f.calls, "quit")
	}
	return nil
}
func (f *fakeAPI) SetStatusMessage(format string, args ...interface{}) { f.message = format }

func TestRegistryExecute(t *testing.T) {
	api := &fakeAPI{}
	r := NewRegistry()
	RegisterAppCommands(r, api)

	require.NoError(t, r.Execute("s/cat/dog/gi"))
	assert.True(t, api.settings.Regex)
	assert.True(t, api.settings.IgnoreCase)
	assert.Equal(t, "cat", api.findString)
	assert.Equal(t, "dog", api.replacement)

	require.NoError(t, r.Execute("s/x/y/"))
	require.NoError(t, r.Execute("set word nowrap"))
	assert.True(t, api.settings.FullWord)
	require.NoError(t, r.Execute("w out.txt"))
	require.NoError(t, r.Execute("wq"))
	require.NoError(t, r.Execute("  "))
	assert.Equal(t, []string{"replaceAll", "find", "save:out.txt", "save:", "quit"}, api.calls)

	assert.Error(t, r.Execute("nope"))
	assert.Error(t, r.Execute("s/only"))
	assert.Error(t, r.Register("w", func([]string) error { return errors.New("dup") }))
}
