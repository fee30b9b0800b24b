package terminal

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/termfolio/internal/config"
	"github.com/vovakirdan/termfolio/internal/registry"
	"github.com/vovakirdan/termfolio/internal/storage"
)

type fakeNav struct {
	played []string
	exited bool
	err    error
}

func (n *fakeNav) Play(id string) error {
	if n.err != nil {
		return n.err
	}
	n.played = append(n.played, id)
	return nil
}

func (n *fakeNav) Exit() { n.exited = true }

type fakeThemes struct {
	current string
}

func (f *fakeThemes) Theme() string    { return f.current }
func (f *fakeThemes) Themes() []string { return []string{"dark", "light"} }
func (f *fakeThemes) SetTheme(name string) error {
	name = strings.ToLower(name)
	if name != "dark" && name != "light" {
		return fmt.Errorf("unknown theme %q", name)
	}
	f.current = name
	return nil
}

func newTestInterpreter(t *testing.T) (*Interpreter, *fakeNav) {
	t.Helper()
	nav := &fakeNav{}
	ctx := &Context{
		Nav:    nav,
		Themes: &fakeThemes{current: "dark"},
		Content: storage.Catalog{
			Projects: []storage.Summary{
				{Slug: "termfolio", Title: "Termfolio", Summary: "Portfolio over ssh", URL: "https://example.com"},
			},
			Posts: []storage.Summary{
				{Slug: "hello", Title: "Hello", Summary: "First post"},
			},
			Commands: []storage.TerminalCommand{
				{Name: "coffee", Response: "brewing", Kind: "success", Enabled: true},
				{Name: "stack", Response: "go\nsql\n", Kind: "list", Enabled: true},
				{Name: "help", Response: "hijacked", Enabled: true},
				{Name: "off", Response: "x", Enabled: false},
			},
			ResumeURL: "https://cdn.example.com/resume/cv.pdf",
		},
		Owner: config.OwnerConfig{
			Name:   "Vova",
			Handle: "vova",
			Email:  "v@example.com",
			Skills: []string{"Go", "SQL"},
			Links:  map[string]string{"github": "https://github.com/vova"},
		},
		Games: []registry.GameInfo{{ID: "snake", Title: "Snake"}, {ID: "tetris", Title: "Tetris"}},
		Now:   func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) },
	}
	return NewInterpreter(ctx, nil), nav
}

func TestDispatchTotality(t *testing.T) {
	in, _ := newTestInterpreter(t)

	inputs := []string{
		"", "   ", "\t\n", "constructor", "__proto__", "toString", "hasOwnProperty",
		"valueOf", "prototype", "nope", "HELP", "open", "open missing", "blog missing",
		"play", "play chess", "theme neon", "\x00", "ls ls ls", strings.Repeat("x", 4096),
	}
	for _, input := range inputs {
		t.Run(fmt.Sprintf("%q", input), func(t *testing.T) {
			var res Result
			require.NotPanics(t, func() { res = in.Execute(input) })
			assert.Contains(t,
				[]ResultKind{ResultText, ResultError, ResultSuccess, ResultASCII, ResultList}, res.Kind)
			assert.Equal(t, strings.TrimSpace(input), res.Input)
		})
	}
}

func TestInheritedNamesAreUnknown(t *testing.T) {
	in, _ := newTestInterpreter(t)
	for _, name := range []string{"constructor", "__proto__", "toString", "hasOwnProperty"} {
		res := in.Execute(name)
		assert.Equal(t, ResultError, res.Kind, name)
		assert.Contains(t, res.Text, "command not found")
		assert.Equal(t, KindUnknown, in.Resolve(name))
	}
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	k, ok := Lookup("WhoAmI")
	require.True(t, ok)
	assert.Equal(t, KindWhoami, k)
	assert.Equal(t, "whoami", k.String())

	in, _ := newTestInterpreter(t)
	assert.Equal(t, "guest@vova", in.Execute("WHOAMI").Text)
}

func TestHistoryBound(t *testing.T) {
	in, _ := newTestInterpreter(t)

	for i := 1; i <= 8; i++ {
		in.Execute(fmt.Sprintf("echo %d", i))
	}
	in.Execute("   ") // not recorded
	assert.Equal(t, []string{"echo 4", "echo 5", "echo 6", "echo 7", "echo 8"}, in.History())

	res := in.Execute("history")
	require.Equal(t, ResultList, res.Kind)
	assert.Equal(t, "5  history", res.Items[4])
}

func TestHistoryRing(t *testing.T) {
	var h History
	assert.Empty(t, h.Entries())
	for i := 0; i < 3; i++ {
		h.Add(fmt.Sprint(i))
	}
	assert.Equal(t, []string{"0", "1", "2"}, h.Entries())
	for i := 3; i < 12; i++ {
		h.Add(fmt.Sprint(i))
	}
	assert.Equal(t, 5, h.Len())
	assert.Equal(t, []string{"7", "8", "9", "10", "11"}, h.Entries())
	h.Clear()
	assert.Zero(t, h.Len())
}

func TestContentCommands(t *testing.T) {
	in, _ := newTestInterpreter(t)

	tests := []struct {
		input string
		kind  ResultKind
		want  string
	}{
		{"ls", ResultList, "Termfolio: Portfolio over ssh"},
		{"open TERMFOLIO", ResultText, "https://example.com"},
		{"open", ResultError, "usage"},
		{"open ghost", ResultError, "no such project"},
		{"blog", ResultList, "hello"},
		{"blog hello", ResultText, "First post"},
		{"resume", ResultSuccess, "cv.pdf"},
		{"contact", ResultList, "v@example.com"},
		{"skills", ResultList, "Go"},
		{"about", ResultText, "Vova"},
		{"date", ResultText, "Thu Jan 2 03:04:05 UTC 2025"},
		{"echo  hello   world", ResultText, "hello world"},
		{"sudo rm -rf /", ResultError, "sudoers"},
		{"banner", ResultASCII, "termfolio"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res := in.Execute(tt.input)
			assert.Equal(t, tt.kind, res.Kind)
			assert.Contains(t, strings.Join(res.Lines(), "\n"), tt.want)
		})
	}
}

func TestResumeMissing(t *testing.T) {
	in := NewInterpreter(&Context{}, nil)
	assert.Equal(t, ResultError, in.Execute("resume").Kind)
	assert.Equal(t, ResultText, in.Execute("ls").Kind)
	assert.Equal(t, ResultError, in.Execute("theme").Kind)
}

func TestTheme(t *testing.T) {
	in, _ := newTestInterpreter(t)

	res := in.Execute("theme")
	require.Equal(t, ResultList, res.Kind)
	assert.Equal(t, []string{"* dark", "  light"}, res.Items)

	res = in.Execute("theme Light")
	assert.Equal(t, ResultSuccess, res.Kind)
	assert.Equal(t, "light", in.Context().Themes.Theme())

	res = in.Execute("theme neon")
	assert.Equal(t, ResultError, res.Kind)
	assert.Equal(t, "light", in.Context().Themes.Theme())
}

func TestPlayAndExit(t *testing.T) {
	in, nav := newTestInterpreter(t)

	res := in.Execute("play")
	require.Equal(t, ResultList, res.Kind)
	assert.Len(t, res.Items, 2)

	assert.Equal(t, ResultSuccess, in.Execute("play Snake").Kind)
	assert.Equal(t, []string{"snake"}, nav.played)

	assert.Equal(t, ResultError, in.Execute("play chess").Kind)
	nav.err = errors.New("busy")
	assert.Equal(t, ResultError, in.Execute("play tetris").Kind)

	assert.Equal(t, ResultSuccess, in.Execute("exit").Kind)
	assert.True(t, nav.exited)
}

func TestCustomCommands(t *testing.T) {
	in, _ := newTestInterpreter(t)

	res := in.Execute("coffee")
	assert.Equal(t, ResultSuccess, res.Kind)
	assert.Equal(t, "brewing", res.Text)
	assert.Equal(t, KindCustom, in.Resolve("coffee"))

	res = in.Execute("stack")
	assert.Equal(t, []string{"go", "sql"}, res.Items)

	// Built-ins win, disabled commands stay hidden.
	assert.Equal(t, ResultList, in.Execute("help").Kind)
	assert.Equal(t, ResultError, in.Execute("off").Kind)

	help := strings.Join(in.Execute("help").Items, "\n")
	assert.Contains(t, help, "coffee")
	assert.NotContains(t, help, "hijacked")
}

func TestClear(t *testing.T) {
	in, _ := newTestInterpreter(t)
	assert.True(t, in.Execute("clear").Clear)
}

func TestComplete(t *testing.T) {
	in, _ := newTestInterpreter(t)
	assert.ElementsMatch(t, []string{"help", "history"}, in.Complete("h"))
	assert.ElementsMatch(t, []string{"coffee", "contact", "clear"}, in.Complete("c"))
}

func TestPanicBecomesError(t *testing.T) {
	in, _ := newTestInterpreter(t)
	in.ctx.Themes = panicky{}

	var res Result
	require.NotPanics(t, func() { res = in.Execute("theme") })
	assert.Equal(t, ResultError, res.Kind)
	assert.Contains(t, res.Text, "internal error")
	assert.Equal(t, "theme", res.Input)
}

type panicky struct{}

func (panicky) Theme() string         { panic("boom") }
func (panicky) Themes() []string      { panic("boom") }
func (panicky) SetTheme(string) error { panic("boom") }

func TestParseResultKind(t *testing.T) {
	assert.Equal(t, ResultASCII, ParseResultKind("ascii-art"))
	assert.Equal(t, ResultError, ParseResultKind(" Error "))
	assert.Equal(t, ResultText, ParseResultKind("weird"))
}

func TestController(t *testing.T) {
	var changes []bool
	a := NewController(false, func(open bool) { changes = append(changes, open) })
	b := NewController(true, nil)

	a.Open()
	a.Open() // no change
	assert.True(t, a.IsOpen())
	assert.False(t, a.Toggle())
	a.Close()
	assert.Equal(t, []bool{true, false}, changes)

	assert.True(t, b.IsOpen(), "instances are independent")
}
