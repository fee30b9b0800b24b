package terminal

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/vovakirdan/termfolio/internal/registry"
	"github.com/vovakirdan/termfolio/internal/storage"
)

// Kind identifies a built-in command.
type Kind int

const (
	KindUnknown Kind = iota
	KindHelp
	KindAbout
	KindLs
	KindOpen
	KindBlog
	KindResume
	KindContact
	KindSkills
	KindWhoami
	KindDate
	KindEcho
	KindTheme
	KindHistory
	KindClear
	KindBanner
	KindPlay
	KindSudo
	KindExit
	KindCustom // loaded from content
)

type command struct {
	name  string
	usage string
	help  string
	run   func(in *Interpreter, args []string) Result
}

// builtins is the closed command table, indexed by Kind. It is filled in
// init because runHelp reads it.
var builtins map[Kind]command

// names maps a lower-case command name to its Kind. Lookups only ever hit
// entries listed here.
var names map[string]Kind

func init() {
	builtins = map[Kind]command{
		KindHelp:    {"help", "help", "list available commands", runHelp},
		KindAbout:   {"about", "about", "who I am", runAbout},
		KindLs:      {"ls", "ls", "list projects", runLs},
		KindOpen:    {"open", "open <slug>", "show a project", runOpen},
		KindBlog:    {"blog", "blog [slug]", "list posts or show one", runBlog},
		KindResume:  {"resume", "resume", "link to my resume", runResume},
		KindContact: {"contact", "contact", "how to reach me", runContact},
		KindSkills:  {"skills", "skills", "things I work with", runSkills},
		KindWhoami:  {"whoami", "whoami", "print the current user", runWhoami},
		KindDate:    {"date", "date", "print the date", runDate},
		KindEcho:    {"echo", "echo <text>", "print text", runEcho},
		KindTheme:   {"theme", "theme [name]", "list or switch color themes", runTheme},
		KindHistory: {"history", "history", "show recent commands", runHistory},
		KindClear:   {"clear", "clear", "clear the screen", runClear},
		KindBanner:  {"banner", "banner", "print the banner", runBanner},
		KindPlay:    {"play", "play <game>", "play a game", runPlay},
		KindSudo:    {"sudo", "sudo", "try it", runSudo},
		KindExit:    {"exit", "exit", "leave", runExit},
	}
	names = make(map[string]Kind, len(builtins))
	for k, c := range builtins {
		names[c.name] = k
	}
}

// Lookup resolves a built-in command name.
func Lookup(name string) (Kind, bool) {
	k, ok := names[strings.ToLower(name)]
	return k, ok
}

// String returns the command name.
func (k Kind) String() string {
	if c, ok := builtins[k]; ok {
		return c.name
	}
	if k == KindCustom {
		return "custom"
	}
	return "unknown"
}

// Builtins lists the built-in command names in table order.
func Builtins() []string {
	kinds := slices.Sorted(maps.Keys(builtins))
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = builtins[k].name
	}
	return out
}

func runHelp(in *Interpreter, _ []string) Result {
	kinds := slices.Sorted(maps.Keys(builtins))
	items := make([]string, 0, len(kinds)+len(in.custom))
	for _, k := range kinds {
		c := builtins[k]
		items = append(items, fmt.Sprintf("%-14s %s", c.usage, c.help))
	}
	for _, name := range slices.Sorted(maps.Keys(in.custom)) {
		c := in.custom[name]
		items = append(items, fmt.Sprintf("%-14s %s", c.Name, c.Description))
	}
	return list(items...)
}

func runAbout(in *Interpreter, _ []string) Result {
	o := in.ctx.Owner
	if o.Name == "" && o.Bio == "" {
		return errorf("about: no profile configured")
	}
	var sb strings.Builder
	sb.WriteString(o.Name)
	if o.Title != "" {
		sb.WriteString(", " + o.Title)
	}
	if o.Location != "" {
		sb.WriteString(" (" + o.Location + ")")
	}
	if o.Bio != "" {
		sb.WriteString("\n\n" + o.Bio)
	}
	if about, ok := in.ctx.Content.Settings["about"]; ok {
		sb.WriteString("\n\n" + about)
	}
	return text(sb.String())
}

func summaryLines(items []storage.Summary) []string {
	out := make([]string, len(items))
	for i, s := range items {
		line := fmt.Sprintf("%-16s %s", s.Slug, s.Title)
		if s.Summary != "" {
			line += ": " + s.Summary
		}
		out[i] = line
	}
	return out
}

func runLs(in *Interpreter, _ []string) Result {
	if len(in.ctx.Content.Projects) == 0 {
		return text("no projects yet")
	}
	return list(summaryLines(in.ctx.Content.Projects)...)
}

func runOpen(in *Interpreter, args []string) Result {
	if len(args) == 0 {
		return errorf("usage: open <slug>")
	}
	p, ok := in.ctx.Content.Project(args[0])
	if !ok {
		return errorf("open: no such project: %s", args[0])
	}
	out := p.Title
	if p.Summary != "" {
		out += "\n" + p.Summary
	}
	if p.URL != "" {
		out += "\n" + p.URL
	}
	return text(out)
}

func runBlog(in *Interpreter, args []string) Result {
	if len(args) == 0 {
		if len(in.ctx.Content.Posts) == 0 {
			return text("no posts yet")
		}
		return list(summaryLines(in.ctx.Content.Posts)...)
	}
	p, ok := in.ctx.Content.Post(args[0])
	if !ok {
		return errorf("blog: no such post: %s", args[0])
	}
	return text(p.Title + "\n" + p.Summary)
}

func runResume(in *Interpreter, _ []string) Result {
	if in.ctx.Content.ResumeURL == "" {
		return errorf("resume: not available")
	}
	return success("Resume: " + in.ctx.Content.ResumeURL)
}

func runContact(in *Interpreter, _ []string) Result {
	o := in.ctx.Owner
	var items []string
	if o.Email != "" {
		items = append(items, fmt.Sprintf("%-10s %s", "email", o.Email))
	}
	for _, k := range slices.Sorted(maps.Keys(o.Links)) {
		items = append(items, fmt.Sprintf("%-10s %s", k, o.Links[k]))
	}
	if len(items) == 0 {
		return errorf("contact: nothing configured")
	}
	return list(items...)
}

func runSkills(in *Interpreter, _ []string) Result {
	if len(in.ctx.Owner.Skills) == 0 {
		return text("no skills listed")
	}
	return list(in.ctx.Owner.Skills...)
}

func runWhoami(in *Interpreter, _ []string) Result {
	host := in.ctx.Owner.Handle
	if host == "" {
		host = "termfolio"
	}
	return text("guest@" + host)
}

func runDate(in *Interpreter, _ []string) Result {
	return text(in.ctx.now().Format("Mon Jan 2 15:04:05 MST 2006"))
}

func runEcho(_ *Interpreter, args []string) Result {
	return text(strings.Join(args, " "))
}

func runTheme(in *Interpreter, args []string) Result {
	th := in.ctx.Themes
	if th == nil {
		return errorf("theme: themes are not available here")
	}
	if len(args) == 0 {
		current := th.Theme()
		names := th.Themes()
		items := make([]string, len(names))
		for i, n := range names {
			mark := "  "
			if n == current {
				mark = "* "
			}
			items[i] = mark + n
		}
		return list(items...)
	}
	if err := th.SetTheme(args[0]); err != nil {
		return errorf("theme: %v", err)
	}
	return success("theme set to " + th.Theme())
}

func runHistory(in *Interpreter, _ []string) Result {
	entries := in.history.Entries()
	items := make([]string, len(entries))
	for i, e := range entries {
		items[i] = fmt.Sprintf("%d  %s", i+1, e)
	}
	return list(items...)
}

func runClear(_ *Interpreter, _ []string) Result {
	return Result{Kind: ResultText, Clear: true}
}

func runBanner(in *Interpreter, _ []string) Result {
	if in.ctx.Banner == "" {
		return ascii("termfolio")
	}
	return ascii(strings.TrimRight(in.ctx.Banner, "\n"))
}

func runPlay(in *Interpreter, args []string) Result {
	if len(args) == 0 {
		items := make([]string, len(in.ctx.Games))
		for i, g := range in.ctx.Games {
			items[i] = fmt.Sprintf("%-10s %s", g.ID, g.Title)
		}
		if len(items) == 0 {
			return errorf("play: no games installed")
		}
		return list(items...)
	}
	id := strings.ToLower(args[0])
	if !slices.ContainsFunc(in.ctx.Games, func(g registry.GameInfo) bool { return g.ID == id }) {
		return errorf("play: unknown game: %s", args[0])
	}
	if in.ctx.Nav == nil {
		return errorf("play: games are not available here")
	}
	if err := in.ctx.Nav.Play(id); err != nil {
		return errorf("play: %v", err)
	}
	return success("starting " + id + "...")
}

func runSudo(_ *Interpreter, _ []string) Result {
	return errorf("guest is not in the sudoers file. This incident will be reported.")
}

func runExit(in *Interpreter, _ []string) Result {
	if in.ctx.Nav != nil {
		in.ctx.Nav.Exit()
	}
	return success("bye!")
}
