package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/termfolio/internal/storage"
)

// Interpreter executes command lines against a Context.
type Interpreter struct {
	ctx     *Context
	history History
	custom  map[string]storage.TerminalCommand
	logger  *log.Logger
}

// NewInterpreter creates an interpreter. Enabled custom commands from the
// context's catalog join the table; built-ins win on name clashes.
func NewInterpreter(ctx *Context, logger *log.Logger) *Interpreter {
	if ctx == nil {
		ctx = &Context{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	in := &Interpreter{ctx: ctx, logger: logger}
	in.SetCommands(ctx.Content.Commands)
	return in
}

// SetCommands replaces the custom command set.
func (in *Interpreter) SetCommands(cmds []storage.TerminalCommand) {
	in.custom = make(map[string]storage.TerminalCommand, len(cmds))
	for _, c := range cmds {
		name := strings.ToLower(strings.TrimSpace(c.Name))
		if name == "" || !c.Enabled || strings.ContainsAny(name, " \t") {
			continue
		}
		if _, builtin := names[name]; builtin {
			in.logger.Debug("custom command shadowed by builtin", "name", name)
			continue
		}
		c.Name = name
		in.custom[name] = c
	}
}

// Context returns the interpreter's context.
func (in *Interpreter) Context() *Context { return in.ctx }

// History returns the remembered inputs, oldest first.
func (in *Interpreter) History() []string { return in.history.Entries() }

// Execute runs one line of input. It always returns a well-formed result.
func (in *Interpreter) Execute(input string) (res Result) {
	line := strings.TrimSpace(input)
	defer func() {
		if r := recover(); r != nil {
			in.logger.Error("command panicked", "input", line, "panic", r)
			res = errorf("internal error: %v", r)
		}
		res.Input = line
	}()

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Result{Kind: ResultText}
	}
	in.history.Add(line)

	name, args := strings.ToLower(fields[0]), fields[1:]
	if k, ok := Lookup(name); ok {
		return builtins[k].run(in, args)
	}
	if c, ok := in.custom[name]; ok {
		return customResult(c)
	}
	return errorf("command not found: %s. Type 'help' for a list.", fields[0])
}

// Resolve reports which kind of command name maps to.
func (in *Interpreter) Resolve(name string) Kind {
	if k, ok := Lookup(name); ok {
		return k
	}
	name = strings.ToLower(name)
	if _, ok := in.custom[name]; ok {
		return KindCustom
	}
	return KindUnknown
}

// Complete returns the command names starting with prefix.
func (in *Interpreter) Complete(prefix string) []string {
	prefix = strings.ToLower(prefix)
	var out []string
	for _, n := range Builtins() {
		if strings.HasPrefix(n, prefix) {
			out = append(out, n)
		}
	}
	for n := range in.custom {
		if strings.HasPrefix(n, prefix) {
			out = append(out, n)
		}
	}
	return out
}

func customResult(c storage.TerminalCommand) Result {
	kind := ParseResultKind(c.Kind)
	body := strings.TrimRight(c.Response, "\n")
	if kind == ResultList {
		return list(strings.Split(body, "\n")...)
	}
	return Result{Kind: kind, Text: body}
}

// String implements fmt.Stringer for debugging.
func (r Result) String() string {
	return fmt.Sprintf("%s: %s", r.Kind, strings.Join(r.Lines(), " / "))
}
