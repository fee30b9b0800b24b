// Package terminal implements the command line shown on the portfolio home
// screen: a closed table of commands, bounded history and an open/close
// controller.
package terminal

import (
	"fmt"
	"strings"
)

// ResultKind tells the renderer how to style a result.
type ResultKind int

const (
	ResultText ResultKind = iota
	ResultError
	ResultSuccess
	ResultASCII
	ResultList
)

func (k ResultKind) String() string {
	switch k {
	case ResultText:
		return "text"
	case ResultError:
		return "error"
	case ResultSuccess:
		return "success"
	case ResultASCII:
		return "ascii"
	case ResultList:
		return "list"
	default:
		return "unknown"
	}
}

// ParseResultKind maps a stored kind name to a ResultKind. Unknown names
// are plain text.
func ParseResultKind(s string) ResultKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return ResultError
	case "success":
		return ResultSuccess
	case "ascii", "ascii-art":
		return ResultASCII
	case "list":
		return ResultList
	default:
		return ResultText
	}
}

// Result is the outcome of one command. List results carry Items; the
// other kinds carry Text.
type Result struct {
	Input string
	Kind  ResultKind
	Text  string
	Items []string

	// Clear asks the view to drop the scrollback.
	Clear bool
}

// Lines returns the result as display lines.
func (r Result) Lines() []string {
	if r.Kind == ResultList {
		return r.Items
	}
	if r.Text == "" {
		return nil
	}
	return strings.Split(r.Text, "\n")
}

func text(s string) Result    { return Result{Kind: ResultText, Text: s} }
func success(s string) Result { return Result{Kind: ResultSuccess, Text: s} }
func ascii(s string) Result   { return Result{Kind: ResultASCII, Text: s} }
func list(items ...string) Result {
	return Result{Kind: ResultList, Items: items}
}

func errorf(format string, args ...any) Result {
	return Result{Kind: ResultError, Text: fmt.Sprintf(format, args...)}
}
