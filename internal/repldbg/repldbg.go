// Package repldbg is an interactive trace REPL: each line entered is
// run through the lexer, adapter, and parser, and the resulting tokens
// (or the first error) are printed. It does not evaluate anything —
// this compiler has no runtime — so it exists purely to let someone
// poke at the front end of the pipeline one line at a time.
//
// Adapted from the teacher's repl/repl.go: the readline loop, history,
// banner, and colored-output structure are kept; the evaluator call is
// replaced with a call into the compiler's front-end stages.
package repldbg

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/wincc-lang/nwcc/internal/adapter"
	"github.com/wincc-lang/nwcc/internal/lexer"
	"github.com/wincc-lang/nwcc/internal/parser"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgCyan)
)

const (
	banner = "nwcc trace REPL — lexer/adapter/parser, one line at a time"
	line   = "----------------------------------------------------------------"
	prompt = "nwcc> "
)

// Run starts the trace REPL, writing its messages to out. Input lines
// are read by readline from the process's standard input; in is not
// read, and readline's prompt goes to standard output.
func Run(in io.Reader, out io.Writer) {
	printBanner(out)

	rl, err := readline.New(prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	for {
		text, err := rl.Readline()
		if err != nil {
			fmt.Fprintln(out, "Good bye!")
			return
		}

		text = strings.Trim(text, " \n\t\r")
		if text == "" {
			continue
		}
		if text == ".exit" {
			fmt.Fprintln(out, "Good bye!")
			return
		}

		rl.SaveHistory(text)
		traceLine(out, text)
	}
}

func printBanner(out io.Writer) {
	blueColor.Fprintf(out, "%s\n", line)
	greenColor.Fprintf(out, "%s\n", banner)
	blueColor.Fprintf(out, "%s\n", line)
	yellowColor.Fprintln(out, "Type a statement or declaration; '.exit' to quit.")
	blueColor.Fprintln(out, line)
}

// traceLine runs one line through lex -> adapt -> parse, printing
// whichever stage it reaches and whatever that stage produced or
// failed with. Recovers from parser panics the same way the teacher's
// REPL recovers from evaluator panics, since a single bad line should
// never end the session.
func traceLine(out io.Writer, text string) {
	defer func() {
		if r := recover(); r != nil {
			redColor.Fprintf(out, "[internal error] %v\n", r)
		}
	}()

	raws, err := lexer.New(text).Lex()
	if err != nil {
		redColor.Fprintf(out, "[lex error] %v\n", err)
		return
	}

	toks, err := adapter.Adapt(raws)
	if err != nil {
		redColor.Fprintf(out, "[adapt error] %v\n", err)
		return
	}

	parts := make([]string, len(toks))
	for i, t := range toks {
		parts[i] = t.String()
	}
	yellowColor.Fprintf(out, "tokens: %s\n", strings.Join(parts, " "))

	prog, err := parser.New(toks).Parse()
	if err != nil {
		redColor.Fprintf(out, "[parse error] %v\n", err)
		return
	}
	greenColor.Fprintf(out, "parsed %d top-level item(s)\n", len(prog.Items))
}
