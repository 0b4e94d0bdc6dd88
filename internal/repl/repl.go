// Package repl hosts the interactive Snow shell. It is a thin driver over
// internal/pipeline: every line either accumulates into a running set of
// declarations or is wrapped as a one-shot expression and run through the
// parse/lower/check phases, exactly the way `snowc compile` would run them
// on a whole file, grounded on the teacher's internal/repl package (liner
// integration, multiline continuation, command dispatch).
package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

// Config holds REPL display toggles.
type Config struct {
	ShowTimings bool
	ShowLayouts bool
}

// REPL is a Read-Eval-Print loop over the Snow pipeline. Declarations
// (fn/struct/type/actor/service/supervisor/trait/impl) persist across
// turns in decls; bare expressions are evaluated one-shot and don't
// affect that accumulated source.
type REPL struct {
	config    *Config
	decls     []string // accumulated top-level declarations, source order
	history   []string
	version   string
	buildTime string
}

// New creates a REPL with default configuration.
func New() *REPL { return NewWithVersion("", "") }

// NewWithVersion creates a REPL carrying build metadata for the banner.
func NewWithVersion(version, buildTime string) *REPL {
	if version == "" {
		version = "dev"
	}
	if buildTime == "" {
		buildTime = "unknown"
	}
	return &REPL{
		config:    &Config{},
		history:   []string{},
		version:   version,
		buildTime: buildTime,
	}
}

func (r *REPL) prompt() string {
	if len(r.decls) == 0 {
		return "snow> "
	}
	return fmt.Sprintf("snow[%d]> ", len(r.decls))
}

// Start runs the REPL loop, reading from in and writing prompts, results
// and diagnostics to out.
func (r *REPL) Start(in io.Reader, out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(true)

	historyFile := filepath.Join(os.TempDir(), ".snow_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	fmt.Fprintf(out, "%s %s\n", bold("Snow"), bold(r.version))
	fmt.Fprintln(out, dim("Type :help for help, :quit to exit"))
	fmt.Fprintln(out)

	line.SetCompleter(func(input string) (c []string) {
		if !strings.HasPrefix(input, ":") {
			return nil
		}
		for _, cmd := range []string{":help", ":quit", ":type", ":clear", ":reset", ":load", ":history"} {
			if strings.HasPrefix(cmd, input) {
				c = append(c, cmd)
			}
		}
		return
	})

	for {
		input, err := line.Prompt(r.prompt())
		if err == io.EOF {
			fmt.Fprintln(out, green("Goodbye!"))
			break
		}
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if needsContinuation(input) {
			input = r.readContinuation(line, input, out)
		}

		line.AppendHistory(input)
		r.history = append(r.history, input)

		if strings.HasPrefix(input, ":") {
			if strings.HasPrefix(input, ":quit") || strings.HasPrefix(input, ":q") {
				fmt.Fprintln(out, green("Goodbye!"))
				break
			}
			r.HandleCommand(input, out)
			continue
		}

		r.ProcessInput(input, out)
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

// readContinuation keeps reading "... " lines until open do/end, bracket
// and quote pairs balance, joining everything read into one source blob.
func (r *REPL) readContinuation(line *liner.State, first string, out io.Writer) string {
	lines := []string{first}
	for needsContinuation(strings.Join(lines, "\n")) {
		cont, err := line.Prompt("...   ")
		if err == io.EOF {
			fmt.Fprintln(out, red("Incomplete input"))
			break
		}
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
			break
		}
		lines = append(lines, cont)
	}
	return strings.Join(lines, "\n")
}

// needsContinuation reports whether src has unbalanced do/end blocks,
// brackets, parens or braces — the same structural signals the lexer
// itself uses to decide a token stream isn't finished, applied here at
// the line level so the REPL knows to keep prompting instead of handing
// a truncated block to the parser.
func needsContinuation(src string) bool {
	depth := 0
	for _, word := range strings.Fields(src) {
		w := strings.Trim(word, "(){}[],")
		switch w {
		case "do":
			depth++
		case "end":
			depth--
		}
	}
	if depth > 0 {
		return true
	}
	return parenDepth(src) > 0
}

func parenDepth(src string) int {
	depth := 0
	inString := false
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '"':
			if i == 0 || src[i-1] != '\\' {
				inString = !inString
			}
		case '(', '[', '{':
			if !inString {
				depth++
			}
		case ')', ']', '}':
			if !inString {
				depth--
			}
		}
	}
	return depth
}
