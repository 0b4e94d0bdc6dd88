package repl

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// HandleCommand dispatches one REPL command line (everything starting
// with ":").
func (r *REPL) HandleCommand(cmd string, out io.Writer) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case ":help", ":h":
		r.printHelp(out)

	case ":type", ":t":
		if len(parts) < 2 {
			fmt.Fprintln(out, "Usage: :type <expression>")
			return
		}
		r.showType(strings.Join(parts[1:], " "), out)

	case ":clear":
		fmt.Fprint(out, "\033[H\033[2J")

	case ":reset":
		r.decls = nil
		fmt.Fprintln(out, green("Environment reset"))

	case ":load":
		if len(parts) < 2 {
			fmt.Fprintln(out, "Usage: :load <file>")
			return
		}
		r.loadFile(parts[1], out)

	case ":history":
		for i, line := range r.history {
			fmt.Fprintf(out, "%3d  %s\n", i+1, line)
		}

	default:
		fmt.Fprintf(out, "Unknown command: %s\n", cmd)
		fmt.Fprintln(out, "Type :help for help")
	}
}

func (r *REPL) loadFile(path string, out io.Writer) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
		return
	}
	r.ProcessInput(string(data), out)
}

func (r *REPL) printHelp(out io.Writer) {
	fmt.Fprintln(out, bold("REPL commands:"))
	fmt.Fprintln(out, "  :help, :h          Show this help")
	fmt.Fprintln(out, "  :quit, :q          Exit the REPL")
	fmt.Fprintln(out, "  :type <expr>       Show the type of an expression")
	fmt.Fprintln(out, "  :load <file>       Load and run a source file")
	fmt.Fprintln(out, "  :history           Show command history")
	fmt.Fprintln(out, "  :clear             Clear the screen")
	fmt.Fprintln(out, "  :reset             Drop accumulated declarations")
	fmt.Fprintln(out)
	fmt.Fprintln(out, bold("Examples:"))
	fmt.Fprintln(out, "  1 + 2 * 3")
	fmt.Fprintln(out, "  :type \"hi\" <> \"there\"")
	fmt.Fprintln(out, "  fn square(x) -> Int do x * x end")
}
