package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"
	pkgerrors "github.com/pkg/errors"

	lambda "github.com/adrianratnapala/tpl01-lambda"
)

const (
	appName     = "lambda"
	historyFile = ".lambda_history"
	promptMain  = "==> "
	promptCont  = "... "
)

var (
	banner   = fmt.Sprintf("lambda %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", lambda.Version)
	helpText = `
REPL commands:
  :quit    Exit the REPL
`
)

func red(s string) string   { return "\x1b[31m" + s + "\x1b[0m" }
func green(s string) string { return "\x1b[32m" + s + "\x1b[0m" }
func blue(s string) string  { return "\x1b[94m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	switch cmd {
	case "type":
		os.Exit(cmdType(os.Args[2:]))
	case "unparse":
		os.Exit(cmdUnparse(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "version":
		fmt.Println(lambda.Version)
		return
	case "-h", "--help", "help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`lambda %s (built %s)

Usage:
  %s type [-debug] [file]       Infer and print a type for every subexpression.
  %s unparse [-debug] [file]    Parse and print the canonical form.
  %s repl                       Start the REPL.
  %s version                    Print the compiled version

type and unparse read stdin when file is omitted or "-". Their exit
status is the number of syntax errors found.
`, lambda.Version, lambda.BuildDate, appName, appName, appName, appName)
}

// -----------------------------------------------------------------------------
// type / unparse
// -----------------------------------------------------------------------------

// wrapParens encloses the whole input in one parenthesized group, so a
// multi-line file reads as a single program expression. Reported byte
// offsets refer to the wrapped buffer.
func wrapParens(src string) string {
	return "(" + src + ")"
}

func readSource(path string) (string, error) {
	if path == "" || path == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", pkgerrors.Wrap(err, "reading stdin")
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", pkgerrors.Wrapf(err, "reading %s", path)
	}
	return string(b), nil
}

// parseArg handles the shared type/unparse front half: flags, source
// ingestion, parsing, and error reporting. A nil Ast means stop with the
// returned status.
func parseArg(cmd string, args []string) (*lambda.Ast, int) {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	debug := fs.Bool("debug", false, "trace parser pushes to stderr")
	if err := fs.Parse(args); err != nil {
		return nil, 2
	}
	if *debug {
		lambda.EnableDebugLog(os.Stderr)
	}

	path := fs.Arg(0)
	name := path
	if name == "" || name == "-" {
		name = "stdin"
	}

	src, err := readSource(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return nil, 1
	}

	ast := lambda.Parse(name, wrapParens(src))
	if n := ast.ReportSyntaxErrors(os.Stderr); n > 0 {
		return nil, n
	}
	return ast, 0
}

func cmdType(args []string) int {
	ast, status := parseArg("type", args)
	if ast == nil {
		return status
	}
	if err := lambda.PrintTypes(os.Stdout, ast); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 1
	}
	return 0
}

func cmdUnparse(args []string) int {
	ast, status := parseArg("unparse", args)
	if ast == nil {
		return status
	}
	if err := lambda.Unparse(os.Stdout, ast); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 1
	}
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl(_ []string) int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		code, ok := readBalanced(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			break
		}

		if strings.HasPrefix(strings.TrimSpace(code), ":") {
			switch strings.TrimSpace(strings.ToLower(code)) {
			case ":quit":
				return 0
			case ":help":
				fmt.Print(helpText)
			default:
				fmt.Printf("unknown command. Type :quit to exit.\n")
			}
			continue
		}

		if strings.TrimSpace(code) == "" {
			continue
		}

		evalLine(code)
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}

	return 0
}

// evalLine parses one REPL input and prints its canonical form and the
// type of the whole expression. Internal faults abort the one input, not
// the session.
func evalLine(code string) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		ierr, ok := r.(*lambda.InternalError)
		if !ok {
			panic(r)
		}
		fmt.Fprintln(os.Stderr, red(ierr.Error()))
	}()

	wrapped := wrapParens(code)
	ast := lambda.Parse("repl", wrapped)
	if errs := ast.SyntaxErrors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, red(lambda.WrapErrorWithName(e, "repl", wrapped).Error()))
		}
		return
	}

	tt := lambda.BuildTypeTree(ast)
	fmt.Println(blue(lambda.UnparseString(ast)))
	fmt.Println(green(tt.TypeString(tt.Size() - 1)))
}

// readBalanced reads one logical input, prompting for continuation lines
// while the text still has unclosed '(' or '[' groups.
func readBalanced(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if needsMore(src) {
			continue
		}
		return src, true
	}
}

func needsMore(src string) bool {
	parens, brackets := 0, 0
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '(':
			parens++
		case ')':
			if parens > 0 {
				parens--
			}
		case '[':
			brackets++
		case ']':
			if brackets > 0 {
				brackets--
			}
		}
	}
	return parens > 0 || brackets > 0
}
