// Command farr is Farr's command-line front end, grounded on
// original_source/farr/__main__.py's run_file/run_cmd/repl three-entry
// shape and on cli/main.go's cobra-rooted command structure. It is kept
// intentionally thin: three subcommands wired straight to the lexer,
// parser and interpreter packages, with no REPL ergonomics (history,
// multi-line editing) beyond a line-at-a-time read loop.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/farrlang/farr/pkgs/builtins"
	"github.com/farrlang/farr/pkgs/farrerr"
	"github.com/farrlang/farr/pkgs/interpreter"
	"github.com/farrlang/farr/pkgs/parser"
	"github.com/farrlang/farr/pkgs/value"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "farr",
		Short:         "Use Farr and enjoy!",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newRunCmd(), newCmdCmd(), newShellCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, formatError(err))
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <filepath>",
		Short: "Run code from a file.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			return runSource(string(source))
		},
	}
}

func newCmdCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cmd <code>",
		Short: "Run a string containing code.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSource(args[0])
		},
	}
}

func newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the Farr REPL.",
		RunE: func(cmd *cobra.Command, args []string) error {
			repl()
			return nil
		},
	}
}

// seedSymbols builds the builtin table every interpreter and sub-
// interpreter (for imports) starts from, wired to the process's real
// stdout/stdin — `cmd!?` is left on builtins.DisabledShell, honoring
// the CLI's own exclusion of a real shell-execution collaborator.
func seedSymbols() map[string]value.Value {
	return builtins.Symbols(builtins.Options{Stdout: os.Stdout, Stdin: os.Stdin})
}

func newInterpreter() *interpreter.Interpreter {
	in := interpreter.New(seedSymbols())
	in.SetImporter(interpreter.NewFileImporter(seedSymbols))
	return in
}

func runSource(source string) error {
	program, err := parser.Parse(source)
	if err != nil {
		return err
	}
	if _, err := newInterpreter().Run(program); err != nil {
		return fmt.Errorf("%s", formatError(err))
	}
	return nil
}

// repl mirrors the original's line-at-a-time loop: EOF (Ctrl-D) exits
// cleanly, a SystemExitError raised from within a line re-raises to
// actually terminate the process (the resolved "exit code after
// SystemExit from the REPL" open question), and every other error is
// printed and the loop continues.
func repl() {
	in := newInterpreter()
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("Farr> ")
		if !scanner.Scan() {
			fmt.Println("Exiting REPL...")
			return
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		program, err := parser.Parse(line)
		if err != nil {
			fmt.Println("Error:", err)
			continue
		}
		if _, err := in.Run(program); err != nil {
			if fe, ok := err.(*farrerr.Error); ok && fe.ErrKind == farrerr.SystemExitError {
				os.Exit(fe.Code)
			}
			fmt.Println("Error:", formatError(err))
		}
	}
}

// formatError renders a Farr runtime error per the CLI's interface
// contract; any other error (bad flags, missing file) falls back to its
// own message unchanged.
func formatError(err error) string {
	if fe, ok := err.(*farrerr.Error); ok {
		return fmt.Sprintf("%s: %s! Around line %d, column %d.", fe.ErrKind, fe.Message, fe.Pos.Line, fe.Pos.Column)
	}
	return err.Error()
}
