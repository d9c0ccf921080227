package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

const shellHelp = `Commands:
  allocate <size>   allocate size bytes (alias: alloc, a)
  string <text>     store text plus a NUL terminator (alias: str, s)
  free <ref|#id>    free by ref or by allocation id (alias: f)
  status            show the report, usage summary and live allocations
  stats             print statistics as JSON
  blocks            list blocks in address order
  verify            check every header and list invariant
  reset             discard every allocation
  explain           explain how buddy allocation works
  help              show this help
  exit              leave the shell (alias: quit, q)
`

func init() {
	rootCmd.AddCommand(newShellCmd())
}

func newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive allocator shell",
		Long: `The shell command builds a pool and reads commands from standard input
until exit or end of input. Type help for the command list.

Example:
  buddyctl shell
  buddyctl shell --size 4096 --payloads hex`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd.InOrStdin())
		},
	}
}

func runShell(in io.Reader) error {
	opts, err := reportOptions()
	if err != nil {
		return err
	}
	a, cleanup, err := openPool()
	if err != nil {
		return err
	}
	defer cleanup()

	printInfo("Buddy Memory Allocator Shell\n")
	printInfo("Pool: %s, type help or ? to list commands.\n", formatBytes(a.Size()))

	s := newSession(a, opts, stdout)
	sc := bufio.NewScanner(in)
	for {
		printInfo("buddy> ")
		if !sc.Scan() {
			break
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		err := s.exec(strings.Fields(line))
		if errors.Is(err, errQuit) {
			printInfo("Goodbye!\n")
			return nil
		}
		if err != nil {
			// Bad input is reported and the shell keeps going.
			fmt.Fprintf(stdout, "Error: %v\n", err)
		}
	}
	printInfo("\n")
	return sc.Err()
}
