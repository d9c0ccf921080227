package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	runNoReport bool
)

func init() {
	cmd := newRunCmd()
	cmd.Flags().BoolVar(&runNoReport, "no-report", false, "Skip the final report")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <op>...",
		Short: "Apply a sequence of operations and print the final state",
		Long: `The run command builds a fresh pool, applies each operation in order and
prints the allocator report (or, with --json, the pool statistics).

Operations:
  alloc:<n>     allocate n bytes
  str:<text>    store text plus a NUL terminator
  free:<ref>    free the allocation at ref, or #id for the id-th allocation
  reset         discard every allocation
  verify        check every header and list invariant
  report        print the report now
  stats         print statistics as JSON
  blocks        list blocks in address order

Example:
  buddyctl run alloc:200 alloc:10 str:hello
  buddyctl run --size 4096 alloc:1000 free:#1 verify
  buddyctl run --json alloc:100`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOps(args)
		},
	}
	return cmd
}

// parseOp turns "alloc:200" into the session command "allocate 200".
func parseOp(op string) ([]string, error) {
	name, arg, hasArg := strings.Cut(op, ":")
	switch name {
	case "alloc", "allocate":
		if !hasArg || arg == "" {
			return nil, fmt.Errorf("op %q: missing size", op)
		}
		return []string{"allocate", arg}, nil
	case "str", "string":
		if !hasArg {
			return nil, fmt.Errorf("op %q: missing text", op)
		}
		return []string{"string", arg}, nil
	case "free":
		if !hasArg || arg == "" {
			return nil, fmt.Errorf("op %q: missing ref", op)
		}
		return []string{"free", arg}, nil
	case "reset", "verify", "report", "stats", "blocks":
		if hasArg {
			return nil, fmt.Errorf("op %q takes no argument", op)
		}
		return []string{name}, nil
	}
	return nil, fmt.Errorf("unknown op %q", op)
}

func runOps(args []string) error {
	// Reject malformed ops before touching the pool.
	ops := make([][]string, 0, len(args))
	for _, arg := range args {
		fields, err := parseOp(arg)
		if err != nil {
			return err
		}
		ops = append(ops, fields)
	}

	opts, err := reportOptions()
	if err != nil {
		return err
	}
	a, cleanup, err := openPool()
	if err != nil {
		return err
	}
	defer cleanup()

	s := newSession(a, opts, stdout)
	s.silent = jsonOut
	for i, fields := range ops {
		printVerbose("[%d] %s\n", i+1, strings.Join(fields, " "))
		if err := s.exec(fields); err != nil {
			return fmt.Errorf("op %d (%s): %w", i+1, args[i], err)
		}
	}

	if jsonOut {
		return printJSON(a.Stats())
	}
	if runNoReport || quiet {
		return nil
	}
	printInfo("\n")
	return a.Report(stdout, opts)
}
