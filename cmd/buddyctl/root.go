package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/buddykit/buddy"
	"github.com/joshuapare/buddykit/internal/logger"
	"github.com/joshuapare/buddykit/internal/osmem"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	jsonOut    bool
	poolSize   int
	useMmap    bool
	payloads   string
	hexBytes   int
	logEnabled bool
	logDir     string
)

// stdout is where commands write; tests swap it for a buffer.
var stdout io.Writer = os.Stdout

// numbers formats integers with thousands separators.
var numbers = message.NewPrinter(language.English)

var rootCmd = &cobra.Command{
	Use:   "buddyctl",
	Short: "Drive and inspect a fixed-pool buddy allocator",
	Long: `buddyctl builds a power-of-two buddy allocator over a fixed memory pool
and lets you allocate, free and inspect blocks, either from a script of
operations or from an interactive shell.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().IntVarP(&poolSize, "size", "s", 1024, "Pool size in bytes")
	rootCmd.PersistentFlags().BoolVar(&useMmap, "mmap", false, "Back the pool with an anonymous OS mapping")
	rootCmd.PersistentFlags().
		StringVar(&payloads, "payloads", "text", "Used-block rendering in reports: text, hex or none")
	rootCmd.PersistentFlags().IntVar(&hexBytes, "hex-bytes", 16, "Payload bytes shown with --payloads=hex")
	rootCmd.PersistentFlags().
		BoolVar(&logEnabled, "log", os.Getenv("BUDDY_LOG") != "", "Log allocator events (also BUDDY_LOG=1)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Write JSON logs to this directory instead of stderr")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// reportOptions builds report options from the global flags.
func reportOptions() (*buddy.ReportOptions, error) {
	mode, ok := buddy.ParsePayloadMode(payloads)
	if !ok {
		return nil, fmt.Errorf("invalid --payloads %q (want text, hex or none)", payloads)
	}
	return &buddy.ReportOptions{Payloads: mode, HexBytes: hexBytes}, nil
}

// openPool builds the arena and the allocator described by the global flags.
// The returned cleanup releases the logger and the arena.
func openPool() (*buddy.Allocator, func() error, error) {
	closeLog, err := logger.Init(logger.Options{Enabled: logEnabled, Name: "buddyctl", LogDir: logDir})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialise logging: %w", err)
	}

	alloc := osmem.Heap
	if useMmap {
		alloc = osmem.Anonymous
	}
	arena, release, err := alloc(poolSize)
	if err != nil {
		closeLog()
		return nil, nil, fmt.Errorf("failed to create %d byte pool: %w", poolSize, err)
	}

	a, err := buddy.New(arena, &buddy.Options{Logger: logger.L})
	if err != nil {
		release()
		closeLog()
		return nil, nil, err
	}
	printVerbose("Pool: %s bytes, max class %d, slack %d (mmap=%v)\n",
		numbers.Sprintf("%d", poolSize), a.MaxClass(), a.Slack(), useMmap)

	cleanup := func() error {
		err := release()
		if cerr := closeLog(); err == nil {
			err = cerr
		}
		return err
	}
	return a, cleanup, nil
}

// formatBytes renders n as "1,024 B" or "1.5 KB".
func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return numbers.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return numbers.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}

// percent returns part/whole as a percentage, 0 for an empty whole.
func percent(part, whole uint64) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) * 100 / float64(whole)
}
