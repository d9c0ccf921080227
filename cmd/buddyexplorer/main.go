package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/buddykit/buddy"
	"github.com/joshuapare/buddykit/internal/logger"
	"github.com/joshuapare/buddykit/internal/osmem"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// options holds the parsed command line.
type options struct {
	size    int
	useMmap bool
	debug   bool
	help    bool
	version bool
}

func parseArgs(args []string) (options, error) {
	opts := options{size: 1024}
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; arg {
		case "--debug", "-d":
			opts.debug = true
		case "--mmap":
			opts.useMmap = true
		case "--help", "-h":
			opts.help = true
		case "--version", "-v":
			opts.version = true
		case "--size", "-s":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("%s needs a value", arg)
			}
			i++
			n, err := strconv.Atoi(args[i])
			if err != nil || n <= 0 {
				return opts, fmt.Errorf("invalid pool size %q", args[i])
			}
			opts.size = n
		default:
			return opts, fmt.Errorf("unknown argument %q", arg)
		}
	}
	return opts, nil
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		printUsage()
		os.Exit(1)
	}
	if opts.help {
		printHelp()
		os.Exit(0)
	}
	if opts.version {
		fmt.Printf("buddyexplorer %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built: %s\n", date)
		os.Exit(0)
	}

	// Stderr belongs to the TUI, so debug logs go to a file.
	logDir := ""
	if home, err := os.UserHomeDir(); err == nil {
		logDir = filepath.Join(home, ".buddyexplorer", "logs")
	}
	closeLog, err := logger.Init(logger.Options{
		Enabled: opts.debug && logDir != "",
		Name:    "buddyexplorer",
		LogDir:  logDir,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to init logging: %v\n", err)
	}
	defer closeLog()

	alloc := osmem.Heap
	if opts.useMmap {
		alloc = osmem.Anonymous
	}
	arena, release, err := alloc(opts.size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create %d byte pool: %v\n", opts.size, err)
		os.Exit(1)
	}
	defer release()

	pool, err := buddy.New(arena, &buddy.Options{Logger: logger.L})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.L.Info("starting buddyexplorer", "size", opts.size, "mmap", opts.useMmap)

	p := tea.NewProgram(
		NewModel(pool, logger.L),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		logger.L.Error("TUI error", "error", err)
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
	logger.L.Info("buddyexplorer exited normally")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: buddyexplorer [options]\n")
	fmt.Fprintf(os.Stderr, "Try 'buddyexplorer --help' for more information.\n")
}

func printHelp() {
	fmt.Println("buddyexplorer - Interactive TUI for a buddy allocator pool")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  buddyexplorer [options]")
	fmt.Println()
	fmt.Println("DESCRIPTION:")
	fmt.Println("  Builds a pool and shows every block in address order next to the")
	fmt.Println("  per-class free and used counts. Allocate, store text, free and")
	fmt.Println("  verify from the keyboard.")
	fmt.Println()
	fmt.Println("  Keys:")
	fmt.Println("    ↑/k, ↓/j    Move between blocks")
	fmt.Println("    a           Allocate bytes")
	fmt.Println("    t           Store text")
	fmt.Println("    d/x         Free the selected block")
	fmt.Println("    R           Reset the pool")
	fmt.Println("    v           Verify the pool")
	fmt.Println("    c / y       Copy ref / copy report")
	fmt.Println("    ?           Show help")
	fmt.Println("    q           Quit")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -s, --size N   Pool size in bytes (default 1024)")
	fmt.Println("      --mmap     Back the pool with an anonymous OS mapping")
	fmt.Println("  -d, --debug    Enable debug logging to ~/.buddyexplorer/logs/")
	fmt.Println("  -h, --help     Show this help message")
	fmt.Println("  -v, --version  Show version information")
	fmt.Println()
	fmt.Println("For scripted runs, use the 'buddyctl' command instead.")
}
