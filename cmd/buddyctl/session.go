package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/joshuapare/buddykit/buddy"
)

// allocation remembers what the user asked for, so status can list it.
type allocation struct {
	ID   int       `json:"id"`
	Ref  buddy.Ref `json:"ref"`
	Size uint64    `json:"size"`
	Text string    `json:"text,omitempty"`
}

// session holds a pool and the allocations made through one run or shell.
type session struct {
	a      *buddy.Allocator
	opts   *buddy.ReportOptions
	out    io.Writer
	live   []allocation
	nextID int

	// silent drops progress messages, leaving only command output.
	silent bool
}

// errQuit ends a shell loop.
var errQuit = errors.New("quit")

func newSession(a *buddy.Allocator, opts *buddy.ReportOptions, out io.Writer) *session {
	return &session{a: a, opts: opts, out: out, nextID: 1}
}

func (s *session) printf(format string, args ...any) {
	if !quiet && !s.silent {
		fmt.Fprintf(s.out, format, args...)
	}
}

// exec runs one command. Allocation failures are reported to the user and
// are not errors; malformed commands are.
func (s *session) exec(fields []string) error {
	if len(fields) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	switch cmd {
	case "allocate", "alloc", "a":
		if len(args) != 1 {
			return fmt.Errorf("usage: allocate <size_in_bytes>")
		}
		n, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid size %q", args[0])
		}
		return s.allocate(n)
	case "string", "str", "s":
		if len(args) == 0 {
			return fmt.Errorf("usage: string <text>")
		}
		return s.allocString(strings.Join(args, " "))
	case "free", "f":
		if len(args) != 1 {
			return fmt.Errorf("usage: free <ref|#id>")
		}
		return s.free(args[0])
	case "status", "report":
		return s.status()
	case "stats":
		return printJSON(s.a.Stats())
	case "blocks", "layout":
		return s.blocks()
	case "verify":
		if err := s.a.Verify(); err != nil {
			return err
		}
		s.printf("Pool is consistent\n")
		return nil
	case "reset":
		s.a.Reset()
		s.live = nil
		s.printf("Memory reset to initial state\n")
		return nil
	case "explain":
		s.printf("%s", explanation(int(s.a.Size())))
		return nil
	case "help", "?":
		s.printf("%s", shellHelp)
		return nil
	case "exit", "quit", "q":
		return errQuit
	}
	return fmt.Errorf("unknown command %q (try help)", fields[0])
}

func (s *session) allocate(n uint64) error {
	ref, _, err := s.a.Alloc(n)
	if err != nil {
		s.printf("Allocation of %d bytes failed: %v\n", n, err)
		return nil
	}
	s.track(ref, n, "")
	s.printf("Successfully allocated %d bytes at ref %d\n", n, ref)
	return nil
}

func (s *session) allocString(text string) error {
	ref, err := s.a.AllocString(text)
	if err != nil {
		s.printf("Allocation of %q failed: %v\n", text, err)
		return nil
	}
	s.track(ref, uint64(len(text))+1, text)
	s.printf("Stored %q at ref %d\n", text, ref)
	return nil
}

func (s *session) track(ref buddy.Ref, n uint64, text string) {
	s.live = append(s.live, allocation{ID: s.nextID, Ref: ref, Size: n, Text: text})
	s.nextID++
}

// free accepts either a raw ref or "#id" naming an earlier allocation.
func (s *session) free(arg string) error {
	var ref buddy.Ref
	if id, ok := strings.CutPrefix(arg, "#"); ok {
		n, err := strconv.Atoi(id)
		if err != nil {
			return fmt.Errorf("invalid allocation id %q", arg)
		}
		i := s.indexByID(n)
		if i < 0 {
			return fmt.Errorf("no live allocation #%d", n)
		}
		ref = s.live[i].Ref
	} else {
		n, err := strconv.ParseUint(arg, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ref %q", arg)
		}
		ref = n
	}

	if err := s.a.Free(ref); err != nil {
		s.printf("Free of ref %d failed: %v\n", ref, err)
		return nil
	}
	for i := range s.live {
		if s.live[i].Ref == ref {
			s.live = append(s.live[:i], s.live[i+1:]...)
			break
		}
	}
	s.printf("Freed ref %d\n", ref)
	return nil
}

func (s *session) indexByID(id int) int {
	for i := range s.live {
		if s.live[i].ID == id {
			return i
		}
	}
	return -1
}

// statusJSON is the --json form of status.
type statusJSON struct {
	Stats       buddy.Stats  `json:"stats"`
	Allocations []allocation `json:"allocations"`
}

// status prints the allocator report, a usage summary and the live
// allocations.
func (s *session) status() error {
	if jsonOut {
		live := s.live
		if live == nil {
			live = []allocation{}
		}
		return printJSON(statusJSON{Stats: s.a.Stats(), Allocations: live})
	}
	if quiet {
		return nil
	}

	if err := s.a.Report(s.out, s.opts); err != nil {
		return err
	}

	st := s.a.Stats()
	s.printf("\nMemory Usage Summary:\n")
	s.printf("%s\n", strings.Repeat("-", 50))
	s.printf("Total Memory: %s\n", numbers.Sprintf("%d bytes", st.Size))
	s.printf("Used Memory:  %s (%.1f%%)\n", numbers.Sprintf("%d bytes", st.UsedBytes), percent(st.UsedBytes, st.Size))
	s.printf("Free Memory:  %s (%.1f%%)\n", numbers.Sprintf("%d bytes", st.FreeBytes), percent(st.FreeBytes, st.Size))
	if st.Slack > 0 {
		s.printf("Slack:        %s\n", numbers.Sprintf("%d bytes", st.Slack))
	}

	if len(s.live) > 0 {
		s.printf("\nActive Allocations:\n")
		for _, al := range s.live {
			s.printf("Block #%d: %d bytes at ref %d\n", al.ID, al.Size, al.Ref)
		}
	}
	return nil
}

// blocks prints the physical layout, one block per line.
func (s *session) blocks() error {
	layout, err := s.a.Layout()
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(layout)
	}
	if quiet {
		return nil
	}
	s.printf("%-8s %-5s %-8s %-4s %s\n", "offset", "class", "size", "used", "ref")
	for _, b := range layout {
		state, ref := "-", "-"
		if b.Used {
			state, ref = "yes", fmt.Sprint(b.Ref())
		}
		s.printf("%-8d %-5d %-8d %-4s %s\n", b.Offset, b.Class, b.Size, state, ref)
	}
	if slack := s.a.Slack(); slack > 0 {
		s.printf("%-8d slack %d bytes\n", s.a.Size()-slack, slack)
	}
	return nil
}
