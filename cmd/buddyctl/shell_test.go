package main

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestShellCommand(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		jsonOut        bool
		wantContain    []string
		wantNotContain []string
	}{
		{
			name:  "allocate and status",
			input: "allocate 200\nalloc 10\nstatus\nexit\n",
			wantContain: []string{
				"Buddy Memory Allocator Shell",
				"Pool: 1.0 KB",
				"buddy> ",
				"Successfully allocated 200 bytes at ref 24",
				"Memory Usage Summary:",
				"Total Memory: 1,024 bytes",
				"Used Memory:  320 bytes (31.2%)",
				"Free Memory:  704 bytes (68.8%)",
				"Active Allocations:",
				"Block #1: 200 bytes at ref 24",
				"Block #2: 10 bytes at ref 280",
				"Goodbye!",
			},
		},
		{
			name:           "free by id drops the allocation",
			input:          "a 100\na 100\nfree #1\nstatus\n",
			wantContain:    []string{"Freed ref 24", "Block #2: 100 bytes at ref 152"},
			wantNotContain: []string{"Block #1:", "Goodbye!"},
		},
		{
			name:        "bad input keeps the shell alive",
			input:       "allocate\nfrobnicate\nallocate 8\n",
			wantContain: []string{"Error: usage: allocate", `Error: unknown command "frobnicate"`, "Successfully allocated 8 bytes"},
		},
		{
			name:        "comments and blank lines",
			input:       "# a comment\n\n   \nverify\nq\n",
			wantContain: []string{"Pool is consistent", "Goodbye!"},
		},
		{
			name:           "reset clears the allocation list",
			input:          "string hello world\nreset\nstatus\n",
			wantContain:    []string{`Stored "hello world" at ref 24`, "Memory reset to initial state", "Used Memory:  0 bytes"},
			wantNotContain: []string{"Active Allocations:"},
		},
		{
			name:        "help and explain",
			input:       "help\nexplain\n",
			wantContain: []string{"allocate <size>", "How Buddy Allocation Works:", "Total memory size: 1,024 bytes"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			jsonOut = tt.jsonOut

			output, err := captureOutput(t, func() error {
				return runShell(strings.NewReader(tt.input))
			})
			if err != nil {
				t.Fatalf("runShell() error: %v\nOutput: %s", err, output)
			}
			assertContains(t, output, tt.wantContain)
			assertNotContains(t, output, tt.wantNotContain)
		})
	}
}

func TestShellStatusJSON(t *testing.T) {
	resetFlags()
	jsonOut = true
	quiet = true

	output, err := captureOutput(t, func() error {
		return runShell(strings.NewReader("string hi\nstatus\n"))
	})
	if err != nil {
		t.Fatalf("runShell() error: %v", err)
	}
	assertJSON(t, output)

	var got statusJSON
	if err := json.Unmarshal([]byte(output), &got); err != nil {
		t.Fatalf("unmarshal status: %v", err)
	}
	if len(got.Allocations) != 1 || got.Allocations[0].Text != "hi" {
		t.Errorf("Allocations = %+v, want one entry for %q", got.Allocations, "hi")
	}
	if got.Stats.UsedBytes != 32 {
		t.Errorf("UsedBytes = %d, want 32", got.Stats.UsedBytes)
	}
}
