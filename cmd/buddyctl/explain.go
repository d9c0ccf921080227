package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/buddykit/buddy"
	"github.com/joshuapare/buddykit/internal/format"
)

func init() {
	rootCmd.AddCommand(newExplainCmd())
}

func newExplainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain",
		Short: "Explain how buddy allocation works",
		Long: `The explain command describes how the allocator splits and merges
blocks, using the pool size given by --size.

Example:
  buddyctl explain
  buddyctl explain --size 4096`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplain()
		},
	}
}

func runExplain() error {
	if poolSize <= 0 {
		return fmt.Errorf("invalid --size %d", poolSize)
	}
	printInfo("%s", explanation(poolSize))
	return nil
}

// explanation walks through allocation for a pool of size bytes.
func explanation(size int) string {
	minClass := format.MinClass()
	var b strings.Builder

	b.WriteString("How Buddy Allocation Works:\n\n")
	b.WriteString("1. Memory Organization:\n")
	b.WriteString("   - Memory is divided into blocks of size 2^n\n")
	b.WriteString("   - Each block can be split into two equal \"buddy\" blocks\n")
	fmt.Fprintf(&b, "   - Every block starts with a %d byte header\n", buddy.HeaderSize)
	fmt.Fprintf(&b, "   - Total memory size: %s bytes\n\n", numbers.Sprintf("%d", size))

	b.WriteString("2. Allocation Process:\n")
	b.WriteString("   - When allocating N bytes:\n")
	fmt.Fprintf(&b, "     a. Add the header and round N+%d up to a power of 2\n", buddy.HeaderSize)
	b.WriteString("     b. Find the smallest free block that fits\n")
	b.WriteString("     c. If the block is too large, split it into buddies\n")
	b.WriteString("     d. Repeat until a right-sized block is created\n")
	b.WriteString("   - Freeing a block merges it with its buddy while the buddy is free\n\n")

	const example = 30
	need := uint64(example) + buddy.HeaderSize
	c := format.CeilClass(need)
	b.WriteString("3. Example:\n")
	fmt.Fprintf(&b, "   - To allocate %d bytes:\n", example)
	fmt.Fprintf(&b, "     1. Round %d+%d=%d up to %d (2^%d)\n",
		example, buddy.HeaderSize, need, format.BlockSize(c), c)
	fmt.Fprintf(&b, "     2. If no %d byte block is free:\n", format.BlockSize(c))
	fmt.Fprintf(&b, "        - Split a %d byte block into two %d byte blocks\n",
		format.BlockSize(c+1), format.BlockSize(c))
	b.WriteString("        - Use one, keep the other for later\n\n")

	b.WriteString("4. Block Sizes:\n")
	b.WriteString("   Available sizes for this pool:\n")
	top := format.FloorClass(uint64(size))
	for k := minClass; k <= top && k < minClass+6; k++ {
		fmt.Fprintf(&b, "   2^%-2d = %s bytes\n", k, numbers.Sprintf("%d", format.BlockSize(k)))
	}
	if top >= minClass+6 {
		fmt.Fprintf(&b, "   ...up to 2^%d = %s bytes\n", top, numbers.Sprintf("%d", format.BlockSize(top)))
	}
	b.WriteString("\nUse 'status' to see current memory state\n")
	b.WriteString("Use 'allocate <size>' to test different allocation sizes\n")
	return b.String()
}
