package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/joshuapare/buddykit/buddy"
)

// View renders the entire UI
func (m Model) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.showHelp {
		help := &HelpModel{keys: m.keys}
		return overlay.New(help, NewMainViewModel(&m), overlay.Center, overlay.Center, 0, 0).View()
	}
	return m.renderMain()
}

func (m Model) renderMain() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.renderContent(),
		m.renderStatus(),
	)
}

// renderHeader renders the title and the pool geometry
func (m Model) renderHeader() string {
	st := m.pool.Stats()
	pool := fmt.Sprintf("Pool: %d bytes  classes %d..%d  header %d  slack %d",
		st.Size, st.MinClass, st.MaxClass, st.HeaderSize, st.Slack)
	return lipgloss.JoinVertical(
		lipgloss.Left,
		headerStyle.Render("Buddy Pool Explorer"),
		infoStyle.Render(pool),
	)
}

// renderContent renders the block map and the class table side by side
func (m Model) renderContent() string {
	classWidth := 36
	mapWidth := max(m.width-classWidth-4, 30)
	rows := m.visibleRows()

	mapBox := paneStyle.
		Width(mapWidth).
		Height(rows + 1).
		Render(m.renderBlockMap(mapWidth-2, rows))

	classBox := paneStyle.
		Width(classWidth - 2).
		Height(rows + 1).
		Render(m.renderClasses(rows))

	return lipgloss.JoinHorizontal(lipgloss.Top, mapBox, classBox)
}

// renderBlockMap lists the visible blocks in address order
func (m Model) renderBlockMap(width, rows int) string {
	var b strings.Builder
	b.WriteString(tableHeaderStyle.Render(fmt.Sprintf("Blocks (%d)", len(m.blocks))))
	b.WriteString("\n")

	end := min(m.top+rows, len(m.blocks))
	for i := m.top; i < end; i++ {
		blk := m.blocks[i]
		line := m.blockLine(blk, width)
		switch {
		case i == m.cursor:
			line = tableSelectedStyle.Render(line)
		case blk.Used:
			line = usedStyle.Render(line)
		default:
			line = freeStyle.Render(line)
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// blockLine renders one block row without styling.
func (m Model) blockLine(blk buddy.Block, width int) string {
	state := "free"
	if blk.Used {
		state = "used"
	}
	line := fmt.Sprintf("%8d  2^%-2d %8d  %s", blk.Offset, blk.Class, blk.Size, state)
	if preview := m.payloadPreview(blk, width-len(line)-2); preview != "" {
		line += "  " + preview
	}
	return line
}

// renderClasses renders the free and used counts per class
func (m Model) renderClasses(rows int) string {
	st := m.pool.Stats()

	var b strings.Builder
	b.WriteString(tableHeaderStyle.Render(fmt.Sprintf("%-3s %10s %5s %5s", "n", "size", "free", "used")))
	shown := 0
	for i := len(st.Classes) - 1; i >= 0 && shown < rows; i-- {
		c := st.Classes[i]
		if c.Free == 0 && c.Used == 0 {
			continue
		}
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%-3d %10d %5d %5d", c.Class, c.BlockSize, c.Free, c.Used))
		shown++
	}
	return b.String()
}

// renderStatus renders the status bar and, when active, the prompt
func (m Model) renderStatus() string {
	st := m.pool.Stats()
	left := fmt.Sprintf("used %d / free %d bytes  allocs %d  frees %d  merges %d",
		st.UsedBytes, st.FreeBytes, st.Counters.AllocCalls, st.Counters.FreeCalls, st.Counters.Merges)
	if m.statusMessage != "" {
		left += "  |  " + m.statusMessage
	}
	status := statusStyle.Width(max(m.width, 20)).Render(left)

	prompt := helpDescStyle.Render("a alloc  t text  d free  v verify  ? help  q quit")
	if m.inputMode != NormalMode {
		prompt = promptStyle.Render(m.input.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, status, prompt)
}
