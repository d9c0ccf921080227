package main

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/buddykit/buddy"
)

// InputMode represents what the prompt is collecting
type InputMode int

const (
	NormalMode InputMode = iota
	AllocMode
	TextMode
)

// Layout constants
const (
	headerHeight = 2 // Title line plus pool line
	statusHeight = 2 // Status bar plus prompt
	chromeHeight = 2 // Pane border
	minRows      = 3
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// Model is the main application model
type Model struct {
	pool *buddy.Allocator
	log  *slog.Logger
	keys KeyMap

	blocks []buddy.Block
	cursor int // Index into blocks
	top    int // First visible row

	width  int
	height int

	inputMode InputMode
	input     textinput.Model

	showHelp      bool
	statusMessage string

	err error
}

// NewModel creates a model over an existing allocator
func NewModel(pool *buddy.Allocator, log *slog.Logger) Model {
	in := textinput.New()
	in.CharLimit = 256

	m := Model{
		pool:   pool,
		log:    log,
		keys:   DefaultKeyMap(),
		input:  in,
		width:  100,
		height: 30,
	}
	m.refresh()
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// refresh reloads the block layout and keeps the cursor in range.
func (m *Model) refresh() {
	blocks, err := m.pool.Layout()
	if err != nil {
		m.err = err
		m.log.Error("layout failed", "error", err)
	}
	m.blocks = blocks
	if m.cursor >= len(m.blocks) {
		m.cursor = max(len(m.blocks)-1, 0)
	}
	m.scrollToCursor()
}

// visibleRows is the number of block rows the map pane can show.
func (m Model) visibleRows() int {
	return max(m.height-headerHeight-statusHeight-chromeHeight-1, minRows)
}

func (m *Model) scrollToCursor() {
	rows := m.visibleRows()
	if m.cursor < m.top {
		m.top = m.cursor
	}
	if m.cursor >= m.top+rows {
		m.top = m.cursor - rows + 1
	}
	if m.top < 0 {
		m.top = 0
	}
}

// CurrentBlock returns the block under the cursor, or nil when the layout
// is empty.
func (m Model) CurrentBlock() *buddy.Block {
	if m.cursor < 0 || m.cursor >= len(m.blocks) {
		return nil
	}
	b := m.blocks[m.cursor]
	return &b
}

// allocate runs one allocation and moves the cursor onto the new block.
func (m *Model) allocate(n uint64) {
	ref, _, err := m.pool.Alloc(n)
	if err != nil {
		m.statusMessage = fmt.Sprintf("Allocation of %d bytes failed: %v", n, err)
		return
	}
	m.statusMessage = fmt.Sprintf("Allocated %d bytes at ref %d", n, ref)
	m.refresh()
	m.selectRef(ref)
}

func (m *Model) storeText(s string) {
	ref, err := m.pool.AllocString(s)
	if err != nil {
		m.statusMessage = fmt.Sprintf("Storing %q failed: %v", s, err)
		return
	}
	m.statusMessage = fmt.Sprintf("Stored %q at ref %d", s, ref)
	m.refresh()
	m.selectRef(ref)
}

func (m *Model) freeCurrent() {
	b := m.CurrentBlock()
	if b == nil || !b.Used {
		m.statusMessage = "Selected block is not allocated"
		return
	}
	if err := m.pool.Free(b.Ref()); err != nil {
		m.statusMessage = fmt.Sprintf("Free of ref %d failed: %v", b.Ref(), err)
		return
	}
	m.statusMessage = fmt.Sprintf("Freed ref %d", b.Ref())
	off := b.Offset
	m.refresh()
	// The merged block starts at or before the freed one.
	for i := len(m.blocks) - 1; i >= 0; i-- {
		if m.blocks[i].Offset <= off {
			m.cursor = i
			break
		}
	}
	m.scrollToCursor()
}

func (m *Model) selectRef(ref buddy.Ref) {
	for i, b := range m.blocks {
		if b.Ref() == ref {
			m.cursor = i
			break
		}
	}
	m.scrollToCursor()
}

// payloadPreview renders the start of a used block's payload.
func (m Model) payloadPreview(b buddy.Block, width int) string {
	if !b.Used || width <= 0 {
		return ""
	}
	p, err := m.pool.Payload(b.Ref())
	if err != nil {
		return "?"
	}
	if b.Text {
		if i := bytes.IndexByte(p, 0); i >= 0 {
			p = p[:i]
		}
		s := fmt.Sprintf("%q", p)
		if len(s) > width {
			s = s[:max(width-3, 0)] + "..."
		}
		return s
	}
	return fmt.Sprintf("<%d bytes>", len(p))
}

// reportText renders the allocator report as plain text.
func (m Model) reportText() (string, error) {
	var buf bytes.Buffer
	if err := m.pool.Report(&buf, nil); err != nil {
		return "", err
	}
	return buf.String(), nil
}
