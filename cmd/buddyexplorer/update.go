package main

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type clearStatusMsg struct{}

// clearStatusAfter clears the status bar after d.
func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

// Update handles all messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scrollToCursor()
		return m, nil

	case clearStatusMsg:
		m.statusMessage = ""
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if key.Matches(msg, m.keys.Esc) || key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Quit) {
				m.showHelp = false
			}
			// Ignore other keys when help is showing
			return m, nil
		}
		if m.inputMode != NormalMode {
			return m.handleInput(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.blocks)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.PageUp):
		m.cursor = max(m.cursor-m.visibleRows(), 0)
	case key.Matches(msg, m.keys.PageDown):
		m.cursor = max(min(m.cursor+m.visibleRows(), len(m.blocks)-1), 0)
	case key.Matches(msg, m.keys.Home):
		m.cursor = 0
	case key.Matches(msg, m.keys.End):
		m.cursor = max(len(m.blocks)-1, 0)

	case key.Matches(msg, m.keys.Alloc):
		return m.startInput(AllocMode, "alloc bytes> ")
	case key.Matches(msg, m.keys.Text):
		return m.startInput(TextMode, "text> ")

	case key.Matches(msg, m.keys.Free):
		m.freeCurrent()
		return m, clearStatusAfter(3 * time.Second)

	case key.Matches(msg, m.keys.Reset):
		m.pool.Reset()
		m.cursor, m.top = 0, 0
		m.refresh()
		m.statusMessage = "Pool reset"
		return m, clearStatusAfter(3 * time.Second)

	case key.Matches(msg, m.keys.Verify):
		if err := m.pool.Verify(); err != nil {
			m.log.Error("verify failed", "error", err)
			m.statusMessage = "Verify failed: " + err.Error()
		} else {
			m.statusMessage = "Pool is consistent"
		}
		return m, clearStatusAfter(3 * time.Second)

	case key.Matches(msg, m.keys.CopyRef):
		b := m.CurrentBlock()
		if b == nil || !b.Used {
			m.statusMessage = "Selected block is not allocated"
			return m, nil
		}
		if err := writeClipboard(strconv.FormatUint(b.Ref(), 10)); err != nil {
			m.statusMessage = "Copy failed: " + err.Error()
		} else {
			m.statusMessage = "Copied ref " + strconv.FormatUint(b.Ref(), 10)
		}
		return m, clearStatusAfter(2 * time.Second)

	case key.Matches(msg, m.keys.CopyReport):
		report, err := m.reportText()
		if err == nil {
			err = writeClipboard(report)
		}
		if err != nil {
			m.statusMessage = "Copy failed: " + err.Error()
		} else {
			m.statusMessage = "Report copied to clipboard"
		}
		return m, clearStatusAfter(2 * time.Second)
	}

	m.scrollToCursor()
	return m, nil
}

func (m Model) startInput(mode InputMode, prompt string) (tea.Model, tea.Cmd) {
	m.inputMode = mode
	m.input.Prompt = prompt
	m.input.Reset()
	return m, m.input.Focus()
}

// handleInput feeds the prompt until it is submitted or cancelled.
func (m Model) handleInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Esc):
		m.inputMode = NormalMode
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		value := m.input.Value()
		mode := m.inputMode
		m.inputMode = NormalMode
		m.input.Blur()

		switch mode {
		case AllocMode:
			n, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
			if err != nil {
				m.statusMessage = "Invalid size: " + value
				return m, nil
			}
			m.allocate(n)
		case TextMode:
			m.storeText(value)
		}
		return m, clearStatusAfter(3 * time.Second)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}
