package main

import (
	"io"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/buddykit/buddy"
)

// TestHelper provides utilities for testing TUI components
type TestHelper struct {
	t     *testing.T
	model Model
}

// NewTestHelper creates a test helper over a fresh heap pool of size bytes
func NewTestHelper(t *testing.T, size int) *TestHelper {
	t.Helper()
	pool, err := buddy.New(make([]byte, size), &buddy.Options{VerifyEach: true})
	if err != nil {
		t.Fatalf("buddy.New: %v", err)
	}
	return &TestHelper{
		t:     t,
		model: NewModel(pool, slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
}

// SendKey simulates a key press but does not execute returned commands
func (h *TestHelper) SendKey(keyType tea.KeyType) *TestHelper {
	msg := tea.KeyMsg{Type: keyType}
	updated, _ := h.model.Update(msg)
	h.model = updated.(Model)
	return h
}

// SendKeyRune simulates a character key press
func (h *TestHelper) SendKeyRune(r rune) *TestHelper {
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
	updated, _ := h.model.Update(msg)
	h.model = updated.(Model)
	return h
}

// TypeString sends each rune of s as a key press
func (h *TestHelper) TypeString(s string) *TestHelper {
	for _, r := range s {
		h.SendKeyRune(r)
	}
	return h
}

// SendWindowSize simulates a window resize
func (h *TestHelper) SendWindowSize(width, height int) *TestHelper {
	msg := tea.WindowSizeMsg{Width: width, Height: height}
	updated, _ := h.model.Update(msg)
	h.model = updated.(Model)
	return h
}

// Alloc drives the allocate prompt end to end
func (h *TestHelper) Alloc(size string) *TestHelper {
	h.SendKeyRune('a')
	h.TypeString(size)
	return h.SendKey(tea.KeyEnter)
}

// GetModel returns the current model
func (h *TestHelper) GetModel() Model {
	return h.model
}

// GetView returns the rendered view
func (h *TestHelper) GetView() string {
	return h.model.View()
}
