package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// MainViewModel wraps the main UI for use as overlay background
type MainViewModel struct {
	model *Model
}

func NewMainViewModel(m *Model) *MainViewModel {
	return &MainViewModel{model: m}
}

func (m *MainViewModel) Init() tea.Cmd {
	return nil
}

// Update is a no-op; the parent Model handles input.
func (m *MainViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

func (m *MainViewModel) View() string {
	return m.model.renderMain()
}

// HelpModel renders the keyboard shortcut modal
type HelpModel struct {
	keys KeyMap
}

func (h *HelpModel) Init() tea.Cmd {
	return nil
}

func (h *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return h, nil
}

func (h *HelpModel) View() string {
	sections := []struct {
		title    string
		bindings []key.Binding
	}{
		{"Navigation", []key.Binding{h.keys.Up, h.keys.Down, h.keys.PageUp, h.keys.PageDown, h.keys.Home, h.keys.End}},
		{"Pool", []key.Binding{h.keys.Alloc, h.keys.Text, h.keys.Free, h.keys.Reset, h.keys.Verify}},
		{"Clipboard", []key.Binding{h.keys.CopyRef, h.keys.CopyReport}},
		{"General", []key.Binding{h.keys.Help, h.keys.Quit}},
	}

	var b strings.Builder
	b.WriteString(helpTitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, s := range sections {
		b.WriteString(tableHeaderStyle.Render(s.title))
		b.WriteString("\n")
		for _, kb := range s.bindings {
			help := kb.Help()
			b.WriteString(helpKeyStyle.Render(help.Key))
			b.WriteString("  ")
			b.WriteString(helpDescStyle.Render(help.Desc))
			b.WriteString("\n")
		}
	}
	b.WriteString("\nPress ? or esc to close")
	return modalStyle.Render(b.String())
}
