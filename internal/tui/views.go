package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the editor.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := "Pricelist Editor"
	if m.salonName != "" {
		title = fmt.Sprintf("Pricelist Editor — %s", m.salonName)
	}
	b.WriteString(m.theme.Title.Render(title))
	b.WriteString("\n")

	subtitle := fmt.Sprintf("%d categories · %d services",
		len(m.session.Categories()), m.session.ServiceCount())
	if selected := m.session.SelectedCount(); selected > 0 {
		subtitle += fmt.Sprintf(" · %d selected", selected)
	}
	if m.session.CanUndo() {
		subtitle += fmt.Sprintf(" · %d undo", m.session.HistoryLen())
	}
	if m.filter != "" {
		subtitle += fmt.Sprintf(" · filter: %q", m.filter)
	}
	b.WriteString(m.theme.Subtitle.Render(subtitle))
	b.WriteString("\n\n")

	switch m.state {
	case StateHelp:
		b.WriteString(m.renderHelp())
	case StatePickMoveTarget:
		b.WriteString(m.renderPicker("Move selected services to:"))
	case StatePickMergeTarget:
		b.WriteString(m.renderPicker("Merge category into:"))
	case StateConfirmQuit:
		b.WriteString(m.theme.PromptBox.Render(
			"Discard unsaved changes?  [y] discard  [s] save  [any] cancel"))
	default:
		b.WriteString(m.renderList())
	}

	if m.state == StateRename || m.state == StateAdd || m.state == StateFilter {
		b.WriteString("\n")
		b.WriteString(m.renderPrompt())
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.theme.StatusInfo.Render(m.status))
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Muted.Render("? help · s save · q quit"))

	return b.String()
}

func (m Model) renderList() string {
	if len(m.rows) == 0 {
		if m.filter != "" {
			return m.theme.Muted.Render("No matches for filter")
		}
		return m.theme.Muted.Render("No categories")
	}

	var b strings.Builder
	for i, r := range m.rows {
		line := m.renderRow(r)
		if i == m.cursor {
			line = m.theme.Cursor.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderRow(r row) string {
	if r.catIndex >= len(m.visible) {
		return ""
	}
	category := m.visible[r.catIndex]

	if r.serviceIndex < 0 {
		marker := "▸"
		if category.Expanded || m.filter != "" {
			marker = "▾"
		}
		name := m.theme.Category.Render(category.Name)
		count := m.theme.Muted.Render(fmt.Sprintf("(%d)", len(category.Services)))
		return fmt.Sprintf("%s %s %s", marker, name, count)
	}

	if r.serviceIndex >= len(category.Services) {
		return ""
	}
	svc := category.Services[r.serviceIndex]

	check := "  "
	if m.filter == "" && m.session.IsSelected(r.categoryID, r.serviceIndex) {
		check = m.theme.Selected.Render("✓ ")
	}

	line := fmt.Sprintf("    %s%s", check, svc.Name)
	if svc.Price != "" {
		line += m.theme.Muted.Render("  " + svc.Price)
	}
	if svc.Duration != "" {
		line += m.theme.Muted.Render("  " + svc.Duration)
	}
	return line
}

func (m Model) renderPicker(prompt string) string {
	var b strings.Builder
	b.WriteString(m.theme.Normal.Render(prompt))
	b.WriteString("\n\n")
	for i, category := range m.targets {
		line := fmt.Sprintf("  %s (%d)", category.Name, len(category.Services))
		if i == m.target {
			line = m.theme.Cursor.Render("▸ " + category.Name)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.theme.Muted.Render("Enter confirm · Esc cancel"))
	return m.theme.PromptBox.Render(b.String())
}

func (m Model) renderPrompt() string {
	var label string
	switch m.state {
	case StateRename:
		label = "Rename category:"
	case StateAdd:
		label = "New category name:"
	case StateFilter:
		label = "Filter:"
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Normal.Render(label),
		m.input.View(),
	)
	return m.theme.PromptBox.Render(content)
}

func (m Model) renderHelp() string {
	var b strings.Builder
	for _, group := range m.keymap.FullHelp() {
		for _, binding := range group {
			b.WriteString(fmt.Sprintf("  %-14s %s\n",
				binding.Help().Key, binding.Help().Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.theme.Muted.Render("Press any key to close"))
	return m.theme.HelpBox.Render(b.String())
}
