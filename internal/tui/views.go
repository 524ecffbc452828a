package tui

import (
	"fmt"
	"strings"

	"github.com/studyplan/studyplan/pkg/tag"
)

const (
	calendarHelp = "h/l prev/next · d/w/m view · t today · n new · drag to create · g tags · r reload · q quit"
	formHelp     = "tab next field · enter save · esc cancel"
	detailHelp   = "e edit · x delete · esc close"
	confirmHelp  = "y confirm · n cancel"
	tagsHelp     = "j/k move · a add · e edit · x delete · esc back"
)

func (m *Model) View() string {
	var body, help string
	switch m.mode {
	case modeDialog, modeDetailEdit, modeTagForm:
		body, help = m.form.view(), formHelp
	case modeDetail:
		body, help = m.detailView()
	case modeTags:
		body, help = m.tagsView()
	default:
		if overlay, ok := m.ctrl.Overlay(); ok {
			body = m.frame.draw(&overlay)
		} else {
			body = m.frame.draw(nil)
		}
		help = calendarHelp
	}
	return body + "\n\n" + m.statusLine(help)
}

func (m *Model) statusLine(help string) string {
	line := helpStyle.Render(help)
	if m.notice.text == "" {
		return line
	}
	if m.notice.isError {
		return errorStyle.Render(m.notice.text) + "\n" + line
	}
	return successStyle.Render(m.notice.text) + "\n" + line
}

func (m *Model) detailView() (string, string) {
	detail := m.ctrl.Detail()
	t, ok := detail.Task()
	if !ok {
		return "", detailHelp
	}

	tagLabel := "none"
	style := tag.FallbackStyle
	if t.HasTag() {
		tagLabel = tag.UnknownName
		if resolved, found := m.ctrl.ResolveTag(t.TagId); found {
			tagLabel = resolved.Name
			style = resolved.Style
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(t.Title) + "\n\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("%s  %s-%s",
		t.StartTime.Format("Monday, January 2 2006"),
		t.StartTime.Format("15:04"),
		t.EndTime.Format("15:04"))) + "\n")
	b.WriteString(accentStyle(style).Render("● "+tagLabel) + "\n")
	if t.Description != "" {
		b.WriteString("\n" + labelStyle.Render(t.Description) + "\n")
	}

	help := detailHelp
	if detail.IsConfirmingDelete() {
		b.WriteString("\n" + errorStyle.Render("Delete this task?") + "\n")
		help = confirmHelp
	}
	return panelStyle.Render(strings.TrimRight(b.String(), "\n")), help
}

func (m *Model) tagsView() (string, string) {
	tags := m.tags.Tags()
	var b strings.Builder
	b.WriteString(titleStyle.Render("Tags") + "\n\n")
	if len(tags) == 0 {
		b.WriteString(mutedStyle.Render("No tags yet") + "\n")
	}
	for i, t := range tags {
		marker := "  "
		if i == m.tagCursor {
			marker = cursorStyle.Render("› ")
		}
		b.WriteString(marker + blockStyle(t.Style).Render(" "+t.Name+" ") + " " + mutedStyle.Render(t.Color().Hex()) + "\n")
	}

	help := tagsHelp
	if pending, ok := m.tags.PendingDelete(); ok {
		b.WriteString("\n" + errorStyle.Render(fmt.Sprintf("Delete tag %q? Its tasks keep their times and lose the color.", pending.Name)) + "\n")
		help = confirmHelp
	}
	return panelStyle.Render(strings.TrimRight(b.String(), "\n")), help
}
