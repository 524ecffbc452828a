package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/studyplan/studyplan/pkg/tag"
	"github.com/studyplan/studyplan/pkg/taskform"
)

type field struct {
	label string
	input textinput.Model
}

// form is a stack of labelled text inputs. Tab and shift+tab move the focus.
type form struct {
	title  string
	fields []field
	focus  int
	err    string
	hint   string
}

func newForm(title string, labels, values []string) *form {
	f := &form{title: title}
	for i, label := range labels {
		input := textinput.New()
		input.Prompt = ""
		input.Width = 40
		input.CharLimit = 200
		input.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorText))
		input.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(colorToday))
		if i < len(values) {
			input.SetValue(values[i])
			input.CursorEnd()
		}
		f.fields = append(f.fields, field{label: label, input: input})
	}
	return f
}

// focusCmd focuses the current field and blurs the others.
func (f *form) focusCmd() tea.Cmd {
	var cmd tea.Cmd
	for i := range f.fields {
		if i == f.focus {
			cmd = f.fields[i].input.Focus()
		} else {
			f.fields[i].input.Blur()
		}
	}
	return cmd
}

func (f *form) move(step int) tea.Cmd {
	n := len(f.fields)
	if n == 0 {
		return nil
	}
	f.focus = ((f.focus+step)%n + n) % n
	return f.focusCmd()
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd
}

func (f *form) value(i int) string {
	return f.fields[i].input.Value()
}

func (f *form) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(f.title))
	b.WriteString("\n\n")
	for i, fl := range f.fields {
		marker := "  "
		if i == f.focus {
			marker = cursorStyle.Render("› ")
		}
		b.WriteString(marker + labelStyle.Render(padRight(fl.label, 12)) + fl.input.View() + "\n")
	}
	if f.hint != "" {
		b.WriteString("\n" + mutedStyle.Render(f.hint) + "\n")
	}
	if f.err != "" {
		b.WriteString("\n" + errorStyle.Render(f.err) + "\n")
	}
	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func padRight(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

const (
	fieldTitle = iota
	fieldDescription
	fieldDate
	fieldStart
	fieldEnd
	fieldTag
)

var taskLabels = []string{"Title", "Description", "Date", "Start", "End", "Tag"}

// newTaskForm shows the tag by name. It is typed back as a name or "none".
func newTaskForm(title string, fields taskform.Fields, tags []tag.Tag) *form {
	f := newForm(title, taskLabels, []string{
		fields.Title,
		fields.Description,
		fields.Date,
		fields.Start,
		fields.End,
		tagName(fields.Tag, tags),
	})
	names := make([]string, 0, len(tags)+1)
	for _, t := range tags {
		names = append(names, t.Name)
	}
	names = append(names, taskform.NoTag)
	f.hint = "tags: " + strings.Join(names, ", ")
	return f
}

func (f *form) taskFields(tags []tag.Tag) taskform.Fields {
	return taskform.Fields{
		Title:       f.value(fieldTitle),
		Description: f.value(fieldDescription),
		Date:        f.value(fieldDate),
		Start:       f.value(fieldStart),
		End:         f.value(fieldEnd),
		Tag:         tagValue(f.value(fieldTag), tags),
	}
}

func tagName(value string, tags []tag.Tag) string {
	for _, t := range tags {
		if t.Id.String() == value {
			return t.Name
		}
	}
	return value
}

// tagValue turns a typed tag name into the form's tag id value. Unknown names are passed through
// and rejected by validation.
func tagValue(name string, tags []tag.Tag) string {
	name = strings.TrimSpace(name)
	if strings.EqualFold(name, taskform.NoTag) {
		return taskform.NoTag
	}
	for _, t := range tags {
		if strings.EqualFold(t.Name, name) {
			return t.Id.String()
		}
	}
	return name
}

const (
	fieldTagName = iota
	fieldTagColor
)

func newTagForm(title, name string, color tag.Color) *form {
	f := newForm(title, []string{"Name", "Color"}, []string{name, color.Hex()})
	f.hint = "color as #rrggbb"
	return f
}
