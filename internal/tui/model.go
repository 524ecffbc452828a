package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
	"github.com/studyplan/studyplan/internal/event_bus"
	"github.com/studyplan/studyplan/pkg/schedule"
	"github.com/studyplan/studyplan/pkg/tag"
	"github.com/studyplan/studyplan/pkg/tagmanager"
	"github.com/studyplan/studyplan/pkg/taskform"
	"github.com/studyplan/studyplan/pkg/view"
)

type mode int

const (
	modeCalendar mode = iota
	modeDialog
	modeDetail
	modeDetailEdit
	modeTags
	modeTagForm
)

type tickMsg time.Time

type notice struct {
	text    string
	isError bool
}

// Model is the terminal shell around the schedule controller. Store calls run synchronously in
// Update, so bus handlers only ever run on the bubbletea goroutine.
type Model struct {
	ctx  context.Context
	ctrl *schedule.Controller
	tags *tagmanager.Manager

	mode      mode
	form      *form
	frame     frame
	pressed   bool
	pressY    int
	tagCursor int
	notice    notice

	unsubscribe func()
}

func New(ctx context.Context, ctrl *schedule.Controller, tags *tagmanager.Manager, bus *event_bus.EventBus) *Model {
	m := &Model{ctx: ctx, ctrl: ctrl, tags: tags}
	m.unsubscribe = event_bus.SubscribeTyped(bus, event_bus.Notify, func(e event_bus.EventT[event_bus.Notification]) error {
		m.notice = notice{text: e.Data.Message, isError: e.Data.Severity == event_bus.SeverityError}
		return nil
	})
	m.refresh()
	return m
}

// Run loads tasks and tags and runs the shell until it quits or ctx is cancelled.
func Run(ctx context.Context, m *Model) error {
	defer m.Close()
	if err := m.ctrl.Load(ctx); err != nil {
		log.Warnf("initial load failed: %v", err)
	}
	m.refresh()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) Init() tea.Cmd {
	return tick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tickMsg:
		cmd = tick()
	case tea.MouseMsg:
		if m.mode == modeCalendar {
			m.handleMouse(msg)
			cmd = m.sync()
		}
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeCalendar:
			cmd = m.updateCalendar(msg)
		case modeDialog:
			cmd = m.updateDialog(msg)
		case modeDetail:
			cmd = m.updateDetail(msg)
		case modeDetailEdit:
			cmd = m.updateDetailEdit(msg)
		case modeTags:
			cmd = m.updateTags(msg)
		case modeTagForm:
			cmd = m.updateTagForm(msg)
		}
	default:
		if m.form != nil {
			cmd = m.form.update(msg)
		}
	}
	m.refresh()
	return m, cmd
}

func (m *Model) refresh() {
	m.frame = newFrame(m.ctrl.Render())
}

// sync follows the controller into the dialog or detail once a pointer event opened one.
func (m *Model) sync() tea.Cmd {
	if m.mode != modeCalendar {
		return nil
	}
	if dialog := m.ctrl.Dialog(); dialog.IsOpen() {
		m.mode = modeDialog
		m.form = newTaskForm("New task", dialog.Fields, m.ctrl.Tags())
		return m.form.focusCmd()
	}
	if m.ctrl.Detail().IsVisible() {
		m.mode = modeDetail
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !m.frame.inGrid(msg.X, msg.Y) {
			return
		}
		m.pressed = true
		m.pressY = msg.Y
		m.ctrl.PointerDown(m.frame.pressPoint(msg.X, msg.Y))
	case tea.MouseActionMotion:
		if m.pressed {
			m.ctrl.PointerMove(m.frame.dragPoint(msg.X, msg.Y, m.pressY))
		}
	case tea.MouseActionRelease:
		if !m.pressed {
			return
		}
		m.pressed = false
		if m.frame.inGrid(msg.X, msg.Y) {
			m.ctrl.PointerUp(m.frame.dragPoint(msg.X, msg.Y, m.pressY))
		} else {
			m.ctrl.ReleaseOutside()
		}
	}
}

func (m *Model) updateCalendar(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "h", "left":
		m.ctrl.Navigate(schedule.Backward)
	case "l", "right":
		m.ctrl.Navigate(schedule.Forward)
	case "t":
		m.ctrl.JumpToToday()
	case "d":
		m.ctrl.SetView(view.Day)
	case "w":
		m.ctrl.SetView(view.Week)
	case "m":
		m.ctrl.SetView(view.Month)
	case "n":
		m.ctrl.OpenDialog()
	case "g":
		m.tags.Back()
		m.tagCursor = 0
		m.mode = modeTags
		return nil
	case "r":
		if err := m.ctrl.Load(m.ctx); err == nil {
			m.info("Reloaded")
		}
	case "esc":
		m.notice = notice{}
	}
	return m.sync()
}

func (m *Model) updateDialog(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.ctrl.CloseDialog()
		m.closeForm(modeCalendar)
		return nil
	case "tab", "down":
		return m.form.move(1)
	case "shift+tab", "up":
		return m.form.move(-1)
	case "enter":
		dialog := m.ctrl.Dialog()
		dialog.Fields = m.form.taskFields(m.ctrl.Tags())
		created, err := m.ctrl.SubmitDialog(m.ctx)
		if err != nil {
			m.form.err = formError(err)
			return nil
		}
		m.closeForm(modeCalendar)
		m.info(fmt.Sprintf("Created %q", created.Title))
		return nil
	}
	return m.form.update(msg)
}

func (m *Model) updateDetail(msg tea.KeyMsg) tea.Cmd {
	detail := m.ctrl.Detail()
	if detail.IsConfirmingDelete() {
		switch msg.String() {
		case "y":
			if err := m.ctrl.ConfirmDetailDelete(m.ctx); err != nil {
				return nil
			}
			m.mode = modeCalendar
			m.info("Task deleted")
		case "n", "esc":
			detail.CancelDelete()
		}
		return nil
	}

	switch msg.String() {
	case "esc", "q":
		detail.Hide()
		m.mode = modeCalendar
	case "e":
		if err := detail.Edit(); err != nil {
			m.fail(err.Error())
			return nil
		}
		m.mode = modeDetailEdit
		m.form = newTaskForm("Edit task", detail.Fields, m.ctrl.Tags())
		return m.form.focusCmd()
	case "x":
		if err := detail.RequestDelete(); err != nil {
			m.fail(err.Error())
		}
	}
	return nil
}

func (m *Model) updateDetailEdit(msg tea.KeyMsg) tea.Cmd {
	detail := m.ctrl.Detail()
	switch msg.String() {
	case "esc":
		detail.CancelEdit()
		m.closeForm(modeDetail)
		return nil
	case "tab", "down":
		return m.form.move(1)
	case "shift+tab", "up":
		return m.form.move(-1)
	case "enter":
		detail.Fields = m.form.taskFields(m.ctrl.Tags())
		if _, err := m.ctrl.SubmitDetail(m.ctx); err != nil {
			m.form.err = formError(err)
			return nil
		}
		m.closeForm(modeDetail)
		m.info("Task updated")
		return nil
	}
	return m.form.update(msg)
}

func (m *Model) updateTags(msg tea.KeyMsg) tea.Cmd {
	tags := m.tags.Tags()
	if m.tagCursor >= len(tags) {
		m.tagCursor = max(len(tags)-1, 0)
	}

	if _, pending := m.tags.PendingDelete(); pending {
		switch msg.String() {
		case "y":
			if _, err := m.tags.ConfirmDelete(m.ctx); err == nil {
				m.info("Tag deleted")
			}
		case "n", "esc":
			m.tags.CancelDelete()
		}
		return nil
	}

	switch msg.String() {
	case "esc", "q":
		m.tags.Back()
		m.mode = modeCalendar
	case "j", "down":
		if m.tagCursor < len(tags)-1 {
			m.tagCursor++
		}
	case "k", "up":
		if m.tagCursor > 0 {
			m.tagCursor--
		}
	case "a":
		m.tags.StartAdd()
		m.form = newTagForm("New tag", "", tag.MustParseColor("#3b82f6"))
		m.mode = modeTagForm
		return m.form.focusCmd()
	case "e":
		if len(tags) == 0 {
			return nil
		}
		selected := tags[m.tagCursor]
		if err := m.tags.StartEdit(selected.Id); err != nil {
			m.fail(err.Error())
			return nil
		}
		m.form = newTagForm("Edit tag", selected.Name, selected.Color())
		m.mode = modeTagForm
		return m.form.focusCmd()
	case "x":
		if len(tags) == 0 {
			return nil
		}
		if err := m.tags.RequestDelete(tags[m.tagCursor].Id); err != nil {
			m.fail(err.Error())
		}
	}
	return nil
}

func (m *Model) updateTagForm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.tags.Back()
		m.closeForm(modeTags)
		return nil
	case "tab", "down":
		return m.form.move(1)
	case "shift+tab", "up":
		return m.form.move(-1)
	case "enter":
		color, err := tag.ParseColor(strings.TrimSpace(m.form.value(fieldTagColor)))
		if err != nil {
			m.form.err = err.Error()
			return nil
		}
		name := m.form.value(fieldTagName)
		if editing, ok := m.tags.Editing(); ok {
			_, err = m.tags.Update(m.ctx, editing.Id, name, color)
		} else {
			_, err = m.tags.Create(m.ctx, name, color)
		}
		if err != nil {
			m.form.err = formError(err)
			return nil
		}
		m.closeForm(modeTags)
		return nil
	}
	return m.form.update(msg)
}

func (m *Model) closeForm(next mode) {
	m.form = nil
	m.mode = next
}

func (m *Model) info(text string) {
	m.notice = notice{text: text}
}

func (m *Model) fail(text string) {
	m.notice = notice{text: text, isError: true}
}

func formError(err error) string {
	var taskErr *taskform.ValidationError
	var tagErr *tagmanager.ValidationError
	switch {
	case errors.As(err, &taskErr):
		return taskErr.Error()
	case errors.As(err, &tagErr):
		return tagErr.Error()
	default:
		return err.Error()
	}
}
