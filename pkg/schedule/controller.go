package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/studyplan/studyplan/internal/event_bus"
	"github.com/studyplan/studyplan/internal/utils"
	"github.com/studyplan/studyplan/pkg/tag"
	"github.com/studyplan/studyplan/pkg/tagmanager"
	"github.com/studyplan/studyplan/pkg/task"
	"github.com/studyplan/studyplan/pkg/taskform"
	"github.com/studyplan/studyplan/pkg/timegrid"
	"github.com/studyplan/studyplan/pkg/view"
)

// TaskStore is where tasks are persisted. Returned tasks are authoritative.
type TaskStore interface {
	List(ctx context.Context) ([]task.Task, error)
	Create(ctx context.Context, t task.Task) (task.Task, error)
	Update(ctx context.Context, id uuid.UUID, t task.Task) (task.Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// StoreError reports a failed Task Store call. The controller state is unchanged when it is
// returned.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("failed to %s task: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

type Direction int

const (
	Backward Direction = -1
	Forward  Direction = 1
)

type Options struct {
	Tasks TaskStore
	Tags  *tagmanager.Manager
	Bus   *event_bus.EventBus
	Clock utils.Clock
	// Layout is the hour grid for the Day and Week views.
	Layout timegrid.Layout
	Month  view.MonthGeometry
	// View is the initially active view.
	View view.Kind
}

// Controller owns the reference date, the active view and the task and tag lists. It turns
// renderer output into dialog and detail state and performs task CRUD against the store.
type Controller struct {
	mu        sync.Mutex
	store     TaskStore
	tags      *tagmanager.Manager
	bus       *event_bus.EventBus
	clock     utils.Clock
	renderers map[view.Kind]view.Renderer
	active    view.Kind
	reference time.Time
	tasks     []task.Task
	tagList   []tag.Tag
	draft     *timegrid.Range
	dialog    *taskform.Dialog
	detail    *taskform.Detail
	pending   []event_bus.Event

	unsubscribe func()
}

func New(opts Options) *Controller {
	if opts.Clock == nil {
		opts.Clock = utils.SystemClock{}
	}
	c := &Controller{
		store:     opts.Tasks,
		tags:      opts.Tags,
		bus:       opts.Bus,
		clock:     opts.Clock,
		active:    opts.View,
		reference: utils.Today(opts.Clock),
		dialog:    taskform.NewDialog(opts.Clock),
		detail:    taskform.NewDetail(),
	}
	callbacks := view.Callbacks{
		OnTaskClick:    c.onTaskClick,
		OnDragFinalize: c.onDragFinalize,
		OnDaySelect:    c.onDaySelect,
	}
	c.renderers = map[view.Kind]view.Renderer{
		view.Day:   view.NewDayRenderer(opts.Layout, callbacks),
		view.Week:  view.NewWeekRenderer(opts.Layout, callbacks),
		view.Month: view.NewMonthRenderer(opts.Month, callbacks),
	}
	if opts.Tags != nil {
		c.tagList = opts.Tags.Tags()
	}
	if opts.Bus != nil {
		c.unsubscribe = event_bus.SubscribeTyped(opts.Bus, event_bus.TagChanged, c.onTagsChanged)
	}
	return c
}

// Close detaches the controller from the event bus.
func (c *Controller) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}

// Load fetches tasks and tags. A task store failure leaves the current list in place.
func (c *Controller) Load(ctx context.Context) error {
	tasks, err := c.store.List(ctx)
	if err != nil {
		return c.storeFailed(ctx, "list", uuid.Nil, err)
	}
	c.mu.Lock()
	c.tasks = append([]task.Task(nil), tasks...)
	c.mu.Unlock()
	log.Debugf("loaded %d tasks", len(tasks))

	if c.tags != nil {
		if _, err := c.tags.List(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Navigate moves the reference by one day, week or month depending on the active view.
func (c *Controller) Navigate(direction Direction) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.renderers[c.active].Cancel()
	step := int(direction)
	switch c.active {
	case view.Day:
		c.reference = c.reference.AddDate(0, 0, step)
	case view.Week:
		c.reference = c.reference.AddDate(0, 0, 7*step)
	case view.Month:
		c.reference = timegrid.StartOfMonth(c.reference).AddDate(0, step, 0)
	}
}

// JumpToToday moves the reference to today: the Monday of this week in Week view and the first
// of this month in Month view.
func (c *Controller) JumpToToday() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.renderers[c.active].Cancel()
	today := utils.Today(c.clock)
	switch c.active {
	case view.Week:
		c.reference = timegrid.StartOfWeek(today)
	case view.Month:
		c.reference = timegrid.StartOfMonth(today)
	default:
		c.reference = today
	}
}

// SetView switches the active view. A drag in progress is dropped without opening the dialog.
func (c *Controller) SetView(kind view.Kind) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.renderers[kind]; !ok {
		log.Warnf("unknown view %v", kind)
		return
	}
	c.renderers[c.active].Cancel()
	c.active = kind
}

func (c *Controller) SetReference(date time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.renderers[c.active].Cancel()
	c.reference = timegrid.StartOfDay(date)
}

func (c *Controller) Reference() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reference
}

func (c *Controller) ActiveView() view.Kind {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Tasks returns a copy of the task list.
func (c *Controller) Tasks() []task.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]task.Task(nil), c.tasks...)
}

// Tags returns the latest tag snapshot.
func (c *Controller) Tags() []tag.Tag {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]tag.Tag(nil), c.tagList...)
}

// ResolveTag looks a task's tag up. Missing and unknown ids resolve to false, never to an error.
func (c *Controller) ResolveTag(id uuid.NullUUID) (tag.Tag, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resolveLocked(id)
}

func (c *Controller) resolveLocked(id uuid.NullUUID) (tag.Tag, bool) {
	if !id.Valid {
		return tag.Tag{}, false
	}
	for _, t := range c.tagList {
		if t.Id == id.UUID {
			return t, true
		}
	}
	return tag.Tag{}, false
}

func (c *Controller) styleLocked(id uuid.NullUUID) tag.Style {
	if t, ok := c.resolveLocked(id); ok {
		return t.Style
	}
	return tag.FallbackStyle
}

// Render draws the active view for the current reference date.
func (c *Controller) Render() view.Rendering {
	c.mu.Lock()
	defer c.mu.Unlock()

	tasks := append([]task.Task(nil), c.tasks...)
	return c.renderers[c.active].Render(c.reference, tasks, c.styleLocked, c.clock.Now())
}

// Overlay is the drag selection of the active view, if any.
func (c *Controller) Overlay() (view.Overlay, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.renderers[c.active].Overlay()
}

func (c *Controller) PointerDown(p view.Point) {
	c.forward(func(r view.Renderer) { r.PointerDown(p) })
}

func (c *Controller) PointerMove(p view.Point) {
	c.forward(func(r view.Renderer) { r.PointerMove(p) })
}

func (c *Controller) PointerUp(p view.Point) {
	c.forward(func(r view.Renderer) { r.PointerUp(p) })
}

func (c *Controller) ReleaseOutside() {
	c.forward(func(r view.Renderer) { r.ReleaseOutside() })
}

// forward runs a pointer event on the active renderer. Renderer callbacks run under the lock and
// queue their events, which are published once the lock is released.
func (c *Controller) forward(fn func(view.Renderer)) {
	c.mu.Lock()
	fn(c.renderers[c.active])
	events := c.pending
	c.pending = nil
	c.mu.Unlock()

	for _, e := range events {
		if err := c.bus.Publish(e); err != nil {
			log.Warnf("publishing %s failed: %v", e.Type, err)
		}
	}
}

func (c *Controller) onTaskClick(t task.Task) {
	c.detail.Show(t)
	c.pending = append(c.pending, event_bus.NewEvent(context.Background(), event_bus.TaskClicked, event_bus.TaskClick{Task: t}))
}

func (c *Controller) onDragFinalize(r timegrid.Range, dayIndex int) {
	c.draft = &r
	c.dialog.Open(&r)
	c.pending = append(c.pending, event_bus.NewEvent(context.Background(), event_bus.DragFinalized, event_bus.DragResult{Range: r, DayIndex: dayIndex}))
}

// onDaySelect opens the selected month cell in the Day view.
func (c *Controller) onDaySelect(date time.Time) {
	c.active = view.Day
	c.reference = timegrid.StartOfDay(date)
	c.pending = append(c.pending, event_bus.NewEvent(context.Background(), event_bus.DaySelected, event_bus.DaySelect{Date: date}))
}

func (c *Controller) onTagsChanged(e event_bus.EventT[event_bus.TagsChanged]) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tagList = append([]tag.Tag(nil), e.Data.Tags...)
	return nil
}

// Dialog is the create-task form. The shell edits its fields directly.
func (c *Controller) Dialog() *taskform.Dialog {
	return c.dialog
}

// Detail is the view/edit panel of the clicked task.
func (c *Controller) Detail() *taskform.Detail {
	return c.detail
}

// Draft is the range of the last finalized drag, until a task is created from it.
func (c *Controller) Draft() (timegrid.Range, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.draft == nil {
		return timegrid.Range{}, false
	}
	return *c.draft, true
}

// OpenDialog opens the create form without a drag, defaulting to today 09:00-10:00.
func (c *Controller) OpenDialog() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = nil
	c.dialog.Open(nil)
}

// CloseDialog dismisses the create form and drops the drag draft.
func (c *Controller) CloseDialog() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = nil
	c.dialog.Close()
}

// SubmitDialog validates the create form and stores the task. The dialog is reset only once the
// store accepted the task.
func (c *Controller) SubmitDialog(ctx context.Context) (task.Task, error) {
	c.mu.Lock()
	draft, err := c.dialog.Draft()
	c.mu.Unlock()
	if err != nil {
		return task.Task{}, err
	}
	created, err := c.CreateTask(ctx, draft)
	if err != nil {
		return task.Task{}, err
	}
	c.mu.Lock()
	c.dialog.Reset()
	c.mu.Unlock()
	return created, nil
}

// SubmitDetail validates the edit form and stores the change.
func (c *Controller) SubmitDetail(ctx context.Context) (task.Task, error) {
	c.mu.Lock()
	updated, err := c.detail.Submit()
	c.mu.Unlock()
	if err != nil {
		return task.Task{}, err
	}
	return c.UpdateTask(ctx, updated.Id, updated)
}

// ConfirmDetailDelete deletes the shown task once its deletion was requested.
func (c *Controller) ConfirmDetailDelete(ctx context.Context) error {
	c.mu.Lock()
	id, err := c.detail.ConfirmDelete()
	c.mu.Unlock()
	if err != nil {
		return err
	}
	return c.DeleteTask(ctx, id)
}

func (c *Controller) CreateTask(ctx context.Context, draft task.Task) (task.Task, error) {
	created, err := c.store.Create(ctx, draft)
	if err != nil {
		return task.Task{}, c.storeFailed(ctx, "create", uuid.Nil, err)
	}
	c.mu.Lock()
	c.tasks = append(c.tasks, created)
	c.draft = nil
	c.mu.Unlock()
	log.Debugf("task %s created", created.Id)
	return created, nil
}

func (c *Controller) UpdateTask(ctx context.Context, id uuid.UUID, t task.Task) (task.Task, error) {
	updated, err := c.store.Update(ctx, id, t)
	if err != nil {
		return task.Task{}, c.storeFailed(ctx, "update", id, err)
	}
	c.mu.Lock()
	replaced := false
	for i := range c.tasks {
		if c.tasks[i].Id == updated.Id {
			c.tasks[i] = updated
			replaced = true
		}
	}
	if !replaced {
		c.tasks = append(c.tasks, updated)
	}
	if shown, ok := c.detail.Task(); ok && shown.Id == updated.Id {
		c.detail.Show(updated)
	}
	c.mu.Unlock()
	return updated, nil
}

func (c *Controller) DeleteTask(ctx context.Context, id uuid.UUID) error {
	if err := c.store.Delete(ctx, id); err != nil {
		return c.storeFailed(ctx, "delete", id, err)
	}
	c.mu.Lock()
	kept := make([]task.Task, 0, len(c.tasks))
	for _, t := range c.tasks {
		if t.Id != id {
			kept = append(kept, t)
		}
	}
	c.tasks = kept
	if shown, ok := c.detail.Task(); ok && shown.Id == id {
		c.detail.Hide()
	}
	c.mu.Unlock()
	return nil
}

func (c *Controller) storeFailed(ctx context.Context, op string, id uuid.UUID, err error) error {
	storeErr := &StoreError{Op: op, Err: err}
	log.Error(storeErr)
	notification := event_bus.Notification{
		Severity: event_bus.SeverityError,
		Message:  storeErr.Error(),
	}
	if id != uuid.Nil {
		notification.TaskId = uuid.NullUUID{UUID: id, Valid: true}
	}
	if pubErr := c.bus.Publish(event_bus.NewEvent(ctx, event_bus.Notify, notification)); pubErr != nil {
		log.Warnf("notification failed: %v", pubErr)
	}
	return storeErr
}
