package tagmanager

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/studyplan/studyplan/internal/event_bus"
	"github.com/studyplan/studyplan/pkg/tag"
)

var (
	ErrEmptyName          = errors.New("tag name is required")
	ErrNoTagSelected      = errors.New("no tag selected")
	ErrDeleteNotRequested = errors.New("delete was not requested")
)

// ValidationError is a user-facing input problem. Nothing was sent to the store.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Store is where tags are persisted.
type Store interface {
	List(ctx context.Context) ([]tag.Tag, error)
	Create(ctx context.Context, name string, style tag.Style) (tag.Tag, error)
	Update(ctx context.Context, id uuid.UUID, name string, style tag.Style) (tag.Tag, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Mode int

const (
	ModeView Mode = iota
	ModeAdd
	ModeEdit
)

func (m Mode) String() string {
	switch m {
	case ModeAdd:
		return "add"
	case ModeEdit:
		return "edit"
	default:
		return "view"
	}
}

// Manager caches the tag list, mutates it through the Store and broadcasts every change as a
// tag.changed event.
type Manager struct {
	mu            sync.RWMutex
	store         Store
	bus           *event_bus.EventBus
	tags          []tag.Tag
	mode          Mode
	editing       uuid.NullUUID
	pendingDelete uuid.NullUUID
}

func New(store Store, bus *event_bus.EventBus) *Manager {
	return &Manager{store: store, bus: bus}
}

// List fetches all tags and replaces the cache.
func (m *Manager) List(ctx context.Context) ([]tag.Tag, error) {
	tags, err := m.store.List(ctx)
	if err != nil {
		return nil, m.storeFailed(ctx, "list", err)
	}
	m.mu.Lock()
	m.tags = append([]tag.Tag(nil), tags...)
	sortTags(m.tags)
	snapshot := m.snapshotLocked()
	m.mu.Unlock()

	m.broadcast(ctx, snapshot)
	return snapshot, nil
}

// Create validates the name, derives the style from color and persists the tag.
func (m *Manager) Create(ctx context.Context, name string, color tag.Color) (tag.Tag, error) {
	name, err := validateName(name)
	if err != nil {
		return tag.Tag{}, err
	}
	created, err := m.store.Create(ctx, name, tag.DeriveStyle(color))
	if err != nil {
		return tag.Tag{}, m.storeFailed(ctx, "create", err)
	}
	log.Debugf("tag %s created", created.Id)

	m.mu.Lock()
	m.tags = append(m.tags, created)
	sortTags(m.tags)
	m.mode = ModeView
	snapshot := m.snapshotLocked()
	m.mu.Unlock()

	m.broadcast(ctx, snapshot)
	return created, nil
}

// Update replaces the name and the whole style of a tag.
func (m *Manager) Update(ctx context.Context, id uuid.UUID, name string, color tag.Color) (tag.Tag, error) {
	name, err := validateName(name)
	if err != nil {
		return tag.Tag{}, err
	}
	updated, err := m.store.Update(ctx, id, name, tag.DeriveStyle(color))
	if err != nil {
		return tag.Tag{}, m.storeFailed(ctx, "update", err)
	}

	m.mu.Lock()
	replaced := false
	for i := range m.tags {
		if m.tags[i].Id == updated.Id {
			m.tags[i] = updated
			replaced = true
		}
	}
	if !replaced {
		m.tags = append(m.tags, updated)
	}
	sortTags(m.tags)
	m.mode = ModeView
	m.editing = uuid.NullUUID{}
	snapshot := m.snapshotLocked()
	m.mu.Unlock()

	m.broadcast(ctx, snapshot)
	return updated, nil
}

// RequestDelete marks a tag for deletion; ConfirmDelete performs it.
func (m *Manager) RequestDelete(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.findLocked(id); !ok {
		return fmt.Errorf("%w: %s", tag.ErrTagNotFound, id)
	}
	m.pendingDelete = uuid.NullUUID{UUID: id, Valid: true}
	return nil
}

func (m *Manager) CancelDelete() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pendingDelete = uuid.NullUUID{}
}

// PendingDelete returns the tag awaiting confirmation.
func (m *Manager) PendingDelete() (tag.Tag, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.pendingDelete.Valid {
		return tag.Tag{}, false
	}
	return m.findLocked(m.pendingDelete.UUID)
}

// ConfirmDelete deletes the requested tag remotely and locally. Tasks keep referencing the removed
// id and resolve to the fallback style from then on.
func (m *Manager) ConfirmDelete(ctx context.Context) (uuid.UUID, error) {
	m.mu.Lock()
	pending := m.pendingDelete
	m.pendingDelete = uuid.NullUUID{}
	m.mu.Unlock()

	if !pending.Valid {
		return uuid.Nil, ErrDeleteNotRequested
	}
	id := pending.UUID
	if err := m.store.Delete(ctx, id); err != nil && !errors.Is(err, tag.ErrTagNotFound) {
		return uuid.Nil, m.storeFailed(ctx, "delete", err)
	}

	m.mu.Lock()
	kept := m.tags[:0]
	for _, t := range m.tags {
		if t.Id != id {
			kept = append(kept, t)
		}
	}
	m.tags = kept
	if m.editing.Valid && m.editing.UUID == id {
		m.editing = uuid.NullUUID{}
		m.mode = ModeView
	}
	snapshot := m.snapshotLocked()
	m.mu.Unlock()

	m.broadcast(ctx, snapshot)
	return id, nil
}

// Resolve looks a tag up in the cache.
func (m *Manager) Resolve(id uuid.NullUUID) (tag.Tag, bool) {
	if !id.Valid {
		return tag.Tag{}, false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.findLocked(id.UUID)
}

// Style returns the tag's style, or the fallback style for missing and unknown tags.
func (m *Manager) Style(id uuid.NullUUID) tag.Style {
	if t, ok := m.Resolve(id); ok {
		return t.Style
	}
	return tag.FallbackStyle
}

// Tags returns a copy of the cached tags, ordered by name.
func (m *Manager) Tags() []tag.Tag {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

func (m *Manager) Mode() Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.mode
}

// Editing returns the tag being edited while in ModeEdit.
func (m *Manager) Editing() (tag.Tag, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.mode != ModeEdit || !m.editing.Valid {
		return tag.Tag{}, false
	}
	return m.findLocked(m.editing.UUID)
}

func (m *Manager) StartAdd() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mode = ModeAdd
	m.editing = uuid.NullUUID{}
}

// StartEdit switches to ModeEdit for a cached tag.
func (m *Manager) StartEdit(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.findLocked(id); !ok {
		return ErrNoTagSelected
	}
	m.mode = ModeEdit
	m.editing = uuid.NullUUID{UUID: id, Valid: true}
	return nil
}

// Back returns to ModeView.
func (m *Manager) Back() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mode = ModeView
	m.editing = uuid.NullUUID{}
}

func (m *Manager) findLocked(id uuid.UUID) (tag.Tag, bool) {
	for _, t := range m.tags {
		if t.Id == id {
			return t, true
		}
	}
	return tag.Tag{}, false
}

func (m *Manager) snapshotLocked() []tag.Tag {
	return append(make([]tag.Tag, 0, len(m.tags)), m.tags...)
}

func (m *Manager) broadcast(ctx context.Context, tags []tag.Tag) {
	err := m.bus.Publish(event_bus.NewEvent(ctx, event_bus.TagChanged, event_bus.TagsChanged{Tags: tags}))
	if err != nil {
		log.Warnf("tag change broadcast failed: %v", err)
	}
}

func (m *Manager) storeFailed(ctx context.Context, op string, err error) error {
	err = fmt.Errorf("failed to %s tag: %w", op, err)
	log.Error(err)
	notification := event_bus.Notification{Severity: event_bus.SeverityError, Message: err.Error()}
	if pubErr := m.bus.Publish(event_bus.NewEvent(ctx, event_bus.Notify, notification)); pubErr != nil {
		log.Warnf("notification failed: %v", pubErr)
	}
	return err
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &ValidationError{Field: "name", Err: ErrEmptyName}
	}
	return name, nil
}

func sortTags(tags []tag.Tag) {
	sort.SliceStable(tags, func(i, j int) bool {
		return strings.ToLower(tags[i].Name) < strings.ToLower(tags[j].Name)
	})
}
