package view

import (
	"time"

	"github.com/studyplan/studyplan/pkg/task"
)

// Renderer draws one calendar view and turns pointer input on it into task clicks, drag ranges
// and day selections delivered through Callbacks. Pointer events are resolved against the last
// Rendering returned by Render.
type Renderer interface {
	Kind() Kind
	Render(ref time.Time, tasks []task.Task, resolve TagResolver, now time.Time) Rendering
	PointerDown(p Point)
	PointerMove(p Point)
	PointerUp(p Point)
	// ReleaseOutside resolves a gesture whose release happened outside the tracked area.
	ReleaseOutside()
	// Cancel drops any gesture in progress without emitting.
	Cancel()
	// Overlay is the drag selection to paint, if a drag is in progress.
	Overlay() (Overlay, bool)
}
