package host

import (
	"context"
	"errors"
	"sync"

	"github.com/atomicstack/quelthalas/internal/geom"
	"github.com/atomicstack/quelthalas/internal/shaping"
)

// ErrInvalidWindow reports a stale or destroyed window handle.
var ErrInvalidWindow = errors.New("invalid window handle")

// Caret is the host's blinking insertion mark for the focused field.
type Caret interface {
	Create(width, height int) error
	Destroy()
	SetPos(p geom.Point)
	Show()
	Hide()
}

// IME is the platform input-method context of a field.
type IME interface {
	SetCompositionWindow(pos geom.Point, area geom.Rect) error
	SetCompositionFont(font shaping.Font) error
}

// Clipboard moves UTF-16 text in and out of the platform clipboard. Text
// written is NUL-terminated; text read may or may not be.
type Clipboard interface {
	ReadText() ([]uint16, error)
	WriteText(units []uint16) error
}

// FieldHost is everything an input field needs from its window.
type FieldHost interface {
	Invalidate(r geom.Rect)
	Caret() Caret
	IME() IME
	Clipboard() Clipboard
	ClientToScreen(p geom.Point) geom.Point
	SetCapture()
	ReleaseCapture()
}

// Popup is a top-level popup window owned by a menu node while it is shown.
// Bounds are in screen coordinates.
type Popup interface {
	Bounds() geom.Rect
	SetBounds(r geom.Rect) error
	Invalidate()
	Destroy() error
}

// MenuHost is everything a popup menu session needs from its owner.
type MenuHost interface {
	CreatePopup(bounds geom.Rect) (Popup, error)
	// WorkArea returns the usable area of the monitor nearest p.
	WorkArea(p geom.Point) geom.Rect
	// OwnerAlive reports whether the owning window still exists.
	OwnerAlive() bool
	PostCommand(id uint32) error
	EnterMenuLoop()
	ExitMenuLoop()
	SetCapture(p Popup)
	ReleaseCapture()
}

// EventPump feeds a modal loop. Next blocks until an event is available.
// Dispatch hands an event the loop does not consume back to the host's
// normal handling (paint, timers, unrelated windows).
type EventPump interface {
	Next(ctx context.Context) (Event, error)
	Dispatch(ev Event)
}

// Queue is an in-memory EventPump. Dispatched events are kept in order for
// inspection and also passed to OnDispatch when set.
type Queue struct {
	mu         sync.Mutex
	events     []Event
	ready      chan struct{}
	dispatched []Event
	OnDispatch func(Event)
}

// NewQueue returns a queue preloaded with events.
func NewQueue(events ...Event) *Queue {
	q := &Queue{ready: make(chan struct{}, 1)}
	q.Post(events...)
	return q
}

// Post appends events.
func (q *Queue) Post(events ...Event) {
	if len(events) == 0 {
		return
	}
	q.mu.Lock()
	q.events = append(q.events, events...)
	q.mu.Unlock()
	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// Next implements EventPump.
func (q *Queue) Next(ctx context.Context) (Event, error) {
	for {
		q.mu.Lock()
		if len(q.events) > 0 {
			ev := q.events[0]
			q.events = q.events[1:]
			q.mu.Unlock()
			return ev, nil
		}
		q.mu.Unlock()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-q.ready:
		}
	}
}

// Dispatch implements EventPump.
func (q *Queue) Dispatch(ev Event) {
	q.mu.Lock()
	q.dispatched = append(q.dispatched, ev)
	fn := q.OnDispatch
	q.mu.Unlock()
	if fn != nil {
		fn(ev)
	}
}

// Dispatched returns the events handed back to the host so far.
func (q *Queue) Dispatched() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]Event(nil), q.dispatched...)
}
