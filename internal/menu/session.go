package menu

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/atomicstack/quelthalas/internal/anim"
	"github.com/atomicstack/quelthalas/internal/geom"
	"github.com/atomicstack/quelthalas/internal/host"
	"github.com/atomicstack/quelthalas/internal/logging"
	"github.com/atomicstack/quelthalas/internal/logging/events"
	"github.com/atomicstack/quelthalas/internal/shaping"
)

// Options configure a tracking session. Zero values pick the defaults.
type Options struct {
	Shaper        shaping.Shaper
	Font          shaping.Font
	Metrics       Metrics
	HoverDuration time.Duration
	Easing        anim.EasingFunc
	// Scheduler advances hover highlights. Without one they advance on
	// Tick events.
	Scheduler *anim.Scheduler
}

// Result is the outcome of a finished session.
type Result struct {
	Executed  bool
	CommandID uint32
}

type handler func(host.Event) error

// Session tracks one open popup menu. While it runs it owns pointer
// capture and interprets every input event; the menu tree is destroyed
// when it ends.
type Session struct {
	host host.MenuHost
	opts Options

	top     *Menu
	current *Menu
	lastPos geom.Point

	scrollMenu *Menu
	scrollDir  int
	typed      string

	result   Result
	done     bool
	closed   bool
	closeErr error

	handlers map[reflect.Type]handler
}

// Open builds the menu tree, shows its root popup at `at` and starts
// tracking.
func Open(h host.MenuHost, items []Info, at geom.Point, opts Options) (*Session, error) {
	if opts.Shaper == nil {
		opts.Shaper = shaping.NewCells()
	}
	if opts.Metrics == (Metrics{}) {
		opts.Metrics = DefaultMetrics()
	}
	if opts.HoverDuration == 0 {
		opts.HoverDuration = 100 * time.Millisecond
	}
	if opts.Easing == nil {
		opts.Easing = anim.CubicBezier(0.33, 0, 0.67, 1)
	}
	s := &Session{host: h, opts: opts, lastPos: at}
	s.registerHandlers()
	s.top = Build(items)
	s.current = s.top

	h.EnterMenuLoop()
	if err := s.show(s.top, at.X, at.Y, 0, 0); err != nil {
		s.top.Destroy()
		h.ExitMenuLoop()
		return nil, fmt.Errorf("open menu: %w", err)
	}
	h.SetCapture(s.top.window)
	events.Menu.Open(len(items), at.X, at.Y)
	return s, nil
}

func (s *Session) registerHandlers() {
	s.handlers = map[reflect.Type]handler{
		reflect.TypeOf(host.MouseDown{}):   s.onMouseDown,
		reflect.TypeOf(host.MouseUp{}):     s.onMouseUp,
		reflect.TypeOf(host.MouseMove{}):   s.onMouseMove,
		reflect.TypeOf(host.DoubleClick{}): s.onDoubleClick,
		reflect.TypeOf(host.KeyPress{}):    s.onKeyDown,
		reflect.TypeOf(host.Char{}):        s.onChar,
		reflect.TypeOf(host.Tick{}):        s.onTick,
		reflect.TypeOf(host.CancelMode{}):  s.onCancel,
		reflect.TypeOf(host.CaptureLost{}): s.onCancel,
	}
}

// Consumes reports whether ev is a menu event. Everything else belongs to
// the host's normal dispatch.
func (s *Session) Consumes(ev host.Event) bool {
	if ev == nil {
		return false
	}
	_, ok := s.handlers[reflect.TypeOf(ev)]
	return ok
}

// Handle processes one event and reports whether the session has ended.
// Failures are logged; a failure that leaves the tree unusable ends the
// session.
func (s *Session) Handle(ev host.Event) bool {
	if s.done || ev == nil {
		return s.done
	}
	t := reflect.TypeOf(ev)
	h, ok := s.handlers[t]
	if !ok {
		return false
	}
	if err := h(ev); err != nil {
		logging.Error(fmt.Errorf("menu: %s: %w", t.Name(), err))
		events.Menu.Error(t.Name(), err)
		if errors.Is(err, host.ErrInvalidWindow) {
			s.exit(events.ExitOwnerGone)
		}
	}
	return s.done
}

// Run is the modal loop. It checks the owner before every event, feeds
// menu events to the session and hands everything else back to the pump.
// Tick events are seen by both.
func (s *Session) Run(ctx context.Context, pump host.EventPump) (Result, error) {
	for !s.done {
		if !s.host.OwnerAlive() {
			s.exit(events.ExitOwnerGone)
			return s.result, errors.Join(fmt.Errorf("menu owner: %w", host.ErrInvalidWindow), s.closeErr)
		}
		ev, err := pump.Next(ctx)
		if err != nil {
			s.exit(events.ExitPumpStopped)
			return s.result, errors.Join(fmt.Errorf("next event: %w", err), s.closeErr)
		}
		if _, ok := ev.(host.Tick); ok {
			s.Handle(ev)
			pump.Dispatch(ev)
			continue
		}
		if !s.Consumes(ev) {
			pump.Dispatch(ev)
			continue
		}
		s.Handle(ev)
	}
	return s.result, s.closeErr
}

// Close ends the session without executing anything. It is safe to call
// more than once.
func (s *Session) Close() error {
	if !s.done {
		s.exit(events.ExitCancelMode)
	}
	return s.closeErr
}

func (s *Session) exit(reason events.ExitReason) {
	s.done = true
	if s.closed {
		return
	}
	s.closed = true
	s.current = nil
	s.scrollMenu = nil
	s.closeErr = s.top.Destroy()
	s.host.ReleaseCapture()
	s.host.ExitMenuLoop()
	events.Menu.Exit(reason, s.result.Executed)
}

// Done reports whether the session has ended.
func (s *Session) Done() bool {
	return s.done
}

// Result is meaningful once Done.
func (s *Session) Result() Result {
	return s.result
}

// Top is the root menu.
func (s *Session) Top() *Menu {
	return s.top
}

// Current is the menu receiving keyboard input, nil after the session.
func (s *Session) Current() *Menu {
	return s.current
}

// Menus returns the shown menus from the root down.
func (s *Session) Menus() []*Menu {
	var out []*Menu
	for m := s.top; m != nil && m.Visible(); m = m.OpenSub() {
		out = append(out, m)
	}
	return out
}

// Metrics returns the metrics in effect.
func (s *Session) Metrics() Metrics {
	return s.opts.Metrics
}

func (s *Session) show(m *Menu, x, y, xAnchor, yAnchor int) error {
	work := s.host.WorkArea(geom.Point{X: x, Y: y})
	w, h, err := CalcSize(m, s.opts.Shaper, s.opts.Font, s.opts.Metrics, work.Height())
	if err != nil {
		return err
	}
	p := Place(x, y, w, h, xAnchor, yAnchor, work)
	win, err := s.host.CreatePopup(geom.XYWH(p.X, p.Y, w, h))
	if err != nil {
		return fmt.Errorf("create popup: %w", err)
	}
	m.window = win
	return nil
}

// showSub opens the submenu of item i of m next to it. It returns the
// submenu when it is shown, nil otherwise.
func (s *Session) showSub(m *Menu, i int) (*Menu, error) {
	if i < 0 || i >= len(m.Items) {
		return nil, nil
	}
	it := &m.Items[i]
	if it.Kind != KindSubMenu || it.Disabled || it.Sub == nil {
		return nil, nil
	}
	if it.Sub.Visible() {
		return it.Sub, nil
	}
	parent := m.window.Bounds()
	r := m.ScreenRect(i)
	if err := s.show(it.Sub, parent.Right, r.Top-s.opts.Metrics.Margin, parent.Width(), 0); err != nil {
		return nil, fmt.Errorf("show submenu %q: %w", it.Text, err)
	}
	b := it.Sub.window.Bounds()
	events.Menu.ShowSub(it.Sub.depth(), it.Text, b.Left, b.Top, b.Width(), b.Height())
	return it.Sub, nil
}

// hideSub closes every submenu shown below m. Tracker references into the
// closed part of the tree are dropped.
func (s *Session) hideSub(m *Menu) error {
	var errs []error
	for i := range m.Items {
		sub := m.Items[i].Sub
		if sub == nil || !sub.Visible() {
			continue
		}
		if s.current != nil && sub.Contains(s.current) {
			s.current = m
		}
		if s.scrollMenu != nil && sub.Contains(s.scrollMenu) {
			s.scrollMenu, s.scrollDir = nil, 0
		}
		if err := sub.destroyWindow(); err != nil {
			errs = append(errs, err)
		}
		events.Menu.HideSub(sub.depth())
	}
	return errors.Join(errs...)
}

// selectItem moves m's focus to i (-1 for none) and fades the hover
// highlights.
func (s *Session) selectItem(m *Menu, i int) {
	if m.FocusedIndex == i {
		return
	}
	if old := m.Focused(); old != nil {
		s.animateHover(m, old, 0)
	}
	m.FocusedIndex = i
	if it := m.Focused(); it != nil {
		s.animateHover(m, it, 1)
		events.Menu.Focus(m.depth(), i, it.Text)
	}
	if m.window != nil {
		m.window.Invalidate()
	}
}

func (s *Session) animateHover(m *Menu, it *Item, to float64) {
	it.hover.Transition(to, s.opts.HoverDuration, s.opts.Easing)
	if s.opts.Scheduler != nil {
		s.opts.Scheduler.Start(it.hover, func(float64) {
			if m.window != nil {
				m.window.Invalidate()
			}
		})
	}
}

// switchTracking closes whatever is open below m and then focuses i.
func (s *Session) switchTracking(m *Menu, i int) error {
	var err error
	if m.FocusedIndex != i {
		err = s.hideSub(m)
		s.selectItem(m, i)
	} else if sub := m.OpenSub(); sub != nil {
		err = s.hideSub(sub)
	}
	s.current = m
	return err
}

// track focuses item i of m and discloses its submenu.
func (s *Session) track(m *Menu, i int) error {
	if err := s.switchTracking(m, i); err != nil {
		return err
	}
	sub, err := s.showSub(m, i)
	if err != nil {
		return err
	}
	if sub != nil {
		s.current = sub
	}
	return nil
}

func (s *Session) execute(m *Menu) error {
	it := m.Focused()
	if it == nil || it.Kind != KindLeaf || it.Disabled {
		return nil
	}
	events.Menu.Execute(it.ID, it.Text)
	if err := s.host.PostCommand(it.ID); err != nil {
		return fmt.Errorf("post command %d: %w", it.ID, err)
	}
	s.result = Result{Executed: true, CommandID: it.ID}
	s.exit(events.ExitExecuted)
	return nil
}

func (s *Session) onMouseDown(ev host.Event) error {
	p := ev.(host.MouseDown).Pos
	s.lastPos = p
	s.typed = ""
	m := menuFromPoint(s.top, p)
	if m == nil {
		s.exit(events.ExitClickAway)
		return nil
	}
	hit := HitTest(m, p)
	if hit.Kind != HitItem {
		return nil
	}
	return s.track(m, hit.Index)
}

func (s *Session) onDoubleClick(ev host.Event) error {
	return s.onMouseDown(host.MouseDown{Pos: ev.(host.DoubleClick).Pos, Button: host.ButtonLeft})
}

func (s *Session) onMouseUp(ev host.Event) error {
	p := ev.(host.MouseUp).Pos
	s.lastPos = p
	m := menuFromPoint(s.top, p)
	if m == nil {
		return nil
	}
	hit := HitTest(m, p)
	if hit.Kind != HitItem || m.FocusedIndex != hit.Index {
		return nil
	}
	return s.execute(m)
}

func (s *Session) onMouseMove(ev host.Event) error {
	p := ev.(host.MouseMove).Pos
	if p == s.lastPos {
		return nil
	}
	s.lastPos = p
	s.scrollMenu, s.scrollDir = nil, 0
	m := menuFromPoint(s.top, p)
	if m == nil {
		s.deselect(s.current)
		return nil
	}
	hit := HitTest(m, p)
	switch hit.Kind {
	case HitItem:
		if s.current == m && m.FocusedIndex == hit.Index {
			return nil
		}
		return s.track(m, hit.Index)
	case HitScrollUp:
		s.scrollMenu, s.scrollDir = m, -1
	case HitScrollDown:
		s.scrollMenu, s.scrollDir = m, 1
	default:
		s.deselect(m)
	}
	return nil
}

// deselect drops m's focus unless it leads to an open submenu.
func (s *Session) deselect(m *Menu) {
	if m == nil || m.OpenSub() != nil {
		return
	}
	s.selectItem(m, -1)
}

func (s *Session) onKeyDown(ev host.Event) error {
	k := ev.(host.KeyPress)
	s.typed = ""
	m := s.current
	if m == nil {
		return nil
	}
	switch k.Key {
	case host.KeyAlt, host.KeyF10:
		s.exit(events.ExitMenuKey)
	case host.KeyHome:
		return s.focusKey(m, m.first())
	case host.KeyEnd:
		return s.focusKey(m, m.last())
	case host.KeyUp:
		if m.FocusedIndex < 0 {
			return s.focusKey(m, m.last())
		}
		return s.focusKey(m, m.prev(m.FocusedIndex))
	case host.KeyDown:
		if m.FocusedIndex < 0 {
			return s.focusKey(m, m.first())
		}
		return s.focusKey(m, m.next(m.FocusedIndex))
	case host.KeyLeft:
		return s.closeLevel(m)
	case host.KeyRight:
		return s.openFocused(m)
	case host.KeyEscape:
		if m == s.top {
			s.exit(events.ExitEscape)
			return nil
		}
		return s.closeLevel(m)
	case host.KeyEnter:
		if it := m.Focused(); it != nil && it.Kind == KindSubMenu {
			return s.openFocused(m)
		}
		return s.execute(m)
	}
	return nil
}

func (s *Session) focusKey(m *Menu, i int) error {
	if i < 0 || i == m.FocusedIndex {
		return nil
	}
	if err := s.switchTracking(m, i); err != nil {
		return err
	}
	if m.ensureVisible(i) {
		events.Menu.Scroll(m.depth(), m.ScrollPosition)
		m.window.Invalidate()
	}
	return nil
}

// closeLevel hides m and returns input to its parent.
func (s *Session) closeLevel(m *Menu) error {
	parent := m.parent
	if parent == nil {
		return nil
	}
	err := s.hideSub(parent)
	s.current = parent
	return err
}

// openFocused shows the focused item's submenu and focuses its first item.
func (s *Session) openFocused(m *Menu) error {
	sub, err := s.showSub(m, m.FocusedIndex)
	if err != nil || sub == nil {
		return err
	}
	s.current = sub
	return s.focusKey(sub, sub.first())
}

func (s *Session) onChar(ev host.Event) error {
	c := ev.(host.Char).Unit
	m := s.current
	if m == nil || c < 0x20 || c == 0x7F {
		return nil
	}
	s.typed += string(rune(c))
	i := BestMatchIndex(m.Items, s.typed)
	if i < 0 {
		s.typed = string(rune(c))
		i = BestMatchIndex(m.Items, s.typed)
	}
	return s.focusKey(m, i)
}

func (s *Session) onTick(ev host.Event) error {
	dt := ev.(host.Tick).Elapsed
	if s.opts.Scheduler == nil {
		for _, m := range s.Menus() {
			moved := false
			for i := range m.Items {
				if m.Items[i].hover.Active() {
					m.Items[i].hover.Advance(dt)
					moved = true
				}
			}
			if moved {
				m.window.Invalidate()
			}
		}
	}
	if m := s.scrollMenu; m != nil && s.scrollDir != 0 && m.Visible() {
		if m.scrollBy(s.scrollDir * s.opts.Metrics.ItemHeight) {
			events.Menu.Scroll(m.depth(), m.ScrollPosition)
			m.window.Invalidate()
		}
	}
	return nil
}

func (s *Session) onCancel(host.Event) error {
	s.exit(events.ExitCancelMode)
	return nil
}

// Animating reports whether any hover highlight is still moving.
func (s *Session) Animating() bool {
	for _, m := range s.Menus() {
		for i := range m.Items {
			if m.Items[i].hover.Active() {
				return true
			}
		}
	}
	return false
}

// AutoScrolling reports whether the pointer rests on a scroll zone, so the
// host should keep delivering Tick events.
func (s *Session) AutoScrolling() bool {
	return !s.done && s.scrollMenu != nil && s.scrollDir != 0
}
