package ui

import (
	"reflect"
	"time"

	"github.com/atomicstack/quelthalas/internal/anim"
	"github.com/atomicstack/quelthalas/internal/geom"
	"github.com/atomicstack/quelthalas/internal/host"
	"github.com/atomicstack/quelthalas/internal/logging/events"
	"github.com/atomicstack/quelthalas/internal/menu"
	"github.com/atomicstack/quelthalas/internal/shaping"
	"github.com/atomicstack/quelthalas/internal/theme"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultWidth        = 80
	defaultHeight       = 24
	defaultTickInterval = 16 * time.Millisecond
	doubleClickTime     = 400 * time.Millisecond
)

// Options configure a Model. Zero values pick the defaults.
type Options struct {
	Width  int
	Height int
	Theme  *theme.Theme
	// Clipboard defaults to the system clipboard.
	Clipboard host.Clipboard
	// StaticCaret disables caret blinking.
	StaticCaret  bool
	TickInterval time.Duration
	Now          func() time.Time
}

type msgHandler func(tea.Msg) tea.Cmd

type tickMsg struct {
	at time.Time
}

// Model implements the Bubble Tea model for the widget host.
type Model struct {
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool

	theme     *theme.Theme
	shaper    shaping.Shaper
	scheduler *anim.Scheduler
	clipboard host.Clipboard
	caret     *termCaret

	fields       []*formField
	focus        int
	fieldCapture *formField
	dragOutside  bool

	session    *menu.Session
	menuTarget *formField
	popups     []*termPopup
	capture    host.Popup
	menuLoop   int
	posted     []uint32

	status string
	errMsg string

	lastClick    time.Time
	lastClickPos geom.Point

	ticking      bool
	lastTick     time.Time
	tickInterval time.Duration
	now          func() time.Time

	quitting bool
	dirty    bool

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the form and its host adapters.
func NewModel(opts Options) *Model {
	m := &Model{
		width:        defaultWidth,
		height:       defaultHeight,
		theme:        opts.Theme,
		shaper:       shaping.NewCells(),
		scheduler:    anim.NewScheduler(),
		clipboard:    opts.Clipboard,
		tickInterval: opts.TickInterval,
		now:          opts.Now,
	}
	if m.theme == nil {
		m.theme = theme.Default()
	}
	if m.clipboard == nil {
		m.clipboard = newSystemClipboard()
	}
	if m.tickInterval <= 0 {
		m.tickInterval = defaultTickInterval
	}
	if m.now == nil {
		m.now = time.Now
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}

	c := cursor.New()
	if st := m.theme.Styles.Caret; st != nil {
		c.Style = st.Copy()
	}
	if st := m.theme.Styles.Field; st != nil {
		c.TextStyle = st.Copy()
	}
	if opts.StaticCaret {
		c.SetMode(cursor.CursorStatic)
	}
	m.caret = &termCaret{cursor: c}

	m.buildForm()
	m.layout()
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface. The first field takes focus.
func (m *Model) Init() tea.Cmd {
	m.setFocus(0)
	return m.finishUpdate(nil)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateCaretModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(tea.FocusMsg{}):      m.handleFocusMsg,
		reflect.TypeOf(tea.BlurMsg{}):       m.handleBlurMsg,
		reflect.TypeOf(tickMsg{}):           m.handleTickMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) updateCaretModel(msg tea.Msg) tea.Cmd {
	if m.caret.owner == nil {
		return nil
	}
	c, cmd := m.caret.cursor.Update(msg)
	m.caret.cursor = c
	return cmd
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.quitting {
		return tea.Quit
	}
	if m.caret.focusPending {
		m.caret.focusPending = false
		m.caret.moved = false
		if cmd := m.caret.cursor.Focus(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	} else if m.caret.moved {
		m.caret.moved = false
		m.caret.cursor.Blink = false
		if cmd := m.caret.cursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if !m.ticking && m.needsTick() {
		m.ticking = true
		m.lastTick = m.now()
		cmds = append(cmds, m.tickCmd())
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) needsTick() bool {
	if m.scheduler.Active() {
		return true
	}
	if m.session != nil && m.session.AutoScrolling() {
		return true
	}
	return m.fieldCapture != nil && m.dragOutside
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(m.tickInterval, func(t time.Time) tea.Msg {
		return tickMsg{at: t}
	})
}

func (m *Model) handleTickMsg(msg tea.Msg) tea.Cmd {
	at := msg.(tickMsg).at
	m.ticking = false
	dt := at.Sub(m.lastTick)
	if dt < 0 {
		dt = 0
	}
	m.lastTick = at
	m.scheduler.Tick(dt)
	ev := host.Tick{Elapsed: dt}
	if m.session != nil {
		m.sendMenu(ev)
	}
	if ff := m.fieldCapture; ff != nil {
		ff.field.Handle(ev)
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size := msg.(tea.WindowSizeMsg)
	if !m.fixedWidth {
		m.width = size.Width
	}
	if !m.fixedHeight {
		m.height = size.Height
	}
	events.UI.Resize(m.width, m.height)
	if m.session != nil {
		// Popups were placed for the old work area.
		m.session.Close()
		m.endMenu()
	}
	m.layout()
	return nil
}

func (m *Model) handleFocusMsg(tea.Msg) tea.Cmd {
	if ff := m.focused(); ff != nil {
		ff.field.Handle(host.FocusGained{})
	}
	return nil
}

func (m *Model) handleBlurMsg(tea.Msg) tea.Cmd {
	if m.session != nil {
		m.sendMenu(host.CancelMode{})
	}
	if ff := m.focused(); ff != nil {
		ff.field.Handle(host.FocusLost{})
	}
	return nil
}

// Width and Height are the canvas size.
func (m *Model) Width() int {
	return m.width
}

func (m *Model) Height() int {
	return m.height
}

// Session is the open menu session, if any.
func (m *Model) Session() *menu.Session {
	return m.session
}

// Status is the last command outcome shown in the footer.
func (m *Model) Status() string {
	if m.errMsg != "" {
		return m.errMsg
	}
	return m.status
}

// Quitting reports whether the program was asked to exit.
func (m *Model) Quitting() bool {
	return m.quitting
}
