package events

import "github.com/atomicstack/quelthalas/internal/logging"

type MenuTracer struct{}

type ExitReason string

const (
	ExitExecuted    ExitReason = "executed"
	ExitEscape      ExitReason = "escape"
	ExitMenuKey     ExitReason = "menu-key"
	ExitClickAway   ExitReason = "click-away"
	ExitCancelMode  ExitReason = "cancel-mode"
	ExitOwnerGone   ExitReason = "owner-gone"
	ExitPumpStopped ExitReason = "pump-stopped"
)

var Menu = MenuTracer{}

func (MenuTracer) Open(items int, x, y int) {
	logging.Trace("menu.open", map[string]interface{}{"items": items, "x": x, "y": y})
}

func (MenuTracer) Focus(depth, index int, text string) {
	logging.Trace("menu.focus", map[string]interface{}{"depth": depth, "index": index, "text": text})
}

func (MenuTracer) ShowSub(depth int, text string, x, y, width, height int) {
	logging.Trace("menu.submenu.show", map[string]interface{}{
		"depth":  depth,
		"text":   text,
		"x":      x,
		"y":      y,
		"width":  width,
		"height": height,
	})
}

func (MenuTracer) HideSub(depth int) {
	logging.Trace("menu.submenu.hide", map[string]interface{}{"depth": depth})
}

func (MenuTracer) Execute(id uint32, text string) {
	logging.Trace("menu.execute", map[string]interface{}{"id": id, "text": text})
}

func (MenuTracer) Scroll(depth, position int) {
	logging.Trace("menu.scroll", map[string]interface{}{"depth": depth, "position": position})
}

func (MenuTracer) Exit(reason ExitReason, executed bool) {
	logging.Trace("menu.exit", map[string]interface{}{"reason": string(reason), "executed": executed})
}

func (MenuTracer) Error(event string, err error) {
	if err == nil {
		return
	}
	logging.Trace("menu.error", map[string]interface{}{"event": event, "error": err.Error()})
}
