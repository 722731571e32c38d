package events

import "github.com/atomicstack/quelthalas/internal/logging"

type UITracer struct{}

var UI = UITracer{}

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height})
}

func (UITracer) FocusField(field string) {
	logging.Trace("ui.focus", map[string]interface{}{"field": field})
}

func (UITracer) Command(id uint32, field string, err error) {
	payload := map[string]interface{}{"id": id, "field": field}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("ui.command", payload)
}
