package events

import "github.com/atomicstack/quelthalas/internal/logging"

type FieldTracer struct{}

type rejectReason string

const (
	RejectNonDigit  rejectReason = "non-digit"
	RejectMaxLength rejectReason = "max-length"
	RejectPassword  rejectReason = "password"
)

var Field = FieldTracer{}

func (FieldTracer) Focus(field string) {
	logging.Trace("field.focus", map[string]interface{}{"field": field})
}

func (FieldTracer) Blur(field string) {
	logging.Trace("field.blur", map[string]interface{}{"field": field})
}

func (FieldTracer) Replace(field string, start, end, inserted, trimmed int) {
	logging.Trace("field.replace", map[string]interface{}{
		"field":    field,
		"start":    start,
		"end":      end,
		"inserted": inserted,
		"trimmed":  trimmed,
	})
}

func (FieldTracer) Undo(field string, position, restored int) {
	logging.Trace("field.undo", map[string]interface{}{"field": field, "position": position, "restored": restored})
}

func (FieldTracer) Selection(field string, start, end int) {
	logging.Trace("field.selection", map[string]interface{}{"field": field, "start": start, "end": end})
}

func (FieldTracer) Scroll(field string, offset int) {
	logging.Trace("field.scroll", map[string]interface{}{"field": field, "offset": offset})
}

func (FieldTracer) Reject(field string, reason rejectReason) {
	logging.Trace("field.reject", map[string]interface{}{"field": field, "reason": string(reason)})
}

func (FieldTracer) Clipboard(field, op string, units int) {
	logging.Trace("field.clipboard", map[string]interface{}{"field": field, "op": op, "units": units})
}

func (FieldTracer) Composition(field string, units int, final bool) {
	logging.Trace("field.ime", map[string]interface{}{"field": field, "units": units, "final": final})
}

func (FieldTracer) Error(field, event string, err error) {
	if err == nil {
		return
	}
	logging.Trace("field.error", map[string]interface{}{"field": field, "event": event, "error": err.Error()})
}
