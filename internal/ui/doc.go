// Package ui is the terminal widget host: a Bubble Tea program that owns a
// small form of input fields and the popup menus opened over it.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are
//     routed through a typed handler registry.
//   - Key and mouse messages are translated into internal/host events. While
//     a menu session is open it receives every one of them (exclusive
//     capture); otherwise they go to the focused field, or to the field
//     holding pointer capture.
//   - Fields and menus call back into the host through small adapters in
//     host.go: invalidation, the caret, the clipboard, popup windows and
//     command posting.
//
// Animation:
//   - Focus rings and menu hover highlights are anim.Variables registered
//     with one anim.Scheduler. While it is busy, or while a drag or menu
//     scroll needs repeating, the model keeps a tea.Tick running and feeds
//     each tick to the scheduler and as a host.Tick event.
package ui
