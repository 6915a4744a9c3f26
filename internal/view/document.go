// Package view is the document the task list is rendered into.
//
// A Document holds list elements tagged with task ids and the options of the
// owner select control. User events (checking a box, clicking close) are
// dispatched through the handlers attached when an element is rendered.
package view

import (
	"context"

	"todo/internal/service"
)

// ChangeHandler is called when an element's checkbox changes.
type ChangeHandler func(ctx context.Context, id service.ID, checked bool)

// CloseHandler is called when an element's close affordance is clicked.
type CloseHandler func(ctx context.Context, id service.ID)

// Element is a rendered task entry.
type Element struct {
	ID        service.ID
	Title     string
	OwnerName string
	Checked   bool

	onChange ChangeHandler
	onClose  CloseHandler
}

// Attached reports whether the element still has event listeners.
func (e *Element) Attached() bool {
	return e.onChange != nil || e.onClose != nil
}

func (e *Element) detach() {
	e.onChange = nil
	e.onClose = nil
}

// Option is an entry of the owner select control.
type Option struct {
	Value service.ID
	Label string
}

// Document is the list container plus the owner select control.
type Document struct {
	elements    []*Element // front of the list first
	options     []Option
	ownerSelect bool

	onChange ChangeHandler
	onClose  CloseHandler
}

// New creates an empty document. Owner options are only rendered when
// ownerSelect is true.
func New(ownerSelect bool) *Document {
	return &Document{ownerSelect: ownerSelect}
}

// SetHandlers sets the listeners attached to elements rendered from now on.
func (d *Document) SetHandlers(onChange ChangeHandler, onClose CloseHandler) {
	d.onChange = onChange
	d.onClose = onClose
}

// HasOwnerSelect reports whether the document has an owner select control.
func (d *Document) HasOwnerSelect() bool {
	return d.ownerSelect
}

// RenderTask inserts a new element for task at the front of the list.
// Rendering the same task twice yields two elements.
func (d *Document) RenderTask(task service.Task, ownerName string) *Element {
	el := &Element{
		ID:        task.ID,
		Title:     task.Title,
		OwnerName: ownerName,
		Checked:   task.Completed,
		onChange:  d.onChange,
		onClose:   d.onClose,
	}
	d.elements = append([]*Element{el}, d.elements...)
	return el
}

// RenderOwnerOption appends an option for owner. It reports false, and does
// nothing, if the document has no owner select control.
func (d *Document) RenderOwnerOption(owner service.Owner) bool {
	if !d.ownerSelect {
		return false
	}
	d.options = append(d.options, Option{Value: owner.ID, Label: owner.Name})
	return true
}

// Find returns the first element tagged with id.
func (d *Document) Find(id service.ID) (*Element, bool) {
	i := d.index(id)
	if i < 0 {
		return nil, false
	}
	return d.elements[i], true
}

// RemoveTaskElement detaches the listeners of the first element tagged with
// id and removes it. It reports false if there is no such element.
func (d *Document) RemoveTaskElement(id service.ID) bool {
	i := d.index(id)
	if i < 0 {
		return false
	}
	d.elements[i].detach()
	d.elements = append(d.elements[:i:i], d.elements[i+1:]...)
	return true
}

// Elements returns the list elements, front first.
func (d *Document) Elements() []*Element {
	return append([]*Element(nil), d.elements...)
}

// Options returns the owner select options in insertion order.
func (d *Document) Options() []Option {
	return append([]Option(nil), d.options...)
}

// Check sets the checkbox of the element tagged with id and fires its change
// listener. The checkbox keeps the new state whatever the listener does.
func (d *Document) Check(ctx context.Context, id service.ID, checked bool) bool {
	el, ok := d.Find(id)
	if !ok {
		return false
	}
	el.Checked = checked
	if el.onChange != nil {
		el.onChange(ctx, el.ID, checked)
	}
	return true
}

// ClickClose fires the close listener of the element tagged with id.
func (d *Document) ClickClose(ctx context.Context, id service.ID) bool {
	el, ok := d.Find(id)
	if !ok {
		return false
	}
	if el.onClose != nil {
		el.onClose(ctx, el.ID)
	}
	return true
}

func (d *Document) index(id service.ID) int {
	for i, el := range d.elements {
		if el.ID == id {
			return i
		}
	}
	return -1
}
