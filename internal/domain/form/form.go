// Package form implements the per-field validate-on-change / validate-on-blur
// state machine and the aggregate submit gate shared by the client screens.
package form

import (
	"fmt"

	"github.com/hirosato/go-bank-client/pkg/validator"
)

// Field declares one tracked input
type Field struct {
	Name string
	Rule validator.Rule
	// DependsOn lists fields whose changes force this field to be re-validated.
	DependsOn []string
}

// FieldState is the render state of one field.
// Valid is always false while Error is non-empty.
type FieldState struct {
	Name  string
	Value string
	Valid bool
	Error string
}

// Snapshot is an immutable copy of the whole form, in declaration order
type Snapshot struct {
	Fields    []FieldState
	CanSubmit bool
	Disabled  bool
}

// Form tracks field values, validity and the submit gate.
// It is not safe for concurrent use; all events arrive from one logical thread.
type Form struct {
	order      []string
	fields     map[string]Field
	states     map[string]*FieldState
	focused    map[string]bool
	dependents map[string][]string
	canSubmit  bool
	disabled   bool
}

// New creates an empty form. It panics on duplicate or unknown field names,
// since field tables are static.
func New(fields ...Field) *Form {
	f := &Form{
		order:      make([]string, 0, len(fields)),
		fields:     make(map[string]Field, len(fields)),
		states:     make(map[string]*FieldState, len(fields)),
		focused:    make(map[string]bool, len(fields)),
		dependents: make(map[string][]string),
	}

	for _, field := range fields {
		if _, exists := f.fields[field.Name]; exists {
			panic(fmt.Sprintf("form: duplicate field %q", field.Name))
		}
		f.order = append(f.order, field.Name)
		f.fields[field.Name] = field
		f.states[field.Name] = &FieldState{Name: field.Name}
	}

	for _, field := range fields {
		for _, dep := range field.DependsOn {
			if _, exists := f.fields[dep]; !exists {
				panic(fmt.Sprintf("form: field %q depends on unknown field %q", field.Name, dep))
			}
			f.dependents[dep] = append(f.dependents[dep], field.Name)
		}
	}

	return f
}

// Change handles a value-changed event: the field and its dependents are
// re-validated and the gate recomputed. Events on a disabled form are ignored.
func (f *Form) Change(name, value string) bool {
	state, ok := f.states[name]
	if !ok || f.disabled {
		return f.canSubmit
	}

	state.Value = value
	f.validate(name)
	for _, dependent := range f.dependents[name] {
		f.validate(dependent)
	}

	return f.Recheck()
}

// Focus records that the field gained focus. It never validates.
func (f *Form) Focus(name string) {
	if _, ok := f.states[name]; ok && !f.disabled {
		f.focused[name] = true
	}
}

// Blur handles a focus-lost event. The field is re-validated only on a
// focused → unfocused transition; the gate is always recomputed.
func (f *Form) Blur(name string) bool {
	if _, ok := f.states[name]; !ok {
		return f.canSubmit
	}

	if f.focused[name] && !f.disabled {
		f.validate(name)
		for _, dependent := range f.dependents[name] {
			f.validate(dependent)
		}
	}
	f.focused[name] = false

	return f.Recheck()
}

// Recheck recomputes the gate from the current field states
func (f *Form) Recheck() bool {
	f.canSubmit = AllValid(f.stateList())
	return f.canSubmit
}

// ValidateAll re-validates every field and recomputes the gate
func (f *Form) ValidateAll() bool {
	for _, name := range f.order {
		f.validate(name)
	}
	return f.Recheck()
}

// AllValid is the aggregate gate: true iff every field is valid.
// An empty field list never opens the gate.
func AllValid(states []FieldState) bool {
	if len(states) == 0 {
		return false
	}
	for _, state := range states {
		if !state.Valid {
			return false
		}
	}
	return true
}

// CanSubmit returns the last computed gate value
func (f *Form) CanSubmit() bool {
	return f.canSubmit
}

// Value returns the current text of a field, "" for unknown names
func (f *Form) Value(name string) string {
	if state, ok := f.states[name]; ok {
		return state.Value
	}
	return ""
}

// State returns a copy of a field's state
func (f *Form) State(name string) (FieldState, bool) {
	state, ok := f.states[name]
	if !ok {
		return FieldState{}, false
	}
	return *state, true
}

// Names returns the field names in declaration order
func (f *Form) Names() []string {
	names := make([]string, len(f.order))
	copy(names, f.order)
	return names
}

// AnyFilled reports whether at least one field holds a non-empty value
func (f *Form) AnyFilled() bool {
	for _, name := range f.order {
		if f.states[name].Value != "" {
			return true
		}
	}
	return false
}

// Disable blocks all input events
func (f *Form) Disable() {
	f.disabled = true
}

// Enable re-accepts input events and recomputes the gate
func (f *Form) Enable() bool {
	f.disabled = false
	return f.Recheck()
}

// Disabled reports whether input events are currently blocked
func (f *Form) Disabled() bool {
	return f.disabled
}

// Reset discards all values and validity
func (f *Form) Reset() {
	for _, name := range f.order {
		f.states[name] = &FieldState{Name: name}
		f.focused[name] = false
	}
	f.disabled = false
	f.canSubmit = false
}

// Snapshot copies the form for rendering
func (f *Form) Snapshot() Snapshot {
	return Snapshot{
		Fields:    f.stateList(),
		CanSubmit: f.canSubmit,
		Disabled:  f.disabled,
	}
}

func (f *Form) validate(name string) {
	state := f.states[name]
	msg := f.fields[name].Rule.Validate(state.Value, f)
	state.Error = msg
	state.Valid = msg == ""
}

func (f *Form) stateList() []FieldState {
	states := make([]FieldState, 0, len(f.order))
	for _, name := range f.order {
		states = append(states, *f.states[name])
	}
	return states
}
