// Package form is a small view-model layer for input forms.
//
// Controllers declare the field IDs they need up front with [Fields.Require]
// and fail once, at construction, when a front end does not provide them.
package form

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
)

var (
	ErrMissingFields = errors.New("missing form fields")
	ErrMissingField  = errors.New("missing field")
)

// Field is a single input whose value can be read and written.
type Field interface {
	Value() string
	SetValue(v string)
}

// Text is a plain in-memory [Field].
type Text struct {
	value string
	mu    sync.RWMutex
}

// NewText creates a [Text] holding v.
func NewText(v string) *Text {
	return &Text{value: v}
}

func (t *Text) Value() string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.value
}

func (t *Text) SetValue(v string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.value = v
}

// Fields maps field IDs to fields.
type Fields map[string]Field

// NewFields creates [Fields] with a [Text] for each id.
func NewFields(ids ...string) Fields {
	f := make(Fields, len(ids))
	for _, id := range ids {
		f[id] = NewText("")
	}

	return f
}

// Require returns an error wrapping [ErrMissingFields] that lists every id
// without a field.
func (f Fields) Require(ids ...string) error {
	var merr *multierror.Error

	for _, id := range ids {
		if field, ok := f[id]; !ok || field == nil {
			merr = multierror.Append(merr, fmt.Errorf("%w: %q", ErrMissingField, id))
		}
	}

	if merr == nil {
		return nil
	}

	merr.ErrorFormat = listFormat

	return fmt.Errorf("%w: %w", ErrMissingFields, merr)
}

// Get returns the value of field id, or "" when it does not exist.
func (f Fields) Get(id string) string {
	field, ok := f[id]
	if !ok || field == nil {
		return ""
	}

	return field.Value()
}

// Trimmed is like [Fields.Get] with surrounding whitespace removed.
func (f Fields) Trimmed(id string) string {
	return strings.TrimSpace(f.Get(id))
}

// Set writes v to field id. Unknown IDs are ignored.
func (f Fields) Set(id, v string) {
	if field, ok := f[id]; ok && field != nil {
		field.SetValue(v)
	}
}

// Clear empties the given fields.
func (f Fields) Clear(ids ...string) {
	for _, id := range ids {
		f.Set(id, "")
	}
}

// IDs returns the sorted field IDs.
func (f Fields) IDs() []string {
	ids := make([]string, 0, len(f))
	for id := range f {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	return ids
}

func listFormat(errs []error) string {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return strings.Join(msgs, "; ")
}
