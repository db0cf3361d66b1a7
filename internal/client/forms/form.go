// Package forms holds the add, edit and password-change forms of the user
// directory: their fields, validation rules and wire payloads.
package forms

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/groupe-sii/lumext/internal/client/models"
)

// Kind identifies which form a Form is.
type Kind int

const (
	KindAdd Kind = iota + 1
	KindEdit
	KindPassword
)

func (k Kind) String() string {
	switch k {
	case KindAdd:
		return "add"
	case KindEdit:
		return "edit"
	case KindPassword:
		return "password"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

var (
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrUnknownField is returned when setting a field the form does not have.
	ErrUnknownField = errors.New("unknown form field")
)

// ValidationError lists the failing rule per field, keyed by wire name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + ": " + e.Fields[name]
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

var fieldsByKind = map[Kind][]string{
	KindAdd: {
		models.FieldLogin, models.FieldDisplayName, models.FieldDescription,
		models.FieldPassword, models.FieldPasswordConfirm,
	},
	KindEdit:     {models.FieldLogin, models.FieldDisplayName, models.FieldDescription},
	KindPassword: {models.FieldPassword, models.FieldPasswordConfirm},
}

// Form is one open form. It is not safe for concurrent use.
type Form struct {
	kind    Kind
	values  map[string]string
	initial map[string]string
	touched map[string]bool
	errs    map[string]string
}

// NewAddForm returns an empty user creation form.
func NewAddForm() *Form {
	return newForm(KindAdd, nil)
}

// NewEditForm returns a form initialized from u's current values.
func NewEditForm(u models.User) *Form {
	return newForm(KindEdit, map[string]string{
		models.FieldLogin:       u.Login,
		models.FieldDisplayName: u.DisplayName,
		models.FieldDescription: u.Description,
	})
}

// NewPasswordForm returns an empty password change form.
func NewPasswordForm() *Form {
	return newForm(KindPassword, nil)
}

func newForm(kind Kind, initial map[string]string) *Form {
	f := &Form{kind: kind, initial: map[string]string{}}
	for _, name := range fieldsByKind[kind] {
		f.initial[name] = initial[name]
	}
	f.Reset()
	return f
}

// Kind returns the form kind.
func (f *Form) Kind() Kind { return f.kind }

// Fields returns the wire names of the form fields in display order.
func (f *Form) Fields() []string {
	return slices.Clone(fieldsByKind[f.kind])
}

// Has reports whether the form has the named field.
func (f *Form) Has(field string) bool {
	_, ok := f.values[field]
	return ok
}

// Get returns the current value of field.
func (f *Form) Get(field string) string {
	return f.values[field]
}

// Set changes a field, marks it touched and re-evaluates the whole form, so
// that the confirmation is checked against the current password.
func (f *Form) Set(field, value string) error {
	if !f.Has(field) {
		return fmt.Errorf("%w: %s form has no %q", ErrUnknownField, f.kind, field)
	}
	f.values[field] = value
	f.touched[field] = true
	f.Validate()
	return nil
}

// Reset restores the initial values and clears touched state.
func (f *Form) Reset() {
	f.values = make(map[string]string, len(f.initial))
	for k, v := range f.initial {
		f.values[k] = v
	}
	f.touched = map[string]bool{}
	f.Validate()
}

// Validate evaluates every rule and returns the failing rule per field.
func (f *Form) Validate() map[string]string {
	v := f.values
	switch f.kind {
	case KindAdd:
		f.errs = check(addFields{
			Login:           v[models.FieldLogin],
			DisplayName:     v[models.FieldDisplayName],
			Description:     v[models.FieldDescription],
			Password:        v[models.FieldPassword],
			PasswordConfirm: v[models.FieldPasswordConfirm],
		})
	case KindEdit:
		f.errs = check(editFields{
			Login:       v[models.FieldLogin],
			DisplayName: v[models.FieldDisplayName],
			Description: v[models.FieldDescription],
		})
	case KindPassword:
		f.errs = check(passwordFields{
			Password:        v[models.FieldPassword],
			PasswordConfirm: v[models.FieldPasswordConfirm],
		})
	}

	if f.Has(models.FieldPasswordConfirm) && !ConfirmValid(v[models.FieldPassword], v[models.FieldPasswordConfirm]) {
		f.errs[models.FieldPasswordConfirm] = "confirm"
	}

	out := make(map[string]string, len(f.errs))
	for k, e := range f.errs {
		out[k] = e
	}
	return out
}

// Valid reports whether every rule holds.
func (f *Form) Valid() bool {
	return len(f.errs) == 0
}

// Invalid reports whether field fails a rule and was touched.
func (f *Form) Invalid(field string) bool {
	_, bad := f.errs[field]
	return bad && f.touched[field]
}

// Error returns the failing rule of field, or "".
func (f *Form) Error(field string) string {
	return f.errs[field]
}

// Err returns a *ValidationError when the form is invalid.
func (f *Form) Err() error {
	if f.Valid() {
		return nil
	}
	fields := make(map[string]string, len(f.errs))
	for k, e := range f.errs {
		fields[k] = e
	}
	return &ValidationError{Fields: fields}
}

// Payload returns the raw field values keyed by wire name.
func (f *Form) Payload() models.Payload {
	p := make(models.Payload, len(f.values))
	for k, v := range f.values {
		p[k] = v
	}
	return p
}
