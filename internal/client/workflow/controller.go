// Package workflow drives the user directory panel: the displayed list, the
// selected row and the add, edit and password modals. It turns user actions
// into directory calls and reconciles their results into the displayed
// state.
//
// Every submit and delete follows the same sequence: the modal closes, the
// backend call runs to completion, then the list is re-fetched and the
// selection cleared, whether the call succeeded or not.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/groupe-sii/lumext/internal/client/directory"
	"github.com/groupe-sii/lumext/internal/client/forms"
	"github.com/groupe-sii/lumext/internal/client/models"
	"github.com/groupe-sii/lumext/internal/logging"
)

var (
	// ErrNoSelection: edit, password and delete need a selected user.
	ErrNoSelection = errors.New("no user selected")
	// ErrUnknownUser: the login to select is not in the displayed list.
	ErrUnknownUser = errors.New("user not in displayed list")
	// ErrModalOpen: the action is refused while a modal is open.
	ErrModalOpen = errors.New("a modal is already open")
	// ErrNoModal: field edits and submit need an open modal.
	ErrNoModal = errors.New("no modal open")
	// ErrBusy: a submit or delete is still in flight.
	ErrBusy = errors.New("an operation is already in flight")
)

// Modal is the open modal, if any.
type Modal int

const (
	ModalNone Modal = iota
	ModalAdd
	ModalEdit
	ModalPassword
)

func (m Modal) String() string {
	switch m {
	case ModalNone:
		return "idle"
	case ModalAdd:
		return "add"
	case ModalEdit:
		return "edit"
	case ModalPassword:
		return "password"
	default:
		return fmt.Sprintf("Modal(%d)", int(m))
	}
}

// State is a snapshot of the displayed state.
type State struct {
	Modal    Modal
	Users    []models.User
	Selected *models.User
	// ListLoading is true while a refresh or a mutating call is running.
	ListLoading bool
	// PasswordVisible is set once a password was generated into the open
	// form and cleared when the modal closes.
	PasswordVisible bool
}

// Controller is safe for concurrent use. No lock is held while a backend
// call is running.
type Controller struct {
	dir directory.Client
	log logging.Logger

	mu              sync.Mutex
	users           []models.User
	selected        *models.User
	modal           Modal
	form            *forms.Form
	loading         int
	busy            bool
	passwordVisible bool
}

// NewController returns a Controller in the idle state with an empty list.
func NewController(dir directory.Client, log logging.Logger) *Controller {
	if log == nil {
		log = logging.Nop()
	}
	return &Controller{dir: dir, log: log, users: []models.User{}}
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := State{
		Modal:           c.modal,
		Users:           slices.Clone(c.users),
		ListLoading:     c.loading > 0,
		PasswordVisible: c.passwordVisible,
	}
	if c.selected != nil {
		u := *c.selected
		s.Selected = &u
	}
	return s
}

// Refresh re-fetches the list and clears the selection. On failure the
// previous list is kept.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.loading++
	c.mu.Unlock()

	return c.refresh(ctx)
}

// refresh expects the caller to have accounted for one loading slot and
// releases it.
func (c *Controller) refresh(ctx context.Context) error {
	users, err := c.dir.ListUsers(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading--
	c.selected = nil
	if err != nil {
		c.log.Warn(ctx, "user list refresh failed", "error", err)
		return fmt.Errorf("refresh: %w", err)
	}
	c.users = users
	return nil
}

// Select marks the displayed user with the given login as selected.
func (c *Controller) Select(login string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.modal != ModalNone {
		return ErrModalOpen
	}
	for _, u := range c.users {
		if u.Login == login {
			sel := u
			c.selected = &sel
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownUser, login)
}

// ClearSelection drops the selected row.
func (c *Controller) ClearSelection() {
	c.mu.Lock()
	c.selected = nil
	c.mu.Unlock()
}

// OpenAdd opens the add modal with empty fields.
func (c *Controller) OpenAdd() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.modal != ModalNone {
		return ErrModalOpen
	}
	c.open(ModalAdd, forms.NewAddForm())
	return nil
}

// OpenEdit opens the edit modal initialized from the selected user.
func (c *Controller) OpenEdit() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.modal != ModalNone {
		return ErrModalOpen
	}
	if c.selected == nil {
		return ErrNoSelection
	}
	c.open(ModalEdit, forms.NewEditForm(*c.selected))
	return nil
}

// OpenPassword opens the password change modal for the selected user.
func (c *Controller) OpenPassword() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.modal != ModalNone {
		return ErrModalOpen
	}
	if c.selected == nil {
		return ErrNoSelection
	}
	c.open(ModalPassword, forms.NewPasswordForm())
	return nil
}

func (c *Controller) open(m Modal, f *forms.Form) {
	c.modal = m
	c.form = f
	c.passwordVisible = false
}

func (c *Controller) close() {
	c.modal = ModalNone
	c.form = nil
	c.passwordVisible = false
}

// Cancel discards the open form without any backend call.
func (c *Controller) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.modal == ModalNone {
		return ErrNoModal
	}
	c.close()
	return nil
}

// Fields returns the field names of the open form.
func (c *Controller) Fields() ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.form == nil {
		return nil, ErrNoModal
	}
	return c.form.Fields(), nil
}

// SetField changes a field of the open form.
func (c *Controller) SetField(field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.form == nil {
		return ErrNoModal
	}
	return c.form.Set(field, value)
}

// Field returns the current value of a field of the open form.
func (c *Controller) Field(field string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.form == nil {
		return "", ErrNoModal
	}
	return c.form.Get(field), nil
}

// FieldErrors returns the failing rule per touched field of the open form.
func (c *Controller) FieldErrors() (map[string]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.form == nil {
		return nil, ErrNoModal
	}
	out := map[string]string{}
	for _, name := range c.form.Fields() {
		if c.form.Invalid(name) {
			out[name] = c.form.Error(name)
		}
	}
	return out, nil
}

// GeneratePassword fills the password field of the open form and makes it
// visible.
func (c *Controller) GeneratePassword() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.form == nil {
		return "", ErrNoModal
	}
	p, err := c.form.Generate()
	if err != nil {
		return "", err
	}
	c.passwordVisible = true
	return p, nil
}
