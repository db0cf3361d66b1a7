package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/groupe-sii/lumext/internal/client/models"
)

type mutation func(ctx context.Context) error

// Submit sends the open form. An invalid form is rejected with its
// *forms.ValidationError and stays open. Otherwise the modal closes, the
// create or update call runs, and the list is refreshed whatever its
// outcome. The returned error joins the call and refresh failures.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.modal == ModalNone || c.form == nil {
		c.mu.Unlock()
		return ErrNoModal
	}
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}
	if err := c.form.Err(); err != nil {
		c.mu.Unlock()
		return err
	}

	var op mutation
	modal, payload := c.modal, c.form.Payload()
	switch modal {
	case ModalAdd:
		op = func(ctx context.Context) error {
			_, err := c.dir.CreateUser(ctx, payload)
			return err
		}
	case ModalEdit, ModalPassword:
		if c.selected == nil {
			c.mu.Unlock()
			return ErrNoSelection
		}
		login := c.selected.Login
		op = func(ctx context.Context) error {
			_, err := c.dir.UpdateUser(ctx, login, payload)
			return err
		}
	}

	c.close()
	c.begin()
	c.mu.Unlock()

	c.log.Info(ctx, "submitting form", "modal", modal.String())
	return c.run(ctx, fmt.Sprintf("%s submit", modal), op)
}

// Delete removes the selected user, then refreshes the list whatever the
// outcome of the call.
func (c *Controller) Delete(ctx context.Context) error {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}
	if c.modal != ModalNone {
		c.mu.Unlock()
		return ErrModalOpen
	}
	if c.selected == nil {
		c.mu.Unlock()
		return ErrNoSelection
	}
	login := c.selected.Login
	c.begin()
	c.mu.Unlock()

	c.log.Info(ctx, "deleting user", "login", login)
	return c.run(ctx, "delete "+login, func(ctx context.Context) error {
		_, err := c.dir.DeleteUser(ctx, login)
		return err
	})
}

// begin marks a mutation in flight. The caller holds c.mu.
func (c *Controller) begin() {
	c.busy = true
	c.loading++
}

// run performs op, then the refresh; the refresh is never started before op
// has returned.
func (c *Controller) run(ctx context.Context, what string, op mutation) error {
	opErr := op(ctx)
	if opErr != nil {
		c.log.Warn(ctx, "directory call failed", "op", what, "error", opErr)
		opErr = fmt.Errorf("%s: %w", what, opErr)
	}

	refreshErr := c.refresh(ctx)

	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()

	return errors.Join(opErr, refreshErr)
}

// Users is a convenience accessor for the displayed list.
func (c *Controller) Users() []models.User {
	return c.State().Users
}
