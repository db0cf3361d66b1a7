package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/groupe-sii/lumext/internal/client/forms"
	"github.com/groupe-sii/lumext/internal/client/models"
	"github.com/groupe-sii/lumext/internal/client/restc"
)

var fieldLabels = map[string]string{
	models.FieldLogin:           "Login",
	models.FieldDisplayName:     "Display name",
	models.FieldDescription:     "Description",
	models.FieldPassword:        "Password",
	models.FieldPasswordConfirm: "Confirm password",
}

var ruleMessages = map[string]string{
	"required":    "is required",
	"login":       "must be 7 to 256 letters, digits, dots, underscores or dashes",
	"displayname": "must be 5 to 64 word characters or spaces",
	"max":         "is too long",
	"min":         "is too short",
	"confirm":     "does not match the password",
}

// report prints err in a user-facing form.
func (a *App) report(err error) {
	var re *restc.RequestError
	switch {
	case errors.As(err, &re) && re.Message != "":
		fmt.Fprintf(a.out, "Error: %s\n", re.Message)
	default:
		fmt.Fprintf(a.out, "Error: %v\n", err)
	}
}

func (a *App) List(ctx context.Context) error {
	s := a.ctrl.State()
	if len(s.Users) == 0 {
		fmt.Fprintln(a.out, "No users.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tLOGIN\tDISPLAY NAME\tDESCRIPTION")
	for _, u := range s.Users {
		mark := ""
		if s.Selected != nil && s.Selected.Login == u.Login {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", mark, u.Login, u.DisplayName, u.Description)
	}
	return tw.Flush()
}

func (a *App) Select(ctx context.Context, login string) error {
	if err := a.ctrl.Select(login); err != nil {
		a.report(err)
		return err
	}
	return nil
}

func (a *App) Show(ctx context.Context) error {
	s := a.ctrl.State()
	if s.Selected == nil {
		fmt.Fprintln(a.out, "No user selected. Use: select <login>")
		return nil
	}
	u := s.Selected
	fmt.Fprintf(a.out, "Login:        %s\nDisplay name: %s\nDescription:  %s\n", u.Login, u.DisplayName, u.Description)
	return nil
}

func (a *App) Refresh(ctx context.Context) error {
	if err := a.ctrl.Refresh(ctx); err != nil {
		a.report(err)
		return err
	}
	return a.List(ctx)
}

func (a *App) State(ctx context.Context) error {
	s := a.ctrl.State()
	selected := "none"
	if s.Selected != nil {
		selected = s.Selected.Login
	}
	fmt.Fprintf(a.out, "modal=%s selected=%s users=%d loading=%t\n", s.Modal, selected, len(s.Users), s.ListLoading)
	return nil
}

// Generate prints a password suggestion without touching any form.
func (a *App) Generate(ctx context.Context) error {
	p, err := forms.GeneratePassword()
	if err != nil {
		a.report(err)
		return err
	}
	fmt.Fprintln(a.out, p)
	return nil
}

func (a *App) Add(ctx context.Context) error {
	return a.runForm(ctx, a.ctrl.OpenAdd)
}

func (a *App) Edit(ctx context.Context) error {
	return a.runForm(ctx, a.ctrl.OpenEdit)
}

func (a *App) Passwd(ctx context.Context) error {
	return a.runForm(ctx, a.ctrl.OpenPassword)
}

func (a *App) Delete(ctx context.Context) error {
	s := a.ctrl.State()
	if s.Selected == nil {
		fmt.Fprintln(a.out, "No user selected. Use: select <login>")
		return nil
	}
	ok, err := Confirm(a.reader, fmt.Sprintf("Delete user %s?", s.Selected.Login), a.out)
	if err != nil || !ok {
		return err
	}
	if err := a.ctrl.Delete(ctx); err != nil {
		a.report(err)
		return err
	}
	fmt.Fprintln(a.out, "User deleted.")
	return nil
}

// runForm opens a modal, prompts every field, then submits. An invalid form
// is reported field by field and discarded.
func (a *App) runForm(ctx context.Context, open func() error) error {
	if err := open(); err != nil {
		a.report(err)
		return err
	}

	if err := a.fill(); err != nil {
		_ = a.ctrl.Cancel()
		a.report(err)
		return err
	}

	err := a.ctrl.Submit(ctx)
	if errors.Is(err, forms.ErrValidation) {
		a.printFieldErrors()
		_ = a.ctrl.Cancel()
		fmt.Fprintln(a.out, "Form discarded.")
		return err
	}
	if err != nil {
		a.report(err)
		return err
	}
	fmt.Fprintln(a.out, "Saved.")
	return nil
}

func (a *App) fill() error {
	fields, err := a.ctrl.Fields()
	if err != nil {
		return err
	}

	for _, name := range fields {
		switch name {
		case models.FieldPassword:
			if err := a.fillPassword(); err != nil {
				return err
			}
		case models.FieldPasswordConfirm:
			pw, err := GetPassword(fieldLabels[name], a.out)
			if err != nil {
				return err
			}
			err = a.ctrl.SetField(name, string(pw))
			wipe(pw)
			if err != nil {
				return err
			}
		default:
			current, err := a.ctrl.Field(name)
			if err != nil {
				return err
			}
			prompt := fieldLabels[name]
			if current != "" {
				prompt += fmt.Sprintf(" [%s, - to clear]", current)
			}
			v, err := GetSimpleText(a.reader, prompt, a.out)
			if err != nil {
				return err
			}
			switch v {
			case "":
				v = current
			case "-":
				v = ""
			}
			if err := a.ctrl.SetField(name, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *App) fillPassword() error {
	gen, err := Confirm(a.reader, "Generate a password?", a.out)
	if err != nil {
		return err
	}
	if gen {
		p, err := a.ctrl.GeneratePassword()
		if err != nil {
			return err
		}
		if a.ctrl.State().PasswordVisible {
			fmt.Fprintf(a.out, "Generated password: %s\n", p)
		}
		return nil
	}

	pw, err := GetPassword(fieldLabels[models.FieldPassword], a.out)
	if err != nil {
		return err
	}
	defer wipe(pw)
	return a.ctrl.SetField(models.FieldPassword, string(pw))
}

func (a *App) printFieldErrors() {
	errs, err := a.ctrl.FieldErrors()
	if err != nil {
		return
	}
	names := make([]string, 0, len(errs))
	for name := range errs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		msg, ok := ruleMessages[errs[name]]
		if !ok {
			msg = "is invalid (" + errs[name] + ")"
		}
		fmt.Fprintf(a.out, "  %s %s\n", fieldLabels[name], msg)
	}
}
