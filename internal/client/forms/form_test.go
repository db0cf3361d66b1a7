package forms

import (
	"errors"
	"strings"
	"testing"

	"github.com/groupe-sii/lumext/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAdd(t *testing.T) *Form {
	t.Helper()
	f := NewAddForm()
	require.NoError(t, f.Set(models.FieldLogin, "jdoe123"))
	require.NoError(t, f.Set(models.FieldDisplayName, "John Doe"))
	require.NoError(t, f.Set(models.FieldDescription, "ops team"))
	require.NoError(t, f.Set(models.FieldPassword, "Abcdef1!"))
	require.NoError(t, f.Set(models.FieldPasswordConfirm, "Abcdef1!"))
	return f
}

func TestAddForm_Valid(t *testing.T) {
	f := validAdd(t)
	assert.True(t, f.Valid(), f.Validate())
	assert.NoError(t, f.Err())
}

func TestAddForm_SingleViolation(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
		rule  string
	}{
		{name: "login missing", field: models.FieldLogin, value: "", rule: "required"},
		{name: "login too short", field: models.FieldLogin, value: "jdoe12", rule: "login"},
		{name: "login bad char", field: models.FieldLogin, value: "jdoe 123", rule: "login"},
		{name: "login too long", field: models.FieldLogin, value: strings.Repeat("a", 257), rule: "login"},
		{name: "display name missing", field: models.FieldDisplayName, value: "", rule: "required"},
		{name: "display name too short", field: models.FieldDisplayName, value: "John", rule: "displayname"},
		{name: "display name too long", field: models.FieldDisplayName, value: strings.Repeat("a", 65), rule: "max"},
		{name: "display name punctuation", field: models.FieldDisplayName, value: "John-Doe", rule: "displayname"},
		{name: "description too long", field: models.FieldDescription, value: strings.Repeat("d", 1025), rule: "max"},
		{name: "password missing", field: models.FieldPassword, value: "", rule: "required"},
		{name: "password too short", field: models.FieldPassword, value: "Abc1!", rule: "min"},
		{name: "password too long", field: models.FieldPassword, value: strings.Repeat("p", 128), rule: "max"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validAdd(t)
			require.NoError(t, f.Set(tt.field, tt.value))

			assert.False(t, f.Valid())
			assert.Equal(t, tt.rule, f.Error(tt.field))
			assert.True(t, f.Invalid(tt.field))

			err := f.Err()
			require.ErrorIs(t, err, ErrValidation)
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.rule, ve.Fields[tt.field])
		})
	}
}

func TestAddForm_BoundaryValues(t *testing.T) {
	f := validAdd(t)
	require.NoError(t, f.Set(models.FieldLogin, strings.Repeat("a", 256)))
	require.NoError(t, f.Set(models.FieldDisplayName, "a_b c"))
	require.NoError(t, f.Set(models.FieldDescription, strings.Repeat("d", 1024)))
	assert.True(t, f.Valid(), f.Validate())
}

func TestForm_InvalidNeedsTouch(t *testing.T) {
	f := NewAddForm()
	assert.False(t, f.Valid())
	assert.NotEmpty(t, f.Error(models.FieldLogin))
	assert.False(t, f.Invalid(models.FieldLogin))

	require.NoError(t, f.Set(models.FieldLogin, "x"))
	assert.True(t, f.Invalid(models.FieldLogin))

	f.Reset()
	assert.False(t, f.Invalid(models.FieldLogin))
	assert.Equal(t, "", f.Get(models.FieldLogin))
}

func TestForm_UnknownField(t *testing.T) {
	f := NewPasswordForm()
	err := f.Set(models.FieldLogin, "jdoe123")
	require.ErrorIs(t, err, ErrUnknownField)
}

func TestConfirmValid(t *testing.T) {
	tests := []struct {
		p, c string
		want bool
	}{
		{"Abcdef1!", "Abcdef1!", true},
		{"Abcdef1!", "Abcdef1", false},
		{"short", "short", false},
		{"", "", false},
		{strings.Repeat("x", 200), strings.Repeat("x", 200), true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ConfirmValid(tt.p, tt.c), "p=%q c=%q", tt.p, tt.c)
	}
}

func TestConfirm_ReevaluatedOnPasswordChange(t *testing.T) {
	f := NewPasswordForm()
	require.NoError(t, f.Set(models.FieldPassword, "Abcdef1!"))
	require.NoError(t, f.Set(models.FieldPasswordConfirm, "Abcdef1!"))
	assert.True(t, f.Valid())

	require.NoError(t, f.Set(models.FieldPassword, "Abcdef1?"))
	assert.False(t, f.Valid())
	assert.Equal(t, "confirm", f.Error(models.FieldPasswordConfirm))
	assert.True(t, f.Invalid(models.FieldPasswordConfirm))
}

func TestEditForm_InitializedFromUser(t *testing.T) {
	u := models.User{Login: "jdoe123", DisplayName: "John Doe", Description: "ops"}
	f := NewEditForm(u)

	assert.Equal(t, KindEdit, f.Kind())
	assert.Equal(t, []string{models.FieldLogin, models.FieldDisplayName, models.FieldDescription}, f.Fields())
	assert.True(t, f.Valid())
	assert.Equal(t, models.Payload{"login": "jdoe123", "display_name": "John Doe", "description": "ops"}, f.Payload())

	require.NoError(t, f.Set(models.FieldDescription, "dev"))
	f.Reset()
	assert.Equal(t, "ops", f.Get(models.FieldDescription))
}

func TestPasswordForm_Payload(t *testing.T) {
	f := NewPasswordForm()
	require.NoError(t, f.Set(models.FieldPassword, "Abcdef1!"))
	require.NoError(t, f.Set(models.FieldPasswordConfirm, "Abcdef1!"))
	assert.Equal(t, models.Payload{"password": "Abcdef1!", "passwordConfirm": "Abcdef1!"}, f.Payload())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "add", KindAdd.String())
	assert.Equal(t, "edit", KindEdit.String())
	assert.Equal(t, "password", KindPassword.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}
