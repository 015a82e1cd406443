package validator_test

import (
	"testing"

	"velour/internal/domain/model"
	"velour/internal/validator"

	"github.com/stretchr/testify/assert"
)

func TestIsEmailLike(t *testing.T) {
	assert.True(t, validator.IsEmailLike("ada@example.com"))
	assert.True(t, validator.IsEmailLike("a@b.c"))
	assert.False(t, validator.IsEmailLike("ada@example"))
	assert.False(t, validator.IsEmailLike("ada.example.com"))
	assert.False(t, validator.IsEmailLike(""))
}

func TestValidateNewsletter(t *testing.T) {
	v := validator.NewFormValidator()

	assert.NoError(t, v.ValidateNewsletter(model.NewsletterSignup{Email: " ada@example.com "}))
	assert.ErrorIs(t, v.ValidateNewsletter(model.NewsletterSignup{Email: "nope"}), validator.ErrInvalidEmail)
}

func TestValidateContact(t *testing.T) {
	v := validator.NewFormValidator()
	ok := model.ContactMessage{Name: "Ada", Email: "ada@example.com", Message: "hi"}

	assert.NoError(t, v.ValidateContact(ok))

	noName := ok
	noName.Name = "  "
	assert.ErrorIs(t, v.ValidateContact(noName), validator.ErrRequired)

	noMsg := ok
	noMsg.Message = ""
	assert.ErrorIs(t, v.ValidateContact(noMsg), validator.ErrRequired)

	badEmail := ok
	badEmail.Email = "ada"
	assert.ErrorIs(t, v.ValidateContact(badEmail), validator.ErrInvalidEmail)
}
