package validator_test

import (
	"testing"

	"app/internal/validator"

	"github.com/stretchr/testify/assert"
)

func TestValidateCredentials_OK(t *testing.T) {
	err := validator.ValidateCredentials("user@example.com", "password123")
	assert.NoError(t, err)
}

func TestValidateCredentials_NG(t *testing.T) {
	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "password123"},
		{"empty password", "user@example.com", ""},
		{"not an email", "not-an-email", "password123"},
		{"missing domain dot", "user@localhost", "password123"},
		{"short password", "user@example.com", "short"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := validator.ValidateCredentials(c.email, c.password)
			assert.ErrorIs(t, err, validator.ErrInvalidCredentials)
		})
	}
}
