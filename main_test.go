package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/formguard/framework/forms"
	"github.com/km-arc/formguard/framework/validation"
)

func newSchemaManager(t *testing.T) *forms.Manager {
	t.Helper()
	reg := validation.NewBuiltinRegistry()
	require.NoError(t, reg.Register(usernameRule))

	m := forms.NewManager(reg, nil)
	require.NoError(t, m.Load(schemas, "schemas/*.yaml"))
	return m
}

func TestEmbeddedSchemas(t *testing.T) {
	m := newSchemaManager(t)
	assert.Equal(t, []string{"contact", "signup"}, m.Forms())

	contact, ok := m.Schema("contact")
	require.True(t, ok)
	assert.Equal(t, validation.EventsBlur, contact.Events)
}

func TestSignupSchema(t *testing.T) {
	s, err := newSchemaManager(t).Open("signup")
	require.NoError(t, err)

	state, ok := s.Submit(map[string]string{
		"username": "ada_l",
		"name":     "Ada Lovelace",
		"age":      "36",
		"email":    "ada@example.com",
		"password": "analytical",
		"confirm":  "analytical",
	})
	assert.True(t, ok, state.Errors)

	state, ok = s.Submit(map[string]string{"username": "Ada!", "password": "ada_l", "confirm": "ada_l"})
	assert.False(t, ok)
	assert.Equal(t, usernameRule.Message, state.Errors["username"])
	assert.Equal(t, "Must be at least 8 characters", state.Errors["password"])
}
